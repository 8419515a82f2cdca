package snes

// Background scanline rendering for modes 0-6. Mode 7 lives in ppu_mode7.go.
// References:
//   https://snes.nesdev.org/wiki/Backgrounds
//   https://problemkaputt.de/fullsnes.htm#snesppubgscreens

// bitsPerPixel[mode][bg], 0 = layer absent in that mode.
var bitsPerPixel = [8][4]int{
	{2, 2, 2, 2}, // mode 0
	{4, 4, 2, 0}, // mode 1
	{4, 4, 0, 0}, // mode 2, offset-per-tile
	{8, 4, 0, 0}, // mode 3
	{8, 2, 0, 0}, // mode 4, offset-per-tile
	{4, 2, 0, 0}, // mode 5, hi-res
	{4, 0, 0, 0}, // mode 6, hi-res, offset-per-tile
	{8, 0, 0, 0}, // mode 7
}

// modeUsesOPT reports whether the mode applies BG3 offset-per-tile data.
func modeUsesOPT(mode byte) bool {
	return mode == 2 || mode == 4 || mode == 6
}

// tilemapEntry fetches a 16-bit tile entry honoring the screen-size layout:
// 32x32 submaps composed left-right then top-bottom.
func (p *PPU) tilemapEntry(bg int, tileX, tileY int) uint16 {
	addr := p.bgMapBase[bg]
	size := p.bgMapSize[bg]
	if size&1 != 0 && tileX&0x20 != 0 { // 64-wide, right submap
		addr += 0x400
	}
	if size&2 != 0 && tileY&0x20 != 0 { // 64-tall, lower submap(s)
		addr += 0x400
		if size&1 != 0 {
			addr += 0x400
		}
	}
	addr += uint16(tileY&0x1F)<<5 | uint16(tileX&0x1F)
	return p.vram[addr&0x7FFF]
}

// renderBackground draws one scanline of BG bg (0-based) into p.bgPix[bg]
// and p.bgPrio[bg]. width is 256, or 512 in the hi-res modes.
func (p *PPU) renderBackground(bg, y, width int) {
	bpp := bitsPerPixel[p.bgMode][bg]
	if bpp == 0 {
		return
	}
	hofs := int(p.bgHOfs[bg])
	vofs := int(p.bgVOfs[bg])
	tileW := 8
	if p.bigTiles[bg] || p.hires() {
		tileW = 16
	}
	tileH := 8
	if p.bigTiles[bg] {
		tileH = 16
	}
	mosaic := 1
	if p.mosaicOn[bg] {
		mosaic = int(p.mosaicSize) + 1
		y -= y % mosaic
	}

	opt := modeUsesOPT(p.bgMode) && bg < 2
	for x := 0; x < width; x++ {
		wx := x + hofs
		wy := y + vofs
		if opt {
			wx, wy = p.offsetPerTile(bg, x, hofs, vofs, y)
		}
		tileX := wx / tileW
		tileY := wy / tileH
		entry := p.tilemapEntry(bg, tileX, tileY)
		tile := entry & 0x03FF
		palette := byte(entry >> 10 & 7)
		prio := entry&0x2000 != 0
		hflip := entry&0x4000 != 0
		vflip := entry&0x8000 != 0

		fineX := wx % tileW
		fineY := wy % tileH
		if hflip {
			fineX = tileW - 1 - fineX
		}
		if vflip {
			fineY = tileH - 1 - fineY
		}
		// 16-pixel tiles address the adjacent cell in the character table.
		t := tile
		if fineX >= 8 {
			t++
			fineX -= 8
		}
		if fineY >= 8 {
			t += 16
			fineY -= 8
		}
		pix := p.cache.tile(p, p.bgCharBase[bg], t&0x3FF, bpp)
		v := pix[fineY*8+fineX]
		p.bgPix[bg][x] = p.paletteIndex(bg, bpp, palette, v)
		p.bgPrio[bg][x] = prio
	}

	if mosaic > 1 {
		for x := 0; x < width; x++ {
			src := x - x%mosaic
			p.bgPix[bg][x] = p.bgPix[bg][src]
			p.bgPrio[bg][x] = p.bgPrio[bg][src]
		}
	}
}

// paletteIndex converts a tile pixel to a CGRAM index; 0 stays transparent.
func (p *PPU) paletteIndex(bg, bpp int, palette, v byte) byte {
	if v == 0 {
		return 0
	}
	switch bpp {
	case 2:
		base := palette * 4
		if p.bgMode == 0 {
			// Mode 0 gives each BG its own 32-color block.
			base += byte(bg) * 0x20
		}
		return base + v
	case 4:
		return palette*16 + v
	default: // 8 bpp uses the whole palette
		return v
	}
}

// offsetPerTile applies the BG3-driven per-column scroll override of modes
// 2, 4 and 6 and returns the effective world coordinates for pixel x.
func (p *PPU) offsetPerTile(bg, x, hofs, vofs, y int) (int, int) {
	wx := x + hofs
	wy := y + vofs
	column := x/8 - 1
	if column < 0 {
		// The leftmost visible column is never overridden.
		return wx, wy
	}
	h3 := int(p.bgHOfs[2])
	v3 := int(p.bgVOfs[2])
	optX := (column*8 + h3) / 8
	hEntry := p.tilemapEntry(2, optX, v3/8)
	vEntry := p.tilemapEntry(2, optX, v3/8+1)
	if p.bgMode == 4 {
		// Mode 4 has one entry per column; bit 15 selects the axis.
		if hEntry&0x8000 != 0 {
			vEntry, hEntry = hEntry, 0
		} else {
			vEntry = 0
		}
	}
	applies := uint16(0x2000) << bg
	if hEntry&applies != 0 {
		wx = x&7 + (x&^7 + int(hEntry&0x03F8))
	}
	if vEntry&applies != 0 {
		wy = y + int(vEntry&0x03FF)
	}
	return wx, wy
}
