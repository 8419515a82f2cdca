package snes

// Mode 7: a single 8 bpp 128x128-tile layer sampled through a 2x2 signed
// 8.8 fixed-point matrix. VRAM interleaves the tile map in low bytes and
// tile data in high bytes.
// References:
//   https://snes.nesdev.org/wiki/M7SEL
//   https://www.coranac.com/tonc/text/mode7.htm (the math, GBA flavored)

// m7Clip truncates a 13-bit offset difference to +-0x3FF the way the
// hardware's adder does.
func m7Clip(v int32) int32 {
	if v&0x2000 != 0 {
		return v | ^int32(0x3FF)
	}
	return v & 0x3FF
}

// renderMode7 draws one scanline of the Mode 7 layer into p.bgPix[0].
func (p *PPU) renderMode7(y int) {
	a := int32(p.m7A)
	b := int32(p.m7B)
	c := int32(p.m7C)
	d := int32(p.m7D)
	cx := int32(p.m7X)
	cy := int32(p.m7Y)
	hofs := m7Clip(int32(p.m7HOfs) - cx)
	vofs := m7Clip(int32(p.m7VOfs) - cy)

	sy := int32(y)
	if p.m7Sel&0x02 != 0 { // screen V-flip
		sy = 255 - sy
	}

	// Per-line start point, then step by (A, C) per pixel.
	startX := (a*hofs)&^63 + (b*sy)&^63 + (b*vofs)&^63 + cx<<8
	startY := (c*hofs)&^63 + (d*sy)&^63 + (d*vofs)&^63 + cy<<8

	for x := 0; x < screenWidth; x++ {
		sx := int32(x)
		if p.m7Sel&0x01 != 0 { // screen H-flip
			sx = 255 - sx
		}
		px := (startX + a*sx) >> 8
		py := (startY + c*sx) >> 8

		var v byte
		out := px < 0 || px > 1023 || py < 0 || py > 1023
		switch {
		case !out || p.m7Sel&0x80 == 0:
			// In range, or out-of-range wraps.
			px &= 1023
			py &= 1023
			tile := byte(p.vram[uint16(py)&^7<<4|uint16(px)>>3&0x7F])
			v = byte(p.vram[uint16(tile)<<6|uint16(py&7)<<3|uint16(px&7)] >> 8)
		case p.m7Sel&0x40 != 0:
			// Out of range fills with tile 0.
			v = byte(p.vram[uint16(py&7)<<3|uint16(px&7)] >> 8)
		default:
			// Out of range is transparent.
			v = 0
		}
		p.bgPix[0][x] = v
		p.bgPrio[0][x] = false
	}

	if p.mosaicOn[0] {
		mosaic := int(p.mosaicSize) + 1
		for x := 0; x < screenWidth; x++ {
			p.bgPix[0][x] = p.bgPix[0][x-x%mosaic]
		}
	}
}
