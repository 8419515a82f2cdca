package snes

// Sprite (OBJ) evaluation and drawing.
// References:
//   https://snes.nesdev.org/wiki/Sprites
//   https://problemkaputt.de/fullsnes.htm#snesppuspritesobjs

// objSizes maps OBSEL bits 5-7 to (small, large) square dimensions.
var objSizes = [8][2]int{
	{8, 16}, {8, 32}, {8, 64}, {16, 32},
	{16, 64}, {32, 64}, {16, 32}, {16, 32},
}

type spriteLine struct {
	x        int
	tile     uint16
	palette  byte
	priority int8
	hflip    bool
	size     int
	row      int // row within the sprite, flip already applied
}

// renderSprites evaluates OAM for scanline y and draws into p.objPix,
// p.objPrio and p.objMath. The hardware limits apply: 32 sprites per line
// (range over) and 34 8-pixel tile slivers (time over).
func (p *PPU) renderSprites(y int) {
	for x := 0; x < screenWidth; x++ {
		p.objPix[x] = 0
		p.objPrio[x] = -1
	}
	small := objSizes[p.objSizeSel][0]
	large := objSizes[p.objSizeSel][1]

	first := 0
	if p.oamPriority {
		// Priority rotation starts evaluation at the sprite selected by
		// the current OAM address.
		first = int(p.oamReload>>1) & 0x7F
	}

	var line [32]spriteLine
	count := 0
	for i := 0; i < 128; i++ {
		n := (first + i) & 0x7F
		b := p.oam[n*4 : n*4+4]
		high := p.oam[0x200+n/4] >> uint(n%4*2) & 3
		sx := int(b[0])
		if high&1 != 0 {
			sx -= 256
		}
		sy := int(b[1])
		size := small
		if high&2 != 0 {
			size = large
		}
		// Sprites wrap vertically through 256.
		row := (y - sy) & 0xFF
		if row >= size {
			continue
		}
		if sx <= -size {
			continue
		}
		if count == 32 {
			p.rangeOver = true
			break
		}
		attr := b[3]
		r := row
		if attr&0x80 != 0 {
			r = size - 1 - row
		}
		line[count] = spriteLine{
			x:        sx,
			tile:     uint16(b[2]) | uint16(attr&1)<<8,
			palette:  attr >> 1 & 7,
			priority: int8(attr >> 4 & 3),
			hflip:    attr&0x40 != 0,
			size:     size,
			row:      r,
		}
		count++
	}

	// Tile fetch honors the 34-sliver budget, consuming from the highest
	// evaluated sprite down.
	tiles := 0
	for i := count - 1; i >= 0; i-- {
		s := &line[i]
		cells := s.size / 8
		for cx := 0; cx < cells; cx++ {
			baseX := s.x + cx*8
			if baseX <= -8 || baseX >= screenWidth {
				continue
			}
			if tiles == 34 {
				p.timeOver = true
				break
			}
			tiles++
			col := cx
			if s.hflip {
				col = cells - 1 - col
			}
			t := (s.tile + uint16(s.row/8)<<4 + uint16(col)) & 0x1FF
			base := p.objNameBase
			if s.tile&0x100 != 0 {
				base += 0x1000 + p.objNameGap
			}
			pix := p.cache.tile(p, base, t&0xFF, 4)
			for fx := 0; fx < 8; fx++ {
				x := baseX + fx
				if x < 0 || x >= screenWidth {
					continue
				}
				px := fx
				if s.hflip {
					px = 7 - fx
				}
				v := pix[s.row%8*8+px]
				if v == 0 {
					continue
				}
				p.objPix[x] = 128 + s.palette*16 + v
				p.objPrio[x] = s.priority
				p.objMath[x] = s.palette >= 4
			}
		}
	}
}
