package snes

// Scanline composition: window evaluation, priority composition of the main
// and sub screens, color math and master brightness.
// References:
//   https://snes.nesdev.org/wiki/Windows
//   https://snes.nesdev.org/wiki/Color_math

// Layer ids used through composition.
const (
	layerBG1 = iota
	layerBG2
	layerBG3
	layerBG4
	layerOBJ
	layerBack
)

type prioSlot struct {
	layer int8
	prio  int8
}

// Per-mode composition order, back to front. OBJ slots carry the sprite
// priority they admit.
var modeSlots = [8][]prioSlot{
	{ // mode 0
		{layerBG4, 0}, {layerBG3, 0}, {layerOBJ, 0}, {layerBG4, 1}, {layerBG3, 1},
		{layerOBJ, 1}, {layerBG2, 0}, {layerBG1, 0}, {layerOBJ, 2}, {layerBG2, 1},
		{layerBG1, 1}, {layerOBJ, 3},
	},
	{ // mode 1 (BG3 priority handled separately)
		{layerBG3, 0}, {layerOBJ, 0}, {layerBG3, 1}, {layerOBJ, 1}, {layerBG2, 0},
		{layerBG1, 0}, {layerOBJ, 2}, {layerBG2, 1}, {layerBG1, 1}, {layerOBJ, 3},
	},
	{ // modes 2-5 share the two-layer ladder
		{layerBG2, 0}, {layerOBJ, 0}, {layerBG1, 0}, {layerOBJ, 1}, {layerBG2, 1},
		{layerOBJ, 2}, {layerBG1, 1}, {layerOBJ, 3},
	},
	{
		{layerBG2, 0}, {layerOBJ, 0}, {layerBG1, 0}, {layerOBJ, 1}, {layerBG2, 1},
		{layerOBJ, 2}, {layerBG1, 1}, {layerOBJ, 3},
	},
	{
		{layerBG2, 0}, {layerOBJ, 0}, {layerBG1, 0}, {layerOBJ, 1}, {layerBG2, 1},
		{layerOBJ, 2}, {layerBG1, 1}, {layerOBJ, 3},
	},
	{
		{layerBG2, 0}, {layerOBJ, 0}, {layerBG1, 0}, {layerOBJ, 1}, {layerBG2, 1},
		{layerOBJ, 2}, {layerBG1, 1}, {layerOBJ, 3},
	},
	{ // mode 6
		{layerOBJ, 0}, {layerBG1, 0}, {layerOBJ, 1}, {layerOBJ, 2}, {layerBG1, 1},
		{layerOBJ, 3},
	},
	{ // mode 7
		{layerOBJ, 0}, {layerBG1, 0}, {layerOBJ, 1}, {layerOBJ, 2}, {layerOBJ, 3},
	},
}

// slots returns the current mode's order; in mode 1 with BGMODE bit 3 set,
// BG3 priority tiles are hoisted above everything.
func (p *PPU) slots() []prioSlot {
	if p.bgMode != 1 || !p.bg3Priority {
		return modeSlots[p.bgMode]
	}
	s := make([]prioSlot, 0, 10)
	for _, slot := range modeSlots[1] {
		if slot.layer == layerBG3 && slot.prio == 1 {
			continue
		}
		s = append(s, slot)
	}
	return append(s, prioSlot{layerBG3, 1})
}

// evalWindows fills p.winLine for the five maskable layers plus the color
// window. Combine ops per layer come from WBGLOG/WOBJLOG: OR, AND, XOR, XNOR.
func (p *PPU) evalWindows() {
	var w1, w2 [256]bool
	for x := 0; x < 256; x++ {
		w1[x] = x >= int(p.winLeft[0]) && x <= int(p.winRight[0])
		w2[x] = x >= int(p.winLeft[1]) && x <= int(p.winRight[1])
	}
	for layer := 0; layer < 6; layer++ {
		var bits byte
		var logic byte
		switch {
		case layer < 4: // BG1-4 from W12SEL/W34SEL
			bits = p.winSel[layer/2] >> uint(layer%2*4)
			logic = p.winBGLog >> uint(layer*2) & 3
		case layer == layerOBJ:
			bits = p.winSel[2]
			logic = p.winOBJLog & 3
		default: // color window
			bits = p.winSel[2] >> 4
			logic = p.winOBJLog >> 2 & 3
		}
		en1 := bits&0x02 != 0
		inv1 := bits&0x01 != 0
		en2 := bits&0x08 != 0
		inv2 := bits&0x04 != 0
		for x := 0; x < 256; x++ {
			a := w1[x] != inv1
			b := w2[x] != inv2
			var in bool
			switch {
			case en1 && en2:
				switch logic {
				case 0:
					in = a || b
				case 1:
					in = a && b
				case 2:
					in = a != b
				default:
					in = a == b
				}
			case en1:
				in = a
			case en2:
				in = b
			}
			p.winLine[layer][x] = in
		}
	}
}

// layerPixel returns the palette color and presence for a layer. BG lines
// are width-wide (512 in hi-res), sprites always 256, so they index by wx.
func (p *PPU) layerPixel(slot prioSlot, x, wx int) (uint16, bool) {
	if slot.layer == layerOBJ {
		if p.objPrio[wx] != slot.prio || p.objPix[wx] == 0 {
			return 0, false
		}
		return p.cgram[p.objPix[wx]], true
	}
	bg := int(slot.layer)
	if p.bgPrio[bg][x] != (slot.prio == 1) || p.bgPix[bg][x] == 0 {
		return 0, false
	}
	return p.cgram[p.bgPix[bg][x]], true
}

// composite builds the main and sub screen lines for scanline y at the
// given width, then resolves color math into the frame buffer.
func (p *PPU) composite(y, width int) {
	slots := p.slots()
	backdrop := p.cgram[0]
	scale := width / 256

	for x := 0; x < width; x++ {
		p.mainColor[x] = backdrop
		p.mainLayer[x] = layerBack
		p.subColor[x] = p.fixedColor
		p.subBack[x] = true
	}

	for _, slot := range slots {
		bit := byte(1) << uint(slot.layer)
		onMain := p.mainScreen&bit != 0
		onSub := p.subScreen&bit != 0
		if !onMain && !onSub {
			continue
		}
		for x := 0; x < width; x++ {
			wx := x / scale
			color, opaque := p.layerPixel(slot, x, wx)
			if !opaque {
				continue
			}
			if onMain && !(p.mainWindowMask&bit != 0 && p.winLine[slot.layer][wx]) {
				p.mainColor[x] = color
				p.mainLayer[x] = byte(slot.layer)
			}
			if onSub && !(p.subWindowMask&bit != 0 && p.winLine[slot.layer][wx]) {
				p.subColor[x] = color
				p.subBack[x] = false
			}
		}
	}

	p.resolveLine(y, width)
}

// regionActive evaluates a CGWSEL 2-bit region selector against the color
// window at x.
func (p *PPU) regionActive(sel byte, x int) bool {
	switch sel & 3 {
	case 0:
		return false
	case 1:
		return !p.winLine[5][x]
	case 2:
		return p.winLine[5][x]
	default:
		return true
	}
}

// resolveLine applies color math and brightness, then writes the frame
// buffer, averaging pixel pairs in hi-res modes.
func (p *PPU) resolveLine(y, width int) {
	half := p.cgadSub&0x40 != 0
	subtract := p.cgadSub&0x80 != 0
	useSub := p.cgwSel&0x02 != 0
	scale := width / 256

	for ox := 0; ox < 256; ox++ {
		var sum [3]int
		for s := 0; s < scale; s++ {
			x := ox*scale + s
			color := p.mainColor[x]
			layer := p.mainLayer[x]

			// CGWSEL bits 7-6: force the main screen black in a region.
			clipped := p.regionActive(p.cgwSel>>6, ox)
			if clipped {
				color = 0
			}
			// CGWSEL bits 5-4 select where math is prevented.
			mathAllowed := !p.regionActive(p.cgwSel>>4, ox)
			enabled := p.cgadSub&(1<<uint(layer)) != 0
			if layer == layerOBJ && !p.objMath[ox] {
				enabled = false
			}
			if enabled && mathAllowed {
				operand := p.fixedColor
				halve := half && !clipped
				if useSub {
					operand = p.subColor[x]
					if p.subBack[x] {
						operand = p.fixedColor
						halve = false
					}
				}
				color = colorMath(color, operand, subtract, halve)
			}
			r, g, b := int(color&0x1F), int(color>>5&0x1F), int(color>>10&0x1F)
			sum[0] += r
			sum[1] += g
			sum[2] += b
		}
		r := sum[0] / scale
		g := sum[1] / scale
		b := sum[2] / scale
		// Master brightness scales each channel.
		scaleB := int(p.brightness) + 1
		if p.brightness == 0 {
			scaleB = 0
		}
		r = r * scaleB / 16
		g = g * scaleB / 16
		b = b * scaleB / 16
		p.frame[y*screenWidth+ox] = uint16(b)<<10 | uint16(g)<<5 | uint16(r)
	}
}

// colorMath adds or subtracts two 15-bit colors channel-wise with 5-bit
// saturation, optionally halving the result.
func colorMath(main, operand uint16, subtract, half bool) uint16 {
	var out uint16
	for shift := uint(0); shift < 15; shift += 5 {
		a := int(main >> shift & 0x1F)
		b := int(operand >> shift & 0x1F)
		var v int
		if subtract {
			v = a - b
			if v < 0 {
				v = 0
			}
		} else {
			v = a + b
		}
		if half {
			v /= 2
		}
		if v > 0x1F {
			v = 0x1F
		}
		out |= uint16(v) << shift
	}
	return out
}
