package snes

// RenderScanline advances the PPU by one scanline. Visible lines render
// into the frame buffer; entering line 224 (239 in overscan) starts VBlank
// and returns true so the console can raise NMI and run joypad auto-read.
func (p *PPU) RenderScanline(y int) bool {
	p.scanline = y
	height := p.visibleHeight()
	switch {
	case y == 0:
		p.vblank = false
		p.rangeOver = false
		p.timeOver = false
		p.renderLine(y)
	case y < height:
		p.renderLine(y)
	case y == height:
		p.vblank = true
		p.frames++
		// Ending the frame reloads the OAM address.
		if !p.forceBlank {
			p.oamAddr = p.oamReload << 1
		}
		return true
	}
	return false
}

func (p *PPU) renderLine(y int) {
	if p.forceBlank {
		for x := 0; x < screenWidth; x++ {
			p.frame[y*screenWidth+x] = 0
		}
		return
	}
	width := screenWidth
	if p.hires() {
		width = 512
	}
	p.evalWindows()
	if p.bgMode == 7 {
		p.renderMode7(y)
	} else {
		for bg := 0; bg < 4; bg++ {
			if bitsPerPixel[p.bgMode][bg] == 0 {
				continue
			}
			if p.mainScreen&(1<<uint(bg)) == 0 && p.subScreen&(1<<uint(bg)) == 0 {
				continue
			}
			p.renderBackground(bg, y, width)
		}
	}
	if (p.mainScreen|p.subScreen)&0x10 != 0 {
		p.renderSprites(y)
	} else {
		for x := 0; x < screenWidth; x++ {
			p.objPix[x] = 0
			p.objPrio[x] = -1
		}
	}
	p.composite(y, width)
}
