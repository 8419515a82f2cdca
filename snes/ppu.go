package snes

import (
	"github.com/golang/glog"
)

// PPU renders 256x224 pixels, one scanline at a time.
// References:
//   https://snes.nesdev.org/wiki/PPU_registers
//   https://problemkaputt.de/fullsnes.htm#snesppu
//   https://www.romhacking.net/documents/196/ (anomie's register doc)

const (
	screenWidth    = 256
	screenHeight   = 224
	overscanHeight = 239
	// NTSC frame geometry: 262 scanlines, 1364 master cycles each.
	totalScanlines    = 262
	cyclesPerScanline = 1364
)

type PPU struct {
	vram  [0x8000]uint16 // word addressable, 15-bit address
	cgram [256]uint16
	oam   [544]byte

	cache *tileCache

	// 0x2100 INIDISP
	forceBlank bool
	brightness byte

	// 0x2101 OBSEL
	objSizeSel  byte
	objNameBase uint16
	objNameGap  uint16

	// 0x2102-0x2104 OAM address/data
	oamAddr     uint16 // byte address, 0x000-0x21F
	oamReload   uint16 // word address reloaded on 0x2102/03 writes
	oamPriority bool
	oamLatch    byte

	// 0x2105-0x2106
	bgMode      byte
	bg3Priority bool
	bigTiles    [4]bool // 16x16 tile flag per BG
	mosaicSize  byte
	mosaicOn    [4]bool

	// 0x2107-0x210C tilemap and character bases
	bgMapBase  [4]uint16
	bgMapSize  [4]byte // 0: 32x32, 1: 64x32, 2: 32x64, 3: 64x64
	bgCharBase [4]uint16

	// 0x210D-0x2114 scroll registers, write-twice
	bgHOfs     [4]uint16
	bgVOfs     [4]uint16
	scrollPrev byte

	// Mode 7 (0x211A-0x2120)
	m7Sel       byte
	m7A, m7B    int16
	m7C, m7D    int16
	m7X, m7Y    int16
	m7HOfs      int16
	m7VOfs      int16
	m7Prev      byte
	mpyResult   int32 // 0x2134-0x2136
	mpyStale    bool

	// 0x2115-0x2119 VRAM port
	vmain     byte
	vramAddr  uint16
	vramLatch uint16 // read prefetch

	// 0x2121-0x2122 CGRAM port
	cgAddr   byte
	cgLatch  byte
	cgToggle bool

	// 0x2123-0x212B windows
	winSel    [3]byte // W12SEL, W34SEL, WOBJSEL
	winLeft   [2]byte
	winRight  [2]byte
	winBGLog  byte
	winOBJLog byte

	// 0x212C-0x212F screen designation
	mainScreen     byte
	subScreen      byte
	mainWindowMask byte
	subWindowMask  byte

	// 0x2130-0x2132 color math
	cgwSel     byte
	cgadSub    byte
	fixedColor uint16

	// 0x2133 SETINI
	overscan   bool
	interlace  bool
	pseudoHire bool

	// H/V counter latches (0x2137, 0x213C-0x213F)
	hLatch     uint16
	vLatch     uint16
	hvLatched  bool
	ophToggle  bool
	opvToggle  bool

	// Per-frame status
	scanline  int
	vblank    bool
	rangeOver bool // more than 32 sprites on a line
	timeOver  bool // more than 34 sprite tiles on a line
	frames    uint64

	frame [screenWidth * overscanHeight]uint16 // 15-bit BGR

	// Scanline compositing scratch. 512 wide for modes 5/6.
	mainColor [512]uint16
	mainLayer [512]byte
	subColor  [512]uint16
	subBack   [512]bool
	winLine   [6][256]bool
	bgPix     [4][512]byte
	bgPrio    [4][512]bool
	objPix    [256]byte
	objPrio   [256]int8
	objMath   [256]bool
}

func NewPPU() *PPU {
	p := &PPU{cache: newTileCache()}
	p.Reset()
	return p
}

func (p *PPU) Reset() {
	p.forceBlank = true
	p.brightness = 0x0F
	p.scanline = 0
	p.vblank = false
	p.vramAddr = 0
	p.cgToggle = false
	p.scrollPrev = 0
	p.m7Prev = 0
	p.rangeOver = false
	p.timeOver = false
	p.cache.invalidateAll()
}

// visibleHeight is 224, or 239 when the overscan bit is set.
func (p *PPU) visibleHeight() int {
	if p.overscan {
		return overscanHeight
	}
	return screenHeight
}

// hires reports whether the current mode doubles horizontal resolution.
func (p *PPU) hires() bool {
	return p.bgMode == 5 || p.bgMode == 6
}

// FrameBuffer returns the 15-bit BGR frame, 256 pixels per line.
func (p *PPU) FrameBuffer() []uint16 {
	return p.frame[:screenWidth*p.visibleHeight()]
}

// writeRegister dispatches a write to 0x2100-0x213F.
func (p *PPU) writeRegister(addr uint16, data byte) {
	switch addr {
	case 0x2100: // INIDISP
		wasBlank := p.forceBlank
		p.forceBlank = data&0x80 != 0
		p.brightness = data & 0x0F
		if wasBlank && !p.forceBlank {
			// Leaving force blank reloads the OAM address.
			p.oamAddr = p.oamReload << 1
		}
	case 0x2101: // OBSEL
		p.objSizeSel = data >> 5
		p.objNameGap = uint16(data>>3&3) << 12
		p.objNameBase = uint16(data&7) << 13
	case 0x2102: // OAMADDL
		p.oamReload = p.oamReload&0x0100 | uint16(data)
		p.oamAddr = p.oamReload << 1
	case 0x2103: // OAMADDH
		p.oamReload = p.oamReload&0x00FF | uint16(data&1)<<8
		p.oamPriority = data&0x80 != 0
		p.oamAddr = p.oamReload << 1
	case 0x2104:
		p.writeOAMData(data)
	case 0x2105: // BGMODE
		p.bgMode = data & 7
		p.bg3Priority = data&0x08 != 0
		for i := 0; i < 4; i++ {
			p.bigTiles[i] = data&(0x10<<i) != 0
		}
	case 0x2106: // MOSAIC
		p.mosaicSize = data >> 4
		for i := 0; i < 4; i++ {
			p.mosaicOn[i] = data&(1<<i) != 0
		}
	case 0x2107, 0x2108, 0x2109, 0x210A: // BGnSC
		i := int(addr - 0x2107)
		p.bgMapBase[i] = uint16(data>>2) << 10
		p.bgMapSize[i] = data & 3
	case 0x210B: // BG12NBA
		p.bgCharBase[0] = uint16(data&0x0F) << 12
		p.bgCharBase[1] = uint16(data>>4) << 12
	case 0x210C: // BG34NBA
		p.bgCharBase[2] = uint16(data&0x0F) << 12
		p.bgCharBase[3] = uint16(data>>4) << 12
	case 0x210D, 0x210F, 0x2111, 0x2113: // BGnHOFS (0x210D doubles as M7HOFS)
		if addr == 0x210D {
			p.m7HOfs = signExtend13(uint16(data)<<8 | uint16(p.m7Prev))
			p.m7Prev = data
		}
		i := int(addr-0x210D) / 2
		p.bgHOfs[i] = (uint16(data)<<8 | uint16(p.scrollPrev)&^7 | p.bgHOfs[i]>>8&7) & 0x3FF
		p.scrollPrev = data
	case 0x210E, 0x2110, 0x2112, 0x2114: // BGnVOFS (0x210E doubles as M7VOFS)
		if addr == 0x210E {
			p.m7VOfs = signExtend13(uint16(data)<<8 | uint16(p.m7Prev))
			p.m7Prev = data
		}
		i := int(addr-0x210E) / 2
		p.bgVOfs[i] = (uint16(data)<<8 | uint16(p.scrollPrev)) & 0x3FF
		p.scrollPrev = data
	case 0x2115: // VMAIN
		p.vmain = data
	case 0x2116: // VMADDL
		p.vramAddr = p.vramAddr&0x7F00 | uint16(data)
		p.vramLatch = p.vram[p.vramAddr&0x7FFF]
	case 0x2117: // VMADDH
		p.vramAddr = p.vramAddr&0x00FF | uint16(data&0x7F)<<8
		p.vramLatch = p.vram[p.vramAddr&0x7FFF]
	case 0x2118: // VMDATAL
		p.writeVRAM(false, data)
	case 0x2119: // VMDATAH
		p.writeVRAM(true, data)
	case 0x211A: // M7SEL
		p.m7Sel = data
	case 0x211B:
		p.m7A = int16(uint16(data)<<8 | uint16(p.m7Prev))
		p.m7Prev = data
		p.mpyStale = true
	case 0x211C:
		p.m7B = int16(uint16(data)<<8 | uint16(p.m7Prev))
		p.m7Prev = data
		p.mpyStale = true
	case 0x211D:
		p.m7C = int16(uint16(data)<<8 | uint16(p.m7Prev))
		p.m7Prev = data
	case 0x211E:
		p.m7D = int16(uint16(data)<<8 | uint16(p.m7Prev))
		p.m7Prev = data
	case 0x211F:
		p.m7X = signExtend13(uint16(data)<<8 | uint16(p.m7Prev))
		p.m7Prev = data
	case 0x2120:
		p.m7Y = signExtend13(uint16(data)<<8 | uint16(p.m7Prev))
		p.m7Prev = data
	case 0x2121: // CGADD
		p.cgAddr = data
		p.cgToggle = false
	case 0x2122: // CGDATA
		if !p.cgToggle {
			p.cgLatch = data
		} else {
			p.cgram[p.cgAddr] = uint16(data&0x7F)<<8 | uint16(p.cgLatch)
			p.cgAddr++
		}
		p.cgToggle = !p.cgToggle
	case 0x2123, 0x2124, 0x2125: // W12SEL, W34SEL, WOBJSEL
		p.winSel[addr-0x2123] = data
	case 0x2126:
		p.winLeft[0] = data
	case 0x2127:
		p.winRight[0] = data
	case 0x2128:
		p.winLeft[1] = data
	case 0x2129:
		p.winRight[1] = data
	case 0x212A:
		p.winBGLog = data
	case 0x212B:
		p.winOBJLog = data
	case 0x212C:
		p.mainScreen = data & 0x1F
	case 0x212D:
		p.subScreen = data & 0x1F
	case 0x212E:
		p.mainWindowMask = data & 0x1F
	case 0x212F:
		p.subWindowMask = data & 0x1F
	case 0x2130:
		p.cgwSel = data
	case 0x2131:
		p.cgadSub = data
	case 0x2132: // COLDATA
		v := uint16(data & 0x1F)
		if data&0x20 != 0 {
			p.fixedColor = p.fixedColor&^uint16(0x001F) | v
		}
		if data&0x40 != 0 {
			p.fixedColor = p.fixedColor&^uint16(0x03E0) | v<<5
		}
		if data&0x80 != 0 {
			p.fixedColor = p.fixedColor&^uint16(0x7C00) | v<<10
		}
	case 0x2133: // SETINI
		p.overscan = data&0x04 != 0
		p.pseudoHire = data&0x08 != 0
		p.interlace = data&0x01 != 0
	default:
		glog.V(2).Infof("Unimplemented PPU register write: address=0x%04x, data=0x%02x", addr, data)
	}
}

// readRegister dispatches a read of 0x2134-0x213F. Write-only registers
// return ok=false and fall to open bus.
func (p *PPU) readRegister(addr uint16) (byte, bool) {
	switch addr {
	case 0x2134: // MPYL
		p.updateMpy()
		return byte(p.mpyResult), true
	case 0x2135: // MPYM
		p.updateMpy()
		return byte(p.mpyResult >> 8), true
	case 0x2136: // MPYH
		p.updateMpy()
		return byte(p.mpyResult >> 16), true
	case 0x2137: // SLHV
		p.latchCounters()
		return 0, false // returns open bus, the latch is the side effect
	case 0x2138: // OAMDATAREAD
		data := p.oam[p.oamReadIndex()]
		p.oamAddr = (p.oamAddr + 1) & 0x3FF
		return data, true
	case 0x2139: // VMDATALREAD
		data := byte(p.vramLatch)
		p.stepVRAMRead(false)
		return data, true
	case 0x213A: // VMDATAHREAD
		data := byte(p.vramLatch >> 8)
		p.stepVRAMRead(true)
		return data, true
	case 0x213B: // CGDATAREAD
		var data byte
		if !p.cgToggle {
			data = byte(p.cgram[p.cgAddr])
		} else {
			data = byte(p.cgram[p.cgAddr] >> 8)
			p.cgAddr++
		}
		p.cgToggle = !p.cgToggle
		return data, true
	case 0x213C: // OPHCT
		var data byte
		if !p.ophToggle {
			data = byte(p.hLatch)
		} else {
			data = byte(p.hLatch >> 8)
		}
		p.ophToggle = !p.ophToggle
		return data, true
	case 0x213D: // OPVCT
		var data byte
		if !p.opvToggle {
			data = byte(p.vLatch)
		} else {
			data = byte(p.vLatch >> 8)
		}
		p.opvToggle = !p.opvToggle
		return data, true
	case 0x213E: // STAT77
		var data byte = 0x01 // 5C77 version
		if p.rangeOver {
			data |= 0x40
		}
		if p.timeOver {
			data |= 0x80
		}
		return data, true
	case 0x213F: // STAT78
		var data byte = 0x01 // 5C78 version, NTSC
		if p.hvLatched {
			data |= 0x40
		}
		p.hvLatched = false
		p.ophToggle = false
		p.opvToggle = false
		return data, true
	}
	return 0, false
}

func (p *PPU) updateMpy() {
	if p.mpyStale {
		p.mpyResult = int32(p.m7A) * int32(int8(p.m7B>>8))
		p.mpyStale = false
	}
}

// latchCounters records the H/V position for 0x213C/0x213D.
func (p *PPU) latchCounters() {
	p.hLatch = 0x0000 // latched between lines; H counter rests at 0
	p.vLatch = uint16(p.scanline)
	p.hvLatched = true
}

// oamReadIndex maps the current OAM byte address to the 544-byte array. The
// high table mirrors through its 32 bytes.
func (p *PPU) oamReadIndex() int {
	i := int(p.oamAddr) & 0x3FF
	if i >= 0x200 {
		return 0x200 + (i & 0x1F)
	}
	return i
}

// writeOAMData implements the 0x2104 write port: low-table writes are
// buffered in pairs, high-table writes land immediately.
func (p *PPU) writeOAMData(data byte) {
	i := p.oamReadIndex()
	if i >= 0x200 {
		p.oam[i] = data
	} else if i&1 == 0 {
		p.oamLatch = data
	} else {
		p.oam[i-1] = p.oamLatch
		p.oam[i] = data
	}
	p.oamAddr = (p.oamAddr + 1) & 0x3FF
}

// vramStep returns the address increment selected by VMAIN.
func (p *PPU) vramStep() uint16 {
	switch p.vmain & 3 {
	case 0:
		return 1
	case 1:
		return 32
	default:
		return 128
	}
}

// vramRemap applies the VMAIN address translation.
func (p *PPU) vramRemap(addr uint16) uint16 {
	switch p.vmain >> 2 & 3 {
	case 1:
		return addr&0xFF00 | addr<<3&0x00F8 | addr>>5&7
	case 2:
		return addr&0xFE00 | addr<<3&0x01F8 | addr>>6&7
	case 3:
		return addr&0xFC00 | addr<<3&0x03F8 | addr>>7&7
	}
	return addr
}

// writeVRAM handles the 0x2118/0x2119 data ports. Writes only land outside
// active display or under force blank.
func (p *PPU) writeVRAM(high bool, data byte) {
	addr := p.vramRemap(p.vramAddr) & 0x7FFF
	if p.forceBlank || p.vblank {
		w := p.vram[addr]
		if high {
			p.vram[addr] = w&0x00FF | uint16(data)<<8
		} else {
			p.vram[addr] = w&0xFF00 | uint16(data)
		}
		p.cache.noteVRAMWrite()
	}
	inc := p.vmain&0x80 != 0
	if high == inc {
		p.vramAddr += p.vramStep()
	}
}

// stepVRAMRead refreshes the prefetch latch and advances the address after a
// data port read.
func (p *PPU) stepVRAMRead(high bool) {
	inc := p.vmain&0x80 != 0
	if high == inc {
		p.vramLatch = p.vram[p.vramRemap(p.vramAddr)&0x7FFF]
		p.vramAddr += p.vramStep()
	}
}

func signExtend13(v uint16) int16 {
	if v&0x1000 != 0 {
		return int16(v | 0xE000)
	}
	return int16(v & 0x1FFF)
}
