package snes

import (
	"github.com/golang/glog"
)

// Bus is the sole arbiter of 24-bit address decoding and MMIO dispatch. It
// owns WRAM and routes everything else to the component backing the
// address.
// References:
//   https://snes.nesdev.org/wiki/Memory_map
//   https://problemkaputt.de/fullsnes.htm#snesmemorymap

const wramSize = 0x20000

// pagePolicy tags a fast-path cache line.
type pagePolicy byte

const (
	pageNone pagePolicy = iota // MMIO or unmapped, always slow path
	pageRO
	pageRW
)

// pageEntry is one line of the direct-mapped (bank, 8 KiB page) cache.
// MMIO pages are never cached.
type pageEntry struct {
	mem    []byte
	policy pagePolicy
	valid  bool
}

type Bus struct {
	wram [wramSize]byte

	cart       *Cartridge
	ppu        *PPU
	apu        *APU
	dma        *DMA
	controller *Controller

	pages [2048]pageEntry

	// openBus holds the last byte driven on the bus.
	openBus byte

	// WRAM port 0x2180-0x2183
	wramAddr uint32

	// 0x4200 NMITIMEN
	nmiEnabled     bool
	vIRQEnabled    bool
	hIRQEnabled    bool
	autoJoyEnabled bool

	// 0x4207-0x420A H/V timers
	hTime uint16
	vTime uint16

	nmiFlag bool // RDNMI bit 7
	irqFlag bool // TIMEUP bit 7

	// multiply / divide units
	mulA      byte
	mulB      byte
	dividend  uint16
	divisor   byte
	divQuot   uint16
	mulDivRes uint16 // product or remainder, 0x4216/0x4217

	// 0x420D MEMSEL
	fastROM bool

	// master cycles the CPU must stall for pending DMA
	dmaStall int

	// debug counter of reads/writes recovered as open bus
	openBusHits uint64
}

// NewBus wires the bus to its components. The DMA engine is attached
// afterwards since it needs the bus itself.
func NewBus(cart *Cartridge, ppu *PPU, apu *APU, controller *Controller) *Bus {
	b := &Bus{cart: cart, ppu: ppu, apu: apu, controller: controller}
	b.invalidatePages()
	return b
}

func (b *Bus) attachDMA(dma *DMA) {
	b.dma = dma
}

func (b *Bus) invalidatePages() {
	for i := range b.pages {
		b.pages[i] = pageEntry{}
	}
}

// takeDMAStall drains the master cycles the CPU owes for DMA transfers.
func (b *Bus) takeDMAStall() int {
	n := b.dmaStall
	b.dmaStall = 0
	return n
}

func pageIndex(bank byte, offset uint16) int {
	return int(bank)<<3 | int(offset)>>13
}

// fillPage decodes one (bank, page) into a cache line, or marks it
// uncacheable. Pages containing any MMIO stay on the slow path.
func (b *Bus) fillPage(bank byte, offset uint16) *pageEntry {
	e := &b.pages[pageIndex(bank, offset)]
	e.valid = true
	e.policy = pageNone
	e.mem = nil
	system := bank <= 0x3F || bank >= 0x80 && bank <= 0xBF
	page := offset &^ 0x1FFF
	switch {
	case system && page == 0x0000:
		e.mem = b.wram[:0x2000]
		e.policy = pageRW
	case bank == 0x7E || bank == 0x7F:
		base := int(bank&1)<<16 | int(page)
		e.mem = b.wram[base : base+0x2000]
		e.policy = pageRW
	case system && page < 0x8000:
		// MMIO lives here; never cached.
	default:
		if mem, writable, ok := b.cart.pageSlice(bank, page); ok {
			e.mem = mem
			if writable {
				e.policy = pageRW
			} else {
				e.policy = pageRO
			}
		}
	}
	return e
}

// Read reads one byte at a 24-bit address. Unmapped addresses return open
// bus.
func (b *Bus) Read(addr uint32) byte {
	bank := byte(addr >> 16)
	offset := uint16(addr)
	e := &b.pages[pageIndex(bank, offset)]
	if !e.valid {
		e = b.fillPage(bank, offset)
	}
	if e.policy != pageNone {
		b.openBus = e.mem[offset&0x1FFF]
		return b.openBus
	}
	data, ok := b.readSlow(bank, offset)
	if !ok {
		b.openBusHits++
		return b.openBus
	}
	b.openBus = data
	return data
}

// Write writes one byte. ROM writes are silently dropped.
func (b *Bus) Write(addr uint32, data byte) {
	bank := byte(addr >> 16)
	offset := uint16(addr)
	b.openBus = data
	e := &b.pages[pageIndex(bank, offset)]
	if !e.valid {
		e = b.fillPage(bank, offset)
	}
	switch e.policy {
	case pageRW:
		e.mem[offset&0x1FFF] = data
		return
	case pageRO:
		return
	}
	b.writeSlow(bank, offset, data)
}

// readSlow is the decode ladder for MMIO and cartridge space.
func (b *Bus) readSlow(bank byte, offset uint16) (byte, bool) {
	system := bank <= 0x3F || bank >= 0x80 && bank <= 0xBF
	if system && offset >= 0x2000 && offset < 0x8000 {
		switch {
		case offset >= 0x2100 && offset <= 0x213F:
			return b.ppu.readRegister(offset)
		case offset >= 0x2140 && offset <= 0x217F:
			return b.apu.ReadPort(int(offset & 3)), true
		case offset == 0x2180:
			data := b.wram[b.wramAddr&(wramSize-1)]
			b.wramAddr++
			return data, true
		case offset == 0x4016:
			return b.controller.read(0) | b.openBus&0xFC, true
		case offset == 0x4017:
			return b.controller.read(1) | 0x1C | b.openBus&0xE0, true
		case offset >= 0x4200 && offset <= 0x421F:
			return b.readSystem(offset)
		case offset >= 0x4300 && offset <= 0x437F:
			return b.dma.readRegister(offset)
		}
		return 0, false
	}
	return b.cart.read(bank, offset)
}

func (b *Bus) writeSlow(bank byte, offset uint16, data byte) {
	system := bank <= 0x3F || bank >= 0x80 && bank <= 0xBF
	if !system || offset < 0x2000 || offset >= 0x8000 {
		if !b.cart.write(bank, offset, data) {
			b.openBusHits++
		}
		return
	}
	switch {
	case offset >= 0x2100 && offset <= 0x213F:
		b.ppu.writeRegister(offset, data)
	case offset >= 0x2140 && offset <= 0x217F:
		b.apu.WritePort(int(offset&3), data)
	case offset == 0x2180:
		b.wram[b.wramAddr&(wramSize-1)] = data
		b.wramAddr++
	case offset == 0x2181:
		b.wramAddr = b.wramAddr&0x1FF00 | uint32(data)
	case offset == 0x2182:
		b.wramAddr = b.wramAddr&0x100FF | uint32(data)<<8
	case offset == 0x2183:
		b.wramAddr = b.wramAddr&0x0FFFF | uint32(data&1)<<16
	case offset == 0x4016:
		b.controller.write(data)
	case offset >= 0x4200 && offset <= 0x421F:
		b.writeSystem(offset, data)
	case offset >= 0x4300 && offset <= 0x437F:
		b.dma.writeRegister(offset, data)
	default:
		b.openBusHits++
		glog.V(2).Infof("Unimplemented bus write: address=0x%02x%04x, data=0x%02x", bank, offset, data)
	}
}

// readSystem covers 0x4200-0x421F.
func (b *Bus) readSystem(offset uint16) (byte, bool) {
	switch offset {
	case 0x4210: // RDNMI
		data := byte(0x02) // CPU version
		if b.nmiFlag {
			data |= 0x80
		}
		b.nmiFlag = false
		return data | b.openBus&0x70, true
	case 0x4211: // TIMEUP
		var data byte
		if b.irqFlag {
			data = 0x80
		}
		b.irqFlag = false
		return data | b.openBus&0x7F, true
	case 0x4212: // HVBJOY
		var data byte
		if b.ppu.vblank {
			data |= 0x80
		}
		return data | b.openBus&0x3E, true
	case 0x4214:
		return byte(b.divQuot), true
	case 0x4215:
		return byte(b.divQuot >> 8), true
	case 0x4216:
		return byte(b.mulDivRes), true
	case 0x4217:
		return byte(b.mulDivRes >> 8), true
	case 0x4218, 0x4219, 0x421A, 0x421B, 0x421C, 0x421D, 0x421E, 0x421F:
		return b.controller.autoReadByte(int(offset - 0x4218)), true
	}
	return 0, false
}

// writeSystem covers 0x4200-0x421F.
func (b *Bus) writeSystem(offset uint16, data byte) {
	switch offset {
	case 0x4200: // NMITIMEN
		b.nmiEnabled = data&0x80 != 0
		b.vIRQEnabled = data&0x20 != 0
		b.hIRQEnabled = data&0x10 != 0
		b.autoJoyEnabled = data&0x01 != 0
	case 0x4202:
		b.mulA = data
	case 0x4203: // writing the multiplier runs the multiply unit
		b.mulB = data
		b.mulDivRes = uint16(b.mulA) * uint16(b.mulB)
	case 0x4204:
		b.dividend = b.dividend&0xFF00 | uint16(data)
	case 0x4205:
		b.dividend = b.dividend&0x00FF | uint16(data)<<8
	case 0x4206: // writing the divisor runs the divide unit
		b.divisor = data
		if b.divisor == 0 {
			b.divQuot = 0xFFFF
			b.mulDivRes = b.dividend
		} else {
			b.divQuot = b.dividend / uint16(b.divisor)
			b.mulDivRes = b.dividend % uint16(b.divisor)
		}
	case 0x4207:
		b.hTime = b.hTime&0x100 | uint16(data)
	case 0x4208:
		b.hTime = b.hTime&0x0FF | uint16(data&1)<<8
	case 0x4209:
		b.vTime = b.vTime&0x100 | uint16(data)
	case 0x420A:
		b.vTime = b.vTime&0x0FF | uint16(data&1)<<8
	case 0x420B: // MDMAEN
		b.dmaStall += b.dma.runGeneral(data)
	case 0x420C: // HDMAEN
		b.dma.setHDMAEnable(data)
	case 0x420D: // MEMSEL
		b.fastROM = data&1 != 0
	default:
		glog.V(2).Infof("Unimplemented system register write: address=0x%04x, data=0x%02x", offset, data)
	}
}

// readBBus and writeBBus are the DMA engine's window onto the 0x21xx
// register file.
func (b *Bus) readBBus(reg byte) byte {
	return b.Read(0x002100 | uint32(reg))
}

func (b *Bus) writeBBus(reg byte, data byte) {
	b.Write(0x002100|uint32(reg), data)
}
