package snes

import (
	"github.com/golang/glog"
)

// DMA implements the eight general/HDMA channels.
// References:
//   https://snes.nesdev.org/wiki/DMA_registers
//   https://problemkaputt.de/fullsnes.htm#snesdmaandhdma

// transferPatterns gives the B-bus register offset sequence per mode.
var transferPatterns = [8][]byte{
	{0},          // 0: 1 register
	{0, 1},       // 1: 2 registers
	{0, 0},       // 2: 1 register, write twice
	{0, 0, 1, 1}, // 3: 2 registers, write twice
	{0, 1, 2, 3}, // 4: 4 registers
	{0, 1, 0, 1}, // 5: 2 registers alternating
	{0, 0},       // 6: same as 2
	{0, 0, 1, 1}, // 7: same as 3
}

type dmaChannel struct {
	control  byte   // 0x43n0 DMAPn
	bAddr    byte   // 0x43n1 BBADn
	aAddr    uint16 // 0x43n2-3 A1TnL/H
	aBank    byte   // 0x43n4 A1Bn
	count    uint16 // 0x43n5-6 DASnL/H, doubles as HDMA indirect address
	indBank  byte   // 0x43n7 DASBn
	tableA   uint16 // 0x43n8-9 A2AnL/H, HDMA table cursor
	lineCnt  byte   // 0x43nA NLTRn
	hdmaDone bool
	doTx     bool // transfer pending on the current scanline
}

func (ch *dmaChannel) fixed() bool {
	return ch.control&0x08 != 0
}

// aStep is the A-bus address step: +1, fixed, or -1.
func (ch *dmaChannel) aStep() int {
	switch ch.control >> 3 & 3 {
	case 0:
		return 1
	case 2:
		return -1
	}
	return 0
}

func (ch *dmaChannel) indirect() bool {
	return ch.control&0x40 != 0
}

func (ch *dmaChannel) bToA() bool {
	return ch.control&0x80 != 0
}

type DMA struct {
	bus      *Bus
	channels [8]dmaChannel
	hdmaEn   byte
}

func NewDMA(bus *Bus) *DMA {
	d := &DMA{bus: bus}
	bus.attachDMA(d)
	return d
}

func (d *DMA) Reset() {
	d.channels = [8]dmaChannel{}
	d.hdmaEn = 0
}

// writeRegister handles 0x4300-0x437F.
func (d *DMA) writeRegister(addr uint16, data byte) {
	ch := &d.channels[addr>>4&7]
	switch addr & 0xF {
	case 0x0:
		ch.control = data
	case 0x1:
		ch.bAddr = data
	case 0x2:
		ch.aAddr = ch.aAddr&0xFF00 | uint16(data)
	case 0x3:
		ch.aAddr = ch.aAddr&0x00FF | uint16(data)<<8
	case 0x4:
		ch.aBank = data
	case 0x5:
		ch.count = ch.count&0xFF00 | uint16(data)
	case 0x6:
		ch.count = ch.count&0x00FF | uint16(data)<<8
	case 0x7:
		ch.indBank = data
	case 0x8:
		ch.tableA = ch.tableA&0xFF00 | uint16(data)
	case 0x9:
		ch.tableA = ch.tableA&0x00FF | uint16(data)<<8
	case 0xA:
		ch.lineCnt = data
	default:
		glog.V(2).Infof("Unimplemented DMA register write: address=0x%04x, data=0x%02x", addr, data)
	}
}

// readRegister mirrors the channel registers back.
func (d *DMA) readRegister(addr uint16) (byte, bool) {
	ch := &d.channels[addr>>4&7]
	switch addr & 0xF {
	case 0x0:
		return ch.control, true
	case 0x1:
		return ch.bAddr, true
	case 0x2:
		return byte(ch.aAddr), true
	case 0x3:
		return byte(ch.aAddr >> 8), true
	case 0x4:
		return ch.aBank, true
	case 0x5:
		return byte(ch.count), true
	case 0x6:
		return byte(ch.count >> 8), true
	case 0x7:
		return ch.indBank, true
	case 0x8:
		return byte(ch.tableA), true
	case 0x9:
		return byte(ch.tableA >> 8), true
	case 0xA:
		return ch.lineCnt, true
	}
	return 0, false
}

// runGeneral performs the transfers selected by an MDMAEN write and
// returns the master cycles the CPU stalls for: 8 per byte plus 8 per
// channel plus 8 setup overhead.
func (d *DMA) runGeneral(mask byte) int {
	if mask == 0 {
		return 0
	}
	cycles := 8
	for n := 0; n < 8; n++ {
		if mask&(1<<n) == 0 {
			continue
		}
		ch := &d.channels[n]
		pattern := transferPatterns[ch.control&7]
		count := int(ch.count)
		if count == 0 {
			count = 0x10000
		}
		glog.V(1).Infof("DMA %d: mode=%d, B=0x21%02x, A=0x%02x%04x, count=%d",
			n, ch.control&7, ch.bAddr, ch.aBank, ch.aAddr, count)
		cycles += 8
		step := ch.aStep()
		for i := 0; i < count; i++ {
			reg := ch.bAddr + pattern[i%len(pattern)]
			aAddr := uint32(ch.aBank)<<16 | uint32(ch.aAddr)
			if ch.bToA() {
				d.bus.Write(aAddr, d.bus.readBBus(reg))
			} else {
				d.bus.writeBBus(reg, d.bus.Read(aAddr))
			}
			ch.aAddr = uint16(int(ch.aAddr) + step)
			cycles += 8
		}
		ch.count = 0
	}
	return cycles
}

func (d *DMA) setHDMAEnable(mask byte) {
	d.hdmaEn = mask
}

// InitHDMA loads each enabled channel's table at the top of the frame.
func (d *DMA) InitHDMA() {
	for n := 0; n < 8; n++ {
		ch := &d.channels[n]
		ch.hdmaDone = false
		ch.doTx = false
		if d.hdmaEn&(1<<n) == 0 {
			continue
		}
		ch.tableA = ch.aAddr
		d.reloadHDMA(ch)
	}
}

// reloadHDMA consumes a table header and, in indirect mode, the pointer
// that follows it. A zero header parks the channel for the rest of the
// frame.
func (d *DMA) reloadHDMA(ch *dmaChannel) {
	header := d.bus.Read(uint32(ch.aBank)<<16 | uint32(ch.tableA))
	ch.tableA++
	ch.lineCnt = header
	if header == 0 {
		ch.hdmaDone = true
		return
	}
	if ch.indirect() {
		l := d.bus.Read(uint32(ch.aBank)<<16 | uint32(ch.tableA))
		ch.tableA++
		h := d.bus.Read(uint32(ch.aBank)<<16 | uint32(ch.tableA))
		ch.tableA++
		ch.count = uint16(h)<<8 | uint16(l)
	}
	ch.doTx = true
}

// RunHDMA services the enabled channels for one scanline.
func (d *DMA) RunHDMA() {
	for n := 0; n < 8; n++ {
		if d.hdmaEn&(1<<n) == 0 {
			continue
		}
		ch := &d.channels[n]
		if ch.hdmaDone {
			continue
		}
		if ch.doTx {
			pattern := transferPatterns[ch.control&7]
			for _, off := range pattern {
				var data byte
				if ch.indirect() {
					data = d.bus.Read(uint32(ch.indBank)<<16 | uint32(ch.count))
					ch.count++
				} else {
					data = d.bus.Read(uint32(ch.aBank)<<16 | uint32(ch.tableA))
					ch.tableA++
				}
				d.bus.writeBBus(ch.bAddr+off, data)
			}
		}
		ch.lineCnt--
		ch.doTx = ch.lineCnt&0x80 != 0 // repeat flag: emit every line
		if ch.lineCnt&0x7F == 0 {
			d.reloadHDMA(ch)
		}
	}
}
