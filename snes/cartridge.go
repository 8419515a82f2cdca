package snes

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
)

// References:
//   https://snes.nesdev.org/wiki/ROM_header
//   https://problemkaputt.de/fullsnes.htm#snescartridgeromheader

const (
	// The expanded header spans 0x7FB0-0x7FDF (LoROM) or 0xFFB0-0xFFDF
	// (HiROM): maker/game codes, then the 32-byte block from title through
	// checksum.
	headerSizeBytes  = 48
	copierHeaderSize = 512 // some dumps carry a 512-byte copier header
	loROMHeaderBase  = 0x7FB0
	hiROMHeaderBase  = 0xFFB0
	titleSizeBytes   = 21
)

// mapperKind selects one of the two primary cartridge address mappings.
// Enhancement chips (SA-1, SuperFX, ...) are not emulated.
type mapperKind int

const (
	// LoROM maps 32 KiB ROM chunks into the upper half of each bank.
	LoROM mapperKind = iota
	// HiROM maps 64 KiB ROM chunks into whole banks.
	HiROM
)

func (m mapperKind) String() string {
	if m == HiROM {
		return "HiROM"
	}
	return "LoROM"
}

// RomInfo is the header metadata exposed to frontends.
type RomInfo struct {
	Title    string
	Mapper   string
	Region   byte
	FastROM  bool
	ROMSize  int
	SRAMSize int
}

// Cartridge is a passive mapping of 24-bit bus addresses to ROM and SRAM
// storage. All mutation goes through the battery-backed SRAM.
type Cartridge struct {
	rom      []byte
	sram     []byte
	mapper   mapperKind
	title    string
	region   byte
	fastROM  bool
	sramMask int
}

// headerScore rates how plausible the expanded header at base looks as the
// SNES header. Higher is better, negative means impossible.
func headerScore(data []byte, base int, wantHiROM bool) int {
	if len(data) < base+headerSizeBytes+16 {
		return -1
	}
	h := data[base : base+headerSizeBytes]
	score := 0
	// Title should be mostly printable ASCII.
	printable := 0
	for _, b := range h[0x10 : 0x10+titleSizeBytes] {
		if 0x20 <= b && b <= 0x7E {
			printable++
		}
	}
	if printable < 15 {
		return -1
	}
	score += printable
	// Size exponents have hard upper bounds.
	if h[0x27] > 0x0D { // 8 MiB
		return -1
	}
	if h[0x28] > 0x08 { // 256 KiB
		return -1
	}
	// Checksum and its complement should cover all 16 bits between them.
	checksum := uint16(h[0x2E]) | uint16(h[0x2F])<<8
	complement := uint16(h[0x2C]) | uint16(h[0x2D])<<8
	if checksum^complement == 0xFFFF {
		score += 16
	}
	// Map mode byte agreeing with the header location is a strong signal.
	if (h[0x25]&0x01 == 0x01) == wantHiROM {
		score += 8
	}
	return score
}

// NewCartridge parses the ROM image, chooses the mapper by header
// plausibility and allocates battery SRAM.
func NewCartridge(data []byte) (*Cartridge, error) {
	if len(data)%1024 == copierHeaderSize {
		glog.V(1).Infof("Skipping %d-byte copier header", copierHeaderSize)
		data = data[copierHeaderSize:]
	}
	if len(data) < 0x8000 {
		return nil, fmt.Errorf("%w: image is %d bytes, smaller than the smallest ROM", ErrRomLoad, len(data))
	}
	loScore := headerScore(data, loROMHeaderBase, false)
	hiScore := headerScore(data, hiROMHeaderBase, true)
	if loScore < 0 && hiScore < 0 {
		return nil, fmt.Errorf("%w: no plausible header at 0x7FB0 or 0xFFB0", ErrRomLoad)
	}
	c := &Cartridge{rom: data}
	base := loROMHeaderBase
	if hiScore > loScore {
		c.mapper = HiROM
		base = hiROMHeaderBase
	}
	h := data[base : base+headerSizeBytes]
	c.title = strings.TrimRight(string(h[0x10:0x10+titleSizeBytes]), " \x00")
	c.region = h[0x29]
	c.fastROM = h[0x25]&0x10 != 0
	if exp := h[0x28]; exp > 0 {
		c.sram = make([]byte, 1024<<exp)
		c.sramMask = len(c.sram) - 1
	}
	sum := uint16(h[0x2E]) | uint16(h[0x2F])<<8
	if got := computeChecksum(data); got != sum {
		glog.Warningf("ROM checksum mismatch: header=0x%04x, computed=0x%04x", sum, got)
	}
	glog.V(1).Infof("Cartridge: title=%q, mapper=%v, sram=%d bytes", c.title, c.mapper, len(c.sram))
	return c, nil
}

// computeChecksum sums every ROM byte, mirroring the image up to the next
// power of two the way the checksum circuit sees it.
func computeChecksum(data []byte) uint16 {
	size := 1
	for size < len(data) {
		size <<= 1
	}
	var sum uint32
	for i := 0; i < size; i++ {
		sum += uint32(data[i%len(data)])
	}
	return uint16(sum)
}

// Info reports the parsed header metadata.
func (c *Cartridge) Info() RomInfo {
	return RomInfo{
		Title:    c.title,
		Mapper:   c.mapper.String(),
		Region:   c.region,
		FastROM:  c.fastROM,
		ROMSize:  len(c.rom),
		SRAMSize: len(c.sram),
	}
}

// read maps a 24-bit address to ROM or SRAM. ok is false when the address
// does not decode to the cartridge, which the bus treats as open bus.
func (c *Cartridge) read(bank byte, offset uint16) (byte, bool) {
	switch c.mapper {
	case LoROM:
		if bank >= 0x70 && bank <= 0x7D && offset < 0x8000 && c.sram != nil {
			return c.sram[(int(bank-0x70)<<15|int(offset))&c.sramMask], true
		}
		if offset >= 0x8000 {
			i := int(bank&0x7F)<<15 | int(offset&0x7FFF)
			return c.rom[i%len(c.rom)], true
		}
	case HiROM:
		b := bank & 0x7F
		if b >= 0x20 && b <= 0x3F && offset >= 0x6000 && offset < 0x8000 && c.sram != nil {
			return c.sram[(int(b-0x20)<<13|int(offset-0x6000))&c.sramMask], true
		}
		if b >= 0x40 || offset >= 0xC000 || (b < 0x40 && offset >= 0x8000) {
			i := int(b&0x3F)<<16 | int(offset)
			return c.rom[i%len(c.rom)], true
		}
	}
	return 0, false
}

// write stores to SRAM. ROM writes are silently ignored per the bus contract.
func (c *Cartridge) write(bank byte, offset uint16, data byte) bool {
	switch c.mapper {
	case LoROM:
		if bank >= 0x70 && bank <= 0x7D && offset < 0x8000 && c.sram != nil {
			c.sram[(int(bank-0x70)<<15|int(offset))&c.sramMask] = data
			return true
		}
	case HiROM:
		b := bank & 0x7F
		if b >= 0x20 && b <= 0x3F && offset >= 0x6000 && offset < 0x8000 && c.sram != nil {
			c.sram[(int(b-0x20)<<13|int(offset-0x6000))&c.sramMask] = data
			return true
		}
	}
	return false
}

// pageSlice hands the bus an 8 KiB backing slice for its fast path, when
// the (bank, page) maps entirely to ROM or SRAM. Images too small to cover
// a whole page fall back to the byte-wise mirror path.
func (c *Cartridge) pageSlice(bank byte, page uint16) ([]byte, bool, bool) {
	switch c.mapper {
	case LoROM:
		if bank >= 0x70 && bank <= 0x7D && page < 0x8000 {
			base := (int(bank-0x70)<<15 | int(page)) & c.sramMask
			if base+0x2000 <= len(c.sram) {
				return c.sram[base : base+0x2000], true, true
			}
			return nil, false, false
		}
		if page >= 0x8000 {
			base := int(bank&0x7F)<<15 | int(page&0x7FFF)
			if len(c.rom) > 0 {
				base %= len(c.rom)
			}
			if base+0x2000 <= len(c.rom) {
				return c.rom[base : base+0x2000], false, true
			}
		}
	case HiROM:
		b := bank & 0x7F
		if b >= 0x20 && b <= 0x3F && page == 0x6000 {
			base := (int(b-0x20) << 13) & c.sramMask
			if base+0x2000 <= len(c.sram) {
				return c.sram[base : base+0x2000], true, true
			}
			return nil, false, false
		}
		if b >= 0x40 || page >= 0x8000 {
			base := int(b&0x3F)<<16 | int(page)
			if len(c.rom) > 0 {
				base %= len(c.rom)
			}
			if base+0x2000 <= len(c.rom) {
				return c.rom[base : base+0x2000], false, true
			}
		}
	}
	return nil, false, false
}

// SRAMSnapshot copies the battery backup image.
func (c *Cartridge) SRAMSnapshot() []byte {
	out := make([]byte, len(c.sram))
	copy(out, c.sram)
	return out
}

// LoadSRAM restores a battery backup image previously taken with SRAMSnapshot.
func (c *Cartridge) LoadSRAM(data []byte) error {
	if len(data) != len(c.sram) {
		return fmt.Errorf("%w: sram image is %d bytes, cartridge has %d", ErrRomLoad, len(data), len(c.sram))
	}
	copy(c.sram, data)
	return nil
}
