package snes

import "testing"

func TestWRAMMirror(t *testing.T) {
	c := testConsole()
	c.Bus.Write(0x7E0123, 0xAB)
	if got := c.Bus.Read(0x000123); got != 0xAB {
		t.Fatalf("low WRAM mirror: got=0x%02x, want=0xAB", got)
	}
	if got := c.Bus.Read(0xBF0123); got != 0xAB {
		t.Fatalf("bank 0xBF mirror: got=0x%02x, want=0xAB", got)
	}
	c.Bus.Write(0x7F0000, 0xCD)
	if got := c.Bus.Read(0x7F0000); got != 0xCD {
		t.Fatalf("upper WRAM: got=0x%02x, want=0xCD", got)
	}
	// The mirror only covers the first 8 KiB.
	if got := c.Bus.Read(0x000000); got == 0xCD {
		t.Fatalf("bank 0 must not see bank 0x7F WRAM")
	}
}

func TestOpenBus(t *testing.T) {
	c := testConsole()
	c.Bus.Write(0x7E0000, 0x5A) // drives 0x5A onto the bus
	// 0x00:5000 decodes to nothing on a LoROM board.
	if got := c.Bus.Read(0x005000); got != 0x5A {
		t.Fatalf("open bus read: got=0x%02x, want=0x5A", got)
	}
	if c.Bus.openBusHits == 0 {
		t.Fatalf("open bus debug counter not incremented")
	}
}

func TestWRAMPort(t *testing.T) {
	c := testConsole()
	// Point the port at 0x1:0234 and stream two bytes.
	c.Bus.Write(0x002181, 0x34)
	c.Bus.Write(0x002182, 0x02)
	c.Bus.Write(0x002183, 0x01)
	c.Bus.Write(0x002180, 0x11)
	c.Bus.Write(0x002180, 0x22)
	if got := c.Bus.wram[0x10234]; got != 0x11 {
		t.Fatalf("wram port write: got=0x%02x, want=0x11", got)
	}
	if got := c.Bus.wram[0x10235]; got != 0x22 {
		t.Fatalf("wram port auto-increment: got=0x%02x, want=0x22", got)
	}
	// Reads continue from the incremented address.
	c.Bus.Write(0x002181, 0x34)
	c.Bus.Write(0x002182, 0x02)
	c.Bus.Write(0x002183, 0x01)
	if got := c.Bus.Read(0x002180); got != 0x11 {
		t.Fatalf("wram port read: got=0x%02x, want=0x11", got)
	}
}

func TestMultiplyUnit(t *testing.T) {
	c := testConsole()
	c.Bus.Write(0x004202, 7)
	c.Bus.Write(0x004203, 9)
	lo := c.Bus.Read(0x004216)
	hi := c.Bus.Read(0x004217)
	if got := uint16(hi)<<8 | uint16(lo); got != 63 {
		t.Fatalf("multiply: got=%d, want=63", got)
	}
}

func TestDivideUnit(t *testing.T) {
	c := testConsole()
	c.Bus.Write(0x004204, 0x39) // dividend 12345
	c.Bus.Write(0x004205, 0x30)
	c.Bus.Write(0x004206, 100)
	quot := uint16(c.Bus.Read(0x004214)) | uint16(c.Bus.Read(0x004215))<<8
	rem := uint16(c.Bus.Read(0x004216)) | uint16(c.Bus.Read(0x004217))<<8
	if quot != 123 || rem != 45 {
		t.Fatalf("divide: got=%d r %d, want=123 r 45", quot, rem)
	}
	// Division by zero yields 0xFFFF with the dividend as remainder.
	c.Bus.Write(0x004206, 0)
	quot = uint16(c.Bus.Read(0x004214)) | uint16(c.Bus.Read(0x004215))<<8
	rem = uint16(c.Bus.Read(0x004216)) | uint16(c.Bus.Read(0x004217))<<8
	if quot != 0xFFFF || rem != 12345 {
		t.Fatalf("divide by zero: got=%d r %d, want=0xFFFF r 12345", quot, rem)
	}
}

func TestPageCacheCoherent(t *testing.T) {
	c := testConsole()
	// Prime the bank 0x7E fast path, then make sure a write through that
	// line is visible through the bank 0x00 mirror.
	if got := c.Bus.Read(0x7E0500); got != 0 {
		t.Fatalf("fresh WRAM: got=0x%02x, want=0", got)
	}
	c.Bus.Write(0x7E0500, 0x66)
	if got := c.Bus.Read(0x000500); got != 0x66 {
		t.Fatalf("mirror after cached write: got=0x%02x, want=0x66", got)
	}
	// ROM pages are read-only through the cache.
	c.Bus.Write(0x008000, 0x00)
	if got := c.Bus.Read(0x008000); got != 0x80 {
		t.Fatalf("ROM write must be ignored: got=0x%02x", got)
	}
}

func TestRDNMIClearsOnRead(t *testing.T) {
	c := testConsole()
	c.Bus.nmiFlag = true
	data, _ := c.Bus.readSystem(0x4210)
	if data&0x80 == 0 {
		t.Fatalf("RDNMI: flag bit not set")
	}
	data, _ = c.Bus.readSystem(0x4210)
	if data&0x80 != 0 {
		t.Fatalf("RDNMI: flag must clear after read")
	}
}

func TestMailboxThroughBus(t *testing.T) {
	c := testConsole()
	c.Bus.Write(0x002140, 0xAA)
	if got := c.APU.portIn[0]; got != 0xAA {
		t.Fatalf("mailbox write: got=0x%02x, want=0xAA", got)
	}
	c.APU.portOut[1] = 0xBB
	if got := c.Bus.Read(0x002141); got != 0xBB {
		t.Fatalf("mailbox read: got=0x%02x, want=0xBB", got)
	}
	// Ports mirror through 0x217F.
	if got := c.Bus.Read(0x002175); got != 0xBB {
		t.Fatalf("mailbox mirror: got=0x%02x, want=0xBB", got)
	}
}
