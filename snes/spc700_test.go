package snes

import "testing"

func newTestSPC() (*APU, *SPC700) {
	a := NewAPU()
	a.Reset()
	return a, a.spc
}

// loadSPC places a program at 0x0200 and points PC at it.
func loadSPC(a *APU, s *SPC700, program ...byte) {
	copy(a.ram[0x0200:], program)
	s.pc = 0x0200
	s.iplEnabled = false
}

func TestSPCDecodeTableComplete(t *testing.T) {
	_, s := newTestSPC()
	for op := 0; op < 256; op++ {
		in := s.instructions[op]
		if in.execute == nil {
			t.Fatalf("opcode 0x%02x: no handler", op)
		}
		if in.cycles < 2 || in.cycles > 12 {
			t.Fatalf("opcode 0x%02x (%s): suspicious cycle count %d", op, in.mnemonic, in.cycles)
		}
	}
}

func TestSPCMovImmediate(t *testing.T) {
	a, s := newTestSPC()
	loadSPC(a, s, 0xE8, 0x42) // MOV A,#$42
	cycles := s.Step()
	if s.a != 0x42 {
		t.Fatalf("spc.a: got=0x%02x, want=0x42", s.a)
	}
	if cycles != 2 {
		t.Fatalf("cycles: got=%d, want=2", cycles)
	}
	if s.psw.z || s.psw.n {
		t.Fatalf("flags: Z=%v N=%v, want clear", s.psw.z, s.psw.n)
	}
}

func TestSPCAdcHalfCarry(t *testing.T) {
	a, s := newTestSPC()
	s.a = 0x0F
	s.psw.c = false
	loadSPC(a, s, 0x88, 0x01) // ADC A,#$01
	s.Step()
	if s.a != 0x10 {
		t.Fatalf("spc.a: got=0x%02x, want=0x10", s.a)
	}
	if !s.psw.h {
		t.Fatalf("half carry must be set crossing bit 3")
	}
}

func TestSPCDirectPageSelect(t *testing.T) {
	a, s := newTestSPC()
	a.ram[0x0010] = 0x11
	a.ram[0x0110] = 0x22
	loadSPC(a, s, 0xE4, 0x10) // MOV A,d
	s.psw.p = false
	s.Step()
	if s.a != 0x11 {
		t.Fatalf("page 0: got=0x%02x, want=0x11", s.a)
	}
	loadSPC(a, s, 0xE4, 0x10)
	s.psw.p = true
	s.Step()
	if s.a != 0x22 {
		t.Fatalf("page 1: got=0x%02x, want=0x22", s.a)
	}
}

func TestSPCMulDiv(t *testing.T) {
	a, s := newTestSPC()
	s.y = 12
	s.a = 34
	loadSPC(a, s, 0xCF) // MUL YA
	s.Step()
	if s.ya() != 12*34 {
		t.Fatalf("MUL: got=%d, want=%d", s.ya(), 12*34)
	}
	s.setYA(1234)
	s.x = 100
	loadSPC(a, s, 0x9E) // DIV YA,X
	s.Step()
	if s.a != 12 || s.y != 34 {
		t.Fatalf("DIV: got A=%d Y=%d, want 12 r 34", s.a, s.y)
	}
}

func TestSPCMovW(t *testing.T) {
	a, s := newTestSPC()
	a.ram[0x0020] = 0xCD
	a.ram[0x0021] = 0xAB
	loadSPC(a, s, 0xBA, 0x20) // MOVW YA,d
	s.Step()
	if s.ya() != 0xABCD {
		t.Fatalf("MOVW: got=0x%04x, want=0xABCD", s.ya())
	}
}

func TestSPCBranchCycles(t *testing.T) {
	a, s := newTestSPC()
	s.psw.z = true
	loadSPC(a, s, 0xF0, 0x05) // BEQ +5
	cycles := s.Step()
	if cycles != 4 {
		t.Fatalf("taken branch: got=%d, want=4", cycles)
	}
	if s.pc != 0x0207 {
		t.Fatalf("branch target: got=0x%04x, want=0x0207", s.pc)
	}
}

func TestSPCTimers(t *testing.T) {
	_, s := newTestSPC()
	// Enable timer 2 (64 kHz) with target 4.
	s.writeIO(0x00FC, 4)
	s.writeIO(0x00F1, 0x04)
	s.tickTimers(16 * 4) // four divider ticks
	if got := s.readIO(0x00FF); got != 1 {
		t.Fatalf("timer 2 counter: got=%d, want=1", got)
	}
	// The read cleared it.
	if got := s.readIO(0x00FF); got != 0 {
		t.Fatalf("timer 2 counter after read: got=%d, want=0", got)
	}
	// Timer 0 runs at 8 kHz: 128 cycles per divider tick.
	s.writeIO(0x00FA, 2)
	s.writeIO(0x00F1, 0x05)
	s.tickTimers(128 * 2)
	if got := s.readIO(0x00FD); got != 1 {
		t.Fatalf("timer 0 counter: got=%d, want=1", got)
	}
}

func TestSPCIPLSignature(t *testing.T) {
	// Out of reset the IPL announces itself with 0xAA/0xBB on ports 0/1.
	a, _ := newTestSPC()
	for i := 0; i < 4000; i++ {
		a.spc.Step()
	}
	if a.ReadPort(0) != 0xAA || a.ReadPort(1) != 0xBB {
		t.Fatalf("IPL signature: got=0x%02x/0x%02x, want=0xAA/0xBB", a.ReadPort(0), a.ReadPort(1))
	}
}

func TestSPCBootROMToggle(t *testing.T) {
	a, s := newTestSPC()
	if got := s.read(0xFFC0); got != iplROM[0] {
		t.Fatalf("IPL mapped: got=0x%02x, want=0x%02x", got, iplROM[0])
	}
	a.ram[0xFFC0] = 0x99
	s.writeIO(0x00F1, 0x00) // drop the IPL mapping
	if got := s.read(0xFFC0); got != 0x99 {
		t.Fatalf("RAM visible after unmapping IPL: got=0x%02x", got)
	}
}
