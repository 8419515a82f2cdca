package snes

import "testing"

// writeDSP pokes a DSP register directly.
func writeDSP(a *APU, reg, data byte) {
	a.dsp.writeRegister(reg, data)
}

// buildBRRSource installs a sample directory entry 0 at 0x0200 pointing at
// a one-block BRR source at 0x0300.
func buildBRRSource(a *APU, header byte, nibbles byte) {
	writeDSP(a, 0x5D, 0x02) // DIR = 0x0200
	a.ram[0x0200] = 0x00    // start 0x0300
	a.ram[0x0201] = 0x03
	a.ram[0x0202] = 0x00 // loop 0x0300
	a.ram[0x0203] = 0x03
	a.ram[0x0300] = header
	for i := 0; i < 8; i++ {
		a.ram[0x0301+i] = nibbles
	}
}

func TestBRRFilterZeroDecode(t *testing.T) {
	a := NewAPU()
	a.Reset()
	// Shift 12, filter 0, loop+end: nibble 1 decodes to 1<<12>>1 = 2048,
	// with no predictor contribution on the first block.
	buildBRRSource(a, 0xC0|0x03, 0x11)
	a.dsp.keyOn(0)
	a.dsp.decodeBRRBlock(0)
	v := &a.dsp.voices[0]
	for i, got := range v.brrBlock {
		if got != 2048 {
			t.Fatalf("sample %d: got=%d, want=2048", i, got)
		}
	}
	if !v.endx {
		t.Fatalf("end flag must set ENDX")
	}
	if !v.active {
		t.Fatalf("end+loop must keep the voice running")
	}
	if v.brrAddr != 0x0300 {
		t.Fatalf("loop address: got=0x%04x, want=0x0300", v.brrAddr)
	}
}

func TestBRREndWithoutLoopSilences(t *testing.T) {
	a := NewAPU()
	a.Reset()
	buildBRRSource(a, 0xC0|0x01, 0x11) // end, no loop
	a.dsp.keyOn(0)
	a.dsp.decodeBRRBlock(0)
	v := &a.dsp.voices[0]
	if v.active {
		t.Fatalf("end without loop must stop the voice")
	}
	if !v.endx {
		t.Fatalf("ENDX must be set")
	}
}

func TestBRRNegativeNibbles(t *testing.T) {
	a := NewAPU()
	a.Reset()
	buildBRRSource(a, 0xC0|0x03, 0xFF) // nibble -1 everywhere
	a.dsp.keyOn(0)
	a.dsp.decodeBRRBlock(0)
	if got := a.dsp.voices[0].brrBlock[0]; got != -2048 {
		t.Fatalf("negative nibble: got=%d, want=-2048", got)
	}
}

func TestVoiceProducesAudio(t *testing.T) {
	a := NewAPU()
	a.Reset()
	buildBRRSource(a, 0xC0|0x03, 0x11)
	writeDSP(a, 0x6C, 0x00)      // clear reset/mute
	writeDSP(a, 0x00, 0x7F)      // voice 0 volume L
	writeDSP(a, 0x01, 0x7F)      // voice 0 volume R
	writeDSP(a, 0x02, 0x00)      // pitch 0x1000 = 1:1
	writeDSP(a, 0x03, 0x10)
	writeDSP(a, 0x07, 0xFF&0x7F) // direct gain, max
	writeDSP(a, 0x0C, 0x7F)      // main volume
	writeDSP(a, 0x1C, 0x7F)
	writeDSP(a, 0x4C, 0x01)      // KON voice 0
	var nonzero bool
	for i := 0; i < 64; i++ {
		l, r := a.dsp.Sample()
		if l != 0 || r != 0 {
			nonzero = true
		}
		if l != r {
			t.Fatalf("equal volumes must produce identical channels: %d vs %d", l, r)
		}
	}
	if !nonzero {
		t.Fatalf("voice produced only silence")
	}
}

func TestDSPMuteFlag(t *testing.T) {
	a := NewAPU()
	a.Reset()
	buildBRRSource(a, 0xC0|0x03, 0x11)
	writeDSP(a, 0x6C, 0x40) // mute
	writeDSP(a, 0x00, 0x7F)
	writeDSP(a, 0x07, 0x7F)
	writeDSP(a, 0x4C, 0x01)
	for i := 0; i < 16; i++ {
		if l, r := a.dsp.Sample(); l != 0 || r != 0 {
			t.Fatalf("muted DSP must output silence")
		}
	}
}

func TestEnvelopeAttackReachesFull(t *testing.T) {
	a := NewAPU()
	a.Reset()
	buildBRRSource(a, 0xC0|0x03, 0x11)
	writeDSP(a, 0x6C, 0x00)
	writeDSP(a, 0x05, 0x80|0x0F) // ADSR enabled, instant attack
	writeDSP(a, 0x06, 0xE0)      // sustain level 7
	writeDSP(a, 0x02, 0x00)
	writeDSP(a, 0x03, 0x10)
	writeDSP(a, 0x4C, 0x01)
	a.dsp.Sample()
	a.dsp.Sample()
	v := &a.dsp.voices[0]
	if v.phase != envDecay && v.env < 0x700 {
		t.Fatalf("instant attack: env=%d phase=%d", v.env, v.phase)
	}
}

func TestKeyOffReleases(t *testing.T) {
	a := NewAPU()
	a.Reset()
	buildBRRSource(a, 0xC0|0x03, 0x11)
	writeDSP(a, 0x6C, 0x00)
	writeDSP(a, 0x07, 0x7F)
	writeDSP(a, 0x4C, 0x01)
	a.dsp.Sample()
	writeDSP(a, 0x5C, 0x01) // KOF
	if a.dsp.voices[0].phase != envRelease {
		t.Fatalf("key off must enter release")
	}
	for i := 0; i < 300; i++ {
		a.dsp.Sample()
	}
	if a.dsp.voices[0].active {
		t.Fatalf("release must eventually silence the voice")
	}
}

func TestEndxReadAndClear(t *testing.T) {
	a := NewAPU()
	a.Reset()
	buildBRRSource(a, 0xC0|0x01, 0x11)
	a.dsp.keyOn(0)
	a.dsp.decodeBRRBlock(0)
	if got := a.dsp.readRegister(0x7C); got&0x01 == 0 {
		t.Fatalf("ENDX bit 0 must be set")
	}
	a.dsp.writeRegister(0x7C, 0x00)
	if got := a.dsp.readRegister(0x7C); got != 0 {
		t.Fatalf("ENDX write must clear all bits: got=0x%02x", got)
	}
}
