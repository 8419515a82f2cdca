package snes

import (
	"bytes"
	"testing"
)

func TestStepFrameScanlineAndSampleBudget(t *testing.T) {
	c := testConsole()
	if err := c.StepFrame(); err != nil {
		t.Fatal(err)
	}
	// One NTSC frame advances exactly 262 scanlines worth of the master
	// clock; the CPU may overshoot its last instruction slightly.
	if c.cycles < totalScanlines*cyclesPerScanline {
		t.Fatalf("frame cycles: got=%d, want>=%d", c.cycles, totalScanlines*cyclesPerScanline)
	}
	samples := c.AudioDrain()
	frames := len(samples) / 2
	if frames < 532 || frames > 534 {
		t.Fatalf("samples per frame: got=%d, want 533 +-1", frames)
	}
	if got := c.AudioDrain(); len(got) != 0 {
		t.Fatalf("drain must clear the queue, got %d samples", len(got))
	}
}

func TestNMIDeliveredAtVBlank(t *testing.T) {
	c := testConsole()
	c.Bus.Write(0x004200, 0x80) // enable NMI
	if err := c.StepFrame(); err != nil {
		t.Fatal(err)
	}
	// The BRA-loop ROM never reads RDNMI, so the flag remains latched.
	if !c.Bus.nmiFlag {
		t.Fatalf("vblank must latch the NMI flag")
	}
}

func TestMailboxEcho(t *testing.T) {
	// Boot the APU, write 0xAA to 0x2140, step a frame; the byte must be
	// observable in the SPC700's port state and survive a save state.
	c := testConsole()
	if err := c.StepFrame(); err != nil {
		t.Fatal(err)
	}
	c.Bus.Write(0x002140, 0xAA)
	if err := c.StepFrame(); err != nil {
		t.Fatal(err)
	}
	if got := c.APU.portIn[0]; got != 0xAA {
		t.Fatalf("port 0xF4 input: got=0x%02x, want=0xAA", got)
	}
	// The IPL has announced itself by now.
	if got := c.Bus.Read(0x002140); got != 0xAA {
		t.Fatalf("IPL signature on port 0: got=0x%02x, want=0xAA", got)
	}
	blob, err := c.SaveState()
	if err != nil {
		t.Fatal(err)
	}
	c2 := testConsole()
	if err := c2.LoadState(blob); err != nil {
		t.Fatal(err)
	}
	if got := c2.APU.portIn[0]; got != 0xAA {
		t.Fatalf("restored port state: got=0x%02x, want=0xAA", got)
	}
}

func TestControllerLatching(t *testing.T) {
	c := testConsole()
	c.SetController(0, ButtonB|ButtonRight)
	c.Bus.Write(0x004016, 1)
	c.Bus.Write(0x004016, 0)
	// Serial order: B first.
	if got := c.Bus.Read(0x004016) & 1; got != 1 {
		t.Fatalf("first bit (B): got=%d, want=1", got)
	}
	for i := 0; i < 5; i++ { // Y, Select, Start, Up, Down
		if got := c.Bus.Read(0x004016) & 1; got != 0 {
			t.Fatalf("bit %d: got=%d, want=0", i+1, got)
		}
	}
	if got := c.Bus.Read(0x004016) & 1; got != 0 { // Left
		t.Fatalf("left: got=%d, want=0", got)
	}
	if got := c.Bus.Read(0x004016) & 1; got != 1 { // Right
		t.Fatalf("right: got=%d, want=1", got)
	}
}

func TestJoypadAutoRead(t *testing.T) {
	c := testConsole()
	c.Bus.Write(0x004200, 0x01) // auto-joypad only
	c.SetController(0, ButtonA|ButtonStart)
	if err := c.StepFrame(); err != nil {
		t.Fatal(err)
	}
	lo := c.Bus.Read(0x004218)
	hi := c.Bus.Read(0x004219)
	if got := uint16(hi)<<8 | uint16(lo); got != ButtonA|ButtonStart {
		t.Fatalf("JOY1: got=0x%04x, want=0x%04x", got, ButtonA|ButtonStart)
	}
}

func TestDeterministicFrames(t *testing.T) {
	run := func() []uint16 {
		c := testConsole()
		for i := 0; i < 3; i++ {
			if err := c.StepFrame(); err != nil {
				t.Fatal(err)
			}
		}
		out := make([]uint16, len(c.VideoBuffer()))
		copy(out, c.VideoBuffer())
		return out
	}
	a := run()
	b := run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("frame divergence at pixel %d", i)
		}
	}
}

func TestVideoBufferRGBA(t *testing.T) {
	c := testConsole()
	c.PPU.frame[0] = 0x7FFF
	rgba := c.VideoBufferRGBA()
	if len(rgba) != screenWidth*screenHeight*4 {
		t.Fatalf("rgba length: got=%d", len(rgba))
	}
	if rgba[0] != 0xFF || rgba[1] != 0xFF || rgba[2] != 0xFF || rgba[3] != 0xFF {
		t.Fatalf("white pixel: got=%v", rgba[:4])
	}
}

func TestROMInfo(t *testing.T) {
	c := testConsole()
	info, err := c.ROMInfo()
	if err != nil {
		t.Fatal(err)
	}
	if info.Title != "JSNES TEST ROM" || info.Mapper != "LoROM" {
		t.Fatalf("rom info: %+v", info)
	}
}

func TestNoCartridgeErrors(t *testing.T) {
	c := NewConsole()
	if err := c.StepFrame(); err == nil {
		t.Fatalf("StepFrame without a ROM must fail")
	}
	if _, err := c.SaveState(); err == nil {
		t.Fatalf("SaveState without a ROM must fail")
	}
}

func TestSaveStateContinuity(t *testing.T) {
	// Running N frames, snapshotting, resetting and restoring must give
	// the same frame buffer as an uninterrupted run.
	c := testConsole()
	for i := 0; i < 5; i++ {
		if err := c.StepFrame(); err != nil {
			t.Fatal(err)
		}
	}
	c.AudioDrain() // the pending sample queue is host state, not machine state
	blob, err := c.SaveState()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if err := c.StepFrame(); err != nil {
			t.Fatal(err)
		}
	}
	want := append([]uint16(nil), c.VideoBuffer()...)
	wantAudio := c.AudioDrain()

	c.Reset()
	if err := c.LoadState(blob); err != nil {
		t.Fatal(err)
	}
	c.AudioDrain()
	for i := 0; i < 5; i++ {
		if err := c.StepFrame(); err != nil {
			t.Fatal(err)
		}
	}
	got := c.VideoBuffer()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("restored run diverged at pixel %d", i)
		}
	}
	gotAudio := c.AudioDrain()
	if len(gotAudio) != len(wantAudio) {
		t.Fatalf("audio length diverged: got=%d, want=%d", len(gotAudio), len(wantAudio))
	}
	for i := range wantAudio {
		if gotAudio[i] != wantAudio[i] {
			t.Fatalf("audio diverged at sample %d", i)
		}
	}
}

func TestSaveStateBlobStability(t *testing.T) {
	c := testConsole()
	c.StepFrame()
	blob1, err := c.SaveState()
	if err != nil {
		t.Fatal(err)
	}
	if err := c.LoadState(blob1); err != nil {
		t.Fatal(err)
	}
	blob2, err := c.SaveState()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(blob1, blob2) {
		t.Fatalf("save/load/save must be byte stable: %d vs %d bytes", len(blob1), len(blob2))
	}
}
