package snes

// Shared test fixtures: synthesized LoROM/HiROM images small enough to
// build inline, in place of binary ROM files.

// testROM builds a minimal 32 KiB LoROM image. The reset vector points at
// 0x8000 where the given program bytes are placed; the rest of the bank is
// BRA -2 at 0x8000 when no program is given.
func testROM(program ...byte) []byte {
	rom := make([]byte, 0x8000)
	if len(program) == 0 {
		program = []byte{0x80, 0xFE} // BRA -2
	}
	copy(rom, program)
	h := rom[0x7FB0:]
	copy(h[0x10:], []byte("JSNES TEST ROM       ")[:21])
	h[0x25] = 0x20 // LoROM, slow
	h[0x27] = 0x08 // 256 KiB claimed, only sanity checked
	h[0x28] = 0x00 // no SRAM
	h[0x29] = 0x01 // USA
	// Checksum pair only needs to complement for the scoring pass.
	h[0x2C] = 0xFF
	h[0x2D] = 0xFF
	h[0x2E] = 0x00
	h[0x2F] = 0x00
	// Emulation-mode vectors: reset and BRK/IRQ both at 0x8000.
	rom[0x7FFC] = 0x00
	rom[0x7FFD] = 0x80
	rom[0x7FFE] = 0x00
	rom[0x7FFF] = 0x80
	return rom
}

// testROMWithSRAM is testROM with the SRAM size exponent set.
func testROMWithSRAM(exp byte) []byte {
	rom := testROM()
	rom[0x7FB0+0x28] = exp
	return rom
}

func testConsole(program ...byte) *Console {
	c := NewConsole()
	if err := c.LoadROM(testROM(program...)); err != nil {
		panic(err)
	}
	return c
}
