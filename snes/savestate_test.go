package snes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveStateRoundTrip(t *testing.T) {
	c := testConsole()
	c.StepFrame()
	// Scribble over assorted state so the round trip has something to
	// prove.
	c.CPU.a = 0x1234
	c.CPU.d = 0x0100
	c.Bus.wram[0x1000] = 0x77
	c.PPU.vram[0x2000] = 0x4242
	c.PPU.cgram[7] = 0x1357
	c.PPU.oam[0x201] = 0x99
	c.APU.ram[0x8000] = 0x55
	c.APU.portIn[2] = 0x66
	c.DMA.channels[3].aAddr = 0xBEEF
	c.Bus.openBus = 0xA5

	blob, err := c.SaveState()
	require.NoError(t, err)

	c2 := testConsole()
	require.NoError(t, c2.LoadState(blob))

	assert.Equal(t, uint16(0x1234), c2.CPU.a)
	assert.Equal(t, uint16(0x0100), c2.CPU.d)
	assert.Equal(t, byte(0x77), c2.Bus.wram[0x1000])
	assert.Equal(t, uint16(0x4242), c2.PPU.vram[0x2000])
	assert.Equal(t, uint16(0x1357), c2.PPU.cgram[7])
	assert.Equal(t, byte(0x99), c2.PPU.oam[0x201])
	assert.Equal(t, byte(0x55), c2.APU.ram[0x8000])
	assert.Equal(t, byte(0x66), c2.APU.portIn[2])
	assert.Equal(t, uint16(0xBEEF), c2.DMA.channels[3].aAddr)
	assert.Equal(t, byte(0xA5), c2.Bus.openBus)
	assert.Equal(t, c.cycles, c2.cycles)
	assert.Equal(t, c.CPU.p.encode(), c2.CPU.p.encode())
	assert.Equal(t, c.APU.spc.pc, c2.APU.spc.pc)
}

func TestSaveStateSRAM(t *testing.T) {
	c := NewConsole()
	require.NoError(t, c.LoadROM(testROMWithSRAM(0x01)))
	c.Bus.Write(0x700000, 0x42)
	blob, err := c.SaveState()
	require.NoError(t, err)

	c2 := NewConsole()
	require.NoError(t, c2.LoadROM(testROMWithSRAM(0x01)))
	require.NoError(t, c2.LoadState(blob))
	assert.Equal(t, byte(0x42), c2.Bus.Read(0x700000))
}

func TestLoadStateBadMagic(t *testing.T) {
	c := testConsole()
	blob, err := c.SaveState()
	require.NoError(t, err)
	blob[0] = 'X'
	require.ErrorIs(t, c.LoadState(blob), ErrSaveState)
}

func TestLoadStateBadVersion(t *testing.T) {
	c := testConsole()
	blob, err := c.SaveState()
	require.NoError(t, err)
	blob[4] = 0xFF
	require.ErrorIs(t, c.LoadState(blob), ErrSaveState)
}

func TestLoadStateTruncated(t *testing.T) {
	c := testConsole()
	blob, err := c.SaveState()
	require.NoError(t, err)
	require.ErrorIs(t, c.LoadState(blob[:4]), ErrSaveState)
	require.ErrorIs(t, c.LoadState(blob[:64]), ErrSaveState)
}

func TestLoadStateCorruptPayload(t *testing.T) {
	c := testConsole()
	blob, err := c.SaveState()
	require.NoError(t, err)
	for i := 8; i < len(blob); i++ {
		blob[i] ^= 0xFF
	}
	require.ErrorIs(t, c.LoadState(blob), ErrSaveState)
}
