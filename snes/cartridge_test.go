package snes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartridgeHeaderParse(t *testing.T) {
	cart, err := NewCartridge(testROM())
	require.NoError(t, err)
	info := cart.Info()
	assert.Equal(t, "JSNES TEST ROM", info.Title)
	assert.Equal(t, "LoROM", info.Mapper)
	assert.Equal(t, byte(0x01), info.Region)
	assert.False(t, info.FastROM)
	assert.Equal(t, 0, info.SRAMSize)
}

func TestCartridgeTooSmall(t *testing.T) {
	_, err := NewCartridge(make([]byte, 0x1000))
	require.ErrorIs(t, err, ErrRomLoad)
}

func TestCartridgeGarbage(t *testing.T) {
	data := make([]byte, 0x10000)
	for i := range data {
		data[i] = 0xFF // fails both size-exponent sanity checks
	}
	_, err := NewCartridge(data)
	require.ErrorIs(t, err, ErrRomLoad)
}

func TestCartridgeCopierHeaderSkip(t *testing.T) {
	padded := append(make([]byte, copierHeaderSize), testROM()...)
	cart, err := NewCartridge(padded)
	require.NoError(t, err)
	assert.Equal(t, "JSNES TEST ROM", cart.Info().Title)
}

func testHiROM() []byte {
	rom := make([]byte, 0x10000)
	h := rom[0xFFB0:]
	copy(h[0x10:], []byte("JSNES HIROM TEST     ")[:21])
	h[0x25] = 0x21 // HiROM
	h[0x27] = 0x0A
	h[0x28] = 0x03 // 8 KiB SRAM
	h[0x29] = 0x00
	h[0x2C] = 0xFF
	h[0x2D] = 0xFF
	h[0x2E] = 0x00
	h[0x2F] = 0x00
	rom[0xFFFC] = 0x00
	rom[0xFFFD] = 0x80
	return rom
}

func TestCartridgeHiROM(t *testing.T) {
	cart, err := NewCartridge(testHiROM())
	require.NoError(t, err)
	info := cart.Info()
	assert.Equal(t, "HiROM", info.Mapper)
	assert.Equal(t, 1024<<3, info.SRAMSize)
}

func TestLoROMMapping(t *testing.T) {
	rom := testROM()
	rom[0x0123] = 0xAB
	cart, err := NewCartridge(rom)
	require.NoError(t, err)
	// Bank 0x00, offset 0x8123 maps to ROM offset 0x0123.
	data, ok := cart.read(0x00, 0x8123)
	require.True(t, ok)
	assert.Equal(t, byte(0xAB), data)
	// The same bytes mirror into bank 0x80.
	data, ok = cart.read(0x80, 0x8123)
	require.True(t, ok)
	assert.Equal(t, byte(0xAB), data)
	// Below 0x8000 nothing decodes to a LoROM cartridge.
	_, ok = cart.read(0x00, 0x4123)
	assert.False(t, ok)
}

func TestHiROMMapping(t *testing.T) {
	rom := testHiROM()
	rom[0xC123] = 0xCD
	cart, err := NewCartridge(rom)
	require.NoError(t, err)
	// Bank 0x40 maps the full 64 KiB.
	data, ok := cart.read(0x40, 0xC123)
	require.True(t, ok)
	assert.Equal(t, byte(0xCD), data)
	// System banks see the upper half.
	data, ok = cart.read(0x00, 0xC123)
	require.True(t, ok)
	assert.Equal(t, byte(0xCD), data)
}

func TestSRAMRoundTrip(t *testing.T) {
	cart, err := NewCartridge(testROMWithSRAM(0x01)) // 2 KiB
	require.NoError(t, err)
	require.Equal(t, 2048, cart.Info().SRAMSize)

	ok := cart.write(0x70, 0x0000, 0x77)
	require.True(t, ok)
	data, ok := cart.read(0x70, 0x0000)
	require.True(t, ok)
	assert.Equal(t, byte(0x77), data)

	snap := cart.SRAMSnapshot()
	require.Len(t, snap, 2048)
	assert.Equal(t, byte(0x77), snap[0])

	snap[0] = 0x11
	require.NoError(t, cart.LoadSRAM(snap))
	data, _ = cart.read(0x70, 0x0000)
	assert.Equal(t, byte(0x11), data)

	err = cart.LoadSRAM(make([]byte, 999))
	require.ErrorIs(t, err, ErrRomLoad)
}

func TestROMWritesIgnored(t *testing.T) {
	cart, err := NewCartridge(testROM())
	require.NoError(t, err)
	assert.False(t, cart.write(0x00, 0x8000, 0xFF))
	data, _ := cart.read(0x00, 0x8000)
	assert.Equal(t, byte(0x80), data) // unchanged BRA opcode
}
