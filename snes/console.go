package snes

import (
	"fmt"

	"github.com/golang/glog"
)

// Console wires the components together and drives them scanline by
// scanline: CPU, then DMA/HDMA service, then the PPU, then the APU. The
// whole machine is deterministic; identical ROM, reset state and inputs
// produce identical frames, samples and save states.
type Console struct {
	CPU        *CPU
	PPU        *PPU
	APU        *APU
	DMA        *DMA
	Bus        *Bus
	Cartridge  *Cartridge
	Controller *Controller

	cycles uint64 // master cycles since reset
}

// NewConsole creates a console with no cartridge inserted.
func NewConsole() *Console {
	return &Console{}
}

// LoadROM parses the image, builds the machine around it and resets.
func (c *Console) LoadROM(buf []byte) error {
	cart, err := NewCartridge(buf)
	if err != nil {
		return err
	}
	c.Cartridge = cart
	c.PPU = NewPPU()
	c.APU = NewAPU()
	c.Controller = NewController()
	c.Bus = NewBus(cart, c.PPU, c.APU, c.Controller)
	c.DMA = NewDMA(c.Bus)
	c.CPU = NewCPU(c.Bus)
	c.Reset()
	glog.Infof("Loaded %q (%s)", cart.Info().Title, cart.Info().Mapper)
	return nil
}

func (c *Console) loaded() error {
	if c.Cartridge == nil {
		return fmt.Errorf("%w: no cartridge loaded", ErrRomLoad)
	}
	return nil
}

// Reset performs a soft reset: power-on state, then the reset vector
// fetch. WRAM and SRAM contents survive.
func (c *Console) Reset() {
	c.PPU.Reset()
	c.APU.Reset()
	c.DMA.Reset()
	c.Bus.invalidatePages()
	c.Bus.nmiEnabled = false
	c.Bus.vIRQEnabled = false
	c.Bus.hIRQEnabled = false
	c.Bus.autoJoyEnabled = false
	c.Bus.nmiFlag = false
	c.Bus.irqFlag = false
	c.Bus.dmaStall = 0
	c.CPU.Reset()
	c.cycles = 0
}

// Step executes a single CPU instruction, for debugger use.
func (c *Console) Step() (int, error) {
	if err := c.loaded(); err != nil {
		return 0, err
	}
	cycles, err := c.CPU.Step()
	if err != nil {
		return 0, err
	}
	c.cycles += uint64(cycles*6 + c.Bus.takeDMAStall())
	return cycles, nil
}

// StepFrame advances a full NTSC frame: 262 scanlines in the order
// CPU, DMA/HDMA, PPU, APU.
func (c *Console) StepFrame() error {
	if err := c.loaded(); err != nil {
		return err
	}
	for y := 0; y < totalScanlines; y++ {
		if y == 0 {
			c.DMA.InitHDMA()
		}
		spent := 0
		for spent < cyclesPerScanline {
			cycles, err := c.CPU.Step()
			if err != nil {
				return err
			}
			spent += cycles*6 + c.Bus.takeDMAStall()
		}
		c.cycles += uint64(spent)

		if y < c.PPU.visibleHeight() {
			c.DMA.RunHDMA()
		}
		if c.PPU.RenderScanline(y) {
			c.Bus.nmiFlag = true
			if c.Bus.nmiEnabled {
				c.CPU.TriggerNMI()
			}
			if c.Bus.autoJoyEnabled {
				c.Controller.autoRead()
			}
		}
		// Timer IRQs at scanline granularity: V matches its line, H-only
		// fires every line.
		if c.Bus.vIRQEnabled && y == int(c.Bus.vTime) {
			c.Bus.irqFlag = true
		} else if c.Bus.hIRQEnabled && !c.Bus.vIRQEnabled {
			c.Bus.irqFlag = true
		}
		c.CPU.SetIRQ(c.Bus.irqFlag)

		c.APU.StepScanline(cyclesPerScanline)
	}
	return nil
}

// SetController latches a button mask for one of the four pads; it is
// picked up at the next strobe or joypad auto-read.
func (c *Console) SetController(player int, buttons uint16) {
	if c.Controller != nil {
		c.Controller.Set(player, buttons)
	}
}

// VideoBuffer borrows the 256x224 frame in packed 15-bit BGR.
func (c *Console) VideoBuffer() []uint16 {
	return c.PPU.FrameBuffer()
}

// VideoBufferRGBA converts the frame to canvas-ready RGBA8.
func (c *Console) VideoBufferRGBA() []byte {
	src := c.PPU.FrameBuffer()
	out := make([]byte, len(src)*4)
	for i, v := range src {
		r := byte(v & 0x1F)
		g := byte(v >> 5 & 0x1F)
		b := byte(v >> 10 & 0x1F)
		out[i*4+0] = r<<3 | r>>2
		out[i*4+1] = g<<3 | g>>2
		out[i*4+2] = b<<3 | b>>2
		out[i*4+3] = 0xFF
	}
	return out
}

// AudioDrain returns and clears the pending 32 kHz stereo samples.
func (c *Console) AudioDrain() []float32 {
	return c.APU.DrainSamples()
}

// ROMInfo reports the loaded cartridge header metadata.
func (c *Console) ROMInfo() (RomInfo, error) {
	if err := c.loaded(); err != nil {
		return RomInfo{}, err
	}
	return c.Cartridge.Info(), nil
}

// SRAMSnapshot copies the battery backup.
func (c *Console) SRAMSnapshot() ([]byte, error) {
	if err := c.loaded(); err != nil {
		return nil, err
	}
	return c.Cartridge.SRAMSnapshot(), nil
}

// LoadSRAM restores a battery backup image.
func (c *Console) LoadSRAM(data []byte) error {
	if err := c.loaded(); err != nil {
		return err
	}
	return c.Cartridge.LoadSRAM(data)
}
