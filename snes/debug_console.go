package snes

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DebugConsole wraps a Console with a stdio command loop.
// commands:
//   s [n]:
//     execute n instructions (default 1); "s 2f" runs 2 frames.
//   p [component]:
//     print machine state.
//   br 0xBBAAAA:
//     set a breakpoint on a 24-bit PC.
//   r:
//     reset.
//   q:
//     quit.
type DebugConsole struct {
	*Console
	breakpoints []uint32
}

func NewDebugConsole(console *Console) *DebugConsole {
	return &DebugConsole{Console: console}
}

func (d *DebugConsole) basePrint() {
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Master cycles: %d\n", d.cycles)
	c := d.CPU
	fmt.Printf("CPU:  PC=0x%02x%04x, A=0x%04x, X=0x%04x, Y=0x%04x, S=0x%04x, D=0x%04x, DB=0x%02x, P=0x%02x, E=%v\n",
		c.pb, c.pc, c.a, c.x, c.y, c.s, c.d, c.db, c.p.encode(), c.e)
	fmt.Printf("PPU:  scanline=%d, mode=%d, vblank=%v, frames=%d\n",
		d.PPU.scanline, d.PPU.bgMode, d.PPU.vblank, d.PPU.frames)
	fmt.Printf("SPC:  PC=0x%04x, A=0x%02x, X=0x%02x, Y=0x%02x, SP=0x%02x, PSW=0x%02x\n",
		d.APU.spc.pc, d.APU.spc.a, d.APU.spc.x, d.APU.spc.y, d.APU.spc.sp, d.APU.spc.psw.encode())
	fmt.Printf("Bus:  open=0x%02x, open-bus hits=%d\n", d.Bus.openBus, d.Bus.openBusHits)
}

func (d *DebugConsole) printCommand(args []string) {
	if len(args) < 2 {
		d.basePrint()
		return
	}
	switch args[1] {
	case "c", "cpu":
		fmt.Printf("%+v\n", *d.CPU.p)
	case "ports":
		fmt.Printf("in=%02x out=%02x\n", d.APU.portIn, d.APU.portOut)
	case "dma":
		for i, ch := range d.DMA.channels {
			fmt.Printf("ch%d: ctl=0x%02x B=0x21%02x A=0x%02x%04x count=%d\n",
				i, ch.control, ch.bAddr, ch.aBank, ch.aAddr, ch.count)
		}
	case "rom":
		info := d.Cartridge.Info()
		fmt.Printf("%+v\n", info)
	}
}

func (d *DebugConsole) checkBreak() bool {
	for _, bp := range d.breakpoints {
		if bp == d.CPU.PC() {
			fmt.Printf("Break at: 0x%06x\n", bp)
			return true
		}
	}
	return false
}

func (d *DebugConsole) stepCommand(args []string) error {
	if len(args) < 2 {
		_, err := d.Step()
		return err
	}
	arg := args[1]
	frames := strings.HasSuffix(arg, "f")
	num, err := strconv.Atoi(strings.TrimSuffix(arg, "f"))
	if err != nil {
		return fmt.Errorf("bad step count %q", arg)
	}
	for i := 0; i < num; i++ {
		if frames {
			if err := d.StepFrame(); err != nil {
				return err
			}
		} else {
			if _, err := d.Step(); err != nil {
				return err
			}
		}
		if d.checkBreak() {
			return nil
		}
	}
	return nil
}

// Run reads commands from stdin until quit.
func (d *DebugConsole) Run() error {
	in := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("Debugger mode, 'q' to quit \n>> ")
		line, err := in.ReadString('\n')
		if err != nil {
			return err
		}
		args := strings.Split(strings.TrimSuffix(line, "\n"), " ")
		switch args[0] {
		case "p", "print":
			d.printCommand(args)
		case "s", "step":
			if err := d.stepCommand(args); err != nil {
				return err
			}
			d.basePrint()
		case "br", "breakpoint":
			if len(args) > 1 {
				var a uint32
				fmt.Sscanf(args[1], "0x%x", &a)
				d.breakpoints = append(d.breakpoints, a)
			}
		case "r", "reset":
			d.Reset()
		case "q", "quit":
			fmt.Println("Quitting.")
			return nil
		default:
			fmt.Printf("Unknown command %q\n", args[0])
		}
	}
}
