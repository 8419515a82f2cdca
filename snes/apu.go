package snes

// APU couples the SPC700 and the DSP around their shared 64 KiB RAM, and
// carries the four mailbox ports that are the only channel to the main CPU.
//
// The SPC700 runs at 1.024 MHz against the 21.477 MHz master clock; the
// ratio is tracked exactly with a fractional accumulator so two runs are
// always cycle-identical. The DSP emits one stereo frame every 32 SPC
// cycles (32000 Hz).

const (
	masterClockHz = 21477272
	spcClockHz    = 1024000
	spcCyclesPerSample = 32
)

type APU struct {
	spc *SPC700
	dsp *DSP

	ram [0x10000]byte

	// portIn is written by the main CPU (0x2140-43), read by the SPC700 at
	// 0xF4-F7; portOut is the reverse direction.
	portIn  [4]byte
	portOut [4]byte

	dspAddr byte

	clockDebt   int64 // master cycles not yet converted to SPC cycles
	sampleDebt  int   // SPC cycles not yet converted to samples
	samples     []float32
	totalCycles uint64
}

func NewAPU() *APU {
	a := &APU{}
	a.spc = NewSPC700(a)
	a.dsp = NewDSP(a)
	return a
}

func (a *APU) Reset() {
	a.ram = [0x10000]byte{}
	a.portIn = [4]byte{}
	a.portOut = [4]byte{}
	a.dspAddr = 0
	a.clockDebt = 0
	a.sampleDebt = 0
	a.samples = a.samples[:0]
	a.totalCycles = 0
	a.spc.Reset()
	a.dsp.Reset()
}

// ReadPort returns what the SPC700 last wrote to 0xF4+port.
func (a *APU) ReadPort(port int) byte {
	return a.portOut[port&3]
}

// WritePort latches a byte from the main CPU into 0xF4+port.
func (a *APU) WritePort(port int, data byte) {
	a.portIn[port&3] = data
}

// StepScanline advances the APU by one scanline's worth of master cycles.
func (a *APU) StepScanline(masterCycles int) {
	a.clockDebt += int64(masterCycles) * spcClockHz
	for a.clockDebt >= masterClockHz {
		cycles := a.spc.Step()
		a.clockDebt -= int64(cycles) * masterClockHz
		a.totalCycles += uint64(cycles)
		a.sampleDebt += cycles
		for a.sampleDebt >= spcCyclesPerSample {
			a.sampleDebt -= spcCyclesPerSample
			l, r := a.dsp.Sample()
			a.samples = append(a.samples, float32(l)/32768, float32(r)/32768)
		}
	}
}

// DrainSamples returns and clears the pending 32 kHz interleaved stereo
// samples.
func (a *APU) DrainSamples() []float32 {
	out := a.samples
	a.samples = nil
	return out
}
