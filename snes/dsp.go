package snes

// DSP generates 32 kHz stereo audio from eight BRR voices plus echo.
// References:
//   https://snes.nesdev.org/wiki/S-DSP
//   https://problemkaputt.de/fullsnes.htm#snesapudspbrrsamples
//   snes_spc's gaussian and envelope tables (public domain reference data)

// gaussTable is the 512-entry Gaussian interpolation kernel.
var gaussTable = [512]int32{
	0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000, 0x000,
	0x001, 0x001, 0x001, 0x001, 0x001, 0x001, 0x001, 0x001, 0x001, 0x001, 0x001, 0x002, 0x002, 0x002, 0x002, 0x002,
	0x002, 0x003, 0x003, 0x003, 0x003, 0x003, 0x004, 0x004, 0x004, 0x004, 0x004, 0x005, 0x005, 0x005, 0x005, 0x006,
	0x006, 0x006, 0x006, 0x007, 0x007, 0x007, 0x008, 0x008, 0x008, 0x009, 0x009, 0x009, 0x00A, 0x00A, 0x00A, 0x00B,
	0x00B, 0x00B, 0x00C, 0x00C, 0x00D, 0x00D, 0x00E, 0x00E, 0x00F, 0x00F, 0x00F, 0x010, 0x010, 0x011, 0x011, 0x012,
	0x013, 0x013, 0x014, 0x014, 0x015, 0x015, 0x016, 0x017, 0x017, 0x018, 0x018, 0x019, 0x01A, 0x01B, 0x01B, 0x01C,
	0x01D, 0x01D, 0x01E, 0x01F, 0x020, 0x020, 0x021, 0x022, 0x023, 0x024, 0x024, 0x025, 0x026, 0x027, 0x028, 0x029,
	0x02A, 0x02B, 0x02C, 0x02D, 0x02E, 0x02F, 0x030, 0x031, 0x032, 0x033, 0x034, 0x035, 0x036, 0x037, 0x038, 0x03A,
	0x03B, 0x03C, 0x03D, 0x03E, 0x040, 0x041, 0x042, 0x043, 0x045, 0x046, 0x047, 0x049, 0x04A, 0x04C, 0x04D, 0x04E,
	0x050, 0x051, 0x053, 0x054, 0x056, 0x057, 0x059, 0x05A, 0x05C, 0x05E, 0x05F, 0x061, 0x063, 0x064, 0x066, 0x068,
	0x06A, 0x06B, 0x06D, 0x06F, 0x071, 0x073, 0x075, 0x076, 0x078, 0x07A, 0x07C, 0x07E, 0x080, 0x082, 0x084, 0x086,
	0x089, 0x08B, 0x08D, 0x08F, 0x091, 0x093, 0x096, 0x098, 0x09A, 0x09C, 0x09F, 0x0A1, 0x0A3, 0x0A6, 0x0A8, 0x0AB,
	0x0AD, 0x0AF, 0x0B2, 0x0B4, 0x0B7, 0x0BA, 0x0BC, 0x0BF, 0x0C1, 0x0C4, 0x0C7, 0x0C9, 0x0CC, 0x0CF, 0x0D2, 0x0D4,
	0x0D7, 0x0DA, 0x0DD, 0x0E0, 0x0E3, 0x0E6, 0x0E9, 0x0EC, 0x0EF, 0x0F2, 0x0F5, 0x0F8, 0x0FB, 0x0FE, 0x101, 0x104,
	0x107, 0x10B, 0x10E, 0x111, 0x114, 0x118, 0x11B, 0x11E, 0x122, 0x125, 0x129, 0x12C, 0x130, 0x133, 0x137, 0x13A,
	0x13E, 0x141, 0x145, 0x148, 0x14C, 0x150, 0x153, 0x157, 0x15B, 0x15F, 0x162, 0x166, 0x16A, 0x16E, 0x172, 0x176,
	0x17A, 0x17D, 0x181, 0x185, 0x189, 0x18D, 0x191, 0x195, 0x19A, 0x19E, 0x1A2, 0x1A6, 0x1AA, 0x1AE, 0x1B2, 0x1B7,
	0x1BB, 0x1BF, 0x1C3, 0x1C8, 0x1CC, 0x1D0, 0x1D5, 0x1D9, 0x1DD, 0x1E2, 0x1E6, 0x1EB, 0x1EF, 0x1F3, 0x1F8, 0x1FC,
	0x201, 0x205, 0x20A, 0x20F, 0x213, 0x218, 0x21C, 0x221, 0x226, 0x22A, 0x22F, 0x233, 0x238, 0x23D, 0x241, 0x246,
	0x24B, 0x250, 0x254, 0x259, 0x25E, 0x263, 0x267, 0x26C, 0x271, 0x276, 0x27B, 0x280, 0x284, 0x289, 0x28E, 0x293,
	0x298, 0x29D, 0x2A2, 0x2A6, 0x2AB, 0x2B0, 0x2B5, 0x2BA, 0x2BF, 0x2C4, 0x2C9, 0x2CE, 0x2D3, 0x2D8, 0x2DC, 0x2E1,
	0x2E6, 0x2EB, 0x2F0, 0x2F5, 0x2FA, 0x2FF, 0x304, 0x309, 0x30E, 0x313, 0x318, 0x31D, 0x322, 0x326, 0x32B, 0x330,
	0x335, 0x33A, 0x33F, 0x344, 0x349, 0x34E, 0x353, 0x357, 0x35C, 0x361, 0x366, 0x36B, 0x370, 0x374, 0x379, 0x37E,
	0x383, 0x388, 0x38C, 0x391, 0x396, 0x39B, 0x39F, 0x3A4, 0x3A9, 0x3AD, 0x3B2, 0x3B7, 0x3BB, 0x3C0, 0x3C5, 0x3C9,
	0x3CE, 0x3D2, 0x3D7, 0x3DC, 0x3E0, 0x3E5, 0x3E9, 0x3ED, 0x3F2, 0x3F6, 0x3FB, 0x3FF, 0x403, 0x408, 0x40C, 0x410,
	0x415, 0x419, 0x41D, 0x421, 0x425, 0x42A, 0x42E, 0x432, 0x436, 0x43A, 0x43E, 0x442, 0x446, 0x44A, 0x44E, 0x452,
	0x455, 0x459, 0x45D, 0x461, 0x465, 0x468, 0x46C, 0x470, 0x473, 0x477, 0x47A, 0x47E, 0x481, 0x485, 0x488, 0x48C,
	0x48F, 0x492, 0x496, 0x499, 0x49C, 0x49F, 0x4A2, 0x4A6, 0x4A9, 0x4AC, 0x4AF, 0x4B2, 0x4B5, 0x4B7, 0x4BA, 0x4BD,
	0x4C0, 0x4C3, 0x4C5, 0x4C8, 0x4CB, 0x4CD, 0x4D0, 0x4D2, 0x4D5, 0x4D7, 0x4D9, 0x4DC, 0x4DE, 0x4E0, 0x4E3, 0x4E5,
	0x4E7, 0x4E9, 0x4EB, 0x4ED, 0x4EF, 0x4F1, 0x4F3, 0x4F5, 0x4F6, 0x4F8, 0x4FA, 0x4FB, 0x4FD, 0x4FF, 0x500, 0x502,
	0x503, 0x504, 0x506, 0x507, 0x508, 0x50A, 0x50B, 0x50C, 0x50D, 0x50E, 0x50F, 0x510, 0x511, 0x511, 0x512, 0x513,
	0x514, 0x514, 0x515, 0x516, 0x516, 0x517, 0x517, 0x517, 0x518, 0x518, 0x518, 0x518, 0x518, 0x519, 0x519, 0x519,
}

// envelopeRates maps a 5-bit rate to its period in samples; rate 0 never
// fires.
var envelopeRates = [32]int{
	0, 2048, 1536, 1280, 1024, 768, 640, 512,
	384, 320, 256, 192, 160, 128, 96, 80,
	64, 48, 40, 32, 24, 20, 16, 12,
	10, 8, 6, 5, 4, 3, 2, 1,
}

type envPhase int

const (
	envRelease envPhase = iota
	envAttack
	envDecay
	envSustain
	envGain
)

type dspVoice struct {
	brrAddr   uint16
	brrBlock  [16]int16
	brrIndex  int
	prev1     int32
	prev2     int32
	hist      [4]int16
	counter   uint16 // 4.12 pitch counter
	env       int32  // 0..0x7FF
	phase     envPhase
	rateTick  int
	active    bool
	endx      bool
}

type DSP struct {
	apu  *APU
	regs [128]byte

	voices [8]dspVoice

	echoPos  int
	firL     [8]int32
	firR     [8]int32
	firIndex int
}

func NewDSP(apu *APU) *DSP {
	return &DSP{apu: apu}
}

func (d *DSP) Reset() {
	d.regs = [128]byte{}
	d.regs[0x6C] = 0xE0 // reset, mute, echo disabled
	d.voices = [8]dspVoice{}
	d.echoPos = 0
	d.firL = [8]int32{}
	d.firR = [8]int32{}
	d.firIndex = 0
}

func (d *DSP) readRegister(addr byte) byte {
	addr &= 0x7F
	v := int(addr >> 4)
	switch addr & 0x0F {
	case 0x8: // ENVX
		return byte(d.voices[v].env >> 4)
	case 0x9: // OUTX
		return byte(d.voices[v].hist[3] >> 8)
	}
	if addr == 0x7C { // ENDX
		var data byte
		for i := range d.voices {
			if d.voices[i].endx {
				data |= 1 << i
			}
		}
		return data
	}
	return d.regs[addr]
}

func (d *DSP) writeRegister(addr byte, data byte) {
	if addr >= 0x80 {
		return // upper half is a read-only mirror
	}
	switch addr {
	case 0x4C: // KON
		for i := range d.voices {
			if data&(1<<i) != 0 {
				d.keyOn(i)
			}
		}
	case 0x5C: // KOF
		for i := range d.voices {
			if data&(1<<i) != 0 {
				d.voices[i].phase = envRelease
			}
		}
	case 0x7C: // writing ENDX clears it
		for i := range d.voices {
			d.voices[i].endx = false
		}
		data = 0
	}
	d.regs[addr] = data
}

// keyOn restarts a voice from its directory entry.
func (d *DSP) keyOn(v int) {
	vo := &d.voices[v]
	start, _ := d.directory(v)
	vo.brrAddr = start
	vo.brrIndex = 16 // force a decode on first sample
	vo.prev1 = 0
	vo.prev2 = 0
	vo.hist = [4]int16{}
	vo.counter = 0
	vo.env = 0
	vo.phase = envAttack
	if d.regs[0x10*v+5]&0x80 == 0 {
		vo.phase = envGain
	}
	vo.rateTick = 0
	vo.active = true
	vo.endx = false
}

// directory returns a voice's BRR start and loop addresses.
func (d *DSP) directory(v int) (uint16, uint16) {
	base := uint16(d.regs[0x5D])<<8 + uint16(d.regs[0x10*v+4])*4
	ram := &d.apu.ram
	start := uint16(ram[base]) | uint16(ram[base+1])<<8
	loop := uint16(ram[base+2]) | uint16(ram[base+3])<<8
	return start, loop
}

// decodeBRRBlock expands the 9-byte block at the voice's address: 1 header
// byte then 8 data bytes holding 16 4-bit ADPCM values.
func (d *DSP) decodeBRRBlock(v int) {
	vo := &d.voices[v]
	ram := &d.apu.ram
	header := ram[vo.brrAddr]
	shift := header >> 4
	filter := header >> 2 & 3
	for i := 0; i < 16; i++ {
		b := ram[vo.brrAddr+1+uint16(i/2)]
		var nibble int32
		if i%2 == 0 {
			nibble = int32(int8(b)) >> 4
		} else {
			nibble = int32(int8(b<<4)) >> 4
		}
		var sample int32
		if shift <= 12 {
			sample = nibble << shift >> 1
		} else {
			// Invalid shifts collapse to the sign.
			sample = nibble >> 3 << 11
		}
		switch filter {
		case 1:
			sample += vo.prev1 + -vo.prev1>>4
		case 2:
			sample += vo.prev1*2 + -vo.prev1*3>>5 - vo.prev2 + vo.prev2>>4
		case 3:
			sample += vo.prev1*2 + -vo.prev1*13>>6 - vo.prev2 + vo.prev2*3>>4
		}
		sample = clamp16(sample)
		vo.brrBlock[i] = int16(sample)
		vo.prev2 = vo.prev1
		vo.prev1 = sample
	}
	vo.brrIndex = 0

	if header&0x01 != 0 { // end flag
		vo.endx = true
		_, loop := d.directory(v)
		if header&0x02 != 0 {
			vo.brrAddr = loop
		} else {
			vo.active = false
			vo.env = 0
		}
	} else {
		vo.brrAddr += 9
	}
}

func clamp16(v int32) int32 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return v
}

// stepEnvelope advances one voice's ADSR or gain envelope by one sample.
func (d *DSP) stepEnvelope(v int) {
	vo := &d.voices[v]
	adsr1 := d.regs[0x10*v+5]
	adsr2 := d.regs[0x10*v+6]
	gain := d.regs[0x10*v+7]

	fire := func(rate int) bool {
		if rate == 0 {
			return false
		}
		vo.rateTick++
		if vo.rateTick >= envelopeRates[rate] {
			vo.rateTick = 0
			return true
		}
		return false
	}

	switch vo.phase {
	case envAttack:
		rate := int(adsr1&0x0F)*2 + 1
		if adsr1&0x0F == 0x0F {
			vo.env += 1024
		} else if fire(rate) {
			vo.env += 32
		}
		if vo.env >= 0x7E0 {
			vo.env = 0x7FF
			vo.phase = envDecay
		}
	case envDecay:
		sustain := (int32(adsr2>>5) + 1) << 8
		if fire(int(adsr1>>4&7)*2 + 16) {
			vo.env -= (vo.env-1)>>8 + 1
		}
		if vo.env <= sustain {
			vo.phase = envSustain
		}
	case envSustain:
		if fire(int(adsr2 & 0x1F)) {
			vo.env -= (vo.env-1)>>8 + 1
		}
	case envRelease:
		vo.env -= 8
		if vo.env <= 0 {
			vo.env = 0
			vo.active = false
		}
	case envGain:
		if gain&0x80 == 0 {
			vo.env = int32(gain&0x7F) << 4
			break
		}
		rate := int(gain & 0x1F)
		switch gain >> 5 & 3 {
		case 0: // linear decrease
			if fire(rate) {
				vo.env -= 32
			}
		case 1: // exponential decrease
			if fire(rate) {
				vo.env -= (vo.env-1)>>8 + 1
			}
		case 2: // linear increase
			if fire(rate) {
				vo.env += 32
			}
		case 3: // bent increase
			if fire(rate) {
				if vo.env < 0x600 {
					vo.env += 32
				} else {
					vo.env += 8
				}
			}
		}
	}
	if vo.env < 0 {
		vo.env = 0
	}
	if vo.env > 0x7FF {
		vo.env = 0x7FF
	}
}

// voiceSample produces one voice's current output via Gaussian 4-point
// interpolation, advancing the pitch counter.
func (d *DSP) voiceSample(v int) int32 {
	vo := &d.voices[v]
	if !vo.active {
		return 0
	}
	pitch := uint32(d.regs[0x10*v+2]) | uint32(d.regs[0x10*v+3]&0x3F)<<8

	// Consume source samples the pitch counter has stepped past.
	next := uint32(vo.counter) + pitch
	for steps := next >> 12; steps > 0; steps-- {
		if vo.brrIndex >= 16 {
			d.decodeBRRBlock(v)
			if !vo.active {
				return 0
			}
		}
		vo.hist[0] = vo.hist[1]
		vo.hist[1] = vo.hist[2]
		vo.hist[2] = vo.hist[3]
		vo.hist[3] = vo.brrBlock[vo.brrIndex]
		vo.brrIndex++
	}
	vo.counter = uint16(next & 0xFFF)

	i := int32(vo.counter >> 4 & 0xFF)
	out := gaussTable[255-i] * int32(vo.hist[0]) >> 11
	out += gaussTable[511-i] * int32(vo.hist[1]) >> 11
	out += gaussTable[256+i] * int32(vo.hist[2]) >> 11
	out += gaussTable[i] * int32(vo.hist[3]) >> 11
	out = clamp16(out)

	d.stepEnvelope(v)
	return out * vo.env >> 11
}

// Sample mixes one stereo frame at 32 kHz into the APU's output queue.
func (d *DSP) Sample() (int16, int16) {
	flg := d.regs[0x6C]
	if flg&0x80 != 0 { // soft reset
		for i := range d.voices {
			d.voices[i].active = false
			d.voices[i].env = 0
		}
	}

	var mainL, mainR, echoL, echoR int32
	for v := 0; v < 8; v++ {
		out := d.voiceSample(v)
		volL := int32(int8(d.regs[0x10*v+0]))
		volR := int32(int8(d.regs[0x10*v+1]))
		l := out * volL >> 7
		r := out * volR >> 7
		mainL = clamp16(mainL + l)
		mainR = clamp16(mainR + r)
		if d.regs[0x4D]&(1<<v) != 0 { // EON
			echoL = clamp16(echoL + l)
			echoR = clamp16(echoR + r)
		}
	}

	outL, outR := d.mixEcho(mainL, mainR, echoL, echoR, flg)
	if flg&0x40 != 0 { // mute
		return 0, 0
	}
	return int16(outL), int16(outR)
}

// mixEcho runs the 8-tap FIR over the echo ring buffer in APU RAM and
// returns the dry+wet mix.
func (d *DSP) mixEcho(mainL, mainR, echoL, echoR int32, flg byte) (int32, int32) {
	ram := &d.apu.ram
	base := int(d.regs[0x6D]) << 8
	length := int(d.regs[0x7D]&0x0F) << 11 // EDL in 2 KiB units
	if length == 0 {
		length = 4
	}

	pos := base + d.echoPos
	oldL := int32(int16(uint16(ram[uint16(pos)]) | uint16(ram[uint16(pos+1)])<<8))
	oldR := int32(int16(uint16(ram[uint16(pos+2)]) | uint16(ram[uint16(pos+3)])<<8))

	d.firL[d.firIndex] = oldL
	d.firR[d.firIndex] = oldR
	var firL, firR int32
	for t := 0; t < 8; t++ {
		coeff := int32(int8(d.regs[0x0F+t*0x10]))
		idx := (d.firIndex + 1 + t) & 7
		firL += d.firL[idx] * coeff >> 6
		firR += d.firR[idx] * coeff >> 6
	}
	firL = clamp16(firL)
	firR = clamp16(firR)
	d.firIndex = (d.firIndex + 1) & 7

	// Write the next echo frame unless writes are disabled (ECEN).
	if flg&0x20 == 0 {
		efb := int32(int8(d.regs[0x0D]))
		inL := clamp16(echoL + (firL * efb >> 7))
		inR := clamp16(echoR + (firR * efb >> 7))
		ram[uint16(pos)] = byte(inL)
		ram[uint16(pos+1)] = byte(uint16(inL) >> 8)
		ram[uint16(pos+2)] = byte(inR)
		ram[uint16(pos+3)] = byte(uint16(inR) >> 8)
	}
	d.echoPos += 4
	if d.echoPos >= length {
		d.echoPos = 0
	}

	mvolL := int32(int8(d.regs[0x0C]))
	mvolR := int32(int8(d.regs[0x1C]))
	evolL := int32(int8(d.regs[0x2C]))
	evolR := int32(int8(d.regs[0x3C]))
	outL := clamp16((mainL*mvolL >> 7) + (firL*evolL >> 7))
	outR := clamp16((mainR*mvolR >> 7) + (firR*evolR >> 7))
	return outL, outR
}
