package snes

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/golang/glog"
)

// Save states serialize every mutable field into a versioned envelope:
// [magic "JSNS"][version u32 LE][gzip(component sections in fixed order)].
// The tile cache itself is not captured; it rebuilds lazily from its
// generation counter.

const saveStateVersion uint32 = 1

var saveStateMagic = [4]byte{'J', 'S', 'N', 'S'}

// stateCoder wraps an io stream with sticky-error little-endian helpers so
// the field lists below stay flat.
type stateCoder struct {
	w   io.Writer
	r   io.Reader
	err error
}

func (s *stateCoder) put(v interface{}) {
	if s.err == nil {
		s.err = binary.Write(s.w, binary.LittleEndian, v)
	}
}

func (s *stateCoder) get(v interface{}) {
	if s.err == nil {
		s.err = binary.Read(s.r, binary.LittleEndian, v)
	}
}

func (s *stateCoder) putBool(v bool) {
	var b byte
	if v {
		b = 1
	}
	s.put(b)
}

func (s *stateCoder) getBool(v *bool) {
	var b byte
	s.get(&b)
	*v = b != 0
}

// SaveState captures the whole machine between frame steps.
func (c *Console) SaveState() ([]byte, error) {
	if err := c.loaded(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Write(saveStateMagic[:])
	var version [4]byte
	binary.LittleEndian.PutUint32(version[:], saveStateVersion)
	buf.Write(version[:])

	zw := gzip.NewWriter(&buf)
	s := &stateCoder{w: zw}
	c.encodeCPU(s)
	c.encodePPU(s)
	c.encodeAPU(s)
	c.encodeDMA(s)
	c.encodeBus(s)
	s.put(c.cycles)
	if s.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaveState, s.err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaveState, err)
	}
	glog.V(1).Infof("Save state: %d bytes", buf.Len())
	return buf.Bytes(), nil
}

// LoadState restores a snapshot produced by SaveState. Magic or version
// mismatch, truncation and decompression failures are all typed errors.
func (c *Console) LoadState(blob []byte) error {
	if err := c.loaded(); err != nil {
		return err
	}
	if len(blob) < 8 {
		return fmt.Errorf("%w: blob is %d bytes, too short for the envelope", ErrSaveState, len(blob))
	}
	if !bytes.Equal(blob[:4], saveStateMagic[:]) {
		return fmt.Errorf("%w: bad magic %q", ErrSaveState, blob[:4])
	}
	version := binary.LittleEndian.Uint32(blob[4:8])
	if version != saveStateVersion {
		return fmt.Errorf("%w: version %d, want %d", ErrSaveState, version, saveStateVersion)
	}
	zr, err := gzip.NewReader(bytes.NewReader(blob[8:]))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveState, err)
	}
	payload, err := ioutil.ReadAll(zr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveState, err)
	}
	c.PPU.cache.invalidateAll()
	s := &stateCoder{r: bytes.NewReader(payload)}
	c.decodeCPU(s)
	c.decodePPU(s)
	c.decodeAPU(s)
	c.decodeDMA(s)
	c.decodeBus(s)
	s.get(&c.cycles)
	if s.err != nil {
		return fmt.Errorf("%w: %v", ErrSaveState, s.err)
	}
	c.Bus.invalidatePages()
	return nil
}

func (c *Console) encodeCPU(s *stateCoder) {
	cpu := c.CPU
	s.put(cpu.a)
	s.put(cpu.x)
	s.put(cpu.y)
	s.put(cpu.s)
	s.put(cpu.d)
	s.put(cpu.db)
	s.put(cpu.pb)
	s.put(cpu.pc)
	s.put(cpu.p.encode())
	s.putBool(cpu.e)
	s.putBool(cpu.waiting)
	s.putBool(cpu.stopped)
	s.putBool(cpu.nmiPending)
	s.putBool(cpu.irqLine)
}

func (c *Console) decodeCPU(s *stateCoder) {
	cpu := c.CPU
	s.get(&cpu.a)
	s.get(&cpu.x)
	s.get(&cpu.y)
	s.get(&cpu.s)
	s.get(&cpu.d)
	s.get(&cpu.db)
	s.get(&cpu.pb)
	s.get(&cpu.pc)
	var p byte
	s.get(&p)
	cpu.p.decodeFrom(p)
	s.getBool(&cpu.e)
	s.getBool(&cpu.waiting)
	s.getBool(&cpu.stopped)
	s.getBool(&cpu.nmiPending)
	s.getBool(&cpu.irqLine)
}

func (c *Console) encodePPU(s *stateCoder) {
	p := c.PPU
	s.put(p.vram[:])
	s.put(p.cgram[:])
	s.put(p.oam[:])
	s.put(p.cache.version)
	s.putBool(p.forceBlank)
	s.put(p.brightness)
	s.put(p.objSizeSel)
	s.put(p.objNameBase)
	s.put(p.objNameGap)
	s.put(p.oamAddr)
	s.put(p.oamReload)
	s.putBool(p.oamPriority)
	s.put(p.oamLatch)
	s.put(p.bgMode)
	s.putBool(p.bg3Priority)
	for i := 0; i < 4; i++ {
		s.putBool(p.bigTiles[i])
		s.putBool(p.mosaicOn[i])
		s.put(p.bgMapBase[i])
		s.put(p.bgMapSize[i])
		s.put(p.bgCharBase[i])
		s.put(p.bgHOfs[i])
		s.put(p.bgVOfs[i])
	}
	s.put(p.mosaicSize)
	s.put(p.scrollPrev)
	s.put(p.m7Sel)
	s.put(p.m7A)
	s.put(p.m7B)
	s.put(p.m7C)
	s.put(p.m7D)
	s.put(p.m7X)
	s.put(p.m7Y)
	s.put(p.m7HOfs)
	s.put(p.m7VOfs)
	s.put(p.m7Prev)
	s.put(p.mpyResult)
	s.putBool(p.mpyStale)
	s.put(p.vmain)
	s.put(p.vramAddr)
	s.put(p.vramLatch)
	s.put(p.cgAddr)
	s.put(p.cgLatch)
	s.putBool(p.cgToggle)
	s.put(p.winSel[:])
	s.put(p.winLeft[:])
	s.put(p.winRight[:])
	s.put(p.winBGLog)
	s.put(p.winOBJLog)
	s.put(p.mainScreen)
	s.put(p.subScreen)
	s.put(p.mainWindowMask)
	s.put(p.subWindowMask)
	s.put(p.cgwSel)
	s.put(p.cgadSub)
	s.put(p.fixedColor)
	s.putBool(p.overscan)
	s.putBool(p.interlace)
	s.putBool(p.pseudoHire)
	s.put(p.hLatch)
	s.put(p.vLatch)
	s.putBool(p.hvLatched)
	s.putBool(p.ophToggle)
	s.putBool(p.opvToggle)
	s.put(uint32(p.scanline))
	s.putBool(p.vblank)
	s.putBool(p.rangeOver)
	s.putBool(p.timeOver)
	s.put(p.frames)
}

func (c *Console) decodePPU(s *stateCoder) {
	p := c.PPU
	s.get(p.vram[:])
	s.get(p.cgram[:])
	s.get(p.oam[:])
	s.get(&p.cache.version)
	s.getBool(&p.forceBlank)
	s.get(&p.brightness)
	s.get(&p.objSizeSel)
	s.get(&p.objNameBase)
	s.get(&p.objNameGap)
	s.get(&p.oamAddr)
	s.get(&p.oamReload)
	s.getBool(&p.oamPriority)
	s.get(&p.oamLatch)
	s.get(&p.bgMode)
	s.getBool(&p.bg3Priority)
	for i := 0; i < 4; i++ {
		s.getBool(&p.bigTiles[i])
		s.getBool(&p.mosaicOn[i])
		s.get(&p.bgMapBase[i])
		s.get(&p.bgMapSize[i])
		s.get(&p.bgCharBase[i])
		s.get(&p.bgHOfs[i])
		s.get(&p.bgVOfs[i])
	}
	s.get(&p.mosaicSize)
	s.get(&p.scrollPrev)
	s.get(&p.m7Sel)
	s.get(&p.m7A)
	s.get(&p.m7B)
	s.get(&p.m7C)
	s.get(&p.m7D)
	s.get(&p.m7X)
	s.get(&p.m7Y)
	s.get(&p.m7HOfs)
	s.get(&p.m7VOfs)
	s.get(&p.m7Prev)
	s.get(&p.mpyResult)
	s.getBool(&p.mpyStale)
	s.get(&p.vmain)
	s.get(&p.vramAddr)
	s.get(&p.vramLatch)
	s.get(&p.cgAddr)
	s.get(&p.cgLatch)
	s.getBool(&p.cgToggle)
	s.get(p.winSel[:])
	s.get(p.winLeft[:])
	s.get(p.winRight[:])
	s.get(&p.winBGLog)
	s.get(&p.winOBJLog)
	s.get(&p.mainScreen)
	s.get(&p.subScreen)
	s.get(&p.mainWindowMask)
	s.get(&p.subWindowMask)
	s.get(&p.cgwSel)
	s.get(&p.cgadSub)
	s.get(&p.fixedColor)
	s.getBool(&p.overscan)
	s.getBool(&p.interlace)
	s.getBool(&p.pseudoHire)
	s.get(&p.hLatch)
	s.get(&p.vLatch)
	s.getBool(&p.hvLatched)
	s.getBool(&p.ophToggle)
	s.getBool(&p.opvToggle)
	var scanline uint32
	s.get(&scanline)
	p.scanline = int(scanline)
	s.getBool(&p.vblank)
	s.getBool(&p.rangeOver)
	s.getBool(&p.timeOver)
	s.get(&p.frames)
}

func (c *Console) encodeAPU(s *stateCoder) {
	a := c.APU
	s.put(a.ram[:])
	s.put(a.portIn[:])
	s.put(a.portOut[:])
	s.put(a.dspAddr)
	s.put(a.clockDebt)
	s.put(uint32(a.sampleDebt))
	s.put(a.totalCycles)

	spc := a.spc
	s.put(spc.a)
	s.put(spc.x)
	s.put(spc.y)
	s.put(spc.sp)
	s.put(spc.pc)
	s.put(spc.psw.encode())
	s.putBool(spc.iplEnabled)
	s.putBool(spc.sleeping)
	s.putBool(spc.stopped)
	for i := 0; i < 3; i++ {
		s.putBool(spc.timers[i].enabled)
		s.put(spc.timers[i].target)
		s.put(spc.timers[i].stage)
		s.put(spc.timers[i].counter)
	}
	s.put(uint32(spc.div128))
	s.put(uint32(spc.div16))

	dsp := a.dsp
	s.put(dsp.regs[:])
	for i := range dsp.voices {
		v := &dsp.voices[i]
		s.put(v.brrAddr)
		s.put(v.brrBlock[:])
		s.put(uint32(v.brrIndex))
		s.put(v.prev1)
		s.put(v.prev2)
		s.put(v.hist[:])
		s.put(v.counter)
		s.put(v.env)
		s.put(uint32(v.phase))
		s.put(uint32(v.rateTick))
		s.putBool(v.active)
		s.putBool(v.endx)
	}
	s.put(uint32(dsp.echoPos))
	s.put(dsp.firL[:])
	s.put(dsp.firR[:])
	s.put(uint32(dsp.firIndex))
}

func (c *Console) decodeAPU(s *stateCoder) {
	a := c.APU
	s.get(a.ram[:])
	s.get(a.portIn[:])
	s.get(a.portOut[:])
	s.get(&a.dspAddr)
	s.get(&a.clockDebt)
	var sampleDebt uint32
	s.get(&sampleDebt)
	a.sampleDebt = int(sampleDebt)
	s.get(&a.totalCycles)

	spc := a.spc
	s.get(&spc.a)
	s.get(&spc.x)
	s.get(&spc.y)
	s.get(&spc.sp)
	s.get(&spc.pc)
	var psw byte
	s.get(&psw)
	spc.psw.decodeFrom(psw)
	s.getBool(&spc.iplEnabled)
	s.getBool(&spc.sleeping)
	s.getBool(&spc.stopped)
	for i := 0; i < 3; i++ {
		s.getBool(&spc.timers[i].enabled)
		s.get(&spc.timers[i].target)
		s.get(&spc.timers[i].stage)
		s.get(&spc.timers[i].counter)
	}
	var div128, div16 uint32
	s.get(&div128)
	s.get(&div16)
	spc.div128 = int(div128)
	spc.div16 = int(div16)

	dsp := a.dsp
	s.get(dsp.regs[:])
	for i := range dsp.voices {
		v := &dsp.voices[i]
		s.get(&v.brrAddr)
		s.get(v.brrBlock[:])
		var brrIndex uint32
		s.get(&brrIndex)
		v.brrIndex = int(brrIndex)
		s.get(&v.prev1)
		s.get(&v.prev2)
		s.get(v.hist[:])
		s.get(&v.counter)
		s.get(&v.env)
		var phase, rateTick uint32
		s.get(&phase)
		s.get(&rateTick)
		v.phase = envPhase(phase)
		v.rateTick = int(rateTick)
		s.getBool(&v.active)
		s.getBool(&v.endx)
	}
	var echoPos, firIndex uint32
	s.get(&echoPos)
	dsp.echoPos = int(echoPos)
	s.get(dsp.firL[:])
	s.get(dsp.firR[:])
	s.get(&firIndex)
	dsp.firIndex = int(firIndex)
}

func (c *Console) encodeDMA(s *stateCoder) {
	for i := range c.DMA.channels {
		ch := &c.DMA.channels[i]
		s.put(ch.control)
		s.put(ch.bAddr)
		s.put(ch.aAddr)
		s.put(ch.aBank)
		s.put(ch.count)
		s.put(ch.indBank)
		s.put(ch.tableA)
		s.put(ch.lineCnt)
		s.putBool(ch.hdmaDone)
		s.putBool(ch.doTx)
	}
	s.put(c.DMA.hdmaEn)
}

func (c *Console) decodeDMA(s *stateCoder) {
	for i := range c.DMA.channels {
		ch := &c.DMA.channels[i]
		s.get(&ch.control)
		s.get(&ch.bAddr)
		s.get(&ch.aAddr)
		s.get(&ch.aBank)
		s.get(&ch.count)
		s.get(&ch.indBank)
		s.get(&ch.tableA)
		s.get(&ch.lineCnt)
		s.getBool(&ch.hdmaDone)
		s.getBool(&ch.doTx)
	}
	s.get(&c.DMA.hdmaEn)
}

func (c *Console) encodeBus(s *stateCoder) {
	b := c.Bus
	s.put(b.wram[:])
	sram := c.Cartridge.SRAMSnapshot()
	s.put(uint32(len(sram)))
	s.put(sram)
	s.put(b.openBus)
	s.put(b.wramAddr)
	s.putBool(b.nmiEnabled)
	s.putBool(b.vIRQEnabled)
	s.putBool(b.hIRQEnabled)
	s.putBool(b.autoJoyEnabled)
	s.put(b.hTime)
	s.put(b.vTime)
	s.putBool(b.nmiFlag)
	s.putBool(b.irqFlag)
	s.put(b.mulA)
	s.put(b.mulB)
	s.put(b.dividend)
	s.put(b.divisor)
	s.put(b.divQuot)
	s.put(b.mulDivRes)
	s.putBool(b.fastROM)
	s.put(c.Controller.buttons[:])
	s.put(c.Controller.latched[:])
	s.put(c.Controller.auto[:])
	s.put(c.Controller.strobe)
}

func (c *Console) decodeBus(s *stateCoder) {
	b := c.Bus
	s.get(b.wram[:])
	var sramLen uint32
	s.get(&sramLen)
	sram := make([]byte, sramLen)
	s.get(sram)
	if s.err == nil && int(sramLen) == len(c.Cartridge.sram) {
		copy(c.Cartridge.sram, sram)
	}
	s.get(&b.openBus)
	s.get(&b.wramAddr)
	s.getBool(&b.nmiEnabled)
	s.getBool(&b.vIRQEnabled)
	s.getBool(&b.hIRQEnabled)
	s.getBool(&b.autoJoyEnabled)
	s.get(&b.hTime)
	s.get(&b.vTime)
	s.getBool(&b.nmiFlag)
	s.getBool(&b.irqFlag)
	s.get(&b.mulA)
	s.get(&b.mulB)
	s.get(&b.dividend)
	s.get(&b.divisor)
	s.get(&b.divQuot)
	s.get(&b.mulDivRes)
	s.getBool(&b.fastROM)
	s.get(c.Controller.buttons[:])
	s.get(c.Controller.latched[:])
	s.get(c.Controller.auto[:])
	s.get(&c.Controller.strobe)
}
