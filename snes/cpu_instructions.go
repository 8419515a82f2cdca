package snes

// Operation implementations for the 65C816. Each receives the resolved
// effective address (or the operand address for immediates and relatives).

// --- arithmetic ---

// ADC - Add with Carry, binary or BCD per the D flag.
func (c *CPU) adc(mode addressingMode, addr uint32) {
	data := c.loadM(addr)
	var carry uint32
	if c.p.c {
		carry = 1
	}
	if c.p.d {
		c.adcDecimal(data, carry)
		return
	}
	x := uint32(c.a)
	y := uint32(data)
	if c.p.m {
		x &= 0xFF
		y &= 0xFF
		res := x + y + carry
		c.p.c = res > 0xFF
		c.p.v = (x^y)&0x80 == 0 && (x^res)&0x80 != 0
		c.a = c.a&0xFF00 | uint16(res&0xFF)
		c.setZN(uint16(res), true)
	} else {
		res := x + y + carry
		c.p.c = res > 0xFFFF
		c.p.v = (x^y)&0x8000 == 0 && (x^res)&0x8000 != 0
		c.a = uint16(res)
		c.setZN(c.a, false)
	}
}

// adcDecimal adds digit-wise with BCD correction.
func (c *CPU) adcDecimal(data uint16, carry uint32) {
	digits := 2
	if !c.p.m {
		digits = 4
	}
	var res uint32
	cin := carry
	for i := 0; i < digits; i++ {
		shift := uint(i * 4)
		da := uint32(c.a>>shift) & 0xF
		db := uint32(data>>shift) & 0xF
		sum := da + db + cin
		cin = 0
		if sum > 9 {
			sum += 6
			cin = 1
		}
		res |= (sum & 0xF) << shift
	}
	c.p.c = cin != 0
	if c.p.m {
		c.p.v = (uint32(c.a)^uint32(data))&0x80 == 0 && (uint32(c.a)^res)&0x80 != 0
		c.a = c.a&0xFF00 | uint16(res&0xFF)
		c.setZN(uint16(res), true)
	} else {
		c.p.v = (uint32(c.a)^uint32(data))&0x8000 == 0 && (uint32(c.a)^res)&0x8000 != 0
		c.a = uint16(res)
		c.setZN(c.a, false)
	}
}

// SBC - Subtract with Borrow.
func (c *CPU) sbc(mode addressingMode, addr uint32) {
	data := c.loadM(addr)
	if c.p.d {
		c.sbcDecimal(data)
		return
	}
	var borrow uint32
	if !c.p.c {
		borrow = 1
	}
	x := uint32(c.a)
	y := uint32(data)
	if c.p.m {
		x &= 0xFF
		y &= 0xFF
		res := x - y - borrow
		c.p.c = res < 0x100
		c.p.v = (x^y)&0x80 != 0 && (x^res)&0x80 != 0
		c.a = c.a&0xFF00 | uint16(res&0xFF)
		c.setZN(uint16(res), true)
	} else {
		res := x - y - borrow
		c.p.c = res < 0x10000
		c.p.v = (x^y)&0x8000 != 0 && (x^res)&0x8000 != 0
		c.a = uint16(res)
		c.setZN(c.a, false)
	}
}

func (c *CPU) sbcDecimal(data uint16) {
	digits := 2
	if !c.p.m {
		digits = 4
	}
	var res uint32
	borrow := uint32(1)
	if c.p.c {
		borrow = 0
	}
	for i := 0; i < digits; i++ {
		shift := uint(i * 4)
		da := uint32(c.a>>shift) & 0xF
		db := uint32(data>>shift) & 0xF
		diff := da - db - borrow
		borrow = 0
		if diff > 9 { // wrapped below zero
			diff -= 6
			borrow = 1
		}
		res |= (diff & 0xF) << shift
	}
	c.p.c = borrow == 0
	if c.p.m {
		c.p.v = (uint32(c.a)^uint32(data))&0x80 != 0 && (uint32(c.a)^res)&0x80 != 0
		c.a = c.a&0xFF00 | uint16(res&0xFF)
		c.setZN(uint16(res), true)
	} else {
		c.p.v = (uint32(c.a)^uint32(data))&0x8000 != 0 && (uint32(c.a)^res)&0x8000 != 0
		c.a = uint16(res)
		c.setZN(c.a, false)
	}
}

// compare is shared by CMP/CPX/CPY: carry on unsigned boundary, Z/N over
// the register width.
func (c *CPU) compare(reg, data uint16, eightBit bool) {
	if eightBit {
		reg &= 0xFF
		data &= 0xFF
	}
	res := reg - data
	c.p.c = reg >= data
	c.setZN(res, eightBit)
}

func (c *CPU) cmp(mode addressingMode, addr uint32) {
	c.compare(c.a, c.loadM(addr), c.p.m)
}

func (c *CPU) cpx(mode addressingMode, addr uint32) {
	c.compare(c.x, c.loadX(addr), c.p.x)
}

func (c *CPU) cpy(mode addressingMode, addr uint32) {
	c.compare(c.y, c.loadX(addr), c.p.x)
}

// --- logic ---

func (c *CPU) and(mode addressingMode, addr uint32) {
	data := c.loadM(addr)
	if c.p.m {
		c.a = c.a&0xFF00 | (c.a & data & 0xFF)
	} else {
		c.a &= data
	}
	c.setZN(c.a, c.p.m)
}

func (c *CPU) ora(mode addressingMode, addr uint32) {
	data := c.loadM(addr)
	if c.p.m {
		c.a = c.a&0xFF00 | (c.a|data)&0xFF
	} else {
		c.a |= data
	}
	c.setZN(c.a, c.p.m)
}

func (c *CPU) eor(mode addressingMode, addr uint32) {
	data := c.loadM(addr)
	if c.p.m {
		c.a = c.a&0xFF00 | (c.a^data)&0xFF
	} else {
		c.a ^= data
	}
	c.setZN(c.a, c.p.m)
}

// BIT - test bits. Immediate mode only touches Z.
func (c *CPU) bit(mode addressingMode, addr uint32) {
	data := c.loadM(addr)
	if c.p.m {
		c.p.z = c.a&data&0xFF == 0
		if mode != immediateM {
			c.p.n = data&0x80 != 0
			c.p.v = data&0x40 != 0
		}
	} else {
		c.p.z = c.a&data == 0
		if mode != immediateM {
			c.p.n = data&0x8000 != 0
			c.p.v = data&0x4000 != 0
		}
	}
}

// TSB - test and set bits; Z reflects A & memory before the set.
func (c *CPU) tsb(mode addressingMode, addr uint32) {
	data := c.loadM(addr)
	mask := c.a
	if c.p.m {
		mask &= 0xFF
		c.p.z = data&mask&0xFF == 0
	} else {
		c.p.z = data&mask == 0
	}
	c.storeM(addr, data|mask)
}

// TRB - test and reset bits.
func (c *CPU) trb(mode addressingMode, addr uint32) {
	data := c.loadM(addr)
	mask := c.a
	if c.p.m {
		mask &= 0xFF
		c.p.z = data&mask&0xFF == 0
	} else {
		c.p.z = data&mask == 0
	}
	c.storeM(addr, data&^mask)
}

// --- shifts ---

func (c *CPU) asl(mode addressingMode, addr uint32) {
	if mode == accumulator {
		if c.p.m {
			c.p.c = c.a&0x80 != 0
			c.a = c.a&0xFF00 | c.a<<1&0xFF
		} else {
			c.p.c = c.a&0x8000 != 0
			c.a <<= 1
		}
		c.setZN(c.a, c.p.m)
		return
	}
	data := c.loadM(addr)
	if c.p.m {
		c.p.c = data&0x80 != 0
		data = data << 1 & 0xFF
	} else {
		c.p.c = data&0x8000 != 0
		data <<= 1
	}
	c.storeM(addr, data)
	c.setZN(data, c.p.m)
}

func (c *CPU) lsr(mode addressingMode, addr uint32) {
	if mode == accumulator {
		if c.p.m {
			c.p.c = c.a&1 != 0
			c.a = c.a&0xFF00 | c.a&0xFF>>1
		} else {
			c.p.c = c.a&1 != 0
			c.a >>= 1
		}
		c.setZN(c.a, c.p.m)
		return
	}
	data := c.loadM(addr)
	c.p.c = data&1 != 0
	if c.p.m {
		data = data & 0xFF >> 1
	} else {
		data >>= 1
	}
	c.storeM(addr, data)
	c.setZN(data, c.p.m)
}

func (c *CPU) rolValue(data uint16) uint16 {
	var carry uint16
	if c.p.c {
		carry = 1
	}
	if c.p.m {
		c.p.c = data&0x80 != 0
		return data<<1&0xFF | carry
	}
	c.p.c = data&0x8000 != 0
	return data<<1 | carry
}

func (c *CPU) rol(mode addressingMode, addr uint32) {
	if mode == accumulator {
		v := c.rolValue(c.a)
		if c.p.m {
			c.a = c.a&0xFF00 | v
		} else {
			c.a = v
		}
		c.setZN(c.a, c.p.m)
		return
	}
	data := c.rolValue(c.loadM(addr))
	c.storeM(addr, data)
	c.setZN(data, c.p.m)
}

func (c *CPU) rorValue(data uint16) uint16 {
	var carry uint16
	if c.p.c {
		if c.p.m {
			carry = 0x80
		} else {
			carry = 0x8000
		}
	}
	c.p.c = data&1 != 0
	if c.p.m {
		return data&0xFF>>1 | carry
	}
	return data>>1 | carry
}

func (c *CPU) ror(mode addressingMode, addr uint32) {
	if mode == accumulator {
		v := c.rorValue(c.a)
		if c.p.m {
			c.a = c.a&0xFF00 | v
		} else {
			c.a = v
		}
		c.setZN(c.a, c.p.m)
		return
	}
	data := c.rorValue(c.loadM(addr))
	c.storeM(addr, data)
	c.setZN(data, c.p.m)
}

// --- increment / decrement ---

func (c *CPU) inc(mode addressingMode, addr uint32) {
	if mode == accumulator {
		if c.p.m {
			c.a = c.a&0xFF00 | (c.a+1)&0xFF
		} else {
			c.a++
		}
		c.setZN(c.a, c.p.m)
		return
	}
	data := c.loadM(addr) + 1
	if c.p.m {
		data &= 0xFF
	}
	c.storeM(addr, data)
	c.setZN(data, c.p.m)
}

func (c *CPU) dec(mode addressingMode, addr uint32) {
	if mode == accumulator {
		if c.p.m {
			c.a = c.a&0xFF00 | (c.a-1)&0xFF
		} else {
			c.a--
		}
		c.setZN(c.a, c.p.m)
		return
	}
	data := c.loadM(addr) - 1
	if c.p.m {
		data &= 0xFF
	}
	c.storeM(addr, data)
	c.setZN(data, c.p.m)
}

func (c *CPU) inx(mode addressingMode, addr uint32) {
	c.x++
	if c.p.x {
		c.x &= 0xFF
	}
	c.setZN(c.x, c.p.x)
}

func (c *CPU) iny(mode addressingMode, addr uint32) {
	c.y++
	if c.p.x {
		c.y &= 0xFF
	}
	c.setZN(c.y, c.p.x)
}

func (c *CPU) dex(mode addressingMode, addr uint32) {
	c.x--
	if c.p.x {
		c.x &= 0xFF
	}
	c.setZN(c.x, c.p.x)
}

func (c *CPU) dey(mode addressingMode, addr uint32) {
	c.y--
	if c.p.x {
		c.y &= 0xFF
	}
	c.setZN(c.y, c.p.x)
}

// --- loads / stores ---

func (c *CPU) lda(mode addressingMode, addr uint32) {
	data := c.loadM(addr)
	if c.p.m {
		c.a = c.a&0xFF00 | data&0xFF
	} else {
		c.a = data
	}
	c.setZN(data, c.p.m)
}

func (c *CPU) ldx(mode addressingMode, addr uint32) {
	c.x = c.loadX(addr)
	c.setZN(c.x, c.p.x)
}

func (c *CPU) ldy(mode addressingMode, addr uint32) {
	c.y = c.loadX(addr)
	c.setZN(c.y, c.p.x)
}

func (c *CPU) sta(mode addressingMode, addr uint32) {
	c.storeM(addr, c.a)
}

func (c *CPU) stx(mode addressingMode, addr uint32) {
	c.storeX(addr, c.x)
}

func (c *CPU) sty(mode addressingMode, addr uint32) {
	c.storeX(addr, c.y)
}

func (c *CPU) stz(mode addressingMode, addr uint32) {
	c.storeM(addr, 0)
}

// --- branches ---

// branch applies a taken relative-8 branch: +1 cycle, +1 more crossing a
// page in emulation mode.
func (c *CPU) branch(addr uint32, taken bool) {
	offset := int8(c.read(addr))
	if !taken {
		return
	}
	c.extra++
	old := c.pc
	c.pc = uint16(int32(c.pc) + int32(offset))
	if c.e && old&0xFF00 != c.pc&0xFF00 {
		c.extra++
	}
}

func (c *CPU) bcc(mode addressingMode, addr uint32) { c.branch(addr, !c.p.c) }
func (c *CPU) bcs(mode addressingMode, addr uint32) { c.branch(addr, c.p.c) }
func (c *CPU) beq(mode addressingMode, addr uint32) { c.branch(addr, c.p.z) }
func (c *CPU) bne(mode addressingMode, addr uint32) { c.branch(addr, !c.p.z) }
func (c *CPU) bmi(mode addressingMode, addr uint32) { c.branch(addr, c.p.n) }
func (c *CPU) bpl(mode addressingMode, addr uint32) { c.branch(addr, !c.p.n) }
func (c *CPU) bvc(mode addressingMode, addr uint32) { c.branch(addr, !c.p.v) }
func (c *CPU) bvs(mode addressingMode, addr uint32) { c.branch(addr, c.p.v) }
func (c *CPU) bra(mode addressingMode, addr uint32) { c.branch(addr, true) }

// BRL - branch long, 16-bit displacement, no page-cross penalty.
func (c *CPU) brl(mode addressingMode, addr uint32) {
	offset := int16(c.read16(addr))
	c.pc = uint16(int32(c.pc) + int32(offset))
}

// --- jumps and calls ---

func (c *CPU) jmp(mode addressingMode, addr uint32) {
	c.pc = uint16(addr)
}

// JML - jump long, replaces the program bank.
func (c *CPU) jml(mode addressingMode, addr uint32) {
	c.pb = byte(addr >> 16)
	c.pc = uint16(addr)
}

func (c *CPU) jsr(mode addressingMode, addr uint32) {
	c.push16(c.pc - 1)
	c.pc = uint16(addr)
}

// JSL - long call, pushes the program bank first.
func (c *CPU) jsl(mode addressingMode, addr uint32) {
	c.push(c.pb)
	c.push16(c.pc - 1)
	c.pb = byte(addr >> 16)
	c.pc = uint16(addr)
}

func (c *CPU) rts(mode addressingMode, addr uint32) {
	c.pc = c.pop16() + 1
}

func (c *CPU) rtl(mode addressingMode, addr uint32) {
	c.pc = c.pop16() + 1
	c.pb = c.pop()
}

func (c *CPU) rti(mode addressingMode, addr uint32) {
	c.p.decodeFrom(c.pop())
	c.pc = c.pop16()
	if !c.e {
		c.pb = c.pop()
	} else {
		c.extra-- // emulation RTI is one cycle shorter
	}
	c.enforceWidths()
}

// --- software interrupts ---

// BRK carries a signature byte; in emulation mode it pushes P with the B
// flag set.
func (c *CPU) brk(mode addressingMode, addr uint32) {
	c.pc++ // signature byte
	if c.e {
		c.push16(c.pc)
		c.push(c.p.encode() | 0x10)
		c.p.i = true
		c.p.d = false
		c.pb = 0
		c.pc = c.read16(uint32(vectorEmuIRQ))
		c.extra--
		return
	}
	c.interrupt(uint32(vectorBRK))
}

func (c *CPU) cop(mode addressingMode, addr uint32) {
	c.pc++ // signature byte
	if c.e {
		c.push16(c.pc)
		c.push(c.p.encode())
		c.p.i = true
		c.p.d = false
		c.pb = 0
		c.pc = c.read16(uint32(vectorEmuCOP))
		c.extra--
		return
	}
	c.interrupt(uint32(vectorCOP))
}

// --- stack ops ---

func (c *CPU) pha(mode addressingMode, addr uint32) {
	if c.p.m {
		c.push(byte(c.a))
	} else {
		c.extra++
		c.push16(c.a)
	}
}

func (c *CPU) pla(mode addressingMode, addr uint32) {
	if c.p.m {
		c.a = c.a&0xFF00 | uint16(c.pop())
	} else {
		c.extra++
		c.a = c.pop16()
	}
	c.setZN(c.a, c.p.m)
}

func (c *CPU) phx(mode addressingMode, addr uint32) {
	if c.p.x {
		c.push(byte(c.x))
	} else {
		c.extra++
		c.push16(c.x)
	}
}

func (c *CPU) plx(mode addressingMode, addr uint32) {
	if c.p.x {
		c.x = uint16(c.pop())
	} else {
		c.extra++
		c.x = c.pop16()
	}
	c.setZN(c.x, c.p.x)
}

func (c *CPU) phy(mode addressingMode, addr uint32) {
	if c.p.x {
		c.push(byte(c.y))
	} else {
		c.extra++
		c.push16(c.y)
	}
}

func (c *CPU) ply(mode addressingMode, addr uint32) {
	if c.p.x {
		c.y = uint16(c.pop())
	} else {
		c.extra++
		c.y = c.pop16()
	}
	c.setZN(c.y, c.p.x)
}

func (c *CPU) php(mode addressingMode, addr uint32) {
	c.push(c.p.encode())
}

func (c *CPU) plp(mode addressingMode, addr uint32) {
	c.p.decodeFrom(c.pop())
	c.enforceWidths()
}

func (c *CPU) phb(mode addressingMode, addr uint32) { c.push(c.db) }

func (c *CPU) plb(mode addressingMode, addr uint32) {
	c.db = c.pop()
	c.setZN(uint16(c.db), true)
}

func (c *CPU) phd(mode addressingMode, addr uint32) { c.push16(c.d) }

func (c *CPU) pld(mode addressingMode, addr uint32) {
	c.d = c.pop16()
	c.setZN(c.d, false)
}

func (c *CPU) phk(mode addressingMode, addr uint32) { c.push(c.pb) }

// PEA pushes the immediate word.
func (c *CPU) pea(mode addressingMode, addr uint32) {
	c.push16(c.fetch16())
}

// PEI pushes the word at a direct-page pointer.
func (c *CPU) pei(mode addressingMode, addr uint32) {
	p := c.directBase(c.fetch())
	c.push16(c.read16(p))
}

// PER pushes PC plus a 16-bit displacement.
func (c *CPU) per(mode addressingMode, addr uint32) {
	offset := int16(c.fetch16())
	c.push16(uint16(int32(c.pc) + int32(offset)))
}

// --- transfers ---

func (c *CPU) tax(mode addressingMode, addr uint32) {
	if c.p.x {
		c.x = c.a & 0xFF
	} else {
		c.x = c.a
	}
	c.setZN(c.x, c.p.x)
}

func (c *CPU) tay(mode addressingMode, addr uint32) {
	if c.p.x {
		c.y = c.a & 0xFF
	} else {
		c.y = c.a
	}
	c.setZN(c.y, c.p.x)
}

func (c *CPU) txa(mode addressingMode, addr uint32) {
	if c.p.m {
		c.a = c.a&0xFF00 | c.x&0xFF
	} else {
		c.a = c.x
	}
	c.setZN(c.a, c.p.m)
}

func (c *CPU) tya(mode addressingMode, addr uint32) {
	if c.p.m {
		c.a = c.a&0xFF00 | c.y&0xFF
	} else {
		c.a = c.y
	}
	c.setZN(c.a, c.p.m)
}

func (c *CPU) txy(mode addressingMode, addr uint32) {
	c.y = c.x
	c.setZN(c.y, c.p.x)
}

func (c *CPU) tyx(mode addressingMode, addr uint32) {
	c.x = c.y
	c.setZN(c.x, c.p.x)
}

func (c *CPU) tsx(mode addressingMode, addr uint32) {
	if c.p.x {
		c.x = c.s & 0xFF
	} else {
		c.x = c.s
	}
	c.setZN(c.x, c.p.x)
}

func (c *CPU) txs(mode addressingMode, addr uint32) {
	c.s = c.x
	if c.e {
		c.s = 0x0100 | c.s&0xFF
	}
}

// TCS - A to stack pointer, always 16 bits wide, no flags.
func (c *CPU) tcs(mode addressingMode, addr uint32) {
	c.s = c.a
	if c.e {
		c.s = 0x0100 | c.s&0xFF
	}
}

func (c *CPU) tsc(mode addressingMode, addr uint32) {
	c.a = c.s
	c.setZN(c.a, false)
}

func (c *CPU) tcd(mode addressingMode, addr uint32) {
	c.d = c.a
	c.setZN(c.d, false)
}

func (c *CPU) tdc(mode addressingMode, addr uint32) {
	c.a = c.d
	c.setZN(c.a, false)
}

// XBA swaps the accumulator halves; flags reflect the new low byte.
func (c *CPU) xba(mode addressingMode, addr uint32) {
	c.a = c.a>>8 | c.a<<8
	c.setZN(c.a, true)
}

// XCE exchanges carry with the emulation flag.
func (c *CPU) xce(mode addressingMode, addr uint32) {
	c.e, c.p.c = c.p.c, c.e
	c.enforceWidths()
}

// --- flag ops ---

func (c *CPU) clc(mode addressingMode, addr uint32) { c.p.c = false }
func (c *CPU) sec(mode addressingMode, addr uint32) { c.p.c = true }
func (c *CPU) cld(mode addressingMode, addr uint32) { c.p.d = false }
func (c *CPU) sed(mode addressingMode, addr uint32) { c.p.d = true }
func (c *CPU) cli(mode addressingMode, addr uint32) { c.p.i = false }
func (c *CPU) sei(mode addressingMode, addr uint32) { c.p.i = true }
func (c *CPU) clv(mode addressingMode, addr uint32) { c.p.v = false }

// REP clears the status bits set in the operand.
func (c *CPU) rep(mode addressingMode, addr uint32) {
	c.p.decodeFrom(c.p.encode() &^ c.read(addr))
	c.enforceWidths()
}

// SEP sets the status bits set in the operand.
func (c *CPU) sep(mode addressingMode, addr uint32) {
	c.p.decodeFrom(c.p.encode() | c.read(addr))
	c.enforceWidths()
}

// --- block moves ---

// blockMoveStep implements MVN/MVP: one byte per pass, A counts down from the
// byte count minus one, and PC rewinds until A wraps.
func (c *CPU) blockMoveStep(down bool) {
	dstBank := c.fetch()
	srcBank := c.fetch()
	c.db = dstBank
	c.write(uint32(dstBank)<<16|uint32(c.y), c.read(uint32(srcBank)<<16|uint32(c.x)))
	if down {
		c.x--
		c.y--
	} else {
		c.x++
		c.y++
	}
	if c.p.x {
		c.x &= 0xFF
		c.y &= 0xFF
	}
	c.a--
	if c.a != 0xFFFF {
		c.pc -= 3
	}
}

func (c *CPU) mvn(mode addressingMode, addr uint32) { c.blockMoveStep(false) }
func (c *CPU) mvp(mode addressingMode, addr uint32) { c.blockMoveStep(true) }

// --- misc ---

func (c *CPU) nop(mode addressingMode, addr uint32) {}

// WDM is the reserved two-byte NOP.
func (c *CPU) wdm(mode addressingMode, addr uint32) {
	c.pc++
}

// WAI idles until an interrupt is delivered.
func (c *CPU) wai(mode addressingMode, addr uint32) {
	c.waiting = true
}

// STP halts the processor until reset.
func (c *CPU) stp(mode addressingMode, addr uint32) {
	c.stopped = true
}
