package snes

// createInstructions fills the canonical 256-entry SPC700 decode table.
// Cycle counts are the untaken-branch base; taken branches add 2 via
// s.extra.
// Reference: https://problemkaputt.de/fullsnes.htm#snesapuspc700cpu

func (s *SPC700) createInstructions() {
	// set1/clr1/bbs/bbc appear once per bit, built here to keep the table
	// readable.
	set1 := func(bit uint) func() {
		return func() { s.rmw(s.addrDp(), func(v byte) byte { return v | 1<<bit }) }
	}
	clr1 := func(bit uint) func() {
		return func() { s.rmw(s.addrDp(), func(v byte) byte { return v &^ (1 << bit) }) }
	}
	bbs := func(bit uint) func() {
		return func() {
			v := s.read(s.addrDp())
			s.branch(v&(1<<bit) != 0)
		}
	}
	bbc := func(bit uint) func() {
		return func() {
			v := s.read(s.addrDp())
			s.branch(v&(1<<bit) == 0)
		}
	}
	// dd,ds two-operand forms read the source page address first.
	dpDp := func(op func(dst, src byte) byte) func() {
		return func() {
			src := s.read(s.addrDp())
			dst := s.addrDp()
			s.write(dst, op(s.read(dst), src))
		}
	}
	dpImm := func(op func(dst, src byte) byte) func() {
		return func() {
			imm := s.fetch()
			dst := s.addrDp()
			s.write(dst, op(s.read(dst), imm))
		}
	}
	indInd := func(op func(dst, src byte) byte) func() {
		return func() {
			src := s.read(s.pageBase() | uint16(s.y))
			dst := s.pageBase() | uint16(s.x)
			s.write(dst, op(s.read(dst), src))
		}
	}
	or := func(a, b byte) byte { return s.setNZ(a | b) }
	and := func(a, b byte) byte { return s.setNZ(a & b) }
	eor := func(a, b byte) byte { return s.setNZ(a ^ b) }
	adc := s.adcValue
	sbc := s.sbcValue

	s.instructions = [256]spcInstruction{
		{"NOP", 2, func() {}},                                                            // 0x00
		{"TCALL 0", 8, func() { s.tcall(0) }},                                            // 0x01
		{"SET1 d.0", 4, set1(0)},                                                         // 0x02
		{"BBS d.0,r", 5, bbs(0)},                                                         // 0x03
		{"OR A,d", 3, func() { s.a = or(s.a, s.read(s.addrDp())) }},                      // 0x04
		{"OR A,!a", 4, func() { s.a = or(s.a, s.read(s.addrAbs())) }},                    // 0x05
		{"OR A,(X)", 3, func() { s.a = or(s.a, s.read(s.addrIndX())) }},                  // 0x06
		{"OR A,[d+X]", 6, func() { s.a = or(s.a, s.read(s.addrDpXInd())) }},              // 0x07
		{"OR A,#i", 2, func() { s.a = or(s.a, s.fetch()) }},                              // 0x08
		{"OR dd,ds", 6, dpDp(or)},                                                        // 0x09
		{"OR1 C,m.b", 5, func() { a, b := s.absBit(); s.psw.c = s.psw.c || s.read(a)&(1<<b) != 0 }}, // 0x0A
		{"ASL d", 4, func() { s.rmw(s.addrDp(), s.aslValue) }},                           // 0x0B
		{"ASL !a", 5, func() { s.rmw(s.addrAbs(), s.aslValue) }},                         // 0x0C
		{"PUSH PSW", 4, func() { s.push(s.psw.encode()) }},                               // 0x0D
		{"TSET1 !a", 6, func() { a := s.addrAbs(); v := s.read(a); s.setNZ(s.a - v); s.write(a, v|s.a) }}, // 0x0E
		{"BRK", 8, func() {
			s.push(byte(s.pc >> 8))
			s.push(byte(s.pc))
			s.push(s.psw.encode())
			s.pc = s.read16(0xFFDE)
			s.psw.b = true
			s.psw.i = false
		}}, // 0x0F
		{"BPL r", 2, func() { s.branch(!s.psw.n) }},                                      // 0x10
		{"TCALL 1", 8, func() { s.tcall(1) }},                                            // 0x11
		{"CLR1 d.0", 4, clr1(0)},                                                         // 0x12
		{"BBC d.0,r", 5, bbc(0)},                                                         // 0x13
		{"OR A,d+X", 4, func() { s.a = or(s.a, s.read(s.addrDpX())) }},                   // 0x14
		{"OR A,!a+X", 5, func() { s.a = or(s.a, s.read(s.addrAbsX())) }},                 // 0x15
		{"OR A,!a+Y", 5, func() { s.a = or(s.a, s.read(s.addrAbsY())) }},                 // 0x16
		{"OR A,[d]+Y", 6, func() { s.a = or(s.a, s.read(s.addrDpIndY())) }},              // 0x17
		{"OR d,#i", 5, dpImm(or)},                                                        // 0x18
		{"OR (X),(Y)", 5, indInd(or)},                                                    // 0x19
		{"DECW d", 6, func() { a := s.addrDp(); v := s.read16(a) - 1; s.write(a, byte(v)); s.write(a+1, byte(v>>8)); s.setNZ16(v) }}, // 0x1A
		{"ASL d+X", 5, func() { s.rmw(s.addrDpX(), s.aslValue) }},                        // 0x1B
		{"ASL A", 2, func() { s.a = s.aslValue(s.a) }},                                   // 0x1C
		{"DEC X", 2, func() { s.x = s.decValue(s.x) }},                                   // 0x1D
		{"CMP X,!a", 4, func() { s.cmpValue(s.x, s.read(s.addrAbs())) }},                 // 0x1E
		{"JMP [!a+X]", 6, func() { s.pc = s.read16(s.addrAbsX()) }},                      // 0x1F
		{"CLRP", 2, func() { s.psw.p = false }},                                          // 0x20
		{"TCALL 2", 8, func() { s.tcall(2) }},                                            // 0x21
		{"SET1 d.1", 4, set1(1)},                                                         // 0x22
		{"BBS d.1,r", 5, bbs(1)},                                                         // 0x23
		{"AND A,d", 3, func() { s.a = and(s.a, s.read(s.addrDp())) }},                    // 0x24
		{"AND A,!a", 4, func() { s.a = and(s.a, s.read(s.addrAbs())) }},                  // 0x25
		{"AND A,(X)", 3, func() { s.a = and(s.a, s.read(s.addrIndX())) }},                // 0x26
		{"AND A,[d+X]", 6, func() { s.a = and(s.a, s.read(s.addrDpXInd())) }},            // 0x27
		{"AND A,#i", 2, func() { s.a = and(s.a, s.fetch()) }},                            // 0x28
		{"AND dd,ds", 6, dpDp(and)},                                                      // 0x29
		{"OR1 C,/m.b", 5, func() { a, b := s.absBit(); s.psw.c = s.psw.c || s.read(a)&(1<<b) == 0 }}, // 0x2A
		{"ROL d", 4, func() { s.rmw(s.addrDp(), s.rolValue) }},                           // 0x2B
		{"ROL !a", 5, func() { s.rmw(s.addrAbs(), s.rolValue) }},                         // 0x2C
		{"PUSH A", 4, func() { s.push(s.a) }},                                            // 0x2D
		{"CBNE d,r", 5, func() { v := s.read(s.addrDp()); s.branch(s.a != v) }},          // 0x2E
		{"BRA r", 2, func() { s.branch(true) }},                                          // 0x2F
		{"BMI r", 2, func() { s.branch(s.psw.n) }},                                       // 0x30
		{"TCALL 3", 8, func() { s.tcall(3) }},                                            // 0x31
		{"CLR1 d.1", 4, clr1(1)},                                                         // 0x32
		{"BBC d.1,r", 5, bbc(1)},                                                         // 0x33
		{"AND A,d+X", 4, func() { s.a = and(s.a, s.read(s.addrDpX())) }},                 // 0x34
		{"AND A,!a+X", 5, func() { s.a = and(s.a, s.read(s.addrAbsX())) }},               // 0x35
		{"AND A,!a+Y", 5, func() { s.a = and(s.a, s.read(s.addrAbsY())) }},               // 0x36
		{"AND A,[d]+Y", 6, func() { s.a = and(s.a, s.read(s.addrDpIndY())) }},            // 0x37
		{"AND d,#i", 5, dpImm(and)},                                                      // 0x38
		{"AND (X),(Y)", 5, indInd(and)},                                                  // 0x39
		{"INCW d", 6, func() { a := s.addrDp(); v := s.read16(a) + 1; s.write(a, byte(v)); s.write(a+1, byte(v>>8)); s.setNZ16(v) }}, // 0x3A
		{"ROL d+X", 5, func() { s.rmw(s.addrDpX(), s.rolValue) }},                        // 0x3B
		{"ROL A", 2, func() { s.a = s.rolValue(s.a) }},                                   // 0x3C
		{"INC X", 2, func() { s.x = s.incValue(s.x) }},                                   // 0x3D
		{"CMP X,d", 3, func() { s.cmpValue(s.x, s.read(s.addrDp())) }},                   // 0x3E
		{"CALL !a", 8, func() { a := s.addrAbs(); s.call(a) }},                           // 0x3F
		{"SETP", 2, func() { s.psw.p = true }},                                           // 0x40
		{"TCALL 4", 8, func() { s.tcall(4) }},                                            // 0x41
		{"SET1 d.2", 4, set1(2)},                                                         // 0x42
		{"BBS d.2,r", 5, bbs(2)},                                                         // 0x43
		{"EOR A,d", 3, func() { s.a = eor(s.a, s.read(s.addrDp())) }},                    // 0x44
		{"EOR A,!a", 4, func() { s.a = eor(s.a, s.read(s.addrAbs())) }},                  // 0x45
		{"EOR A,(X)", 3, func() { s.a = eor(s.a, s.read(s.addrIndX())) }},                // 0x46
		{"EOR A,[d+X]", 6, func() { s.a = eor(s.a, s.read(s.addrDpXInd())) }},            // 0x47
		{"EOR A,#i", 2, func() { s.a = eor(s.a, s.fetch()) }},                            // 0x48
		{"EOR dd,ds", 6, dpDp(eor)},                                                      // 0x49
		{"AND1 C,m.b", 4, func() { a, b := s.absBit(); s.psw.c = s.psw.c && s.read(a)&(1<<b) != 0 }}, // 0x4A
		{"LSR d", 4, func() { s.rmw(s.addrDp(), s.lsrValue) }},                           // 0x4B
		{"LSR !a", 5, func() { s.rmw(s.addrAbs(), s.lsrValue) }},                         // 0x4C
		{"PUSH X", 4, func() { s.push(s.x) }},                                            // 0x4D
		{"TCLR1 !a", 6, func() { a := s.addrAbs(); v := s.read(a); s.setNZ(s.a - v); s.write(a, v&^s.a) }}, // 0x4E
		{"PCALL u", 6, func() { s.call(0xFF00 | uint16(s.fetch())) }},                    // 0x4F
		{"BVC r", 2, func() { s.branch(!s.psw.v) }},                                      // 0x50
		{"TCALL 5", 8, func() { s.tcall(5) }},                                            // 0x51
		{"CLR1 d.2", 4, clr1(2)},                                                         // 0x52
		{"BBC d.2,r", 5, bbc(2)},                                                         // 0x53
		{"EOR A,d+X", 4, func() { s.a = eor(s.a, s.read(s.addrDpX())) }},                 // 0x54
		{"EOR A,!a+X", 5, func() { s.a = eor(s.a, s.read(s.addrAbsX())) }},               // 0x55
		{"EOR A,!a+Y", 5, func() { s.a = eor(s.a, s.read(s.addrAbsY())) }},               // 0x56
		{"EOR A,[d]+Y", 6, func() { s.a = eor(s.a, s.read(s.addrDpIndY())) }},            // 0x57
		{"EOR d,#i", 5, dpImm(eor)},                                                      // 0x58
		{"EOR (X),(Y)", 5, indInd(eor)},                                                  // 0x59
		{"CMPW YA,d", 4, func() { s.cmpw(s.addrDp()) }},                                  // 0x5A
		{"LSR d+X", 5, func() { s.rmw(s.addrDpX(), s.lsrValue) }},                        // 0x5B
		{"LSR A", 2, func() { s.a = s.lsrValue(s.a) }},                                   // 0x5C
		{"MOV X,A", 2, func() { s.x = s.setNZ(s.a) }},                                    // 0x5D
		{"CMP Y,!a", 4, func() { s.cmpValue(s.y, s.read(s.addrAbs())) }},                 // 0x5E
		{"JMP !a", 3, func() { s.pc = s.addrAbs() }},                                     // 0x5F
		{"CLRC", 2, func() { s.psw.c = false }},                                          // 0x60
		{"TCALL 6", 8, func() { s.tcall(6) }},                                            // 0x61
		{"SET1 d.3", 4, set1(3)},                                                         // 0x62
		{"BBS d.3,r", 5, bbs(3)},                                                         // 0x63
		{"CMP A,d", 3, func() { s.cmpValue(s.a, s.read(s.addrDp())) }},                   // 0x64
		{"CMP A,!a", 4, func() { s.cmpValue(s.a, s.read(s.addrAbs())) }},                 // 0x65
		{"CMP A,(X)", 3, func() { s.cmpValue(s.a, s.read(s.addrIndX())) }},               // 0x66
		{"CMP A,[d+X]", 6, func() { s.cmpValue(s.a, s.read(s.addrDpXInd())) }},           // 0x67
		{"CMP A,#i", 2, func() { s.cmpValue(s.a, s.fetch()) }},                           // 0x68
		{"CMP dd,ds", 6, func() { src := s.read(s.addrDp()); s.cmpValue(s.read(s.addrDp()), src) }}, // 0x69
		{"AND1 C,/m.b", 4, func() { a, b := s.absBit(); s.psw.c = s.psw.c && s.read(a)&(1<<b) == 0 }}, // 0x6A
		{"ROR d", 4, func() { s.rmw(s.addrDp(), s.rorValue) }},                           // 0x6B
		{"ROR !a", 5, func() { s.rmw(s.addrAbs(), s.rorValue) }},                         // 0x6C
		{"PUSH Y", 4, func() { s.push(s.y) }},                                            // 0x6D
		{"DBNZ d,r", 5, func() { a := s.addrDp(); v := s.read(a) - 1; s.write(a, v); s.branch(v != 0) }}, // 0x6E
		{"RET", 5, func() { l := s.pop(); h := s.pop(); s.pc = uint16(h)<<8 | uint16(l) }}, // 0x6F
		{"BVS r", 2, func() { s.branch(s.psw.v) }},                                       // 0x70
		{"TCALL 7", 8, func() { s.tcall(7) }},                                            // 0x71
		{"CLR1 d.3", 4, clr1(3)},                                                         // 0x72
		{"BBC d.3,r", 5, bbc(3)},                                                         // 0x73
		{"CMP A,d+X", 4, func() { s.cmpValue(s.a, s.read(s.addrDpX())) }},                // 0x74
		{"CMP A,!a+X", 5, func() { s.cmpValue(s.a, s.read(s.addrAbsX())) }},              // 0x75
		{"CMP A,!a+Y", 5, func() { s.cmpValue(s.a, s.read(s.addrAbsY())) }},              // 0x76
		{"CMP A,[d]+Y", 6, func() { s.cmpValue(s.a, s.read(s.addrDpIndY())) }},           // 0x77
		{"CMP d,#i", 5, func() { imm := s.fetch(); s.cmpValue(s.read(s.addrDp()), imm) }}, // 0x78
		{"CMP (X),(Y)", 5, func() { s.cmpValue(s.read(s.pageBase()|uint16(s.x)), s.read(s.pageBase()|uint16(s.y))) }}, // 0x79
		{"ADDW YA,d", 5, func() { s.addw(s.addrDp()) }},                                  // 0x7A
		{"ROR d+X", 5, func() { s.rmw(s.addrDpX(), s.rorValue) }},                        // 0x7B
		{"ROR A", 2, func() { s.a = s.rorValue(s.a) }},                                   // 0x7C
		{"MOV A,X", 2, func() { s.a = s.setNZ(s.x) }},                                    // 0x7D
		{"CMP Y,d", 3, func() { s.cmpValue(s.y, s.read(s.addrDp())) }},                   // 0x7E
		{"RETI", 6, func() { s.psw.decodeFrom(s.pop()); l := s.pop(); h := s.pop(); s.pc = uint16(h)<<8 | uint16(l) }}, // 0x7F
		{"SETC", 2, func() { s.psw.c = true }},                                           // 0x80
		{"TCALL 8", 8, func() { s.tcall(8) }},                                            // 0x81
		{"SET1 d.4", 4, set1(4)},                                                         // 0x82
		{"BBS d.4,r", 5, bbs(4)},                                                         // 0x83
		{"ADC A,d", 3, func() { s.a = adc(s.a, s.read(s.addrDp())) }},                    // 0x84
		{"ADC A,!a", 4, func() { s.a = adc(s.a, s.read(s.addrAbs())) }},                  // 0x85
		{"ADC A,(X)", 3, func() { s.a = adc(s.a, s.read(s.addrIndX())) }},                // 0x86
		{"ADC A,[d+X]", 6, func() { s.a = adc(s.a, s.read(s.addrDpXInd())) }},            // 0x87
		{"ADC A,#i", 2, func() { s.a = adc(s.a, s.fetch()) }},                            // 0x88
		{"ADC dd,ds", 6, dpDp(adc)},                                                      // 0x89
		{"EOR1 C,m.b", 5, func() { a, b := s.absBit(); s.psw.c = s.psw.c != (s.read(a)&(1<<b) != 0) }}, // 0x8A
		{"DEC d", 4, func() { s.rmw(s.addrDp(), s.decValue) }},                           // 0x8B
		{"DEC !a", 5, func() { s.rmw(s.addrAbs(), s.decValue) }},                         // 0x8C
		{"MOV Y,#i", 2, func() { s.y = s.setNZ(s.fetch()) }},                             // 0x8D
		{"POP PSW", 4, func() { s.psw.decodeFrom(s.pop()) }},                             // 0x8E
		{"MOV d,#i", 5, func() { imm := s.fetch(); s.write(s.addrDp(), imm) }},           // 0x8F
		{"BCC r", 2, func() { s.branch(!s.psw.c) }},                                      // 0x90
		{"TCALL 9", 8, func() { s.tcall(9) }},                                            // 0x91
		{"CLR1 d.4", 4, clr1(4)},                                                         // 0x92
		{"BBC d.4,r", 5, bbc(4)},                                                         // 0x93
		{"ADC A,d+X", 4, func() { s.a = adc(s.a, s.read(s.addrDpX())) }},                 // 0x94
		{"ADC A,!a+X", 5, func() { s.a = adc(s.a, s.read(s.addrAbsX())) }},               // 0x95
		{"ADC A,!a+Y", 5, func() { s.a = adc(s.a, s.read(s.addrAbsY())) }},               // 0x96
		{"ADC A,[d]+Y", 6, func() { s.a = adc(s.a, s.read(s.addrDpIndY())) }},            // 0x97
		{"ADC d,#i", 5, dpImm(adc)},                                                      // 0x98
		{"ADC (X),(Y)", 5, indInd(adc)},                                                  // 0x99
		{"SUBW YA,d", 5, func() { s.subw(s.addrDp()) }},                                  // 0x9A
		{"DEC d+X", 5, func() { s.rmw(s.addrDpX(), s.decValue) }},                        // 0x9B
		{"DEC A", 2, func() { s.a = s.decValue(s.a) }},                                   // 0x9C
		{"MOV X,SP", 2, func() { s.x = s.setNZ(s.sp) }},                                  // 0x9D
		{"DIV YA,X", 12, func() { s.div() }},                                             // 0x9E
		{"XCN A", 5, func() { s.a = s.setNZ(s.a>>4 | s.a<<4) }},                          // 0x9F
		{"EI", 3, func() { s.psw.i = true }},                                             // 0xA0
		{"TCALL 10", 8, func() { s.tcall(10) }},                                          // 0xA1
		{"SET1 d.5", 4, set1(5)},                                                         // 0xA2
		{"BBS d.5,r", 5, bbs(5)},                                                         // 0xA3
		{"SBC A,d", 3, func() { s.a = sbc(s.a, s.read(s.addrDp())) }},                    // 0xA4
		{"SBC A,!a", 4, func() { s.a = sbc(s.a, s.read(s.addrAbs())) }},                  // 0xA5
		{"SBC A,(X)", 3, func() { s.a = sbc(s.a, s.read(s.addrIndX())) }},                // 0xA6
		{"SBC A,[d+X]", 6, func() { s.a = sbc(s.a, s.read(s.addrDpXInd())) }},            // 0xA7
		{"SBC A,#i", 2, func() { s.a = sbc(s.a, s.fetch()) }},                            // 0xA8
		{"SBC dd,ds", 6, dpDp(sbc)},                                                      // 0xA9
		{"MOV1 C,m.b", 4, func() { a, b := s.absBit(); s.psw.c = s.read(a)&(1<<b) != 0 }}, // 0xAA
		{"INC d", 4, func() { s.rmw(s.addrDp(), s.incValue) }},                           // 0xAB
		{"INC !a", 5, func() { s.rmw(s.addrAbs(), s.incValue) }},                         // 0xAC
		{"CMP Y,#i", 2, func() { s.cmpValue(s.y, s.fetch()) }},                           // 0xAD
		{"POP A", 4, func() { s.a = s.pop() }},                                           // 0xAE
		{"MOV (X)+,A", 4, func() { s.write(s.pageBase()|uint16(s.x), s.a); s.x++ }},      // 0xAF
		{"BCS r", 2, func() { s.branch(s.psw.c) }},                                       // 0xB0
		{"TCALL 11", 8, func() { s.tcall(11) }},                                          // 0xB1
		{"CLR1 d.5", 4, clr1(5)},                                                         // 0xB2
		{"BBC d.5,r", 5, bbc(5)},                                                         // 0xB3
		{"SBC A,d+X", 4, func() { s.a = sbc(s.a, s.read(s.addrDpX())) }},                 // 0xB4
		{"SBC A,!a+X", 5, func() { s.a = sbc(s.a, s.read(s.addrAbsX())) }},               // 0xB5
		{"SBC A,!a+Y", 5, func() { s.a = sbc(s.a, s.read(s.addrAbsY())) }},               // 0xB6
		{"SBC A,[d]+Y", 6, func() { s.a = sbc(s.a, s.read(s.addrDpIndY())) }},            // 0xB7
		{"SBC d,#i", 5, dpImm(sbc)},                                                      // 0xB8
		{"SBC (X),(Y)", 5, indInd(sbc)},                                                  // 0xB9
		{"MOVW YA,d", 5, func() { s.setYA(s.setNZ16(s.read16(s.addrDp()))) }},            // 0xBA
		{"INC d+X", 5, func() { s.rmw(s.addrDpX(), s.incValue) }},                        // 0xBB
		{"INC A", 2, func() { s.a = s.incValue(s.a) }},                                   // 0xBC
		{"MOV SP,X", 2, func() { s.sp = s.x }},                                           // 0xBD
		{"DAS A", 3, func() { s.das() }},                                                 // 0xBE
		{"MOV A,(X)+", 4, func() { s.a = s.setNZ(s.read(s.pageBase() | uint16(s.x))); s.x++ }}, // 0xBF
		{"DI", 3, func() { s.psw.i = false }},                                            // 0xC0
		{"TCALL 12", 8, func() { s.tcall(12) }},                                          // 0xC1
		{"SET1 d.6", 4, set1(6)},                                                         // 0xC2
		{"BBS d.6,r", 5, bbs(6)},                                                         // 0xC3
		{"MOV d,A", 4, func() { s.write(s.addrDp(), s.a) }},                              // 0xC4
		{"MOV !a,A", 5, func() { s.write(s.addrAbs(), s.a) }},                            // 0xC5
		{"MOV (X),A", 4, func() { s.write(s.addrIndX(), s.a) }},                          // 0xC6
		{"MOV [d+X],A", 7, func() { s.write(s.addrDpXInd(), s.a) }},                      // 0xC7
		{"CMP X,#i", 2, func() { s.cmpValue(s.x, s.fetch()) }},                           // 0xC8
		{"MOV !a,X", 5, func() { s.write(s.addrAbs(), s.x) }},                            // 0xC9
		{"MOV1 m.b,C", 6, func() {
			a, b := s.absBit()
			if s.psw.c {
				s.write(a, s.read(a)|1<<b)
			} else {
				s.write(a, s.read(a)&^(1<<b))
			}
		}}, // 0xCA
		{"MOV d,Y", 4, func() { s.write(s.addrDp(), s.y) }},                              // 0xCB
		{"MOV !a,Y", 5, func() { s.write(s.addrAbs(), s.y) }},                            // 0xCC
		{"MOV X,#i", 2, func() { s.x = s.setNZ(s.fetch()) }},                             // 0xCD
		{"POP X", 4, func() { s.x = s.pop() }},                                           // 0xCE
		{"MUL YA", 9, func() { s.mul() }},                                                // 0xCF
		{"BNE r", 2, func() { s.branch(!s.psw.z) }},                                      // 0xD0
		{"TCALL 13", 8, func() { s.tcall(13) }},                                          // 0xD1
		{"CLR1 d.6", 4, clr1(6)},                                                         // 0xD2
		{"BBC d.6,r", 5, bbc(6)},                                                         // 0xD3
		{"MOV d+X,A", 5, func() { s.write(s.addrDpX(), s.a) }},                           // 0xD4
		{"MOV !a+X,A", 6, func() { s.write(s.addrAbsX(), s.a) }},                         // 0xD5
		{"MOV !a+Y,A", 6, func() { s.write(s.addrAbsY(), s.a) }},                         // 0xD6
		{"MOV [d]+Y,A", 7, func() { s.write(s.addrDpIndY(), s.a) }},                      // 0xD7
		{"MOV d,X", 4, func() { s.write(s.addrDp(), s.x) }},                              // 0xD8
		{"MOV d+Y,X", 5, func() { s.write(s.addrDpY(), s.x) }},                           // 0xD9
		{"MOVW d,YA", 5, func() { a := s.addrDp(); s.write(a, s.a); s.write(a+1, s.y) }}, // 0xDA
		{"MOV d+X,Y", 5, func() { s.write(s.addrDpX(), s.y) }},                           // 0xDB
		{"DEC Y", 2, func() { s.y = s.decValue(s.y) }},                                   // 0xDC
		{"MOV A,Y", 2, func() { s.a = s.setNZ(s.y) }},                                    // 0xDD
		{"CBNE d+X,r", 6, func() { v := s.read(s.addrDpX()); s.branch(s.a != v) }},       // 0xDE
		{"DAA A", 3, func() { s.daa() }},                                                 // 0xDF
		{"CLRV", 2, func() { s.psw.v = false; s.psw.h = false }},                         // 0xE0
		{"TCALL 14", 8, func() { s.tcall(14) }},                                          // 0xE1
		{"SET1 d.7", 4, set1(7)},                                                         // 0xE2
		{"BBS d.7,r", 5, bbs(7)},                                                         // 0xE3
		{"MOV A,d", 3, func() { s.a = s.setNZ(s.read(s.addrDp())) }},                     // 0xE4
		{"MOV A,!a", 4, func() { s.a = s.setNZ(s.read(s.addrAbs())) }},                   // 0xE5
		{"MOV A,(X)", 3, func() { s.a = s.setNZ(s.read(s.addrIndX())) }},                 // 0xE6
		{"MOV A,[d+X]", 6, func() { s.a = s.setNZ(s.read(s.addrDpXInd())) }},             // 0xE7
		{"MOV A,#i", 2, func() { s.a = s.setNZ(s.fetch()) }},                             // 0xE8
		{"MOV X,!a", 4, func() { s.x = s.setNZ(s.read(s.addrAbs())) }},                   // 0xE9
		{"NOT1 m.b", 5, func() { a, b := s.absBit(); s.write(a, s.read(a)^1<<b) }},       // 0xEA
		{"MOV Y,d", 3, func() { s.y = s.setNZ(s.read(s.addrDp())) }},                     // 0xEB
		{"MOV Y,!a", 4, func() { s.y = s.setNZ(s.read(s.addrAbs())) }},                   // 0xEC
		{"NOTC", 3, func() { s.psw.c = !s.psw.c }},                                       // 0xED
		{"POP Y", 4, func() { s.y = s.pop() }},                                           // 0xEE
		{"SLEEP", 3, func() { s.sleeping = true }},                                       // 0xEF
		{"BEQ r", 2, func() { s.branch(s.psw.z) }},                                       // 0xF0
		{"TCALL 15", 8, func() { s.tcall(15) }},                                          // 0xF1
		{"CLR1 d.7", 4, clr1(7)},                                                         // 0xF2
		{"BBC d.7,r", 5, bbc(7)},                                                         // 0xF3
		{"MOV A,d+X", 4, func() { s.a = s.setNZ(s.read(s.addrDpX())) }},                  // 0xF4
		{"MOV A,!a+X", 5, func() { s.a = s.setNZ(s.read(s.addrAbsX())) }},                // 0xF5
		{"MOV A,!a+Y", 5, func() { s.a = s.setNZ(s.read(s.addrAbsY())) }},                // 0xF6
		{"MOV A,[d]+Y", 6, func() { s.a = s.setNZ(s.read(s.addrDpIndY())) }},             // 0xF7
		{"MOV X,d", 3, func() { s.x = s.setNZ(s.read(s.addrDp())) }},                     // 0xF8
		{"MOV X,d+Y", 4, func() { s.x = s.setNZ(s.read(s.addrDpY())) }},                  // 0xF9
		{"MOV dd,ds", 5, func() { v := s.read(s.addrDp()); s.write(s.addrDp(), v) }},     // 0xFA
		{"MOV Y,d+X", 4, func() { s.y = s.setNZ(s.read(s.addrDpX())) }},                  // 0xFB
		{"INC Y", 2, func() { s.y = s.incValue(s.y) }},                                   // 0xFC
		{"MOV Y,A", 2, func() { s.y = s.setNZ(s.a) }},                                    // 0xFD
		{"DBNZ Y,r", 4, func() { s.y--; s.branch(s.y != 0) }},                            // 0xFE
		{"STOP", 3, func() { s.stopped = true }},                                         // 0xFF
	}
}
