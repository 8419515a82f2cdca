package snes

// createInstructions builds the canonical 256-entry decode table. Cycle
// counts are the native-mode, 8-bit, DL=0, no-page-cross base; conditional
// cycles accumulate in c.extra during execution. The writes flag makes
// indexed modes always pay the page-cross cycle.
// Reference: http://www.6502.org/tutorials/65c816opcodes.html#6.11
func (c *CPU) createInstructions() {
	c.instructions = [256]instruction{
		{"BRK", implied, c.brk, 8, false},                     // 0x00
		{"ORA", directIndirectX, c.ora, 6, false},             // 0x01
		{"COP", implied, c.cop, 8, false},                     // 0x02
		{"ORA", stackRelative, c.ora, 4, false},               // 0x03
		{"TSB", direct, c.tsb, 5, true},                       // 0x04
		{"ORA", direct, c.ora, 3, false},                      // 0x05
		{"ASL", direct, c.asl, 5, true},                       // 0x06
		{"ORA", directIndirectLong, c.ora, 6, false},          // 0x07
		{"PHP", implied, c.php, 3, false},                     // 0x08
		{"ORA", immediateM, c.ora, 2, false},                  // 0x09
		{"ASL", accumulator, c.asl, 2, false},                 // 0x0A
		{"PHD", implied, c.phd, 4, false},                     // 0x0B
		{"TSB", absolute, c.tsb, 6, true},                     // 0x0C
		{"ORA", absolute, c.ora, 4, false},                    // 0x0D
		{"ASL", absolute, c.asl, 6, true},                     // 0x0E
		{"ORA", absoluteLong, c.ora, 5, false},                // 0x0F
		{"BPL", relative8, c.bpl, 2, false},                   // 0x10
		{"ORA", directIndirectY, c.ora, 5, false},             // 0x11
		{"ORA", directIndirect, c.ora, 5, false},              // 0x12
		{"ORA", stackRelativeIndirectY, c.ora, 7, false},      // 0x13
		{"TRB", direct, c.trb, 5, true},                       // 0x14
		{"ORA", directX, c.ora, 4, false},                     // 0x15
		{"ASL", directX, c.asl, 6, true},                      // 0x16
		{"ORA", directIndirectLongY, c.ora, 6, false},         // 0x17
		{"CLC", implied, c.clc, 2, false},                     // 0x18
		{"ORA", absoluteY, c.ora, 4, false},                   // 0x19
		{"INC", accumulator, c.inc, 2, false},                 // 0x1A
		{"TCS", implied, c.tcs, 2, false},                     // 0x1B
		{"TRB", absolute, c.trb, 6, true},                     // 0x1C
		{"ORA", absoluteX, c.ora, 4, false},                   // 0x1D
		{"ASL", absoluteX, c.asl, 6, true},                    // 0x1E
		{"ORA", absoluteLongX, c.ora, 5, false},               // 0x1F
		{"JSR", absolute, c.jsr, 6, false},                    // 0x20
		{"AND", directIndirectX, c.and, 6, false},             // 0x21
		{"JSL", absoluteLong, c.jsl, 8, false},                // 0x22
		{"AND", stackRelative, c.and, 4, false},               // 0x23
		{"BIT", direct, c.bit, 3, false},                      // 0x24
		{"AND", direct, c.and, 3, false},                      // 0x25
		{"ROL", direct, c.rol, 5, true},                       // 0x26
		{"AND", directIndirectLong, c.and, 6, false},          // 0x27
		{"PLP", implied, c.plp, 4, false},                     // 0x28
		{"AND", immediateM, c.and, 2, false},                  // 0x29
		{"ROL", accumulator, c.rol, 2, false},                 // 0x2A
		{"PLD", implied, c.pld, 5, false},                     // 0x2B
		{"BIT", absolute, c.bit, 4, false},                    // 0x2C
		{"AND", absolute, c.and, 4, false},                    // 0x2D
		{"ROL", absolute, c.rol, 6, true},                     // 0x2E
		{"AND", absoluteLong, c.and, 5, false},                // 0x2F
		{"BMI", relative8, c.bmi, 2, false},                   // 0x30
		{"AND", directIndirectY, c.and, 5, false},             // 0x31
		{"AND", directIndirect, c.and, 5, false},              // 0x32
		{"AND", stackRelativeIndirectY, c.and, 7, false},      // 0x33
		{"BIT", directX, c.bit, 4, false},                     // 0x34
		{"AND", directX, c.and, 4, false},                     // 0x35
		{"ROL", directX, c.rol, 6, true},                      // 0x36
		{"AND", directIndirectLongY, c.and, 6, false},         // 0x37
		{"SEC", implied, c.sec, 2, false},                     // 0x38
		{"AND", absoluteY, c.and, 4, false},                   // 0x39
		{"DEC", accumulator, c.dec, 2, false},                 // 0x3A
		{"TSC", implied, c.tsc, 2, false},                     // 0x3B
		{"BIT", absoluteX, c.bit, 4, false},                   // 0x3C
		{"AND", absoluteX, c.and, 4, false},                   // 0x3D
		{"ROL", absoluteX, c.rol, 6, true},                    // 0x3E
		{"AND", absoluteLongX, c.and, 5, false},               // 0x3F
		{"RTI", implied, c.rti, 7, false},                     // 0x40
		{"EOR", directIndirectX, c.eor, 6, false},             // 0x41
		{"WDM", implied, c.wdm, 2, false},                     // 0x42
		{"EOR", stackRelative, c.eor, 4, false},               // 0x43
		{"MVP", blockMove, c.mvp, 7, false},                   // 0x44
		{"EOR", direct, c.eor, 3, false},                      // 0x45
		{"LSR", direct, c.lsr, 5, true},                       // 0x46
		{"EOR", directIndirectLong, c.eor, 6, false},          // 0x47
		{"PHA", implied, c.pha, 3, false},                     // 0x48
		{"EOR", immediateM, c.eor, 2, false},                  // 0x49
		{"LSR", accumulator, c.lsr, 2, false},                 // 0x4A
		{"PHK", implied, c.phk, 3, false},                     // 0x4B
		{"JMP", absolute, c.jmp, 3, false},                    // 0x4C
		{"EOR", absolute, c.eor, 4, false},                    // 0x4D
		{"LSR", absolute, c.lsr, 6, true},                     // 0x4E
		{"EOR", absoluteLong, c.eor, 5, false},                // 0x4F
		{"BVC", relative8, c.bvc, 2, false},                   // 0x50
		{"EOR", directIndirectY, c.eor, 5, false},             // 0x51
		{"EOR", directIndirect, c.eor, 5, false},              // 0x52
		{"EOR", stackRelativeIndirectY, c.eor, 7, false},      // 0x53
		{"MVN", blockMove, c.mvn, 7, false},                   // 0x54
		{"EOR", directX, c.eor, 4, false},                     // 0x55
		{"LSR", directX, c.lsr, 6, true},                      // 0x56
		{"EOR", directIndirectLongY, c.eor, 6, false},         // 0x57
		{"CLI", implied, c.cli, 2, false},                     // 0x58
		{"EOR", absoluteY, c.eor, 4, false},                   // 0x59
		{"PHY", implied, c.phy, 3, false},                     // 0x5A
		{"TCD", implied, c.tcd, 2, false},                     // 0x5B
		{"JML", absoluteLong, c.jml, 4, false},                // 0x5C
		{"EOR", absoluteX, c.eor, 4, false},                   // 0x5D
		{"LSR", absoluteX, c.lsr, 6, true},                    // 0x5E
		{"EOR", absoluteLongX, c.eor, 5, false},               // 0x5F
		{"RTS", implied, c.rts, 6, false},                     // 0x60
		{"ADC", directIndirectX, c.adc, 6, false},             // 0x61
		{"PER", implied, c.per, 6, false},                     // 0x62
		{"ADC", stackRelative, c.adc, 4, false},               // 0x63
		{"STZ", direct, c.stz, 3, true},                       // 0x64
		{"ADC", direct, c.adc, 3, false},                      // 0x65
		{"ROR", direct, c.ror, 5, true},                       // 0x66
		{"ADC", directIndirectLong, c.adc, 6, false},          // 0x67
		{"PLA", implied, c.pla, 4, false},                     // 0x68
		{"ADC", immediateM, c.adc, 2, false},                  // 0x69
		{"ROR", accumulator, c.ror, 2, false},                 // 0x6A
		{"RTL", implied, c.rtl, 6, false},                     // 0x6B
		{"JMP", absoluteIndirect, c.jmp, 5, false},            // 0x6C
		{"ADC", absolute, c.adc, 4, false},                    // 0x6D
		{"ROR", absolute, c.ror, 6, true},                     // 0x6E
		{"ADC", absoluteLong, c.adc, 5, false},                // 0x6F
		{"BVS", relative8, c.bvs, 2, false},                   // 0x70
		{"ADC", directIndirectY, c.adc, 5, false},             // 0x71
		{"ADC", directIndirect, c.adc, 5, false},              // 0x72
		{"ADC", stackRelativeIndirectY, c.adc, 7, false},      // 0x73
		{"STZ", directX, c.stz, 4, true},                      // 0x74
		{"ADC", directX, c.adc, 4, false},                     // 0x75
		{"ROR", directX, c.ror, 6, true},                      // 0x76
		{"ADC", directIndirectLongY, c.adc, 6, false},         // 0x77
		{"SEI", implied, c.sei, 2, false},                     // 0x78
		{"ADC", absoluteY, c.adc, 4, false},                   // 0x79
		{"PLY", implied, c.ply, 4, false},                     // 0x7A
		{"TDC", implied, c.tdc, 2, false},                     // 0x7B
		{"JMP", absoluteIndexedIndirect, c.jmp, 6, false},     // 0x7C
		{"ADC", absoluteX, c.adc, 4, false},                   // 0x7D
		{"ROR", absoluteX, c.ror, 6, true},                    // 0x7E
		{"ADC", absoluteLongX, c.adc, 5, false},               // 0x7F
		{"BRA", relative8, c.bra, 2, false},                   // 0x80
		{"STA", directIndirectX, c.sta, 6, true},              // 0x81
		{"BRL", relative16, c.brl, 4, false},                  // 0x82
		{"STA", stackRelative, c.sta, 4, true},                // 0x83
		{"STY", direct, c.sty, 3, true},                       // 0x84
		{"STA", direct, c.sta, 3, true},                       // 0x85
		{"STX", direct, c.stx, 3, true},                       // 0x86
		{"STA", directIndirectLong, c.sta, 6, true},           // 0x87
		{"DEY", implied, c.dey, 2, false},                     // 0x88
		{"BIT", immediateM, c.bit, 2, false},                  // 0x89
		{"TXA", implied, c.txa, 2, false},                     // 0x8A
		{"PHB", implied, c.phb, 3, false},                     // 0x8B
		{"STY", absolute, c.sty, 4, true},                     // 0x8C
		{"STA", absolute, c.sta, 4, true},                     // 0x8D
		{"STX", absolute, c.stx, 4, true},                     // 0x8E
		{"STA", absoluteLong, c.sta, 5, true},                 // 0x8F
		{"BCC", relative8, c.bcc, 2, false},                   // 0x90
		{"STA", directIndirectY, c.sta, 5, true},              // 0x91
		{"STA", directIndirect, c.sta, 5, true},               // 0x92
		{"STA", stackRelativeIndirectY, c.sta, 7, true},       // 0x93
		{"STY", directX, c.sty, 4, true},                      // 0x94
		{"STA", directX, c.sta, 4, true},                      // 0x95
		{"STX", directY, c.stx, 4, true},                      // 0x96
		{"STA", directIndirectLongY, c.sta, 6, true},          // 0x97
		{"TYA", implied, c.tya, 2, false},                     // 0x98
		{"STA", absoluteY, c.sta, 4, true},                    // 0x99
		{"TXS", implied, c.txs, 2, false},                     // 0x9A
		{"TXY", implied, c.txy, 2, false},                     // 0x9B
		{"STZ", absolute, c.stz, 4, true},                     // 0x9C
		{"STA", absoluteX, c.sta, 4, true},                    // 0x9D
		{"STZ", absoluteX, c.stz, 4, true},                    // 0x9E
		{"STA", absoluteLongX, c.sta, 5, true},                // 0x9F
		{"LDY", immediateX, c.ldy, 2, false},                  // 0xA0
		{"LDA", directIndirectX, c.lda, 6, false},             // 0xA1
		{"LDX", immediateX, c.ldx, 2, false},                  // 0xA2
		{"LDA", stackRelative, c.lda, 4, false},               // 0xA3
		{"LDY", direct, c.ldy, 3, false},                      // 0xA4
		{"LDA", direct, c.lda, 3, false},                      // 0xA5
		{"LDX", direct, c.ldx, 3, false},                      // 0xA6
		{"LDA", directIndirectLong, c.lda, 6, false},          // 0xA7
		{"TAY", implied, c.tay, 2, false},                     // 0xA8
		{"LDA", immediateM, c.lda, 2, false},                  // 0xA9
		{"TAX", implied, c.tax, 2, false},                     // 0xAA
		{"PLB", implied, c.plb, 4, false},                     // 0xAB
		{"LDY", absolute, c.ldy, 4, false},                    // 0xAC
		{"LDA", absolute, c.lda, 4, false},                    // 0xAD
		{"LDX", absolute, c.ldx, 4, false},                    // 0xAE
		{"LDA", absoluteLong, c.lda, 5, false},                // 0xAF
		{"BCS", relative8, c.bcs, 2, false},                   // 0xB0
		{"LDA", directIndirectY, c.lda, 5, false},             // 0xB1
		{"LDA", directIndirect, c.lda, 5, false},              // 0xB2
		{"LDA", stackRelativeIndirectY, c.lda, 7, false},      // 0xB3
		{"LDY", directX, c.ldy, 4, false},                     // 0xB4
		{"LDA", directX, c.lda, 4, false},                     // 0xB5
		{"LDX", directY, c.ldx, 4, false},                     // 0xB6
		{"LDA", directIndirectLongY, c.lda, 6, false},         // 0xB7
		{"CLV", implied, c.clv, 2, false},                     // 0xB8
		{"LDA", absoluteY, c.lda, 4, false},                   // 0xB9
		{"TSX", implied, c.tsx, 2, false},                     // 0xBA
		{"TYX", implied, c.tyx, 2, false},                     // 0xBB
		{"LDY", absoluteX, c.ldy, 4, false},                   // 0xBC
		{"LDA", absoluteX, c.lda, 4, false},                   // 0xBD
		{"LDX", absoluteY, c.ldx, 4, false},                   // 0xBE
		{"LDA", absoluteLongX, c.lda, 5, false},               // 0xBF
		{"CPY", immediateX, c.cpy, 2, false},                  // 0xC0
		{"CMP", directIndirectX, c.cmp, 6, false},             // 0xC1
		{"REP", immediate8, c.rep, 3, false},                  // 0xC2
		{"CMP", stackRelative, c.cmp, 4, false},               // 0xC3
		{"CPY", direct, c.cpy, 3, false},                      // 0xC4
		{"CMP", direct, c.cmp, 3, false},                      // 0xC5
		{"DEC", direct, c.dec, 5, true},                       // 0xC6
		{"CMP", directIndirectLong, c.cmp, 6, false},          // 0xC7
		{"INY", implied, c.iny, 2, false},                     // 0xC8
		{"CMP", immediateM, c.cmp, 2, false},                  // 0xC9
		{"DEX", implied, c.dex, 2, false},                     // 0xCA
		{"WAI", implied, c.wai, 3, false},                     // 0xCB
		{"CPY", absolute, c.cpy, 4, false},                    // 0xCC
		{"CMP", absolute, c.cmp, 4, false},                    // 0xCD
		{"DEC", absolute, c.dec, 6, true},                     // 0xCE
		{"CMP", absoluteLong, c.cmp, 5, false},                // 0xCF
		{"BNE", relative8, c.bne, 2, false},                   // 0xD0
		{"CMP", directIndirectY, c.cmp, 5, false},             // 0xD1
		{"CMP", directIndirect, c.cmp, 5, false},              // 0xD2
		{"CMP", stackRelativeIndirectY, c.cmp, 7, false},      // 0xD3
		{"PEI", implied, c.pei, 6, false},                     // 0xD4
		{"CMP", directX, c.cmp, 4, false},                     // 0xD5
		{"DEC", directX, c.dec, 6, true},                      // 0xD6
		{"CMP", directIndirectLongY, c.cmp, 6, false},         // 0xD7
		{"CLD", implied, c.cld, 2, false},                     // 0xD8
		{"CMP", absoluteY, c.cmp, 4, false},                   // 0xD9
		{"PHX", implied, c.phx, 3, false},                     // 0xDA
		{"STP", implied, c.stp, 3, false},                     // 0xDB
		{"JML", absoluteIndirectLong, c.jml, 6, false},        // 0xDC
		{"CMP", absoluteX, c.cmp, 4, false},                   // 0xDD
		{"DEC", absoluteX, c.dec, 6, true},                    // 0xDE
		{"CMP", absoluteLongX, c.cmp, 5, false},               // 0xDF
		{"CPX", immediateX, c.cpx, 2, false},                  // 0xE0
		{"SBC", directIndirectX, c.sbc, 6, false},             // 0xE1
		{"SEP", immediate8, c.sep, 3, false},                  // 0xE2
		{"SBC", stackRelative, c.sbc, 4, false},               // 0xE3
		{"CPX", direct, c.cpx, 3, false},                      // 0xE4
		{"SBC", direct, c.sbc, 3, false},                      // 0xE5
		{"INC", direct, c.inc, 5, true},                       // 0xE6
		{"SBC", directIndirectLong, c.sbc, 6, false},          // 0xE7
		{"INX", implied, c.inx, 2, false},                     // 0xE8
		{"SBC", immediateM, c.sbc, 2, false},                  // 0xE9
		{"NOP", implied, c.nop, 2, false},                     // 0xEA
		{"XBA", implied, c.xba, 3, false},                     // 0xEB
		{"CPX", absolute, c.cpx, 4, false},                    // 0xEC
		{"SBC", absolute, c.sbc, 4, false},                    // 0xED
		{"INC", absolute, c.inc, 6, true},                     // 0xEE
		{"SBC", absoluteLong, c.sbc, 5, false},                // 0xEF
		{"BEQ", relative8, c.beq, 2, false},                   // 0xF0
		{"SBC", directIndirectY, c.sbc, 5, false},             // 0xF1
		{"SBC", directIndirect, c.sbc, 5, false},              // 0xF2
		{"SBC", stackRelativeIndirectY, c.sbc, 7, false},      // 0xF3
		{"PEA", implied, c.pea, 5, false},                     // 0xF4
		{"SBC", directX, c.sbc, 4, false},                     // 0xF5
		{"INC", directX, c.inc, 6, true},                      // 0xF6
		{"SBC", directIndirectLongY, c.sbc, 6, false},         // 0xF7
		{"SED", implied, c.sed, 2, false},                     // 0xF8
		{"SBC", absoluteY, c.sbc, 4, false},                   // 0xF9
		{"PLX", implied, c.plx, 4, false},                     // 0xFA
		{"XCE", implied, c.xce, 2, false},                     // 0xFB
		{"JSR", absoluteIndexedIndirect, c.jsr, 8, false},     // 0xFC
		{"SBC", absoluteX, c.sbc, 4, false},                   // 0xFD
		{"INC", absoluteX, c.inc, 6, true},                    // 0xFE
		{"SBC", absoluteLongX, c.sbc, 5, false},               // 0xFF
	}
}
