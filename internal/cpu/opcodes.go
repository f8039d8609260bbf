package cpu

// execute decodes and runs a single primary opcode (already fetched) and
// returns its cost in M-cycles (1 M-cycle = 4 dot clocks). The D3/DB/DD/
// E3/E4/EB/EC/ED/F4/FC/FD slots the LR35902 never assigns fall through to
// the default case below, which treats decoding one as a fatal program
// error rather than a soft no-op.
func (c *CPU) execute(op byte) int {
	// LD r,r' / LD r,(HL) / LD (HL),r spans this whole block except 0x76.
	if op >= 0x40 && op <= 0x7F && op != 0x76 {
		d := (op >> 3) & 7
		s := op & 7
		c.set8(d, c.get8(s))
		if d == 6 || s == 6 {
			return 2
		}
		return 1
	}

	// ALU A,r for ADD/ADC/SUB/SBC/AND/XOR/OR/CP spans 0x80-0xBF.
	if op >= 0x80 && op <= 0xBF {
		src := c.get8(op & 7)
		cost := 1
		if (op & 7) == 6 {
			cost = 2
		}
		switch (op >> 3) & 7 {
		case 0:
			r, z, n, h, cy := c.add8(c.A, src)
			c.A = r
			c.setZNHC(z, n, h, cy)
		case 1:
			r, z, n, h, cy := c.adc8(c.A, src, (c.F&flagC) != 0)
			c.A = r
			c.setZNHC(z, n, h, cy)
		case 2:
			r, z, n, h, cy := c.sub8(c.A, src)
			c.A = r
			c.setZNHC(z, n, h, cy)
		case 3:
			r, z, n, h, cy := c.sbc8(c.A, src, (c.F&flagC) != 0)
			c.A = r
			c.setZNHC(z, n, h, cy)
		case 4:
			r, z, n, h, cy := c.and8(c.A, src)
			c.A = r
			c.setZNHC(z, n, h, cy)
		case 5:
			r, z, n, h, cy := c.xor8(c.A, src)
			c.A = r
			c.setZNHC(z, n, h, cy)
		case 6:
			r, z, n, h, cy := c.or8(c.A, src)
			c.A = r
			c.setZNHC(z, n, h, cy)
		case 7:
			z, n, h, cy := c.cp8(c.A, src)
			c.setZNHC(z, n, h, cy)
		}
		return cost
	}

	switch op {
	case 0x00: // NOP
		return 1
	case 0x10: // STOP
		c.fetch8() // STOP is followed by a padding byte
		c.stopped = true
		return 1
	case 0x76: // HALT
		c.halted = true
		return 1

	// LD r,d8
	case 0x06:
		c.B = c.fetch8()
		return 2
	case 0x0E:
		c.C = c.fetch8()
		return 2
	case 0x16:
		c.D = c.fetch8()
		return 2
	case 0x1E:
		c.E = c.fetch8()
		return 2
	case 0x26:
		c.H = c.fetch8()
		return 2
	case 0x2E:
		c.L = c.fetch8()
		return 2
	case 0x3E:
		c.A = c.fetch8()
		return 2
	case 0x36: // LD (HL),d8
		c.write8(c.HL(), c.fetch8())
		return 3

	// 16-bit immediate loads
	case 0x01:
		c.setBC(c.fetch16())
		return 3
	case 0x11:
		c.setDE(c.fetch16())
		return 3
	case 0x21:
		c.setHL(c.fetch16())
		return 3
	case 0x31:
		c.SP = c.fetch16()
		return 3
	case 0x08: // LD (a16),SP
		c.write16(c.fetch16(), c.SP)
		return 5

	// LD (BC)/(DE),A and A,(BC)/(DE)
	case 0x02:
		c.write8(c.BC(), c.A)
		return 2
	case 0x12:
		c.write8(c.DE(), c.A)
		return 2
	case 0x0A:
		c.A = c.read8(c.BC())
		return 2
	case 0x1A:
		c.A = c.read8(c.DE())
		return 2

	// LDI/LDD via HL
	case 0x22:
		hl := c.HL()
		c.write8(hl, c.A)
		c.setHL(hl + 1)
		return 2
	case 0x2A:
		hl := c.HL()
		c.A = c.read8(hl)
		c.setHL(hl + 1)
		return 2
	case 0x32:
		hl := c.HL()
		c.write8(hl, c.A)
		c.setHL(hl - 1)
		return 2
	case 0x3A:
		hl := c.HL()
		c.A = c.read8(hl)
		c.setHL(hl - 1)
		return 2

	// LDH and the (FF00+C) variants
	case 0xE0:
		n := uint16(c.fetch8())
		c.write8(0xFF00+n, c.A)
		return 3
	case 0xF0:
		n := uint16(c.fetch8())
		c.A = c.read8(0xFF00 + n)
		return 3
	case 0xE2:
		c.write8(0xFF00+uint16(c.C), c.A)
		return 2
	case 0xF2:
		c.A = c.read8(0xFF00 + uint16(c.C))
		return 2
	case 0xEA: // LD (a16),A
		c.write8(c.fetch16(), c.A)
		return 4
	case 0xFA: // LD A,(a16)
		c.A = c.read8(c.fetch16())
		return 4

	// Accumulator rotates and flag ops
	case 0x07: // RLCA
		cval := (c.A >> 7) & 1
		c.A = (c.A << 1) | cval
		c.setZNHC(false, false, false, cval == 1)
		return 1
	case 0x0F: // RRCA
		cval := c.A & 1
		c.A = (c.A >> 1) | (cval << 7)
		c.setZNHC(false, false, false, cval == 1)
		return 1
	case 0x17: // RLA
		cval := (c.A >> 7) & 1
		cin := byte(0)
		if (c.F & flagC) != 0 {
			cin = 1
		}
		c.A = (c.A << 1) | cin
		c.setZNHC(false, false, false, cval == 1)
		return 1
	case 0x1F: // RRA
		cval := c.A & 1
		cin := byte(0)
		if (c.F & flagC) != 0 {
			cin = 1
		}
		c.A = (c.A >> 1) | (cin << 7)
		c.setZNHC(false, false, false, cval == 1)
		return 1
	case 0x27: // DAA
		a := c.A
		cf := (c.F & flagC) != 0
		if (c.F & flagN) == 0 {
			if cf || a > 0x99 {
				a += 0x60
				cf = true
			}
			if (c.F&flagH) != 0 || (a&0x0F) > 9 {
				a += 0x06
			}
		} else {
			if cf {
				a -= 0x60
			}
			if (c.F & flagH) != 0 {
				a -= 0x06
			}
		}
		c.A = a
		c.setZNHC(c.A == 0, (c.F&flagN) != 0, false, cf)
		return 1
	case 0x2F: // CPL
		c.A = ^c.A
		c.F = (c.F & (flagZ | flagC)) | flagN | flagH
		return 1
	case 0x37: // SCF
		c.F = (c.F & flagZ) | flagC
		return 1
	case 0x3F: // CCF
		newC := (c.F & flagC) == 0
		c.F = (c.F & flagZ)
		if newC {
			c.F |= flagC
		}
		return 1

	// 8-bit INC/DEC
	case 0x04:
		c.B = c.inc8(c.B)
		return 1
	case 0x0C:
		c.C = c.inc8(c.C)
		return 1
	case 0x14:
		c.D = c.inc8(c.D)
		return 1
	case 0x1C:
		c.E = c.inc8(c.E)
		return 1
	case 0x24:
		c.H = c.inc8(c.H)
		return 1
	case 0x2C:
		c.L = c.inc8(c.L)
		return 1
	case 0x3C:
		c.A = c.inc8(c.A)
		return 1
	case 0x34:
		c.write8(c.HL(), c.inc8(c.read8(c.HL())))
		return 3
	case 0x05:
		c.B = c.dec8(c.B)
		return 1
	case 0x0D:
		c.C = c.dec8(c.C)
		return 1
	case 0x15:
		c.D = c.dec8(c.D)
		return 1
	case 0x1D:
		c.E = c.dec8(c.E)
		return 1
	case 0x25:
		c.H = c.dec8(c.H)
		return 1
	case 0x2D:
		c.L = c.dec8(c.L)
		return 1
	case 0x35:
		c.write8(c.HL(), c.dec8(c.read8(c.HL())))
		return 3

	// ALU immediate
	case 0xC6:
		r, z, n, h, cy := c.add8(c.A, c.fetch8())
		c.A = r
		c.setZNHC(z, n, h, cy)
		return 2
	case 0xCE:
		r, z, n, h, cy := c.adc8(c.A, c.fetch8(), (c.F&flagC) != 0)
		c.A = r
		c.setZNHC(z, n, h, cy)
		return 2
	case 0xD6:
		r, z, n, h, cy := c.sub8(c.A, c.fetch8())
		c.A = r
		c.setZNHC(z, n, h, cy)
		return 2
	case 0xDE:
		r, z, n, h, cy := c.sbc8(c.A, c.fetch8(), (c.F&flagC) != 0)
		c.A = r
		c.setZNHC(z, n, h, cy)
		return 2
	case 0xE6:
		r, z, n, h, cy := c.and8(c.A, c.fetch8())
		c.A = r
		c.setZNHC(z, n, h, cy)
		return 2
	case 0xEE:
		r, z, n, h, cy := c.xor8(c.A, c.fetch8())
		c.A = r
		c.setZNHC(z, n, h, cy)
		return 2
	case 0xF6:
		r, z, n, h, cy := c.or8(c.A, c.fetch8())
		c.A = r
		c.setZNHC(z, n, h, cy)
		return 2
	case 0xFE:
		z, n, h, cy := c.cp8(c.A, c.fetch8())
		c.setZNHC(z, n, h, cy)
		return 2

	// Jumps, calls and returns
	case 0xC3:
		c.PC = c.fetch16()
		return 4
	case 0xE9:
		c.PC = c.HL()
		return 1
	case 0x18:
		off := int8(c.fetch8())
		c.PC = uint16(int32(c.PC) + int32(off))
		return 3
	case 0x20:
		off := int8(c.fetch8())
		if (c.F & flagZ) == 0 {
			c.PC = uint16(int32(c.PC) + int32(off))
			return 3
		}
		return 2
	case 0x28:
		off := int8(c.fetch8())
		if (c.F & flagZ) != 0 {
			c.PC = uint16(int32(c.PC) + int32(off))
			return 3
		}
		return 2
	case 0x30:
		off := int8(c.fetch8())
		if (c.F & flagC) == 0 {
			c.PC = uint16(int32(c.PC) + int32(off))
			return 3
		}
		return 2
	case 0x38:
		off := int8(c.fetch8())
		if (c.F & flagC) != 0 {
			c.PC = uint16(int32(c.PC) + int32(off))
			return 3
		}
		return 2
	case 0xCD:
		addr := c.fetch16()
		c.push16(c.PC)
		c.PC = addr
		return 6
	case 0xC9:
		c.PC = c.pop16()
		return 4
	case 0xD9:
		c.PC = c.pop16()
		c.IME = true
		return 4
	case 0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF:
		c.push16(c.PC)
		c.PC = uint16(op & 0x38)
		return 4
	case 0xC4:
		addr := c.fetch16()
		if (c.F & flagZ) == 0 {
			c.push16(c.PC)
			c.PC = addr
			return 6
		}
		return 3
	case 0xCC:
		addr := c.fetch16()
		if (c.F & flagZ) != 0 {
			c.push16(c.PC)
			c.PC = addr
			return 6
		}
		return 3
	case 0xD4:
		addr := c.fetch16()
		if (c.F & flagC) == 0 {
			c.push16(c.PC)
			c.PC = addr
			return 6
		}
		return 3
	case 0xDC:
		addr := c.fetch16()
		if (c.F & flagC) != 0 {
			c.push16(c.PC)
			c.PC = addr
			return 6
		}
		return 3
	case 0xC0:
		if (c.F & flagZ) == 0 {
			c.PC = c.pop16()
			return 5
		}
		return 2
	case 0xC8:
		if (c.F & flagZ) != 0 {
			c.PC = c.pop16()
			return 5
		}
		return 2
	case 0xD0:
		if (c.F & flagC) == 0 {
			c.PC = c.pop16()
			return 5
		}
		return 2
	case 0xD8:
		if (c.F & flagC) != 0 {
			c.PC = c.pop16()
			return 5
		}
		return 2
	case 0xC2:
		addr := c.fetch16()
		if (c.F & flagZ) == 0 {
			c.PC = addr
			return 4
		}
		return 3
	case 0xCA:
		addr := c.fetch16()
		if (c.F & flagZ) != 0 {
			c.PC = addr
			return 4
		}
		return 3
	case 0xD2:
		addr := c.fetch16()
		if (c.F & flagC) == 0 {
			c.PC = addr
			return 4
		}
		return 3
	case 0xDA:
		addr := c.fetch16()
		if (c.F & flagC) != 0 {
			c.PC = addr
			return 4
		}
		return 3

	// 16-bit INC/DEC and ADD HL,rr
	case 0x03:
		c.setBC(c.BC() + 1)
		return 2
	case 0x13:
		c.setDE(c.DE() + 1)
		return 2
	case 0x23:
		c.setHL(c.HL() + 1)
		return 2
	case 0x33:
		c.SP++
		return 2
	case 0x0B:
		c.setBC(c.BC() - 1)
		return 2
	case 0x1B:
		c.setDE(c.DE() - 1)
		return 2
	case 0x2B:
		c.setHL(c.HL() - 1)
		return 2
	case 0x3B:
		c.SP--
		return 2
	case 0x09:
		c.addHL(c.BC())
		return 2
	case 0x19:
		c.addHL(c.DE())
		return 2
	case 0x29:
		c.addHL(c.HL())
		return 2
	case 0x39:
		c.addHL(c.SP)
		return 2

	// SP-relative operations
	case 0xF8: // LD HL,SP+e8
		off := int8(c.fetch8())
		low := byte(c.SP & 0xFF)
		_, _, _, h, cy := c.add8(low, byte(off))
		c.setHL(uint16(int32(int16(c.SP)) + int32(off)))
		c.setZNHC(false, false, h, cy)
		return 3
	case 0xF9:
		c.SP = c.HL()
		return 2
	case 0xE8: // ADD SP,e8
		off := int8(c.fetch8())
		low := byte(c.SP & 0xFF)
		_, _, _, h, cy := c.add8(low, byte(off))
		c.SP = uint16(int32(int16(c.SP)) + int32(off))
		c.setZNHC(false, false, h, cy)
		return 4

	case 0xF3: // DI
		c.IME = false
		c.eiPending = false
		return 1
	case 0xFB: // EI
		c.eiPending = true
		return 1

	case 0xCB:
		return c.executeCB(c.fetch8())

	// PUSH/POP
	case 0xF5:
		c.push16(c.AF())
		return 4
	case 0xC5:
		c.push16(c.BC())
		return 4
	case 0xD5:
		c.push16(c.DE())
		return 4
	case 0xE5:
		c.push16(c.HL())
		return 4
	case 0xF1:
		c.setAF(c.pop16())
		return 3
	case 0xC1:
		c.setBC(c.pop16())
		return 3
	case 0xD1:
		c.setDE(c.pop16())
		return 3
	case 0xE1:
		c.setHL(c.pop16())
		return 3

	default:
		panic(FatalError{PC: c.PC - 1, Opcode: op})
	}
}

func (c *CPU) inc8(v byte) byte {
	old := v
	v++
	c.setZNHC(v == 0, false, (old&0x0F) == 0x0F, (c.F&flagC) != 0)
	return v
}

func (c *CPU) dec8(v byte) byte {
	old := v
	v--
	c.setZNHC(v == 0, true, (old&0x0F) == 0x00, (c.F&flagC) != 0)
	return v
}

func (c *CPU) addHL(rr uint16) {
	hl := c.HL()
	r := uint32(hl) + uint32(rr)
	h := ((hl & 0x0FFF) + (rr & 0x0FFF)) > 0x0FFF
	c.setHL(uint16(r))
	c.setZNHC((c.F&flagZ) != 0, false, h, r > 0xFFFF)
}
