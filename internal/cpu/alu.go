package cpu

import "github.com/danhawkins/gopherboy/internal/bits"

func (c *CPU) reg8(i uint8) uint8 {
	switch i {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.readCycle(c.HL())
	default:
		return c.A
	}
}

func (c *CPU) setReg8(i uint8, v uint8) {
	switch i {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.writeCycle(c.HL(), v)
	default:
		c.A = v
	}
}

// rp16 fetches the dd/qq-indexed 16-bit register pair. useSP selects
// between the SP-table (BC,DE,HL,SP) used by LD rr,nn/INC rr/DEC
// rr/ADD HL,rr and the AF-table (BC,DE,HL,AF) used by PUSH/POP.
func (c *CPU) rp16(i uint8, useSP bool) uint16 {
	switch i {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		if useSP {
			return c.SP
		}
		return c.AF()
	}
}

func (c *CPU) setRP16(i uint8, v uint16, useSP bool) {
	switch i {
	case 0:
		c.setBC(v)
	case 1:
		c.setDE(v)
	case 2:
		c.setHL(v)
	default:
		if useSP {
			c.SP = v
		} else {
			c.setAF(v)
		}
	}
}

func (c *CPU) testCond(i uint8) bool {
	switch i {
	case 0:
		return !c.flag(FlagZ)
	case 1:
		return c.flag(FlagZ)
	case 2:
		return !c.flag(FlagC)
	default:
		return c.flag(FlagC)
	}
}

func (c *CPU) add8(v uint8) {
	result := uint16(c.A) + uint16(v)
	c.setFlag(FlagH, bits.HalfCarryAdd8(c.A, v, 0))
	c.setFlag(FlagC, result > 0xFF)
	c.A = uint8(result)
	c.setFlag(FlagZ, c.A == 0)
	c.setFlag(FlagN, false)
}

func (c *CPU) adc8(v uint8) {
	carry := uint16(0)
	if c.flag(FlagC) {
		carry = 1
	}
	result := uint16(c.A) + uint16(v) + carry
	h := (c.A&0xF)+(v&0xF)+uint8(carry) > 0xF
	c.A = uint8(result)
	c.setFlag(FlagH, h)
	c.setFlag(FlagC, result > 0xFF)
	c.setFlag(FlagZ, c.A == 0)
	c.setFlag(FlagN, false)
}

func (c *CPU) sub8(v uint8) uint8 {
	result := c.A - v
	c.setFlag(FlagH, bits.HalfCarrySub8(c.A, v, 0))
	c.setFlag(FlagC, v > c.A)
	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagN, true)
	return result
}

func (c *CPU) subA(v uint8) { c.A = c.sub8(v) }

func (c *CPU) sbc8(v uint8) {
	carry := uint8(0)
	if c.flag(FlagC) {
		carry = 1
	}
	result := int16(c.A) - int16(v) - int16(carry)
	h := int16(c.A&0xF)-int16(v&0xF)-int16(carry) < 0
	c.setFlag(FlagH, h)
	c.setFlag(FlagC, result < 0)
	c.A = uint8(result)
	c.setFlag(FlagZ, c.A == 0)
	c.setFlag(FlagN, true)
}

func (c *CPU) and8(v uint8) {
	c.A &= v
	c.setFlag(FlagZ, c.A == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, true)
	c.setFlag(FlagC, false)
}

func (c *CPU) xor8(v uint8) {
	c.A ^= v
	c.setFlag(FlagZ, c.A == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, false)
}

func (c *CPU) or8(v uint8) {
	c.A |= v
	c.setFlag(FlagZ, c.A == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, false)
}

func (c *CPU) cp8(v uint8) {
	c.setFlag(FlagH, bits.HalfCarrySub8(c.A, v, 0))
	c.setFlag(FlagC, v > c.A)
	c.setFlag(FlagZ, c.A == v)
	c.setFlag(FlagN, true)
}

func (c *CPU) inc8(v uint8) uint8 {
	result := v + 1
	c.setFlag(FlagH, v&0x0F == 0x0F)
	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagN, false)
	return result
}

func (c *CPU) dec8(v uint8) uint8 {
	result := v - 1
	c.setFlag(FlagH, v&0x0F == 0)
	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagN, true)
	return result
}

func (c *CPU) addHL(v uint16) {
	hl := c.HL()
	result := uint32(hl) + uint32(v)
	c.setFlag(FlagH, bits.HalfCarryAdd16(hl, v))
	c.setFlag(FlagC, result > 0xFFFF)
	c.setFlag(FlagN, false)
	c.setHL(uint16(result))
	c.tickCycle(1)
}

// addSPOffset implements both ADD SP,e8 and LD HL,SP+e8: the flag behaviour
// treats the signed offset as an 8-bit unsigned add for carry purposes.
func (c *CPU) addSPOffset() uint16 {
	e := int8(c.readCycle(c.PC))
	c.PC++
	sp := c.SP
	result := uint16(int32(sp) + int32(e))
	c.setFlag(FlagZ, false)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, (sp&0xF)+(uint16(uint8(e))&0xF) > 0xF)
	c.setFlag(FlagC, (sp&0xFF)+uint16(uint8(e)) > 0xFF)
	return result
}

func (c *CPU) rlc(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v<<1 | bits.Val(carry, 1)
	c.setFlag(FlagC, carry)
	c.setFlag(FlagH, false)
	c.setFlag(FlagN, false)
	return result
}

func (c *CPU) rrc(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v >> 1
	if carry {
		result |= 0x80
	}
	c.setFlag(FlagC, carry)
	c.setFlag(FlagH, false)
	c.setFlag(FlagN, false)
	return result
}

func (c *CPU) rl(v uint8) uint8 {
	oldCarry := bits.Val(c.flag(FlagC), 1)
	carry := v&0x80 != 0
	result := v<<1 | oldCarry
	c.setFlag(FlagC, carry)
	c.setFlag(FlagH, false)
	c.setFlag(FlagN, false)
	return result
}

func (c *CPU) rr(v uint8) uint8 {
	oldCarry := bits.Val(c.flag(FlagC), 0x80)
	carry := v&0x01 != 0
	result := v>>1 | oldCarry
	c.setFlag(FlagC, carry)
	c.setFlag(FlagH, false)
	c.setFlag(FlagN, false)
	return result
}

func (c *CPU) sla(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v << 1
	c.setFlag(FlagC, carry)
	c.setFlag(FlagH, false)
	c.setFlag(FlagN, false)
	return result
}

func (c *CPU) sra(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v>>1 | v&0x80
	c.setFlag(FlagC, carry)
	c.setFlag(FlagH, false)
	c.setFlag(FlagN, false)
	return result
}

func (c *CPU) srl(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v >> 1
	c.setFlag(FlagC, carry)
	c.setFlag(FlagH, false)
	c.setFlag(FlagN, false)
	return result
}

func (c *CPU) swap(v uint8) uint8 {
	result := v<<4 | v>>4
	c.setFlag(FlagC, false)
	c.setFlag(FlagH, false)
	c.setFlag(FlagN, false)
	return result
}

func (c *CPU) bit(n, v uint8) {
	c.setFlag(FlagZ, v&(1<<n) == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, true)
}

func (c *CPU) push(v uint16) {
	c.tickCycle(1)
	c.SP--
	c.writeCycle(c.SP, uint8(v>>8))
	c.SP--
	c.writeCycle(c.SP, uint8(v))
}

func (c *CPU) pop() uint16 {
	lo := c.readCycle(c.SP)
	c.SP++
	hi := c.readCycle(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) imm8() uint8 {
	v := c.readCycle(c.PC)
	c.PC++
	return v
}

func (c *CPU) imm16() uint16 {
	lo := c.imm8()
	hi := c.imm8()
	return uint16(hi)<<8 | uint16(lo)
}
