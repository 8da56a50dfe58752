package cpu

// execCB decodes and runs one CB-prefixed opcode. The CB space is
// fully regular: x selects the operation family, y is either the bit
// number (BIT/RES/SET) or the rotate/shift variant, z is the operand
// register (6 = (HL)).
func (c *CPU) execCB(opcode uint8) {
	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7

	switch x {
	case 0:
		v := c.reg8(z)
		c.setReg8(z, c.rotateShift(y, v))
	case 1: // BIT y,r
		c.bit(y, c.reg8(z))
	case 2: // RES y,r
		c.setReg8(z, c.reg8(z)&^(1<<y))
	case 3: // SET y,r
		c.setReg8(z, c.reg8(z)|(1<<y))
	}
}

func (c *CPU) rotateShift(op uint8, v uint8) uint8 {
	var result uint8
	switch op {
	case 0:
		result = c.rlc(v)
	case 1:
		result = c.rrc(v)
	case 2:
		result = c.rl(v)
	case 3:
		result = c.rr(v)
	case 4:
		result = c.sla(v)
	case 5:
		result = c.sra(v)
	case 6:
		result = c.swap(v)
	default:
		result = c.srl(v)
	}
	c.setFlag(FlagZ, result == 0)
	return result
}
