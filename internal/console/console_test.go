package console

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestConsole(program []byte) *Console {
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], program)
	return New(rom)
}

func TestCycleRunsOneInstructionAndTicksPeripherals(t *testing.T) {
	// NOP; NOP
	co := newTestConsole([]byte{0x00, 0x00})
	m := co.Cycle()
	require.Equal(t, 1, m)
	require.EqualValues(t, 0x0101, co.CPU.PC)
}

func TestCycleServicesPendingVBlankInterrupt(t *testing.T) {
	// Loop forever on a single JP to itself at 0x0100; used only so PC is
	// predictable after interrupt dispatch pushes the return address.
	co := newTestConsole([]byte{0xC3, 0x00, 0x01}) // JP 0x0100
	co.CPU.IME = true
	co.Mem.Write(0xFFFF, 0x01) // IE: VBlank
	co.Mem.Write(0xFF0F, 0x01) // IF: VBlank pending

	m := co.Cycle()
	require.Equal(t, 5, m)
	require.EqualValues(t, 0x0040, co.CPU.PC)
	require.False(t, co.CPU.IMEEnabled())
	require.EqualValues(t, 0, co.Mem.IF()&0x01)

	// Return address pushed onto the stack should be 0x0100.
	lo := co.Mem.Read(0xFFFE - 2)
	hi := co.Mem.Read(0xFFFE - 1)
	require.EqualValues(t, 0x0100, uint16(hi)<<8|uint16(lo))
}

func TestSetButtonsWakesFromStop(t *testing.T) {
	co := newTestConsole([]byte{0x10, 0x00}) // STOP
	co.Cycle()
	require.True(t, co.CPU.Stopped())
	co.SetButtons(0x01)
	require.False(t, co.CPU.Stopped())
}
