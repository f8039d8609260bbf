package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestMemory() *Memory {
	rom := make([]byte, 0x8000)
	return New(rom)
}

func TestWRAMReadWrite(t *testing.T) {
	m := newTestMemory()
	m.Write(0xC012, 0x42)
	require.EqualValues(t, 0x42, m.Read(0xC012))
}

func TestEchoRAMMirrorsWRAM(t *testing.T) {
	m := newTestMemory()
	m.Write(0xC100, 0x99)
	require.EqualValues(t, 0x99, m.Read(0xE100))
	m.Write(0xE101, 0x77)
	require.EqualValues(t, 0x77, m.Read(0xC101))
}

func TestUnusableRegionReadsFF(t *testing.T) {
	m := newTestMemory()
	require.EqualValues(t, 0xFF, m.Read(0xFEA5))
	m.Write(0xFEA5, 0x01) // must be a silent no-op
	require.EqualValues(t, 0xFF, m.Read(0xFEA5))
}

func TestHRAMReadWrite(t *testing.T) {
	m := newTestMemory()
	m.Write(0xFF80, 0x5A)
	require.EqualValues(t, 0x5A, m.Read(0xFF80))
}

func TestIEAndIFRegisters(t *testing.T) {
	m := newTestMemory()
	m.Write(0xFFFF, 0x1F)
	require.EqualValues(t, 0x1F, m.IE())
	m.Write(0xFF0F, 0x05)
	require.EqualValues(t, 0x05, m.IF())
	require.EqualValues(t, 0xE5, m.Read(0xFF0F))
}

func TestClearIFBit(t *testing.T) {
	m := newTestMemory()
	m.Write(0xFF0F, 0x1F)
	m.ClearIFBit(2)
	require.EqualValues(t, 0x1B, m.IF())
}

func TestOAMDMACopiesFromSourceToOAM(t *testing.T) {
	m := newTestMemory()
	for i := 0; i < 0xA0; i++ {
		m.Write(0xC100+uint16(i), byte(i))
	}
	m.Write(0xFF46, 0xC1) // DMA source = 0xC100
	m.TickDots(0xA0 * 4)
	for i := 0; i < 0xA0; i++ {
		require.EqualValues(t, byte(i), m.Read(0xFE00+uint16(i)))
	}
}

func TestOAMWritesBlockedDuringDMA(t *testing.T) {
	m := newTestMemory()
	m.Write(0xFF46, 0x00)
	m.Write(0xFE00, 0x77) // should be ignored while DMA in flight
	require.NotEqualValues(t, 0x77, m.Read(0xFE00))
}

func TestSerialTransferCompletesImmediatelyAndRaisesInterrupt(t *testing.T) {
	m := newTestMemory()
	var out []byte
	m.SetSerialSink(writerFunc(func(p []byte) (int, error) {
		out = append(out, p...)
		return len(p), nil
	}))
	m.Write(0xFF01, 'A')
	m.Write(0xFF02, 0x81)
	require.Equal(t, []byte{'A'}, out)
	require.EqualValues(t, 0x08, m.IF()&0x08)
	require.EqualValues(t, 0, m.Read(0xFF02)&0x80)
}

func TestBootROMOverlayAndDisable(t *testing.T) {
	m := newTestMemory()
	boot := make([]byte, 0x100)
	boot[0] = 0xAA
	m.SetBootROM(boot)
	require.EqualValues(t, 0xAA, m.Read(0x0000))
	m.Write(0xFF50, 0x01)
	require.NotEqualValues(t, 0xAA, m.Read(0x0000))
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
