package ppu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tickLines(p *PPU, n int) { p.Tick(456 * n) }

func TestWindowLineCounterTracksVisibleLines(t *testing.T) {
	p := New(nil)
	p.CPUWrite(0xFF40, 0x80|0x01|0x20) // LCD, BG, window all on
	p.CPUWrite(0xFF4A, 10)             // WY=10
	p.CPUWrite(0xFF4B, 7)              // WX=7 -> window starts at screen x=0

	tickLines(p, 10)
	require.EqualValues(t, 10, p.CPURead(0xFF44))

	p.Tick(80) // reach mode 3 so captureAndRender snapshots this line
	require.EqualValues(t, 0, p.LineRegs(10).WinLine, "window's own line counter starts at 0 on WY")

	tickLines(p, 1)
	p.Tick(80)
	require.EqualValues(t, 1, p.LineRegs(11).WinLine, "counter advances once the window has shown a line")
}

func TestWindowStaysHiddenWhenWXBeyondVisibleRange(t *testing.T) {
	p := New(nil)
	p.CPUWrite(0xFF40, 0x80|0x01|0x20)
	p.CPUWrite(0xFF4A, 5)
	p.CPUWrite(0xFF4B, 200) // WX far past the point where the window can show

	tickLines(p, 8)

	for ly := 5; ly <= 12; ly++ {
		require.Zerof(t, p.LineRegs(ly).WinLine, "window line counter should not move at ly=%d", ly)
	}
}
