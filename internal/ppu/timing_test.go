package ppu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func statMode(p *PPU) byte { return p.CPURead(0xFF41) & 0x03 }

func TestModeSequenceAdvancesOAMTransferHBlankPerLine(t *testing.T) {
	p := New(nil)
	p.CPUWrite(0xFF40, 0x80) // LCD on
	require.EqualValues(t, 2, statMode(p), "mode 2 (OAM scan) immediately after LCD enable")

	p.Tick(80)
	require.EqualValues(t, 3, statMode(p), "mode 3 (pixel transfer) at dot 80")

	p.Tick(172)
	require.EqualValues(t, 0, statMode(p), "mode 0 (HBlank) at dot 252")

	p.Tick(456 - 252)
	require.EqualValues(t, 1, p.CPURead(0xFF44), "LY increments at line end")
	require.EqualValues(t, 2, statMode(p), "mode 2 again at the new line")
}

func TestVBlankRaisesIFAndOptionalSTAT(t *testing.T) {
	var raised []int
	p := New(func(bit int) { raised = append(raised, bit) })
	p.CPUWrite(0xFF41, 1<<4) // STAT VBlank-source enabled
	p.CPUWrite(0xFF40, 0x80)

	p.Tick(144 * 456) // run through to the first VBlank line

	var vblankIF, statIRQ int
	for _, b := range raised {
		switch b {
		case 0:
			vblankIF++
		case 1:
			statIRQ++
		}
	}
	require.Positive(t, vblankIF, "VBlank sets IF bit 0 at LY=144")
	require.Positive(t, statIRQ, "STAT fires too when its VBlank source is enabled")
}

func TestSTATFiresOnEnabledHBlankAndLYCSources(t *testing.T) {
	var raised []int
	record := func(bit int) { raised = append(raised, bit) }
	p := New(record)
	p.CPUWrite(0xFF41, (1<<3)|(1<<5)|(1<<6)) // HBlank, OAM, LYC sources
	p.CPUWrite(0xFF45, 2)                    // LYC = 2
	p.CPUWrite(0xFF40, 0x80)

	p.Tick(80 + 172) // reach HBlank on line 0
	require.Contains(t, raised, 1, "HBlank source enabled should raise STAT (bit 1)")

	raised = nil
	p.Tick((456 - (80 + 172)) + 456 + 1) // finish line 0, all of line 1, into line 2
	require.Contains(t, raised, 1, "LYC coincidence at LY==2 should raise STAT")
}
