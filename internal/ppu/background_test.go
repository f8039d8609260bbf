package ppu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTileDataAddrUnsignedMode(t *testing.T) {
	require.EqualValues(t, 0x8000+3*16+2*2, tileDataAddr(3, true, 2))
}

func TestTileDataAddrSignedModeWrapsBelow9000(t *testing.T) {
	// tile -1 (0xFF) in 0x8800 addressing sits one tile below 0x9000.
	require.EqualValues(t, 0x9000-16, tileDataAddr(0xFF, false, 0))
}

func TestRenderBGLineHonorsSCXSubTileOffsetAndMapWrap(t *testing.T) {
	mem := mockVRAM{}
	mapBase := uint16(0x9800)
	// Tile index map: column 31 holds tile 1, column 0 holds tile 2 (wrap target).
	mem[mapBase+31] = 1
	mem[mapBase+0] = 2
	mem[0x8000+1*16] = 0x0F // tile 1 row 0: low nibble opaque (cols 4-7)
	mem[0x8000+1*16+1] = 0x00
	mem[0x8000+2*16] = 0xF0 // tile 2 row 0: high nibble opaque (cols 0-3)
	mem[0x8000+2*16+1] = 0x00

	scx := byte(31*8 + 4) // column 31 is the first visible tile, entered 4 pixels in
	out := renderBGLine(mem, mapBase, true, scx, 0, 0)

	require.EqualValues(t, 1, out[0], "sub-tile offset skips tile 1's transparent columns 0-3")
	require.EqualValues(t, 1, out[3], "last column of tile 1 decodes opaque before the wrap")
	require.EqualValues(t, 1, out[4], "map wraps from column 31 back to column 0")
}

func TestRenderBGLineHonorsSCYRowSelectAndMapWrap(t *testing.T) {
	mem := mockVRAM{}
	mapBase := uint16(0x9800)
	// Row 0 holds tile 5 at column 0; LY+SCY runs past the last map row onto it.
	mem[mapBase+0*32] = 5
	mem[0x8000+5*16+6*2] = 0xFF // fineY=6 row fully opaque
	mem[0x8000+5*16+6*2+1] = 0x00

	scy := byte(31*8 + 6) // ly=8 + scy = 262, which wraps to map row 0, fineY 6
	out := renderBGLine(mem, mapBase, true, 0, scy, 8)

	require.EqualValues(t, 1, out[0], "row selected by SCY wrap decodes the expected tile row")
}

func TestRenderWindowLineStartsAtWXAndAdvancesTiles(t *testing.T) {
	mem := mockVRAM{}
	mapBase := uint16(0x9C00)
	mem[mapBase+0] = 9
	mem[0x8000+9*16] = 0xFF
	mem[0x8000+9*16+1] = 0x00
	mem[mapBase+1] = 9 // second tile column, same opaque row

	out := renderWindowLine(mem, mapBase, true, 100, 0)

	for x := 0; x < 100; x++ {
		require.Zerof(t, out[x], "pixels before wxStart stay 0 for the caller to overlay, x=%d", x)
	}
	require.EqualValues(t, 1, out[100], "window pixel decodes once wxStart is reached")
	require.EqualValues(t, 1, out[108], "window advances to the next tile column at x=108")
}
