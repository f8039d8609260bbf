package ppu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type mockVRAM map[uint16]byte

func (m mockVRAM) Read(addr uint16) byte { return m[addr] }

func TestPixelsFromTileRowDecodesLeftmostBitFirst(t *testing.T) {
	px := pixelsFromTileRow(0x80, 0x00) // bit7 set in the low plane only
	require.EqualValues(t, 1, px[0], "leftmost pixel reads bit 7")
	for i := 1; i < 8; i++ {
		require.Zerof(t, px[i], "pixel %d should be transparent", i)
	}
}

func TestSpriteHiddenBehindOpaqueBGWhenPriorityBitSet(t *testing.T) {
	mem := mockVRAM{0x8000: 0x80, 0x8001: 0x00} // single opaque pixel at column 0
	sprites := []Sprite{{X: 10, Y: 5, Tile: 0, Attr: 0, OAMIndex: 0}}
	var bgci [160]byte

	out := ComposeSpriteLine(mem, sprites, 5, bgci, false)
	require.NotZero(t, out[10], "sprite draws over a transparent (color 0) background")

	sprites[0].Attr = spriteAttrPriority
	bgci[10] = 1
	out = ComposeSpriteLine(mem, sprites, 5, bgci, false)
	require.Zero(t, out[10], "BG-priority sprite yields to a non-zero background pixel")
}

func TestOverlappingSpritesResolveByXThenOAMIndex(t *testing.T) {
	mem := mockVRAM{
		0x8000: 0xFF, 0x8001: 0x00, // tile 0: fully opaque row, color 1
		0x8010: 0x00, 0x8011: 0xFF, // tile 1: fully opaque row, color 2
	}
	lower := Sprite{X: 19, Y: 0, Tile: 0, Attr: 0, OAMIndex: 5}
	higher := Sprite{X: 20, Y: 0, Tile: 1, Attr: 0, OAMIndex: 3}
	var bgci [160]byte

	out := ComposeSpriteLine(mem, []Sprite{lower, higher}, 0, bgci, false)
	require.EqualValues(t, 1, out[20], "the leftmost-X sprite covering x=20 should win")

	later := Sprite{X: 40, Y: 0, Tile: 1, Attr: 0, OAMIndex: 7}
	earlier := Sprite{X: 40, Y: 0, Tile: 0, Attr: 0, OAMIndex: 2}
	out = ComposeSpriteLine(mem, []Sprite{later, earlier}, 0, bgci, false)
	require.EqualValues(t, 1, out[40], "on an X tie the lower OAM index should win")
}

func TestXFlipMirrorsColumnOrder(t *testing.T) {
	mem := mockVRAM{0x8000: 0x80, 0x8001: 0x00} // opaque only at column 0 unflipped
	flipped := Sprite{X: 0, Y: 0, Tile: 0, Attr: spriteAttrXFlip, OAMIndex: 0}
	var bgci [160]byte

	out := ComposeSpriteLine(mem, []Sprite{flipped}, 0, bgci, false)
	require.Zero(t, out[0], "flipped sprite moves its opaque pixel off column 0")
	require.NotZero(t, out[7], "flipped sprite's opaque pixel now sits at column 7")
}
