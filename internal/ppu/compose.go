package ppu

// Sprite is one OAM entry after an OAM scan has selected it for a scanline.
// X and Y are already screen-adjusted (raw OAM X-8, Y-16), matching the
// coordinate convention the rest of this package uses.
type Sprite struct {
	X, Y     int
	Tile     byte
	Attr     byte
	OAMIndex int
}

const (
	spriteAttrPriority = 1 << 7
	spriteAttrYFlip    = 1 << 6
	spriteAttrXFlip    = 1 << 5
	spriteAttrPalette  = 1 << 4
)

// ComposeSpriteLine renders the sprite layer for one scanline into 160 color
// indices (0..3, 0 meaning transparent/no sprite). sprites should already be
// the up-to-10 entries an OAM scan selected for ly. Overlap is resolved by
// smallest X first, then smallest OAMIndex; a sprite with the BG-priority
// attribute bit set only shows through where the background color index is
// zero.
func ComposeSpriteLine(mem VRAMReader, sprites []Sprite, ly byte, bgci [160]byte, tall bool) [160]byte {
	ci, _ := composeSpriteLineDetailed(mem, sprites, ly, bgci, tall)
	return ci
}

// composeSpriteLineDetailed is ComposeSpriteLine's implementation, additionally
// returning the winning sprite's attribute byte per pixel so a framebuffer
// assembler can resolve OBP0/OBP1 palette selection; ComposeSpriteLine
// discards that second return to keep its tested signature stable.
func composeSpriteLineDetailed(mem VRAMReader, sprites []Sprite, ly byte, bgci [160]byte, tall bool) ([160]byte, [160]byte) {
	var out, attrOut [160]byte
	height := 8
	if tall {
		height = 16
	}

	type candidate struct {
		ci       byte
		attr     byte
		priority bool
		x        int
		oamIndex int
	}
	var winners [160]*candidate

	for i := range sprites {
		s := &sprites[i]
		row := int(ly) - s.Y
		if row < 0 || row >= height {
			continue
		}
		if s.Attr&spriteAttrYFlip != 0 {
			row = height - 1 - row
		}
		tile := s.Tile
		if tall {
			tile &^= 0x01
			if row >= 8 {
				tile |= 0x01
				row -= 8
			}
		}
		base := uint16(0x8000) + uint16(tile)*16 + uint16(row)*2
		lo := mem.Read(base)
		hi := mem.Read(base + 1)
		rowPx := pixelsFromTileRow(lo, hi)

		for col := 0; col < 8; col++ {
			x := s.X + col
			if x < 0 || x >= 160 {
				continue
			}
			bitCol := col
			if s.Attr&spriteAttrXFlip != 0 {
				bitCol = 7 - col
			}
			ci := rowPx[bitCol]
			if ci == 0 {
				continue
			}
			cand := &candidate{ci: ci, attr: s.Attr, priority: s.Attr&spriteAttrPriority != 0, x: s.X, oamIndex: s.OAMIndex}
			cur := winners[x]
			if cur == nil || cand.x < cur.x || (cand.x == cur.x && cand.oamIndex < cur.oamIndex) {
				winners[x] = cand
			}
		}
	}

	for x := 0; x < 160; x++ {
		w := winners[x]
		if w == nil {
			continue
		}
		if w.priority && bgci[x] != 0 {
			continue
		}
		out[x] = w.ci
		attrOut[x] = w.attr
	}
	return out, attrOut
}

// SpritePalette resolves a sprite color index (1..3) through OBP0 or OBP1
// depending on the attribute byte's palette bit, returning the 2-bit shade.
func SpritePalette(obp0, obp1, attr, ci byte) byte {
	pal := obp0
	if attr&spriteAttrPalette != 0 {
		pal = obp1
	}
	return (pal >> (ci * 2)) & 0x03
}

// BGPalette resolves a BG/window color index through BGP.
func BGPalette(bgp, ci byte) byte {
	return (bgp >> (ci * 2)) & 0x03
}
