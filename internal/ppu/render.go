package ppu

// internalReader gives the scanline/sprite composers raw, unguarded access
// to VRAM/OAM bytes, bypassing the mode-gated CPURead/CPUWrite used for the
// CPU-facing bus; the PPU itself is always allowed to read its own memory
// while composing a line.
type internalReader struct{ p *PPU }

func (r internalReader) Read(addr uint16) byte {
	switch {
	case addr >= 0x8000 && addr <= 0x9FFF:
		return r.p.vram[addr-0x8000]
	case addr >= 0xFE00 && addr <= 0xFE9F:
		return r.p.oam[addr-0xFE00]
	default:
		return 0xFF
	}
}

// scanOAM selects up to 10 sprites intersecting scanline ly, in ascending
// OAM order, the way real OAM scan (mode 2) does.
func (p *PPU) scanOAM(ly byte) []Sprite {
	tall := p.lcdc&0x04 != 0
	height := 8
	if tall {
		height = 16
	}
	var out []Sprite
	for i := 0; i < 40 && len(out) < 10; i++ {
		rawY := p.oam[i*4+0]
		rawX := p.oam[i*4+1]
		tile := p.oam[i*4+2]
		attr := p.oam[i*4+3]
		y := int(rawY) - 16
		x := int(rawX) - 8
		if int(ly) < y || int(ly) >= y+height {
			continue
		}
		out = append(out, Sprite{X: x, Y: y, Tile: tile, Attr: attr, OAMIndex: i})
	}
	return out
}

// captureAndRender snapshots this scanline's registers and composes its
// BG/window/sprite pixels into the frame buffer. Called once per line, at
// the moment the line enters mode 3.
func (p *PPU) captureAndRender() {
	ly := p.ly
	lr := LineRegs{
		LCDC: p.lcdc, SCY: p.scy, SCX: p.scx, LY: ly, WY: p.wy, WX: p.wx,
		BGP: p.bgp, OBP0: p.obp0, OBP1: p.obp1, WinLine: p.winLineCounter,
	}
	p.lineRegs[ly] = lr

	mem := internalReader{p: p}

	var bgci [160]byte
	if p.lcdc&0x01 != 0 {
		mapBase := uint16(0x9800)
		if p.lcdc&0x08 != 0 {
			mapBase = 0x9C00
		}
		tileData8000 := p.lcdc&0x10 != 0
		bgci = renderBGLine(mem, mapBase, tileData8000, p.scx, p.scy, ly)
	}

	if p.winVisibleLine {
		winMapBase := uint16(0x9800)
		if p.lcdc&0x40 != 0 {
			winMapBase = 0x9C00
		}
		tileData8000 := p.lcdc&0x10 != 0
		wxStart := int(p.wx) - 7
		winOut := renderWindowLine(mem, winMapBase, tileData8000, wxStart, p.winLineCounter)
		for x := wxStart; x < 160; x++ {
			if x < 0 {
				continue
			}
			bgci[x] = winOut[x]
		}
	}

	var sprci, sprAttr [160]byte
	if p.lcdc&0x02 != 0 {
		sprites := p.scanOAM(ly)
		sprci, sprAttr = composeSpriteLineDetailed(mem, sprites, ly, bgci, p.lcdc&0x04 != 0)
	}

	for x := 0; x < 160; x++ {
		if sprci[x] != 0 {
			p.frame[ly][x] = SpritePalette(p.obp0, p.obp1, sprAttr[x], sprci[x])
		} else {
			p.frame[ly][x] = BGPalette(p.bgp, bgci[x])
		}
	}
}
