package ppu

// tileRowPixels reads the tile index at tileIndexAddr and decodes its row
// fineY into 8 color indices, the single step both renderBGLine and
// renderWindowLine repeat across a scanline's 21ish tile columns.
func tileRowPixels(mem VRAMReader, tileIndexAddr uint16, tileData8000 bool, fineY byte) [8]byte {
	tileNum := mem.Read(tileIndexAddr)
	addr := tileDataAddr(tileNum, tileData8000, fineY)
	lo := mem.Read(addr)
	hi := mem.Read(addr + 1)
	return pixelsFromTileRow(lo, hi)
}

// renderBGLine renders 160 BG color indices (0..3) for scanline ly, walking
// the tilemap at mapBase left to right and decoding one tile row at a time.
func renderBGLine(mem VRAMReader, mapBase uint16, tileData8000 bool, scx, scy, ly byte) [160]byte {
	var out [160]byte

	bgY := uint16(ly) + uint16(scy)
	fineY := byte(bgY & 7)
	mapY := (bgY >> 3) & 31

	startX := uint16(scx)
	tileX := (startX >> 3) & 31
	fineX := int(startX & 7)

	tileIndexAddr := mapBase + mapY*32 + tileX
	px := tileRowPixels(mem, tileIndexAddr, tileData8000, fineY)
	col := fineX

	for x := 0; x < 160; x++ {
		if col == 8 {
			tileX = (tileX + 1) & 31
			tileIndexAddr = mapBase + mapY*32 + tileX
			px = tileRowPixels(mem, tileIndexAddr, tileData8000, fineY)
			col = 0
		}
		out[x] = px[col]
		col++
	}
	return out
}

// renderWindowLine renders the window layer for a scanline, filling pixels
// from wxStart (WX-7) onward using winLine as the window's own internal
// vertical counter. Pixels before wxStart are left 0 for the caller to
// overlay onto a BG line it already produced.
func renderWindowLine(mem VRAMReader, mapBase uint16, tileData8000 bool, wxStart int, winLine byte) [160]byte {
	var out [160]byte
	if wxStart >= 160 {
		return out
	}
	if wxStart < 0 {
		wxStart = 0
	}

	mapY := (uint16(winLine) >> 3) & 31
	fineY := winLine & 7
	tileX := uint16(0)
	tileIndexAddr := mapBase + mapY*32 + tileX
	px := tileRowPixels(mem, tileIndexAddr, tileData8000, fineY)
	col := 0

	for x := wxStart; x < 160; x++ {
		if col == 8 {
			tileX = (tileX + 1) & 31
			tileIndexAddr = mapBase + mapY*32 + tileX
			px = tileRowPixels(mem, tileIndexAddr, tileData8000, fineY)
			col = 0
		}
		out[x] = px[col]
		col++
	}
	return out
}
