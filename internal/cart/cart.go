// Package cart implements the cartridge abstraction: header parsing and a
// single no-mapper variant addressed directly as a 32 KiB ROM image with no
// external RAM. Banked mappers (MBC1/2/3/5/6/7, MMM01, HuC1/3) are
// enumerated by header byte but not implemented; selecting one falls back
// to the no-mapper behavior, matching a cartridge whose banking logic this
// build doesn't speak.
package cart

// Cartridge is the capability set a mapper variant exposes: separate
// ROM/RAM read and write paths (so a future banked mapper can intercept
// bank-select writes to ROM without touching RAM semantics), plus the
// two header-derived facts the rest of the system wants without re-parsing
// the header itself.
type Cartridge interface {
	ReadROM(addr uint16) byte
	WriteROM(addr uint16, value byte)
	ReadRAM(addr uint16) byte
	WriteRAM(addr uint16, value byte)
	Title() string
	MapperKind() string
}

// NewCartridge parses rom's header and constructs the matching cartridge.
// Only the no-mapper variant is implemented; any other header byte is
// reported via MapperKind but still reads/writes as no-mapper.
func NewCartridge(rom []byte) Cartridge {
	h, err := ParseHeader(rom)
	if err != nil {
		return newNoMapper(rom, "", "unknown (unparseable header)")
	}
	return newNoMapper(rom, h.Title, h.MapperKindStr)
}
