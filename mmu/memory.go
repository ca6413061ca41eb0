// Package mmu provides the memory-management collaborator for rvcore
// processors: sparse physical memory shared by all cores, and a per-core
// MMU with a translation cache built on Akita cache components.
package mmu

// PageSize is the allocation granularity of the sparse memory and the
// translation-cache block size.
const PageSize = 4096

// Memory is a sparse, page-granular physical memory. Pages are allocated
// on first write; reads of unallocated memory return zeroes. One Memory
// is shared by every core's MMU.
type Memory struct {
	pages map[uint64]*[PageSize]byte
}

// NewMemory creates an empty memory.
func NewMemory() *Memory {
	return &Memory{pages: map[uint64]*[PageSize]byte{}}
}

func (m *Memory) page(addr uint64, alloc bool) *[PageSize]byte {
	base := addr &^ (PageSize - 1)
	pg := m.pages[base]
	if pg == nil && alloc {
		pg = &[PageSize]byte{}
		m.pages[base] = pg
	}
	return pg
}

// Mapped reports whether the page holding addr has been allocated.
func (m *Memory) Mapped(addr uint64) bool {
	return m.page(addr, false) != nil
}

// Read8 reads one byte.
func (m *Memory) Read8(addr uint64) byte {
	pg := m.page(addr, false)
	if pg == nil {
		return 0
	}
	return pg[addr%PageSize]
}

// Write8 writes one byte, allocating the page if needed.
func (m *Memory) Write8(addr uint64, value byte) {
	m.page(addr, true)[addr%PageSize] = value
}

// Read32 reads a little-endian 32-bit word. The access may cross a page
// boundary.
func (m *Memory) Read32(addr uint64) uint32 {
	var v uint32
	for i := uint64(0); i < 4; i++ {
		v |= uint32(m.Read8(addr+i)) << (8 * i)
	}
	return v
}

// Write32 writes a little-endian 32-bit word.
func (m *Memory) Write32(addr uint64, value uint32) {
	for i := uint64(0); i < 4; i++ {
		m.Write8(addr+i, byte(value>>(8*i)))
	}
}

// Read64 reads a little-endian 64-bit word.
func (m *Memory) Read64(addr uint64) uint64 {
	return uint64(m.Read32(addr)) | uint64(m.Read32(addr+4))<<32
}

// Write64 writes a little-endian 64-bit word.
func (m *Memory) Write64(addr uint64, value uint64) {
	m.Write32(addr, uint32(value))
	m.Write32(addr+4, uint32(value>>32))
}

// LoadImage copies a flat binary image into memory at base.
func (m *Memory) LoadImage(base uint64, data []byte) {
	for i, b := range data {
		m.Write8(base+uint64(i), b)
	}
}
