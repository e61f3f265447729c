package sim

import (
	"encoding/binary"
	"slices"
	"sort"

	gobridge "github.com/wippyai/gobject-bridge"
)

const heapBase ptr = 0x10000000

type block struct {
	base   ptr
	data   []byte
	tag    string
	static bool
}

// heap hands out non-overlapping addresses backed by Go slices. Blocks
// are separated by a gap so off-by-one reads fall outside any block.
type heap struct {
	blocks map[ptr]*block
	bases  []ptr
	next   ptr
}

func newHeap() heap {
	return heap{blocks: make(map[ptr]*block), next: heapBase}
}

func (h *heap) alloc(n uintptr, tag string) *block {
	if n == 0 {
		n = 1
	}
	bl := &block{base: h.next, data: make([]byte, n), tag: tag}
	h.blocks[bl.base] = bl
	h.bases = append(h.bases, bl.base)
	h.next += ptr((n + 31) &^ 15)
	return bl
}

func (h *heap) release(p ptr) bool {
	if _, ok := h.blocks[p]; !ok {
		return false
	}
	delete(h.blocks, p)
	if i, ok := slices.BinarySearch(h.bases, p); ok {
		h.bases = slices.Delete(h.bases, i, i+1)
	}
	return true
}

// find locates the block containing p.
func (h *heap) find(p ptr) (*block, int, bool) {
	i := sort.Search(len(h.bases), func(i int) bool { return h.bases[i] > p }) - 1
	if i < 0 {
		return nil, 0, false
	}
	bl := h.blocks[h.bases[i]]
	off := int(p - bl.base)
	if off >= len(bl.data) {
		return nil, 0, false
	}
	return bl, off, true
}

func (h *heap) live() int {
	n := 0
	for _, bl := range h.blocks {
		if !bl.static {
			n++
		}
	}
	return n
}

func (b *Backend) alloc(n uintptr, tag string) ptr {
	return b.heap.alloc(n, tag).base
}

// staticString allocates a string that lives as long as the backend.
func (b *Backend) staticString(s string) ptr {
	bl := b.heap.alloc(uintptr(len(s)+1), "static")
	copy(bl.data, s)
	bl.static = true
	return bl.base
}

func (b *Backend) strdup(s string) ptr {
	bl := b.heap.alloc(uintptr(len(s)+1), "gchar")
	copy(bl.data, s)
	return bl.base
}

func (b *Backend) free(p ptr) {
	if p == 0 {
		return
	}
	if !b.heap.release(p) {
		b.critical("free of unknown pointer %#x", uintptr(p))
	}
}

func (b *Backend) bytes(p ptr, n int) []byte {
	bl, off, ok := b.heap.find(p)
	if !ok || off+n > len(bl.data) {
		b.critical("access of %d bytes at unmapped address %#x", n, uintptr(p))
		return make([]byte, n)
	}
	return bl.data[off : off+n]
}

func (b *Backend) cstring(p ptr) string {
	if p == 0 {
		b.critical("string read from null pointer")
		return ""
	}
	bl, off, ok := b.heap.find(p)
	if !ok {
		b.critical("string read from unmapped address %#x", uintptr(p))
		return ""
	}
	data := bl.data[off:]
	for i, c := range data {
		if c == 0 {
			return string(data[:i])
		}
	}
	b.critical("unterminated string at %#x", uintptr(p))
	return string(data)
}

func (b *Backend) readPtr(p ptr) ptr {
	return ptr(binary.NativeEndian.Uint64(b.bytes(p, gobridge.PtrSize)))
}

func (b *Backend) writePtr(p ptr, v ptr) {
	binary.NativeEndian.PutUint64(b.bytes(p, gobridge.PtrSize), uint64(v))
}

func (b *Backend) readU32(p ptr) uint32 {
	return binary.NativeEndian.Uint32(b.bytes(p, 4))
}

func (b *Backend) writeU32(p ptr, v uint32) {
	binary.NativeEndian.PutUint32(b.bytes(p, 4), v)
}

// strv reads a NULL-terminated string array, or n entries when n >= 0.
func (b *Backend) strv(p ptr, n int) []string {
	if p == 0 {
		return nil
	}
	out := []string{}
	for i := 0; n < 0 || i < n; i++ {
		e := b.readPtr(p + ptr(i*gobridge.PtrSize))
		if e == 0 {
			if n >= 0 {
				b.critical("null entry %d in string array of length %d", i, n)
			}
			break
		}
		out = append(out, b.cstring(e))
	}
	return out
}

// newStrv allocates a NULL-terminated array of newly allocated strings.
func (b *Backend) newStrv(list []string) ptr {
	arr := b.alloc(uintptr(len(list)+1)*gobridge.PtrSize, "gchar*[]")
	for i, s := range list {
		b.writePtr(arr+ptr(i*gobridge.PtrSize), b.strdup(s))
	}
	return arr
}

func (b *Backend) strvFree(p ptr) {
	if p == 0 {
		return
	}
	for i := 0; ; i++ {
		e := b.readPtr(p + ptr(i*gobridge.PtrSize))
		if e == 0 {
			break
		}
		b.free(e)
	}
	b.free(p)
}

// Alloc implements g_malloc0.
func (b *Backend) Alloc(size uintptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.alloc(size, "g_malloc")
}

// Free implements g_free.
func (b *Backend) Free(p ptr) {
	b.mu.Lock()
	defer b.unlock()
	b.free(p)
}

// Strdup copies s into native memory.
func (b *Backend) Strdup(s string) ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.strdup(s)
}

// GoString copies a NUL-terminated native string.
func (b *Backend) GoString(p ptr) string {
	b.mu.Lock()
	defer b.unlock()
	return b.cstring(p)
}

// StrvFree implements g_strfreev.
func (b *Backend) StrvFree(p ptr) {
	b.mu.Lock()
	defer b.unlock()
	b.strvFree(p)
}

// ReadPtr reads a pointer-sized word.
func (b *Backend) ReadPtr(p ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.readPtr(p)
}

// WritePtr writes a pointer-sized word.
func (b *Backend) WritePtr(p ptr, v ptr) {
	b.mu.Lock()
	defer b.unlock()
	b.writePtr(p, v)
}

// Read copies n bytes out of native memory.
func (b *Backend) Read(p ptr, n uintptr) []byte {
	b.mu.Lock()
	defer b.unlock()
	return slices.Clone(b.bytes(p, int(n)))
}

// Write copies data into native memory.
func (b *Backend) Write(p ptr, data []byte) {
	b.mu.Lock()
	defer b.unlock()
	copy(b.bytes(p, len(data)), data)
}
