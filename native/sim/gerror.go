package sim

import "encoding/binary"

// Error domains raised by the simulator.
const (
	DomainVariantParse = "g-variant-parse-error-quark"
	DomainFile         = "g-file-error-quark"
)

// GVariantParseError codes.
const (
	ParseErrorFailed             int32 = 0
	ParseErrorCannotInferType    int32 = 2
	ParseErrorInputNotAtEnd      int32 = 4
	ParseErrorInvalidTypeString  int32 = 9
	ParseErrorNumberOutOfRange   int32 = 11
	ParseErrorTypeError          int32 = 13
	ParseErrorUnexpectedToken    int32 = 14
	ParseErrorUnknownKeyword     int32 = 15
	ParseErrorUnterminatedString int32 = 16
	ParseErrorValueExpected      int32 = 17
)

// GFileError codes.
const (
	FileErrorNoEnt int32 = 4
	FileErrorInval int32 = 17
)

func (b *Backend) quark(s string) uint32 {
	if q, ok := b.quarks[s]; ok {
		return q
	}
	q := uint32(len(b.quarkNames))
	b.quarks[s] = q
	b.quarkNames = append(b.quarkNames, b.staticString(s))
	return q
}

// QuarkFromString implements g_quark_from_string.
func (b *Backend) QuarkFromString(s ptr) uint32 {
	b.mu.Lock()
	defer b.unlock()
	if s == 0 {
		return 0
	}
	return b.quark(b.cstring(s))
}

// QuarkToString implements g_quark_to_string.
func (b *Backend) QuarkToString(q uint32) ptr {
	b.mu.Lock()
	defer b.unlock()
	if int(q) >= len(b.quarkNames) {
		return 0
	}
	return b.quarkNames[q]
}

// newError allocates a GError laid out as {domain, code, message}.
func (b *Backend) newError(domain string, code int32, message string) ptr {
	p := b.alloc(16, "GError")
	data := b.bytes(p, 16)
	binary.NativeEndian.PutUint32(data[0:], b.quark(domain))
	binary.NativeEndian.PutUint32(data[4:], uint32(code))
	binary.NativeEndian.PutUint64(data[8:], uint64(b.strdup(message)))
	b.gerrors[p] = true
	return p
}

// setError stores a new GError in *errp, or drops it when errp is null.
func (b *Backend) setError(errp ptr, domain string, code int32, message string) {
	e := b.newError(domain, code, message)
	if errp == 0 {
		b.freeError(e)
		return
	}
	if b.readPtr(errp) != 0 {
		b.critical("GError set over the top of a previous GError")
	}
	b.writePtr(errp, e)
}

func (b *Backend) gerror(e ptr, fn string) []byte {
	if !b.gerrors[e] {
		b.critical("%s: %#x is not a GError", fn, uintptr(e))
		return make([]byte, 16)
	}
	return b.bytes(e, 16)
}

func (b *Backend) freeError(e ptr) {
	data := b.gerror(e, "g_error_free")
	if !b.gerrors[e] {
		return
	}
	b.free(ptr(binary.NativeEndian.Uint64(data[8:])))
	delete(b.gerrors, e)
	b.free(e)
}

// ErrorDomain reads GError.domain.
func (b *Backend) ErrorDomain(e ptr) uint32 {
	b.mu.Lock()
	defer b.unlock()
	return binary.NativeEndian.Uint32(b.gerror(e, "domain")[0:])
}

// ErrorCode reads GError.code.
func (b *Backend) ErrorCode(e ptr) int32 {
	b.mu.Lock()
	defer b.unlock()
	return int32(binary.NativeEndian.Uint32(b.gerror(e, "code")[4:]))
}

// ErrorMessage reads GError.message.
func (b *Backend) ErrorMessage(e ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	return ptr(binary.NativeEndian.Uint64(b.gerror(e, "message")[8:]))
}

// ErrorFree implements g_error_free.
func (b *Backend) ErrorFree(e ptr) {
	b.mu.Lock()
	defer b.unlock()
	b.freeError(e)
}
