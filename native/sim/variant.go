package sim

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	gobridge "github.com/wippyai/gobject-bridge"
)

// variant holds one of the basic types b, i, u, x, t, d, s or as.
type variant struct {
	ptr      ptr
	typ      string
	val      any
	refs     int32
	floating bool
	typeP    ptr
	strP     ptr
	elems    []ptr
}

func (b *Backend) newVariant(typ string, val any) *variant {
	v := &variant{
		ptr:      b.alloc(16, "GVariant"),
		typ:      typ,
		val:      val,
		refs:     1,
		floating: true,
		typeP:    b.strdup(typ),
	}
	switch x := val.(type) {
	case string:
		v.strP = b.strdup(x)
	case []string:
		for _, s := range x {
			v.elems = append(v.elems, b.strdup(s))
		}
	}
	b.variants[v.ptr] = v
	return v
}

func (b *Backend) variant(p ptr, fn string) *variant {
	v, ok := b.variants[p]
	if !ok {
		b.critical("%s: %#x is not a live GVariant", fn, uintptr(p))
		return nil
	}
	return v
}

func (b *Backend) refVariant(p ptr) {
	if v := b.variant(p, "g_variant_ref"); v != nil {
		v.refs++
	}
}

func (b *Backend) sinkVariant(p ptr) {
	v := b.variant(p, "g_variant_ref_sink")
	if v == nil {
		return
	}
	if v.floating {
		v.floating = false
	} else {
		v.refs++
	}
}

func (b *Backend) unrefVariant(p ptr) {
	v := b.variant(p, "g_variant_unref")
	if v == nil {
		return
	}
	v.refs--
	if v.refs > 0 {
		return
	}
	delete(b.variants, p)
	b.free(v.typeP)
	b.free(v.strP)
	for _, e := range v.elems {
		b.free(e)
	}
	b.free(p)
}

func (b *Backend) variantEqual(x, y *variant) bool {
	if x == nil || y == nil {
		return x == y
	}
	return x.typ == y.typ && reflect.DeepEqual(x.val, y.val)
}

func (b *Backend) VariantRef(p ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	b.refVariant(p)
	return p
}

func (b *Backend) VariantUnref(p ptr) {
	b.mu.Lock()
	defer b.unlock()
	b.unrefVariant(p)
}

func (b *Backend) VariantRefSink(p ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	b.sinkVariant(p)
	return p
}

func (b *Backend) VariantIsFloating(p ptr) bool {
	b.mu.Lock()
	defer b.unlock()
	v := b.variant(p, "g_variant_is_floating")
	return v != nil && v.floating
}

func (b *Backend) newFloating(typ string, val any) ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.newVariant(typ, val).ptr
}

func (b *Backend) VariantNewBoolean(x bool) ptr   { return b.newFloating("b", x) }
func (b *Backend) VariantNewInt32(x int32) ptr    { return b.newFloating("i", x) }
func (b *Backend) VariantNewUint32(x uint32) ptr  { return b.newFloating("u", x) }
func (b *Backend) VariantNewInt64(x int64) ptr    { return b.newFloating("x", x) }
func (b *Backend) VariantNewUint64(x uint64) ptr  { return b.newFloating("t", x) }
func (b *Backend) VariantNewDouble(x float64) ptr { return b.newFloating("d", x) }

func (b *Backend) VariantNewString(s ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	return b.newVariant("s", b.cstring(s)).ptr
}

// VariantNewStrv implements g_variant_new_strv; n < 0 means the array
// is NULL-terminated.
func (b *Backend) VariantNewStrv(strv ptr, n int) ptr {
	b.mu.Lock()
	defer b.unlock()
	list := b.strv(strv, n)
	if list == nil {
		list = []string{}
	}
	return b.newVariant("as", list).ptr
}

// VariantTypeString returns the type string the variant owns.
func (b *Backend) VariantTypeString(p ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	if v := b.variant(p, "g_variant_get_type_string"); v != nil {
		return v.typeP
	}
	return 0
}

func (b *Backend) get(p ptr, typ, fn string) any {
	b.mu.Lock()
	defer b.unlock()
	v := b.variant(p, fn)
	if v == nil {
		return nil
	}
	if v.typ != typ {
		b.critical("%s: assertion 'g_variant_is_of_type (value, G_VARIANT_TYPE_%s)' failed", fn, typ)
		return nil
	}
	return v.val
}

func (b *Backend) VariantGetBoolean(p ptr) bool {
	x, _ := b.get(p, "b", "g_variant_get_boolean").(bool)
	return x
}

func (b *Backend) VariantGetInt32(p ptr) int32 {
	x, _ := b.get(p, "i", "g_variant_get_int32").(int32)
	return x
}

func (b *Backend) VariantGetUint32(p ptr) uint32 {
	x, _ := b.get(p, "u", "g_variant_get_uint32").(uint32)
	return x
}

func (b *Backend) VariantGetInt64(p ptr) int64 {
	x, _ := b.get(p, "x", "g_variant_get_int64").(int64)
	return x
}

func (b *Backend) VariantGetUint64(p ptr) uint64 {
	x, _ := b.get(p, "t", "g_variant_get_uint64").(uint64)
	return x
}

func (b *Backend) VariantGetDouble(p ptr) float64 {
	x, _ := b.get(p, "d", "g_variant_get_double").(float64)
	return x
}

// VariantGetString returns the string the variant owns.
func (b *Backend) VariantGetString(p ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	v := b.variant(p, "g_variant_get_string")
	if v == nil || v.typ != "s" {
		b.critical("g_variant_get_string: variant is not a string")
		return 0
	}
	return v.strP
}

// VariantGetStrv returns a new array of the strings the variant owns.
func (b *Backend) VariantGetStrv(p ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	v := b.variant(p, "g_variant_get_strv")
	if v == nil || v.typ != "as" {
		b.critical("g_variant_get_strv: variant is not a string array")
		return 0
	}
	arr := b.alloc(uintptr(len(v.elems)+1)*gobridge.PtrSize, "gchar*[]")
	for i, e := range v.elems {
		b.writePtr(arr+ptr(i*gobridge.PtrSize), e)
	}
	return arr
}

// VariantPrint implements g_variant_print.
func (b *Backend) VariantPrint(p ptr, annotate bool) ptr {
	b.mu.Lock()
	defer b.unlock()
	v := b.variant(p, "g_variant_print")
	if v == nil {
		return 0
	}
	return b.strdup(printVariant(v.typ, v.val, annotate))
}

// VariantEqual implements g_variant_equal.
func (b *Backend) VariantEqual(x, y ptr) bool {
	b.mu.Lock()
	defer b.unlock()
	return b.variantEqual(b.variant(x, "g_variant_equal"), b.variant(y, "g_variant_equal"))
}

// VariantParse implements g_variant_parse with a null limit and endptr.
func (b *Backend) VariantParse(typeString, text, errp ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	typ := ""
	if typeString != 0 {
		typ = b.cstring(typeString)
	}
	t, val, perr := ParseVariantText(typ, b.cstring(text))
	if perr != nil {
		b.setError(errp, DomainVariantParse, perr.Code, perr.Error())
		return 0
	}
	v := b.newVariant(t, val)
	v.floating = false
	return v.ptr
}

var typeKeywords = map[string]string{
	"boolean": "b",
	"int32":   "i",
	"uint32":  "u",
	"int64":   "x",
	"uint64":  "t",
	"double":  "d",
	"string":  "s",
}

func printVariant(typ string, val any, annotate bool) string {
	switch x := val.(type) {
	case bool:
		return strconv.FormatBool(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint32:
		return annotated(annotate, "uint32 ", strconv.FormatUint(uint64(x), 10))
	case int64:
		return annotated(annotate, "int64 ", strconv.FormatInt(x, 10))
	case uint64:
		return annotated(annotate, "uint64 ", strconv.FormatUint(x, 10))
	case float64:
		s := strconv.FormatFloat(x, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEn") {
			s += ".0"
		}
		return s
	case string:
		return quote(x)
	case []string:
		if len(x) == 0 {
			return "@as []"
		}
		parts := make([]string, len(x))
		for i, s := range x {
			parts[i] = quote(s)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "<" + typ + ">"
}

func annotated(annotate bool, prefix, s string) string {
	if annotate {
		return prefix + s
	}
	return s
}

func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var sb strings.Builder
	sb.WriteByte(q)
	for _, r := range s {
		switch {
		case r == rune(q) || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}

// ParseError is a GVariantParseError.
type ParseError struct {
	Code       int32
	Start, End int
	Msg        string
}

func (e *ParseError) Error() string {
	return strconv.Itoa(e.Start) + "-" + strconv.Itoa(e.End) + ":" + e.Msg
}

type parser struct {
	s   string
	pos int
}

// ParseVariantText parses the basic-type subset of the GVariant text
// format. typ may be empty to infer the type.
func ParseVariantText(typ, text string) (string, any, *ParseError) {
	if typ != "" && !supportedType(typ) {
		return "", nil, &ParseError{Code: ParseErrorInvalidTypeString, Msg: "unsupported type '" + typ + "'"}
	}
	p := &parser{s: text}
	t, val, err := p.value(typ)
	if err != nil {
		return "", nil, err
	}
	p.space()
	if p.pos < len(p.s) {
		return "", nil, p.fail(ParseErrorInputNotAtEnd, p.pos, len(p.s), "expected end of input")
	}
	return t, val, nil
}

func supportedType(t string) bool {
	switch t {
	case "b", "i", "u", "x", "t", "d", "s", "as":
		return true
	}
	return false
}

func (p *parser) fail(code int32, start, end int, msg string) *ParseError {
	return &ParseError{Code: code, Start: start, End: end, Msg: msg}
}

func (p *parser) space() {
	for p.pos < len(p.s) && strings.ContainsRune(" \t\n\r", rune(p.s[p.pos])) {
		p.pos++
	}
}

func (p *parser) word() (string, int) {
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-' || c == '+' || c == '.') {
			break
		}
		p.pos++
	}
	return p.s[start:p.pos], start
}

func (p *parser) value(want string) (string, any, *ParseError) {
	p.space()
	if p.pos >= len(p.s) {
		return "", nil, p.fail(ParseErrorValueExpected, p.pos, p.pos, "expected value")
	}
	switch c := p.s[p.pos]; {
	case c == '@':
		p.pos++
		start := p.pos
		for p.pos < len(p.s) && p.s[p.pos] != ' ' {
			p.pos++
		}
		t := p.s[start:p.pos]
		if !supportedType(t) {
			return "", nil, p.fail(ParseErrorInvalidTypeString, start, p.pos, "invalid type '"+t+"'")
		}
		if want != "" && want != t {
			return "", nil, p.fail(ParseErrorTypeError, start, p.pos, "can not parse as value of type '"+want+"'")
		}
		return p.value(t)
	case c == '\'' || c == '"':
		start := p.pos
		s, err := p.str()
		if err != nil {
			return "", nil, err
		}
		if want != "" && want != "s" {
			return "", nil, p.fail(ParseErrorTypeError, start, p.pos, "can not parse as value of type '"+want+"'")
		}
		return "s", s, nil
	case c == '[':
		return p.array(want)
	}

	w, start := p.word()
	if w == "" {
		return "", nil, p.fail(ParseErrorUnexpectedToken, p.pos, p.pos+1, "expected value")
	}
	if kt, ok := typeKeywords[w]; ok {
		if want != "" && want != kt {
			return "", nil, p.fail(ParseErrorTypeError, start, p.pos, "can not parse as value of type '"+want+"'")
		}
		return p.value(kt)
	}
	switch w {
	case "true", "false":
		if want != "" && want != "b" {
			return "", nil, p.fail(ParseErrorTypeError, start, p.pos, "can not parse as value of type '"+want+"'")
		}
		return "b", w == "true", nil
	}
	if w[0] != '-' && w[0] != '+' && w[0] != '.' && (w[0] < '0' || w[0] > '9') {
		return "", nil, p.fail(ParseErrorUnknownKeyword, start, p.pos, "unknown keyword")
	}
	return p.number(w, start, want)
}

func (p *parser) number(w string, start int, want string) (string, any, *ParseError) {
	isFloat := strings.ContainsAny(w, ".eE")
	if want == "" {
		want = "i"
		if isFloat {
			want = "d"
		}
	}
	bad := func(code int32, msg string) (string, any, *ParseError) {
		return "", nil, p.fail(code, start, p.pos, msg)
	}
	switch want {
	case "d":
		f, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return bad(ParseErrorUnexpectedToken, "invalid number")
		}
		return "d", f, nil
	case "i", "x":
		if isFloat {
			return bad(ParseErrorTypeError, "can not parse as value of type '"+want+"'")
		}
		n, err := strconv.ParseInt(w, 10, 64)
		if err != nil {
			return bad(ParseErrorNumberOutOfRange, "number out of range for type '"+want+"'")
		}
		if want == "i" {
			if n < math.MinInt32 || n > math.MaxInt32 {
				return bad(ParseErrorNumberOutOfRange, "number out of range for type 'i'")
			}
			return "i", int32(n), nil
		}
		return "x", n, nil
	case "u", "t":
		if isFloat {
			return bad(ParseErrorTypeError, "can not parse as value of type '"+want+"'")
		}
		n, err := strconv.ParseUint(strings.TrimPrefix(w, "+"), 10, 64)
		if err != nil {
			return bad(ParseErrorNumberOutOfRange, "number out of range for type '"+want+"'")
		}
		if want == "u" {
			if n > math.MaxUint32 {
				return bad(ParseErrorNumberOutOfRange, "number out of range for type 'u'")
			}
			return "u", uint32(n), nil
		}
		return "t", n, nil
	}
	return bad(ParseErrorTypeError, "can not parse as value of type '"+want+"'")
}

func (p *parser) str() (string, *ParseError) {
	start := p.pos
	q := p.s[p.pos]
	p.pos++
	var sb strings.Builder
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		switch {
		case c == q:
			p.pos++
			return sb.String(), nil
		case c == '\\' && p.pos+1 < len(p.s):
			p.pos++
			switch e := p.s[p.pos]; e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(e)
			}
		default:
			sb.WriteByte(c)
		}
		p.pos++
	}
	return "", p.fail(ParseErrorUnterminatedString, start, p.pos, "unterminated string constant")
}

func (p *parser) array(want string) (string, any, *ParseError) {
	start := p.pos
	if want != "" && want != "as" {
		return "", nil, p.fail(ParseErrorTypeError, start, start+1, "can not parse as value of type '"+want+"'")
	}
	p.pos++
	list := []string{}
	for {
		p.space()
		if p.pos < len(p.s) && p.s[p.pos] == ']' {
			p.pos++
			break
		}
		if len(list) > 0 {
			if p.pos >= len(p.s) || p.s[p.pos] != ',' {
				return "", nil, p.fail(ParseErrorUnexpectedToken, p.pos, p.pos, "expected ','")
			}
			p.pos++
		}
		_, val, err := p.value("s")
		if err != nil {
			return "", nil, err
		}
		list = append(list, val.(string))
	}
	if len(list) == 0 && want == "" {
		return "", nil, p.fail(ParseErrorCannotInferType, start, p.pos, "unable to infer type")
	}
	return "as", list, nil
}
