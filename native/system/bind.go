package system

import (
	"reflect"

	"github.com/ebitengine/purego"
)

// bind registers every func field of the struct table points to with
// the symbol named by its ffi tag. It returns "library#symbol" keys for
// the symbols lib does not export; those fields stay nil.
func bind(lib library, table any) []string {
	var missing []string
	t := reflect.TypeOf(table).Elem()
	v := reflect.ValueOf(table).Elem()
	for i := range t.NumField() {
		field := t.Field(i)
		if field.Type.Kind() != reflect.Func {
			continue
		}
		sym := field.Tag.Get("ffi")
		if sym == "" {
			continue
		}
		addr, err := purego.Dlsym(lib.handle, sym)
		if err != nil || addr == 0 {
			missing = append(missing, lib.name+"#"+sym)
			continue
		}
		purego.RegisterFunc(v.Field(i).Addr().Interface(), addr)
	}
	return missing
}
