package sim

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SchemaFile is the YAML form of a set of settings schemas, the
// simulator's counterpart of gschema XML.
type SchemaFile struct {
	Schemas []SchemaSpec `yaml:"schemas" validate:"required,dive"`
}

// SchemaSpec describes one schema. Schemas without a path are relocatable.
type SchemaSpec struct {
	ID       string      `yaml:"id" validate:"required"`
	Path     string      `yaml:"path" validate:"omitempty,startswith=/,endswith=/"`
	Keys     []KeySpec   `yaml:"keys" validate:"dive"`
	Children []ChildSpec `yaml:"children" validate:"dive"`
}

// KeySpec describes one key. Default is in GVariant text format.
type KeySpec struct {
	Name        string      `yaml:"name" validate:"required"`
	Type        string      `yaml:"type" validate:"required,oneof=b i u x t d s as"`
	Default     string      `yaml:"default" validate:"required"`
	Summary     string      `yaml:"summary"`
	Description string      `yaml:"description"`
	Range       *RangeSpec  `yaml:"range"`
	Enum        []EnumValue `yaml:"enum" validate:"dive"`
	Flags       []EnumValue `yaml:"flags" validate:"dive"`
	// Locked keys are never writable.
	Locked bool `yaml:"locked"`
}

// RangeSpec bounds a numeric key. Min and Max are GVariant text.
type RangeSpec struct {
	Min string `yaml:"min" validate:"required"`
	Max string `yaml:"max" validate:"required"`
}

// EnumValue is one nick of an enum or flags key.
type EnumValue struct {
	Nick  string `yaml:"nick" validate:"required"`
	Value int64  `yaml:"value"`
}

// ChildSpec names a child schema.
type ChildSpec struct {
	Name   string `yaml:"name" validate:"required"`
	Schema string `yaml:"schema" validate:"required"`
}

var validate = validator.New()

// ParseSchemas decodes and validates a YAML schema file.
func ParseSchemas(data []byte) (*SchemaFile, error) {
	var f SchemaFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode schemas: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("validate schemas: %w", err)
	}
	for _, s := range f.Schemas {
		for _, k := range s.Keys {
			if err := checkKey(s.ID, k); err != nil {
				return nil, err
			}
		}
	}
	return &f, nil
}

func checkKey(schema string, k KeySpec) error {
	where := schema + "." + k.Name
	if _, _, err := ParseVariantText(k.Type, k.Default); err != nil {
		return fmt.Errorf("%s: default %q: %w", where, k.Default, err)
	}
	if k.Range != nil {
		if !numericType(k.Type) {
			return fmt.Errorf("%s: range on non-numeric type %q", where, k.Type)
		}
		for _, s := range []string{k.Range.Min, k.Range.Max} {
			if _, _, err := ParseVariantText(k.Type, s); err != nil {
				return fmt.Errorf("%s: range bound %q: %w", where, s, err)
			}
		}
	}
	if len(k.Enum) > 0 && k.Type != "s" {
		return fmt.Errorf("%s: enum keys must have type s", where)
	}
	if len(k.Flags) > 0 && k.Type != "as" {
		return fmt.Errorf("%s: flags keys must have type as", where)
	}
	return nil
}

func numericType(t string) bool {
	return strings.Contains("iuxtd", t) && len(t) == 1
}

// LoadSchemas installs the schemas in a YAML document into the default
// schema source.
func (b *Backend) LoadSchemas(data []byte) error {
	f, err := ParseSchemas(data)
	if err != nil {
		return err
	}
	return b.InstallSchemas(f.Schemas...)
}

// LoadSchemaFile is LoadSchemas for a file.
func (b *Backend) LoadSchemaFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return b.LoadSchemas(data)
}

// InstallSchemas adds schemas to the default schema source, replacing
// none: installing an id twice is an error.
func (b *Backend) InstallSchemas(specs ...SchemaSpec) error {
	b.mu.Lock()
	defer b.unlock()
	return b.install(b.gio.defaultSource, specs)
}

func (b *Backend) install(src *schemaSource, specs []SchemaSpec) error {
	for _, s := range specs {
		if _, dup := src.schemas[s.ID]; dup {
			return fmt.Errorf("schema %q already installed", s.ID)
		}
		for _, k := range s.Keys {
			if err := checkKey(s.ID, k); err != nil {
				return err
			}
		}
	}
	for _, s := range specs {
		src.schemas[s.ID] = b.newSchema(src, s)
	}
	return nil
}

// schemaDir reads every *.yaml file of dir, in name order.
func schemaDir(dir string) ([]SchemaSpec, int32, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, FileErrorNoEnt, fmt.Errorf("Failed to open file “%s”: open() failed: No such file or directory",
			filepath.Join(dir, "gschemas.compiled"))
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, FileErrorNoEnt, fmt.Errorf("Failed to open file “%s”: open() failed: No such file or directory",
			filepath.Join(dir, "gschemas.compiled"))
	}
	sort.Strings(names)
	var out []SchemaSpec
	for _, n := range names {
		data, err := os.ReadFile(filepath.Join(dir, n))
		if err != nil {
			return nil, FileErrorNoEnt, err
		}
		f, err := ParseSchemas(data)
		if err != nil {
			return nil, FileErrorInval, fmt.Errorf("%s: %w", n, err)
		}
		out = append(out, f.Schemas...)
	}
	return out, 0, nil
}
