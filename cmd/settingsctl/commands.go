package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/gobject-bridge/gio"
	"github.com/wippyai/gobject-bridge/glib"
)

var (
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

type app struct {
	rt      *glib.Runtime
	source  *gio.SettingsSchemaSource
	parent  *gio.SettingsSchemaSource
	path    string
	out     io.Writer
	styled  bool
	signals chan os.Signal
}

func newApp(rt *glib.Runtime, opts options, out io.Writer) (*app, error) {
	a := &app{rt: rt, path: opts.path, out: out}
	if f, ok := out.(*os.File); ok {
		a.styled = term.IsTerminal(int(f.Fd()))
	}

	def, hasDefault := gio.DefaultSchemaSource(rt)
	switch {
	case opts.schemaDir != "":
		src, err := gio.NewSchemaSourceFromDirectory(rt, opts.schemaDir, def, true)
		if err != nil {
			if def != nil {
				def.Release()
			}
			return nil, fmt.Errorf("schema dir %s: %w", opts.schemaDir, err)
		}
		a.source, a.parent = src, def
	case hasDefault:
		a.source = def
	default:
		return nil, fmt.Errorf("no schemas installed; use -schema-dir")
	}
	return a, nil
}

func (a *app) close() {
	a.source.Release()
	if a.parent != nil {
		a.parent.Release()
	}
}

func (a *app) dispatch(cmd string, args []string) error {
	need := func(n int, names string) error {
		if len(args) != n {
			return fmt.Errorf("usage: %s %s", cmd, names)
		}
		return nil
	}
	switch cmd {
	case "schemas":
		return a.schemas()
	case "keys":
		if err := need(1, "SCHEMA"); err != nil {
			return err
		}
		return a.keys(args[0])
	case "describe":
		if err := need(2, "SCHEMA KEY"); err != nil {
			return err
		}
		return a.describe(args[0], args[1])
	case "get":
		if err := need(2, "SCHEMA KEY"); err != nil {
			return err
		}
		return a.get(args[0], args[1])
	case "set":
		if err := need(3, "SCHEMA KEY VALUE"); err != nil {
			return err
		}
		return a.set(args[0], args[1], args[2])
	case "reset":
		if err := need(2, "SCHEMA KEY"); err != nil {
			return err
		}
		return a.reset(args[0], args[1])
	case "watch":
		if len(args) != 1 && len(args) != 2 {
			return fmt.Errorf("usage: watch SCHEMA [KEY]")
		}
		key := ""
		if len(args) == 2 {
			key = args[1]
		}
		return a.watch(args[0], key)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) style(s lipgloss.Style, text string) string {
	if !a.styled {
		return text
	}
	return s.Render(text)
}

// settings opens schema id from the app's source, at -path when given.
func (a *app) settings(id string) (*gio.Settings, error) {
	schema, ok := a.source.Lookup(id, true)
	if !ok {
		return nil, fmt.Errorf("no such schema %q", id)
	}
	defer schema.Release()
	return gio.NewSettingsFull(schema, nil, a.path)
}

func (a *app) schemas() error {
	fixed, reloc := a.source.ListSchemas(true)
	for _, id := range fixed {
		fmt.Fprintln(a.out, id)
	}
	for _, id := range reloc {
		fmt.Fprintln(a.out, id+a.style(dimStyle, " (relocatable)"))
	}
	return nil
}

func (a *app) keys(id string) error {
	s, err := a.settings(id)
	if err != nil {
		return err
	}
	defer s.Release()
	schema := s.SettingsSchema()
	defer schema.Release()

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, key := range schema.ListKeys() {
		v, err := s.Value(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\n", a.style(keyStyle, key), a.style(valueStyle, v.Print(false)))
		v.Release()
	}
	return w.Flush()
}

func (a *app) describe(id, name string) error {
	s, err := a.settings(id)
	if err != nil {
		return err
	}
	defer s.Release()
	schema := s.SettingsSchema()
	defer schema.Release()
	k, err := schema.Key(name)
	if err != nil {
		return err
	}
	defer k.Release()

	def := k.DefaultValue()
	defer def.Release()
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "key\t%s\n", a.style(keyStyle, k.Name()))
	fmt.Fprintf(w, "type\t%s\n", k.ValueType())
	fmt.Fprintf(w, "default\t%s\n", def.Print(false))
	if summary, ok := k.Summary(); ok {
		fmt.Fprintf(w, "summary\t%s\n", summary)
	}
	if desc, ok := k.Description(); ok {
		fmt.Fprintf(w, "description\t%s\n", strings.Join(strings.Fields(desc), " "))
	}
	fmt.Fprintf(w, "writable\t%t\n", s.IsWritable(name))
	return w.Flush()
}

func (a *app) get(id, key string) error {
	s, err := a.settings(id)
	if err != nil {
		return err
	}
	defer s.Release()
	v, err := s.Value(key)
	if err != nil {
		return err
	}
	defer v.Release()
	fmt.Fprintln(a.out, v.Print(false))
	return nil
}

// parseValue reads text as a value of the key's type. Strings may be
// given without GVariant quoting.
func parseValue(rt *glib.Runtime, typ, text string) (*glib.Variant, error) {
	if typ == "s" && !strings.HasPrefix(text, "'") && !strings.HasPrefix(text, `"`) {
		return glib.NewVariant(rt, text)
	}
	return glib.ParseVariant(rt, typ, text)
}

func (a *app) set(id, key, text string) error {
	s, err := a.settings(id)
	if err != nil {
		return err
	}
	defer s.Release()
	return setText(s, key, text)
}

func setText(s *gio.Settings, key, text string) error {
	schema := s.SettingsSchema()
	defer schema.Release()
	k, err := schema.Key(key)
	if err != nil {
		return err
	}
	typ := k.ValueType()
	k.Release()

	v, err := parseValue(s.Runtime(), typ, text)
	if err != nil {
		return err
	}
	defer v.Release()
	if err := s.SetValue(key, v); err != nil {
		return err
	}
	gio.SettingsSync(s.Runtime())
	return nil
}

func (a *app) reset(id, key string) error {
	s, err := a.settings(id)
	if err != nil {
		return err
	}
	defer s.Release()
	if err := s.Reset(key); err != nil {
		return err
	}
	gio.SettingsSync(a.rt)
	return nil
}

// watch prints every change until SIGINT.
func (a *app) watch(id, key string) error {
	s, err := a.settings(id)
	if err != nil {
		return err
	}
	defer s.Release()
	if key != "" {
		schema := s.SettingsSchema()
		ok := schema.HasKey(key)
		schema.Release()
		if !ok {
			return fmt.Errorf("schema %s has no key %q", id, key)
		}
	}

	handler := s.ConnectChanged(key, func(s *gio.Settings, key string) {
		v, err := s.Value(key)
		if err != nil {
			fmt.Fprintf(a.out, "%s: %v\n", key, err)
			return
		}
		fmt.Fprintf(a.out, "%s: %s\n", a.style(keyStyle, key), a.style(valueStyle, v.Print(false)))
		v.Release()
	})
	defer glib.Disconnect(s, handler)

	loop := glib.NewMainLoop(a.rt)
	defer loop.Release()

	sig := a.signals
	if sig == nil {
		sig = make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		defer signal.Stop(sig)
	}
	go func() {
		<-sig
		a.rt.IdleAddOnce(loop.Quit)
	}()
	loop.Run()
	return nil
}
