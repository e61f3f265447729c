package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/wippyai/gobject-bridge/gio"
	"github.com/wippyai/gobject-bridge/glib"
	"github.com/wippyai/gobject-bridge/native/sim"
	"github.com/wippyai/gobject-bridge/native/system"
)

func init() {
	// GLib's main context is iterated from the main goroutine.
	runtime.LockOSThread()
}

const usage = `Usage: settingsctl [flags] <command> [args]

Commands:
  schemas                      List installed schemas
  keys SCHEMA                  List the keys of a schema with their values
  describe SCHEMA KEY          Show the type, summary and default of a key
  get SCHEMA KEY               Print a value in GVariant text format
  set SCHEMA KEY VALUE         Set a value given in GVariant text format
  reset SCHEMA KEY             Reset a key to its default
  watch SCHEMA [KEY]           Print changes until interrupted

Flags:
`

type options struct {
	backend     string
	schemaDir   string
	simSchemas  string
	path        string
	verbose     bool
	interactive bool
}

func main() {
	var opts options
	flag.StringVar(&opts.backend, "backend", "system", "Native backend: system or sim")
	flag.StringVar(&opts.schemaDir, "schema-dir", "", "Additional schema directory")
	flag.StringVar(&opts.simSchemas, "sim-schemas", "", "YAML schema file for the sim backend (default: built-in example)")
	flag.StringVar(&opts.path, "path", "", "Path for relocatable schemas")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	flag.BoolVar(&opts.interactive, "i", false, "Interactive editor for SCHEMA")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(opts, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, args []string) error {
	log := zap.NewNop()
	if opts.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		log = l
		defer func() { _ = log.Sync() }()
	}

	rt, err := openRuntime(opts, log)
	if err != nil {
		return err
	}
	defer rt.Close()

	a, err := newApp(rt, opts, os.Stdout)
	if err != nil {
		return err
	}
	defer a.close()

	if opts.interactive {
		if len(args) != 1 {
			flag.Usage()
			return fmt.Errorf("-i takes exactly one SCHEMA")
		}
		return runInteractive(a, args[0])
	}
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("no command")
	}
	return a.dispatch(args[0], args[1:])
}

func openRuntime(opts options, log *zap.Logger) (*glib.Runtime, error) {
	var abi gio.ABI
	switch opts.backend {
	case "system":
		cfg := system.DefaultConfig()
		cfg.Logger = log
		b, err := system.NewWithConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("load native libraries: %w", err)
		}
		abi = b
	case "sim":
		b := sim.NewWithConfig(&sim.Config{Strict: true, Logger: log})
		schemas := sim.ExampleSchemas
		if opts.simSchemas != "" {
			data, err := os.ReadFile(opts.simSchemas)
			if err != nil {
				return nil, fmt.Errorf("read schemas: %w", err)
			}
			schemas = data
		}
		if err := b.LoadSchemas(schemas); err != nil {
			return nil, fmt.Errorf("load schemas: %w", err)
		}
		abi = b
	default:
		return nil, fmt.Errorf("unknown backend %q", opts.backend)
	}

	rt, err := glib.NewWithConfig(abi, &glib.Config{Logger: log, CheckThreads: true})
	if err != nil {
		return nil, err
	}
	if err := rt.BindMainThread(); err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}
