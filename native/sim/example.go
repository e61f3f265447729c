package sim

import _ "embed"

// ExampleSchemas is a schema file for a small text editor, used by the
// tests and by settingsctl when no schema file is given.
//
//go:embed example.yaml
var ExampleSchemas []byte
