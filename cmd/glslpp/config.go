package main

import (
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"

	"github.com/shader-tools/glslpp/internal/preprocessor"
)

// tomlSettings mirrors the field-name convention real Go TOML configs in
// the corpus use: keys match Go struct field names verbatim rather than
// being lower-cased, and an unrecognized key is a hard error rather than
// silently ignored.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string { return key },
	FieldToKey:    func(rt reflect.Type, field string) string { return field },
	MissingField: func(rt reflect.Type, field string) error {
		link := ""
		if unicode.IsUpper(rune(rt.Name()[0])) {
			link = fmt.Sprintf(" (see %s)", rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// fileConfig is the shape of a --config TOML file: a table of defines
// plus the subset of Options a caller would reasonably want to pin
// outside the command line.
type fileConfig struct {
	Defines          map[string]string
	PreserveComments bool
	StopOnError      *bool
}

func loadConfigFile(path string, opts *preprocessor.Options) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var cfg fileConfig
	if err := tomlSettings.NewDecoder(f).Decode(&cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	for name, value := range cfg.Defines {
		opts.Defines[name] = value
	}
	if cfg.PreserveComments {
		opts.PreserveComments = true
	}
	if cfg.StopOnError != nil {
		opts.StopOnError = *cfg.StopOnError
	}
	return nil
}
