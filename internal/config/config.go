// Package config loads weft project configuration from a CUE file.
//
// The configuration is validated against an embedded schema before use, so
// commands can trust field types and defaults. Errors carry CUE positions
// when available, letting the CLI point at the offending line.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaCUE string

// DefaultFile is the config filename looked up when none is given.
const DefaultFile = "weft.cue"

// Error codes, unified with the CLI's error output.
const (
	ErrCodeNotFound    = "C001" // Config file not found
	ErrCodeParseFailed = "C002" // CUE parse/build failure
	ErrCodeInvalid     = "C003" // Schema violation or bad field value
)

// ConfigError reports a configuration problem, with a CUE position when
// one is available.
type ConfigError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *ConfigError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Collection is one configured root of entry documents.
type Collection struct {
	// Name is the collection's key in the config file.
	Name string `json:"name"`

	// Dir is the source root, absolute after Load.
	Dir string `json:"dir"`

	// Suffix selects entry documents under Dir (e.g. ".w.md").
	Suffix string `json:"suffix"`

	// Out is the output root, absolute after Load.
	Out string `json:"out"`

	// Transform is "suffix" or "dirname"; see the output package.
	Transform string `json:"transform"`

	// OutSuffix replaces Suffix in destination names (suffix transform).
	OutSuffix string `json:"outSuffix"`

	// OutName is the fixed destination filename (dirname transform).
	OutName string `json:"outName"`

	// Depth is how many directory levels below Dir entries live at.
	Depth int `json:"depth"`
}

// Config is the loaded, validated project configuration.
type Config struct {
	// Collections in name order, for deterministic batch enumeration.
	Collections []Collection `json:"collections"`

	// FailFast aborts the batch on the first failed entry.
	FailFast bool `json:"failFast"`

	// Manifest is the SQLite manifest path, absolute after Load;
	// empty disables run recording.
	Manifest string `json:"manifest"`

	// BaseDir is the directory containing the config file. Relative
	// dirs in the file were resolved against it.
	BaseDir string `json:"baseDir"`
}

// Primary returns the collection used for single-entry compiles: the first
// suffix-transform collection in name order.
func (c *Config) Primary() (Collection, error) {
	for _, col := range c.Collections {
		if col.Transform == "suffix" {
			return col, nil
		}
	}
	return Collection{}, fmt.Errorf("no suffix-transform collection configured")
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigError{Code: ErrCodeNotFound, Message: fmt.Sprintf("config file not found: %s", path)}
		}
		return nil, &ConfigError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading config: %v", err)}
	}

	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, &ConfigError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("compiling embedded schema: %v", err)}
	}

	val := ctx.CompileBytes(data, cue.Filename(path))
	if err := val.Err(); err != nil {
		return nil, cueError(ErrCodeParseFailed, err)
	}

	unified := schema.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(ErrCodeInvalid, err)
	}

	cfg, err := decode(unified)
	if err != nil {
		return nil, err
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, &ConfigError{Code: ErrCodeInvalid, Message: fmt.Sprintf("resolving config directory: %v", err)}
	}
	cfg.BaseDir = base
	for i := range cfg.Collections {
		cfg.Collections[i].Dir = resolveDir(base, cfg.Collections[i].Dir)
		cfg.Collections[i].Out = resolveDir(base, cfg.Collections[i].Out)
	}
	if cfg.Manifest != "" {
		cfg.Manifest = resolveDir(base, cfg.Manifest)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode extracts the Go representation from the unified CUE value.
func decode(v cue.Value) (*Config, error) {
	cfg := &Config{}

	colsVal := v.LookupPath(cue.ParsePath("collections"))
	if colsVal.Exists() {
		iter, err := colsVal.Fields()
		if err != nil {
			return nil, cueError(ErrCodeInvalid, err)
		}
		for iter.Next() {
			var col Collection
			if err := iter.Value().Decode(&col); err != nil {
				return nil, cueError(ErrCodeInvalid, err)
			}
			col.Name = iter.Label()
			cfg.Collections = append(cfg.Collections, col)
		}
	}
	sort.Slice(cfg.Collections, func(i, j int) bool {
		return cfg.Collections[i].Name < cfg.Collections[j].Name
	})

	if err := v.LookupPath(cue.ParsePath("failFast")).Decode(&cfg.FailFast); err != nil {
		return nil, cueError(ErrCodeInvalid, err)
	}
	if err := v.LookupPath(cue.ParsePath("manifest")).Decode(&cfg.Manifest); err != nil {
		return nil, cueError(ErrCodeInvalid, err)
	}

	return cfg, nil
}

// validate enforces constraints the schema cannot express.
func validate(cfg *Config) error {
	if len(cfg.Collections) == 0 {
		return &ConfigError{Code: ErrCodeInvalid, Message: "no collections configured"}
	}
	for _, col := range cfg.Collections {
		if col.Transform == "dirname" && col.Depth < 2 {
			return &ConfigError{
				Code:    ErrCodeInvalid,
				Message: fmt.Sprintf("collection %q: dirname transform needs depth >= 2 so entries have a distinguishing parent directory", col.Name),
			}
		}
	}
	return nil
}

// resolveDir makes p absolute against base unless it already is.
func resolveDir(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// cueError converts a CUE error into a ConfigError, keeping the first
// position CUE reports.
func cueError(code string, err error) *ConfigError {
	ce := &ConfigError{Code: code, Message: cueerrors.Details(err, nil)}
	if positions := cueerrors.Positions(cueerrors.Promote(err, "")); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}
