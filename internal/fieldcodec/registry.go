// Package fieldcodec implements the generic fixed-position field codec
// for DATEV records. Field layouts are pure data, loaded from embedded
// YAML descriptor tables keyed by format tag and version; the codec
// itself is a single parametric implementation.
package fieldcodec

import (
	"embed"
	"fmt"
	"regexp"
	"sort"
	"sync"

	"bankfmt/datev-convert/internal/tokenizer"

	"gopkg.in/yaml.v3"
)

//go:embed defs/*.yaml
var defsFS embed.FS

// FieldDefinition describes one field position of a format version.
type FieldDefinition struct {
	Position  int    `yaml:"position"`
	Label     string `yaml:"label"`
	MaxLength int    `yaml:"max_length,omitempty"`
	Quoted    bool   `yaml:"quoted,omitempty"`
	Pattern   string `yaml:"pattern,omitempty"`

	pattern *regexp.Regexp
}

// Matches reports whether a value satisfies the definition's length
// bound and pattern. Definitions without a pattern accept any value
// within the length bound.
func (d FieldDefinition) Matches(value string) bool {
	if d.MaxLength > 0 && len(value) > d.MaxLength {
		return false
	}
	if d.pattern != nil && value != "" {
		return d.pattern.MatchString(value)
	}
	return true
}

// Registry is the ordered field table of one format version.
type Registry struct {
	Format  string            `yaml:"format"`
	Version string            `yaml:"version"`
	Fields  []FieldDefinition `yaml:"fields"`

	byLabel map[string]int
}

// Len returns the number of field positions the format defines.
func (r Registry) Len() int {
	return len(r.Fields)
}

// PositionOf returns the position of the field with the given label, or
// -1 when the format version does not carry that field.
func (r Registry) PositionOf(label string) int {
	if pos, ok := r.byLabel[label]; ok {
		return pos
	}
	return -1
}

// Definition returns the field definition at a position.
func (r Registry) Definition(position int) (FieldDefinition, bool) {
	if position < 0 || position >= len(r.Fields) {
		return FieldDefinition{}, false
	}
	return r.Fields[position], true
}

type registryFile struct {
	Registries []Registry `yaml:"registries"`
}

var (
	loadOnce   sync.Once
	loadErr    error
	registries map[string]Registry
)

func registryKey(format, version string) string {
	return format + "/" + version
}

func loadRegistries() {
	registries = make(map[string]Registry)

	entries, err := defsFS.ReadDir("defs")
	if err != nil {
		loadErr = fmt.Errorf("failed to read embedded field definitions: %w", err)
		return
	}

	for _, entry := range entries {
		data, err := defsFS.ReadFile("defs/" + entry.Name())
		if err != nil {
			loadErr = fmt.Errorf("failed to read field definitions %s: %w", entry.Name(), err)
			return
		}
		var file registryFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			loadErr = fmt.Errorf("failed to parse field definitions %s: %w", entry.Name(), err)
			return
		}
		for _, reg := range file.Registries {
			prepared, err := prepare(reg)
			if err != nil {
				loadErr = err
				return
			}
			registries[registryKey(reg.Format, reg.Version)] = prepared
		}
	}
}

// prepare sorts fields by position, compiles patterns and builds the
// label index.
func prepare(reg Registry) (Registry, error) {
	sort.Slice(reg.Fields, func(i, j int) bool {
		return reg.Fields[i].Position < reg.Fields[j].Position
	})
	reg.byLabel = make(map[string]int, len(reg.Fields))
	for i, def := range reg.Fields {
		if def.Position != i {
			return Registry{}, fmt.Errorf("registry %s/%s: field positions must be contiguous, got %d at index %d",
				reg.Format, reg.Version, def.Position, i)
		}
		if def.Pattern != "" {
			compiled, err := regexp.Compile(def.Pattern)
			if err != nil {
				return Registry{}, fmt.Errorf("registry %s/%s field %s: invalid pattern: %w",
					reg.Format, reg.Version, def.Label, err)
			}
			reg.Fields[i].pattern = compiled
		}
		reg.byLabel[def.Label] = def.Position
	}
	return reg, nil
}

// Lookup returns the registry for an exact format tag and version.
func Lookup(format, version string) (Registry, error) {
	loadOnce.Do(loadRegistries)
	if loadErr != nil {
		return Registry{}, loadErr
	}
	reg, ok := registries[registryKey(format, version)]
	if !ok {
		return Registry{}, fmt.Errorf("no field registry for format %s version %s", format, version)
	}
	return reg, nil
}

// Detect resolves the registry from the first two tokens of a line,
// which conventionally carry the format tag and the version number.
func Detect(tokens []tokenizer.Token) (Registry, error) {
	if len(tokens) < 2 {
		return Registry{}, fmt.Errorf("cannot detect format: need at least 2 tokens, got %d", len(tokens))
	}
	return Lookup(tokens[0].Value, tokens[1].Value)
}
