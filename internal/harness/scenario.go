package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario defines one expansion conformance scenario: a document tree, an
// entry document, and the diagnostics the expansion is expected to emit.
// The compiled output itself is asserted against a golden file.
type Scenario struct {
	// Name uniquely identifies this scenario; it also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Documents maps document identities to their raw text.
	Documents map[string]string `yaml:"documents"`

	// Entry is the identity of the entry document to expand.
	Entry string `yaml:"entry"`

	// Expect lists diagnostics the expansion must produce, in order.
	// Omit for scenarios expected to expand cleanly.
	Expect []ExpectedDiag `yaml:"expect,omitempty"`
}

// ExpectedDiag is one expected diagnostic, matched by kind and directive
// argument.
type ExpectedDiag struct {
	Kind string `yaml:"kind"`
	Ref  string `yaml:"ref"`
}

// LoadScenario parses a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}

	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// LoadScenarios parses every .yaml scenario in dir, sorted by filename.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("globbing scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validate checks scenario structural requirements.
func (s *Scenario) validate() error {
	if s.Entry == "" {
		return fmt.Errorf("missing entry")
	}
	if len(s.Documents) == 0 {
		return fmt.Errorf("no documents")
	}
	if _, ok := s.Documents[s.Entry]; !ok {
		return fmt.Errorf("entry %q not among documents", s.Entry)
	}
	return nil
}
