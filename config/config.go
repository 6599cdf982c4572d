// Package config loads experiment descriptions from YAML.
//
// An experiment names its cases (categorical dimensions and their ordered
// values), the field groups it analyzes and a few location templates that are
// carried unchanged for callers that discover data on disk.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/casestack/cases"
	"github.com/arloliu/casestack/errs"
)

// Experiment is the top-level experiment document.
type Experiment struct {
	Name       string  `yaml:"name"`
	Cases      []Case  `yaml:"cases"`
	Fields     []Field `yaml:"fields,omitempty"`
	Timeseries bool    `yaml:"timeseries"`

	// Location templates, for example "{variable}/{scenario}". Not expanded
	// by this package.
	DataDir      string `yaml:"data_dir,omitempty"`
	CasePath     string `yaml:"case_path,omitempty"`
	OutputPrefix string `yaml:"output_prefix,omitempty"`
	OutputSuffix string `yaml:"output_suffix,omitempty"`

	ValidateData bool `yaml:"validate_data"`
}

// Case declares one categorical dimension.
type Case struct {
	Shortname string     `yaml:"shortname"`
	Longname  string     `yaml:"longname,omitempty"`
	Values    CaseValues `yaml:"values"`
}

// Field declares a group of variables analyzed together.
type Field struct {
	Name       string   `yaml:"name"`
	Longname   string   `yaml:"longname,omitempty"`
	Fieldnames []string `yaml:"fieldnames,omitempty"`
	Timeseries bool     `yaml:"timeseries"`
}

// CaseValues is the ordered list of values of a case. In YAML it may be
// written as a sequence of scalars or as a single scalar, which becomes a
// one-element list.
type CaseValues []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *CaseValues) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return fmt.Errorf("%w: null at line %d", errs.ErrInvalidCaseValue, node.Line)
		}
		*v = CaseValues{node.Value}

		return nil

	case yaml.SequenceNode:
		out := make(CaseValues, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode || item.ShortTag() == "!!null" {
				return fmt.Errorf("%w: non-scalar value at line %d", errs.ErrInvalidCaseValue, item.Line)
			}
			out = append(out, item.Value)
		}
		*v = out

		return nil

	default:
		return fmt.Errorf("%w: expected scalar or sequence at line %d", errs.ErrInvalidCaseValue, node.Line)
	}
}

// Parse decodes an experiment document.
func Parse(data []byte) (*Experiment, error) {
	var exp Experiment
	if err := yaml.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("failed to parse experiment: %w", err)
	}

	return &exp, nil
}

// Load reads and decodes the experiment at path.
func Load(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read experiment: %w", err)
	}

	return Parse(data)
}

// Marshal encodes the experiment as YAML.
func (e *Experiment) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal experiment: %w", err)
	}

	return data, nil
}

// Save writes the experiment to path, creating parent directories.
func (e *Experiment) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create experiment directory: %w", err)
	}

	data, err := e.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write experiment: %w", err)
	}

	return nil
}

// Space builds the case space in declared case order.
func (e *Experiment) Space() (*cases.Space, error) {
	cs := make([]cases.Case, 0, len(e.Cases))
	for _, c := range e.Cases {
		built, err := cases.NewCase(c.Shortname, c.Longname, c.Values...)
		if err != nil {
			return nil, err
		}
		cs = append(cs, built)
	}

	return cases.NewSpace(cs...)
}

// FieldNames returns, for each field in order, its name followed by its
// fieldnames, without repeats.
func (e *Experiment) FieldNames() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		if _, ok := seen[name]; ok || name == "" {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, f := range e.Fields {
		add(f.Name)
		for _, n := range f.Fieldnames {
			add(n)
		}
	}

	return out
}

// Validate checks that the experiment is named, that its cases form a valid
// space and that field names are present and unique.
func (e *Experiment) Validate() error {
	var problems []error
	if e.Name == "" {
		problems = append(problems, errors.New("experiment name is empty"))
	}
	if _, err := e.Space(); err != nil {
		problems = append(problems, err)
	}

	seen := make(map[string]struct{}, len(e.Fields))
	for i, f := range e.Fields {
		if f.Name == "" {
			problems = append(problems, fmt.Errorf("field %d has no name", i))
			continue
		}
		if _, dup := seen[f.Name]; dup {
			problems = append(problems, fmt.Errorf("duplicate field %q", f.Name))
		}
		seen[f.Name] = struct{}{}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", errs.ErrInvalidExperiment, errors.Join(problems...))
	}

	return nil
}
