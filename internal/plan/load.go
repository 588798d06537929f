package plan

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// LoadPlan reads a plan file. Files ending in .cue are evaluated with CUE;
// anything else is parsed as YAML.
//
// YAML is decoded strictly: unknown fields are rejected so that a typo
// like "colums:" fails instead of silently selecting *.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}

	var p *Plan
	if filepath.Ext(path) == ".cue" {
		p, err = parseCUE(path, data)
	} else {
		p, err = ParseYAML(data)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ParseYAML decodes and validates a YAML plan.
func ParseYAML(data []byte) (*Plan, error) {
	var p Plan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	if err := validatePlan(&p); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	return &p, nil
}

func parseCUE(path string, data []byte) (*Plan, error) {
	v := cuecontext.New().CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}

	var p Plan
	if err := v.Decode(&p); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	if err := validatePlan(&p); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	return &p, nil
}

// FindPlanFiles walks dir and returns every .yaml, .yml and .cue file in
// lexical order.
func FindPlanFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml", ".cue":
			files = append(files, path)
		}
		return nil
	})
	slices.Sort(files)
	return files, err
}
