package tuning

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML decodes overrides on top of Default. Levels given without a
// radius get the geometric one.
func LoadYAML(r io.Reader) (Tuning, error) {
	t := Default()
	levels := len(t.Levels)
	for i := range t.Levels {
		t.Levels[i].Radius = 0
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && err != io.EOF {
		return Tuning{}, fmt.Errorf("decode tuning: %w", err)
	}
	t.fillRadii()
	// A replaced level table keeps ascension on its top level unless set explicitly.
	if len(t.Levels) != levels && t.AscendLevel == levels {
		t.AscendLevel = len(t.Levels)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// LoadFile reads a YAML override file. An empty path yields Default.
func LoadFile(path string) (Tuning, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("open tuning file: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}
