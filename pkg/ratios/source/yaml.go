package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLSource loads tickers from a YAML file. Two shapes are supported:
//
//	- GOOGL
//	- AMD
//
// or
//
//	tickers: [GOOGL, AMD]
type YAMLSource struct{}

// Load expects spec to be a string filepath.
func (YAMLSource) Load(_ context.Context, spec any) ([]string, error) {
	path, ok := spec.(string)
	if !ok {
		return nil, fmt.Errorf("yaml source expects filepath string spec")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	tickers, err := parseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tickers, nil
}

func parseYAML(data []byte) ([]string, error) {
	// Try list form first.
	var list []string
	if err := yaml.Unmarshal(data, &list); err == nil {
		return clean(list), nil
	}

	// Map form with a tickers key.
	var alt struct {
		Tickers []string `yaml:"tickers"`
	}
	if err := yaml.Unmarshal(data, &alt); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return clean(alt.Tickers), nil
}

func clean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
