package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LoadRules reads a scoring rules file. Unknown keys are rejected so a typo in
// a table family does not silently fall back to the standard scale.
func LoadRules(path string) (*ScoringConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "config: open rules file %s", path)
	}
	defer f.Close() //nolint:errcheck

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var rules ScoringConfig
	if err := dec.Decode(&rules); err != nil {
		return nil, eris.Wrapf(err, "config: decode rules file %s", path)
	}
	return &rules, nil
}
