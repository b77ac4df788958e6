package feature

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultsFile is the on-disk YAML format consumed by LoadDefaults:
//
//	flags:
//	  - key: new-ui
//	    name: New UI
//	    enabled: true
//	    rollout:
//	      type: percentage
//	      value: 25
type DefaultsFile struct {
	Flags []FlagInput `yaml:"flags"`
}

// LoadDefaults reads a YAML file of default flag definitions for
// RegisterDefaultFlags.
func LoadDefaults(path string) ([]FlagInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read defaults file: %w", err)
	}

	var file DefaultsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Join(ErrInvalidFlag, err)
	}

	for _, input := range file.Flags {
		if input.Key == "" {
			return nil, errors.Join(ErrInvalidFlag,
				errors.New("defaults file contains a flag without a key"))
		}
	}
	return file.Flags, nil
}
