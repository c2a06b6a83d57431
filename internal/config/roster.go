package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// rosterFile is the on-disk layout of a roster file:
//
//	employees: [tom, bob]
//	supervisors: [sam, neil]
type rosterFile struct {
	Employees   []string `yaml:"employees"`
	Supervisors []string `yaml:"supervisors"`
}

// LoadRoster parses a YAML roster file.
func LoadRoster(path string) (RosterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RosterConfig{}, fmt.Errorf("read roster %s: %w", path, err)
	}
	return ParseRoster(data)
}

// ParseRoster decodes roster YAML. Both lists must be present.
func ParseRoster(data []byte) (RosterConfig, error) {
	var f rosterFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return RosterConfig{}, fmt.Errorf("parse roster: %w", err)
	}
	if len(f.Employees) == 0 {
		return RosterConfig{}, fmt.Errorf("parse roster: employees is required")
	}
	if len(f.Supervisors) == 0 {
		return RosterConfig{}, fmt.Errorf("parse roster: supervisors is required")
	}
	return RosterConfig{Employees: f.Employees, Supervisors: f.Supervisors}, nil
}

// ApplyFile replaces the roster lists with the contents of path.
func (r *RosterConfig) ApplyFile(path string) error {
	loaded, err := LoadRoster(path)
	if err != nil {
		return err
	}
	r.File = path
	r.Employees = loaded.Employees
	r.Supervisors = loaded.Supervisors
	return nil
}
