package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlannerConfig describes how to invoke an external planner.
//
// Args may contain the placeholders {domain}, {problem} and {plan}, replaced
// with the problem's source files and the path the planner should write its
// plan to. When PlanFile is set the plan is read from that file (relative to
// the per-call working directory, or {plan} when empty); otherwise plan lines
// are taken from stdout. The process runs in Dir, or in the per-call
// working directory when Dir is empty.
type PlannerConfig struct {
	Name        string            `yaml:"name" json:"name"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	PlanFile    string            `yaml:"plan_file" json:"plan_file"`
	Dir         string            `yaml:"dir" json:"dir"`
	Description string            `yaml:"description" json:"description"`
}

// ConfigFile represents the structure of planners.yaml.
type ConfigFile struct {
	Planners []PlannerConfig `yaml:"planners" json:"planners"`
}

// LoadPlanners reads a configuration file (YAML or JSON) and returns the
// planners by name. A missing file yields an empty registry.
func LoadPlanners(path string) (map[string]PlannerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]PlannerConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read planners config: %w", err)
	}

	var cfg ConfigFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	planners := make(map[string]PlannerConfig)
	for _, p := range cfg.Planners {
		if p.Name == "" || p.Command == "" {
			continue
		}
		planners[p.Name] = p
	}
	return planners, nil
}
