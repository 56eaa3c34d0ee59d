// Package taskfile loads grounded planning tasks from YAML or JSON documents.
package taskfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/plantrace/internal/dto"
	"github.com/aretw0/plantrace/pkg/dsl"
	"github.com/aretw0/plantrace/pkg/strips"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrMalformedTask is returned when a task document cannot be decoded.
var ErrMalformedTask = errors.New("malformed task file")

// Load reads a task file. The format is chosen by extension (.json, else YAML).
// Relative domain_file and problem_file paths are resolved against the task
// file's directory; when both are omitted the task file itself is used so
// external planners can read it.
func Load(path string) (*strips.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}

	problem, err := Parse(data, strings.ToLower(filepath.Ext(path)) == ".json")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	switch {
	case problem.DomainFile == "" && problem.ProblemFile == "":
		problem.DomainFile, problem.ProblemFile = path, path
	default:
		problem.DomainFile = resolve(dir, problem.DomainFile)
		problem.ProblemFile = resolve(dir, problem.ProblemFile)
	}
	return problem, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Parse decodes a task document.
func Parse(data []byte, isJSON bool) (*strips.Problem, error) {
	var raw map[string]any
	if isJSON {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTask, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedTask, err)
		}
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedTask)
	}

	var task dto.Task
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &task,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTask, err)
	}
	return Build(task)
}

// Build maps a decoded task onto a validated problem.
func Build(task dto.Task) (*strips.Problem, error) {
	b := dsl.New(task.Name).Domain(task.Domain)
	for name, typ := range task.Objects {
		if typ == "" {
			typ = strips.DefaultObjectType
		}
		b.Object(name, typ)
	}
	for name, types := range task.Predicates {
		b.Predicate(name, types...)
	}
	for name, types := range task.Actions {
		b.Action(name, types...)
	}

	for _, raw := range task.Init {
		lit, err := strips.ParseLiteral(raw)
		if err != nil {
			return nil, fmt.Errorf("init: %w", err)
		}
		if lit.Negated {
			return nil, fmt.Errorf("%w: init lists only true atoms, got %s", ErrMalformedTask, raw)
		}
		b.Init(lit.Predicate, lit.Args...)
	}

	goal, err := literals("goal", task.Goal)
	if err != nil {
		return nil, err
	}
	b.Goal(goal...)

	for i, op := range task.Operators {
		if op.Name == "" {
			return nil, fmt.Errorf("%w: operator %d has no name", ErrMalformedTask, i+1)
		}
		where := fmt.Sprintf("operator %s(%s)", op.Name, strings.Join(op.Args, ", "))

		ob := b.Op(op.Name, op.Args...)
		pre, err := literals(where+" pre", op.Pre)
		if err != nil {
			return nil, err
		}
		ob.Pre(pre...)

		for _, e := range []struct {
			raw   []string
			apply func(string, ...string) *dsl.OperatorBuilder
			kind  string
		}{
			{op.Add, ob.Add, "add"},
			{op.Del, ob.Del, "del"},
		} {
			atoms, err := literals(where+" "+e.kind, e.raw)
			if err != nil {
				return nil, err
			}
			for _, a := range atoms {
				if a.Negated {
					return nil, fmt.Errorf("%w: %s %s: effects are atoms", ErrMalformedTask, where, e.kind)
				}
				e.apply(a.Predicate, a.Args...)
			}
		}
	}

	problem, err := b.Build()
	if err != nil {
		return nil, err
	}
	problem.DomainFile = task.DomainFile
	problem.ProblemFile = task.ProblemFile
	return problem, nil
}

func literals(where string, raw []string) ([]strips.Literal, error) {
	out := make([]strips.Literal, 0, len(raw))
	for _, r := range raw {
		lit, err := strips.ParseLiteral(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", where, err)
		}
		out = append(out, lit)
	}
	return out, nil
}
