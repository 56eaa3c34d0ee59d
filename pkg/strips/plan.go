package strips

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedCall is returned for operator calls that cannot be parsed.
var ErrMalformedCall = errors.New("malformed operator call")

// ParseCall parses an operator call in either planner form "(move a b)" or
// display form "move(a, b)". Trailing ";" comments and cost annotations
// like "(1)" after the call are ignored.
func ParseCall(raw string) (string, []string, error) {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, ";"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if s == "" {
		return "", nil, fmt.Errorf("%w: empty", ErrMalformedCall)
	}

	if strings.HasPrefix(s, "(") {
		end := strings.Index(s, ")")
		if end < 0 {
			return "", nil, fmt.Errorf("%w: %q", ErrMalformedCall, raw)
		}
		fields := strings.Fields(s[1:end])
		if len(fields) == 0 {
			return "", nil, fmt.Errorf("%w: %q", ErrMalformedCall, raw)
		}
		return fields[0], fields[1:], nil
	}

	open := strings.Index(s, "(")
	if open <= 0 || !strings.HasSuffix(s, ")") {
		fields := strings.Fields(s)
		return fields[0], fields[1:], nil
	}
	name := strings.TrimSpace(s[:open])
	var args []string
	for _, a := range strings.Split(s[open+1:len(s)-1], ",") {
		if a = strings.TrimSpace(a); a != "" {
			args = append(args, a)
		}
	}
	return name, args, nil
}

// ResolvePlan maps operator calls to grounded operators by executing them
// from the initial state. When several operators share a name and arguments,
// the first one applicable at that point is chosen.
func (p *Problem) ResolvePlan(calls []string) ([]Operator, error) {
	state := p.Init
	plan := make([]Operator, 0, len(calls))
	for i, call := range calls {
		name, args, err := ParseCall(call)
		if err != nil {
			return nil, fmt.Errorf("plan step %d: %w", i+1, err)
		}

		var (
			chosen Operator
			found  bool
			known  bool
		)
		for _, op := range p.Operators {
			if !sameCall(op, name, args) {
				continue
			}
			known = true
			if op.Applicable(state) {
				chosen, found = op, true
				break
			}
		}
		switch {
		case !known:
			return nil, fmt.Errorf("plan step %d: %w: %s", i+1, ErrUnknownOperator, call)
		case !found:
			return nil, fmt.Errorf("plan step %d: %s is not applicable", i+1, call)
		}

		plan = append(plan, chosen)
		state = state.Apply(chosen.Effects)
	}
	return plan, nil
}

func sameCall(op Operator, name string, args []string) bool {
	if !strings.EqualFold(op.Name, name) || len(op.Args) != len(args) {
		return false
	}
	for i := range args {
		if !strings.EqualFold(op.Args[i], args[i]) {
			return false
		}
	}
	return true
}

// ParseLiteral parses "(p a b)", "(not (p a b))" or "(= a b)".
func ParseLiteral(raw string) (Literal, error) {
	s := strings.TrimSpace(raw)
	negated := false
	if lower := strings.ToLower(s); strings.HasPrefix(lower, "(not ") || strings.HasPrefix(lower, "(not(") {
		inner := strings.TrimSpace(s[len("(not"):])
		if !strings.HasSuffix(inner, ")") {
			return Literal{}, fmt.Errorf("%w: %q", ErrMalformedCall, raw)
		}
		s = strings.TrimSpace(inner[:len(inner)-1])
		negated = true
	}
	if !strings.HasPrefix(s, "(") {
		return Literal{}, fmt.Errorf("%w: %q", ErrMalformedCall, raw)
	}
	name, args, err := ParseCall(s)
	if err != nil {
		return Literal{}, err
	}
	return Literal{Atom: NewAtom(name, args...), Negated: negated}, nil
}
