package observation

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/aretw0/plantrace/pkg/domain"
)

// Method selects the visible fluents of a step.
type Method interface {
	// Name identifies the method in logs and API responses.
	Name() string
	// Keep returns the subset of fluents that stay observable.
	Keep(fluents []domain.Fluent) []domain.Fluent
}

// Token is a step as seen by a learner.
type Token struct {
	Step domain.Step `json:"step"`
}

// Equal holds when the underlying steps are equal.
func (t Token) Equal(other Token) bool {
	return t.Step.Equal(other.Step)
}

// Tokenize masks the state of step with m. Action and index are preserved.
// Only fluents with a known value are candidates, so a partial step can be
// masked further.
func Tokenize(step domain.Step, m Method) (Token, error) {
	known := make([]domain.Fluent, 0, lenOf(step.State))
	if step.State != nil {
		for _, f := range step.State.Fluents() {
			if v, ok := step.State.Truth(f).Bool(); ok {
				known = append(known, f.WithValue(v))
			}
		}
	}

	kept := m.Keep(known)
	entries := make([]domain.PartialEntry, len(kept))
	for i, f := range kept {
		entries[i] = domain.PartialEntry{Fluent: f, Truth: domain.TruthOf(f.Value)}
	}
	partial, err := domain.NewPartialState(entries...)
	if err != nil {
		return Token{}, fmt.Errorf("tokenize step %d with %s: %w", step.Index, m.Name(), err)
	}
	return Token{Step: domain.NewStep(partial, step.Action, step.Index)}, nil
}

// TokenizeTrace masks every step of trace.
func TokenizeTrace(trace *domain.Trace, m Method) ([]Token, error) {
	out := make([]Token, 0, trace.Len())
	for _, step := range trace.Steps {
		tok, err := Tokenize(step, m)
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
	return out, nil
}

// TokenizeList masks every trace of list, keeping trace order.
func TokenizeList(list *domain.TraceList, m Method) ([][]Token, error) {
	out := make([][]Token, 0, list.Len())
	for i, trace := range list.Traces {
		toks, err := TokenizeTrace(trace, m)
		if err != nil {
			return nil, fmt.Errorf("trace %d: %w", i+1, err)
		}
		out = append(out, toks)
	}
	return out, nil
}

// Traces rebuilds masked traces from tokens.
func Traces(tokens [][]Token) []*domain.Trace {
	out := make([]*domain.Trace, len(tokens))
	for i, toks := range tokens {
		trace := domain.NewTrace()
		for _, tok := range toks {
			trace.Append(tok.Step)
		}
		out[i] = trace
	}
	return out
}

func lenOf(v domain.StateView) int {
	if v == nil {
		return 0
	}
	return v.Len()
}

type randomSubset struct {
	rng     *rand.Rand
	percent int
}

// RandomSubset keeps floor(n*percent/100) fluents drawn uniformly without
// replacement, where n is the number of known fluents of the step.
// A nil rng uses a randomly seeded source.
func RandomSubset(rng *rand.Rand, percent int) (Method, error) {
	if percent < 0 || percent > 100 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidPercent, percent)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &randomSubset{rng: rng, percent: percent}, nil
}

func (r *randomSubset) Name() string {
	return fmt.Sprintf("random-subset(%d%%)", r.percent)
}

func (r *randomSubset) Keep(fluents []domain.Fluent) []domain.Fluent {
	k := len(fluents) * r.percent / 100
	picked := r.rng.Perm(len(fluents))[:k]
	out := make([]domain.Fluent, k)
	for i, idx := range picked {
		out[i] = fluents[idx]
	}
	return out
}

type sameSubset struct {
	hide map[domain.FluentID]struct{}
}

// SameSubset hides the given fluents on every step; values are ignored when
// matching.
func SameSubset(hide ...domain.Fluent) Method {
	s := &sameSubset{hide: make(map[domain.FluentID]struct{}, len(hide))}
	for _, f := range hide {
		s.hide[f.ID()] = struct{}{}
	}
	return s
}

func (s *sameSubset) Name() string {
	return fmt.Sprintf("same-subset(%d)", len(s.hide))
}

func (s *sameSubset) Keep(fluents []domain.Fluent) []domain.Fluent {
	out := make([]domain.Fluent, 0, len(fluents))
	for _, f := range fluents {
		if _, hidden := s.hide[f.ID()]; !hidden {
			out = append(out, f)
		}
	}
	return out
}

type identity struct{}

// Identity keeps every known fluent.
func Identity() Method {
	return identity{}
}

func (identity) Name() string {
	return "identity"
}

func (identity) Keep(fluents []domain.Fluent) []domain.Fluent {
	return fluents
}

// Method names accepted by NewMethod.
const (
	MethodRandom   = "random"
	MethodSame     = "same"
	MethodIdentity = "identity"
)

// ErrUnknownMethod is returned by NewMethod for unsupported names.
var ErrUnknownMethod = errors.New("unknown observation method")

// NewMethod builds a method by name. percent applies to MethodRandom and
// hide to MethodSame.
func NewMethod(name string, percent int, hide []domain.Fluent, rng *rand.Rand) (Method, error) {
	switch name {
	case MethodRandom:
		return RandomSubset(rng, percent)
	case MethodSame:
		return SameSubset(hide...), nil
	case MethodIdentity, "":
		return Identity(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}
