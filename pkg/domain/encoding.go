package domain

import (
	"encoding/json"
	"fmt"
)

type fluentJSON struct {
	Name    string         `json:"name"`
	Objects []CustomObject `json:"objects"`
	Value   *bool          `json:"value"`
}

type stepJSON struct {
	Index   int          `json:"index"`
	Partial bool         `json:"partial,omitempty"`
	State   []fluentJSON `json:"state"`
	Action  *Action      `json:"action,omitempty"`
}

// MarshalJSON encodes the state as a fluent list; unknown values become null.
func (s Step) MarshalJSON() ([]byte, error) {
	out := stepJSON{Index: s.Index, Action: s.Action}
	if s.State != nil {
		out.Partial = s.State.IsPartial()
		for _, f := range s.State.Fluents() {
			entry := fluentJSON{Name: f.Name, Objects: f.Objects}
			if v, ok := s.State.Truth(f).Bool(); ok {
				entry.Value = &v
			}
			out.State = append(out.State, entry)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a State, or a PartialState when flagged partial.
func (s *Step) UnmarshalJSON(data []byte) error {
	var in stepJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.Index = in.Index
	s.Action = in.Action

	if in.Partial {
		entries := make([]PartialEntry, len(in.State))
		for i, f := range in.State {
			truth := Unknown
			if f.Value != nil {
				truth = TruthOf(*f.Value)
			}
			entries[i] = PartialEntry{Fluent: Fluent{Name: f.Name, Objects: f.Objects}, Truth: truth}
		}
		ps, err := NewPartialState(entries...)
		if err != nil {
			return err
		}
		s.State = ps
		return nil
	}

	fluents := make([]Fluent, len(in.State))
	for i, f := range in.State {
		if f.Value == nil {
			return fmt.Errorf("step %d: fluent %s has no value in a full state", in.Index, f.Name)
		}
		fluents[i] = Fluent{Name: f.Name, Objects: f.Objects, Value: *f.Value}
	}
	st, err := NewState(fluents...)
	if err != nil {
		return err
	}
	s.State = st
	return nil
}
