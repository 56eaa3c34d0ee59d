package domain

// StateDiff represents the fluent changes between two consecutive views.
// It is designed to be serialized to JSON for step-by-step trace reports.
type StateDiff struct {
	// Added holds fluents that became true.
	Added []Fluent `json:"added,omitempty"`

	// Deleted holds fluents that became false.
	Deleted []Fluent `json:"deleted,omitempty"`

	// Revealed holds fluents unknown in the old view and known in the new one.
	Revealed []Fluent `json:"revealed,omitempty"`

	// Hidden holds fluents known in the old view and unknown in the new one.
	Hidden []Fluent `json:"hidden,omitempty"`
}

// Diff calculates the difference between oldView and newView.
// If oldView is nil, every known true fluent of newView is reported as added.
func Diff(oldView, newView StateView) *StateDiff {
	if newView == nil {
		return nil
	}

	diff := &StateDiff{}

	// 1. Initial load
	if oldView == nil {
		for _, f := range newView.Fluents() {
			if newView.Truth(f) == True {
				diff.Added = append(diff.Added, f)
			}
		}
		if diff.IsEmpty() {
			return nil
		}
		return diff
	}

	// 2. Changes over the fluents of the new view
	seen := make(map[FluentID]struct{}, newView.Len())
	for _, f := range newView.Fluents() {
		seen[f.ID()] = struct{}{}
		diff.record(f, oldView.Truth(f), newView.Truth(f))
	}

	// 3. Fluents only present in the old view became unknown
	for _, f := range oldView.Fluents() {
		if _, ok := seen[f.ID()]; ok {
			continue
		}
		diff.record(f, oldView.Truth(f), Unknown)
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func (d *StateDiff) record(f Fluent, old, new Truth) {
	switch {
	case old == new:
	case !old.Known():
		d.Revealed = append(d.Revealed, f.WithValue(new == True))
	case !new.Known():
		d.Hidden = append(d.Hidden, f)
	case new == True:
		d.Added = append(d.Added, f.WithValue(true))
	default:
		d.Deleted = append(d.Deleted, f.WithValue(false))
	}
}

// IsEmpty checks if the diff contains any change.
func (d *StateDiff) IsEmpty() bool {
	return len(d.Added) == 0 &&
		len(d.Deleted) == 0 &&
		len(d.Revealed) == 0 &&
		len(d.Hidden) == 0
}
