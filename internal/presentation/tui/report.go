package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/plantrace/pkg/domain"
)

// Report renders a trace list as markdown: one section per trace with the
// initial state and a table of per-step changes.
func Report(list *domain.TraceList) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Trace list `%s`\n\n", list.ID)
	fmt.Fprintf(&b, "- **Generator**: %s\n", list.Generator)
	fmt.Fprintf(&b, "- **Created**: %s\n", list.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- **Traces**: %d\n", list.Len())

	for i, trace := range list.Traces {
		fmt.Fprintf(&b, "\n## Trace %d (%d steps)\n\n", i+1, trace.Len())
		writeTrace(&b, trace)
	}
	return b.String()
}

func writeTrace(b *strings.Builder, trace *domain.Trace) {
	if trace.Len() == 0 {
		b.WriteString("_empty_\n")
		return
	}

	first := trace.Steps[0].State
	fmt.Fprintf(b, "**Initial state**: %s\n\n", join(trueFluents(first)))

	b.WriteString("| # | Action | Added | Deleted | Unknown |\n")
	b.WriteString("|---|--------|-------|---------|---------|\n")

	var prev domain.StateView
	for _, step := range trace.Steps {
		action := "_terminal_"
		if step.Action != nil {
			action = "`" + step.Action.String() + "`"
		}

		var added, deleted []domain.Fluent
		if prev != nil {
			if d := domain.Diff(prev, step.State); d != nil {
				added = append(d.Added, truthy(d.Revealed, true)...)
				deleted = append(d.Deleted, truthy(d.Revealed, false)...)
			}
		}
		fmt.Fprintf(b, "| %d | %s | %s | %s | %d |\n",
			step.Index, action, join(added), join(deleted), unknown(first, step.State))
		prev = step.State
	}
}

func trueFluents(v domain.StateView) []domain.Fluent {
	var out []domain.Fluent
	for _, f := range v.Fluents() {
		if v.Truth(f) == domain.True {
			out = append(out, f)
		}
	}
	return out
}

func truthy(fluents []domain.Fluent, value bool) []domain.Fluent {
	var out []domain.Fluent
	for _, f := range fluents {
		if f.Value == value {
			out = append(out, f)
		}
	}
	return out
}

// unknown counts fluents of ref whose value is hidden in v.
func unknown(ref, v domain.StateView) int {
	if !v.IsPartial() {
		return 0
	}
	n := 0
	for _, f := range ref.Fluents() {
		if !v.Truth(f).Known() {
			n++
		}
	}
	return n
}

func join(fluents []domain.Fluent) string {
	if len(fluents) == 0 {
		return "-"
	}
	parts := make([]string, len(fluents))
	for i, f := range fluents {
		parts[i] = f.String()
	}
	return strings.Join(parts, ", ")
}
