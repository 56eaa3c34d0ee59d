package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/plantrace/pkg/domain"
)

// GraphOverlay selects the trace whose states are highlighted.
type GraphOverlay struct {
	// Trace is the index of the highlighted trace in the list.
	Trace int
}

// GenerateMermaid produces a Mermaid flowchart of the states visited by the
// traces of list. Equal states share a node and equal transitions share an
// edge. It applies semantic styling:
// - Initial state: ((Circle))
// - Unobserved successor of the last action: [/Parallelogram/]
// - Default: [Rectangle]
// States are labelled with their true fluents; partial views also list
// the unknown ones.
func GenerateMermaid(list *domain.TraceList, overlay *GraphOverlay) string {
	g := &builder{ids: make(map[string]string), edges: make(map[string]bool)}
	g.sb.WriteString("graph TD\n")

	visited := make(map[string]bool)
	for ti, trace := range list.Traces {
		var prev string
		for si, step := range trace.Steps {
			id := g.node(step.State, si == 0)
			if prev != "" {
				g.edge(prev, id, trace.Steps[si-1].Action)
			}
			if overlay != nil && overlay.Trace == ti {
				visited[id] = true
			}
			prev = id
		}

		// Random traces end on an action whose successor was not recorded.
		if n := trace.Len(); n > 0 && trace.Steps[n-1].Action != nil {
			last := trace.Steps[n-1]
			id := g.successor(last)
			g.edge(prev, id, last.Action)
			if overlay != nil && overlay.Trace == ti {
				visited[id] = true
			}
		}
	}

	if overlay != nil && len(visited) > 0 {
		g.sb.WriteString("\n    %% Overlay Styles\n")
		g.sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		for _, id := range g.order {
			if visited[id] {
				fmt.Fprintf(&g.sb, "    class %s visited;\n", id)
			}
		}
	}
	return g.sb.String()
}

type builder struct {
	sb    strings.Builder
	ids   map[string]string
	order []string
	edges map[string]bool
}

// node returns the Mermaid ID of view, declaring it on first sight.
func (g *builder) node(view domain.StateView, initial bool) string {
	key := stateKey(view)
	if id, ok := g.ids[key]; ok {
		return id
	}
	id := fmt.Sprintf("s%d", len(g.ids))
	g.ids[key] = id
	g.order = append(g.order, id)

	opener, closer := "[", "]"
	if initial {
		opener, closer = "((", "))"
	}
	fmt.Fprintf(&g.sb, "    %s%s\"%s\"%s\n", id, opener, stateLabel(view), closer)
	return id
}

// successor declares the state reached by the action of the last step.
func (g *builder) successor(last domain.Step) string {
	if full, ok := last.State.(domain.State); ok {
		return g.node(full.Apply(last.Action), false)
	}
	id := fmt.Sprintf("s%d", len(g.ids))
	g.ids["?"+id] = id
	g.order = append(g.order, id)
	fmt.Fprintf(&g.sb, "    %s[/\"?\"/]\n", id)
	return id
}

func (g *builder) edge(from, to string, action *domain.Action) {
	label := "-"
	if action != nil {
		label = strings.ReplaceAll(action.String(), "\"", "'")
	}
	key := from + "|" + label + "|" + to
	if g.edges[key] {
		return
	}
	g.edges[key] = true
	fmt.Fprintf(&g.sb, "    %s -- \"%s\" --> %s\n", from, label, to)
}

func stateKey(view domain.StateView) string {
	var parts []string
	for _, f := range view.Fluents() {
		parts = append(parts, string(f.ID())+"="+view.Truth(f).String())
	}
	return strings.Join(parts, ";")
}

func stateLabel(view domain.StateView) string {
	var parts []string
	for _, f := range view.Fluents() {
		switch view.Truth(f) {
		case domain.True:
			parts = append(parts, f.String())
		case domain.Unknown:
			parts = append(parts, f.String()+"?")
		}
	}
	if len(parts) == 0 {
		return "∅"
	}
	return strings.ReplaceAll(strings.Join(parts, "<br/>"), "\"", "'")
}
