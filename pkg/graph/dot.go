package graph

import (
	"fmt"
	"strings"
)

// ToDOT generates a DOT format representation of the graph for
// visualization. Units are clustered per owning object and colored by their
// current dirty flags, which makes flush results easy to inspect with
// Graphviz tools.
func (g *Graph) ToDOT() string {
	var sb strings.Builder

	sb.WriteString("digraph DependencyGraph {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box, style=rounded];\n\n")

	for i, obj := range g.Objects {
		sb.WriteString(fmt.Sprintf("  subgraph cluster_object_%d {\n", i))
		sb.WriteString(fmt.Sprintf("    label=\"%s\";\n", obj.Name))
		sb.WriteString("    style=dashed;\n")

		for _, comp := range obj.Components {
			for _, u := range comp.Units {
				label := fmt.Sprintf("%s\\n%s", u.Name, u.Opcode)
				color := flagColor(u.Flags)
				sb.WriteString(fmt.Sprintf("    \"%s\" [label=\"%s\", fillcolor=\"%s\", style=\"filled,rounded\"];\n",
					u.Name, label, color))
			}
		}

		sb.WriteString("  }\n\n")
	}

	for _, u := range g.Units {
		for _, to := range u.Outlinks {
			sb.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\";\n", u.Name, to.Name))
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// flagColor returns a fill color visualizing a unit's dirty state.
func flagColor(flags UnitFlag) string {
	switch {
	case flags&FlagDirectlyModified != 0:
		return "lightcoral"
	case flags&FlagNeedsUpdate != 0:
		return "lightyellow"
	default:
		return "white"
	}
}
