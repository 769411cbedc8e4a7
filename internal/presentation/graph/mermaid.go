package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// Overlay contains dynamic state data to visualize on the graph.
type Overlay struct {
	VisitedStates []string
	CurrentState  string
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a definition.
// It applies semantic styling:
// - Initial: ((Circle))
// - Transient: [[Subroutine]]
// - Default: [Rectangle]
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(def *domain.Definition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, state := range def.States() {
		safeID := sanitizeMermaidID(state.ID())

		// State shape
		opener, closer := "[", "]"
		switch {
		case state.ID() == def.Initial().ID():
			opener, closer = "((", "))" // Circle
		case state.IsTransient():
			opener, closer = "[[", "]]" // Subroutine
		}

		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, state.ID(), closer))

		for _, symbol := range state.Symbols() {
			tr, _ := state.Transition(symbol)
			safeTo := sanitizeMermaidID(tr.Target().ID())

			// Escape double quotes in symbol for Mermaid label
			safeSymbol := strings.ReplaceAll(symbol, "\"", "'")
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", safeID, safeSymbol, safeTo))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentState != "" {
			safeCurrent := sanitizeMermaidID(overlay.CurrentState)
			sb.WriteString(fmt.Sprintf("    class %s current;\n", safeCurrent))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
