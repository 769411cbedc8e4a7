package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// CheckReachability walks the transition graph from the initial state and
// reports states no symbol chain can ever reach. The definition itself is
// already structurally valid at this point; unreachable states are a
// modelling smell, not a hard error, so callers typically log the result.
func CheckReachability(def *domain.Definition) error {
	visited := make(map[string]bool)
	queue := []string{def.Initial().ID()}

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		state, ok := def.State(currentID)
		if !ok {
			continue
		}
		for _, symbol := range state.Symbols() {
			tr, _ := state.Transition(symbol)
			target := tr.Target().ID()
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	var unreachable []string
	for _, state := range def.States() {
		if !visited[state.ID()] {
			unreachable = append(unreachable, state.ID())
		}
	}
	if len(unreachable) > 0 {
		sort.Strings(unreachable)
		return fmt.Errorf("found %d unreachable states: %s", len(unreachable), strings.Join(unreachable, ", "))
	}

	return nil
}
