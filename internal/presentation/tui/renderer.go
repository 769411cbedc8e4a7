package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/arbor/pkg/domain"
)

// Renderer prints machine state and failures with terminal colors.
type Renderer struct {
	profile termenv.Profile
}

// NewRenderer detects the terminal color profile and returns a renderer.
func NewRenderer() *Renderer {
	return &Renderer{profile: termenv.ColorProfile()}
}

// PrintState prints the current state and the symbols it accepts.
func (r *Renderer) PrintState(state *domain.State) {
	label := state.ID()
	if state.IsTransient() {
		label += " (transient)"
	}
	fmt.Println(termenv.String("  state: " + label).Foreground(r.profile.Color("2")))
	if symbols := state.Symbols(); len(symbols) > 0 {
		fmt.Printf("  symbols: %s\n", strings.Join(symbols, ", "))
	}
}

// PrintError prints every failure accumulated during a read, one line each.
func (r *Renderer) PrintError(err error) {
	var chain *domain.ChainError
	if errors.As(err, &chain) {
		for _, e := range chain.Errs {
			r.printFailure(e)
		}
		return
	}
	r.printFailure(err)
}

func (r *Renderer) printFailure(err error) {
	line := fmt.Sprintf("  ✗ [%s] %v", domain.Kind(err), err)
	fmt.Println(termenv.String(line).Foreground(r.profile.Color("1")))
}
