package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/presentation/tui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Feed symbols into a sample machine interactively",
	Run: func(cmd *cobra.Command, args []string) {
		_, logger, err := resolveConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		reg, err := cli.BuildRegistry(logger)
		if err != nil {
			fmt.Printf("Error building machines: %v\n", err)
			os.Exit(1)
		}

		name, _ := cmd.Flags().GetString("machine")
		machine, ok := reg.Get(name)
		if !ok {
			fmt.Printf("Unknown machine %q. Available: %v\n", name, reg.Names())
			os.Exit(1)
		}

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		renderer := tui.NewRenderer()

		if interactive {
			tui.PrintBanner()
			fmt.Printf("Driving machine %q. Type a symbol and press enter. 'exit' quits.\n", name)
		}
		renderer.PrintState(machine.CurrentState())

		scanner := bufio.NewScanner(os.Stdin)
		for {
			if interactive {
				fmt.Print("symbol> ")
			}
			if !scanner.Scan() {
				break
			}
			symbol := strings.TrimSpace(scanner.Text())
			if symbol == "" {
				continue
			}
			if symbol == "exit" || symbol == "quit" {
				break
			}

			if err := machine.ReadSymbol(context.Background(), symbol); err != nil {
				renderer.PrintError(err)
			}
			renderer.PrintState(machine.CurrentState())
		}
	},
}

func init() {
	replCmd.Flags().String("machine", "ladder", "Sample machine to drive")
	rootCmd.AddCommand(replCmd)
}
