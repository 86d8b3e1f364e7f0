package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-inject/framework/container"
)

// inject bindings: print the binding table without resolving anything.
var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "List every registered binding",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		return printBindings(cmd.OutOrStdout(), a.Bindings())
	},
}

// inject resolve <id>: build one service and report what came back.
var resolveCmd = &cobra.Command{
	Use:   "resolve <id>",
	Short: "Resolve a binding and print its type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		return resolveOne(cmd.OutOrStdout(), a.Container, args[0])
	},
}

func printBindings(out io.Writer, bindings []container.Binding) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tSHAPE\tTYPE\tARGUMENTS\tSTATE")
	for _, b := range bindings {
		state := "-"
		switch {
		case b.Deferred:
			state = "deferred"
		case b.Resolved:
			state = "resolved"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.Kind, b.Shape, orDash(b.Type), orDash(strings.Join(b.Arguments, ",")), state)
	}
	return w.Flush()
}

func resolveOne(out io.Writer, c *container.Container, id string) error {
	inst, err := c.Get(id)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s: %T\n", id, inst)
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
