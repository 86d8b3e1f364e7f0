package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-inject/framework/app"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var envFiles []string

var rootCmd = &cobra.Command{
	Use:           "inject",
	Short:         "Service container CLI",
	Long:          "inject boots the application container and serves or inspects its bindings.",
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       app.Version,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env", nil, "env files to load (default .env)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(bindingsCmd)
	rootCmd.AddCommand(resolveCmd)
}

// bootstrap builds and boots the application with the flags' env files.
func bootstrap() (*app.Application, error) {
	a, err := app.New(envFiles...)
	if err != nil {
		return nil, err
	}
	if err := a.Boot(); err != nil {
		return nil, err
	}
	return a, nil
}
