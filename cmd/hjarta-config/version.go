package main

import (
	"fmt"
	"runtime"

	inject "github.com/0xalexb/hjarta-inject"

	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the hjarta-config version, engine version, build date and Go version",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "hjarta-config version: %s\n", inject.Version)
			fmt.Fprintf(out, "Engine version: %s\n", inject.EngineVersion)
			fmt.Fprintf(out, "Build date: %s\n", inject.CompiledAt)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
		},
	}
}
