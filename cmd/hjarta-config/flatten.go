package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFlattenCommand(flags *globalFlags) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "flatten NAME",
		Short: "Print the flattened paths of a document",
		Long: `Print every leaf of the named document as "path = value", sorted by path.
With --all, intermediate mappings are listed as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := flags.store(cmd)
			if err != nil {
				return err
			}

			doc := store.Load(args[0])
			out := cmd.OutOrStdout()

			for _, path := range doc.Paths() {
				value, _ := doc.Lookup(path)

				if _, isMapping := value.(map[string]any); isMapping {
					if all {
						fmt.Fprintf(out, "%s\n", path)
					}

					continue
				}

				fmt.Fprintf(out, "%s = %v\n", path, value)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "also list intermediate mappings")

	return cmd
}
