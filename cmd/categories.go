package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ptel-andalucia/dera-cli/internal/catalog"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the available categories and their source layers",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, cat := range catalog.Default().All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", cat.Key, cat.Name)
			for _, d := range cat.Layers {
				fmt.Fprintf(cmd.OutOrStdout(), "             - %s (%s)\n", d.Label, d.TypeName)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
