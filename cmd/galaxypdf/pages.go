package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lvillar/galaxypdf/pageops"
)

var pagesCmd = &cobra.Command{
	Use:   "pages INPUT...",
	Short: "Print the page count of PDF files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			doc, err := pageops.Open(path)
			if err != nil {
				return err
			}
			n, err := pageops.PageCount(doc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", path, n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pagesCmd)
}
