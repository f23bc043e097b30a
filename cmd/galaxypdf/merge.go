package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lvillar/galaxypdf/pageops"
)

var mergeOutput string

var mergeCmd = &cobra.Command{
	Use:   "merge -o OUTPUT INPUT INPUT...",
	Short: "Merge PDF files in the order given",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, err := loadConfig()
		if err != nil {
			return err
		}
		log.WithField("inputs", args).Debug("merging")

		if err := pageops.MergeFiles(mergeOutput, args...); err != nil {
			return err
		}
		doc, err := pageops.Open(mergeOutput)
		if err != nil {
			return err
		}
		n, err := pageops.PageCount(doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Merged %d files into %s (%d pages)\n", len(args), mergeOutput, n)
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "merged_document.pdf", "output PDF path")
	rootCmd.AddCommand(mergeCmd)
}
