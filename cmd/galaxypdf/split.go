package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lvillar/galaxypdf/pageops"
)

var (
	splitOutput  string
	splitRange   string
	splitPerPage bool
	splitDir     string
)

var splitCmd = &cobra.Command{
	Use:   "split -o OUTPUT [--range R | --per-page] INPUT",
	Short: "Split a PDF into a zip of page ranges or single pages",
	Long: `Split writes a zip archive holding one PDF per item of --range (for
example "1-5, 8, 11-13") or, with --per-page, one PDF per page. With --dir the
pages are written as separate files into that directory instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, err := loadConfig()
		if err != nil {
			return err
		}
		input := args[0]

		if splitDir != "" {
			if err := os.MkdirAll(splitDir, 0755); err != nil {
				return err
			}
			log.WithField("dir", splitDir).Debug("splitting into files")
			if err := pageops.SplitToFiles(input, splitDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote the pages of %s to %s\n", input, splitDir)
			return nil
		}

		expr := strings.TrimSpace(splitRange)
		switch {
		case expr == "" && !splitPerPage:
			return errors.New("provide a page range with --range or use --per-page")
		case expr != "" && splitPerPage:
			return errors.New("--range and --per-page cannot be used together")
		}
		n, err := pageops.SplitToArchive(splitOutput, input, expr, splitPerPage)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d PDF files to %s\n", n, splitOutput)
		return nil
	},
}

func init() {
	splitCmd.Flags().StringVarP(&splitOutput, "output", "o", "split_files.zip", "output zip path")
	splitCmd.Flags().StringVar(&splitRange, "range", "", `page ranges, e.g. "1-5, 8, 11-13"`)
	splitCmd.Flags().BoolVar(&splitPerPage, "per-page", false, "write every page to its own PDF")
	splitCmd.Flags().StringVar(&splitDir, "dir", "", "write single pages as files into this directory")
	rootCmd.AddCommand(splitCmd)
}
