package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/Bruno02468/f06tools/nascsv"
	"github.com/Bruno02468/f06tools/parser"
)

func newCsvCmd() *cobra.Command {
	var noMerge bool
	var verbose bool
	var withHeaders bool
	var output string
	var blockNames []string

	cmd := &cobra.Command{
		Use:           "f06csv <file>",
		Short:         "Convert an F06 file into fixed-form CSV records",
		Long:          "Parses a solver text report (pass \"-\" to read standard input) and writes its data blocks as eleven-field CSV records.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbosity := 1
			if verbose {
				verbosity = 2
			}
			commonlog.Configure(verbosity, nil)

			keep, err := blockFilter(blockNames)
			if err != nil {
				return err
			}

			file, err := parsePath(args[0])
			if err != nil {
				return err
			}
			if !noMerge {
				file.MergeBlocks()
			}

			var w io.Writer = os.Stdout
			if output != "" {
				fd, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer fd.Close()
				w = fd
			}

			records := nascsv.ConvertFile(file)
			if err := nascsv.WriteCSV(w, records, withHeaders, keep); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&noMerge, "no-merge", "M", false, "disable cross-page block merging")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "output extra info while parsing")
	cmd.Flags().BoolVar(&withHeaders, "headers", false, "emit a header record before each block ID group")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default standard output)")
	cmd.Flags().StringSliceVar(&blockNames, "blocks", nil, "only emit these CSV block IDs (names, shorthands or numbers)")

	return cmd
}

// blockFilter resolves --blocks values into a keep-set. An empty selection
// means everything.
func blockFilter(names []string) (map[nascsv.BlockID]bool, error) {
	if len(names) == 0 {
		return nil, nil
	}
	keep := make(map[nascsv.BlockID]bool)
	for _, name := range names {
		id, ok := nascsv.BlockIDFromString(name)
		if !ok {
			return nil, fmt.Errorf("unknown CSV block ID: %s", name)
		}
		keep[id] = true
	}
	return keep, nil
}

// parsePath parses the file at path, or standard input for "-". A path that
// does not exist or is not a regular file is an error.
func parsePath(path string) (*parser.F06File, error) {
	if path == "-" {
		return parser.ParseReader(os.Stdin)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	return parser.ParseFile(path)
}
