package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/Bruno02468/f06tools/format"
	"github.com/Bruno02468/f06tools/parser"
)

const indent = "  "

func newInfoCmd() *cobra.Command {
	var noMerge bool
	var verbose bool
	var outputFormat string

	cmd := &cobra.Command{
		Use:           "f06info <file>",
		Short:         "Parse an F06 file and report its blocks and diagnostics",
		Long:          "Parses a solver text report (pass \"-\" to read standard input) and prints the decoded blocks, warnings, fatal errors and potential headers.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbosity := 1
			if verbose {
				verbosity = 2
			}
			commonlog.Configure(verbosity, nil)

			file, err := parsePath(args[0])
			if err != nil {
				return err
			}

			switch outputFormat {
			case "json":
				if !noMerge {
					file.MergeBlocks()
				}
				file.MergePotentialHeaders()
				enc := format.NewJSONEncoder(os.Stdout)
				if err := enc.Encode(file); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				fmt.Println()
				return nil
			case "text":
				printSummary(file, noMerge)
				return nil
			}
			return fmt.Errorf("unknown format: %s", outputFormat)
		},
	}

	cmd.Flags().BoolVarP(&noMerge, "no-merge", "M", false, "disable cross-page block merging")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "output extra info while parsing")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")

	return cmd
}

// parsePath parses the file at path, or standard input for "-". A path that
// does not exist or is not a regular file is an error, which makes the
// process exit nonzero.
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

func printSummary(file *parser.F06File, noMerge bool) {
	fmt.Printf("Done parsing; decoded %d blocks.\n", len(file.Blocks))
	fmt.Printf("Flavour: %s.\n", file.Flavour)

	if len(file.Warnings) == 0 {
		fmt.Println("No warnings found.")
	} else {
		fmt.Println("The following warnings were found:")
		for _, w := range file.Warnings {
			fmt.Printf("%s- Line %d: %s\n", indent, w.Line, w.Message)
		}
	}

	if len(file.FatalErrors) == 0 {
		fmt.Println("No fatal errors found.")
	} else {
		fmt.Println("The following fatal errors were found:")
		for _, fe := range file.FatalErrors {
			fmt.Printf("%s- Line %d: %s\n", indent, fe.Line, fe.Message)
		}
	}

	if len(file.Blocks) == 0 {
		fmt.Println("No supported blocks were found.")
	} else {
		if noMerge {
			fmt.Printf("Merged no blocks, stayed with %d.\n", len(file.Blocks))
		} else {
			nmerges := file.MergeBlocks()
			fmt.Printf("Did %d block merges, now there are %d.\n", nmerges, len(file.Blocks))
		}
		fmt.Println("Supported blocks found:")
		for _, subcase := range file.Subcases() {
			fmt.Printf("%s- Subcase %d:\n", indent, subcase)
			for _, block := range file.BlocksForSubcase(subcase) {
				fmt.Printf(
					"%s%s- %s: %d rows, %d columns\n",
					indent, indent, block.BlockType, block.NumRows(), block.NumCols(),
				)
			}
		}
	}

	if len(file.PotentialHeaders) == 0 {
		fmt.Println("No potential headers for unsupported blocks were found.")
	} else {
		file.MergePotentialHeaders()
		fmt.Println("Some potential headers for unsupported blocks were found:")
		for _, ph := range file.PotentialHeaders {
			if ph.Span == 1 {
				fmt.Printf("%s- Line %d: %q\n", indent, ph.Start, ph.Text)
			} else {
				fmt.Printf("%s- Lines %d-%d: %q\n", indent, ph.Start, ph.LastLine(), ph.Text)
			}
		}
	}
}
