package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.humanfmt.dev/jfmt"
	"go.humanfmt.dev/jfmt/profile"
)

func newMinCmd(profileCfg *profile.Config) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "min [flags] <file.json> [file2.json ...]",
		Short: "Minify JSON/JSONC files",
		Long: `min reads one or more JSON or JSONC files and writes the most compact
equivalent JSON: comments and insignificant whitespace removed. Pass "-" to
read from stdin.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			p := profileCfg.NewProfiler()

			if err := p.Start(); err != nil {
				return err
			}

			defer func() {
				if err := p.Stop(); err != nil {
					fmt.Fprintf(os.Stderr, "profiling: %v\n", err)
				}
			}()

			return runMin(args, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write result to this path instead of stdout")

	return cmd
}

func runMin(args []string, output string) error {
	for _, arg := range args {
		src, err := readInput(arg)
		if err != nil {
			return err
		}

		result, err := jfmt.Minify(string(src))
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}

		if err := writeResult(arg, result+"\n", false, output); err != nil {
			return err
		}
	}

	return nil
}
