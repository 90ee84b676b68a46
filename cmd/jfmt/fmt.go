package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"go.humanfmt.dev/jfmt"
	"go.humanfmt.dev/jfmt/profile"
)

func newFmtCmd(cfg *jfmt.Config, profileCfg *profile.Config) *cobra.Command {
	var (
		write      bool
		output     string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "fmt [flags] <file.json> [file2.json ...]",
		Short: "Format JSON/JSONC files",
		Long: `fmt reads one or more JSON or JSONC files and writes a deterministic,
readable layout. Comments and blank lines are preserved unless disabled.
Pass "-" to read from stdin.`,
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

			return runFmt(cfg, args, write, output)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result back to the input file instead of stdout")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write result to this path instead of stdout (ignored with --write)")
	cmd.Flags().StringVar(&configPath, "config", "", "load formatting options from this YAML file (CLI flags still override it)")
	cfg.RegisterFlags(cmd.Flags())

	return cmd
}

func runFmt(cfg *jfmt.Config, args []string, write bool, output string) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	for _, arg := range args {
		src, err := readInput(arg)
		if err != nil {
			return err
		}

		result, err := jfmt.Format(string(src), opts)
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}

		if err := writeResult(arg, result, write, output); err != nil {
			return err
		}
	}

	return nil
}

func readInput(arg string) ([]byte, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", arg, err)
	}

	return data, nil
}

func writeResult(arg, result string, write bool, output string) error {
	switch {
	case write && arg != "-":
		if err := os.WriteFile(arg, []byte(result), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", arg, err)
		}

		return nil
	case output != "" && output != "-":
		if err := os.WriteFile(output, []byte(result), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", output, err)
		}

		return nil
	default:
		_, err := os.Stdout.WriteString(result)

		return err
	}
}
