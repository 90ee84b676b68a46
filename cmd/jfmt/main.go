// Command jfmt formats, minifies, and previews JSON and JSONC (JSON with
// comments) documents.
//
// # Usage
//
//	jfmt fmt [flags] <file.json> [file2.json ...]
//	jfmt min [flags] <file.json> [file2.json ...]
//	jfmt view <file.json>
//	jfmt version
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.humanfmt.dev/jfmt"
	"go.humanfmt.dev/jfmt/log"
	"go.humanfmt.dev/jfmt/profile"
)

func main() {
	os.Exit(run())
}

func run() int {
	fmtCfg := jfmt.NewConfig()
	logCfg := log.NewConfig()
	profileCfg := profile.NewConfig()

	// A --config file's values become the defaults RegisterFlags binds
	// below, so an explicit CLI flag still overrides it at parse time. The
	// flag itself can't be registered and parsed the normal way because
	// its value is needed before the flag set it would belong to exists.
	if path := scanArgsForConfigFlag(os.Args[1:]); path != "" {
		if err := loadConfigFile(path, fmtCfg); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)

			return 1
		}
	}

	rootCmd := &cobra.Command{
		Use:           "jfmt",
		Short:         "Format, minify, and preview JSON and JSONC documents",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profileCfg.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		handler, err := logCfg.NewHandler(os.Stderr)
		if err != nil {
			return err
		}

		slog.SetDefault(slog.New(handler))

		return nil
	}

	fmtCmd := newFmtCmd(fmtCfg, profileCfg)

	rootCmd.AddCommand(
		fmtCmd,
		newMinCmd(profileCfg),
		newViewCmd(),
		newVersionCmd(),
	)

	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register log completions: %v\n", err)
	}

	if err := fmtCfg.RegisterCompletions(fmtCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register format completions: %v\n", err)
	}

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)

		return 1
	}

	return 0
}
