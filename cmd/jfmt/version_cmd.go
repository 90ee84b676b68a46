package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.humanfmt.dev/jfmt/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "jfmt %s (%s, built by %s on %s)\n",
				versionOrUnknown(version.Version), version.Revision, versionOrUnknown(version.BuildUser), versionOrUnknown(version.BuildDate))
			fmt.Fprintf(cmd.OutOrStdout(), "  go: %s %s/%s\n", version.GoVersion, version.GoOS, version.GoArch)

			return nil
		},
	}
}

func versionOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}

	return s
}
