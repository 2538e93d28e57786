package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// BuildInfo describes the running binary. Fields other than Version are
// filled by -ldflags and default to "unknown".
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the definepage version, build date and git commit.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "definepage v%s\n", info.Version)
			_, _ = fmt.Fprintln(out, "Compile-time route macro for single-file page components")
			_, _ = fmt.Fprintf(out, "  commit: %s\n", orUnknown(info.GitCommit))
			_, _ = fmt.Fprintf(out, "  built:  %s\n", orUnknown(info.BuildDate))
		},
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
