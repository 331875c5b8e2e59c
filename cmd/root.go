package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sandboxscore",
	Short: "Grade how exposed the host is to a sandboxed process",
	Long: `sandboxscore runs read/write/query probes from inside a sandbox and
grades what they could reach: credentials, personal data, system
visibility, persistence, network and intelligence surfaces. The grade is
explainable (per-category points, hard caps with reasons) and can be
re-projected under any risk profile without re-running a probe.`,
}

// Execute runs the CLI.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
