package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/craigbalding/sandboxscore/pkg/grading"
	"github.com/craigbalding/sandboxscore/pkg/policy"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "Show the severity policy for each risk profile",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			header := color.New(color.FgHiCyan, color.Bold).SprintFunc()

			fmt.Fprintln(out, header("personal"))
			fmt.Fprintln(out, "  Your own data on your own machine is not an exposure:")
			fmt.Fprintln(out, "  contacts, messages, browser_history and photos are ignored.")

			fmt.Fprintln(out, header("professional"))
			fmt.Fprintln(out, "  Client data may be involved: contacts and messages score")
			fmt.Fprintln(out, "  medium regardless of their base severity.")

			fmt.Fprintln(out, header("sensitive"))
			fmt.Fprintln(out, "  No overrides; every base severity counts in full.")

			fmt.Fprintln(out)
			fmt.Fprintln(out, header("Grade caps"))
			for _, rule := range grading.CapRules() {
				scope := "any profile"
				if rule.OnlyProfile != "" {
					scope = string(rule.OnlyProfile) + " profile only"
				}
				fmt.Fprintf(out, "  %-18s floors the grade at %s (%s)\n", rule.TestName, rule.Cap, scope)
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "Known profiles: ")
			for i, p := range policy.Profiles() {
				if i > 0 {
					fmt.Fprint(out, ", ")
				}
				fmt.Fprint(out, p)
			}
			fmt.Fprintln(out)
		},
	}
}

func init() {
	rootCmd.AddCommand(newProfilesCmd())
}
