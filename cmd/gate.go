package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/craigbalding/sandboxscore/pkg/gate"
	"github.com/craigbalding/sandboxscore/pkg/report"
)

func newGateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gate <expression> [report.json]",
		Short: "Evaluate a gate expression against a saved JSON report",
		Long: `Re-evaluates a CI gate against a report produced by
"sandboxscore scan --format json", without re-running any probe. Reads
the report from the given file, or stdin when the file is omitted or -.

Exits 1 when the expression holds (the run should fail), 0 when it does
not, and 2 on a malformed expression or unreadable report.`,
		Args: cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			expr, err := gate.Parse(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(exitUsage)
			}

			var in io.Reader = os.Stdin
			var inFile *os.File
			if len(args) == 2 && args[1] != "-" {
				file, err := os.Open(args[1])
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error opening report: %v\n", err)
					os.Exit(exitUsage)
				}
				in = file
				inFile = file
			}

			doc, err := report.ReadJSON(in)
			// Every path below exits the process, which skips defers.
			if inFile != nil {
				inFile.Close()
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading report: %v\n", err)
				os.Exit(exitUsage)
			}

			failed := expr.Eval(doc.GateReport())
			if failed {
				fmt.Fprintf(os.Stderr, "Gate %q failed (grade %s, %d points, %d exposures)\n",
					args[0], doc.Grade, doc.PointsLost, doc.Exposures)
			}
			os.Exit(gate.ExitCode(failed))
		},
	}
}

func init() {
	rootCmd.AddCommand(newGateCmd())
}
