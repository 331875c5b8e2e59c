package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/craigbalding/sandboxscore/pkg/config"
	"github.com/craigbalding/sandboxscore/pkg/findings"
	"github.com/craigbalding/sandboxscore/pkg/gate"
	"github.com/craigbalding/sandboxscore/pkg/grading"
	"github.com/craigbalding/sandboxscore/pkg/policy"
	"github.com/craigbalding/sandboxscore/pkg/probes"
	"github.com/craigbalding/sandboxscore/pkg/report"
)

// exitUsage is the exit code for configuration errors, distinct from a
// gate failure (1) and a pass (0).
const exitUsage = 2

func newScanCmd() *cobra.Command {
	var (
		profileFlag string
		formatFlag  string
		failOn      string
		outputFile  string
		pretty      bool
		workers     int
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run registered probes and grade the results",
		Long: `Runs every registered probe exactly once, grades the findings under
the active profile and renders the report. With --fail-on, evaluates the
gate expression against the computed report and exits 1 when it holds.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
				os.Exit(exitUsage)
			}
			if !cmd.Flags().Changed("profile") {
				profileFlag = cfg.Profile
			}
			if !cmd.Flags().Changed("format") {
				formatFlag = cfg.Format
			}
			if !cmd.Flags().Changed("fail-on") {
				failOn = cfg.FailOn
			}

			prof, err := policy.ParseProfile(profileFlag)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(exitUsage)
			}

			// Parse the gate before probing: a broken gate must fail
			// loudly, and probes must run exactly once.
			var gateExpr *gate.Expr
			if failOn != "" {
				parsed, err := gate.Parse(failOn)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					os.Exit(exitUsage)
				}
				gateExpr = &parsed
			}

			store := findings.NewStore(prof)
			runner := probes.Default
			if workers > 1 {
				runner.MaxWorkers = workers
			}
			if err := runner.Run(cmd.Context(), store); err != nil {
				fmt.Fprintf(os.Stderr, "Error running probes: %v\n", err)
				os.Exit(exitUsage)
			}

			fs := store.Snapshot()
			result := grading.Compute(fs, prof)

			var out io.Writer = os.Stdout
			var outFile *os.File
			if outputFile != "" {
				file, err := os.Create(outputFile)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", outputFile, err)
					os.Exit(exitUsage)
				}
				out = file
				outFile = file
			}

			switch formatFlag {
			case "json":
				doc := report.Build(fs, result)
				if err := report.WriteJSON(out, doc, pretty); err != nil {
					fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
					os.Exit(exitUsage)
				}
			case "lines":
				report.WriteLines(out, fs)
			case "text":
				report.WriteSummary(out, fs, result)
			default:
				fmt.Fprintf(os.Stderr, "Error: unknown format %q (want text, json or lines)\n", formatFlag)
				os.Exit(exitUsage)
			}

			// Close before the gate decides the exit code: os.Exit
			// skips deferred calls.
			if outFile != nil {
				if err := outFile.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Error closing %s: %v\n", outputFile, err)
					os.Exit(exitUsage)
				}
			}

			if gateExpr != nil {
				failed := gateExpr.Eval(result)
				if failed {
					fmt.Fprintf(os.Stderr, "Gate %q failed (grade %s, %d points, %d exposures)\n",
						failOn, result.FinalGrade, result.TotalPoints, result.Exposures)
				}
				os.Exit(gate.ExitCode(failed))
			}
		},
	}

	cmd.Flags().StringVarP(&profileFlag, "profile", "p", "personal", "Risk profile: personal|professional|sensitive")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text|json|lines")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "Gate expression, e.g. score>=50 or grade>=C")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent JSON output")
	cmd.Flags().IntVar(&workers, "workers", 1, "Run probes concurrently with this many workers")

	return cmd
}

func init() {
	rootCmd.AddCommand(newScanCmd())
}
