package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/basm/cmd/basm/commands/cmdutil"
	"github.com/thoreinstein/basm/internal/config"
	"github.com/thoreinstein/basm/internal/doctor"
	"github.com/thoreinstein/basm/internal/errors"
)

var doctorJSON bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration issues",
	Long: `Run diagnostic checks against the configured targets: rc file
writability, sudoers readability, validator availability, and backup
directory writability.

Exit codes:
  0 - All checks passed
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  # Check the environment
  basm doctor

  # Machine-readable output
  basm doctor --json`,
	RunE: runDoctor,
}

func runDoctor(_ *cobra.Command, _ []string) error {
	return runDoctorWithWriter(os.Stdout)
}

func runDoctorWithWriter(w io.Writer) error {
	cfg := cmdutil.Config()
	report := doctor.NewRunner(doctor.DefaultChecks(cfg)...).Run()

	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "encoding report")
		}
	} else {
		outputDoctorText(w, cfg, report)
	}

	switch {
	case report.Summary.Errors > 0:
		return errors.NewExitError(errors.Newf("%d check(s) failed", report.Summary.Errors), errors.ExitSystem)
	case report.Summary.Warnings > 0:
		return errors.NewExitError(errors.Newf("%d warning(s)", report.Summary.Warnings), errors.ExitUser)
	default:
		return nil
	}
}

func outputDoctorText(w io.Writer, cfg *config.Config, report *doctor.Report) {
	fmt.Fprint(w, doctor.DescribeTargets(cfg))
	fmt.Fprintln(w)

	for _, result := range report.Results {
		fmt.Fprintf(w, "%s %s: %s\n", statusIcon(result.Status), result.Name, result.Message)
		if result.FixHint != "" && result.Status != doctor.SeverityPass {
			fmt.Fprintf(w, "  %s→ %s%s\n", colorGray, result.FixHint, colorReset)
		}
	}

	fmt.Fprintf(w, "\n%d passed, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Warnings, report.Summary.Errors)
}

// statusIcon returns a colored icon for a check status.
func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return colorGreen + "✓" + colorReset
	case doctor.SeverityWarning:
		return colorYellow + "!" + colorReset
	default:
		return colorRed + "✗" + colorReset
	}
}
