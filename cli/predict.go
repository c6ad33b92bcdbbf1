package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"heattreat/calculator"
)

type PredictOptions struct {
	*RootOptions
	G0     float64
	Sigma  float64
	Format string // "json" | "text"
}

var ValidFormats = []string{"text", "json"}

func NewPredictCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PredictOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict final grain size and annealing time",
		Example: "  heattreat predict --g0 10 --sigma 500\n" +
			"  heattreat predict --g0 10 --sigma 500 --format json",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().Float64Var(&opts.G0, "g0", 0, "initial grain size in μm")
	cmd.Flags().Float64Var(&opts.Sigma, "sigma", 0, "target yield strength in MPa")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	_ = cmd.MarkFlagRequired("g0")
	_ = cmd.MarkFlagRequired("sigma")

	return cmd
}

func runPredict(w io.Writer, opts *PredictOptions) error {
	if !isValidFormat(opts.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
	}
	calc := calculator.NewCalculator(opts.cfg.Steel, opts.cfg.Policy)
	plan, err := calc.Plan(opts.G0, opts.Sigma)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}
	return writePlanText(w, plan, calc.Material().Parameter.AnnealingTemperature)
}

func writePlanText(w io.Writer, plan calculator.Plan, temperature float64) error {
	_, err := fmt.Fprintf(w, `material:             %s
initial grain size:   %.2f μm
target strength:      %.2f MPa
final grain size:     %.2f μm
annealing time:       %.2f h at %.0f°C
`, plan.Material, plan.InitialGrainSize, plan.TargetStrength, plan.FinalGrainSize, plan.AnnealingTime, temperature)
	return err
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
