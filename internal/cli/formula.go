package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/metasystem/steering/pkg/cyber"
	apperrors "github.com/metasystem/steering/pkg/errors"
)

// powerCommand creates the power command.
func (c *CLI) powerCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "power V A C",
		Short:   "Compute the total power V·A·C of an object",
		Example: "  steering power 100 0.8 10",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args, "V", "A", "C")
			if err != nil {
				return err
			}
			printKeyValue(c.out, "Total power", formatFloat(cyber.TotalPower(v[0], v[1], v[2])))
			return nil
		},
	}
}

// integrityCommand creates the integrity command.
func (c *CLI) integrityCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "integrity V1 V2",
		Long:    "Compute the axiological integrity of two value vectors. Pass negative values after --.",
		Short:   "Compute the axiological integrity of two value vectors",
		Example: "  steering integrity 0.9 0.7",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args, "V1", "V2")
			if err != nil {
				return err
			}
			printKeyValue(c.out, "Integrity", formatFloat(cyber.AxiologicalIntegrity(v[0], v[1])))
			return nil
		},
	}
}

// distortionCommand creates the distortion command.
func (c *CLI) distortionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "distortion IN REAL",
		Short:   "Compare incoming information with reality",
		Example: "  steering distortion 2 1",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args, "IN", "REAL")
			if err != nil {
				return err
			}
			a := cyber.AnalyzeDistortion(v[0], v[1])
			printKeyValue(c.out, "Coefficient", formatFloat(a.Coefficient))
			printKeyValue(c.out, "Distorted", strconv.FormatBool(a.IsDistorted))
			printKeyValue(c.out, "Type", string(a.Classification))
			return nil
		},
	}
}

func parseFloats(args []string, names ...string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, arg := range args {
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "%s must be a number, got %q", names[i], arg)
		}
		out[i] = f
	}
	return out, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
