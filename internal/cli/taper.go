package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-freqresp/dsp/window"
	"github.com/cwbudde/algo-freqresp/internal/report"
)

var ErrInvalidTaperLength = errors.New("cli: taper length must be a positive integer")

func newTaperCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "taper <n>",
		Short: "Print the trailing half-Hann taper applied to n-sample responses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("%w: %q", ErrInvalidTaperLength, args[0])
			}

			coeffs := window.HalfHann(n)
			an := window.Analyze(coeffs)

			s := report.Series{
				Title:     "half-hann taper",
				XLabel:    "index",
				YLabel:    "gain",
				Precision: 6,
				Meta: map[string]string{
					"length":             strconv.Itoa(n),
					"coherent_gain":      strconv.FormatFloat(an.CoherentGain, 'f', 6, 64),
					"enbw_bins":          strconv.FormatFloat(an.ENBW, 'f', 4, 64),
					"bandwidth_3db_bins": strconv.FormatFloat(an.Bandwidth3dB, 'f', 4, 64),
					"scallop_loss_db":    strconv.FormatFloat(an.ScallopLossdB, 'f', 4, 64),
				},
				Points: make([]report.Point, n),
			}
			for i, c := range coeffs {
				s.Points[i] = report.Point{X: float64(i), Y: c}
			}

			return report.Write(a.stdout, a.cfg.Format(), s)
		},
	}
}
