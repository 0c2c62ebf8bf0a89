package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-freqresp/dsp/spectrum"
	"github.com/cwbudde/algo-freqresp/internal/report"
)

func newGridCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "grid",
		Short: "Print the log-spaced frequency grid",
		Long: `Print the plot grid: point i of n sits at min * (max/min)^(i/n), so the
grid starts at --min-freq and stops short of --max-freq.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			freqs, err := spectrum.LogSpaced(a.cfg.MinFreq, a.cfg.MaxFreq, a.cfg.Points)
			if err != nil {
				return err
			}

			s := report.Series{
				Title:     "frequency grid",
				XLabel:    "index",
				YLabel:    "frequency_hz",
				Precision: 2,
				Meta: map[string]string{
					"min_freq": strconv.FormatFloat(a.cfg.MinFreq, 'f', -1, 64),
					"max_freq": strconv.FormatFloat(a.cfg.MaxFreq, 'f', -1, 64),
					"points":   strconv.Itoa(a.cfg.Points),
				},
				Points: make([]report.Point, len(freqs)),
			}
			for i, f := range freqs {
				s.Points[i] = report.Point{X: float64(i), Y: f}
			}

			return report.Write(a.stdout, a.cfg.Format(), s)
		},
	}
}
