package cli

import (
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-freqresp/internal/irfile"
	"github.com/cwbudde/algo-freqresp/internal/report"
	"github.com/cwbudde/algo-freqresp/measure/decay"
)

func newDecayCommand(a *app) *cobra.Command {
	var (
		ignoreFileRate bool
		step           int
	)

	cmd := &cobra.Command{
		Use:   "decay <ir-file>",
		Short: "Print the energy decay curve and reverberation times of an impulse response",
		Long: `Print the Schroeder energy decay curve of an impulse response, measured
from its peak, with EDT, T20, T30 and clarity in the report metadata.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ir, err := irfile.Load(args[0])
			if err != nil {
				return err
			}
			cfg, err := a.responseConfig(ir, ignoreFileRate)
			if err != nil {
				return err
			}

			m, err := decay.Analyze(ir.Samples, cfg.SampleRate)
			if err != nil {
				return err
			}
			edc, err := decay.EnergyDecayCurve(ir.Samples[m.Peak:])
			if err != nil {
				return err
			}

			step = max(step, 1)
			s := report.Series{
				Title:     "energy decay",
				XLabel:    "time_s",
				YLabel:    "level_db",
				Precision: 4,
				Meta: map[string]string{
					"file":        args[0],
					"sample_rate": strconv.FormatFloat(cfg.SampleRate, 'f', -1, 64),
					"peak_sample": strconv.Itoa(m.Peak),
					"onset":       strconv.Itoa(m.Onset),
					"edt_s":       strconv.FormatFloat(m.EDT, 'f', 4, 64),
					"t20_s":       strconv.FormatFloat(m.T20, 'f', 4, 64),
					"t30_s":       strconv.FormatFloat(m.T30, 'f', 4, 64),
					"rt60_s":      strconv.FormatFloat(m.RT60, 'f', 4, 64),
					"c50_db":      strconv.FormatFloat(m.C50, 'f', 2, 64),
					"c80_db":      strconv.FormatFloat(m.C80, 'f', 2, 64),
				},
			}
			for i := 0; i < len(edc); i += step {
				s.Points = append(s.Points, report.Point{X: float64(i) / cfg.SampleRate, Y: edc[i]})
			}

			a.log.Info("measured decay",
				zap.String("file", args[0]),
				zap.Float64("rt60_s", m.RT60),
				zap.Int("peak_sample", m.Peak))
			if m.RT60 == 0 {
				a.log.Warn("energy decay does not reach -25 dB, no reverberation time", zap.String("file", args[0]))
			}

			return report.Write(a.stdout, a.cfg.Format(), s)
		},
	}

	cmd.Flags().BoolVar(&ignoreFileRate, "ignore-file-rate", false,
		"use --sample-rate even when the file stores a sample rate")
	cmd.Flags().IntVar(&step, "step", 64, "print every step-th sample of the curve")
	return cmd
}

// trimOnset drops the silence before the direct sound.
func (a *app) trimOnset(name string, ir *irfile.Response) error {
	onset, err := decay.Onset(ir.Samples, decay.DefaultOnsetDB)
	if err != nil {
		return err
	}
	if onset > 0 {
		a.log.Debug("trimmed pre-delay", zap.String("file", name), zap.Int("samples", onset))
		ir.Samples = ir.Samples[onset:]
	}
	return nil
}
