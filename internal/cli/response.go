package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-freqresp/dsp/core"
	"github.com/cwbudde/algo-freqresp/dsp/spectrum"
	"github.com/cwbudde/algo-freqresp/internal/irfile"
	"github.com/cwbudde/algo-freqresp/internal/report"
	"github.com/cwbudde/algo-freqresp/measure/response"
)

var (
	ErrSampleRateMismatch = errors.New("cli: impulse responses have different sample rates")
	ErrToleranceExceeded  = errors.New("cli: responses differ by more than the tolerance")
)

func newResponseCommand(a *app) *cobra.Command {
	var ignoreFileRate, trim bool

	cmd := &cobra.Command{
		Use:   "response <ir-file>",
		Short: "Print the magnitude response of an impulse response file",
		Long: `Print the magnitude response in dB of a WAV, MP3 or text impulse response
on the configured log-spaced grid. The sample rate stored in the file
replaces --sample-rate unless --ignore-file-rate is given. With --trim the
samples before the direct sound (the first sample within 20 dB of the peak)
are dropped first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ir, err := irfile.Load(args[0])
			if err != nil {
				return err
			}
			if trim {
				if err := a.trimOnset(args[0], ir); err != nil {
					return err
				}
			}

			cfg, err := a.responseConfig(ir, ignoreFileRate)
			if err != nil {
				return err
			}

			curve, db, err := a.analyze(cfg, args[0], ir)
			if err != nil {
				return err
			}
			sum, err := curve.Analyzer().Summarize(cfg.SampleRate)
			if err != nil {
				return err
			}

			s := a.series("magnitude response", cfg, curve.Frequencies(), db)
			s.Meta["file"] = args[0]
			s.Meta["peak_hz"] = strconv.FormatFloat(sum.PeakFreq, 'f', 1, 64)
			s.Meta["peak_db"] = strconv.FormatFloat(sum.PeakDB, 'f', 2, 64)
			s.Meta["centroid_hz"] = strconv.FormatFloat(sum.Centroid, 'f', 1, 64)
			s.Meta["flatness"] = strconv.FormatFloat(sum.Flatness, 'f', 4, 64)
			s.Meta["rolloff_hz"] = strconv.FormatFloat(sum.Rolloff, 'f', 1, 64)
			return report.Write(a.stdout, a.cfg.Format(), s)
		},
	}

	cmd.Flags().BoolVar(&ignoreFileRate, "ignore-file-rate", false,
		"use --sample-rate even when the file stores a sample rate")
	cmd.Flags().BoolVar(&trim, "trim", false, "drop the silence before the direct sound")
	return cmd
}

func newCompareCommand(a *app) *cobra.Command {
	var (
		ignoreFileRate bool
		tolerance      float64
	)

	cmd := &cobra.Command{
		Use:   "compare <ir-file-a> <ir-file-b>",
		Short: "Print the dB difference between two impulse responses",
		Long: `Print response(a) - response(b) in dB on the configured grid together with
the largest absolute difference. With --tolerance the command fails when
that difference, in dB, exceeds the tolerance.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			irA, err := irfile.Load(args[0])
			if err != nil {
				return err
			}
			irB, err := irfile.Load(args[1])
			if err != nil {
				return err
			}
			if !ignoreFileRate && irA.SampleRate > 0 && irB.SampleRate > 0 && irA.SampleRate != irB.SampleRate {
				return fmt.Errorf("%w: %d Hz and %d Hz", ErrSampleRateMismatch, irA.SampleRate, irB.SampleRate)
			}

			rateSource := irA
			if rateSource.SampleRate == 0 {
				rateSource = irB
			}
			cfg, err := a.responseConfig(rateSource, ignoreFileRate)
			if err != nil {
				return err
			}

			curve, dbA, err := a.analyze(cfg, args[0], irA)
			if err != nil {
				return err
			}
			_, dbB, err := a.analyze(cfg, args[1], irB)
			if err != nil {
				return err
			}

			maxDiff, err := response.MaxDiffDB(dbA, dbB)
			if err != nil {
				return err
			}

			diff := make([]float64, len(dbA))
			for i := range diff {
				diff[i] = dbA[i] - dbB[i]
			}

			s := a.series("response difference", cfg, curve.Frequencies(), diff)
			s.YLabel = "difference_db"
			s.Meta["files"] = args[0] + " - " + args[1]
			s.Meta["max_diff_db"] = strconv.FormatFloat(maxDiff, 'f', 2, 64)
			if err := report.Write(a.stdout, a.cfg.Format(), s); err != nil {
				return err
			}

			a.log.Info("compared responses", zap.Float64("max_diff_db", maxDiff))
			if cmd.Flags().Changed("tolerance") && maxDiff > tolerance {
				return fmt.Errorf("%w: %.2f dB > %.2f dB", ErrToleranceExceeded, maxDiff, tolerance)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ignoreFileRate, "ignore-file-rate", false,
		"use --sample-rate even when the files store a sample rate")
	cmd.Flags().Float64Var(&tolerance, "tolerance", math.Inf(1),
		"fail when the largest difference exceeds this level in dB")
	return cmd
}

// responseConfig derives the analyzer settings for ir from the loaded
// configuration.
func (a *app) responseConfig(ir *irfile.Response, ignoreFileRate bool) (response.Config, error) {
	cfg, err := a.cfg.Response()
	if err != nil {
		return response.Config{}, err
	}

	if !ignoreFileRate && ir.SampleRate > 0 && float64(ir.SampleRate) != cfg.SampleRate {
		a.log.Debug("using sample rate from file",
			zap.Int("file_rate", ir.SampleRate),
			zap.Float64("configured_rate", cfg.SampleRate))
		cfg.SampleRate = float64(ir.SampleRate)
	}

	return cfg, cfg.Validate()
}

// analyze runs one impulse response through a fresh curve and applies the
// configured smoothing. The returned curve holds the spectrum of ir.
func (a *app) analyze(cfg response.Config, name string, ir *irfile.Response) (*response.Curve, []float64, error) {
	curve, err := response.NewCurve(cfg)
	if err != nil {
		return nil, nil, err
	}

	n := curve.Analyzer().Len()
	if len(ir.Samples) > n {
		a.log.Warn("impulse response truncated to FFT length",
			zap.String("file", name),
			zap.Int("samples", len(ir.Samples)),
			zap.Int("fft_size", n),
			zap.Int("fft_log2_needed", core.Log2(core.NextPowerOf2(len(ir.Samples)))))
	}

	db, err := curve.Response(ir.Samples)
	if err != nil {
		return nil, nil, err
	}
	freqs := curve.Frequencies()

	if a.cfg.Smooth > 0 {
		db, err = spectrum.SmoothFractionalOctave(freqs, db, a.cfg.Smooth)
		if err != nil {
			return nil, nil, fmt.Errorf("smooth: %w", err)
		}
	}

	a.log.Info("analyzed impulse response",
		zap.String("file", name),
		zap.String("format", string(ir.Format)),
		zap.Int("samples", len(ir.Samples)),
		zap.Int("fft_size", n),
		zap.Float64("sample_rate", cfg.SampleRate))

	return curve, db, nil
}

func (a *app) series(title string, cfg response.Config, freqs, values []float64) report.Series {
	s := report.Series{
		Title:     title,
		XLabel:    "frequency_hz",
		YLabel:    "magnitude_db",
		Precision: 2,
		Meta: map[string]string{
			"fft_size":    strconv.Itoa(1 << cfg.Log2Length),
			"sample_rate": strconv.FormatFloat(cfg.SampleRate, 'f', -1, 64),
			"backend":     cfg.Backend.String(),
		},
		Points: make([]report.Point, len(freqs)),
	}
	if a.cfg.Smooth > 0 {
		s.Meta["smoothing"] = "1/" + strconv.Itoa(a.cfg.Smooth) + " octave"
	}
	for i, f := range freqs {
		s.Points[i] = report.Point{X: f, Y: values[i]}
	}
	return s
}
