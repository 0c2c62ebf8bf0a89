// Package cli implements the freqresp command tree.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-freqresp/internal/config"
	"github.com/cwbudde/algo-freqresp/measure/response"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	v          *viper.Viper
	cfg        config.Config
	log        *zap.Logger
	stdout     io.Writer
	stderr     io.Writer
	configFile string
}

// NewRootCommand builds the freqresp command. Reports go to stdout, logs to
// stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		v:      config.New(),
		log:    zap.NewNop(),
		stdout: stdout,
		stderr: stderr,
	}

	root := &cobra.Command{
		Use:   "freqresp",
		Short: "Frequency response analysis of impulse responses",
		Long: `freqresp windows an impulse response with a trailing half-Hann taper,
transforms it with a real FFT and samples the magnitude in dB on a
log-spaced frequency grid.

Settings come from flags, FREQRESP_* environment variables, a YAML config
file and built-in defaults, in that order of precedence.

Examples:
  freqresp response room.wav
  freqresp response --fft-log2 16 --smooth 3 -o csv speaker.wav
  freqresp compare before.wav after.wav --tolerance -40
  freqresp decay --step 480 hall.wav
  freqresp grid --points 10 --min-freq 20
  freqresp taper 8`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	def := response.DefaultConfig()
	f := root.PersistentFlags()
	f.StringVar(&a.configFile, "config", "",
		"config file (default ./freqresp.yaml or <user config dir>/freqresp/freqresp.yaml)")
	f.String("log-level", "info", "log level (debug, info, warn, error)")
	f.StringP("output", "o", "table", "output format (table, json, csv, yaml)")
	f.Int("fft-log2", def.Log2Length, "log2 of the FFT length")
	f.Float64("sample-rate", def.SampleRate, "sample rate in Hz")
	f.Float64("min-freq", def.MinFreq, "lowest grid frequency in Hz")
	f.Float64("max-freq", def.MaxFreq, "upper grid bound in Hz (exclusive)")
	f.Int("points", def.Points, "number of grid points")
	f.String("backend", def.Backend.String(), "FFT backend (algofft, gonum, godsp)")
	f.Int("smooth", 0, "1/N-octave smoothing of the dB curve, 0 disables")

	if err := bindFlags(a.v, f); err != nil {
		panic(err)
	}

	root.AddCommand(
		newResponseCommand(a),
		newCompareCommand(a),
		newDecayCommand(a),
		newGridCommand(a),
		newTaperCommand(a),
	)

	return root
}

// bindFlags binds every flag except --config to the viper key of the same
// name with dashes replaced by underscores.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || bindErr != nil {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

func (a *app) init() error {
	if err := config.ReadFile(a.v, a.configFile); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = newLogger(cfg.Level(), a.stderr)

	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug("using config file", zap.String("path", used))
	}
	a.log.Debug("configuration loaded",
		zap.Int("fft_log2", cfg.FFTLog2),
		zap.Float64("sample_rate", cfg.SampleRate),
		zap.Float64("min_freq", cfg.MinFreq),
		zap.Float64("max_freq", cfg.MaxFreq),
		zap.Int("points", cfg.Points),
		zap.String("backend", cfg.Backend),
		zap.String("output", cfg.Output),
	)

	return nil
}
