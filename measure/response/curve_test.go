package response

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-freqresp/dsp/signal"
	"github.com/cwbudde/algo-freqresp/dsp/spectrum"
	"github.com/cwbudde/algo-freqresp/internal/testutil"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero log2", func(c *Config) { c.Log2Length = 0 }, ErrInvalidLength},
		{"huge log2", func(c *Config) { c.Log2Length = 40 }, ErrInvalidLength},
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }, ErrInvalidSampleRate},
		{"inf sample rate", func(c *Config) { c.SampleRate = math.Inf(1) }, ErrInvalidSampleRate},
		{"negative min", func(c *Config) { c.MinFreq = -1 }, spectrum.ErrInvalidBounds},
		{"zero max", func(c *Config) { c.MaxFreq = 0 }, spectrum.ErrInvalidBounds},
		{"no points", func(c *Config) { c.Points = 0 }, spectrum.ErrInvalidPoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("err=%v, want %v", err, tt.want)
			}
			if _, err := NewCurve(cfg); !errors.Is(err, tt.want) {
				t.Fatalf("NewCurve err=%v, want %v", err, tt.want)
			}
		})
	}
}

func TestCurveMatchesDirectQueries(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log2Length = 11
	cfg.SampleRate = 48000
	cfg.Points = 300

	c, err := NewCurve(cfg)
	if err != nil {
		t.Fatal(err)
	}

	ir, err := signal.ExponentialDecayIR(1500, cfg.SampleRate, 400)
	if err != nil {
		t.Fatal(err)
	}

	db, err := c.Response(ir)
	if err != nil {
		t.Fatal(err)
	}

	freqs := c.Frequencies()
	if len(db) != len(freqs) || len(freqs) != cfg.Points {
		t.Fatalf("len(db)=%d len(freqs)=%d, want %d", len(db), len(freqs), cfg.Points)
	}

	for i, f := range freqs {
		want := c.Analyzer().MagnitudeDB(f, cfg.SampleRate)
		if db[i] != want {
			t.Fatalf("point %d (%v Hz): curve %v, direct %v", i, f, db[i], want)
		}
	}
}

func TestCurveFrequenciesAreACopy(t *testing.T) {
	c, err := NewCurve(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	f := c.Frequencies()
	f[0] = -1
	if c.Frequencies()[0] != DefaultConfig().MinFreq {
		t.Fatal("Frequencies exposed internal state")
	}
	if c.Config() != DefaultConfig() {
		t.Fatalf("Config()=%+v", c.Config())
	}
}

func TestCurveImpulseIsFlat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log2Length = 10
	cfg.MinFreq = 10
	cfg.MaxFreq = 20000
	cfg.Points = 300

	c, err := NewCurve(cfg)
	if err != nil {
		t.Fatal(err)
	}

	db, err := c.Response([]float64{1})
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, db, make([]float64, len(db)), 1e-9)
}

func TestCurveBeyondFFTRangeIsNaN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log2Length = 3
	cfg.SampleRate = 1000
	cfg.MinFreq = 100
	cfg.MaxFreq = 100000
	cfg.Points = 10

	c, err := NewCurve(cfg)
	if err != nil {
		t.Fatal(err)
	}
	db, err := c.Response([]float64{1})
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(db[len(db)-1]) {
		t.Fatalf("last point=%v, want NaN", db[len(db)-1])
	}
}

func TestMaxDiffDB(t *testing.T) {
	got, err := MaxDiffDB([]float64{1, 2, 3}, []float64{1, 2.1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got) > 1e-9 {
		t.Fatalf("MaxDiffDB=%v, want 0 dB", got)
	}

	same, err := MaxDiffDB([]float64{1, 2}, []float64{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(same, -1) {
		t.Fatalf("identical curves=%v, want -Inf", same)
	}

	inf := math.Inf(-1)
	silent, err := MaxDiffDB([]float64{inf, 1}, []float64{inf, 1})
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(silent, -1) {
		t.Fatalf("matching -Inf entries=%v, want -Inf", silent)
	}

	if _, err := MaxDiffDB([]float64{1}, nil); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
