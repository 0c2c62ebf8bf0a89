package response

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-freqresp/dsp/core"
	"github.com/cwbudde/algo-freqresp/dsp/rfft"
	"github.com/cwbudde/algo-freqresp/dsp/signal"
	"github.com/cwbudde/algo-freqresp/dsp/window"
	"github.com/cwbudde/algo-freqresp/internal/testutil"
)

func mustNew(t *testing.T, log2n int, opts ...Option) *Analyzer {
	t.Helper()
	a, err := New(log2n, opts...)
	if err != nil {
		t.Fatalf("New(%d): %v", log2n, err)
	}
	return a
}

func TestNewRejectsInvalidLength(t *testing.T) {
	for _, log2n := range []int{-3, 0, MaxLog2Length + 1} {
		a, err := New(log2n)
		if !errors.Is(err, ErrInvalidLength) {
			t.Fatalf("New(%d) err=%v, want ErrInvalidLength", log2n, err)
		}
		if a != nil {
			t.Fatalf("New(%d) returned a partial analyzer", log2n)
		}
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	a, err := New(8, WithBackend(rfft.Backend(99)))
	if !errors.Is(err, rfft.ErrUnknownBackend) {
		t.Fatalf("err=%v, want rfft.ErrUnknownBackend", err)
	}
	if a != nil {
		t.Fatal("expected nil analyzer on failure")
	}
}

func TestNewSizes(t *testing.T) {
	a := mustNew(t, 10)
	if a.Len() != 1024 || a.Log2Len() != 10 {
		t.Fatalf("Len=%d Log2Len=%d", a.Len(), a.Log2Len())
	}
	if got := mustNew(t, 1).Len(); got != 2 {
		t.Fatalf("smallest analyzer Len=%d, want 2", got)
	}
}

// The analyzer does not track whether Transform ran; its zeroed buffers read
// as -Inf dB everywhere.
func TestMagnitudeBeforeTransformIsNegInf(t *testing.T) {
	a := mustNew(t, 8)
	for _, f := range []float64{0, 100, 1000, 10000, 22050} {
		if got := a.MagnitudeDB(f, 44100); !math.IsInf(got, -1) {
			t.Fatalf("f=%v: got %v, want -Inf", f, got)
		}
	}
}

func TestZeroSignalIsNegInf(t *testing.T) {
	a := mustNew(t, 9)
	for _, length := range []int{0, 1, 100, 512, 2000} {
		if err := a.Transform(make([]float64, length)); err != nil {
			t.Fatal(err)
		}
		for _, f := range []float64{0, 20, 440, 5000, 20000} {
			if got := a.MagnitudeDB(f, 48000); !math.IsInf(got, -1) {
				t.Fatalf("len=%d f=%v: got %v, want -Inf", length, f, got)
			}
		}
	}
}

func TestDCBinIsUnnormalizedWindowedSum(t *testing.T) {
	const (
		log2n = 10
		n     = 1 << log2n
		amp   = 0.3
	)
	a := mustNew(t, log2n)

	x, err := signal.DC(amp, n)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Transform(x); err != nil {
		t.Fatal(err)
	}

	sum := 0.0
	for _, w := range window.HalfHann(n) {
		sum += amp * w
	}
	// the trailing half-Hann taper sums to (N+1)/2
	if math.Abs(sum-amp*(n+1)/2) > 1e-9 {
		t.Fatalf("taper sum=%v, want %v", sum, amp*(n+1)/2)
	}

	got := a.MagnitudeDB(0, 48000)
	want := core.LinearToDB(sum)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("DC=%v dB, want %v dB", got, want)
	}

	bins := a.Bins()
	if math.Abs(real(bins[0])-sum) > 1e-9 {
		t.Fatalf("Bins()[0]=%v, want %v", bins[0], sum)
	}
}

func TestImpulseIsFlat(t *testing.T) {
	const sr = 44100.0
	a := mustNew(t, 10)

	if err := a.Transform([]float64{1}); err != nil {
		t.Fatal(err)
	}

	for f := 10.0; f < 20000; f *= 1.1 {
		got := a.MagnitudeDB(f, sr)
		if math.Abs(got) > 1e-9 {
			t.Fatalf("f=%v: %v dB, want 0 dB", f, got)
		}
	}
}

func TestNyquistReadsPackedImaginarySlot(t *testing.T) {
	const sr = 10.0
	a := mustNew(t, 3) // N = 8

	// tapered to {0.5, 1}: DC = 1.5, Nyquist = 0.5 - 1 = -0.5
	if err := a.Transform([]float64{1, 1}); err != nil {
		t.Fatal(err)
	}

	if idx := a.Bin(8, sr); idx != 8 {
		t.Fatalf("Bin(8)=%d, want 8", idx)
	}
	if got, want := a.MagnitudeDB(8, sr), core.LinearToDB(0.5); math.Abs(got-want) > 1e-12 {
		t.Fatalf("Nyquist=%v dB, want %v dB", got, want)
	}
	if got, want := a.MagnitudeDB(0, sr), core.LinearToDB(1.5); math.Abs(got-want) > 1e-12 {
		t.Fatalf("DC=%v dB, want %v dB", got, want)
	}
	// slots past N/2 are never written by Transform
	if got := a.MagnitudeDB(5, sr); !math.IsInf(got, -1) {
		t.Fatalf("bin 5=%v, want -Inf", got)
	}
}

func TestMagnitudeOutOfRangeIsNaN(t *testing.T) {
	a := mustNew(t, 3)
	if err := a.Transform([]float64{1}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		f    float64
		sr   float64
	}{
		{"beyond N", 9, 10},
		{"negative", -3, 10},
		{"zero sample rate", 1, 0},
		{"negative sample rate", 1, -48000},
		{"nan frequency", math.NaN(), 48000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.MagnitudeDB(tt.f, tt.sr); !math.IsNaN(got) {
				t.Fatalf("got %v, want NaN", got)
			}
		})
	}
}

func TestBinRounds(t *testing.T) {
	a := mustNew(t, 10) // N/2+1 = 513
	tests := []struct {
		f    float64
		want int
	}{
		{0, 0},
		{21, 0},    // 0.49 bins
		{22, 1},    // 0.51 bins
		{1000, 23}, // 23.27 bins
		{22050, 513},
	}
	for _, tt := range tests {
		if got := a.Bin(tt.f, 44100); got != tt.want {
			t.Errorf("Bin(%v)=%d, want %d", tt.f, got, tt.want)
		}
	}
}

func TestTransformReplacesPreviousResult(t *testing.T) {
	a := mustNew(t, 8)

	if err := a.Transform(testutil.DeterministicNoise(3, 1, 256)); err != nil {
		t.Fatal(err)
	}
	if err := a.Transform(nil); err != nil {
		t.Fatal(err)
	}

	for f := 0.0; f <= 24000; f += 500 {
		if got := a.MagnitudeDB(f, 48000); !math.IsInf(got, -1) {
			t.Fatalf("f=%v: stale value %v", f, got)
		}
	}
}

func TestTransformDoesNotMutateInput(t *testing.T) {
	a := mustNew(t, 6)
	in := testutil.Ones(100)
	if err := a.Transform(in); err != nil {
		t.Fatal(err)
	}
	for i, v := range in {
		if v != 1 {
			t.Fatalf("input mutated at %d: %v", i, v)
		}
	}
}

func TestTransformTruncatesLongInput(t *testing.T) {
	a := mustNew(t, 6)
	b := mustNew(t, 6)

	long := testutil.DeterministicNoise(11, 1, 300)
	if err := a.Transform(long); err != nil {
		t.Fatal(err)
	}
	if err := b.Transform(long[:64]); err != nil {
		t.Fatal(err)
	}

	for f := 0.0; f < 24000; f += 250 {
		ga, gb := a.MagnitudeDB(f, 48000), b.MagnitudeDB(f, 48000)
		if ga != gb {
			t.Fatalf("f=%v: %v != %v", f, ga, gb)
		}
	}
}

func TestTransformFloat32(t *testing.T) {
	a := mustNew(t, 8)
	b := mustNew(t, 8)

	in32 := []float32{0.25, -0.5, 1, 0.125}
	if err := a.TransformFloat32(in32); err != nil {
		t.Fatal(err)
	}
	if err := b.Transform(core.Float32To64(in32)); err != nil {
		t.Fatal(err)
	}

	for f := 0.0; f < 22050; f += 100 {
		if a.MagnitudeDB(f, 44100) != b.MagnitudeDB(f, 44100) {
			t.Fatalf("f=%v: float32 path differs", f)
		}
	}
}

func TestBinsMatchDFTOfConditionedSignal(t *testing.T) {
	const log2n = 7
	a := mustNew(t, log2n)

	in := testutil.DeterministicNoise(5, 1, 90)
	if err := a.Transform(in); err != nil {
		t.Fatal(err)
	}

	want := testutil.DFT(window.AdjustLength(in, 1<<log2n))
	got := a.Bins()
	if len(got) != len(want) {
		t.Fatalf("len=%d, want %d", len(got), len(want))
	}
	for k := range want {
		if math.Abs(real(got[k])-real(want[k])) > 1e-9 || math.Abs(imag(got[k])-imag(want[k])) > 1e-9 {
			t.Fatalf("bin %d = %v, want %v", k, got[k], want[k])
		}
	}
}

func TestMagnitudesMatchBins(t *testing.T) {
	a := mustNew(t, 6)
	if err := a.Transform(testutil.DeterministicNoise(9, 1, 50)); err != nil {
		t.Fatal(err)
	}

	bins := a.Bins()
	dst := make([]float64, 0, 64)
	got := a.Magnitudes(dst)
	if len(got) != len(bins) {
		t.Fatalf("len=%d, want %d", len(got), len(bins))
	}
	if &got[0] != &dst[:1][0] {
		t.Fatal("Magnitudes did not reuse dst capacity")
	}
	for k, b := range bins {
		if want := math.Hypot(real(b), imag(b)); math.Abs(got[k]-want) > 1e-12 {
			t.Fatalf("bin %d = %v, want %v", k, got[k], want)
		}
	}

	if grown := a.Magnitudes(make([]float64, 3)); len(grown) != 33 {
		t.Fatalf("len=%d, want 33", len(grown))
	}
}

func TestBackendsAgree(t *testing.T) {
	ir, err := signal.ExponentialDecayIR(3000, 48000, 200)
	if err != nil {
		t.Fatal(err)
	}

	var ref []float64
	for _, backend := range rfft.Backends() {
		a := mustNew(t, 12, WithBackend(backend))
		if err := a.Transform(ir); err != nil {
			t.Fatal(err)
		}

		var got []float64
		for f := 20.0; f < 20000; f *= 1.05 {
			got = append(got, a.MagnitudeDB(f, 48000))
		}
		testutil.RequireFinite(t, got)

		if ref == nil {
			ref = got
			continue
		}
		testutil.RequireDBNearlyEqual(t, got, ref, 1e-6)
	}
}
