package signal

import (
	"errors"
	"math"
	"testing"
)

func TestImpulse(t *testing.T) {
	x, err := Impulse(8, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range x {
		want := 0.0
		if i == 3 {
			want = 1
		}
		if v != want {
			t.Fatalf("index %d: got %v, want %v", i, v, want)
		}
	}

	x, err = Impulse(4, 9)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range x {
		if v != 0 {
			t.Fatal("out-of-range impulse should be silent")
		}
	}

	if _, err := Impulse(0, 0); err == nil {
		t.Fatal("expected error for zero length")
	}
}

func TestDC(t *testing.T) {
	x, err := DC(-0.5, 5)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range x {
		if v != -0.5 {
			t.Fatalf("got %v, want -0.5", v)
		}
	}
	if _, err := DC(1, -1); err == nil {
		t.Fatal("expected error for negative length")
	}
}

func TestDecayEnvelopeSlope(t *testing.T) {
	const (
		sr   = 1000.0
		rate = 60.0
	)
	src := make([]float64, 1001)
	for i := range src {
		src[i] = 1
	}
	dst := make([]float64, len(src))
	if err := DecayEnvelope(dst, src, sr, rate); err != nil {
		t.Fatal(err)
	}

	if dst[0] != 1 {
		t.Fatalf("envelope start=%v, want 1", dst[0])
	}
	// one second later the level is 60 dB down
	gotDB := 20 * math.Log10(dst[1000])
	if math.Abs(gotDB+rate) > 1e-9 {
		t.Fatalf("level after 1s = %v dB, want %v", gotDB, -rate)
	}
}

func TestDecayEnvelopeInPlace(t *testing.T) {
	buf := []float64{2, 2, 2}
	if err := DecayEnvelope(buf, buf, 1, 20); err != nil {
		t.Fatal(err)
	}
	want := []float64{2, 0.2, 0.02}
	for i := range want {
		if math.Abs(buf[i]-want[i]) > 1e-12 {
			t.Fatalf("index %d: got %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestDecayEnvelopeErrors(t *testing.T) {
	if err := DecayEnvelope(make([]float64, 2), make([]float64, 3), 48000, 10); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err=%v, want ErrLengthMismatch", err)
	}
	if err := DecayEnvelope(nil, nil, 0, 10); err == nil {
		t.Fatal("expected sample rate error")
	}
}

func TestExponentialDecayIR(t *testing.T) {
	ir, err := ExponentialDecayIR(64, 48000, 6000)
	if err != nil {
		t.Fatal(err)
	}
	if ir[0] != 1 {
		t.Fatalf("ir[0]=%v, want 1", ir[0])
	}
	for i := 2; i < len(ir); i++ {
		if math.Abs(ir[i]) >= math.Abs(ir[i-1]) {
			t.Fatalf("not decaying at %d", i)
		}
	}
	if _, err := ExponentialDecayIR(0, 48000, 10); err == nil {
		t.Fatal("expected length error")
	}
}
