package irfile

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// ReadWAV decodes 16, 24 or 32 bit integer PCM and normalizes samples to
// [-1, 1).
func ReadWAV(r io.ReadSeeker) (*Response, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("irfile: decode wav: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	if !supportedBitDepth(bitDepth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	channels := int(dec.NumChans)
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		channels = buf.Format.NumChannels
	}
	if channels < 1 {
		return nil, ErrInvalidWAV
	}

	frames := len(buf.Data) / channels
	if frames == 0 {
		return nil, ErrEmpty
	}

	scale := 1 / float64(int64(1)<<(bitDepth-1))
	samples := make([]float64, frames)
	for i := range samples {
		samples[i] = float64(buf.Data[i*channels]) * scale
	}

	return &Response{
		Samples:    samples,
		SampleRate: int(dec.SampleRate),
		Channels:   channels,
		Format:     FormatWAV,
	}, nil
}

// WriteWAV encodes samples as mono integer PCM. Values outside [-1, 1] are
// clipped.
func WriteWAV(w io.WriteSeeker, samples []float64, sampleRate, bitDepth int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if !supportedBitDepth(bitDepth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	full := float64(int64(1)<<(bitDepth-1)) - 1
	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = int(math.Round(math.Max(-1, math.Min(1, v)) * full))
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("irfile: encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("irfile: finalize wav: %w", err)
	}

	return nil
}

func supportedBitDepth(bits int) bool {
	return bits == 16 || bits == 24 || bits == 32
}
