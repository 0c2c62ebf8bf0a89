package irfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// mp3 frames always decode to interleaved 16-bit little-endian stereo
const mp3FrameBytes = 4

// ReadMP3 decodes an MP3 stream and keeps the left channel. Encoder delay
// shifts the response, so MP3 is only suitable for rough inspection.
func ReadMP3(r io.Reader) (*Response, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("irfile: decode mp3: %w", err)
	}

	samples, err := leftChannel(dec)
	if err != nil {
		return nil, err
	}

	if len(samples) == 0 {
		return nil, ErrEmpty
	}

	return &Response{
		Samples:    samples,
		SampleRate: dec.SampleRate(),
		Channels:   2,
		Format:     FormatMP3,
	}, nil
}

// leftChannel reads interleaved 16-bit little-endian stereo frames until EOF
// and returns the left channel scaled to [-1, 1). A trailing partial frame is
// dropped.
func leftChannel(r io.Reader) ([]float64, error) {
	var samples []float64
	chunk := make([]byte, 8192)
	var pending []byte

	for {
		n, err := r.Read(chunk)
		pending = append(pending, chunk[:n]...)

		whole := len(pending) - len(pending)%mp3FrameBytes
		for i := 0; i < whole; i += mp3FrameBytes {
			left := int16(binary.LittleEndian.Uint16(pending[i : i+2]))
			samples = append(samples, float64(left)/32768)
		}
		pending = pending[whole:]

		if errors.Is(err, io.EOF) {
			return samples, nil
		}
		if err != nil {
			return nil, fmt.Errorf("irfile: read mp3: %w", err)
		}
	}
}
