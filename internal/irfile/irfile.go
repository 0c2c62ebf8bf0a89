// Package irfile loads impulse responses from WAV, MP3 and plain-text files.
package irfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrEmpty               = errors.New("irfile: impulse response has no samples")
	ErrInvalidWAV          = errors.New("irfile: invalid wav file")
	ErrUnsupportedBitDepth = errors.New("irfile: unsupported bit depth")
	ErrInvalidSampleRate   = errors.New("irfile: sample rate must be > 0")
)

// Format names the container an impulse response was read from.
type Format string

const (
	FormatWAV  Format = "wav"
	FormatMP3  Format = "mp3"
	FormatText Format = "text"
)

// Response is a mono impulse response. Multichannel sources keep only
// their first channel. SampleRate is 0 when the source does not carry one.
type Response struct {
	Samples    []float64
	SampleRate int
	Channels   int
	Format     Format
}

// Load reads the impulse response at path, choosing the decoder from the
// file extension. Unknown extensions are parsed as text.
func Load(path string) (*Response, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("irfile: %w", err)
	}
	defer f.Close()

	var resp *Response
	switch DetectFormat(path) {
	case FormatWAV:
		resp, err = ReadWAV(f)
	case FormatMP3:
		resp, err = ReadMP3(f)
	default:
		resp, err = ReadText(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return resp, nil
}

// DetectFormat maps a file name to a Format by extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return FormatWAV
	case ".mp3":
		return FormatMP3
	default:
		return FormatText
	}
}
