package irfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// ReadText parses whitespace or comma separated sample values. Text after
// '#' on a line is ignored.
func ReadText(r io.Reader) (*Response, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var samples []float64
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}

		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ';' || unicode.IsSpace(r)
		})
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("irfile: line %d: %w", line, err)
			}
			samples = append(samples, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("irfile: read text: %w", err)
	}

	if len(samples) == 0 {
		return nil, ErrEmpty
	}

	return &Response{Samples: samples, Channels: 1, Format: FormatText}, nil
}
