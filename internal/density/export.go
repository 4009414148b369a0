package density

import (
	"bufio"
	"fmt"
	"io"
)

// WriteDensitiesTSV writes six tab-separated lines of 256 values each, in
// channel-major order with the foreground table before the background table
// for each channel:
//
//	ch0 fg, ch0 bg, ch1 fg, ch1 bg, ch2 fg, ch2 bg
//
// The layout matches the dump consumed by external plotting scripts.
func WriteDensitiesTSV(w io.Writer, fg, bg [3]Table) error {
	for c := 0; c < 3; c++ {
		if err := fg[c].WriteTSV(w); err != nil {
			return fmt.Errorf("channel %d foreground: %w", c, err)
		}
		if err := bg[c].WriteTSV(w); err != nil {
			return fmt.Errorf("channel %d background: %w", c, err)
		}
	}
	return nil
}

// ReadDensitiesTSV parses the six-line layout written by WriteDensitiesTSV.
func ReadDensitiesTSV(r io.Reader) (fg, bg [3]Table, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for c := 0; c < 3; c++ {
		for k := 0; k < 2; k++ {
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return fg, bg, err
				}
				return fg, bg, fmt.Errorf("expected 6 density lines, got %d", c*2+k)
			}
			t, err := ParseTable(scanner.Text())
			if err != nil {
				return fg, bg, fmt.Errorf("line %d: %w", c*2+k+1, err)
			}
			if k == 0 {
				fg[c] = t
			} else {
				bg[c] = t
			}
		}
	}
	return fg, bg, nil
}
