// Package density estimates per-channel color likelihoods from scribble
// samples and scores full images against them. It is the statistical core of
// the matting pipeline: a masked histogram estimator with optional median
// smoothing, and a joint scorer that multiplies per-channel probabilities
// under a channel-independence assumption.
package density

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Levels is the number of discrete intensity levels per 8-bit channel.
const Levels = 256

// Table is a discrete probability distribution over the 256 intensity
// levels of one color channel for one class (foreground or background).
// Entries are non-negative and sum to 1.0 within floating-point tolerance.
type Table [Levels]float64

// Sum returns the total probability mass of the table.
func (t *Table) Sum() float64 {
	return floats.Sum(t[:])
}

// Values returns a copy of the table as an ordered slice of 256 floats.
func (t *Table) Values() []float64 {
	v := make([]float64, Levels)
	copy(v, t[:])
	return v
}

// WriteTSV writes the table as a single tab-separated line of 256 values.
func (t *Table) WriteTSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, v := range t {
		if i > 0 {
			if err := bw.WriteByte('\t'); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
			return err
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

// ParseTable parses one tab-separated line of 256 values, the inverse of
// WriteTSV.
func ParseTable(line string) (Table, error) {
	var t Table
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(fields) != Levels {
		return t, fmt.Errorf("expected %d values, got %d", Levels, len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return t, fmt.Errorf("bucket %d: %w", i, err)
		}
		t[i] = v
	}
	return t, nil
}

// normalize scales the histogram counts by their total mass so the result
// sums to 1.0. The caller guarantees mass > 0.
func normalize(counts [Levels]float64, mass float64) Table {
	floats.Scale(1/mass, counts[:])
	return counts
}
