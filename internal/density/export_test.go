package density

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleTable(seed int) Table {
	var counts [Levels]float64
	for i := range counts {
		counts[i] = float64((i*seed)%17 + 1)
	}
	var mass float64
	for _, c := range counts {
		mass += c
	}
	return normalize(counts, mass)
}

func TestTableTSVRoundTrip(t *testing.T) {
	orig := sampleTable(3)

	var buf bytes.Buffer
	require.NoError(t, orig.WriteTSV(&buf))

	line := buf.String()
	require.True(t, strings.HasSuffix(line, "\n"))
	require.Equal(t, Levels, len(strings.Split(strings.TrimSuffix(line, "\n"), "\t")))

	parsed, err := ParseTable(line)
	require.NoError(t, err)
	require.Equal(t, orig, parsed)
}

func TestParseTableRejectsShortLine(t *testing.T) {
	_, err := ParseTable("0.5\t0.5")
	require.Error(t, err)
}

func TestDensitiesTSVRoundTrip(t *testing.T) {
	var fg, bg [3]Table
	for c := 0; c < 3; c++ {
		fg[c] = sampleTable(c + 2)
		bg[c] = sampleTable(c + 9)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDensitiesTSV(&buf, fg, bg))
	require.Equal(t, 6, strings.Count(buf.String(), "\n"))

	// Foreground precedes background for each channel.
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	first, err := ParseTable(lines[0])
	require.NoError(t, err)
	require.Equal(t, fg[0], first)

	gotFg, gotBg, err := ReadDensitiesTSV(&buf)
	require.NoError(t, err)
	require.Equal(t, fg, gotFg)
	require.Equal(t, bg, gotBg)
}

func TestReadDensitiesTSVTruncated(t *testing.T) {
	var fg, bg [3]Table
	fg[0] = sampleTable(2)

	var buf bytes.Buffer
	require.NoError(t, fg[0].WriteTSV(&buf))
	require.NoError(t, bg[0].WriteTSV(&buf))

	_, _, err := ReadDensitiesTSV(&buf)
	require.Error(t, err)
}
