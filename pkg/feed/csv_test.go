package feed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raykavin/rangerev/pkg/core"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "candles.csv")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestLoadCSV_WithHeader(t *testing.T) {
	file := writeTempCSV(t, "time,open,close,low,high,volume\n"+
		"1700000000,100,101,99,102,500\n"+
		"1700000900,101,100,98,103,600\n")

	candles, err := LoadCSV(file)
	require.NoError(t, err)
	require.Len(t, candles, 2)

	first := candles[0]
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), first.Time)
	assert.Equal(t, 100.0, first.Open)
	assert.Equal(t, 101.0, first.Close)
	assert.Equal(t, 99.0, first.Low)
	assert.Equal(t, 102.0, first.High)
	assert.Equal(t, 500.0, first.Volume)
}

func TestLoadCSV_ReorderedHeader(t *testing.T) {
	file := writeTempCSV(t, "volume,high,low,close,open,time\n"+
		"500,102,99,101,100,1700000000\n")

	candles, err := LoadCSV(file)
	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.Equal(t, 100.0, candles[0].Open)
	assert.Equal(t, 500.0, candles[0].Volume)
}

func TestLoadCSV_HeaderlessUsesDefaultOrder(t *testing.T) {
	file := writeTempCSV(t, "1700000000,100,101,99,102,500\n")

	candles, err := LoadCSV(file)
	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.Equal(t, 101.0, candles[0].Close)
	assert.Equal(t, 99.0, candles[0].Low)
}

func TestLoadCSV_UnknownColumnsIgnored(t *testing.T) {
	file := writeTempCSV(t, "time,open,close,low,high,volume,funding\n"+
		"1700000000,100,101,99,102,500,0.0001\n")

	candles, err := LoadCSV(file)
	require.NoError(t, err)
	assert.Len(t, candles, 1)
}

func TestLoadCSV_Errors(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	file := writeTempCSV(t, "time,open,close,low,high,volume\n"+
		"1700000000,abc,101,99,102,500\n")
	_, err = LoadCSV(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestLoadCSV_NoRows(t *testing.T) {
	_, err := LoadCSV(writeTempCSV(t, ""))
	assert.ErrorIs(t, err, core.ErrInsufficientData)

	_, err = LoadCSV(writeTempCSV(t, "time,open,close,low,high,volume\n"))
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}

func TestLoadCSV_OutOfOrderTimestamps(t *testing.T) {
	file := writeTempCSV(t, "time,open,close,low,high,volume\n"+
		"1700000900,100,101,99,102,500\n"+
		"1700000000,101,100,98,103,600\n")

	_, err := LoadCSV(file)
	require.ErrorIs(t, err, core.ErrInvalidSeries)
	assert.Contains(t, err.Error(), "row 2")
}

func TestLoadCSV_SkipsEmptyGapRows(t *testing.T) {
	file := writeTempCSV(t, "time,open,close,low,high,volume\n"+
		"1700000000,100,101,99,102,500\n"+
		"1700000900,0,0,0,0,0\n"+
		"1700001800,101,100,98,103,600\n")

	candles, err := LoadCSV(file)
	require.NoError(t, err)
	require.Len(t, candles, 2)
	assert.Equal(t, time.Unix(1700001800, 0).UTC(), candles[1].Time)
}

func TestSaveCSV_RoundTrip(t *testing.T) {
	input := []core.Candle{
		{Time: time.Unix(1700000000, 0).UTC(), Open: 100, High: 102, Low: 99, Close: 101, Volume: 500},
		{Time: time.Unix(1700000900, 0).UTC(), Open: 101, High: 103, Low: 98, Close: 100, Volume: 600},
	}
	file := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, SaveCSV(file, input, 2))

	candles, err := LoadCSV(file)
	require.NoError(t, err)
	assert.Equal(t, input, candles)
}

func TestResample_Aggregates(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var input []core.Candle
	for i := 0; i < 10; i++ {
		input = append(input, core.Candle{
			Time:   start.Add(time.Duration(i) * time.Minute),
			Open:   100 + float64(i),
			High:   110 + float64(i),
			Low:    90 + float64(i),
			Close:  101 + float64(i),
			Volume: 10,
		})
	}

	out, err := Resample(input, "1m", "5m")
	require.NoError(t, err)
	require.Len(t, out, 2)

	first := out[0]
	assert.Equal(t, start, first.Time)
	assert.Equal(t, 100.0, first.Open)
	assert.Equal(t, 105.0, first.Close) // close of minute 4
	assert.Equal(t, 114.0, first.High)  // high of minute 4
	assert.Equal(t, 90.0, first.Low)
	assert.Equal(t, 50.0, first.Volume)

	second := out[1]
	assert.Equal(t, start.Add(5*time.Minute), second.Time)
	assert.Equal(t, 50.0, second.Volume)
}

func TestResample_SameTimeframeIsIdentity(t *testing.T) {
	input := []core.Candle{{Time: time.Unix(0, 0).UTC(), Close: 100}}

	out, err := Resample(input, "15m", "15m")
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestResample_Errors(t *testing.T) {
	_, err := Resample(nil, "bogus", "1h")
	assert.Error(t, err)

	_, err = Resample(nil, "1h", "15m")
	assert.Error(t, err)
}

func TestLimit(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var input []core.Candle
	for i := 0; i < 6; i++ {
		input = append(input, core.Candle{Time: start.Add(time.Duration(i) * time.Hour)})
	}

	out := Limit(input, 2*time.Hour)
	require.Len(t, out, 2)
	assert.Equal(t, input[4].Time, out[0].Time)

	assert.Empty(t, Limit(nil, time.Hour))
}
