// Package feed loads candle series from CSV files and resamples them to
// the timeframes the engine consumes.
package feed

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/xhit/go-str2duration/v2"

	"github.com/raykavin/rangerev/pkg/core"
)

var defaultHeaderMap = map[string]int{
	"time": 0, "open": 1, "close": 2, "low": 3, "high": 4, "volume": 5,
}

// LoadCSV reads candles from a CSV file. The first row may be a header
// naming the time, open, close, low, high and volume columns in any
// order; headerless files must use that column order. Timestamps are
// unix seconds and must be non-decreasing; all-zero gap rows are
// skipped and unknown columns are ignored.
func LoadCSV(file string) ([]core.Candle, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%s: %w", file, core.ErrInsufficientData)
	}

	headerMap, hasHeader := parseHeaders(lines[0])
	if hasHeader {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%s: %w", file, core.ErrInsufficientData)
	}

	candles := make([]core.Candle, 0, len(lines))
	for i, line := range lines {
		candle, err := parseLine(line, headerMap)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", file, i+1, err)
		}
		if candle.IsEmpty() {
			continue
		}
		if len(candles) > 0 && candle.Time.Before(candles[len(candles)-1].Time) {
			return nil, fmt.Errorf("%s row %d: %w", file, i+1, core.ErrInvalidSeries)
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

// SaveCSV writes candles with the default column order, suitable for
// reloading with LoadCSV
func SaveCSV(file string, candles []core.Candle, precision int) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"time", "open", "close", "low", "high", "volume"}); err != nil {
		return err
	}
	for _, candle := range candles {
		if err := writer.Write(candle.ToSlice(precision)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// parseHeaders maps column names to indices. A numeric first cell means
// the file carries no header row.
func parseHeaders(headers []string) (map[string]int, bool) {
	if _, err := strconv.Atoi(headers[0]); err == nil {
		return defaultHeaderMap, false
	}

	headerMap := make(map[string]int)
	for index, header := range headers {
		if _, known := defaultHeaderMap[header]; known {
			headerMap[header] = index
		}
	}
	return headerMap, true
}

func parseLine(line []string, headerMap map[string]int) (core.Candle, error) {
	field := func(name string) (float64, error) {
		idx, ok := headerMap[name]
		if !ok || idx >= len(line) {
			return 0, fmt.Errorf("missing column %q", name)
		}
		return strconv.ParseFloat(line[idx], 64)
	}

	idx, ok := headerMap["time"]
	if !ok || idx >= len(line) {
		return core.Candle{}, fmt.Errorf("missing column %q", "time")
	}
	timestamp, err := strconv.ParseInt(line[idx], 10, 64)
	if err != nil {
		return core.Candle{}, err
	}

	candle := core.Candle{Time: time.Unix(timestamp, 0).UTC()}
	if candle.Open, err = field("open"); err != nil {
		return core.Candle{}, err
	}
	if candle.Close, err = field("close"); err != nil {
		return core.Candle{}, err
	}
	if candle.Low, err = field("low"); err != nil {
		return core.Candle{}, err
	}
	if candle.High, err = field("high"); err != nil {
		return core.Candle{}, err
	}
	if candle.Volume, err = field("volume"); err != nil {
		return core.Candle{}, err
	}
	return candle, nil
}

// Resample aggregates candles from a finer timeframe into a coarser one.
// Timeframes use duration notation such as "15m", "1h" or "4h". Buckets
// open on timestamps aligned to the target duration; a trailing
// incomplete bucket is kept, matching how a live aggregation would
// report its forming bar.
func Resample(candles []core.Candle, fromTimeframe, targetTimeframe string) ([]core.Candle, error) {
	fromDuration, err := str2duration.ParseDuration(fromTimeframe)
	if err != nil {
		return nil, fmt.Errorf("invalid timeframe %q: %w", fromTimeframe, err)
	}
	targetDuration, err := str2duration.ParseDuration(targetTimeframe)
	if err != nil {
		return nil, fmt.Errorf("invalid timeframe %q: %w", targetTimeframe, err)
	}
	if targetDuration < fromDuration {
		return nil, fmt.Errorf("cannot resample %s down to %s", fromTimeframe, targetTimeframe)
	}
	if targetDuration == fromDuration || len(candles) == 0 {
		return candles, nil
	}

	var out []core.Candle
	var current core.Candle
	inBucket := false

	for _, candle := range candles {
		bucketStart := candle.Time.Truncate(targetDuration)
		if !inBucket || !current.Time.Equal(bucketStart) {
			if inBucket {
				out = append(out, current)
			}
			current = candle
			current.Time = bucketStart
			inBucket = true
			continue
		}

		current.High = math.Max(current.High, candle.High)
		current.Low = math.Min(current.Low, candle.Low)
		current.Close = candle.Close
		current.Volume += candle.Volume
	}
	if inBucket {
		out = append(out, current)
	}
	return out, nil
}

// Limit keeps only the candles within the trailing duration of the
// series
func Limit(candles []core.Candle, duration time.Duration) []core.Candle {
	if len(candles) == 0 {
		return candles
	}
	start := candles[len(candles)-1].Time.Add(-duration)
	return lo.Filter(candles, func(candle core.Candle, _ int) bool {
		return candle.Time.After(start)
	})
}
