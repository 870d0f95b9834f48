package core

import "errors"

var (
	// ErrInsufficientData is returned when a candle series is too short
	// to fulfill a request
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidSeries is returned when a candle series is not ordered by
	// non-decreasing time
	ErrInvalidSeries = errors.New("candle series not ordered by time")
)
