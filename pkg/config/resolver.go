package config

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Resolve deep-merges the caller-supplied partial overrides onto the
// defaults and validates the result. An explicitly provided but invalid
// value is reported as an error, never silently replaced by a default;
// only genuinely absent fields fall back to defaults.
func Resolve(overrides map[string]any) (Config, error) {
	cfg := Default()

	if len(overrides) > 0 {
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &cfg,
			ErrorUnused: true,
			DecodeHook:  wholeNumberHook,
		})
		if err != nil {
			return Config{}, fmt.Errorf("building config decoder: %w", err)
		}
		if err := decoder.Decode(overrides); err != nil {
			return Config{}, fmt.Errorf("invalid configuration override: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ResolveJSON resolves overrides supplied as a JSON object
func ResolveJSON(data []byte) (Config, error) {
	if len(data) == 0 {
		return Resolve(nil)
	}
	var overrides map[string]any
	if err := json.Unmarshal(data, &overrides); err != nil {
		return Config{}, fmt.Errorf("parsing configuration overrides: %w", err)
	}
	return Resolve(overrides)
}

// wholeNumberHook lets whole JSON numbers (always decoded as float64)
// populate integer fields. Fractional values still fail with a typed
// error naming the field.
func wholeNumberHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float64 || to.Kind() != reflect.Int {
		return data, nil
	}
	f := data.(float64)
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("expected a whole number, got %v", f)
	}
	return int(f), nil
}
