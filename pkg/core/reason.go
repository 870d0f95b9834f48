package core

// Reason identifies why an entry gate passed or failed. It is a closed
// enumeration so gating tests cannot be broken by string typos; the
// snake_case rendering happens only at the presentation boundary.
type Reason int

const (
	ReasonUnknown Reason = iota

	// Shared gates
	ReasonRangeNotAligned
	ReasonConflictingSignals
	ReasonNoConfluence

	// Long-side gates
	ReasonLongPriceNotBelowVAL
	ReasonLongReentryTooFar
	ReasonLongMissingDivergence
	ReasonLongMoneyFlowNotPositive
	ReasonLongMissingSFP
	ReasonLongConfluence

	// Short-side gates
	ReasonShortPriceNotAboveVAH
	ReasonShortReentryTooFar
	ReasonShortMissingDivergence
	ReasonShortMoneyFlowNotNegative
	ReasonShortMissingSFP
	ReasonShortConfluence
)

var reasonCodes = map[Reason]string{
	ReasonUnknown:                   "unknown",
	ReasonRangeNotAligned:           "range_not_aligned",
	ReasonConflictingSignals:        "conflicting_long_and_short_signal",
	ReasonNoConfluence:              "no_confluence",
	ReasonLongPriceNotBelowVAL:      "long_price_not_below_val",
	ReasonLongReentryTooFar:         "long_reentry_too_far_from_val",
	ReasonLongMissingDivergence:     "long_missing_bullish_divergence",
	ReasonLongMoneyFlowNotPositive:  "long_money_flow_not_positive",
	ReasonLongMissingSFP:            "long_missing_bullish_sfp",
	ReasonLongConfluence:            "long_confluence",
	ReasonShortPriceNotAboveVAH:     "short_price_not_above_vah",
	ReasonShortReentryTooFar:        "short_reentry_too_far_from_vah",
	ReasonShortMissingDivergence:    "short_missing_bearish_divergence",
	ReasonShortMoneyFlowNotNegative: "short_money_flow_not_negative",
	ReasonShortMissingSFP:           "short_missing_bearish_sfp",
	ReasonShortConfluence:           "short_confluence",
}

var reasonFromCode = func() map[string]Reason {
	m := make(map[string]Reason, len(reasonCodes))
	for r, code := range reasonCodes {
		m[code] = r
	}
	return m
}()

// String renders the machine-readable snake_case code for the reason
func (r Reason) String() string {
	if code, ok := reasonCodes[r]; ok {
		return code
	}
	return "unknown"
}

// ParseReason resolves a snake_case code back into a Reason.
// Unrecognized codes map to ReasonUnknown.
func ParseReason(code string) Reason {
	if r, ok := reasonFromCode[code]; ok {
		return r
	}
	return ReasonUnknown
}

// ReasonCodes renders a reason list as snake_case codes
func ReasonCodes(reasons []Reason) []string {
	codes := make([]string, len(reasons))
	for i, r := range reasons {
		codes[i] = r.String()
	}
	return codes
}
