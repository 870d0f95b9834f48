package config

// Default returns the documented default configuration
func Default() Config {
	cfg := Config{}

	// Range
	cfg.Range.PrimaryLookbackBars = 96
	cfg.Range.SecondaryLookbackBars = 48
	cfg.Range.Bins = 24
	cfg.Range.ValueAreaPct = 0.70
	cfg.Range.MinOverlapPct = 0.50

	// Signal
	cfg.Signal.ChannelLength = 9
	cfg.Signal.AverageLength = 12
	cfg.Signal.SignalLength = 3
	cfg.Signal.MoneyFlowPeriod = 14
	cfg.Signal.MoneyFlowSlopeLookback = 3
	cfg.Signal.SwingLookback = 3
	cfg.Signal.MaxBarsAfterDivergence = 8
	cfg.Signal.SfpLookbackBars = 10
	cfg.Signal.RequireDivergence = true
	cfg.Signal.RequireSfp = true
	cfg.Signal.AllowArmedReentry = false
	cfg.Signal.ArmedReentryMaxDistancePct = 0.15
	cfg.Signal.PriceExcursionLookbackBars = 12

	// Risk
	cfg.Risk.RiskPctPerTrade = 0.01
	cfg.Risk.Leverage = 10
	cfg.Risk.MaxNotionalPctEquity = 1.0
	cfg.Risk.ContractMultiplier = 1.0
	cfg.Risk.LotStep = 0.001
	cfg.Risk.FeeRate = 0.0004
	cfg.Risk.SlBufferPct = 0.001

	// Exits
	cfg.Exits.TP1RangeLevel = LevelMid
	cfg.Exits.TP2RangeLevel = LevelVAH
	cfg.Exits.TP1SizePct = 0.5
	cfg.Exits.TP2SizePct = 0.5
	cfg.Exits.BreakevenAfterTP1 = true
	cfg.Exits.RunnerExitOnOppositeSignal = true
	cfg.Exits.CooldownBars = 3

	// Fill model
	cfg.FillModel.IntrabarPriority = StopFirst

	return cfg
}
