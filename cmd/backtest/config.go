package main

import (
	"time"

	"github.com/ravikoss/backforge/pkg/middleware"
)

var SimulationStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
var SimulationEnd = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

const (
	RouterEventCapacity = 1024
	StepDuration        = time.Minute

	AccountCurrency = "USD"
	AccountSeed     = 1

	DataSourceName  = "data/backtest.duckdb"
	TracePath       = "backtest.trace"
	TickArchivePath = ""

	MonitorFlags = middleware.MonitorOrderFilled | middleware.MonitorOrderRejected | middleware.MonitorAccount
)
