package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ravikoss/backforge/internal/dbg"
	"github.com/ravikoss/backforge/pkg/bus"
	"github.com/ravikoss/backforge/pkg/common"
	"github.com/ravikoss/backforge/pkg/data/duckdb"
	"github.com/ravikoss/backforge/pkg/data/mapper"
	"github.com/ravikoss/backforge/pkg/exchange"
	"github.com/ravikoss/backforge/pkg/middleware"
	"github.com/ravikoss/backforge/pkg/recorder"
	"github.com/ravikoss/backforge/pkg/utility/fixed"
)

// errSimulationComplete signals the driver's own step loop, not the
// router: it is returned by the ExecLoop step callback once the cursor
// has walked past SimulationEnd, and is expected on every successful run.
var errSimulationComplete = errors.New("backtest: simulation complete")

// replayTicks streams a fixed-record binary tick archive straight to the
// event sink, ahead of the bar-driven simulation loop: ticks are not part
// of the fill surface (that's the bar cursor's job), they pass through
// untouched for any strategy or recorder consuming top-of-book quotes.
func replayTicks(path, symbol string, sink common.EventSink) error {
	reader := mapper.NewReader[mapper.BinaryTick](path)
	if err := reader.Open(); err != nil {
		return fmt.Errorf("open tick archive: %w", err)
	}
	defer reader.Close()

	count, err := reader.EntryCount()
	if err != nil {
		return fmt.Errorf("stat tick archive: %w", err)
	}

	var raw mapper.BinaryTick
	tick := common.Tick{Symbol: symbol, Source: "mmap"}
	for i := int64(0); i < count; i++ {
		if err := reader.Read(i, &raw); err != nil {
			return fmt.Errorf("read tick %d: %w", i, err)
		}
		raw.ToTick(&tick)
		sink.Emit(tick)
	}
	return nil
}

func main() {
	symbol := flag.String("symbol", "EURUSD", "symbol to simulate")
	dataSource := flag.String("data", DataSourceName, "DuckDB data source")
	tracePath := flag.String("trace", TracePath, "output path for the binary event trace")
	tickPath := flag.String("ticks", TickArchivePath, "optional memory-mapped tick archive to replay through the event sink")
	flag.Parse()

	logger := dbg.NewDevLogger()
	defer func() { _ = logger.Sync() }()

	logger.Info("backtest starting", zap.String("symbol", *symbol),
		zap.Time("from", SimulationStart), zap.Time("to", SimulationEnd))
	defer logger.Info("backtest done")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	instrument := common.Instrument{
		Symbol:        *symbol,
		TickSize:      fixed.FromInt(1, 4),
		TickPrecision: 4,
		ContractSize:  fixed.FromInt(100000, 0),
		QuoteCurrency: AccountCurrency,
	}
	catalogue := common.NewCatalogue(instrument)

	reader := duckdb.NewReader(*dataSource)
	if err := reader.Connect(); err != nil {
		logger.Fatal("failed to connect to data source", zap.Error(err))
	}
	defer reader.Close()

	bidFrame, err := reader.LoadBarFrame(ctx, *symbol, "bid", instrument, SimulationStart, SimulationEnd)
	if err != nil {
		logger.Fatal("failed to load bid bars", zap.Error(err))
	}
	askFrame, err := reader.LoadBarFrame(ctx, *symbol, "ask", instrument, SimulationStart, SimulationEnd)
	if err != nil {
		logger.Fatal("failed to load ask bars", zap.Error(err))
	}
	if bidFrame.Len() == 0 {
		logger.Fatal("no bars loaded for symbol", zap.String("symbol", *symbol))
	}

	clock := common.NewSimClock(SimulationStart)
	ids := common.NewSequentialIdFactory(AccountSeed)

	traceFile, err := os.Create(*tracePath)
	if err != nil {
		logger.Fatal("failed to create trace file", zap.Error(err))
	}
	defer func() { _ = traceFile.Close() }()
	rec := recorder.NewRecorder(traceFile)
	defer func() {
		if err := rec.Flush(); err != nil {
			logger.Warn("failed to flush event trace", zap.Error(err))
		}
	}()

	router := bus.NewRouter(logger, RouterEventCapacity)
	sink := common.NewMultiSink(router, rec)

	if *tickPath != "" {
		if err := replayTicks(*tickPath, *symbol, sink); err != nil {
			logger.Warn("failed to replay tick archive", zap.Error(err))
		}
	}

	cursor := exchange.NewBarCursor(bidFrame.Index,
		map[string]common.BarFrame{*symbol: bidFrame},
		map[string]common.BarFrame{*symbol: askFrame},
		clock)

	simulator, err := exchange.NewSimulator(
		cursor, catalogue, clock, ids, sink,
		AccountCurrency, fixed.FromInt(100000, 0), 1,
		exchange.WithLogger(logger))
	if err != nil {
		logger.Fatal("failed to construct simulator", zap.Error(err))
	}

	monitor := middleware.NewMonitor(MonitorFlags)
	telemetry := middleware.NewTelemetry(logger)

	router.OnOrderSubmitted = telemetry.WithOrderSubmitted(monitor.WithOrderSubmitted(middleware.NoopOrderSubmittedHdl))
	router.OnOrderAccepted = telemetry.WithOrderAccepted(monitor.WithOrderAccepted(middleware.NoopOrderAcceptedHdl))
	router.OnOrderRejected = telemetry.WithOrderRejected(monitor.WithOrderRejected(middleware.NoopOrderRejectedHdl))
	router.OnOrderWorking = telemetry.WithOrderWorking(monitor.WithOrderWorking(middleware.NoopOrderWorkingHdl))
	router.OnOrderModified = telemetry.WithOrderModified(monitor.WithOrderModified(middleware.NoopOrderModifiedHdl))
	router.OnOrderCancelled = telemetry.WithOrderCancelled(monitor.WithOrderCancelled(middleware.NoopOrderCancelledHdl))
	router.OnOrderCancelReject = telemetry.WithOrderCancelReject(monitor.WithOrderCancelReject(middleware.NoopOrderCancelRejectHdl))
	router.OnOrderExpired = telemetry.WithOrderExpired(monitor.WithOrderExpired(middleware.NoopOrderExpiredHdl))
	router.OnOrderFilled = telemetry.WithOrderFilled(monitor.WithOrderFilled(middleware.NoopOrderFilledHdl))
	router.OnAccountEvent = telemetry.WithAccountEvent(monitor.WithAccountEvent(middleware.NoopAccountEventHdl))

	simulator.SetInitialIteration(SimulationStart, StepDuration)
	defer func() { router.Statistics().Log(logger) }()
	defer telemetry.PrintStatistics()

	step := func() error {
		t := clock.Now()
		if !t.Before(SimulationEnd) {
			return errSimulationComplete
		}
		simulator.Iterate(t.Add(StepDuration))
		return nil
	}

	if err := <-router.ExecLoop(ctx, step); err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, errSimulationComplete) {
			logger.Error("simulation ended with error", zap.Error(err))
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
