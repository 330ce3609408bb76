// Package duckdb is a reference implementation of the historical-data
// loader external interface: it materialises tick rows and per-symbol
// bid/ask bar frames out of a DuckDB database into the in-memory shapes
// the simulator consumes. Loading itself is out of scope for the
// simulator's correctness; this package exists to give the DuckDB
// dependency a concrete, exercised home.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/ravikoss/backforge/pkg/common"
	"github.com/ravikoss/backforge/pkg/utility/fixed"
)

type Reader struct {
	dataSourceName string
	db             *sql.DB
}

func NewReader(dataSourceName string) *Reader {
	return &Reader{dataSourceName: dataSourceName}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() {
	_ = r.db.Close()
}

func (r *Reader) LoadTicks(ctx context.Context, symbol string, from, to time.Time, handler func(common.Tick) error) error {
	query := fmt.Sprintf(`SELECT ts, ask, bid, ask_volume, bid_volume FROM %s_ticks WHERE ts BETWEEN ? AND ? ORDER BY ts`, symbol)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return fmt.Errorf("error preparing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ts                             time.Time
			ask, bid, askVolume, bidVolume float64
		)
		if err := rows.Scan(&ts, &ask, &bid, &askVolume, &bidVolume); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		tick := common.Tick{
			Symbol:    symbol,
			TimeStamp: ts,
			Ask:       fixed.FromFloat64(ask),
			Bid:       fixed.FromFloat64(bid),
			AskVolume: fixed.FromFloat64(askVolume),
			BidVolume: fixed.FromFloat64(bidVolume),
		}
		if err := handler(tick); err != nil {
			return fmt.Errorf("error processing tick: %w", err)
		}
	}
	return rows.Err()
}

// LoadBarFrame reads one side (bid or ask) of a symbol's minute bar
// table into a dense common.BarFrame, quantising every OHLC value to the
// instrument's tick precision as it is read.
func (r *Reader) LoadBarFrame(ctx context.Context, symbol, side string, instrument common.Instrument, from, to time.Time) (common.BarFrame, error) {
	query := fmt.Sprintf(`SELECT ts, open, high, low, close FROM %s_%s_bars WHERE ts BETWEEN ? AND ? ORDER BY ts`, symbol, side)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return common.BarFrame{}, fmt.Errorf("error preparing query: %w", err)
	}
	defer rows.Close()

	var index []time.Time
	var bars []common.Bar
	for rows.Next() {
		var (
			ts                       time.Time
			open, high, low, close_ float64
		)
		if err := rows.Scan(&ts, &open, &high, &low, &close_); err != nil {
			return common.BarFrame{}, fmt.Errorf("error scanning row: %w", err)
		}
		index = append(index, ts)
		bars = append(bars, common.Bar{
			Open:  instrument.Quantize(fixed.FromFloat64(open)),
			High:  instrument.Quantize(fixed.FromFloat64(high)),
			Low:   instrument.Quantize(fixed.FromFloat64(low)),
			Close: instrument.Quantize(fixed.FromFloat64(close_)),
		})
	}
	if err := rows.Err(); err != nil {
		return common.BarFrame{}, fmt.Errorf("error scanning rows: %w", err)
	}
	return common.NewBarFrame(index, bars), nil
}
