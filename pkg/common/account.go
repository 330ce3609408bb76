package common

import (
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/ravikoss/backforge/pkg/utility/fixed"
)

// Account is the run's singleton ledger. Its fields are a plain snapshot:
// Apply overwrites them wholesale with an AccountEvent's values, and no
// independent ledger math is performed inside the account itself — every
// number it carries was computed by the simulator that emitted the event.
type Account struct {
	Id            string
	Broker        string
	AccountNumber string
	Currency      string

	CashBalance     fixed.Point
	CashStartDay    fixed.Point
	CashActivityDay fixed.Point

	MarginUsedLiquidation fixed.Point
	MarginUsedMaintenance fixed.Point
	MarginRatio           fixed.Point
	MarginCallStatus      string

	dayNumber int
}

const BrokerSimulated = "SIMULATED"

func NewAccount(id, accountNumber, currency string, startingCapital fixed.Point) *Account {
	return &Account{
		Id:               id,
		Broker:           BrokerSimulated,
		AccountNumber:    accountNumber,
		Currency:         currency,
		CashBalance:      startingCapital,
		CashStartDay:     startingCapital,
		CashActivityDay:  fixed.Zero,
		MarginCallStatus: "NONE",
		dayNumber:        -1,
	}
}

// Apply overwrites the account's snapshot fields from an emitted
// AccountEvent. It never derives values on its own.
func (a *Account) Apply(e AccountEvent) {
	a.Id = e.AccountId
	a.Broker = e.Broker
	a.AccountNumber = e.AccountNumber
	a.Currency = e.Currency
	a.CashBalance = e.CashBalance
	a.CashStartDay = e.CashStartDay
	a.CashActivityDay = e.CashActivityDay
	a.MarginUsedLiquidation = e.MarginUsedLiquidation
	a.MarginUsedMaintenance = e.MarginUsedMaintenance
	a.MarginRatio = e.MarginRatio
	a.MarginCallStatus = e.MarginCallStatus
}

// Snapshot builds the AccountEvent payload for the account's current
// state, timestamped by the caller. It performs no mutation.
func (a *Account) Snapshot(ts time.Time, idGen func() EventId) AccountEvent {
	return AccountEvent{
		EventId:               idGen(),
		EventTimestamp:        ts,
		AccountId:             a.Id,
		Broker:                a.Broker,
		AccountNumber:         a.AccountNumber,
		Currency:              a.Currency,
		CashBalance:           a.CashBalance,
		CashStartDay:          a.CashStartDay,
		CashActivityDay:       a.CashActivityDay,
		MarginUsedLiquidation: a.MarginUsedLiquidation,
		MarginUsedMaintenance: a.MarginUsedMaintenance,
		MarginRatio:           a.MarginRatio,
		MarginCallStatus:      a.MarginCallStatus,
	}
}

// RolloverDay records the calendar day of t against the account's last
// seen day number, returning true exactly once per distinct calendar day
// of the simulated clock. On rollover it captures cash_start_day and
// resets cash_activity_day, per the account's day-anchor invariant.
func (a *Account) RolloverDay(t time.Time) bool {
	day := t.YearDay() + t.Year()*400
	if day == a.dayNumber {
		return false
	}
	a.dayNumber = day
	a.CashStartDay = a.CashBalance
	a.CashActivityDay = fixed.Zero
	return true
}

func (a *Account) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("id", a.Id)
	enc.AddString("currency", a.Currency)
	enc.AddString("cash_balance", a.CashBalance.String())
	enc.AddString("cash_start_day", a.CashStartDay.String())
	return nil
}
