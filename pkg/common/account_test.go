package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ravikoss/backforge/pkg/utility/fixed"
)

func TestAccount_NewAccountSeedsBothCashFields(t *testing.T) {
	a := NewAccount("A1", "1000", "USD", fixed.FromInt(1000000, 0))
	assert.Equal(t, "1000000", a.CashBalance.String())
	assert.Equal(t, "1000000", a.CashStartDay.String())
	assert.True(t, a.CashActivityDay.IsZero())
	assert.Equal(t, "NONE", a.MarginCallStatus)
}

func TestAccount_RolloverDayFiresOncePerCalendarDay(t *testing.T) {
	a := NewAccount("A1", "1000", "USD", fixed.FromInt(1000000, 0))

	day1 := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	assert.True(t, a.RolloverDay(day1))
	assert.False(t, a.RolloverDay(day1.Add(time.Hour)))
	assert.False(t, a.RolloverDay(day1.Add(10*time.Hour)))

	day2 := time.Date(2024, 1, 3, 0, 0, 1, 0, time.UTC)
	assert.True(t, a.RolloverDay(day2))
}

func TestAccount_RolloverCapturesStartOfDayBalance(t *testing.T) {
	a := NewAccount("A1", "1000", "USD", fixed.FromInt(1000000, 0))
	day1 := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	a.RolloverDay(day1)

	a.CashBalance = fixed.FromInt(1005000, 0)
	a.CashActivityDay = fixed.FromInt(5000, 0)

	day2 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	assert.True(t, a.RolloverDay(day2))
	assert.Equal(t, "1005000", a.CashStartDay.String())
	assert.True(t, a.CashActivityDay.IsZero())
}

func TestAccount_SnapshotAndApplyRoundTrip(t *testing.T) {
	a := NewAccount("A1", "1000", "USD", fixed.FromInt(1000000, 0))
	ts := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	snap := a.Snapshot(ts, func() EventId { return "E1" })
	assert.Equal(t, EventId("E1"), snap.EventId)
	assert.Equal(t, a.CashBalance.String(), snap.CashBalance.String())

	other := NewAccount("A2", "2000", "EUR", fixed.Zero)
	other.Apply(snap)
	assert.Equal(t, a.Id, other.Id)
	assert.Equal(t, a.CashBalance.String(), other.CashBalance.String())
}
