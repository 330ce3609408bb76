package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ravikoss/backforge/pkg/common"
)

func setupTestLogger(_ *testing.T) *bytes.Buffer {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	return buf
}

func TestMonitor_NewMonitor(t *testing.T) {
	m := NewMonitor(MonitorTicks | MonitorBars)
	assert.Equal(t, MonitorTicks|MonitorBars, m.flags)
}

func TestMonitor_WithTick(t *testing.T) {
	buf := setupTestLogger(t)

	var called bool
	handler := func(ctx context.Context, tick common.Tick) { called = true }

	m := NewMonitor(MonitorTicks)
	wrapped := m.WithTick(handler)
	wrapped(context.Background(), common.Tick{})

	assert.True(t, called)
	assert.Contains(t, buf.String(), "tick")
}

func TestMonitor_WithTickNoFlag(t *testing.T) {
	buf := setupTestLogger(t)

	var called bool
	handler := func(ctx context.Context, tick common.Tick) { called = true }

	m := NewMonitor(MonitorNone)
	wrapped := m.WithTick(handler)
	wrapped(context.Background(), common.Tick{})

	assert.True(t, called)
	assert.NotContains(t, buf.String(), "tick")
}

func TestMonitor_MonitorAllOverride(t *testing.T) {
	buf := setupTestLogger(t)
	m := NewMonitor(MonitorAll)

	cases := []struct {
		name    string
		execute func()
	}{
		{"order_submitted", func() {
			h := m.WithOrderSubmitted(func(context.Context, common.OrderSubmitted) {})
			h(context.Background(), common.OrderSubmitted{})
		}},
		{"order_accepted", func() {
			h := m.WithOrderAccepted(func(context.Context, common.OrderAccepted) {})
			h(context.Background(), common.OrderAccepted{})
		}},
		{"order_rejected", func() {
			h := m.WithOrderRejected(func(context.Context, common.OrderRejected) {})
			h(context.Background(), common.OrderRejected{})
		}},
		{"order_working", func() {
			h := m.WithOrderWorking(func(context.Context, common.OrderWorking) {})
			h(context.Background(), common.OrderWorking{})
		}},
		{"order_filled", func() {
			h := m.WithOrderFilled(func(context.Context, common.OrderFilled) {})
			h(context.Background(), common.OrderFilled{})
		}},
		{"account", func() {
			h := m.WithAccountEvent(func(context.Context, common.AccountEvent) {})
			h(context.Background(), common.AccountEvent{})
		}},
	}

	for _, c := range cases {
		buf.Reset()
		c.execute()
		assert.Containsf(t, buf.String(), c.name, "expected log for %s", c.name)
	}
}

func TestMonitor_ContextPropagation(t *testing.T) {
	m := NewMonitor(MonitorNone)

	type contextKey string
	const testKey contextKey = "test"

	ctx := context.WithValue(context.Background(), testKey, "value")
	var received context.Context

	handler := func(c context.Context, tick common.Tick) { received = c }
	wrapped := m.WithTick(handler)
	wrapped(ctx, common.Tick{})

	assert.Equal(t, "value", received.Value(testKey))
}

func TestMonitor_FlagCombinations(t *testing.T) {
	tests := []struct {
		name     string
		flags    MonitorFlags
		expected []string
	}{
		{"none", MonitorNone, nil},
		{"single flag", MonitorOrderFilled, []string{"order_filled"}},
		{"multiple flags", MonitorOrderFilled | MonitorOrderRejected, []string{"order_filled", "order_rejected"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf := setupTestLogger(t)
			m := NewMonitor(test.flags)
			ctx := context.Background()

			m.WithOrderFilled(func(context.Context, common.OrderFilled) {})(ctx, common.OrderFilled{})
			m.WithOrderRejected(func(context.Context, common.OrderRejected) {})(ctx, common.OrderRejected{})

			logs := buf.String()
			for _, e := range test.expected {
				assert.Contains(t, logs, e)
			}
			if len(test.expected) == 0 {
				assert.NotContains(t, logs, "order_filled")
				assert.NotContains(t, logs, "order_rejected")
			}
		})
	}
}

func BenchmarkMonitor_WithTickEnabled(b *testing.B) {
	m := NewMonitor(MonitorTicks)
	wrapped := m.WithTick(func(context.Context, common.Tick) {})
	ctx := context.Background()
	tick := common.Tick{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wrapped(ctx, tick)
	}
}

func BenchmarkMonitor_WithTickDisabled(b *testing.B) {
	m := NewMonitor(MonitorNone)
	wrapped := m.WithTick(func(context.Context, common.Tick) {})
	ctx := context.Background()
	tick := common.Tick{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wrapped(ctx, tick)
	}
}
