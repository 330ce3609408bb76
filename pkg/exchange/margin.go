package exchange

import "github.com/ravikoss/backforge/pkg/utility/fixed"

// MarginModel computes the account's margin snapshot fields. Margin is
// recognised but never enforced: no order is rejected and no position is
// liquidated on its account, per the simulator's non-goals. The default
// NoopMarginModel reports zero on every numeric field and "NONE" as the
// call status.
type MarginModel interface {
	Liquidation() fixed.Point
	Maintenance() fixed.Point
	Ratio() fixed.Point
	CallStatus() string
}

type NoopMarginModel struct{}

func (NoopMarginModel) Liquidation() fixed.Point { return fixed.Zero }
func (NoopMarginModel) Maintenance() fixed.Point { return fixed.Zero }
func (NoopMarginModel) Ratio() fixed.Point       { return fixed.Zero }
func (NoopMarginModel) CallStatus() string       { return "NONE" }
