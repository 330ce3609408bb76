package exchange

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ravikoss/backforge/pkg/common"
	"github.com/ravikoss/backforge/pkg/utility/fixed"
)

const componentName = "exchange.simulator"

// Simulator is the deterministic, single-threaded execution venue: the
// core loop that turns strategy commands and stepped market data into an
// ordered event stream. It exclusively owns the working-order map, the
// open and completed position maps, the account, and the bar cursor.
// Orders are shared with the strategy layer by reference for inspection
// only; the simulator never writes an Order's fields directly, it always
// goes through Order.Apply.
type Simulator struct {
	cursor    *BarCursor
	catalogue common.Catalogue
	clock     common.Clock
	ids       common.IdFactory
	sink      common.EventSink
	logger    *zap.Logger

	marginModel   MarginModel
	accountId     string
	accountNumber string

	slippage      map[string]fixed.Point
	slippageTicks int64

	working      []*common.Order
	workingIndex map[common.OrderId]int

	openPositions      map[string]*common.Position
	completedPositions map[common.PositionId]*common.Position
	positionSeq        map[string]int64

	account *common.Account
}

// NewSimulator constructs a Simulator over a fixed instrument catalogue
// and bar cursor. startingCapital must be positive and slippageTicks
// non-negative: both are precondition violations, reported as errors
// before any event is emitted, never as domain rejections.
func NewSimulator(
	cursor *BarCursor,
	catalogue common.Catalogue,
	clock common.Clock,
	ids common.IdFactory,
	sink common.EventSink,
	currency string,
	startingCapital fixed.Point,
	slippageTicks int64,
	opts ...Option,
) (*Simulator, error) {
	if startingCapital.Lte(fixed.Zero) {
		return nil, common.NewPreconditionError("NewSimulator", "starting capital must be positive")
	}
	if slippageTicks < 0 {
		return nil, common.NewPreconditionError("NewSimulator", "slippage_ticks must be non-negative")
	}

	s := &Simulator{
		cursor:              cursor,
		catalogue:           catalogue,
		clock:               clock,
		ids:                 ids,
		sink:                sink,
		logger:              zap.NewNop(),
		marginModel:         NoopMarginModel{},
		accountId:           "sim-account",
		accountNumber:       "000000",
		slippage:            make(map[string]fixed.Point),
		slippageTicks:       slippageTicks,
		workingIndex:        make(map[common.OrderId]int),
		openPositions:       make(map[string]*common.Position),
		completedPositions:  make(map[common.PositionId]*common.Position),
		positionSeq:         make(map[string]int64),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.account = common.NewAccount(s.accountId, s.accountNumber, currency, startingCapital)

	return s, nil
}

// slippageFor lazily computes and caches slippage[sym] = tick_size *
// slippage_ticks the first time an instrument is touched.
func (s *Simulator) slippageFor(symbol string, slippageTicks int64) fixed.Point {
	key := strings.ToUpper(symbol)
	if v, ok := s.slippage[key]; ok {
		return v
	}
	instrument := s.catalogue.MustLookup(symbol)
	v := instrument.TickSize.MulInt64(slippageTicks)
	s.slippage[key] = v
	return v
}

// Connect and Disconnect exist only for interface parity with a live
// execution client; the simulator has no transport to open or close.
func (s *Simulator) Connect()    { s.logger.Info(componentName + ": connect") }
func (s *Simulator) Disconnect() { s.logger.Info(componentName + ": disconnect") }

// CollateralInquiry emits a fresh AccountEvent snapshot of the account.
// It is pure: two consecutive calls with no intervening state change
// yield identical monetary fields.
func (s *Simulator) CollateralInquiry() {
	s.emitAccountSnapshot()
}

func (s *Simulator) emitAccountSnapshot() {
	s.account.MarginUsedLiquidation = s.marginModel.Liquidation()
	s.account.MarginUsedMaintenance = s.marginModel.Maintenance()
	s.account.MarginRatio = s.marginModel.Ratio()
	s.account.MarginCallStatus = s.marginModel.CallStatus()

	snap := s.account.Snapshot(s.clock.Now(), s.ids.NextEventId)
	s.sink.Emit(snap)
}

// SubmitOrder registers ownership of order, emits OrderSubmitted then
// OrderAccepted, and immediately evaluates it against the closing price
// of the current bar: the result is one of an immediate fill (MARKET), an
// immediate OrderRejected, or a transition to Working via OrderWorking.
//
// Precondition: order.Id must not already be in the working set.
func (s *Simulator) SubmitOrder(order *common.Order, strategyId string) error {
	if _, exists := s.workingIndex[order.Id]; exists {
		return common.NewPreconditionError("SubmitOrder", "order id already working: "+string(order.Id))
	}

	order.StrategyId = strategyId
	now := s.clock.Now()

	submitted := common.OrderSubmitted{
		EventId: s.ids.NextEventId(), EventTimestamp: now,
		Symbol: order.Symbol, OrderId: order.Id, SubmittedTime: now,
	}
	if err := order.Apply(submitted); err != nil {
		common.PanicInvariant(err.Error())
	}
	s.sink.Emit(submitted)

	accepted := common.OrderAccepted{
		EventId: s.ids.NextEventId(), EventTimestamp: now,
		Symbol: order.Symbol, OrderId: order.Id, AcceptedTime: now,
	}
	if err := order.Apply(accepted); err != nil {
		common.PanicInvariant(err.Error())
	}
	s.sink.Emit(accepted)

	reject, reason, fillNow, fillPrice := s.evaluateAdmission(order)

	switch {
	case reject:
		rejected := common.OrderRejected{
			EventId: s.ids.NextEventId(), EventTimestamp: now,
			Symbol: order.Symbol, OrderId: order.Id, RejectedTime: now, Reason: reason,
		}
		if err := order.Apply(rejected); err != nil {
			common.PanicInvariant(err.Error())
		}
		s.sink.Emit(rejected)

	case fillNow:
		s.fillOrder(order, fillPrice, now)

	default:
		brokerId := synthBrokerId(order.Id)
		working := common.OrderWorking{
			EventId: s.ids.NextEventId(), EventTimestamp: now,
			Symbol: order.Symbol, OrderId: order.Id, BrokerId: brokerId,
			Label: order.Label, Side: order.Side, Type: order.Type,
			Quantity: order.Quantity, Price: order.Price, TimeInForce: order.TimeInForce,
			WorkingTime: now, ExpireTime: order.ExpireTime,
		}
		if err := order.Apply(working); err != nil {
			common.PanicInvariant(err.Error())
		}
		s.sink.Emit(working)
		s.addWorking(order)
	}

	return nil
}

// CancelOrder removes order from the working set and emits OrderCancelled.
// Precondition: order must be working.
func (s *Simulator) CancelOrder(order *common.Order, reason string) error {
	if _, exists := s.workingIndex[order.Id]; !exists {
		return common.NewPreconditionError("CancelOrder", "order not in working set: "+string(order.Id))
	}

	now := s.clock.Now()
	s.removeWorking(order.Id)

	cancelled := common.OrderCancelled{
		EventId: s.ids.NextEventId(), EventTimestamp: now,
		Symbol: order.Symbol, OrderId: order.Id, CancelledTime: now,
	}
	if err := order.Apply(cancelled); err != nil {
		common.PanicInvariant(err.Error())
	}
	s.sink.Emit(cancelled)
	_ = reason
	return nil
}

// ModifyOrder validates newPrice (the candidate replacement, per §9
// OQ2) against the admission check; on failure it emits
// OrderCancelReject with reason code "INVALID PRICE" and leaves the
// order untouched — a rejection is not a lifecycle transition, so it is
// never applied to the Order. On success it applies newPrice and emits
// OrderModified. Precondition: order must be working.
func (s *Simulator) ModifyOrder(order *common.Order, newPrice fixed.Point) error {
	if _, exists := s.workingIndex[order.Id]; !exists {
		return common.NewPreconditionError("ModifyOrder", "order not in working set: "+string(order.Id))
	}

	now := s.clock.Now()
	reject, _, _, _ := s.evaluateAdmissionAt(order, newPrice)

	if reject {
		cancelReject := common.OrderCancelReject{
			EventId: s.ids.NextEventId(), EventTimestamp: now,
			Symbol: order.Symbol, OrderId: order.Id, RejectedTime: now,
			ReasonCode: "INVALID PRICE", ReasonText: "INVALID PRICE",
		}
		s.sink.Emit(cancelReject)
		return nil
	}

	brokerId := synthBrokerId(order.Id)
	modified := common.OrderModified{
		EventId: s.ids.NextEventId(), EventTimestamp: now,
		Symbol: order.Symbol, OrderId: order.Id, BrokerId: brokerId,
		NewPrice: newPrice, ModifiedTime: now,
	}
	if err := order.Apply(modified); err != nil {
		common.PanicInvariant(err.Error())
	}
	s.sink.Emit(modified)
	return nil
}

// SetInitialIteration delegates to the bar cursor to wind the simulated
// clock forward to the strategy's warm-up point.
func (s *Simulator) SetInitialIteration(to time.Time, step time.Duration) {
	s.cursor.SetInitialIteration(to, step)
}

// Iterate advances the simulator by one stepped timestamp: it rolls the
// daily cash anchor over on a calendar-day change, scans the working
// order set for fills and expiries, and advances the bar cursor.
func (s *Simulator) Iterate(t time.Time) {
	s.clock.SetTime(t)

	if s.account.RolloverDay(t) {
		s.emitAccountSnapshot()
	}

	s.scanWorkingOrders(t)
	s.cursor.Advance()
}

// scanWorkingOrders walks a snapshot of the working-order slice in
// insertion order, resolving fills and expiries against the current
// bar's high/low. Mutations during the scan (fills, expiries) only
// affect subsequent iterations. Fills take precedence over expiry
// within the same iteration.
func (s *Simulator) scanWorkingOrders(t time.Time) {
	snapshot := make([]*common.Order, len(s.working))
	copy(snapshot, s.working)

	for _, order := range snapshot {
		if _, stillWorking := s.workingIndex[order.Id]; !stillWorking {
			continue
		}

		filled, fillPrice := s.evaluateFill(order)
		if filled {
			s.removeWorking(order.Id)
			s.fillOrder(order, fillPrice, t)
			continue
		}

		if !order.ExpireTime.IsZero() && !t.Before(order.ExpireTime) {
			s.removeWorking(order.Id)
			expired := common.OrderExpired{
				EventId: s.ids.NextEventId(), EventTimestamp: t,
				Symbol: order.Symbol, OrderId: order.Id, ExpiredTime: t,
			}
			if err := order.Apply(expired); err != nil {
				common.PanicInvariant(err.Error())
			}
			s.sink.Emit(expired)
		}
	}
}

// evaluateFill applies the working-order scan rules of the iteration
// algorithm: a typed switch over order.Type, never the truthy-constant
// form the source used, which made the LIMIT branch unreachable.
func (s *Simulator) evaluateFill(order *common.Order) (bool, fixed.Point) {
	slip := s.slippageForOrder(order)

	switch order.Side {
	case common.OrderSideBuy:
		h := s.cursor.HighestAsk(order.Symbol)
		if order.Type.IsStopLike() {
			if h.Gte(order.Price) {
				return true, order.Price.Add(slip)
			}
		} else {
			if h.Lt(order.Price) {
				return true, order.Price.Add(slip)
			}
		}

	case common.OrderSideSell:
		l := s.cursor.LowestBid(order.Symbol)
		if order.Type.IsStopLike() {
			if l.Lte(order.Price) {
				return true, order.Price.Sub(slip)
			}
		} else {
			if l.Gt(order.Price) {
				return true, order.Price.Sub(slip)
			}
		}
	}
	return false, fixed.Zero
}

// evaluateAdmission implements the §4.5.3 admission-price checks used by
// SubmitOrder: the order's own Price is what gets validated.
func (s *Simulator) evaluateAdmission(order *common.Order) (reject bool, reason string, fillNow bool, fillPrice fixed.Point) {
	return s.evaluateAdmissionAt(order, order.Price)
}

// evaluateAdmissionAt runs the §4.5.3 checks against an explicit price
// rather than order.Price, so ModifyOrder can validate the candidate
// new_price before it is ever applied to the order (§9 OQ2: new_price is
// the value being admitted, not the price the order already holds).
func (s *Simulator) evaluateAdmissionAt(order *common.Order, price fixed.Point) (reject bool, reason string, fillNow bool, fillPrice fixed.Point) {
	switch order.Type {
	case common.OrderTypeMarket, common.OrderTypeLimit, common.OrderTypeStopMarket,
		common.OrderTypeStopLimit, common.OrderTypeMarketIfTouched:
	default:
		common.PanicInvariant("unknown order type for order " + string(order.Id))
	}

	ca := s.cursor.ClosingAsk(order.Symbol)
	cb := s.cursor.ClosingBid(order.Symbol)
	slip := s.slippageForOrder(order)

	if order.Type == common.OrderTypeMarket {
		if order.Side == common.OrderSideBuy {
			return false, "", true, ca.Add(slip)
		}
		return false, "", true, cb.Sub(slip)
	}

	switch order.Side {
	case common.OrderSideBuy:
		if order.Type.IsStopLike() {
			if price.Lt(ca) {
				return true, "stop price is below the ask " + ca.String(), false, fixed.Zero
			}
		} else {
			if price.Gt(ca) {
				return true, "limit price is above the ask " + ca.String(), false, fixed.Zero
			}
		}
	case common.OrderSideSell:
		if order.Type.IsStopLike() {
			if price.Gt(cb) {
				return true, "stop price is above the bid " + cb.String(), false, fixed.Zero
			}
		} else {
			if price.Lt(cb) {
				return true, "limit price is below the bid " + cb.String(), false, fixed.Zero
			}
		}
	}
	return false, "", false, fixed.Zero
}

func (s *Simulator) slippageForOrder(order *common.Order) fixed.Point {
	return s.slippageFor(order.Symbol, s.slippageTicks)
}

func synthBrokerId(id common.OrderId) string       { return "B" + string(id) }
func synthExecutionId(id common.OrderId) string     { return "E" + string(id) }
func synthExecutionTicket(id common.OrderId) string { return "ET" + string(id) }

// fillOrder implements _fill_order: emit OrderFilled with the synthetic
// execution identifiers, emit the settlement AccountEvent for the fill
// itself, then adjust the symbol's position and emit a second AccountEvent
// as the positions hook (matching the two-AccountEvent sequence spelled
// out for the MARKET BUY scenario).
func (s *Simulator) fillOrder(order *common.Order, fillPrice fixed.Point, t time.Time) {
	filled := common.OrderFilled{
		EventId: s.ids.NextEventId(), EventTimestamp: t,
		Symbol: order.Symbol, OrderId: order.Id,
		ExecutionId:     synthExecutionId(order.Id),
		ExecutionTicket: synthExecutionTicket(order.Id),
		Side:            order.Side, Quantity: order.Quantity,
		FillPrice: fillPrice, ExecutionTime: t,
	}

	if err := order.Apply(filled); err != nil {
		common.PanicInvariant(err.Error())
	}
	s.sink.Emit(filled)
	s.emitAccountSnapshot()

	s.adjustPositions(order.Symbol, filled)
	s.emitAccountSnapshot()
}

func (s *Simulator) adjustPositions(symbol string, filled common.OrderFilled) {
	key := strings.ToUpper(symbol)

	position, ok := s.openPositions[key]
	if !ok {
		s.positionSeq[key]++
		position = common.NewPosition(common.NewPositionId(key, s.positionSeq[key]), symbol, filled.ExecutionTime)
		s.openPositions[key] = position
	}

	position.Apply(filled)

	if position.IsExited {
		delete(s.openPositions, key)
		s.completedPositions[position.Id] = position
	}
}

func (s *Simulator) addWorking(order *common.Order) {
	s.workingIndex[order.Id] = len(s.working)
	s.working = append(s.working, order)
}

func (s *Simulator) removeWorking(id common.OrderId) {
	idx, ok := s.workingIndex[id]
	if !ok {
		return
	}
	delete(s.workingIndex, id)
	s.working = append(s.working[:idx], s.working[idx+1:]...)
	for i := idx; i < len(s.working); i++ {
		s.workingIndex[s.working[i].Id] = i
	}
}

// WorkingCount reports the current size of the working-order set. Used
// by the quantified-invariant tests: it must equal the number of
// OrderWorking events emitted minus the number of terminal events for
// those orders.
func (s *Simulator) WorkingCount() int { return len(s.working) }

func (s *Simulator) OpenPosition(symbol string) (*common.Position, bool) {
	p, ok := s.openPositions[strings.ToUpper(symbol)]
	return p, ok
}

func (s *Simulator) CompletedPosition(id common.PositionId) (*common.Position, bool) {
	p, ok := s.completedPositions[id]
	return p, ok
}

func (s *Simulator) Account() *common.Account { return s.account }
