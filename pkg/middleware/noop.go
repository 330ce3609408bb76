package middleware

import (
	"context"

	"github.com/ravikoss/backforge/pkg/common"
)

//goland:noinspection ALL
var (
	NoopTickHdl              = func(context.Context, common.Tick) {}
	NoopBarHdl               = func(context.Context, common.Bar) {}
	NoopOrderSubmittedHdl    = func(context.Context, common.OrderSubmitted) {}
	NoopOrderAcceptedHdl     = func(context.Context, common.OrderAccepted) {}
	NoopOrderRejectedHdl     = func(context.Context, common.OrderRejected) {}
	NoopOrderWorkingHdl      = func(context.Context, common.OrderWorking) {}
	NoopOrderModifiedHdl     = func(context.Context, common.OrderModified) {}
	NoopOrderCancelledHdl    = func(context.Context, common.OrderCancelled) {}
	NoopOrderCancelRejectHdl = func(context.Context, common.OrderCancelReject) {}
	NoopOrderExpiredHdl      = func(context.Context, common.OrderExpired) {}
	NoopOrderFilledHdl       = func(context.Context, common.OrderFilled) {}
	NoopAccountEventHdl      = func(context.Context, common.AccountEvent) {}
)
