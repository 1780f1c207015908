package confirm_hold

import (
	"context"

	confirmHold "github.com/linkhub/booking-service/internal/usecase/confirm_hold"
)

type ConfirmHoldUseCase interface {
	Execute(ctx context.Context, req *confirmHold.Request) (*confirmHold.Response, error)
}

// HoldMetrics бизнес-метрики удержаний, может быть nil при выключенных метриках
type HoldMetrics interface {
	IncHoldsConfirmed()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
