package create_hold

import (
	"context"

	createHold "github.com/linkhub/booking-service/internal/usecase/create_hold"
)

type CreateHoldUseCase interface {
	Execute(ctx context.Context, req *createHold.Request) (*createHold.Response, error)
}

// HoldMetrics бизнес-метрики удержаний, может быть nil при выключенных метриках
type HoldMetrics interface {
	IncHoldsCreated()
	IncHoldConflicts()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
