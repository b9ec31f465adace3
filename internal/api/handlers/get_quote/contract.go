package get_quote

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/pricing"
	getQuote "github.com/m04kA/SMC-ParkingService/internal/usecase/get_quote"
)

type GetQuoteUseCase interface {
	Execute(ctx context.Context, req *getQuote.Request) (*pricing.Quote, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
