package search_spaces

import (
	"context"

	searchSpaces "github.com/m04kA/SMC-ParkingService/internal/usecase/search_spaces"
)

type SearchSpacesUseCase interface {
	Execute(ctx context.Context, req *searchSpaces.Request) (*searchSpaces.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
