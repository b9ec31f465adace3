package list_host_policies

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/policy/models"
)

type PolicyService interface {
	ListByHost(ctx context.Context, hostID, userID string) (*models.PolicyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
