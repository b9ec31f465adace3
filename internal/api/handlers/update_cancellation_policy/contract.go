package update_cancellation_policy

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/policy/models"
)

type PolicyService interface {
	Upsert(ctx context.Context, req *models.UpsertPolicyRequest) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
