package check_compatibility

import (
	checkCompatibility "github.com/m04kA/SMC-ParkingService/internal/usecase/check_compatibility"
)

// CompatibilityResponse HTTP response model
type CompatibilityResponse struct {
	SpaceID    string   `json:"spaceId"`
	VehicleID  string   `json:"vehicleId"`
	Compatible bool     `json:"compatible"`
	Issues     []string `json:"issues"`
	Warnings   []string `json:"warnings"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkCompatibility.Response) *CompatibilityResponse {
	result := &CompatibilityResponse{
		SpaceID:    resp.SpaceID,
		VehicleID:  resp.VehicleID,
		Compatible: resp.Compatible,
		Issues:     resp.Issues,
		Warnings:   resp.Warnings,
	}
	if result.Issues == nil {
		result.Issues = []string{}
	}
	if result.Warnings == nil {
		result.Warnings = []string{}
	}
	return result
}
