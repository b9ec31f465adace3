package profileservice

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// Vehicle модель транспортного средства из ProfileService
// Габариты приходят строками как есть, разбор на стороне проверки совместимости
type Vehicle struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Type       string `json:"type"`
	Make       string `json:"make"`
	Model      string `json:"model"`
	Length     string `json:"length"`
	Width      string `json:"width"`
	Height     string `json:"height"`
	IsElectric bool   `json:"is_electric"`
}

// ToDomain конвертирует модель сервиса в domain
func (v *Vehicle) ToDomain() *domain.Vehicle {
	return &domain.Vehicle{
		ID:         v.ID,
		OwnerID:    v.UserID,
		Type:       domain.VehicleType(v.Type),
		Length:     v.Length,
		Width:      v.Width,
		Height:     v.Height,
		IsElectric: v.IsElectric,
	}
}

// ErrorResponse модель ошибки от ProfileService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
