package search_spaces

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса поиска мест
type Request struct {
	MaxPrice    *decimal.Decimal
	MaxDistance *decimal.Decimal
	EVCharging  bool
	Covered     bool
	Security    bool
	MinHeight   *decimal.Decimal
	SortBy      string

	// Точка поиска, задается парой
	Lat *decimal.Decimal
	Lng *decimal.Decimal
}

// Response модель ответа со списком подходящих мест
type Response struct {
	Spaces []*domain.ParkingSpace
	SortBy string
}
