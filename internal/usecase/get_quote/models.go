package get_quote

import "time"

// Request модель запроса предварительного расчета цены
type Request struct {
	SpaceID   string
	StartTime time.Time
	EndTime   time.Time
}
