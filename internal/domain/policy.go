package domain

import "time"

// CancellationPolicy правила отмены бронирований хоста
// Поддерживается иерархия:
// 1. Конкретное место хоста (host_id, space_id)
// 2. Все места хоста (host_id, NULL)
// 3. Значения сервиса по умолчанию
type CancellationPolicy struct {
	ID                         int64
	HostID                     string
	SpaceID                    *string // NULL = политика для всех мест хоста
	FreeCancellationHours      int
	LateCancellationFeePercent int
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// IsHostWide политика действует на все места хоста
func (p *CancellationPolicy) IsHostWide() bool {
	return p.SpaceID == nil
}

// IsDefault политика не сохранена и взята из конфигурации
func (p *CancellationPolicy) IsDefault() bool {
	return p.ID == 0
}

// FreeCancellationDeadline момент, после которого отмена платная
func (p *CancellationPolicy) FreeCancellationDeadline(start time.Time) time.Time {
	return start.Add(-time.Duration(p.FreeCancellationHours) * time.Hour)
}
