package check_compatibility

// Request модель запроса проверки совместимости
type Request struct {
	UserID    string // ID пользователя (из X-User-ID)
	SpaceID   string
	VehicleID string
}

// Response результат проверки совместимости
type Response struct {
	SpaceID    string
	VehicleID  string
	Compatible bool
	Issues     []string
	Warnings   []string
}
