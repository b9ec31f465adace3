package domain

// VehicleType тип транспортного средства
type VehicleType string

const (
	VehicleCar        VehicleType = "car"
	VehicleSUV        VehicleType = "suv"
	VehicleVan        VehicleType = "van"
	VehicleTruck      VehicleType = "truck"
	VehicleMotorcycle VehicleType = "motorcycle"
)

// Vehicle транспортное средство из сервиса профилей
// Габариты приходят строками и разбираются при проверке совместимости
type Vehicle struct {
	ID         string
	OwnerID    string
	Type       VehicleType
	Length     string
	Width      string
	Height     string
	IsElectric bool
}

// Compatibility результат проверки совместимости машины и места
type Compatibility struct {
	Compatible bool
	Issues     []string
	Warnings   []string
}
