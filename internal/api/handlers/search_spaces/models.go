package search_spaces

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	searchSpaces "github.com/m04kA/SMC-ParkingService/internal/usecase/search_spaces"
)

// SpaceResponse HTTP response model
type SpaceResponse struct {
	ID                       string  `json:"id"`
	HostID                   string  `json:"hostId"`
	Title                    string  `json:"title"`
	Address                  string  `json:"address"`
	PricePerHour             string  `json:"pricePerHour"`
	MinimumDurationHours     int     `json:"minimumDurationHours"`
	FirstHourDiscountEnabled bool    `json:"firstHourDiscountEnabled"`
	FirstHourDiscountPercent int     `json:"firstHourDiscountPercent,omitempty"`
	EVCharging               bool    `json:"evCharging"`
	Covered                  bool    `json:"covered"`
	Security                 bool    `json:"security"`
	AllowsTrucks             bool    `json:"allowsTrucks"`
	HeightLimit              *string `json:"heightLimit,omitempty"`
	Distance                 *string `json:"distance,omitempty"`
}

// SearchResponse HTTP response model
type SearchResponse struct {
	Spaces []SpaceResponse `json:"spaces"`
	SortBy string          `json:"sortBy"`
	Total  int             `json:"total"`
}

// ToUseCaseRequest разбирает query параметры поиска
func ToUseCaseRequest(q url.Values) (*searchSpaces.Request, error) {
	req := &searchSpaces.Request{SortBy: q.Get("sortBy")}

	var err error
	if req.MaxPrice, err = parseDecimal(q, "maxPrice"); err != nil {
		return nil, err
	}
	if req.MaxDistance, err = parseDecimal(q, "maxDistance"); err != nil {
		return nil, err
	}
	if req.MinHeight, err = parseDecimal(q, "minHeight"); err != nil {
		return nil, err
	}
	if req.Lat, err = parseDecimal(q, "lat"); err != nil {
		return nil, err
	}
	if req.Lng, err = parseDecimal(q, "lng"); err != nil {
		return nil, err
	}
	if req.EVCharging, err = parseBool(q, "evCharging"); err != nil {
		return nil, err
	}
	if req.Covered, err = parseBool(q, "covered"); err != nil {
		return nil, err
	}
	if req.Security, err = parseBool(q, "security"); err != nil {
		return nil, err
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchSpaces.Response) *SearchResponse {
	result := &SearchResponse{
		Spaces: make([]SpaceResponse, 0, len(resp.Spaces)),
		SortBy: resp.SortBy,
		Total:  len(resp.Spaces),
	}
	for _, s := range resp.Spaces {
		result.Spaces = append(result.Spaces, fromDomainSpace(s))
	}
	return result
}

func fromDomainSpace(s *domain.ParkingSpace) SpaceResponse {
	resp := SpaceResponse{
		ID:                       s.ID,
		HostID:                   s.HostID,
		Title:                    s.Title,
		Address:                  s.Address,
		PricePerHour:             s.PricePerHour.StringFixed(domain.MoneyPlaces),
		MinimumDurationHours:     s.MinimumDurationHours,
		FirstHourDiscountEnabled: s.FirstHourDiscountEnabled,
		FirstHourDiscountPercent: s.FirstHourDiscountPercent,
		EVCharging:               s.EVCharging,
		Covered:                  s.Covered,
		Security:                 s.Security,
		AllowsTrucks:             s.AllowsTrucks,
	}
	if s.HeightLimit != nil {
		v := s.HeightLimit.String()
		resp.HeightLimit = &v
	}
	if s.Distance != nil {
		v := s.Distance.StringFixed(2)
		resp.Distance = &v
	}
	return resp
}

func parseDecimal(q url.Values, key string) (*decimal.Decimal, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return &d, nil
}

func parseBool(q url.Values, key string) (bool, error) {
	raw := q.Get(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
