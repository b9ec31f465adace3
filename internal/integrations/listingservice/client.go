package listingservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с ListingService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ListingService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSpace получает парковочное место по ID
func (c *Client) GetSpace(ctx context.Context, spaceID string) (*domain.ParkingSpace, error) {
	endpoint := fmt.Sprintf("%s/internal/spaces/%s", c.baseURL, url.PathEscape(spaceID))

	var space Space
	if err := c.get(ctx, endpoint, &space); err != nil {
		return nil, err
	}

	return space.ToDomain(), nil
}

// SearchSpaces получает кандидатов для поиска
// Координаты опциональны, при их наличии сервис заполняет расстояние
func (c *Client) SearchSpaces(ctx context.Context, lat, lng *decimal.Decimal) ([]*domain.ParkingSpace, error) {
	query := url.Values{}
	if lat != nil && lng != nil {
		query.Set("lat", lat.String())
		query.Set("lng", lng.String())
	}

	endpoint := fmt.Sprintf("%s/internal/spaces", c.baseURL)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var resp SearchResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	spaces := make([]*domain.ParkingSpace, 0, len(resp.Spaces))
	for i := range resp.Spaces {
		spaces = append(spaces, resp.Spaces[i].ToDomain())
	}

	c.log.Info("ListingService: search returned %d spaces", len(spaces))
	return spaces, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrSpaceNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
