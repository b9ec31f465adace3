package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

// Handlers обработчики всех маршрутов API
type Handlers struct {
	// Публичные
	SearchSpaces          http.HandlerFunc
	GetQuote              http.HandlerFunc
	GetCancellationPolicy http.HandlerFunc

	// Бронирования
	CreateBooking       http.HandlerFunc
	GetBooking          http.HandlerFunc
	UpdateBookingStatus http.HandlerFunc
	CancelBooking       http.HandlerFunc
	ExtendBooking       http.HandlerFunc
	ReportIssue         http.HandlerFunc
	CheckIn             http.HandlerFunc
	CheckOut            http.HandlerFunc
	GetUserBookings     http.HandlerFunc
	GetSpaceBookings    http.HandlerFunc

	CheckCompatibility http.HandlerFunc

	// Политики отмены хоста
	ListHostPolicies         http.HandlerFunc
	UpdateCancellationPolicy http.HandlerFunc
	DeleteCancellationPolicy http.HandlerFunc
}

// Options необязательные части роутера, nil отключает
type Options struct {
	Metrics         *metrics.Metrics
	MetricsPath     string
	MetricsGatherer prometheus.Gatherer
	RateLimiter     *middleware.RateLimiter
}

// NewRouter собирает роутер с префиксом /api/v1
func NewRouter(h Handlers, opts Options) *mux.Router {
	r := mux.NewRouter()

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))

		// Metrics endpoint (публичный, без аутентификации)
		if opts.MetricsPath != "" {
			gatherer := opts.MetricsGatherer
			if gatherer == nil {
				gatherer = prometheus.DefaultGatherer
			}
			r.Handle(opts.MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
		}
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	if opts.RateLimiter != nil {
		api.Use(opts.RateLimiter.Middleware)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/spaces/search", h.SearchSpaces).Methods(http.MethodGet)
	api.HandleFunc("/spaces/{spaceId}/quote", h.GetQuote).Methods(http.MethodGet)
	api.HandleFunc("/spaces/{spaceId}/cancellation-policy", h.GetCancellationPolicy).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования арендатора ---
	protected.HandleFunc("/bookings", h.CreateBooking).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", h.GetBooking).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", h.UpdateBookingStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", h.CancelBooking).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/extend", h.ExtendBooking).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/report-issue", h.ReportIssue).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/check-in", h.CheckIn).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/check-out", h.CheckOut).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/bookings", h.GetUserBookings).Methods(http.MethodGet)
	protected.HandleFunc("/spaces/{spaceId}/compatibility", h.CheckCompatibility).Methods(http.MethodGet)

	// --- Управление местами (для хостов) ---
	protected.HandleFunc("/spaces/{spaceId}/bookings", h.GetSpaceBookings).Methods(http.MethodGet)
	protected.HandleFunc("/hosts/{hostId}/cancellation-policies", h.ListHostPolicies).Methods(http.MethodGet)
	protected.HandleFunc("/hosts/{hostId}/cancellation-policies", h.UpdateCancellationPolicy).Methods(http.MethodPut)
	protected.HandleFunc("/hosts/{hostId}/cancellation-policies", h.DeleteCancellationPolicy).Methods(http.MethodDelete)

	return r
}
