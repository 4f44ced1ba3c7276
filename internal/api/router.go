package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/create_booking"
	createTimeslotHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/create_timeslot"
	deleteTimeslotHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/delete_timeslot"
	getBookingHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/get_booking"
	listBookingOptionsHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/list_booking_options"
	listBookingsHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/list_bookings"
	listTimeslotsHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/list_timeslots"
	paymentWebhookHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/payment_webhook"
	updateTimeslotHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/update_timeslot"
	upsertBookingOptionHandler "github.com/m04kA/wellmio-booking/internal/api/handlers/upsert_booking_option"
	"github.com/m04kA/wellmio-booking/internal/api/middleware"
	"github.com/m04kA/wellmio-booking/pkg/metrics"
)

// Handlers обработчики всех маршрутов
type Handlers struct {
	ListTimeslots       *listTimeslotsHandler.Handler
	CreateBooking       *createBookingHandler.Handler
	GetBooking          *getBookingHandler.Handler
	PaymentWebhook      *paymentWebhookHandler.Handler
	ListBookingOptions  *listBookingOptionsHandler.Handler
	UpsertBookingOption *upsertBookingOptionHandler.Handler
	CreateTimeslot      *createTimeslotHandler.Handler
	UpdateTimeslot      *updateTimeslotHandler.Handler
	DeleteTimeslot      *deleteTimeslotHandler.Handler
	ListBookings        *listBookingsHandler.Handler
}

// RouterConfig параметры маршрутизации
type RouterConfig struct {
	JWTSecret      string
	AdminRole      string
	RequestTimeout time.Duration

	// Metrics nil отключает HTTP метрики и /metrics
	Metrics     *metrics.Metrics
	MetricsPath string
	ServiceName string
}

// NewRouter собирает mux роутер сервиса
func NewRouter(h *Handlers, cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()

	if cfg.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(cfg.Metrics, cfg.ServiceName))
		r.Handle(cfg.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты
	r.HandleFunc("/timeslots", h.ListTimeslots.Handle).Methods(http.MethodGet)

	// Создание бронирования и статус для страницы подтверждения
	r.HandleFunc("/bookings", h.CreateBooking.Handle).Methods(http.MethodPost)
	r.HandleFunc("/bookings/{bookingId}", h.GetBooking.Handle).Methods(http.MethodGet)

	// Webhook платежного провайдера (проверка по подписи)
	r.HandleFunc("/payments/webhook", h.PaymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Bearer JWT с ролью администратора)
	// ============================================================

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(cfg.JWTSecret), middleware.RequireAdmin(cfg.AdminRole))

	// --- Настройки бронирования ---
	admin.HandleFunc("/booking-options", h.ListBookingOptions.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/booking-options", h.UpsertBookingOption.Handle).Methods(http.MethodPut)

	// --- Слоты ---
	admin.HandleFunc("/timeslots", h.CreateTimeslot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/timeslots/{slotId}", h.UpdateTimeslot.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/timeslots/{slotId}", h.DeleteTimeslot.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", h.ListBookings.Handle).Methods(http.MethodGet)

	return r
}
