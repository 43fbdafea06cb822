package controllers

import (
	"errors"
	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/models"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/providers"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/services"
	"net/http"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type AlertsController struct {
	logger  providers.Logger
	service services.AlertsServiceInterface
	cache   providers.CacheProviderInterface
}

type acknowledgeRequest struct {
	ProductID      string `json:"productId" validate:"required"`
	Checked        bool   `json:"checked"`
	AcknowledgedBy string `json:"acknowledgedBy" validate:"maxLen:128"`
}

type filterRequest struct {
	Filter string `json:"filter" validate:"required"`
}

type filterResponse struct {
	Filter models.FilterState `json:"filter"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewAlertsController(logger providers.Logger, service services.AlertsServiceInterface, cache providers.CacheProviderInterface) *AlertsController {
	return &AlertsController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (ac *AlertsController) respond(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		ac.logger.Errorf(providers.TypeApp, "Error encoding response: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, gson)
}

func (ac *AlertsController) fail(w http.ResponseWriter, status int, message string) {
	ac.respond(w, status, errorResponse{Error: message})
}

func (ac *AlertsController) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		ac.fail(w, http.StatusBadRequest, "Bad Request")
		return false
	}
	return true
}

func (ac *AlertsController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)
	writeJSON(w, http.StatusOK, gson)
}

// statusFor maps controller errors onto HTTP statuses. Anything unrecognised
// came from a backend and is reported as a bad gateway.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnknownProduct):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotReady):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// GetAlerts serves the filtered table. The view version is part of the key,
// so any change to rows, acknowledgments or the filter misses the cache.
func (ac *AlertsController) GetAlerts(w http.ResponseWriter, r *http.Request) {
	version := ac.service.Version()
	ac.serveFromCacheOrCompute(w, providers.ViewCacheKey(version), func() (any, error) {
		return ac.service.View(), nil
	})
}

func (ac *AlertsController) Acknowledge(w http.ResponseWriter, r *http.Request) {
	var payload acknowledgeRequest
	if !ac.decode(w, r, &payload) {
		return
	}
	v := validate.Struct(&payload)
	if !v.Validate() {
		ac.fail(w, http.StatusBadRequest, v.Errors.One())
		return
	}

	err := ac.service.ToggleAcknowledgment(r.Context(), payload.ProductID, payload.Checked, payload.AcknowledgedBy)
	if err != nil {
		message := err.Error()
		if n := ac.service.Notice(); n != nil && n.Level == services.NoticeError {
			message = n.Message
		}
		ac.logger.Warnf(providers.TypePost, "Acknowledgment of %s failed: %s", payload.ProductID, err)
		ac.fail(w, statusFor(err), message)
		return
	}
	ac.respond(w, http.StatusOK, ac.service.View())
}

func (ac *AlertsController) GetFilter(w http.ResponseWriter, r *http.Request) {
	ac.respond(w, http.StatusOK, filterResponse{Filter: ac.service.Filter()})
}

func (ac *AlertsController) SetFilter(w http.ResponseWriter, r *http.Request) {
	var payload filterRequest
	if !ac.decode(w, r, &payload) {
		return
	}
	state, err := models.ParseFilterState(payload.Filter)
	if err != nil {
		ac.fail(w, statusFor(err), err.Error())
		return
	}
	ac.service.SetFilter(state)
	ac.respond(w, http.StatusOK, ac.service.View())
}

// ExternalFilters receives the hosting page's filter conditions and reloads rows with them.
func (ac *AlertsController) ExternalFilters(w http.ResponseWriter, r *http.Request) {
	var conditions []models.Condition
	if !ac.decode(w, r, &conditions) {
		return
	}
	if err := ac.service.OnExternalFilterChange(r.Context(), conditions); err != nil {
		ac.logger.Errorf(providers.TypePost, "External filter change failed: %s", err)
		ac.fail(w, statusFor(err), err.Error())
		return
	}
	ac.respond(w, http.StatusOK, ac.service.View())
}

func (ac *AlertsController) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := ac.service.Refresh(r.Context()); err != nil {
		ac.fail(w, statusFor(err), err.Error())
		return
	}
	ac.respond(w, http.StatusOK, ac.service.View())
}

func (ac *AlertsController) GetNotice(w http.ResponseWriter, r *http.Request) {
	n := ac.service.Notice()
	if n == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	ac.respond(w, http.StatusOK, n)
}

func (ac *AlertsController) ExportAcknowledged(w http.ResponseWriter, r *http.Request) {
	ac.respond(w, http.StatusOK, ac.service.AcknowledgedExport())
}
