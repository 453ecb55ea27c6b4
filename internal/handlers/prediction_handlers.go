package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"yield-platform/internal/catalog"
	"yield-platform/internal/models"
	"yield-platform/internal/repository"
	"yield-platform/internal/services"
	"yield-platform/pkg/logging"
	"yield-platform/pkg/metrics"
)

// PredictionHandler handles the prediction API endpoints
type PredictionHandler struct {
	geocodeService    *services.GeocodeService
	predictionService *services.PredictionService
	logger            *logging.StructuredLogger
	metrics           *metrics.Collector
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(
	geocodeService *services.GeocodeService,
	predictionService *services.PredictionService,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *PredictionHandler {
	return &PredictionHandler{
		geocodeService:    geocodeService,
		predictionService: predictionService,
		logger:            logger,
		metrics:           metricsCollector,
	}
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
}

// reverseGeocodeRequest is the body of POST /reverse_geocode. Pointers
// distinguish missing coordinates from zero values.
type reverseGeocodeRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// ReverseGeocode handles POST /reverse_geocode
func (h *PredictionHandler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		h.metrics.APIRequestDuration.WithLabelValues("/reverse_geocode").Observe(time.Since(startTime).Seconds())
	}()

	var req reverseGeocodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, r, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if req.Lat == nil || req.Lon == nil {
		h.sendError(w, r, "Missing lat/lon", http.StatusBadRequest)
		return
	}

	// Provider failures inside Resolve degrade to null results; the
	// request itself still succeeds.
	result := h.geocodeService.Resolve(ctx, *req.Lat, *req.Lon)

	h.metrics.RecordAPIRequest("/reverse_geocode", "POST", "200")
	h.sendJSON(w, result, http.StatusOK)
}

// predictResponse is the body of a successful POST /predict.
type predictResponse struct {
	Prediction float64 `json:"prediction"`
}

// Predict handles POST /predict
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		h.metrics.APIRequestDuration.WithLabelValues("/predict").Observe(time.Since(startTime).Seconds())
	}()

	if err := r.ParseForm(); err != nil {
		h.sendError(w, r, "invalid form body", http.StatusBadRequest)
		return
	}

	in, err := models.ParsePredictionForm(r.PostForm)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			h.metrics.RecordAPIError("validation_error", "/predict")
			h.sendError(w, r, verr.Error(), http.StatusBadRequest)
			return
		}
		h.sendError(w, r, "invalid input", http.StatusBadRequest)
		return
	}

	yield, err := h.predictionService.Predict(ctx, in)
	if err != nil {
		h.metrics.RecordAPIError("prediction_error", "/predict")
		h.sendError(w, r, "prediction failed", http.StatusBadGateway)
		return
	}

	h.metrics.RecordAPIRequest("/predict", "POST", "200")
	h.sendJSON(w, predictResponse{Prediction: yield}, http.StatusOK)
}

// catalogResponse lists the code tables clients need to build a predict
// request.
type catalogResponse struct {
	States    map[int]string     `json:"states"`
	Districts []catalog.District `json:"districts"`
	Crops     map[int]string     `json:"crops"`
	Seasons   map[int]string     `json:"seasons"`
}

// GetCatalog handles GET /api/catalog
func (h *PredictionHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	h.metrics.RecordAPIRequest("/api/catalog", "GET", "200")
	h.sendJSON(w, catalogResponse{
		States:    catalog.States,
		Districts: catalog.Districts,
		Crops:     catalog.Crops,
		Seasons:   catalog.Seasons,
	}, http.StatusOK)
}

// GetPredictions handles GET /api/predictions
func (h *PredictionHandler) GetPredictions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		h.metrics.APIRequestDuration.WithLabelValues("/api/predictions").Observe(time.Since(startTime).Seconds())
	}()

	if !h.predictionService.HistoryEnabled() {
		h.sendError(w, r, "prediction history is disabled", http.StatusNotFound)
		return
	}

	page := 1
	limit := 100

	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 1000 {
		limit = l
	}

	filter := repository.PredictionFilter{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	if s := r.URL.Query().Get("district_code"); s != "" {
		code, err := strconv.Atoi(s)
		if err != nil || !catalog.ValidDistrict(code) {
			h.sendError(w, r, "invalid district_code", http.StatusBadRequest)
			return
		}
		filter.DistrictCode = &code
	}

	if s := r.URL.Query().Get("crop_code"); s != "" {
		code, err := strconv.Atoi(s)
		if err != nil || !catalog.ValidCrop(code) {
			h.sendError(w, r, "invalid crop_code", http.StatusBadRequest)
			return
		}
		filter.CropCode = &code
	}

	records, total, err := h.predictionService.History(ctx, filter)
	if err != nil {
		h.logger.Error(ctx, "[API_GET_PREDICTIONS_ERROR] Failed to get prediction history", logging.Fields{
			"filter": filter,
		}, err)
		h.metrics.RecordAPIError("internal_error", "/api/predictions")
		h.sendError(w, r, "failed to retrieve prediction history", http.StatusInternalServerError)
		return
	}

	totalPages := (total + limit - 1) / limit

	h.metrics.RecordAPIRequest("/api/predictions", "GET", "200")
	h.sendJSON(w, PaginatedResponse{
		Data:       records,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, http.StatusOK)
}

// HealthCheck handles GET /health
func (h *PredictionHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	h.logger.Debug(ctx, "[HEALTH_CHECK] Health check requested", logging.Fields{})
	h.sendJSON(w, status, http.StatusOK)
}

// sendJSON sends a JSON response
func (h *PredictionHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response
func (h *PredictionHandler) sendError(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	h.metrics.RecordAPIRequest(r.URL.Path, r.Method, strconv.Itoa(statusCode))

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	h.sendJSON(w, response, statusCode)
}

// RegisterRoutes registers all prediction API routes
func (h *PredictionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/reverse_geocode", h.ReverseGeocode).Methods("POST")
	router.HandleFunc("/predict", h.Predict).Methods("POST")
	router.HandleFunc("/api/catalog", h.GetCatalog).Methods("GET")
	router.HandleFunc("/api/predictions", h.GetPredictions).Methods("GET")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
	router.HandleFunc("/api/docs", SwaggerUI).Methods("GET")
	router.HandleFunc("/api/docs/openapi.json", OpenAPISpec).Methods("GET")
}
