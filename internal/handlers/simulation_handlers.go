package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"resilience-platform/internal/economics"
	"resilience-platform/internal/models"
	"resilience-platform/internal/repository"
	"resilience-platform/internal/services"
	"resilience-platform/pkg/logging"
	"resilience-platform/pkg/metrics"
)

// SimulationHandler handles the platform's API endpoints
type SimulationHandler struct {
	simService   *services.SimulationService
	trendService *services.TrendsService
	econService  *services.EconomicsService
	logger       *logging.StructuredLogger
	metrics      *metrics.Collector
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(
	simService *services.SimulationService,
	trendService *services.TrendsService,
	econService *services.EconomicsService,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *SimulationHandler {
	return &SimulationHandler{
		simService:   simService,
		trendService: trendService,
		econService:  econService,
		logger:       logger,
		metrics:      metricsCollector,
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

// RunSimulation handles POST /api/simulations/{type}
func (h *SimulationHandler) RunSimulation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/simulations").Observe(duration.Seconds())
	}()

	simType, err := models.ParseSimulationType(mux.Vars(r)["type"])
	if err != nil {
		h.sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	var run *models.SimulationRun

	switch simType {
	case models.SimulationEnergy:
		var sc models.EnergyScenario
		if !h.decode(w, r, &sc) {
			return
		}
		run, err = h.simService.RunEnergy(ctx, sc)
	case models.SimulationWater:
		var sc models.WaterScenario
		if !h.decode(w, r, &sc) {
			return
		}
		run, err = h.simService.RunWater(ctx, sc)
	case models.SimulationAgriculture:
		var sc models.AgricultureScenario
		if !h.decode(w, r, &sc) {
			return
		}
		run, err = h.simService.RunAgriculture(ctx, sc)
	}

	if err != nil {
		h.sendDomainError(w, r, "/api/simulations", err)
		return
	}

	h.metrics.RecordAPIRequest("/api/simulations", "POST", "201")
	h.sendJSON(w, run, http.StatusCreated)
}

// ListRuns handles GET /api/simulations
func (h *SimulationHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, limit := h.pagination(r)
	filter := repository.RunFilter{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	if typeStr := r.URL.Query().Get("simulation_type"); typeStr != "" {
		simType, err := models.ParseSimulationType(typeStr)
		if err != nil {
			h.sendError(w, r, err.Error(), http.StatusBadRequest)
			return
		}
		filter.SimulationType = &simType
	}

	summaries, total, err := h.simService.ListRuns(ctx, filter)
	if err != nil {
		h.logger.Error(ctx, "[API_LIST_RUNS_ERROR] Failed to list runs", logging.Fields{}, err)
		h.metrics.RecordAPIError("internal_error", "/api/simulations")
		h.sendError(w, r, "failed to list simulation runs", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordAPIRequest("/api/simulations", "GET", "200")
	h.sendJSON(w, PaginatedResponse{
		Data:       summaries,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, http.StatusOK)
}

// GetRun handles GET /api/simulations/{id}
func (h *SimulationHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	runID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.sendError(w, r, "invalid run id", http.StatusBadRequest)
		return
	}

	run, err := h.simService.GetRun(ctx, runID)
	if err != nil {
		h.sendDomainError(w, r, "/api/simulations/{id}", err)
		return
	}

	h.metrics.RecordAPIRequest("/api/simulations/{id}", "GET", "200")
	h.sendJSON(w, run, http.StatusOK)
}

// GetTrends handles GET /api/simulations/{id}/trends/{region}
func (h *SimulationHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/trends").Observe(duration.Seconds())
	}()

	vars := mux.Vars(r)
	runID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		h.sendError(w, r, "invalid run id", http.StatusBadRequest)
		return
	}

	report, err := h.trendService.AnalyzeStoredSeries(ctx, runID, vars["region"])
	if err != nil {
		h.sendDomainError(w, r, "/api/trends", err)
		return
	}

	h.metrics.RecordAPIRequest("/api/trends", "GET", "200")
	h.sendJSON(w, report, http.StatusOK)
}

// AnalyzeSeries handles POST /api/trends for externally supplied series
func (h *SimulationHandler) AnalyzeSeries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var points []models.DataPoint
	if !h.decode(w, r, &points) {
		return
	}

	report := h.trendService.AnalyzeSeries(ctx, points)

	h.metrics.RecordAPIRequest("/api/trends", "POST", "200")
	h.sendJSON(w, report, http.StatusOK)
}

// CalculateEconomics handles POST /api/economics
func (h *SimulationHandler) CalculateEconomics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/economics").Observe(duration.Seconds())
	}()

	var req economics.ImpactRequest
	if !h.decode(w, r, &req) {
		return
	}

	analysis, err := h.econService.CalculateImpact(ctx, req)
	if err != nil {
		h.sendDomainError(w, r, "/api/economics", err)
		return
	}

	h.metrics.RecordAPIRequest("/api/economics", "POST", "200")
	h.sendJSON(w, analysis, http.StatusOK)
}

// ListRegions handles GET /api/regions
func (h *SimulationHandler) ListRegions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, limit := h.pagination(r)

	regions, err := h.simService.ListRegions(ctx, limit, (page-1)*limit)
	if err != nil {
		h.logger.Error(ctx, "[API_LIST_REGIONS_ERROR] Failed to list regions", logging.Fields{}, err)
		h.metrics.RecordAPIError("internal_error", "/api/regions")
		h.sendError(w, r, "failed to list regions", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordAPIRequest("/api/regions", "GET", "200")
	h.sendJSON(w, regions, http.StatusOK)
}

// HealthCheck handles GET /health
func (h *SimulationHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	h.logger.Debug(ctx, "[HEALTH_CHECK] Health check requested", logging.Fields{})
	h.sendJSON(w, status, http.StatusOK)
}

// pagination extracts page/limit query parameters with defaults
func (h *SimulationHandler) pagination(r *http.Request) (page, limit int) {
	page = 1
	limit = 100

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 1000 {
			limit = l
		}
	}

	return page, limit
}

// decode reads a JSON request body, sending a 400 on failure
func (h *SimulationHandler) decode(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		h.sendError(w, r, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// sendDomainError maps engine errors onto HTTP status codes
func (h *SimulationHandler) sendDomainError(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	var (
		rangeErr    *models.InvalidRangeError
		scenarioErr *models.InvalidScenarioError
		typeErr     *models.UnknownSimulationTypeError
		cropErr     *models.UnknownCropError
		regionErr   *models.UnknownRegionError
		notFound    *repository.NotFoundError
	)

	switch {
	case errors.As(err, &rangeErr), errors.As(err, &typeErr),
		errors.As(err, &cropErr), errors.As(err, &regionErr):
		h.metrics.RecordAPIError("validation_error", endpoint)
		h.sendError(w, r, err.Error(), http.StatusBadRequest)
	case errors.As(err, &scenarioErr):
		h.metrics.RecordAPIError("scenario_error", endpoint)
		h.sendError(w, r, err.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &notFound):
		h.sendError(w, r, err.Error(), http.StatusNotFound)
	default:
		h.logger.Error(r.Context(), "[API_INTERNAL_ERROR] Request failed", logging.Fields{
			"endpoint": endpoint,
		}, err)
		h.metrics.RecordAPIError("internal_error", endpoint)
		h.sendError(w, r, "internal error", http.StatusInternalServerError)
	}
}

// sendJSON sends a JSON response
func (h *SimulationHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response
func (h *SimulationHandler) sendError(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	h.metrics.RecordAPIRequest(r.URL.Path, r.Method, strconv.Itoa(statusCode))

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	h.sendJSON(w, response, statusCode)
}

// RegisterRoutes registers all API routes
func (h *SimulationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/simulations/{type:[a-z]+}", h.RunSimulation).Methods("POST")
	router.HandleFunc("/api/simulations", h.ListRuns).Methods("GET")
	router.HandleFunc("/api/simulations/{id:[0-9]+}", h.GetRun).Methods("GET")
	router.HandleFunc("/api/simulations/{id:[0-9]+}/trends/{region}", h.GetTrends).Methods("GET")
	router.HandleFunc("/api/trends", h.AnalyzeSeries).Methods("POST")
	router.HandleFunc("/api/economics", h.CalculateEconomics).Methods("POST")
	router.HandleFunc("/api/regions", h.ListRegions).Methods("GET")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
}
