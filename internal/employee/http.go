package employee

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"employee-service/internal/httputil"
	"employee-service/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
		metrics:  metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/api/v1/employees", func(r chi.Router) {
		r.Post("/", h.CreateEmployee)
		r.Get("/", h.GetAllEmployees)
		r.Get("/{id}", h.GetEmployee)
		r.Put("/{id}", h.UpdateEmployee)
		r.Delete("/{id}", h.DeleteEmployee)
	})
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var employee Employee
	if err := json.NewDecoder(r.Body).Decode(&employee); err != nil || h.validate.Struct(&employee) != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	// id is assigned by storage
	employee.ID = 0

	h.logger.InfoContext(r.Context(), "creating employee", "email", employee.Email)
	created, err := h.service.CreateEmployee(r.Context(), &employee)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordEmployeeCreated(r.Context())

	httputil.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "fetching all employees")

	employees, err := h.service.GetAllEmployees(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if employees == nil {
		employees = []Employee{}
	}

	h.metrics.RecordEmployeeListViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	h.logger.InfoContext(r.Context(), "fetching employee", "id", id)
	employee, err := h.service.GetEmployeeByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordEmployeeViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, employee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	var patch Employee
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil || h.validate.Struct(&patch) != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	h.logger.InfoContext(r.Context(), "updating employee", "id", id, "email", patch.Email)
	updated, err := h.service.UpdateEmployee(r.Context(), id, &patch)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordEmployeeUpdated(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	h.logger.InfoContext(r.Context(), "deleting employee", "id", id)
	if err := h.service.DeleteEmployee(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordEmployeeDeleted(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Employee is deleted with ID: %d", id)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrEmployeeNotFound):
		h.logger.InfoContext(r.Context(), "employee not found")
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, ErrDuplicateEmail):
		h.logger.InfoContext(r.Context(), "duplicate employee email")
		httputil.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidInput):
		h.logger.InfoContext(r.Context(), "invalid input")
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "internal error", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
