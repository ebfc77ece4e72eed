package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/peoplecore/hrms-backend/internal/employee/repository"
	"github.com/peoplecore/hrms-backend/internal/employee/service"
	"github.com/peoplecore/hrms-backend/pkg/httputil"
	"github.com/peoplecore/hrms-backend/pkg/logger"
)

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	service *service.EmployeeService
	logger  *logger.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(svc *service.EmployeeService, log *logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: svc,
		logger:  log,
	}
}

// List lists employee master records
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	employees, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}

	httputil.JSONWithMeta(w, http.StatusOK, employees, &httputil.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	})
}

// Get gets an employee with all child sections
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.service.GetDetail(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, detail)
}

// Create creates a single employee. An empty employee_id allocates the
// next one from the reserved series.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var emp repository.EmployeeMaster
	if err := httputil.DecodeJSON(r, &emp); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(&emp); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.service.Create(r.Context(), &emp); err != nil {
		httputil.Error(w, err)
		return
	}

	h.logger.Info().Str("employee_id", emp.EmployeeID).Msg("employee created")
	httputil.Created(w, emp)
}

// Update rewrites an employee master record
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var emp repository.EmployeeMaster
	if err := httputil.DecodeJSON(r, &emp); err != nil {
		httputil.Error(w, err)
		return
	}
	emp.EmployeeID = id

	if err := httputil.Validate(&emp); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.service.Update(r.Context(), &emp); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, emp)
}

// Retire marks an employee inactive
func (h *EmployeeHandler) Retire(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Retire(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}

	h.logger.Info().Str("employee_id", id).Msg("employee retired")
	httputil.NoContent(w)
}
