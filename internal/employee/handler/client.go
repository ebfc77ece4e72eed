package handler

import (
	"net/http"

	"github.com/peoplecore/hrms-backend/internal/employee/service"
	"github.com/peoplecore/hrms-backend/pkg/httputil"
	"github.com/peoplecore/hrms-backend/pkg/logger"
)

// ClientHandler handles client master endpoints
type ClientHandler struct {
	service *service.EmployeeService
	logger  *logger.Logger
}

// NewClientHandler creates a new client handler
func NewClientHandler(svc *service.EmployeeService, log *logger.Logger) *ClientHandler {
	return &ClientHandler{
		service: svc,
		logger:  log,
	}
}

// List lists all client companies
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.ListClients(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, clients)
}
