package handler

import (
	"net/http"

	"github.com/peoplecore/hrms-backend/internal/employee/bulkimport"
	"github.com/peoplecore/hrms-backend/internal/employee/service"
	"github.com/peoplecore/hrms-backend/pkg/errors"
	"github.com/peoplecore/hrms-backend/pkg/httputil"
	"github.com/peoplecore/hrms-backend/pkg/logger"
)

// DefaultMaxUploadBytes caps uploaded workbooks at 10 MiB
const DefaultMaxUploadBytes = 10 << 20

// BulkUploadHandler handles workbook import endpoints
type BulkUploadHandler struct {
	service        *service.EmployeeService
	logger         *logger.Logger
	maxUploadBytes int64
}

// NewBulkUploadHandler creates a new bulk upload handler. A zero
// maxUploadBytes falls back to the default cap.
func NewBulkUploadHandler(svc *service.EmployeeService, maxUploadBytes int64, log *logger.Logger) *BulkUploadHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &BulkUploadHandler{
		service:        svc,
		logger:         log,
		maxUploadBytes: maxUploadBytes,
	}
}

// validationReport is the body returned for a rejected batch
type validationReport struct {
	Message string                `json:"message"`
	Errors  []bulkimport.RowError `json:"errors"`
}

// Upload handles POST bulk uploads. The mode query parameter selects
// create (default) or update.
func (h *BulkUploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	mode, err := bulkimport.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		httputil.Error(w, errors.BadRequest(err.Error()))
		return
	}
	h.handle(w, r, mode)
}

// UploadUpdate handles PUT bulk uploads, which always run in update mode
func (h *BulkUploadHandler) UploadUpdate(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, bulkimport.ModeUpdate)
}

func (h *BulkUploadHandler) handle(w http.ResponseWriter, r *http.Request, mode bulkimport.Mode) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		httputil.Error(w, errors.BadRequest("invalid multipart form or file too large"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.Error(w, errors.BadRequest("missing 'file' form field"))
		return
	}
	defer file.Close()

	h.logger.Info().
		Str("filename", header.Filename).
		Int64("size", header.Size).
		Str("mode", string(mode)).
		Msg("processing bulk upload")

	result, err := h.service.BulkImport(r.Context(), file, mode)
	if err != nil {
		var verr *bulkimport.ValidationError
		if errors.As(err, &verr) {
			httputil.JSON(w, http.StatusBadRequest, validationReport{
				Message: "Validation errors",
				Errors:  verr.Rows,
			})
			return
		}
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, result)
}
