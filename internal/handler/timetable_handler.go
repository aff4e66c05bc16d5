package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/scolaria/scolaria-backend/internal/model"
	"github.com/scolaria/scolaria-backend/internal/response"
	"github.com/scolaria/scolaria-backend/internal/service"
	"github.com/scolaria/scolaria-backend/internal/validator"
)

// TimetableHandler exposes the timetable CRUD and read endpoints.
type TimetableHandler struct {
	timetableService *service.TimetableService
}

// NewTimetableHandler creates a new TimetableHandler.
func NewTimetableHandler(timetableService *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableService: timetableService}
}

// CreateSlot godoc
// POST /api/v1/timetable
// Schedules a new course slot after a clean conflict check.
func (h *TimetableHandler) CreateSlot(c *gin.Context) {
	var req model.CreateTimeSlotRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	slot, err := h.timetableService.Create(c.Request.Context(), req)
	if err != nil {
		h.failWrite(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"slot": slot})
}

// UpdateSlot godoc
// PUT /api/v1/timetable/:id
// Reschedules a slot; omitted fields keep their previous values.
func (h *TimetableHandler) UpdateSlot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateTimeSlotRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	slot, err := h.timetableService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.failWrite(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slot": slot})
}

// DeleteSlot godoc
// DELETE /api/v1/timetable/:id
// Removes a slot. No conflict re-check is needed on delete.
func (h *TimetableHandler) DeleteSlot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.timetableService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSlotNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "slot deleted successfully"})
}

// ListSlots godoc
// GET /api/v1/timetable
// Lists the whole timetable ordered by weekday and start time.
func (h *TimetableHandler) ListSlots(c *gin.Context) {
	slots, err := h.timetableService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

// ListByCourse godoc
// GET /api/v1/timetable/course/:course_id
func (h *TimetableHandler) ListByCourse(c *gin.Context) {
	courseID, err := strconv.Atoi(c.Param("course_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	slots, err := h.timetableService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

// ListByClass godoc
// GET /api/v1/timetable/class/:class_id
func (h *TimetableHandler) ListByClass(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("class_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	slots, err := h.timetableService.ListByClass(c.Request.Context(), classID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

// CurrentByClass godoc
// GET /api/v1/timetable/class/:class_id/current
// Returns the class timetable restricted to slots valid today.
func (h *TimetableHandler) CurrentByClass(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("class_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	slots, err := h.timetableService.CurrentByClass(c.Request.Context(), classID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

// failWrite maps the timetable write error taxonomy onto HTTP codes.
// Schedule conflicts are the expected failure and carry the colliding
// slots in the error details.
func (h *TimetableHandler) failWrite(c *gin.Context, err error) {
	var conflictErr *service.ConflictError
	switch {
	case errors.As(err, &conflictErr):
		response.FailWithDetails(c, http.StatusConflict, response.ErrScheduleConflict, conflictErr.Conflict)
	case errors.Is(err, service.ErrCourseNotFound):
		response.Fail(c, http.StatusBadRequest, response.ErrReferenceMissing)
	case errors.Is(err, service.ErrSlotNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrInvalidTimeRange), errors.Is(err, service.ErrInvalidValidityWindow):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidInterval)
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
