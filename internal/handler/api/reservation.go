package api

import (
	"errors"
	"net/http"

	reqdto "booking-board/internal/handler/dto/request"
	resdto "booking-board/internal/handler/dto/response"
	"booking-board/internal/handler/httperr"
	"booking-board/internal/handler/middleware"
	"booking-board/internal/usecase/commands"
	"booking-board/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, qs queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary Create reservation
// @Description Reserve a resource for a half-open time interval
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.CreateReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	requesterID, ok := middleware.GetRequesterID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	input := commands.CreateReservationInput{
		ResourceID:  req.ResourceID,
		RequesterID: requesterID,
		Start:       req.StartTime,
		End:         req.EndTime,
		Privileged:  middleware.IsPrivileged(c),
	}

	result, err := h.commands.Create(c.Request.Context(), input)
	if err != nil {
		h.writeCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCreateReservationResult(result))
}

func (h *ReservationHandler) writeCreateError(c *gin.Context, err error) {
	var conflict *commands.ConflictError

	switch {
	case errors.Is(err, commands.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Resource not found",
		})
	case errors.Is(err, commands.ErrInvalidInterval):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation interval",
		})
	case errors.Is(err, commands.ErrQuotaExceeded):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Active reservation quota exceeded",
		})
	case errors.Is(err, commands.ErrParentConflict):
		body := gin.H{"error": "Parent resource is reserved for this interval"}
		if errors.As(err, &conflict) {
			body["held_by"] = conflict.HolderID
		}
		c.JSON(http.StatusConflict, body)
	case errors.Is(err, commands.ErrChildConflict):
		body := gin.H{"error": "A sub-resource is reserved for this interval"}
		if errors.As(err, &conflict) {
			body["held_by"] = conflict.HolderID
		}
		c.JSON(http.StatusConflict, body)
	case errors.Is(err, commands.ErrConflict):
		body := gin.H{"error": "Resource is already reserved for this interval"}
		if errors.As(err, &conflict) {
			body["held_by"] = conflict.HolderID
		}
		c.JSON(http.StatusConflict, body)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// @Summary Cancel reservation
// @Description Cancel an active reservation; privileged requesters may cancel any
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	requesterID, ok := middleware.GetRequesterID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	err = h.commands.Cancel(c.Request.Context(), id, requesterID, middleware.IsPrivileged(c))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, commands.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not allowed to cancel this reservation",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get resource lock
// @Description Get the current lock projection for a resource
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.LockResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id}/lock [get]
func (h *ReservationHandler) GetResourceLock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	view, err := h.queries.LockProjection(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrResourceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
			})
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromLockProjectionView(view))
}

// @Summary Get resource schedule
// @Description List non-canceled reservations for a resource, earliest first
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {array} resdto.ScheduleItemResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id}/schedule [get]
func (h *ReservationHandler) GetResourceSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	items, err := h.queries.Schedule(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrResourceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
			})
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.ScheduleItemResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromScheduleItem(item)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get remaining reservation slots
// @Description How many more active reservations the caller may hold
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.RemainingSlotsResponse
// @Failure 401 {object} map[string]string
// @Router /reservations/remaining [get]
func (h *ReservationHandler) GetRemainingSlots(c *gin.Context) {
	requesterID, ok := middleware.GetRequesterID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	remaining, err := h.queries.RemainingSlots(c.Request.Context(), requesterID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, &resdto.RemainingSlotsResponse{
		RequesterID: requesterID,
		Remaining:   remaining,
	})
}
