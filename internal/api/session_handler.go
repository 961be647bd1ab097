package api

import (
	"alcyxob/workout-tracker/internal/reconcile"
	"alcyxob/workout-tracker/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateLayout = "2006-01-02"

// SessionHandler exposes the session view controller: date selection, the
// reconciled day view, set toggles and the two swap mutations.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- DTOs ---

// ToggleSetRequest flips one slot. Reps and weight stay strings on the wire;
// they are parsed and validated before any store mutation happens.
type ToggleSetRequest struct {
	DayExerciseID string `json:"dayExerciseId" binding:"required"`
	SetNumber     int    `json:"setNumber" binding:"required,min=1"`
	Reps          string `json:"reps"`
	Weight        string `json:"weight"`
}

// SwapExerciseRequest retargets a prescription entry.
type SwapExerciseRequest struct {
	NewExerciseID string `json:"newExerciseId" binding:"required"`
}

// SwapTemplateRequest replaces a day's prescription with a template.
type SwapTemplateRequest struct {
	TemplateID string `json:"templateId" binding:"required"`
}

// --- Handler Methods ---

// View godoc
// @Summary Get the reconciled view for a date
// @Description Selects a date (defaults to today) and returns that day's prescription merged with its logged sets.
// @Tags Session
// @Produce json
// @Security BearerAuth
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} service.DayView "Reconciled day view"
// @Failure 400 {object} gin.H "Invalid date"
// @Failure 404 {object} gin.H "No workout plan"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /session/view [get]
func (h *SessionHandler) View(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		date, err = time.Parse(dateLayout, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD.")
			return
		}
	}

	view, err := h.sessionService.View(c.Request.Context(), userID, date)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load session view.")
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// ToggleSet flips one slot done/undone and returns the refreshed view.
func (h *SessionHandler) ToggleSet(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req ToggleSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	dayExerciseID, err := primitive.ObjectIDFromHex(req.DayExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid day exercise ID format.")
		return
	}

	view, err := h.sessionService.ToggleSet(c.Request.Context(), userID, dayExerciseID, req.SetNumber, req.Reps, req.Weight)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLoggingRestricted),
			errors.Is(err, reconcile.ErrInvalidReps),
			errors.Is(err, reconcile.ErrInvalidWeight):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSlotNotFound),
			errors.Is(err, service.ErrDayExerciseNotFound),
			errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrDuplicateLog):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to toggle set.")
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// SwapExercise retargets a prescription entry and returns the refreshed view.
func (h *SessionHandler) SwapExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	dayExerciseID, err := primitive.ObjectIDFromHex(c.Param("dayExerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid day exercise ID format.")
		return
	}

	var req SwapExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	newExerciseID, err := primitive.ObjectIDFromHex(req.NewExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	view, err := h.sessionService.SwapExercise(c.Request.Context(), userID, dayExerciseID, newExerciseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDayExerciseNotFound), errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to swap exercise.")
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// SwapTemplate replaces a day's prescription with a template's exercises and
// returns the refreshed view.
func (h *SessionHandler) SwapTemplate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	dayID, err := primitive.ObjectIDFromHex(c.Param("dayId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid day ID format.")
		return
	}

	var req SwapTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	templateID, err := primitive.ObjectIDFromHex(req.TemplateID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format.")
		return
	}

	view, err := h.sessionService.SwapTemplate(c.Request.Context(), userID, dayID, templateID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDayNotFound),
			errors.Is(err, service.ErrTemplateNotFound),
			errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to swap template.")
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// Candidates lists swap targets for a prescription entry.
func (h *SessionHandler) Candidates(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	dayExerciseID, err := primitive.ObjectIDFromHex(c.Param("dayExerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid day exercise ID format.")
		return
	}

	candidates, err := h.sessionService.Candidates(c.Request.Context(), userID, dayExerciseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDayExerciseNotFound), errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to list swap candidates.")
		}
		return
	}

	c.JSON(http.StatusOK, MapExercisesToResponse(candidates))
}
