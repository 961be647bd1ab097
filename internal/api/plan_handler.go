package api

import (
	"alcyxob/workout-tracker/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

// CreatePlanRequest carries the plan parameters chosen at onboarding.
type CreatePlanRequest struct {
	WorkoutType     string  `json:"workoutType"`
	SessionsPerWeek int     `json:"sessionsPerWeek" binding:"required,min=1,max=7"`
	HoursPerSession float64 `json:"hoursPerSession" binding:"required,gt=0"`
}

// AddExerciseRequest appends a prescription entry to a day.
type AddExerciseRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
	Sets       int    `json:"sets" binding:"required,min=1"`
	Reps       string `json:"reps" binding:"required"`
}

// UpdateExerciseRequest changes an entry's sets/reps scheme.
type UpdateExerciseRequest struct {
	Sets int    `json:"sets" binding:"required,min=1"`
	Reps string `json:"reps" binding:"required"`
}

// --- Handler Methods ---

// CreatePlan godoc
// @Summary Create the user's workout plan
// @Description Stores the plan parameters and generates the weekly schedule from them.
// @Tags Plan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body CreatePlanRequest true "Plan parameters"
// @Success 201 {object} service.PlanView "Plan created and schedule generated"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 409 {object} gin.H "Plan already exists"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plan [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	_, err = h.planService.CreatePlan(c.Request.Context(), userID, req.WorkoutType, req.SessionsPerWeek, req.HoursPerSession)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanAlreadyExists):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create workout plan.")
		}
		return
	}

	// Return the assembled view so the client sees the generated schedule.
	view, err := h.planService.GetPlan(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Plan created but could not be loaded.")
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetPlan returns the plan parameters plus the weekly schedule keyed by day
// name, with catalog exercise details resolved.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	view, err := h.planService.GetPlan(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout plan.")
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// AddExercise appends a prescription entry to a day.
func (h *PlanHandler) AddExercise(c *gin.Context) {
	dayID, err := primitive.ObjectIDFromHex(c.Param("dayId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid day ID format.")
		return
	}

	var req AddExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	entry, err := h.planService.AddExercise(c.Request.Context(), dayID, exerciseID, req.Sets, req.Reps)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDayNotFound), errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add exercise.")
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// UpdateExercise changes the sets/reps scheme on one prescription entry.
func (h *PlanHandler) UpdateExercise(c *gin.Context) {
	dayExerciseID, err := primitive.ObjectIDFromHex(c.Param("dayExerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid day exercise ID format.")
		return
	}

	var req UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.planService.UpdateDayExercise(c.Request.Context(), dayExerciseID, req.Sets, req.Reps); err != nil {
		switch {
		case errors.Is(err, service.ErrDayExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update exercise.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exercise updated successfully"})
}

// RemoveExercise deletes one prescription entry from its day.
func (h *PlanHandler) RemoveExercise(c *gin.Context) {
	dayExerciseID, err := primitive.ObjectIDFromHex(c.Param("dayExerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid day exercise ID format.")
		return
	}

	if err := h.planService.RemoveExercise(c.Request.Context(), dayExerciseID); err != nil {
		if errors.Is(err, service.ErrDayExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to remove exercise.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exercise removed successfully"})
}
