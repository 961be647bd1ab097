package api

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogHandler holds the catalog service dependency.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// --- DTOs ---

// ExerciseResponse is the DTO for returning catalog exercise details.
type ExerciseResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	MuscleGroupID string `json:"muscleGroupId"`
}

type MuscleGroupResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TemplateResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:            ex.ID.Hex(),
		Name:          ex.Name,
		Type:          ex.Type,
		MuscleGroupID: ex.MuscleGroupID.Hex(),
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to DTOs.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i, ex := range exercises {
		responses[i] = MapExerciseToResponse(&ex)
	}
	return responses
}

// --- Handler Methods ---

// ListExercises godoc
// @Summary List catalog exercises
// @Description Lists the exercise library, optionally filtered by one or more muscle group IDs (?muscleGroupId=...&muscleGroupId=...).
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ExerciseResponse "List of exercises"
// @Failure 400 {object} gin.H "Invalid muscle group ID"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [get]
func (h *CatalogHandler) ListExercises(c *gin.Context) {
	var groupIDs []primitive.ObjectID
	for _, raw := range c.QueryArray("muscleGroupId") {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid muscle group ID: "+raw)
			return
		}
		groupIDs = append(groupIDs, id)
	}

	exercises, err := h.catalogService.ListExercises(c.Request.Context(), groupIDs)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}

	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// ListMuscleGroups returns all muscle groups.
func (h *CatalogHandler) ListMuscleGroups(c *gin.Context) {
	groups, err := h.catalogService.ListMuscleGroups(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve muscle groups.")
		return
	}

	responses := make([]MuscleGroupResponse, len(groups))
	for i, group := range groups {
		responses[i] = MuscleGroupResponse{ID: group.ID.Hex(), Name: group.Name}
	}
	c.JSON(http.StatusOK, responses)
}

// ListTemplates returns all whole-day workout templates.
func (h *CatalogHandler) ListTemplates(c *gin.Context) {
	templates, err := h.catalogService.ListTemplates(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve templates.")
		return
	}

	responses := make([]TemplateResponse, len(templates))
	for i, template := range templates {
		responses[i] = TemplateResponse{ID: template.ID.Hex(), Name: template.Name}
	}
	c.JSON(http.StatusOK, responses)
}
