package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shiptrain/portal/internal/models"
	"github.com/shiptrain/portal/internal/services"
	apperrors "github.com/shiptrain/portal/pkg/errors"
)

// TrainingHandler serves the training portal read endpoints
type TrainingHandler struct {
	service services.TrainingServiceInterface
}

func NewTrainingHandler(service services.TrainingServiceInterface) *TrainingHandler {
	return &TrainingHandler{service: service}
}

// Statistics handles GET /home/statistics
func (h *TrainingHandler) Statistics(c *gin.Context) {
	respondOK(c, "ok", h.service.Statistics(c.Request.Context()))
}

// EmployeeScores handles GET /employee/scores
func (h *TrainingHandler) EmployeeScores(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var q models.ScoresQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondValidationError(c, err)
		return
	}
	respondOK(c, "ok", h.service.Scores(c.Request.Context(), session.PersonID, q.CourseClass))
}

// EmployeeCourseTypeScores handles GET /employee/course-type-scores
func (h *TrainingHandler) EmployeeCourseTypeScores(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	respondOK(c, "ok", h.service.CourseTypeScores(c.Request.Context(), session.PersonID))
}

// EmployeeTodayCourses handles GET /employee/today-courses
func (h *TrainingHandler) EmployeeTodayCourses(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	respondOK(c, "ok", h.service.EmployeeTodayCourses(c.Request.Context(), session.PersonID))
}

// TeacherTodayCourses handles GET /teacher/today-courses
func (h *TrainingHandler) TeacherTodayCourses(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	respondOK(c, "ok", h.service.TeacherTodayCourses(c.Request.Context(), session.PersonID))
}

// Plans handles GET /planner/plans
func (h *TrainingHandler) Plans(c *gin.Context) {
	var q models.PlansQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondValidationError(c, err)
		return
	}
	respondOK(c, "ok", h.service.Plans(c.Request.Context(), q.Status))
}

// Plan handles GET /planner/plans/:planId
func (h *TrainingHandler) Plan(c *gin.Context) {
	var uri models.PlanURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondValidationError(c, err)
		return
	}

	plan, err := h.service.Plan(c.Request.Context(), uri.PlanID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "plan does not exist", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load plan", err)
		return
	}
	respondOK(c, "ok", plan)
}

// CourseItems handles GET /planner/course-items
func (h *TrainingHandler) CourseItems(c *gin.Context) {
	var q models.CourseItemsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondValidationError(c, err)
		return
	}
	respondOK(c, "ok", h.service.CourseItems(c.Request.Context(), q.PlanID))
}
