package handler

import (
	"net/http"
	"strconv"

	"github.com/adrianmtzc/campusmatch-backend/internal/delivery/http/middleware"
	"github.com/adrianmtzc/campusmatch-backend/internal/usecase/studygroup"
	"github.com/gin-gonic/gin"
)

type StudyGroupHandler struct {
	groupUseCase *studygroup.StudyGroupUseCase
}

func NewStudyGroupHandler(groupUseCase *studygroup.StudyGroupUseCase) *StudyGroupHandler {
	return &StudyGroupHandler{
		groupUseCase: groupUseCase,
	}
}

// Create registers a new study group
// @Summary Create study group
// @Tags study-groups
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body studygroup.CreateRequest true "Group data"
// @Success 201 {object} domain.StudyGroup
// @Router /study-groups [post]
func (h *StudyGroupHandler) Create(c *gin.Context) {
	var req studygroup.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	group, err := h.groupUseCase.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

// List returns active study groups
// @Summary List study groups
// @Tags study-groups
// @Security BearerAuth
// @Produce json
// @Param campus query string false "Campus"
// @Param subject query string false "Subject"
// @Param career query string false "Career"
// @Success 200 {array} domain.StudyGroup
// @Router /study-groups [get]
func (h *StudyGroupHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	groups, err := h.groupUseCase.List(c.Request.Context(), c.Query("campus"), c.Query("subject"), c.Query("career"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// Get returns one group with its members
// @Summary Get study group
// @Tags study-groups
// @Security BearerAuth
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {object} studygroup.GroupDetail
// @Failure 404 {object} ErrorResponse
// @Router /study-groups/{group_id} [get]
func (h *StudyGroupHandler) Get(c *gin.Context) {
	detail, err := h.groupUseCase.Get(c.Request.Context(), c.Param("group_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListJoined returns the caller's groups
// @Summary List my study groups
// @Tags study-groups
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.StudyGroup
// @Router /study-groups/joined [get]
func (h *StudyGroupHandler) ListJoined(c *gin.Context) {
	groups, err := h.groupUseCase.ListJoined(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// Join adds the caller to a group
// @Summary Join study group
// @Tags study-groups
// @Security BearerAuth
// @Param group_id path string true "Group ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /study-groups/{group_id}/join [post]
func (h *StudyGroupHandler) Join(c *gin.Context) {
	if err := h.groupUseCase.Join(c.Request.Context(), middleware.UserID(c), c.Param("group_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "joined study group"})
}

// Leave removes the caller from a group
// @Summary Leave study group
// @Tags study-groups
// @Security BearerAuth
// @Param group_id path string true "Group ID"
// @Success 200 {object} SuccessResponse
// @Router /study-groups/{group_id}/leave [post]
func (h *StudyGroupHandler) Leave(c *gin.Context) {
	if err := h.groupUseCase.Leave(c.Request.Context(), middleware.UserID(c), c.Param("group_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "left study group"})
}

// Update edits a group. Creator only
// @Summary Update study group
// @Tags study-groups
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param request body studygroup.UpdateRequest true "Group update"
// @Success 200 {object} domain.StudyGroup
// @Failure 403 {object} ErrorResponse
// @Router /study-groups/{group_id} [put]
func (h *StudyGroupHandler) Update(c *gin.Context) {
	var req studygroup.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	group, err := h.groupUseCase.Update(c.Request.Context(), middleware.UserID(c), c.Param("group_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// Delete removes a group. Creator only
// @Summary Delete study group
// @Tags study-groups
// @Security BearerAuth
// @Param group_id path string true "Group ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /study-groups/{group_id} [delete]
func (h *StudyGroupHandler) Delete(c *gin.Context) {
	if err := h.groupUseCase.Delete(c.Request.Context(), middleware.UserID(c), c.Param("group_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "study group deleted"})
}

// PopularSubjects lists the most common subjects across groups
// @Summary Popular subjects
// @Tags study-groups
// @Security BearerAuth
// @Produce json
// @Success 200 {array} string
// @Router /study-groups/popular-subjects [get]
func (h *StudyGroupHandler) PopularSubjects(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	subjects, err := h.groupUseCase.PopularSubjects(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subjects)
}
