package handler

import (
	"net/http"
	"strconv"

	"github.com/adrianmtzc/campusmatch-backend/internal/delivery/http/middleware"
	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/adrianmtzc/campusmatch-backend/internal/usecase/match"
	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
	}
}

// GetPotentialMatches returns compatibility-ranked candidates
// @Summary Get potential matches
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Max candidates" default(10)
// @Success 200 {array} matching.ScoredCandidate
// @Failure 403 {object} ErrorResponse
// @Router /matches/potential [get]
func (h *MatchHandler) GetPotentialMatches(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	candidates, err := h.matchUseCase.GetPotentialMatches(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// Action records a like, dislike or super_like toward another user
// @Summary Swipe on a user
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body match.ActionRequest true "Swipe action"
// @Success 200 {object} match.ActionResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /matches/action [post]
func (h *MatchHandler) Action(c *gin.Context) {
	var req match.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.matchUseCase.ProcessAction(
		c.Request.Context(),
		middleware.UserID(c),
		req.TargetUserID,
		domain.SwipeAction(req.Action),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetMatches lists the caller's active matches
// @Summary List matches
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Success 200 {array} match.MatchWithUser
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	matches, err := h.matchUseCase.GetMatches(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

// Unmatch ends a match
// @Summary Unmatch
// @Tags matches
// @Security BearerAuth
// @Param match_id path string true "Match ID"
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /matches/{match_id} [delete]
func (h *MatchHandler) Unmatch(c *gin.Context) {
	if err := h.matchUseCase.Unmatch(c.Request.Context(), middleware.UserID(c), c.Param("match_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "unmatched"})
}

// Block blocks the other participant
// @Summary Block
// @Tags matches
// @Security BearerAuth
// @Param match_id path string true "Match ID"
// @Success 200 {object} SuccessResponse
// @Router /matches/{match_id}/block [post]
func (h *MatchHandler) Block(c *gin.Context) {
	if err := h.matchUseCase.Block(c.Request.Context(), middleware.UserID(c), c.Param("match_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "blocked"})
}
