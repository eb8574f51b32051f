package handlers

import (
	"net/http"

	"voting-service/internal/ports/models"
	"voting-service/internal/server/middleware"
	"voting-service/internal/server/service"
	"voting-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	pollService *service.PollService
}

func NewVoteHandler(pollService *service.PollService) *VoteHandler {
	return &VoteHandler{pollService: pollService}
}

// @Summary Cast a vote
// @Description Record the caller's ballot for a poll; one vote per user
// @Tags votes
// @Accept json
// @Produce json
// @Param poll_id path string true "Poll UUID"
// @Param request body models.VoteRequest true "Vote Request"
// @Success 200 {object} models.VoteResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /polls/{poll_id}/vote [post]
func (h *VoteHandler) SubmitVote(c *gin.Context) {
	userID, err := middleware.GetUserFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.pollService.SubmitVote(c.Request.Context(), c.Param("poll_id"), userID, req.Selections)
	if err != nil {
		c.JSON(response.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Check whether the caller has voted
// @Tags votes
// @Produce json
// @Param poll_id path string true "Poll UUID"
// @Success 200 {object} models.HasVotedResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /polls/{poll_id}/voted [get]
func (h *VoteHandler) HasVoted(c *gin.Context) {
	userID, err := middleware.GetUserFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	hasVoted, err := h.pollService.HasVoted(c.Request.Context(), c.Param("poll_id"), userID)
	if err != nil {
		c.JSON(response.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.HasVotedResponse{HasVoted: hasVoted})
}
