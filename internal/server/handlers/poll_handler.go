package handlers

import (
	"net/http"

	"voting-service/internal/ports/models"
	"voting-service/internal/server/service"
	"voting-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type PollHandler struct {
	pollService *service.PollService
}

func NewPollHandler(pollService *service.PollService) *PollHandler {
	return &PollHandler{pollService: pollService}
}

// @Summary Create a new poll
// @Description Create a poll with fixed options for a meeting
// @Tags polls
// @Accept json
// @Produce json
// @Param request body models.CreatePollRequest true "Create Poll Request"
// @Success 201 {object} models.Poll
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /polls [post]
func (h *PollHandler) CreatePoll(c *gin.Context) {
	var req models.CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := h.pollService.CreatePoll(c.Request.Context(), req)
	if err != nil {
		c.JSON(response.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, poll)
}
