package handlers

import (
	"net/http"

	"voting-service/internal/server/service"
	"voting-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type ResultsHandler struct {
	pollService *service.PollService
}

func NewResultsHandler(pollService *service.PollService) *ResultsHandler {
	return &ResultsHandler{pollService: pollService}
}

// @Summary Get poll results
// @Description Live tally plus eligible-voter count; the count degrades to
// @Description ballots cast (approximate=true) when the roster is down
// @Tags results
// @Produce json
// @Param poll_id path string true "Poll UUID"
// @Success 200 {object} models.PollResults
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /polls/{poll_id}/results [get]
func (h *ResultsHandler) GetResults(c *gin.Context) {
	results, err := h.pollService.GetResults(c.Request.Context(), c.Param("poll_id"))
	if err != nil {
		c.JSON(response.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, results)
}
