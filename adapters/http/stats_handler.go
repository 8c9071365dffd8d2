package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	statsUC "github.com/creatorloop/creatorloop-api/internal/application/usecase/stats"
)

type StatsHandler struct {
	statsUseCase *statsUC.StatsUseCase
}

func NewStatsHandler(uc *statsUC.StatsUseCase) *StatsHandler {
	return &StatsHandler{statsUseCase: uc}
}

// GetPlatformStats always answers 200; missing numbers come back as zero.
func (h *StatsHandler) GetPlatformStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.statsUseCase.GetPlatformStats(c.Request.Context()))
}
