package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LikeController struct {
	lc     LikeUseCase
	logger *zap.Logger
}

func NewLikeController(lc LikeUseCase, logger *zap.Logger) *LikeController {
	return &LikeController{lc: lc, logger: logger}
}

func (ctl *LikeController) ToggleLike(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
		return
	}
	res, err := ctl.lc.ToggleLike(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
