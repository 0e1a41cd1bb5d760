package httpapi

import (
	"net/http"

	postEntity "blogify/internal/core/post"
	postPort "blogify/internal/ports/post"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostController struct {
	pc     PostUseCase
	logger *zap.Logger
}

func NewPostController(pc PostUseCase, logger *zap.Logger) *PostController {
	return &PostController{pc: pc, logger: logger}
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
		return
	}
	res, err := ctl.pc.CreatePost(c.Request.Context(), req.Title, req.Content, userID)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *PostController) GetPost(c *gin.Context) {
	res, err := ctl.pc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) UpdatePost(c *gin.Context) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
		return
	}
	res, err := ctl.pc.UpdatePost(c.Request.Context(), c.Param("id"), userID, postPort.Fields{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
		return
	}
	if err := ctl.pc.DeletePost(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func (ctl *PostController) ListPosts(c *gin.Context) {
	page, sort, err := listParams(c)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	res, err := ctl.pc.ListPosts(c.Request.Context(), page, sort)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) ListUserPosts(c *gin.Context) {
	page, sort, err := listParams(c)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	res, err := ctl.pc.ListUserPosts(c.Request.Context(), c.Param("userId"), page, sort)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) SearchPosts(c *gin.Context) {
	page, sort, err := listParams(c)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	res, err := ctl.pc.SearchPosts(c.Request.Context(), c.Query("q"), page, sort)
	if err != nil {
		respondError(c, ctl.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// listParams parses page, limit and sort from the query string.
func listParams(c *gin.Context) (postEntity.Page, postEntity.Sort, error) {
	page, err := postEntity.ParsePage(c.Query("page"), c.Query("limit"))
	if err != nil {
		return postEntity.Page{}, "", err
	}
	return page, postEntity.ParseSort(c.Query("sort")), nil
}
