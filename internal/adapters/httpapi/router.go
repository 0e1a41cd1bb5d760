package httpapi

import (
	"context"
	"net/http"
	"time"

	"blogify/internal/adapters/httpapi/middleware"
	postEntity "blogify/internal/core/post"
	commentPort "blogify/internal/ports/comment"
	likePort "blogify/internal/ports/like"
	postPort "blogify/internal/ports/post"
	userPort "blogify/internal/ports/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// UserUseCase is the inbound port for accounts.
type UserUseCase interface {
	RegisterUser(ctx context.Context, username, email, password string) (*userPort.UserDTO, error)
	LoginUser(ctx context.Context, email, password string) (*userPort.LoginResponse, error)
	GetUser(ctx context.Context, userID string) (*userPort.UserDTO, error)
	VerifyToken(token string) (string, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, title, content, authorID string) (*postPort.PostDTO, error)
	GetPost(ctx context.Context, id string) (*postPort.PostDTO, error)
	UpdatePost(ctx context.Context, id, requesterID string, fields postPort.Fields) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, id, requesterID string) error
	ListPosts(ctx context.Context, page postEntity.Page, sort postEntity.Sort) (*postPort.ListDTO, error)
	ListUserPosts(ctx context.Context, userID string, page postEntity.Page, sort postEntity.Sort) (*postPort.ListDTO, error)
	SearchPosts(ctx context.Context, q string, page postEntity.Page, sort postEntity.Sort) (*postPort.ListDTO, error)
}

type LikeUseCase interface {
	ToggleLike(ctx context.Context, postID, userID string) (*likePort.ToggleResultDTO, error)
}

type CommentUseCase interface {
	AddComment(ctx context.Context, postID, userID, text string) (*commentPort.CommentDTO, error)
	DeleteComment(ctx context.Context, postID, commentID, requesterID string) error
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Logger      *zap.Logger
	Health      HealthChecker
	ServiceName string
	Tracing     bool
	// CORSOrigins lists the browser origins allowed to call the API. Empty
	// disables CORS headers; "*" allows any origin.
	CORSOrigins []string
}

// SetupRoutes only wires routes; use cases are injected from outside.
func SetupRoutes(
	userUC UserUseCase,
	postUC PostUseCase,
	likeUC LikeUseCase,
	commentUC CommentUseCase,
	opts Options,
) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.RequestLogger(logger))
	if opts.Tracing {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}
	if len(opts.CORSOrigins) > 0 {
		r.Use(corsMiddleware(opts.CORSOrigins))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	uc := NewUserController(userUC, logger)
	pc := NewPostController(postUC, logger)
	lc := NewLikeController(likeUC, logger)
	cc := NewCommentController(commentUC, logger)
	auth := middleware.JWTAuthMiddleware(userUC)

	r.GET("/health", healthHandler(opts.Health))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", uc.RegisterUser)
	authGroup.POST("/login", uc.LoginUser)
	authGroup.GET("/me", auth, uc.Me)

	posts := api.Group("/posts")
	posts.GET("", pc.ListPosts)
	posts.GET("/search", pc.SearchPosts)
	posts.GET("/user/:userId", pc.ListUserPosts)
	posts.GET("/:id", pc.GetPost)
	posts.POST("", auth, pc.CreatePost)
	posts.PUT("/:id", auth, pc.UpdatePost)
	posts.DELETE("/:id", auth, pc.DeletePost)
	posts.POST("/:id/like", auth, lc.ToggleLike)
	posts.POST("/:id/comment", auth, cc.AddComment)
	posts.DELETE("/:id/comment/:commentId", auth, cc.DeleteComment)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = origins
	return cors.New(cfg)
}

func healthHandler(h HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := h.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
