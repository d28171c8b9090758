package api

import (
	"github.com/gin-gonic/gin"

	"github.com/wavegram/wavegram/internal/auth"
	"github.com/wavegram/wavegram/internal/db"
	"github.com/wavegram/wavegram/internal/service"
	"github.com/wavegram/wavegram/internal/upload"
)

// Router wires the HTTP surface to the service layer
type Router struct {
	users    *service.UserService
	posts    *service.PostService
	comments *service.CommentService
	tokens   *auth.TokenService
	store    service.UserStore
	uploads  *upload.Saver
	database *db.DB
}

// NewRouter creates a router
func NewRouter(
	users *service.UserService,
	posts *service.PostService,
	comments *service.CommentService,
	tokens *auth.TokenService,
	store service.UserStore,
	uploads *upload.Saver,
	database *db.DB,
) *Router {
	return &Router{
		users:    users,
		posts:    posts,
		comments: comments,
		tokens:   tokens,
		store:    store,
		uploads:  uploads,
		database: database,
	}
}

// SetupRoutes mounts all endpoints on the engine
func (r *Router) SetupRoutes(engine *gin.Engine) {
	api := engine.Group("/api")
	api.GET("/health", r.healthCheck)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.register)
		authGroup.POST("/login", r.login)
		authGroup.POST("/refresh/token", r.refreshToken)
	}

	guard := RequireAuth(r.tokens, r.store)

	postGroup := api.Group("/post", guard)
	{
		postGroup.GET("", r.getAllPosts)
		postGroup.POST("/upload", r.uploadPost)
		postGroup.GET("/:id", r.getPost)
		postGroup.PATCH("/:id", r.editPost)
		postGroup.POST("/:id/comments", r.createComment)
	}

	commentGroup := api.Group("/comment", guard)
	{
		commentGroup.GET("/:id", r.getComment)
		commentGroup.PATCH("/:id", r.updateComment)
		commentGroup.DELETE("/:id", r.deleteComment)
	}

	userGroup := api.Group("/user", guard)
	{
		userGroup.GET("/getUser", r.getUser)
		userGroup.PATCH("/updateUser", r.updateUser)
	}
}
