package api

import (
	"github.com/gin-gonic/gin"

	"github.com/wavegram/wavegram/internal/service"
)

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (r *Router) createComment(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.Error(service.NewUnauthorized("Access denied, no token provided"))
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	view, err := r.comments.CreateComment(c.Request.Context(), req.Content, c.Param("id"), user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	respondCreated(c, "Comment created successfully", view)
}

func (r *Router) getComment(c *gin.Context) {
	view, err := r.comments.GetComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	respondOK(c, "Comment retrieved successfully", view)
}

func (r *Router) updateComment(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.Error(service.NewUnauthorized("Access denied, no token provided"))
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	view, err := r.comments.UpdateComment(c.Request.Context(), c.Param("id"), req.Content, user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	respondOK(c, "Comment updated successfully", view)
}

func (r *Router) deleteComment(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.Error(service.NewUnauthorized("Access denied, no token provided"))
		return
	}

	if err := r.comments.DeleteComment(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		c.Error(err)
		return
	}

	respondOK(c, "Comment deleted successfully", nil)
}
