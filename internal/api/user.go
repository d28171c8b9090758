package api

import (
	"github.com/gin-gonic/gin"

	"github.com/wavegram/wavegram/internal/service"
)

type updateUserRequest struct {
	FirstName *string `form:"firstName" binding:"omitempty,min=2"`
	LastName  *string `form:"lastName" binding:"omitempty,min=2"`
	Age       *int    `form:"age" binding:"omitempty,gte=13,lte=120"`
}

func (r *Router) getUser(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.Error(service.NewUnauthorized("Access denied, no token provided"))
		return
	}

	full, err := r.users.CurrentUser(c.Request.Context(), user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	respondOK(c, "User retrieved successfully", full)
}

func (r *Router) updateUser(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.Error(service.NewUnauthorized("Access denied, no token provided"))
		return
	}

	var req updateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	input := service.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
	}

	// A new profile picture replaces the stored filename
	if file, err := c.FormFile("profilepic"); err == nil && file != nil {
		name, err := r.uploads.SaveProfilePicture(c, file)
		if err != nil {
			c.Error(err)
			return
		}
		input.ProfilePicture = &name
	}

	updated, err := r.users.UpdateProfile(c.Request.Context(), user.ID, input)
	if err != nil {
		c.Error(err)
		return
	}

	respondOK(c, "User updated successfully", updated)
}
