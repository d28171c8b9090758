package api

import (
	"github.com/gin-gonic/gin"

	"github.com/wavegram/wavegram/internal/service"
)

type registerRequest struct {
	FirstName string `form:"firstName" binding:"required,min=2"`
	LastName  string `form:"lastName" binding:"required,min=2"`
	Age       int    `form:"age" binding:"required,gte=13,lte=120"`
	Email     string `form:"email" binding:"required,email"`
	Username  string `form:"username" binding:"required,min=3"`
	Password  string `form:"password" binding:"required,min=6"`
	Role      string `form:"role" binding:"omitempty,oneof=user admin"`
	Gender    string `form:"gender" binding:"required,oneof=Male Female Others"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (r *Router) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	input := service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		Role:      req.Role,
		Gender:    req.Gender,
	}

	// Profile picture is optional on signup
	if file, err := c.FormFile("profilepic"); err == nil && file != nil {
		name, err := r.uploads.SaveProfilePicture(c, file)
		if err != nil {
			c.Error(err)
			return
		}
		input.ProfilePicture = name
	}

	user, err := r.users.Register(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	respondCreated(c, "User registered successfully", user)
}

func (r *Router) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	result, err := r.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	respondOK(c, "Login successful", gin.H{
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
		"user":         result.User,
	})
}

func (r *Router) refreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(service.NewBadRequest("Refresh token is required"))
		return
	}

	pair, err := r.users.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.Error(err)
		return
	}

	respondOK(c, "Token refreshed successfully", pair)
}
