package api

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/wavegram/wavegram/internal/service"
)

type uploadPostRequest struct {
	Title   string `form:"title" binding:"required"`
	Content string `form:"content"`
}

type editPostRequest struct {
	Title   *string `form:"title" binding:"omitempty,min=1"`
	Content *string `form:"content"`
}

func (r *Router) getAllPosts(c *gin.Context) {
	opts, err := service.ParsePostQueryOptions(
		c.Query("page"),
		c.Query("limit"),
		c.Query("sortBy"),
		c.Query("sortOrder"),
		c.Query("search"),
	)
	if err != nil {
		c.Error(err)
		return
	}

	page, err := r.posts.GetAllPosts(c.Request.Context(), opts)
	if err != nil {
		c.Error(err)
		return
	}

	respondList(c, "Posts retrieved successfully", page, newListMeta(opts))
}

func (r *Router) getPost(c *gin.Context) {
	view, err := r.posts.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	respondOK(c, "Post retrieved successfully", view)
}

func (r *Router) uploadPost(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.Error(service.NewUnauthorized("Access denied, no token provided"))
		return
	}

	var req uploadPostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["posts"]
	}

	filenames, err := r.uploads.SavePostImages(c, files)
	if err != nil {
		c.Error(err)
		return
	}

	view, err := r.posts.CreatePost(c.Request.Context(), service.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Filenames: filenames,
		UserID:    user.ID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	respondCreated(c, "Post created successfully", view)
}

func (r *Router) editPost(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.Error(service.NewUnauthorized("Access denied, no token provided"))
		return
	}

	var req editPostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	input := service.EditPostInput{
		Title:   req.Title,
		Content: req.Content,
	}

	// New attachments replace the stored set; a PATCH without files
	// leaves the existing attachments alone
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if files := form.File["posts"]; len(files) > 0 {
			filenames, err := r.uploads.SavePostImages(c, files)
			if err != nil {
				c.Error(err)
				return
			}
			input.Filenames = filenames
		}
	}

	view, err := r.posts.EditPost(c.Request.Context(), c.Param("id"), input, user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	respondOK(c, "Post updated successfully", view)
}
