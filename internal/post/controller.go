package post

import (
	"net/http"

	"microblog/internal/auth"
	"microblog/internal/flash"
	"microblog/internal/forms"
	"microblog/internal/render"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PostController struct {
	postService PostServiceInterface
}

func NewPostController(postService PostServiceInterface) *PostController {
	return &PostController{
		postService: postService,
	}
}

// Index renders the listing page with every post, newest first.
func (p *PostController) Index(c *gin.Context) {
	posts, err := p.postService.ListAll()
	if err != nil {
		logrus.WithError(err).Error("Failed to list posts")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	render.HTML(c, http.StatusOK, "index.html", gin.H{
		"Posts": posts,
	})
}

// ShowCreate renders the empty post form.
func (p *PostController) ShowCreate(c *gin.Context) {
	render.HTML(c, http.StatusOK, "create_post.html", gin.H{
		"Values": forms.Values{},
		"Errors": forms.Errors{},
	})
}

// Create handles the post form submission for the authenticated user.
func (p *PostController) Create(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	schema := forms.Post()
	submitted := forms.Submitted(schema, c.PostForm)
	values, fieldErrors := schema.Validate(submitted)
	if fieldErrors != nil {
		render.HTML(c, http.StatusOK, "create_post.html", gin.H{
			"Values": schema.Echo(submitted),
			"Errors": fieldErrors,
		})
		return
	}

	if _, err := p.postService.CreatePost(userID, values["title"], values["content"]); err != nil {
		logrus.WithError(err).Error("Failed to create post")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	flash.Set(c, "success", "Your blog has been created!")
	c.Redirect(http.StatusFound, "/")
}
