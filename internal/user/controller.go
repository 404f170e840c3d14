package user

import (
	"errors"
	"net/http"

	"microblog/internal/auth"
	"microblog/internal/flash"
	"microblog/internal/forms"
	"microblog/internal/render"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserController struct {
	userService UserServiceInterface
	secret      string
}

func NewUserController(userService UserServiceInterface, secret string) *UserController {
	return &UserController{
		userService: userService,
		secret:      secret,
	}
}

// ShowRegister renders the empty sign-up form.
func (a *UserController) ShowRegister(c *gin.Context) {
	render.HTML(c, http.StatusOK, "register.html", gin.H{
		"Values": forms.Values{},
		"Errors": forms.Errors{},
	})
}

// Register handles the sign-up form submission.
func (a *UserController) Register(c *gin.Context) {
	schema := forms.Registration()
	submitted := forms.Submitted(schema, c.PostForm)
	values, fieldErrors := schema.Validate(submitted)
	if fieldErrors != nil {
		render.HTML(c, http.StatusOK, "register.html", gin.H{
			"Values": schema.Echo(submitted),
			"Errors": fieldErrors,
		})
		return
	}

	_, err := a.userService.Register(values["username"], values["email"], values["password"])
	if err != nil {
		if errors.Is(err, ErrDuplicateIdentity) {
			render.HTML(c, http.StatusOK, "register.html", gin.H{
				"Values": schema.Echo(values),
				"Errors": forms.Errors{"email": {"Username or email already in use"}},
			})
			return
		}
		logrus.WithError(err).Error("Failed to register user")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	flash.Set(c, "success", "Registration successful! Please log in.")
	c.Redirect(http.StatusFound, "/login")
}

// ShowLogin renders the empty login form.
func (a *UserController) ShowLogin(c *gin.Context) {
	render.HTML(c, http.StatusOK, "login.html", gin.H{
		"Values": forms.Values{},
		"Errors": forms.Errors{},
	})
}

// Login verifies credentials and issues the session cookie.
func (a *UserController) Login(c *gin.Context) {
	schema := forms.Login()
	submitted := forms.Submitted(schema, c.PostForm)
	values, fieldErrors := schema.Validate(submitted)
	if fieldErrors != nil {
		render.HTML(c, http.StatusOK, "login.html", gin.H{
			"Values": schema.Echo(submitted),
			"Errors": fieldErrors,
		})
		return
	}

	userData, err := a.userService.Authenticate(values["email"], values["password"])
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			// Same message whether the email exists or not.
			render.HTML(c, http.StatusOK, "login.html", gin.H{
				"Values": schema.Echo(values),
				"Errors": forms.Errors{},
				"Flash":  &flash.Message{Category: "danger", Text: "Invalid email or password"},
			})
			return
		}
		logrus.WithError(err).Error("Failed to authenticate user")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := auth.IssueSession(userData.ID, a.secret)
	if err != nil {
		logrus.WithError(err).Error("Failed to issue session token")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, token, int(auth.SessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session cookie. The stateless token itself ages
// out on its expiry; the browser just stops replaying it.
func (a *UserController) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
