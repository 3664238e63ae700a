// Auth HTTP handlers:
//   - POST /auth/signup
//   - POST /auth/login
//   - GET  /auth/me
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-jobtracker-backend/internal/http/middleware"
	"github.com/tbourn/go-jobtracker-backend/internal/services"
)

// SignupRequest is the JSON payload for registering an account.
type SignupRequest struct {
	Username    string `json:"username"     binding:"required" example:"ada_l"`
	Email       string `json:"email"        binding:"required" example:"ada@example.com"`
	Password    string `json:"password"     binding:"required" example:"correct-horse-battery"`
	DisplayName string `json:"display_name" example:"Ada Lovelace"`
}

// LoginRequest is the JSON payload for signing in with a username or email.
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email" binding:"required" example:"ada@example.com"`
	Password        string `json:"password"          binding:"required" example:"correct-horse-battery"`
}

// Signup godoc
// @ID          signup
// @Summary     Register an account
// @Description Creates a user and returns an access token for it.
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.SignupRequest  true  "Account details"
// @Success     201   {object}  services.Session
// @Failure     400   {object}  handlers.ErrorResponse  "Invalid username, email or password"
// @Failure     409   {object}  handlers.ErrorResponse  "Username or email already registered"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/signup [post]
func (h *Handlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username, email and password are required")
		return
	}
	sess, err := h.authSvc.Signup(c.Request.Context(), services.SignupInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, sess)
}

// Login godoc
// @ID          login
// @Summary     Sign in
// @Description Exchanges a username or email and password for an access token.
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.LoginRequest  true  "Credentials"
// @Success     200   {object}  services.Session
// @Failure     400   {object}  handlers.ErrorResponse  "Missing fields"
// @Failure     401   {object}  handlers.ErrorResponse  "Invalid credentials"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username_or_email and password are required")
		return
	}
	sess, err := h.authSvc.Login(c.Request.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, sess)
}

// Me godoc
// @ID          me
// @Summary     Current user
// @Tags        Auth
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  domain.User
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid token"
// @Failure     404  {object}  handlers.ErrorResponse  "User no longer exists"
// @Router      /auth/me [get]
func (h *Handlers) Me(c *gin.Context) {
	u, err := h.authSvc.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}
