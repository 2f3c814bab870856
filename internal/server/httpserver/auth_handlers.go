package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/acquisitions/internal/common"
	"github.com/dmitrijs2005/acquisitions/internal/server/auth"
	"github.com/dmitrijs2005/acquisitions/internal/server/models"
	"github.com/dmitrijs2005/acquisitions/internal/server/validation"
	"github.com/gin-gonic/gin"
)

// startSession signs a token for user and sets it as the session cookie.
func (s *HTTPServer) startSession(c *gin.Context, user *models.User) error {
	token, err := s.tokens.Sign(auth.IdentityOf(user))
	if err != nil {
		return err
	}
	s.cookies.Set(c.Writer, common.TokenCookieName, token)
	return nil
}

func (s *HTTPServer) signUp(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.SignupRequest
	if !bindJSON(c, &req) {
		return
	}
	if errs := s.validator.Signup(&req); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	user, err := s.authService.CreateUser(ctx, req.NewUser())
	if err != nil {
		s.fail(c, err)
		return
	}

	if err := s.startSession(c, user); err != nil {
		s.fail(c, err)
		return
	}

	s.logger.Info(ctx, "User registered successfully", "email", user.Email, "role", user.Role)
	c.JSON(http.StatusCreated, gin.H{
		"message": "User Registered",
		"user":    user.Summary(),
	})
}

func (s *HTTPServer) signIn(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.SigninRequest
	if !bindJSON(c, &req) {
		return
	}
	if errs := s.validator.Signin(&req); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	user, err := s.authService.AuthenticateUser(ctx, req.Email, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}

	if err := s.startSession(c, user); err != nil {
		s.fail(c, err)
		return
	}

	s.logger.Info(ctx, "User signed in successfully", "email", user.Email)
	c.JSON(http.StatusOK, gin.H{
		"message": "User signed in successfully",
		"user":    user.Summary(),
	})
}

func (s *HTTPServer) signOut(c *gin.Context) {
	s.cookies.Clear(c.Writer, common.TokenCookieName)
	s.logger.Info(c.Request.Context(), "User signed out successfully")
	c.JSON(http.StatusOK, gin.H{"message": "User signed out successfully"})
}
