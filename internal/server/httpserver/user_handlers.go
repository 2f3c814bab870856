package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/acquisitions/internal/server/auth"
	"github.com/dmitrijs2005/acquisitions/internal/server/models"
	"github.com/dmitrijs2005/acquisitions/internal/server/validation"
	"github.com/gin-gonic/gin"
)

func publicUsers(users []*models.User) []models.PublicUser {
	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}

// caller returns the authenticated identity, answering 401 when there is none.
func caller(c *gin.Context) (auth.Identity, bool) {
	id, ok := auth.IdentityFromContext(c.Request.Context())
	if !ok {
		unauthorized(c, "Authentication required")
	}
	return id, ok
}

func (s *HTTPServer) fetchAllUsers(c *gin.Context) {
	ctx := c.Request.Context()
	s.logger.Info(ctx, "Fetching all users")

	users, err := s.userService.GetAll(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully retrieved all users",
		"users":   publicUsers(users),
		"count":   len(users),
	})
}

func (s *HTTPServer) fetchUserByID(c *gin.Context) {
	id, errs := s.validator.UserID(c.Param("id"))
	if errs != nil {
		validationFailed(c, errs)
		return
	}

	user, err := s.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User retrieved successfully",
		"user":    user.Public(),
	})
}

func (s *HTTPServer) updateUserByID(c *gin.Context) {
	ctx := c.Request.Context()

	id, errs := s.validator.UserID(c.Param("id"))
	if errs != nil {
		validationFailed(c, errs)
		return
	}

	var req validation.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if errs := s.validator.Update(&req); len(errs) > 0 {
		validationFailed(c, errs)
		return
	}

	me, ok := caller(c)
	if !ok {
		return
	}
	if !me.Owns(id) && !me.IsAdmin() {
		forbidden(c, "You can only update your own profile")
		return
	}
	if req.Role != nil && !me.IsAdmin() {
		forbidden(c, "Only administrators can change user roles")
		return
	}

	user, err := s.userService.Update(ctx, id, req.UserUpdate())
	if err != nil {
		s.fail(c, err)
		return
	}

	s.logger.Info(ctx, "User updated", "user_id", id, "by", me.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user.Public(),
	})
}

func (s *HTTPServer) deleteUserByID(c *gin.Context) {
	ctx := c.Request.Context()

	id, errs := s.validator.UserID(c.Param("id"))
	if errs != nil {
		validationFailed(c, errs)
		return
	}

	me, ok := caller(c)
	if !ok {
		return
	}
	if !me.Owns(id) && !me.IsAdmin() {
		forbidden(c, "You can only delete your own account")
		return
	}
	// Admins included.
	if me.Owns(id) {
		forbidden(c, "You cannot delete your own account. Please contact an administrator.")
		return
	}

	user, err := s.userService.Delete(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.logger.Info(ctx, "User deleted", "user_id", id, "by", me.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
		"user":    user.Public(),
	})
}
