package handlers

import (
	"net/http"

	"sacredgreeks/services/user"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	Users user.UserService
}

func NewAdminHandler(users user.UserService) *AdminHandler {
	return &AdminHandler{Users: users}
}

func (h *AdminHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.Users.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}
