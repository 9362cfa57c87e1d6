package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escuelanichiboku/nichiboku-backend/internal/http/response"
	"github.com/escuelanichiboku/nichiboku-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	user, err := uh.userService.GetMe(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "user_not_found", err)
		return
	}
	response.RespondOK(c, user)
}
