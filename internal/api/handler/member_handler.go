package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jihun/brolly/internal/api/dto"
	"github.com/jihun/brolly/internal/api/middleware"
	"github.com/jihun/brolly/internal/core/repository"
)

type MemberHandler struct {
	userRepo repository.UserRepository
}

func NewMemberHandler(userRepo repository.UserRepository) *MemberHandler {
	return &MemberHandler{
		userRepo: userRepo,
	}
}

// Me handles GET /members/me
func (h *MemberHandler) Me(c *gin.Context) {
	claims, ok := middleware.GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Missing token claims",
			Code:    http.StatusUnauthorized,
		})
		return
	}

	// The administrative identity is synthetic; there is no row to read.
	if claims.Admin && claims.UserID == 0 {
		c.JSON(http.StatusOK, dto.UserResponse{
			Handle: claims.Subject,
			Name:   "Administrator",
			Admin:  true,
		})
		return
	}

	user, err := h.userRepo.FindByHandle(c.Request.Context(), claims.Subject)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not Found",
			Message: "Member not found",
			Code:    http.StatusNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}
