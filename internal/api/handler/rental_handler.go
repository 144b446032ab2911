package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jihun/brolly/internal/api/dto"
	"github.com/jihun/brolly/internal/api/middleware"
	"github.com/jihun/brolly/internal/core/domain"
	"github.com/jihun/brolly/internal/core/repository"
	"github.com/jihun/brolly/internal/core/service"
)

type RentalHandler struct {
	rentalService *service.RentalService
}

func NewRentalHandler(rentalService *service.RentalService) *RentalHandler {
	return &RentalHandler{
		rentalService: rentalService,
	}
}

// GetCurrent handles GET /rental
func (h *RentalHandler) GetCurrent(c *gin.Context) {
	userID, ok := memberID(c)
	if !ok {
		return
	}

	rental, err := h.rentalService.CurrentRental(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrNothingRented) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not Found",
			Message: "Nothing is checked out",
			Code:    http.StatusNotFound,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to look up rental",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, toRentalResponse(rental))
}

// Checkout handles POST /rental/checkout
func (h *RentalHandler) Checkout(c *gin.Context) {
	userID, ok := memberID(c)
	if !ok {
		return
	}

	rental, err := h.rentalService.Checkout(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrAlreadyRented) {
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   "Conflict",
			Message: "An umbrella is already checked out",
			Code:    http.StatusConflict,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to check out",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusCreated, toRentalResponse(rental))
}

// Return handles POST /rental/return
func (h *RentalHandler) Return(c *gin.Context) {
	userID, ok := memberID(c)
	if !ok {
		return
	}

	rental, err := h.rentalService.Return(c.Request.Context(), userID)
	if errors.Is(err, repository.ErrNothingRented) {
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   "Conflict",
			Message: "Nothing is checked out",
			Code:    http.StatusConflict,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to return",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, toRentalResponse(rental))
}

// memberID extracts the member id from the token claims. The synthetic
// administrator has no user row and cannot rent.
func memberID(c *gin.Context) (int64, bool) {
	claims, ok := middleware.GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Missing token claims",
			Code:    http.StatusUnauthorized,
		})
		return 0, false
	}
	if claims.UserID == 0 {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error:   "Forbidden",
			Message: "The administrative account cannot rent",
			Code:    http.StatusForbidden,
		})
		return 0, false
	}
	return claims.UserID, true
}

func toRentalResponse(rental *domain.Rental) dto.RentalResponse {
	return dto.RentalResponse{
		ID:         rental.ID,
		UserID:     rental.UserID,
		Status:     string(rental.Status),
		RentedAt:   rental.RentedAt,
		ReturnedAt: rental.ReturnedAt,
	}
}
