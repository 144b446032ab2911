package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jihun/brolly/internal/api/dto"
	"github.com/jihun/brolly/internal/core/domain"
	"github.com/jihun/brolly/internal/core/repository"
)

type ExportHandler struct {
	exportRepo repository.ExportRepository
}

func NewExportHandler(exportRepo repository.ExportRepository) *ExportHandler {
	return &ExportHandler{
		exportRepo: exportRepo,
	}
}

// Export handles GET /export
func (h *ExportHandler) Export(c *gin.Context) {
	snapshot, err := h.exportRepo.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to take snapshot",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, ToExportResponse(snapshot))
}

// ToExportResponse strips password hashes from the snapshot before it
// leaves the process.
func ToExportResponse(snapshot *domain.Snapshot) dto.ExportResponse {
	resp := dto.ExportResponse{
		TakenAt: snapshot.TakenAt,
		Users:   make([]dto.ExportUser, 0, len(snapshot.Users)),
		Rentals: make([]dto.RentalResponse, 0, len(snapshot.Rentals)),
	}
	for _, u := range snapshot.Users {
		resp.Users = append(resp.Users, dto.ExportUser{
			ID:        u.ID,
			Handle:    u.Handle,
			Name:      u.Name,
			Phone:     u.Phone,
			Org:       u.Org,
			CreatedAt: u.CreatedAt,
		})
	}
	for _, r := range snapshot.Rentals {
		resp.Rentals = append(resp.Rentals, toRentalResponse(r))
	}
	return resp
}
