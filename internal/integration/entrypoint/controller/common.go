package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/link-financer/backend/internal/domain/error"
	"github.com/link-financer/backend/internal/integration/entrypoint/dto"
	"github.com/link-financer/backend/internal/integration/entrypoint/middleware"
)

// authenticatedUser returns the user set by the auth middleware or writes a 401.
func authenticatedUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}
