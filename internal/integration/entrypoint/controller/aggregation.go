package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/link-financer/backend/internal/application/usecase/dashboard"
	domainerror "github.com/link-financer/backend/internal/domain/error"
	"github.com/link-financer/backend/internal/integration/entrypoint/dto"
)

// AggregationController handles stateless aggregation of caller-supplied transactions.
type AggregationController struct {
	aggregateUseCase *dashboard.AggregateTransactionsUseCase
}

// NewAggregationController creates a new aggregation controller instance.
func NewAggregationController(aggregateUseCase *dashboard.AggregateTransactionsUseCase) *AggregationController {
	return &AggregationController{
		aggregateUseCase: aggregateUseCase,
	}
}

// AggregateMonthly handles POST /aggregations/monthly requests.
// Records with unparsable dates are skipped and non-numeric amounts count as zero,
// so the request only fails when the body itself is not valid JSON.
func (c *AggregationController) AggregateMonthly(ctx *gin.Context) {
	if _, ok := authenticatedUser(ctx); !ok {
		return
	}

	var req dto.AggregateTransactionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeInvalidAggregationBody),
			Details: err.Error(),
		})
		return
	}

	chart, err := c.aggregateUseCase.Execute(ctx.Request.Context(), req.ToAggregateTransactionsInput())
	if err != nil {
		respondDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyChartResponse(chart))
}
