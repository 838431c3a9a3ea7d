package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gin-gonic/gin/binding"

	"github.com/guttosm/stockdash/config"
	"github.com/guttosm/stockdash/internal/api"
	"github.com/guttosm/stockdash/internal/domain/dto"
	"github.com/guttosm/stockdash/internal/metrics"
	"github.com/guttosm/stockdash/internal/service"
)

// RunReport builds one dashboard for q with the configured provider and
// writes it to out as indented JSON, the same body GET /api/v1/dashboard returns.
func RunReport(ctx context.Context, out io.Writer, q api.DashboardQuery) error {
	api.RegisterValidators()
	if err := binding.Validator.ValidateStruct(q); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	sq, err := q.ToServiceQuery()
	if err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	provider, err := newProvider(config.AppConfig, metrics.New())
	if err != nil {
		return err
	}

	d, err := service.NewDashboardService(provider).Build(ctx, sq)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.NewDashboardResponse(d))
}
