// Package risk issues cross-lender identity lookups and shapes the
// aggregated risk answer for rendering.
package risk

import (
	"context"
	"net/http"
	"net/url"

	"github.com/linkledger/lenderctl/internal/common"
	"github.com/linkledger/lenderctl/internal/logging"
)

type API interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

type Service struct {
	api API
	log logging.Logger
}

func NewService(api API, log logging.Logger) *Service {
	return &Service{api: api, log: log}
}

// Query looks up one identity key across all lenders. The key must be
// non-empty; validation happens locally before any request.
//
// When the backend omits the risk fields the report defaults to the green
// tier with a low-risk label. The default can mask a degraded index as
// safe, so every occurrence is logged at Warn.
func (s *Service) Query(ctx context.Context, nationalID string) (*Report, error) {
	if nationalID == "" {
		return nil, common.ErrMissingField
	}

	q := url.Values{}
	q.Set("nationalId", nationalID)

	var report Report
	if err := s.api.Do(ctx, http.MethodGet, "/api/clients/search?"+q.Encode(), nil, &report); err != nil {
		return nil, err
	}

	if report.Risk == "" {
		s.log.Warn(ctx, "backend omitted risk fields, defaulting to lowest tier", "nationalId", nationalID)
		report.Risk = TierGreen
	}
	if report.RiskLabel == "" {
		report.RiskLabel = labelForTier(report.Risk)
	}
	if report.FullName == "" {
		report.FullName = "Unknown"
	}

	return &report, nil
}

// labelForTier supplies the display label when the backend sends a tier
// without one.
func labelForTier(t Tier) string {
	switch t {
	case TierRed:
		return "High risk"
	case TierYellow:
		return "Medium risk"
	default:
		return "Low risk"
	}
}
