// Package marketplace implements the customer resolution clients used during
// registration. The HTTP resolver talks to the real marketplace metering
// service; the static resolver serves development environments without one.
package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vigiaai/vigia-provision/internal/config"
	"github.com/vigiaai/vigia-provision/internal/domain/models"
	"github.com/vigiaai/vigia-provision/internal/domain/service"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

type resolveRequest struct {
	RegistrationToken string `json:"registration_token"`
}

type resolveResponse struct {
	CustomerIdentifier string `json:"customer_identifier"`
	AWSAccountID       string `json:"aws_account_id"`
	ProductCode        string `json:"product_code"`
}

// HTTPResolver exchanges a registration token for a customer identity via the
// marketplace resolution endpoint.
type HTTPResolver struct {
	endpoint string
	client   *http.Client
	logger   logger.Logger
}

// NewHTTPResolver creates the production customer resolver.
func NewHTTPResolver(cfg *config.MarketplaceConfig, log logger.Logger) service.CustomerResolver {
	return &HTTPResolver{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   log.WithComponent("marketplace_resolver"),
	}
}

// ResolveCustomer posts the token to the resolution endpoint. A 4xx response
// means the token itself is bad; anything else that is not a 200 is an
// upstream failure.
func (r *HTTPResolver) ResolveCustomer(ctx context.Context, registrationToken string) (*models.CustomerResolution, error) {
	body, err := json.Marshal(resolveRequest{RegistrationToken: registrationToken})
	if err != nil {
		return nil, apperrors.ErrInternal("resolve request encoding failed").WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.ErrInternal("resolve request build failed").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error(ctx, "Marketplace resolution call failed", err)
		return nil, apperrors.ErrUpstream("marketplace resolution unavailable").WithCause(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, apperrors.ErrValidation("invalid registration token")
	default:
		r.logger.Error(ctx, "Marketplace resolution returned server error",
			fmt.Errorf("status %d", resp.StatusCode))
		return nil, apperrors.ErrUpstream("marketplace resolution failed")
	}

	var decoded resolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, apperrors.ErrUpstream("marketplace resolution returned malformed response").WithCause(err)
	}
	if decoded.CustomerIdentifier == "" {
		return nil, apperrors.ErrValidation("invalid registration token")
	}

	return &models.CustomerResolution{
		CustomerIdentifier: decoded.CustomerIdentifier,
		AWSAccountID:       decoded.AWSAccountID,
		ProductCode:        decoded.ProductCode,
	}, nil
}
