package marketplace

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/vigiaai/vigia-provision/internal/domain/models"
	"github.com/vigiaai/vigia-provision/internal/domain/service"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
)

// StaticResolver is the development-mode resolver. Any non-empty token maps
// deterministically to a customer identity, so repeated registrations with
// the same token resolve to the same tenant.
type StaticResolver struct{}

// NewStaticResolver creates the development resolver.
func NewStaticResolver() service.CustomerResolver {
	return &StaticResolver{}
}

// ResolveCustomer derives a stable customer identifier from the token.
func (r *StaticResolver) ResolveCustomer(_ context.Context, registrationToken string) (*models.CustomerResolution, error) {
	token := strings.TrimSpace(registrationToken)
	if token == "" {
		return nil, apperrors.ErrValidation("invalid registration token")
	}

	sum := sha256.Sum256([]byte(token))
	return &models.CustomerResolution{
		CustomerIdentifier: "dev-" + hex.EncodeToString(sum[:8]),
		AWSAccountID:       "000000000000",
		ProductCode:        "DEV-PRODUCT",
	}, nil
}
