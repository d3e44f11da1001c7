package marketplace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigiaai/vigia-provision/internal/config"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

func TestStaticResolverIsDeterministic(t *testing.T) {
	resolver := NewStaticResolver()
	ctx := context.Background()

	first, err := resolver.ResolveCustomer(ctx, "tok-1")
	require.NoError(t, err)
	second, err := resolver.ResolveCustomer(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, first.CustomerIdentifier, second.CustomerIdentifier)

	other, err := resolver.ResolveCustomer(ctx, "tok-2")
	require.NoError(t, err)
	assert.NotEqual(t, first.CustomerIdentifier, other.CustomerIdentifier)
}

func TestStaticResolverRejectsEmptyToken(t *testing.T) {
	resolver := NewStaticResolver()

	_, err := resolver.ResolveCustomer(context.Background(), "   ")
	assert.True(t, apperrors.IsValidation(err))
}

func newHTTPResolver(t *testing.T, endpoint string) *HTTPResolver {
	t.Helper()
	resolver := NewHTTPResolver(&config.MarketplaceConfig{
		Mode:     "http",
		Endpoint: endpoint,
		Timeout:  2 * time.Second,
	}, logger.NewNopLogger())
	return resolver.(*HTTPResolver)
}

func TestHTTPResolverSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"customer_identifier":"C1","aws_account_id":"123456789012","product_code":"prod-abc"}`))
	}))
	defer srv.Close()

	resolution, err := newHTTPResolver(t, srv.URL).ResolveCustomer(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "C1", resolution.CustomerIdentifier)
	assert.Equal(t, "123456789012", resolution.AWSAccountID)
	assert.Equal(t, "prod-abc", resolution.ProductCode)
}

func TestHTTPResolverInvalidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newHTTPResolver(t, srv.URL).ResolveCustomer(context.Background(), "bad-token")
	assert.True(t, apperrors.IsValidation(err))
}

func TestHTTPResolverServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newHTTPResolver(t, srv.URL).ResolveCustomer(context.Background(), "tok-1")
	assert.True(t, apperrors.IsUpstream(err))
}

func TestHTTPResolverUnreachable(t *testing.T) {
	_, err := newHTTPResolver(t, "http://127.0.0.1:1").ResolveCustomer(context.Background(), "tok-1")
	assert.True(t, apperrors.IsUpstream(err))
}
