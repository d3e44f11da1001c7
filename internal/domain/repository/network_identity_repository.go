package repository

import "context"

// NetworkIdentityRepository records which ENIs belong to a tenant and answers
// the reverse question for the ingest path.
type NetworkIdentityRepository interface {
	// Register inserts the (tenant_id, eni_id) pair conditionally; an
	// existing pair yields a conflict error. Whether the ENI is already
	// bound to a different tenant is deliberately not checked.
	Register(ctx context.Context, tenantID, eniID string) error

	// List returns the ENI ids registered for the tenant. Order carries no
	// meaning.
	List(ctx context.Context, tenantID string) ([]string, error)

	// Delete removes the pair. Deleting a pair that does not exist is not an
	// error.
	Delete(ctx context.Context, tenantID, eniID string) error

	// ReverseLookup resolves an ENI to a tenant, or returns a not-found
	// error. When the ENI was registered under several tenants the earliest
	// registration wins.
	ReverseLookup(ctx context.Context, eniID string) (string, error)
}
