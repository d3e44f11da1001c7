package models

// SessionClaims is the validated identity carried by a bearer token: the
// subject email and the tenant every request is scoped to.
type SessionClaims struct {
	Email    string `json:"email"`
	TenantID string `json:"tenant_id"`
}

// CustomerResolution is the marketplace resolution of a registration token,
// returned by the external resolution service.
type CustomerResolution struct {
	CustomerIdentifier string `json:"customer_identifier"`
	AWSAccountID       string `json:"aws_account_id"`
	ProductCode        string `json:"product_code"`
}
