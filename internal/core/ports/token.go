package ports

// TokenClaims is the payload embedded in a bearer token.
type TokenClaims struct {
	UserID string
	Email  string
}

// TokenIssuer produces signed, time-bounded bearer tokens.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// TokenVerifier checks signature and expiry of a bearer token and returns
// the embedded claims.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}
