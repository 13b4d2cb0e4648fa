package ports

import "github.com/edison/video-portal/internal/core/domain"

// TokenService issues and verifies self-contained session tokens.
//
// Verification is a pure function of the token string and the current time;
// there is no server-side revocation, so a token stays valid until its
// natural expiry even if the account behind it is deactivated.
type TokenService interface {
	Issue(principal domain.Principal) (string, error)
	Verify(token string) (domain.Principal, error)
}
