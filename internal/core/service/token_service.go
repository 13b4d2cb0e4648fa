package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edison/video-portal/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenService issues and verifies HS256-signed session tokens. The
// embedded roles are a snapshot at issuance: role changes do not affect
// already-issued tokens until they expire and are reissued.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the principal's identity and role snapshot.
func (s *TokenService) Issue(p domain.Principal) (string, error) {
	now := time.Now()
	roles := make([]string, len(p.Roles))
	for i, r := range p.Roles {
		roles[i] = string(r)
	}

	claims := jwt.MapClaims{
		"userId": p.UserID,
		"name":   p.Name,
		"email":  p.Email,
		"roles":  roles,
		"iat":    now.Unix(),
		"exp":    now.Add(s.ttl).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and reconstructs the principal. It is
// a pure function of the token and the clock: no persisted revocation state
// is consulted, so a deactivated account keeps its issued tokens until they
// expire.
func (s *TokenService) Verify(token string) (domain.Principal, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return domain.Principal{}, domain.ErrInvalidToken
	}

	p := domain.Principal{
		UserID: stringClaim(claims, "userId"),
		Name:   stringClaim(claims, "name"),
		Email:  stringClaim(claims, "email"),
		Roles:  roleClaims(claims, "roles"),
	}
	if p.UserID == "" {
		return domain.Principal{}, domain.ErrInvalidToken
	}
	return p, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}

// roleClaims decodes the roles claim, which arrives as []any after JSON
// round-tripping through the JWT payload.
func roleClaims(claims jwt.MapClaims, key string) []domain.Role {
	raw, ok := claims[key].([]any)
	if !ok {
		return nil
	}
	roles := make([]domain.Role, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			roles = append(roles, domain.Role(s))
		}
	}
	return roles
}
