package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/allisson/taskmanager/internal/errors"
	"github.com/allisson/taskmanager/internal/identity/domain"
)

// TokenConfig holds the signing material and claim constraints for identity
// tokens. It is passed in explicitly at construction; the service keeps no
// ambient or package-level state.
type TokenConfig struct {
	// SigningSecret signs and verifies tokens (HMAC-SHA-256).
	SigningSecret string
	// Issuer is stamped on issued tokens and required on validated ones.
	Issuer string
	// Audience is stamped on issued tokens and required on validated ones.
	Audience string
	// Expiration is the validity window of issued tokens.
	Expiration time.Duration
	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// tokenService implements TokenService using HS256-signed JWTs.
type tokenService struct {
	config TokenConfig
}

// jwtClaims is the wire shape of a token: registered claims plus the
// denormalized username and email of the subject.
type jwtClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewTokenService creates a new TokenService with the given configuration.
func NewTokenService(config TokenConfig) TokenService {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &tokenService{config: config}
}

// Issue builds a signed token embedding the identity id as subject plus the
// username and email, valid for the configured expiration window.
func (s *tokenService) Issue(identity *domain.Identity) (string, time.Time, error) {
	now := s.config.Now().UTC()
	expiresAt := now.Add(s.config.Expiration)

	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.ID, 10),
			Issuer:    s.config.Issuer,
			Audience:  jwt.ClaimStrings{s.config.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.Must(uuid.NewV7()).String(),
		},
		Username: identity.Username,
		Email:    identity.Email,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.config.SigningSecret))
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign token")
	}

	return token, expiresAt, nil
}

// Validate parses the token and checks signature, issuer, audience and the
// validity window with zero clock-skew tolerance. Claims validation is done
// manually after signature verification so each failure maps to its own
// error variant; the HTTP layer still collapses all of them into a 401.
func (s *tokenService) Validate(token string) (*domain.TokenClaims, error) {
	var parsed jwtClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(t *jwt.Token) (any, error) {
		return []byte(s.config.SigningSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, domain.ErrTokenBadSignature
		}
		return nil, domain.ErrTokenMalformed
	}

	if parsed.Issuer != s.config.Issuer {
		return nil, domain.ErrTokenIssuerMismatch
	}
	if !audienceContains(parsed.Audience, s.config.Audience) {
		return nil, domain.ErrTokenAudienceMismatch
	}

	if parsed.IssuedAt == nil || parsed.ExpiresAt == nil {
		return nil, domain.ErrTokenMalformed
	}
	now := s.config.Now().UTC()
	if now.Before(parsed.IssuedAt.Time) {
		return nil, domain.ErrTokenNotYetValid
	}
	if !now.Before(parsed.ExpiresAt.Time) {
		return nil, domain.ErrTokenExpired
	}

	identityID, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}

	return &domain.TokenClaims{
		IdentityID: identityID,
		Username:   parsed.Username,
		Email:      parsed.Email,
		IssuedAt:   parsed.IssuedAt.Time,
		ExpiresAt:  parsed.ExpiresAt.Time,
	}, nil
}

// audienceContains reports whether the audience claim includes the expected value.
func audienceContains(audience jwt.ClaimStrings, expected string) bool {
	for _, value := range audience {
		if value == expected {
			return true
		}
	}
	return false
}
