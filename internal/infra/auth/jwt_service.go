package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"gatehouse/config"
	domainerrors "gatehouse/internal/domain/errors"
	"gatehouse/internal/domain/service"
	"gatehouse/internal/errors"
)

// ErrInvalidToken is returned for every verification failure: bad signature,
// unexpected algorithm, malformed token or elapsed expiry. Callers must not
// learn which one it was.
var ErrInvalidToken = errors.New("invalid or expired token")

// jwtService is a concrete implementation of the TokenService interface using
// HS256-signed JWTs with a single symmetric secret.
type jwtService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService is the constructor for jwtService. A missing signing secret
// is fatal at startup; the core cannot function without one.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth.SigningSecret == "" {
		return nil, domainerrors.ErrConfiguration.WrapMessage("jwt signing secret must be provided")
	}

	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &jwtService{
		secret: []byte(cfg.Auth.SigningSecret),
		ttl:    ttl,
	}, nil
}

// Issue creates a signed access token carrying the account id as subject and
// the email as the only custom claim, expiring after the configured TTL.
func (s *jwtService) Issue(accountID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return signed, nil
}

// Verify checks signature validity and expiry and returns the claims.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// AccessTokenTTL returns the configured token lifetime.
func (s *jwtService) AccessTokenTTL() time.Duration {
	return s.ttl
}
