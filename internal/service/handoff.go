package service

import (
	"errors"
	"fmt"
	"time"

	"eduquiz-web/internal/domain"
	"eduquiz-web/internal/dto"
	"eduquiz-web/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const handoffIssuer = "eduquiz-web"

// HandoffCodec signs an in-progress Attempt so it can round-trip through a
// hidden form field. Tokens are bound to the session that created them.
type HandoffCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHandoffCodec creates a codec signing with secret (HS256).
func NewHandoffCodec(secret string, ttl time.Duration) *HandoffCodec {
	return &HandoffCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Encode signs a for sid.
func (c *HandoffCodec) Encode(sid string, a *domain.Attempt) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}

	now := c.now()
	claims := dto.HandoffClaims{
		Attempt: *a,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    handoffIssuer,
			Subject:   sid,
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", domain.NewInternalError("failed to sign navigation state", err)
	}
	return signed, nil
}

// Decode verifies tokenString for sid and returns the attempt it carries.
// Every failure is a navigation-state error.
func (c *HandoffCodec) Decode(sid, tokenString string) (*domain.Attempt, error) {
	if tokenString == "" {
		return nil, domain.NewNavigationStateError("missing navigation state", nil)
	}

	var claims dto.HandoffClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(handoffIssuer),
		jwt.WithSubject(sid),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Debug("Navigation state expired", logger.SessionRef(sid))
		} else {
			logger.Get().Warn("Navigation state rejected", logger.SessionRef(sid), zap.Error(err))
		}
		return nil, domain.NewNavigationStateError("invalid navigation state", err)
	}

	attempt := claims.Attempt
	if err := attempt.Validate(); err != nil {
		return nil, err
	}
	return &attempt, nil
}
