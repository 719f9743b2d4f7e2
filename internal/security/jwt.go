package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ripu1821/mobile-auth-service/internal/domain"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenIssuanceError = errors.New("token issuance failed")
)

type Claims struct {
	UserID   uint   `json:"uid"`
	DeviceID string `json:"device"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	issuer        string
	audience      string
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(issuer, audience, accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		issuer:        issuer,
		audience:      audience,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (m *TokenManager) AccessTTL() time.Duration { return m.accessTTL }

// IssueTokenPair signs an access and a refresh token for (user, device).
// The two signatures are independent and run concurrently; the pair is only
// issued if both succeed.
func (m *TokenManager) IssueTokenPair(ctx context.Context, userID uint, deviceID string) (domain.TokenPair, error) {
	var pair domain.TokenPair
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		token, err := m.sign(userID, deviceID, "access", m.accessSecret, m.accessTTL)
		if err != nil {
			return err
		}
		pair.AccessToken = token
		return nil
	})
	g.Go(func() error {
		token, err := m.sign(userID, deviceID, "refresh", m.refreshSecret, m.refreshTTL)
		if err != nil {
			return err
		}
		pair.RefreshToken = token
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.TokenPair{}, fmt.Errorf("%w: %v", ErrTokenIssuanceError, err)
	}
	return pair, nil
}

func (m *TokenManager) sign(userID uint, deviceID, tokenType string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:   userID,
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			Subject:   tokenType,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseAccessToken verifies signature and expiry against the access secret
// and returns the claims. Revocation is checked separately by the guard.
func (m *TokenManager) ParseAccessToken(raw string) (*Claims, error) {
	return m.parse(raw, "access", m.accessSecret)
}

func (m *TokenManager) ParseRefreshToken(raw string) (*Claims, error) {
	return m.parse(raw, "refresh", m.refreshSecret)
}

func (m *TokenManager) parse(raw, tokenType string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject != tokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
