package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shashiranjanraj/souq/config"
	"golang.org/x/crypto/bcrypt"
)

// Token types carried in the typ claim.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

const refreshTTL = 7 * 24 * time.Hour

// ErrWrongTokenType is returned when a refresh token is presented as an
// access token or vice versa.
var ErrWrongTokenType = errors.New("auth: wrong token type")

// Claims holds the typed JWT payload.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

// Pair is what login and refresh hand back to the client.
type Pair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

func sign(userID uint, role, typ string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := Claims{
		UserID: userID,
		Role:   role,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
	return s, exp, err
}

// GenerateToken creates a signed access token for the given user.
func GenerateToken(userID uint, role string) (string, error) {
	s, _, err := sign(userID, role, TypeAccess, config.JWTTTL())
	return s, err
}

// GenerateRefreshToken creates a longer-lived token used to refresh access.
func GenerateRefreshToken(userID uint, role string) (string, error) {
	s, _, err := sign(userID, role, TypeRefresh, refreshTTL)
	return s, err
}

// IssuePair signs a fresh access + refresh token pair.
func IssuePair(userID uint, role string) (Pair, error) {
	access, exp, err := sign(userID, role, TypeAccess, config.JWTTTL())
	if err != nil {
		return Pair{}, err
	}
	refresh, err := GenerateRefreshToken(userID, role)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Token: access, RefreshToken: refresh, ExpiresAt: exp.Unix()}, nil
}

// ValidateToken parses and validates an access token.
func ValidateToken(t string) (*Claims, error) {
	return validate(t, TypeAccess)
}

// ValidateRefreshToken parses and validates a refresh token.
func ValidateRefreshToken(t string) (*Claims, error) {
	return validate(t, TypeRefresh)
}

func validate(t, typ string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Type != typ {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
