package services

import (
	"time"

	"docman/config"
	"docman/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Claims is the signed payload of an access token.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	RoleID   uint   `json:"role_id"`
	jwt.RegisteredClaims
}

func (c *Claims) Caller() models.Caller {
	return models.Caller{UserID: c.UserID, RoleID: c.RoleID, Username: c.Username}
}

type TokenService interface {
	GenerateToken(user *models.User) (string, error)
	// ParseToken verifies signature and expiry.
	ParseToken(tokenString string) (*Claims, error)
	// ExpiresAt verifies the signature only and returns the token's expiry.
	ExpiresAt(tokenString string) (time.Time, error)
}

type tokenService struct {
	cfg config.JWTConfig
	now func() time.Time
}

func NewTokenService(cfg config.JWTConfig) TokenService {
	return &tokenService{cfg: cfg, now: time.Now}
}

func (s *tokenService) GenerateToken(user *models.User) (string, error) {
	now := s.now()

	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RoleID:   user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.Secret)
}

func (s *tokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrSignatureInvalid
	}
	return s.cfg.Secret, nil
}

func (s *tokenService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc)
	if err != nil {
		return nil, models.TokenInvalidError(err.Error())
	}
	if !token.Valid {
		return nil, models.TokenInvalidError("token is not valid")
	}
	return claims, nil
}

func (s *tokenService) ExpiresAt(tokenString string) (time.Time, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	if _, err := parser.ParseWithClaims(tokenString, claims, s.keyFunc); err != nil {
		return time.Time{}, models.TokenInvalidError(err.Error())
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, models.TokenInvalidError("token has no expiry")
	}
	return claims.ExpiresAt.Time, nil
}
