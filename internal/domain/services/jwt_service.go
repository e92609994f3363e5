package services

import (
	"errors"
	"fmt"
	"time"

	"census-otp-service/internal/domain/models"
	"census-otp-service/internal/infrastructure/config"

	"github.com/golang-jwt/jwt/v4"
)

// RoleAccount is the only role issued today.
const RoleAccount = "account"

// InterfaceJWTService defines login token handling
type InterfaceJWTService interface {
	GenerateToken(account *models.Account) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	ExtractClaims(tokenString string) (*JWTClaims, error)
}

// JWTService signs and verifies HS256 tokens
type JWTService struct {
	secretKey string
	issuer    string
	ttl       time.Duration
}

// JWTClaims are the claims carried by a login token
type JWTClaims struct {
	UserID       uint   `json:"user_id"`
	MobileNumber string `json:"mobile_number"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTService creates a JWT service from config
func NewJWTService(cfg *config.Config) *JWTService {
	ttl := cfg.JWTTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    "census-otp-service",
		ttl:       ttl,
	}
}

// GenerateToken issues a token for account
func (s *JWTService) GenerateToken(account *models.Account) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID:       account.ID,
		MobileNumber: account.MobileNumber,
		Role:         RoleAccount,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", account.ID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ValidateToken parses tokenString and checks signature and time claims
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
}

// ExtractClaims validates tokenString and returns its claims
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Issuer != s.issuer {
		return nil, fmt.Errorf("unexpected issuer %q", claims.Issuer)
	}
	return claims, nil
}
