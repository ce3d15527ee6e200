package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/yourusername/memora-api/internal/domain/repository"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
)

// JWTCustomClaims содержит пользовательские поля для токена
type JWTCustomClaims struct {
	AccountID uint   `json:"account_id"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

// JWTService предоставляет методы для работы с JWT.
// Отозванные токены (logout, смена пароля) хранятся в кеше по jti
// с TTL до истечения самого токена.
type JWTService struct {
	secret     []byte
	expiration time.Duration
	cacheRepo  repository.CacheRepository
}

// NewJWTService создает новый сервис JWT и возвращает ошибку при проблемах
func NewJWTService(secret string, expirationHrs int, cacheRepo repository.CacheRepository) (*JWTService, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}
	if cacheRepo == nil {
		return nil, fmt.Errorf("CacheRepository is required for JWTService")
	}
	if expirationHrs <= 0 {
		expirationHrs = 24
	}
	return &JWTService{
		secret:     []byte(secret),
		expiration: time.Duration(expirationHrs) * time.Hour,
		cacheRepo:  cacheRepo,
	}, nil
}

// GenerateToken создает access-токен для учетной записи
func (s *JWTService) GenerateToken(accountID uint, username string) (string, error) {
	now := time.Now()
	claims := JWTCustomClaims{
		AccountID: accountID,
		Username:  username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken проверяет подпись и срок действия токена и возвращает его claims
func (s *JWTService) ParseToken(tokenString string) (*JWTCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrUnauthorized
	}

	// Проверяем, не был ли токен отозван
	revoked, err := s.cacheRepo.Exists(revocationKey(claims.ID))
	if err != nil {
		// Кеш недоступен — пропускаем проверку отзыва (fail-open), но логируем
		log.Printf("[JWTService] Ошибка проверки отзыва токена jti=%s: %v", claims.ID, err)
	} else if revoked {
		return nil, apperrors.ErrUnauthorized
	}

	return claims, nil
}

// RevokeToken отзывает токен до истечения его срока действия
func (s *JWTService) RevokeToken(claims *JWTCustomClaims) error {
	if claims == nil || claims.ID == "" {
		return errors.New("claims with jti are required to revoke a token")
	}

	ttl := s.expiration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		// Токен уже истек, отзыв не требуется
		return nil
	}
	return s.cacheRepo.Set(revocationKey(claims.ID), "revoked", ttl)
}

func revocationKey(jti string) string {
	return "auth:revoked:" + jti
}
