package security

import (
	"fmt"
	"time"
	"venuebook/db"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWT service
type JWTService struct {
	secretKey       []byte
	tokenExpiration time.Duration
}

const Issuer = "venuebook"

// Custom claim definition
type CustomClaims struct {
	ID                   uuid.UUID `json:"id"` // Account ID
	Role                 db.Role   `json:"role"`
	jwt.RegisteredClaims           // Embed the JWT Registered claims
}

// Constructor for JWT service
func NewJWTService(secretKey []byte, tokenExpiration time.Duration) *JWTService {
	return &JWTService{
		secretKey:       secretKey,
		tokenExpiration: tokenExpiration,
	}
}

// Create token
func (service *JWTService) CreateToken(id uuid.UUID, role db.Role) (string, error) {
	// Create custom JWT claim
	claims := CustomClaims{
		ID:   id,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,                                                      // Who issue this token
			Subject:   id.String(),                                                 // Whom the token is about
			IssuedAt:  jwt.NewNumericDate(time.Now()),                              // When the token is created
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(service.tokenExpiration)), // When the token is expired
		},
	}

	// Generate token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Sign token
	tokenStr, err := token.SignedString(service.secretKey)
	if err != nil {
		return "", err
	}

	return tokenStr, nil
}

// Verify token
func (service *JWTService) VerifyToken(signedToken string) (*CustomClaims, error) {
	// Use custom parser with leeway of 30 secs
	parser := jwt.NewParser(jwt.WithLeeway(30 * time.Second))

	// Parse token
	parsedToken, err := parser.ParseWithClaims(signedToken, &CustomClaims{}, func(token *jwt.Token) (any, error) {
		// Check for signing method to avoid [alg: none] trick
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return service.secretKey, nil
	})

	// Check if token parsing success
	if err != nil {
		return nil, err
	}

	// Extract claims from token
	claims, ok := parsedToken.Claims.(*CustomClaims)
	if !(ok && parsedToken.Valid) {
		return nil, jwt.ErrTokenInvalidClaims
	}

	// Check if this is the correct issuer
	if claims.Issuer != Issuer {
		return nil, fmt.Errorf("invalid issuer: %s", claims.Issuer)
	}

	// Check if role is of those defined in the system
	if claims.Role != db.RoleAdmin && claims.Role != db.RoleOwner && claims.Role != db.RoleUser {
		return nil, fmt.Errorf("invalid user role: %s", claims.Role)
	}

	return claims, nil
}
