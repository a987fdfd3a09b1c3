package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kittiphat/volunteerhub/config"
)

// Principal kinds carried in token claims.
const (
	PrincipalAdmin    = "admin"
	PrincipalCustomer = "customer"
)

// Claims defines JWT claims for both principal kinds. Exactly one of AdminID
// or CustomerID is set depending on Principal.
type Claims struct {
	Principal  string `json:"principal"`
	AdminID    uint   `json:"admin_id,omitempty"`
	Role       string `json:"role,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAdminToken issues a JWT for a staff account.
func GenerateAdminToken(adminID uint, role string, duration time.Duration) (string, error) {
	return sign(Claims{
		Principal: PrincipalAdmin,
		AdminID:   adminID,
		Role:      role,
	}, duration)
}

// GenerateCustomerToken issues a JWT for a customer identity.
func GenerateCustomerToken(customerID string, duration time.Duration) (string, error) {
	return sign(Claims{
		Principal:  PrincipalCustomer,
		CustomerID: customerID,
	}, duration)
}

func sign(claims Claims, duration time.Duration) (string, error) {
	cfg := config.Get()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseToken validates a JWT and returns its claims.
func ParseToken(tokenStr string) (*Claims, error) {
	cfg := config.Get()
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
