package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token validation failures, in the order the checks run: a token that
// cannot be parsed at all, one whose signature does not verify, and one
// whose expiry has passed.
var (
	ErrTokenMalformed        = errors.New("malformed token")
	ErrTokenSignatureInvalid = errors.New("invalid token signature")
	ErrTokenExpired          = errors.New("token has expired")
)

const (
	// CustomerTokenTTL and MechanicTokenTTL are deliberately asymmetric:
	// mechanics keep a session across a work shift, customers do not.
	CustomerTokenTTL = 1 * time.Hour
	MechanicTokenTTL = 3 * time.Hour

	// Customer tokens carry no role claim; the empty string is the
	// customer role everywhere a role is compared.
	RoleCustomer = ""
	RoleMechanic = "mechanic"
)

// JWTSecret signs every token. Rotating it invalidates all outstanding
// tokens at once; there is no other revocation mechanism.
var JWTSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Development fallback only.
		secret = "mechanic-shop-dev-secret"
	}
	JWTSecret = []byte(secret)
}

type CustomClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// GenerateCustomerToken mints a 1-hour token carrying only the subject id.
func GenerateCustomerToken(customerID uint) (string, error) {
	return generateToken(customerID, "", CustomerTokenTTL)
}

// GenerateMechanicToken mints a 3-hour token that always carries the
// mechanic role claim.
func GenerateMechanicToken(mechanicID uint) (string, error) {
	return generateToken(mechanicID, RoleMechanic, MechanicTokenTTL)
}

func generateToken(subjectID uint, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(subjectID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "mechanic-shop",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

// ParseToken verifies the signature and expiry and returns the claims.
// Validation is pure: no store access, no revocation list. The subject may
// reference a principal that no longer exists, callers must fail closed.
func ParseToken(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignatureInvalid
		}
		return JWTSecret, nil
	})

	switch {
	case err == nil && token.Valid:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrTokenSignatureInvalid
	default:
		return nil, ErrTokenMalformed
	}
}

// SubjectID converts the string subject claim back to a record id.
func (c *CustomClaims) SubjectID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrTokenMalformed
	}
	return uint(id), nil
}
