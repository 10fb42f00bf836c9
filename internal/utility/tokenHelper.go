package utility

import (
	"errors"
	"time"

	jwt "github.com/dgrijalva/jwt-go"

	"uniprep/internal/models"
)

type SignedDetails struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
	jwt.StandardClaims
}

// GenerateToken signs the identity of user with HS256 and expires it after ttl.
func GenerateToken(user models.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &SignedDetails{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Admin: user.Admin,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ValidateToken(signedToken string, secret string) (*SignedDetails, error) {
	token, err := jwt.ParseWithClaims(signedToken, &SignedDetails{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, errors.New("the token is invalid")
	}
	return claims, nil
}
