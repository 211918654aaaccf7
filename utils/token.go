package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var jwtSecret string

// InitJWT stores the signing secret for token helpers
func InitJWT(secret string) {
	jwtSecret = secret
}

// GetJWTSecret returns the configured signing secret
func GetJWTSecret() string {
	return jwtSecret
}

// GenerateToken issues a signed JWT carrying the user id and role
func GenerateToken(userID primitive.ObjectID, role string, expiryMinutes int) (string, error) {
	if jwtSecret == "" {
		return "", errors.New("jwt secret not configured")
	}

	claims := jwt.MapClaims{
		"sub":  userID.Hex(),
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Duration(expiryMinutes) * time.Minute).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// ValidateToken parses and verifies a JWT, returning the user id and role
func ValidateToken(tokenString string) (primitive.ObjectID, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, "", errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, "", errors.New("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return primitive.NilObjectID, "", errors.New("invalid token: missing subject")
	}
	userID, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return primitive.NilObjectID, "", errors.New("invalid token: malformed user id")
	}

	role, _ := claims["role"].(string)
	return userID, role, nil
}
