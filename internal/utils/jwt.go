package utils

import (
	"errors"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// ParseAccountIDFromJWT extracts the numeric subject claim from tokenString
// without verifying the signature. The client never validates tokens — the
// backend does — it only reads the subject for log correlation.
func ParseAccountIDFromJWT(tokenString string) (int64, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}
