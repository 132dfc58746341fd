package auth

import (
	"errors"
	"os"

	"facegate.io/infrastructure/logger"
	"github.com/golang-jwt/jwt"
)

// GenerateSessionToken mints the short-lived token handed out after a
// successful face verification.
func GenerateSessionToken(claimsData SessionClaims) (*string, error) {
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":       os.Getenv("JWT_ISSUER"),
		"sessionID": claimsData.SessionID,
		"userID":    claimsData.UserID,
		"deviceID":  claimsData.DeviceID,
		"iat":       claimsData.IssuedAt,
		"exp":       claimsData.ExpiresAt,
	}).SignedString([]byte(os.Getenv("JWT_SIGNING_KEY")))
	if err != nil {
		return nil, err
	}
	return &tokenString, nil
}

func DecodeSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SIGNING_KEY")), nil
	})
	if err != nil {
		if err == jwt.ErrSignatureInvalid {
			return nil, errors.New("invalid token signature used")
		}
		logger.Error("error decoding session jwt", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	if !token.Valid {
		err := errors.New("invalid token used")
		logger.Error(err.Error())
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("malformed token claims")
	}
	sessionID, _ := claims["sessionID"].(string)
	userID, _ := claims["userID"].(string)
	if sessionID == "" || userID == "" {
		return nil, errors.New("malformed token claims")
	}
	parsed := SessionClaims{
		SessionID: sessionID,
		UserID:    userID,
	}
	if deviceID, ok := claims["deviceID"].(string); ok && deviceID != "" {
		parsed.DeviceID = &deviceID
	}
	if iat, ok := claims["iat"].(float64); ok {
		parsed.IssuedAt = int64(iat)
	}
	if exp, ok := claims["exp"].(float64); ok {
		parsed.ExpiresAt = int64(exp)
	}
	return &parsed, nil
}
