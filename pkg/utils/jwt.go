package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateAdminToken issues the session token returned by the admin login.
func GenerateAdminToken(email string, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"role":  "admin",
		"exp":   time.Now().Add(time.Hour * 24 * 7).Unix(), // 7 days
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// GenerateApprovalToken issues the token embedded in the approval link the
// business receives by email. It authorizes exactly one action: approving
// the booking it names.
func GenerateApprovalToken(eventID, customerEmail string, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"eventId": eventID,
		"email":   customerEmail,
		"scope":   "approve",
		"exp":     time.Now().Add(time.Hour * 24 * 14).Unix(), // 14 days
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and verifies an HS256 token.
func ValidateToken(tokenString string, secret []byte) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
}

// ParseApprovalToken validates an approval-link token and extracts the
// event id and customer email it was issued for.
func ParseApprovalToken(tokenString string, secret []byte) (eventID, customerEmail string, err error) {
	token, err := ValidateToken(tokenString, secret)
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("invalid approval token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid token claims")
	}
	if scope, _ := claims["scope"].(string); scope != "approve" {
		return "", "", fmt.Errorf("token not valid for approval")
	}

	eventID, _ = claims["eventId"].(string)
	customerEmail, _ = claims["email"].(string)
	if eventID == "" {
		return "", "", fmt.Errorf("approval token missing event id")
	}
	return eventID, customerEmail, nil
}
