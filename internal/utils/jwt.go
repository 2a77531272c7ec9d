package utils

import (
	"os"
	"time"

	"seven_gym_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

func GenerateJWT(member models.Member) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}

	claims := jwt.MapClaims{
		"user_id": member.ID,
		"email":   member.Email,
		"role":    member.Role,
		"tier":    member.Tier,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
