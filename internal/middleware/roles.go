package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin vérifie que l'utilisateur a le rôle "admin"
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}
	c.Next()
}

// RequireTrainer vérifie que l'utilisateur est coach ou admin
func RequireTrainer(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || (role != "trainer" && role != "admin") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux coachs"})
		c.Abort()
		return
	}
	c.Next()
}
