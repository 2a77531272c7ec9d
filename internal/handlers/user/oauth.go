package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"seven_gym_back_end/internal/database"
	"seven_gym_back_end/internal/models"
	"seven_gym_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/markbates/goth/gothic"
)

type ctxKey string

const ProviderKey ctxKey = "provider"

// BeginAuth démarre le flux OAuth (Google / Facebook)
func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// CallbackAuth termine le flux OAuth : upsert du membre puis JWT
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetMembersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Membre existant ? Sinon on le crée au tier de base
	var memberID gocql.UUID
	err = session.Query("SELECT member_id FROM members_by_email WHERE email = ?", gothUser.Email).Scan(&memberID)
	if err != nil {
		memberID = gocql.TimeUUID()
		now := time.Now()

		err = session.Query(`INSERT INTO members (member_id, email, password, name, role, provider, tier, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			memberID, gothUser.Email, "", gothUser.Name, "member", gothUser.Provider, models.BaselineTier, now, now).Exec()
		if err != nil {
			log.Printf("❌ Erreur création membre OAuth: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création membre"})
			return
		}

		session.Query("INSERT INTO members_by_email (email, member_id) VALUES (?, ?)", gothUser.Email, memberID).Exec()
		log.Printf("✅ Membre OAuth créé: %s via %s", gothUser.Email, gothUser.Provider)
	}

	var name, role, tier string
	session.Query("SELECT name, role, tier FROM members WHERE member_id = ?", memberID).Scan(&name, &role, &tier)
	if role == "" {
		role = "member"
	}
	if tier == "" {
		tier = models.BaselineTier
	}

	member := models.Member{
		ID:       memberID.String(),
		Name:     name,
		Email:    gothUser.Email,
		Role:     role,
		Tier:     tier,
		Provider: gothUser.Provider,
	}

	token, err := utils.GenerateJWT(member)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"provider": member.Provider,
		"email":    member.Email,
		"memberId": member.ID,
		"tier":     member.Tier,
	})
}
