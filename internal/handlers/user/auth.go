package user

import (
	"log"
	"net/http"
	"time"

	"seven_gym_back_end/internal/cache"
	"seven_gym_back_end/internal/database"
	"seven_gym_back_end/internal/middleware"
	"seven_gym_back_end/internal/models"
	"seven_gym_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// ================== AUTH LOCALE ==================

// CreateMember inscrit un nouveau membre (tier Bronze par défaut)
func CreateMember(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	session, err := database.GetMembersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// email déjà pris ?
	var existingID gocql.UUID
	if err := session.Query("SELECT member_id FROM members_by_email WHERE email = ?", input.Email).Scan(&existingID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création compte"})
		return
	}

	memberID := gocql.TimeUUID()
	now := time.Now()

	err = session.Query(`INSERT INTO members (member_id, email, password, name, role, provider, tier, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		memberID, input.Email, hashedPassword, input.Name, "member", "local", models.BaselineTier, now, now).Exec()
	if err != nil {
		log.Printf("❌ Erreur création membre: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création membre"})
		return
	}

	if err := session.Query("INSERT INTO members_by_email (email, member_id) VALUES (?, ?)", input.Email, memberID).Exec(); err != nil {
		log.Printf("⚠️ Erreur insertion members_by_email: %v", err)
	}

	member := models.Member{
		ID:       memberID.String(),
		Name:     input.Name,
		Email:    input.Email,
		Role:     "member",
		Tier:     models.BaselineTier,
		Provider: "local",
	}

	token, err := utils.GenerateJWT(member)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("✅ Nouveau membre inscrit: %s (%s)", input.Email, memberID)

	c.JSON(http.StatusCreated, gin.H{
		"token":    token,
		"memberId": member.ID,
		"email":    member.Email,
		"name":     member.Name,
		"role":     member.Role,
		"tier":     member.Tier,
	})
}

// Login authentifie un membre local et renvoie un JWT
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetMembersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var memberID gocql.UUID
	if err := session.Query("SELECT member_id FROM members_by_email WHERE email = ?", input.Email).Scan(&memberID); err != nil {
		middleware.RecordFailedLogin(input.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	var (
		email, password, name, role, provider, tier string
		tierStart, tierDuration, tierEnd            string
	)
	err = session.Query(`SELECT email, password, name, role, provider, tier, tier_start_date, tier_duration, tier_end_date
		FROM members WHERE member_id = ?`, memberID).Scan(
		&email, &password, &name, &role, &provider, &tier, &tierStart, &tierDuration, &tierEnd)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, password)
	if err != nil || !ok {
		middleware.RecordFailedLogin(input.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	middleware.ClearLoginAttempts(input.Email)

	member := models.Member{
		ID:            memberID.String(),
		Name:          name,
		Email:         email,
		Role:          role,
		Tier:          tier,
		Provider:      provider,
		TierStartDate: tierStart,
		TierDuration:  tierDuration,
		TierEndDate:   tierEnd,
	}

	token, err := utils.GenerateJWT(member)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("✅ Connexion: %s", email)

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"memberId": member.ID,
		"email":    member.Email,
		"name":     member.Name,
		"role":     member.Role,
		"tier":     member.Tier,
	})
}

// Me renvoie le profil du membre connecté (cache Redis puis ScyllaDB)
func Me(c *gin.Context) {
	memberID := c.GetString("user_id")

	member, err := cache.GetMemberFromCache(memberID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Membre introuvable"})
		return
	}

	c.JSON(http.StatusOK, member)
}
