package tr

import (
	"log"
	"net/http"
	"os"
	"time"

	"seven_gym_back_end/internal/database"
	"seven_gym_back_end/internal/models"
	"seven_gym_back_end/internal/services"
	"seven_gym_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// GetTrainers liste tous les coachs
func GetTrainers(c *gin.Context) {
	session, err := database.GetMembersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT trainer_id, name, specialty, bio, photo_url, tags, per_session, created_at
		FROM trainers`).Iter()

	var trainers []models.Trainer
	var t models.Trainer

	for iter.Scan(&t.ID, &t.Name, &t.Specialty, &t.Bio, &t.PhotoURL, &t.Tags, &t.PerSession, &t.CreatedAt) {
		trainers = append(trainers, t)
		t = models.Trainer{}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture coachs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trainers": trainers,
		"count":    len(trainers),
	})
}

// SearchTrainersHandler recherche plein texte via Elasticsearch
func SearchTrainersHandler(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q requis"})
		return
	}

	results, err := services.SearchTrainers(query)
	if err != nil {
		log.Println("❌ Erreur recherche coachs:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"count":   len(results),
	})
}

// CreateTrainer crée un coach (admin) et l'indexe dans Elasticsearch
func CreateTrainer(c *gin.Context) {
	var req struct {
		Name       string   `json:"name" binding:"required"`
		Specialty  string   `json:"specialty" binding:"required"`
		Bio        string   `json:"bio"`
		Tags       []string `json:"tags"`
		PerSession float64  `json:"per_session" binding:"required,gt=0"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	session, err := database.GetMembersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	trainer := models.Trainer{
		ID:         gocql.TimeUUID(),
		Name:       req.Name,
		Specialty:  req.Specialty,
		Bio:        req.Bio,
		Tags:       req.Tags,
		PerSession: req.PerSession,
		CreatedAt:  time.Now(),
	}

	err = session.Query(`INSERT INTO trainers (trainer_id, name, specialty, bio, photo_url, tags, per_session, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		trainer.ID, trainer.Name, trainer.Specialty, trainer.Bio, "", trainer.Tags,
		trainer.PerSession, trainer.CreatedAt).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création coach"})
		return
	}

	go services.IndexTrainer(trainer)
	utils.LogAction(c, "create_trainer", "trainer", trainer.ID.String(), "", trainer.Name)
	log.Printf("✅ Coach créé: %s (%s)", trainer.Name, trainer.Specialty)

	c.JSON(http.StatusCreated, gin.H{"trainer": trainer})
}

// UpdateTrainer met à jour un coach (admin) puis ré-indexe
func UpdateTrainer(c *gin.Context) {
	trainerID, err := gocql.ParseUUID(c.Param("trainerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant coach invalide"})
		return
	}

	var req struct {
		Name       string   `json:"name" binding:"required"`
		Specialty  string   `json:"specialty" binding:"required"`
		Bio        string   `json:"bio"`
		Tags       []string `json:"tags"`
		PerSession float64  `json:"per_session" binding:"required,gt=0"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	session, err := database.GetMembersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var photoURL string
	if err := session.Query("SELECT photo_url FROM trainers WHERE trainer_id = ?", trainerID).Scan(&photoURL); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coach introuvable"})
		return
	}

	now := time.Now()
	err = session.Query(`UPDATE trainers SET name = ?, specialty = ?, bio = ?, tags = ?, per_session = ?, updated_at = ?
		WHERE trainer_id = ?`,
		req.Name, req.Specialty, req.Bio, req.Tags, req.PerSession, now, trainerID).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour coach"})
		return
	}

	trainer := models.Trainer{
		ID:         trainerID,
		Name:       req.Name,
		Specialty:  req.Specialty,
		Bio:        req.Bio,
		PhotoURL:   photoURL,
		Tags:       req.Tags,
		PerSession: req.PerSession,
		UpdatedAt:  &now,
	}
	go services.IndexTrainer(trainer)

	c.JSON(http.StatusOK, gin.H{"trainer": trainer})
}

// UploadTrainerPhoto stocke la photo d'un coach dans MinIO (admin)
func UploadTrainerPhoto(c *gin.Context) {
	trainerID, err := gocql.ParseUUID(c.Param("trainerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant coach invalide"})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier photo requis"})
		return
	}

	bucket := os.Getenv("MINIO_BUCKET")
	url, err := services.UploadFile(bucket, file)
	if err != nil {
		log.Println("❌ Erreur upload MinIO:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload photo"})
		return
	}

	session, err := database.GetMembersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	err = session.Query("UPDATE trainers SET photo_url = ?, updated_at = ? WHERE trainer_id = ?",
		url, time.Now(), trainerID).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour coach"})
		return
	}

	log.Printf("📤 Photo uploadée pour le coach %s", trainerID)
	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}

// DeleteTrainer supprime un coach (admin) et le retire de l'index
func DeleteTrainer(c *gin.Context) {
	trainerID, err := gocql.ParseUUID(c.Param("trainerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant coach invalide"})
		return
	}

	session, err := database.GetMembersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query("DELETE FROM trainers WHERE trainer_id = ?", trainerID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression coach"})
		return
	}

	go services.RemoveTrainerFromIndex(trainerID.String())
	utils.LogAction(c, "delete_trainer", "trainer", trainerID.String(), "", "")

	c.JSON(http.StatusOK, gin.H{"message": "Coach supprimé"})
}
