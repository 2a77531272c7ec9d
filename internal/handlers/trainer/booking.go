package tr

import (
	"log"
	"net/http"
	"time"

	"seven_gym_back_end/internal/database"
	"seven_gym_back_end/internal/models"
	"seven_gym_back_end/internal/planning"
	"seven_gym_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// BookSession réserve une séance avec un coach sur un créneau du planning
func BookSession(c *gin.Context) {
	email := c.GetString("email")

	var req struct {
		TrainerID string `json:"trainer_id" binding:"required"`
		DayName   string `json:"day_name" binding:"required"`
		Hour      string `json:"hour" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	if _, err := planning.WeekdayIndex(req.DayName); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trainerID, err := gocql.ParseUUID(req.TrainerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant coach invalide"})
		return
	}

	session, err := database.GetMembersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var trainerName string
	if err := session.Query("SELECT name FROM trainers WHERE trainer_id = ?", trainerID).Scan(&trainerName); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coach introuvable"})
		return
	}

	// Pas de double réservation sur le même créneau
	var existingID gocql.UUID
	err = session.Query(`SELECT booking_id FROM trainer_bookings
		WHERE trainer_id = ? AND day_name = ? AND hour = ? ALLOW FILTERING`,
		trainerID, req.DayName, req.Hour).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Ce créneau est déjà réservé"})
		return
	}

	booking := models.TrainerBooking{
		ID:        gocql.TimeUUID(),
		TrainerID: trainerID,
		Email:     email,
		DayName:   req.DayName,
		Hour:      req.Hour,
		Status:    "pending",
		CreatedAt: time.Now(),
	}

	err = session.Query(`INSERT INTO trainer_bookings (booking_id, trainer_id, email, day_name, hour, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		booking.ID, booking.TrainerID, booking.Email, booking.DayName, booking.Hour,
		booking.Status, booking.CreatedAt).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création réservation"})
		return
	}

	utils.LogAction(c, "book_session", "trainer_booking", booking.ID.String(), "", trainerName)
	log.Printf("✅ Séance réservée: %s avec %s (%s %s)", email, trainerName, req.DayName, req.Hour)

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// GetMyBookings liste les réservations du membre connecté
func GetMyBookings(c *gin.Context) {
	email := c.GetString("email")

	session, err := database.GetMembersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT booking_id, trainer_id, day_name, hour, status, created_at
		FROM trainer_bookings WHERE email = ? ALLOW FILTERING`, email).Iter()

	var bookings []models.TrainerBooking
	var b models.TrainerBooking

	for iter.Scan(&b.ID, &b.TrainerID, &b.DayName, &b.Hour, &b.Status, &b.CreatedAt) {
		b.Email = email
		bookings = append(bookings, b)
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture réservations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// CancelBooking annule une réservation du membre connecté
func CancelBooking(c *gin.Context) {
	email := c.GetString("email")

	bookingID, err := gocql.ParseUUID(c.Param("bookingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant réservation invalide"})
		return
	}

	session, err := database.GetMembersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var ownerEmail string
	if err := session.Query("SELECT email FROM trainer_bookings WHERE booking_id = ?", bookingID).Scan(&ownerEmail); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Réservation introuvable"})
		return
	}

	if ownerEmail != email && c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette réservation ne vous appartient pas"})
		return
	}

	err = session.Query("UPDATE trainer_bookings SET status = ? WHERE booking_id = ?", "cancelled", bookingID).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur annulation réservation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Réservation annulée"})
}
