package pl

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"seven_gym_back_end/internal/database"
	"seven_gym_back_end/internal/models"
	"seven_gym_back_end/internal/planning"

	"github.com/gin-gonic/gin"
)

// horaires d'ouverture par défaut de la salle
const (
	defaultStartHour = 8
	defaultEndHour   = 20
)

func loadDay(email, dayName string) (models.DaySchedule, error) {
	session, err := database.GetPlanningSession()
	if err != nil {
		return models.DaySchedule{}, err
	}

	var day models.DaySchedule
	var slotsJSON string

	err = session.Query(`SELECT day_id, date, slots FROM week_schedules WHERE email = ? AND day_name = ?`,
		email, dayName).Scan(&day.ID, &day.Date, &slotsJSON)
	if err != nil {
		return models.DaySchedule{}, err
	}

	day.DayName = dayName
	if err := json.Unmarshal([]byte(slotsJSON), &day.Schedule); err != nil {
		day.Schedule = map[string]models.TimeSlot{}
	}
	return day, nil
}

func saveDay(email string, day models.DaySchedule) error {
	session, err := database.GetPlanningSession()
	if err != nil {
		return err
	}

	slotsJSON, err := json.Marshal(day.Schedule)
	if err != nil {
		return err
	}

	return session.Query(`INSERT INTO week_schedules (email, day_name, day_id, date, slots, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		email, day.DayName, day.ID, day.Date, string(slotsJSON), time.Now()).Exec()
}

// publishScheduleUpdate notifie les WebSockets ouverts de ce membre
func publishScheduleUpdate(email string) {
	database.Redis.Publish(context.Background(), "schedule:"+email, "updated")
}

// GetMySchedule renvoie le planning hebdomadaire complet du membre,
// avec l'état (Future/Today/Past) de chaque journée
func GetMySchedule(c *gin.Context) {
	email := c.GetString("email")

	session, err := database.GetPlanningSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT day_name, day_id, date, slots FROM week_schedules WHERE email = ?`, email).Iter()

	week := make(models.WeeklySchedule)
	states := make(map[string]string)
	now := time.Now()

	var dayName, dayID, date, slotsJSON string
	for iter.Scan(&dayName, &dayID, &date, &slotsJSON) {
		day := models.DaySchedule{ID: dayID, DayName: dayName, Date: date}
		if err := json.Unmarshal([]byte(slotsJSON), &day.Schedule); err != nil {
			day.Schedule = map[string]models.TimeSlot{}
		}
		week[dayName] = day
		states[dayName] = planning.StateOfDay(date, now)
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture planning"})
		return
	}

	if len(week) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucun planning — créez-en un d'abord"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"schedule": week,
		"states":   states,
	})
}

// CreateMySchedule génère le planning des 7 jours de la semaine courante.
// Écrase le planning existant : l'opération est idempotente côté front.
func CreateMySchedule(c *gin.Context) {
	email := c.GetString("email")

	var req struct {
		StartHour *int `json:"start_hour"`
		EndHour   *int `json:"end_hour"`
	}
	// Body optionnel : sans lui, horaires d'ouverture par défaut
	c.ShouldBindJSON(&req)

	startHour, endHour := defaultStartHour, defaultEndHour
	if req.StartHour != nil {
		startHour = *req.StartHour
	}
	if req.EndHour != nil {
		endHour = *req.EndHour
	}

	if startHour < 0 || endHour > 23 || startHour > endHour {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plage horaire invalide (0 ≤ début ≤ fin ≤ 23)"})
		return
	}

	week := planning.GenerateWeek(startHour, endHour, time.Now())

	for _, day := range week {
		if err := saveDay(email, day); err != nil {
			log.Printf("❌ Erreur sauvegarde planning %s pour %s: %v", day.DayName, email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde planning"})
			return
		}
	}

	publishScheduleUpdate(email)
	log.Printf("✅ Planning hebdomadaire créé pour %s (%02d:00 → %02d:00)", email, startHour, endHour)

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Planning créé",
		"schedule": week,
	})
}

// RegenerateDay reconstruit une journée expirée pour sa prochaine occurrence.
// Seule une journée passée est régénérable ; la nouvelle journée remplace
// l'ancienne en bloc.
func RegenerateDay(c *gin.Context) {
	email := c.GetString("email")
	dayName := c.Param("dayName")

	day, err := loadDay(email, dayName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Journée introuvable dans le planning"})
		return
	}

	now := time.Now()
	if state := planning.StateOfDay(day.Date, now); state != planning.DayPast {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Seule une journée passée peut être régénérée",
			"state": state,
		})
		return
	}

	hours := make([]string, 0, len(day.Schedule))
	for hour := range day.Schedule {
		hours = append(hours, hour)
	}

	fresh, err := planning.RegenerateDay(dayName, hours, now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := saveDay(email, fresh); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde planning"})
		return
	}

	publishScheduleUpdate(email)
	log.Printf("🔁 Journée %s régénérée pour %s → %s", dayName, email, fresh.Date)

	c.JSON(http.StatusOK, gin.H{
		"message": "Journée régénérée",
		"day":     fresh,
	})
}

// UpdateSlot modifie le contenu d'un créneau. Les journées passées sont en
// lecture seule.
func UpdateSlot(c *gin.Context) {
	email := c.GetString("email")
	dayName := c.Param("dayName")
	hour := c.Param("hour")

	var req struct {
		Title    string `json:"title"`
		Notes    string `json:"notes"`
		Location string `json:"location"`
		Status   string `json:"status"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	day, err := loadDay(email, dayName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Journée introuvable dans le planning"})
		return
	}

	if planning.StateOfDay(day.Date, time.Now()) == planning.DayPast {
		c.JSON(http.StatusForbidden, gin.H{"error": "Journée passée : lecture seule, régénérez-la d'abord"})
		return
	}

	slot, ok := day.Schedule[hour]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Créneau inexistant: " + hour})
		return
	}

	slot.Title = req.Title
	slot.Notes = req.Notes
	slot.Location = req.Location
	slot.Status = req.Status
	day.Schedule[hour] = slot

	if err := saveDay(email, day); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde planning"})
		return
	}

	publishScheduleUpdate(email)

	c.JSON(http.StatusOK, gin.H{
		"message": "Créneau mis à jour",
		"slot":    slot,
	})
}

// ClearSlot vide un créneau sans toucher à son identifiant
func ClearSlot(c *gin.Context) {
	email := c.GetString("email")
	dayName := c.Param("dayName")
	hour := c.Param("hour")

	day, err := loadDay(email, dayName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Journée introuvable dans le planning"})
		return
	}

	if planning.StateOfDay(day.Date, time.Now()) == planning.DayPast {
		c.JSON(http.StatusForbidden, gin.H{"error": "Journée passée : lecture seule, régénérez-la d'abord"})
		return
	}

	slot, ok := day.Schedule[hour]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Créneau inexistant: " + hour})
		return
	}

	day.Schedule[hour] = models.TimeSlot{ID: slot.ID}

	if err := saveDay(email, day); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde planning"})
		return
	}

	publishScheduleUpdate(email)

	c.JSON(http.StatusOK, gin.H{"message": "Créneau vidé", "slot_id": slot.ID})
}
