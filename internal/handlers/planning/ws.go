package pl

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"seven_gym_back_end/internal/database"
	"seven_gym_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// ScheduleWebSocket pousse le planning à jour dès qu'il change.
// Chaque modification (créneau, régénération, recréation) publie sur le canal
// Redis "schedule:<email>" ; toutes les connexions ouvertes de ce membre
// reçoivent alors le planning complet.
func ScheduleWebSocket(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(401, gin.H{"error": "Non authentifié"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, "schedule:"+email)
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation planning activée",
	})

	for {
		select {
		case msg := <-ch:
			if msg.Payload != "updated" {
				continue
			}

			week, err := fetchWeek(email)
			if err != nil {
				log.Printf("❌ Erreur lecture planning pour WebSocket: %v", err)
				continue
			}

			response := map[string]interface{}{
				"type":     "schedule_updated",
				"schedule": week,
			}

			if err := conn.WriteJSON(response); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func fetchWeek(email string) (models.WeeklySchedule, error) {
	session, err := database.GetPlanningSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT day_name, day_id, date, slots FROM week_schedules WHERE email = ?`, email).Iter()

	week := make(models.WeeklySchedule)
	var dayName, dayID, date, slotsJSON string
	for iter.Scan(&dayName, &dayID, &date, &slotsJSON) {
		day := models.DaySchedule{ID: dayID, DayName: dayName, Date: date}
		if err := json.Unmarshal([]byte(slotsJSON), &day.Schedule); err != nil {
			day.Schedule = map[string]models.TimeSlot{}
		}
		week[dayName] = day
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return week, nil
}
