package utils

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"seven_gym_back_end/internal/database"
	"seven_gym_back_end/internal/models"
)

// LogAction enregistre une mutation sensible (remboursement, changement de
// tier, modification du catalogue) dans les logs d'audit
func LogAction(c *gin.Context, action, resource, resourceID string, oldValue, newValue interface{}) {
	go func() {
		if err := logActionAsync(c, action, resource, resourceID, oldValue, newValue, true, ""); err != nil {
			log.Printf("❌ Erreur enregistrement log audit: %v", err)
		}
	}()
}

// LogFailedAction enregistre une action échouée dans les logs d'audit
func LogFailedAction(c *gin.Context, action, resource, resourceID, errorMsg string) {
	go func() {
		if err := logActionAsync(c, action, resource, resourceID, nil, nil, false, errorMsg); err != nil {
			log.Printf("❌ Erreur enregistrement log audit: %v", err)
		}
	}()
}

func logActionAsync(c *gin.Context, action, resource, resourceID string, oldValue, newValue interface{}, success bool, errorMsg string) error {
	session, err := database.GetMembersSession()
	if err != nil {
		return err
	}

	userID, _ := c.Get("user_id")
	userEmail, _ := c.Get("email")

	var oldValueStr, newValueStr string
	if oldValue != nil {
		if b, err := json.Marshal(oldValue); err == nil {
			oldValueStr = string(b)
		}
	}
	if newValue != nil {
		if b, err := json.Marshal(newValue); err == nil {
			newValueStr = string(b)
		}
	}

	entry := models.AuditLog{
		ID:         gocql.TimeUUID(),
		UserID:     getStringValue(userID),
		UserEmail:  getStringValue(userEmail),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		OldValue:   oldValueStr,
		NewValue:   newValueStr,
		Success:    success,
		ErrorMsg:   errorMsg,
		IP:         c.ClientIP(),
		CreatedAt:  time.Now(),
	}

	return session.Query(`INSERT INTO audit_logs (id, user_id, user_email, action, resource, resource_id, old_value, new_value, success, error_msg, ip, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.UserEmail, entry.Action, entry.Resource, entry.ResourceID,
		entry.OldValue, entry.NewValue, entry.Success, entry.ErrorMsg, entry.IP, entry.CreatedAt).Exec()
}

func getStringValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
