package pa

import (
	"log"
	"net/http"
	"time"

	"seven_gym_back_end/internal/database"
	"seven_gym_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// GetBillingDashboard agrège les statistiques de facturation (admin).
// Les agrégats sont calculés à la volée : le volume reste faible à l'échelle
// d'une salle, pas besoin de table de compteurs.
func GetBillingDashboard(c *gin.Context) {
	billingSession, err := database.GetBillingSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// --- Paiements ---
	paymentsByTier := make(map[string]int)
	var totalPayments int
	var totalRevenue float64

	iter := billingSession.Query("SELECT tier, total_price, paid FROM tier_payments").Iter()
	var tier string
	var price float64
	var paid bool
	for iter.Scan(&tier, &price, &paid) {
		if !paid {
			continue
		}
		totalPayments++
		totalRevenue += price
		paymentsByTier[tier]++
	}
	if err := iter.Close(); err != nil {
		log.Println("❌ Erreur lecture tier_payments:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture paiements"})
		return
	}

	// --- Remboursements ---
	var totalRefunds int
	var totalRefunded float64

	iter = billingSession.Query("SELECT refund_amount, refunded FROM tier_refunds").Iter()
	var refundAmount float64
	var refunded bool
	for iter.Scan(&refundAmount, &refunded) {
		if !refunded {
			continue
		}
		totalRefunds++
		totalRefunded += refundAmount
	}
	if err := iter.Close(); err != nil {
		log.Println("❌ Erreur lecture tier_refunds:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture remboursements"})
		return
	}

	// --- Répartition des membres par tier ---
	membersByTier := make(map[string]int)
	membersSession, err := database.GetMembersSession()
	if err == nil {
		iter = membersSession.Query("SELECT tier FROM members").Iter()
		var memberTier string
		for iter.Scan(&memberTier) {
			if memberTier == "" {
				memberTier = models.BaselineTier
			}
			membersByTier[memberTier]++
		}
		iter.Close()
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": gin.H{
			"total":   totalPayments,
			"revenue": totalRevenue,
			"by_tier": paymentsByTier,
		},
		"refunds": gin.H{
			"total":    totalRefunds,
			"refunded": totalRefunded,
		},
		"members_by_tier": membersByTier,
		"net_revenue":     totalRevenue - totalRefunded,
		"generated_at":    time.Now(),
	})
}

// GetRecentPayments liste les derniers paiements tous membres confondus (admin)
func GetRecentPayments(c *gin.Context) {
	session, err := database.GetBillingSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT payment_id, email, tier, total_price, start_date, duration, end_date, paid, payment_time
		FROM tier_payments LIMIT 50`).Iter()

	var payments []models.TierPayment
	var p models.TierPayment

	for iter.Scan(&p.PaymentID, &p.Email, &p.Tier, &p.TotalPrice, &p.StartDate, &p.Duration, &p.EndDate, &p.Paid, &p.PaymentTime) {
		payments = append(payments, p)
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture paiements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"count":    len(payments),
	})
}
