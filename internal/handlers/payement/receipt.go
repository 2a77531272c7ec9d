package pa

import (
	"context"
	"log"
	"net/http"
	"time"

	"seven_gym_back_end/internal/billing"
	"seven_gym_back_end/internal/cache"
	"seven_gym_back_end/internal/database"
	"seven_gym_back_end/internal/models"
	"seven_gym_back_end/internal/services"
	"seven_gym_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// ResendRefundReceipt renvoie le reçu PDF d'un remboursement par e-mail.
// Le détail de proration est recalculé depuis le paiement d'origine pour que
// le reçu renvoyé affiche exactement les mêmes montants que le premier.
func ResendRefundReceipt(c *gin.Context) {
	refundID := c.Param("refundId")
	email := c.GetString("email")

	session, err := database.GetBillingSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var r models.TierRefund
	r.RefundID = refundID
	err = session.Query(`SELECT linked_payment_id, email, total_price, refund_amount, refunded_reason, refunded, payment_time, stripe_refund_id
		FROM tier_refunds WHERE refund_id = ?`, refundID).Scan(
		&r.LinkedPaymentID, &r.Email, &r.TotalPrice, &r.RefundAmount, &r.RefundedReason, &r.Refunded, &r.PaymentTime, &r.StripeRefundID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Remboursement introuvable"})
		return
	}

	if r.Email != email && c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce remboursement ne vous appartient pas"})
		return
	}

	var comp billing.RefundComputation
	if payment, err := loadPayment(r.LinkedPaymentID); err == nil {
		comp = billing.ComputeRefund(payment, r.PaymentTime.Format(refundMomentLayout))
	} else {
		// Paiement d'origine introuvable : reçu minimal avec les montants stockés
		comp = billing.RefundComputation{RemainingAmount: r.RefundAmount, RefundAmount: r.RefundAmount}
	}

	go sendRefundReceipt(r, comp)
	log.Printf("🔁 Réexpédition du reçu %s demandée par %s", refundID, email)

	c.JSON(http.StatusAccepted, gin.H{"message": "Reçu en cours d'envoi", "refund_id": refundID})
}

// GetReceiptDownloadURL renvoie une URL signée temporaire vers le PDF archivé
// d'un reçu de paiement
func GetReceiptDownloadURL(c *gin.Context) {
	paymentID := c.Param("paymentId")
	email := c.GetString("email")

	payment, err := loadPayment(paymentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paiement introuvable"})
		return
	}

	if payment.Email != email && c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce paiement ne vous appartient pas"})
		return
	}

	url, err := services.GenerateSignedURL(context.Background(), "receipts/"+paymentID+".pdf", 15*time.Minute)
	if err != nil {
		log.Println("❌ Erreur URL signée MinIO:", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Reçu non archivé pour ce paiement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":        url,
		"expires_in": "15m",
	})
}

// GetTierCatalog renvoie le catalogue public des abonnements
func GetTierCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tiers": cache.GetTierCatalogFromCache()})
}

// UpdateTierPricing met à jour le prix d'un tier (admin) puis invalide le cache
func UpdateTierPricing(c *gin.Context) {
	var req struct {
		Name         string   `json:"name" binding:"required"`
		MonthlyPrice float64  `json:"monthly_price" binding:"required,gt=0"`
		Perks        []string `json:"perks"`
		Highlighted  bool     `json:"highlighted"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	if !models.IsValidTier(req.Name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tier inconnu: " + req.Name})
		return
	}

	session, err := database.GetBillingSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	err = session.Query(`INSERT INTO tiers (name, monthly_price, perks, highlighted) VALUES (?, ?, ?, ?)`,
		req.Name, req.MonthlyPrice, req.Perks, req.Highlighted).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour tier"})
		return
	}

	cache.InvalidateTierCatalogCache()
	utils.LogAction(c, "update_tier_pricing", "tier", req.Name, "", "")
	log.Printf("✅ Tarif mis à jour: %s → %.2f€/mois", req.Name, req.MonthlyPrice)

	c.JSON(http.StatusOK, gin.H{"message": "Tier mis à jour", "tier": req.Name})
}
