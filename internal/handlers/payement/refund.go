package pa

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"seven_gym_back_end/internal/billing"
	"seven_gym_back_end/internal/cache"
	"seven_gym_back_end/internal/database"
	"seven_gym_back_end/internal/models"
	"seven_gym_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/refund"
)

const refundMomentLayout = "02-01-2006 15:04:05"

// loadPayment récupère un enregistrement de paiement par son identifiant TUP
func loadPayment(paymentID string) (models.TierPayment, error) {
	session, err := database.GetBillingSession()
	if err != nil {
		return models.TierPayment{}, err
	}

	var p models.TierPayment
	p.PaymentID = paymentID

	err = session.Query(`SELECT email, tier, total_price, start_date, duration, end_date, payment_intent_id, paid, payment_time
		FROM tier_payments WHERE payment_id = ?`, paymentID).Scan(
		&p.Email, &p.Tier, &p.TotalPrice, &p.StartDate, &p.Duration, &p.EndDate, &p.PaymentIntentID, &p.Paid, &p.PaymentTime)
	if err != nil {
		return models.TierPayment{}, fmt.Errorf("paiement introuvable: %v", err)
	}
	return p, nil
}

// PreviewRefund calcule la proration sans rien engager.
// Le front affiche ce détail dans la modale de confirmation ; le même calcul
// est refait à la soumission pour que les deux écrans soient toujours d'accord.
func PreviewRefund(c *gin.Context) {
	paymentID := c.Param("paymentId")
	email := c.GetString("email")

	// Prévisualisation cachée 60s : la modale du front re-demande à chaque rendu
	ctx := context.Background()
	cacheKey := "refund_preview:" + paymentID
	if data, err := database.Redis.Get(ctx, cacheKey).Result(); err == nil {
		var cached gin.H
		if json.Unmarshal([]byte(data), &cached) == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	payment, err := loadPayment(paymentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paiement introuvable"})
		return
	}

	if payment.Email != email && c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce paiement ne vous appartient pas"})
		return
	}

	comp := billing.ComputeRefund(payment, time.Now().Format(refundMomentLayout))

	response := gin.H{
		"payment":     payment,
		"computation": comp,
	}

	if data, err := json.Marshal(response); err == nil {
		database.Redis.Set(ctx, cacheKey, data, cache.RefundPreviewCacheTTL)
	}

	c.JSON(http.StatusOK, response)
}

// RequestRefund traite une demande de remboursement d'abonnement.
//
// Séquence en trois temps, sans transaction :
//  1. remboursement Stripe — échec ⇒ on s'arrête là, rien n'est écrit
//  2. enregistrement du TierRefund (append-only)
//  3. retour du membre au tier de base
//
// Un échec après l'étape 1 laisse un état partiel : le paiement est remboursé
// côté Stripe mais pas tracé, ou tracé mais le tier pas rétrogradé. Cet état
// est signalé dans la réponse et les logs d'audit, pas masqué.
func RequestRefund(c *gin.Context) {
	paymentID := c.Param("paymentId")
	email := c.GetString("email")

	var req struct {
		Reason string `json:"reason" binding:"required,min=10,max=500"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	payment, err := loadPayment(paymentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paiement introuvable"})
		return
	}

	if payment.Email != email {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce paiement ne vous appartient pas"})
		return
	}

	if !payment.Paid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ce paiement n'est pas éligible au remboursement"})
		return
	}

	session, err := database.GetBillingSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Vérifier qu'il n'y a pas déjà un remboursement pour ce paiement
	var existingRefundID string
	err = session.Query("SELECT refund_id FROM tier_refunds WHERE linked_payment_id = ? ALLOW FILTERING", paymentID).Scan(&existingRefundID)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Un remboursement existe déjà pour ce paiement"})
		return
	}

	now := time.Now()
	comp := billing.ComputeRefund(payment, now.Format(refundMomentLayout))

	// --- Étape 1 : remboursement Stripe ---
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(payment.PaymentIntentID),
		Amount:        stripe.Int64(int64(comp.RefundAmount * 100)),
		Reason:        stripe.String("requested_by_customer"),
	}

	stripeRefund, err := refund.New(params)
	if err != nil {
		log.Printf("❌ Erreur Stripe refund: %v", err)
		utils.LogFailedAction(c, "refund", "tier_payment", paymentID, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur traitement remboursement Stripe", "details": err.Error()})
		return
	}

	// --- Étape 2 : enregistrement du remboursement ---
	tierRefund := models.TierRefund{
		RefundID:        billing.NewRefundID(email, now),
		LinkedPaymentID: paymentID,
		Email:           email,
		TotalPrice:      payment.TotalPrice,
		RefundAmount:    comp.RefundAmount,
		RefundedReason:  req.Reason,
		Refunded:        true,
		PaymentTime:     now,
		StripeRefundID:  stripeRefund.ID,
		TierDowngraded:  true,
	}

	err = session.Query(`INSERT INTO tier_refunds (refund_id, linked_payment_id, email, total_price, refund_amount, refunded_reason, refunded, payment_time, stripe_refund_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tierRefund.RefundID, tierRefund.LinkedPaymentID, tierRefund.Email, tierRefund.TotalPrice,
		tierRefund.RefundAmount, tierRefund.RefundedReason, tierRefund.Refunded, tierRefund.PaymentTime,
		tierRefund.StripeRefundID).Exec()
	if err != nil {
		// Stripe a remboursé mais la trace n'a pas pu être écrite
		log.Printf("⚠️ ÉTAT PARTIEL: Stripe %s remboursé mais tier_refunds non écrit: %v", stripeRefund.ID, err)
		utils.LogFailedAction(c, "refund_persist", "tier_refund", tierRefund.RefundID, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":            "Remboursement effectué côté Stripe mais non enregistré — contactez le support",
			"stripe_refund_id": stripeRefund.ID,
		})
		return
	}

	// --- Étape 3 : retour au tier de base ---
	if err := updateMemberTier(email, models.BaselineTier, "", "", ""); err != nil {
		log.Printf("⚠️ ÉTAT PARTIEL: remboursement %s enregistré mais tier non rétrogradé pour %s: %v",
			tierRefund.RefundID, email, err)
		tierRefund.TierDowngraded = false
		tierRefund.PartialStateWarning = "Remboursement effectué mais tier non rétrogradé — réconciliation manuelle requise"
		utils.LogFailedAction(c, "tier_downgrade", "member", email, err.Error())
	}

	utils.LogAction(c, "refund", "tier_payment", paymentID, payment.Tier, models.BaselineTier)
	log.Printf("💰 Remboursement traité: %s (Stripe: %s, %.2f€)", tierRefund.RefundID, stripeRefund.ID, tierRefund.RefundAmount)

	// Reçu de remboursement, hors du chemin critique
	go sendRefundReceipt(tierRefund, comp)

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Remboursement traité avec succès",
		"refund":      tierRefund,
		"computation": comp,
	})
}

func sendRefundReceipt(tierRefund models.TierRefund, comp billing.RefundComputation) {
	qrBase64, err := utils.GenerateReceiptQR(tierRefund.RefundID, tierRefund.RefundAmount)
	if err != nil {
		log.Println("❌ Erreur génération QR:", err)
		qrBase64 = ""
	}

	html := utils.GenerateRefundReceiptHTML(tierRefund, comp)

	pdf, err := utils.RenderReceiptPDF(utils.GetFrontendReceiptBaseURL(), tierRefund.RefundID, qrBase64)
	if err != nil {
		log.Println("❌ Erreur génération PDF reçu:", err)
		pdf = nil
	}

	if err := utils.SendReceiptEmail(tierRefund.Email, "Votre reçu de remboursement Seven Gym", html, pdf); err != nil {
		log.Println("❌ Erreur envoi e-mail reçu:", err)
	} else {
		log.Println("📧 Reçu de remboursement envoyé à", tierRefund.Email)
	}
}

// GetMyRefunds récupère les remboursements du membre connecté
func GetMyRefunds(c *gin.Context) {
	email := c.GetString("email")

	session, err := database.GetBillingSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT refund_id, linked_payment_id, total_price, refund_amount, refunded_reason, refunded, payment_time, stripe_refund_id
		FROM tier_refunds WHERE email = ? ALLOW FILTERING`, email).Iter()

	var refunds []models.TierRefund
	var r models.TierRefund

	for iter.Scan(&r.RefundID, &r.LinkedPaymentID, &r.TotalPrice, &r.RefundAmount, &r.RefundedReason, &r.Refunded, &r.PaymentTime, &r.StripeRefundID) {
		r.Email = email
		refunds = append(refunds, r)
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture remboursements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"refunds": refunds,
		"count":   len(refunds),
	})
}

// GetAllRefunds récupère tous les remboursements (admin)
func GetAllRefunds(c *gin.Context) {
	session, err := database.GetBillingSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT refund_id, linked_payment_id, email, total_price, refund_amount, refunded_reason, refunded, payment_time, stripe_refund_id
		FROM tier_refunds`).Iter()

	var refunds []models.TierRefund
	var r models.TierRefund

	for iter.Scan(&r.RefundID, &r.LinkedPaymentID, &r.Email, &r.TotalPrice, &r.RefundAmount, &r.RefundedReason, &r.Refunded, &r.PaymentTime, &r.StripeRefundID) {
		refunds = append(refunds, r)
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture remboursements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"refunds": refunds,
		"count":   len(refunds),
	})
}
