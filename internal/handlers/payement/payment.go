package pa

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"seven_gym_back_end/internal/billing"
	"seven_gym_back_end/internal/database"
	"seven_gym_back_end/internal/models"
	"seven_gym_back_end/internal/services"
	"seven_gym_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// ✅ Webhook Stripe
func StripeWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		log.Println("❌ Lecture payload échouée:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Échec lecture body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	var event stripe.Event

	if secret == "" {
		log.Println("⚠️ Pas de STRIPE_WEBHOOK_SECRET — mode test")
		if err := json.Unmarshal(payload, &event); err != nil {
			log.Println("❌ JSON invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "JSON invalide"})
			return
		}
	} else {
		event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			log.Println("❌ Signature Stripe invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
			return
		}
	}

	log.Printf("📥 Événement Stripe reçu : %s", event.Type)
	handleStripeEvent(event)

	c.Status(http.StatusOK)
}

// ✅ Traitement de l'événement Stripe
func handleStripeEvent(event stripe.Event) {
	if event.Type != "payment_intent.succeeded" {
		log.Printf("ℹ️ Événement ignoré : %s", event.Type)
		return
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		log.Println("❌ Erreur décodage PaymentIntent:", err)
		return
	}

	email := pi.Metadata["email"]
	tier := pi.Metadata["tier"]
	duration := pi.Metadata["duration"]

	if email == "" || tier == "" || duration == "" {
		log.Println("⚠️ Métadonnées incomplètes, paiement ignoré:", pi.ID)
		return
	}
	log.Printf("💳 Paiement tier confirmé: %s (%s %s) pour %s", pi.ID, tier, duration, email)

	session, err := database.GetBillingSession()
	if err != nil {
		log.Println("❌ Erreur session billing:", err)
		return
	}

	// Vérifier si le paiement est déjà enregistré (webhook rejoué)
	var existingID string
	err = session.Query("SELECT payment_id FROM tier_payments WHERE payment_intent_id = ? ALLOW FILTERING", pi.ID).Scan(&existingID)
	if err == nil {
		log.Println("🔁 Paiement déjà enregistré, on ignore:", existingID)
		return
	}

	now := time.Now()
	months := billing.ParseDurationMonths(duration)

	payment := models.TierPayment{
		PaymentID:       billing.NewPaymentID(email, now),
		Email:           email,
		Tier:            tier,
		TotalPrice:      float64(pi.Amount) / 100,
		StartDate:       billing.FormatDayMonthYear(now),
		Duration:        duration,
		// Même convention 30 jours/mois que le calcul de proration
		EndDate:         billing.FormatDayMonthYear(now.AddDate(0, 0, months*billing.DaysPerMonth)),
		PaymentIntentID: pi.ID,
		Paid:            true,
		PaymentTime:     now,
	}

	err = session.Query(`INSERT INTO tier_payments (payment_id, email, tier, total_price, start_date, duration, end_date, payment_intent_id, paid, payment_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.PaymentID, payment.Email, payment.Tier, payment.TotalPrice, payment.StartDate,
		payment.Duration, payment.EndDate, payment.PaymentIntentID, payment.Paid, payment.PaymentTime).Exec()
	if err != nil {
		log.Println("❌ Erreur insertion paiement:", err)
		return
	}
	log.Printf("✅ Paiement enregistré: %s", payment.PaymentID)

	// Seconde étape (non transactionnelle) : activer le tier du membre
	if err := updateMemberTier(email, tier, payment.StartDate, payment.Duration, payment.EndDate); err != nil {
		// Paiement enregistré mais tier non activé : état partiel, à
		// réconcilier manuellement (aucun rollback n'existe ici)
		log.Printf("⚠️ ÉTAT PARTIEL: paiement %s enregistré mais tier non activé pour %s: %v",
			payment.PaymentID, email, err)
	}

	// Reçu par e-mail (QR + PDF), hors du chemin critique
	go sendPaymentReceipt(payment)
}

func sendPaymentReceipt(payment models.TierPayment) {
	qrBase64, err := utils.GenerateReceiptQR(payment.PaymentID, payment.TotalPrice)
	if err != nil {
		log.Println("❌ Erreur génération QR:", err)
		qrBase64 = ""
	}

	html := utils.GeneratePaymentReceiptHTML(payment, qrBase64)

	pdf, err := utils.RenderReceiptPDF(utils.GetFrontendReceiptBaseURL(), payment.PaymentID, qrBase64)
	if err != nil {
		log.Println("❌ Erreur génération PDF reçu:", err)
		pdf = nil
	}

	if pdf != nil {
		if objectName, err := services.ArchiveReceiptPDF(payment.PaymentID, pdf); err != nil {
			log.Println("⚠️ Erreur archivage reçu MinIO:", err)
		} else {
			log.Println("🪣 Reçu archivé:", objectName)
		}
	}

	if err := utils.SendReceiptEmail(payment.Email, "Votre reçu d'abonnement Seven Gym", html, pdf); err != nil {
		log.Println("❌ Erreur envoi e-mail reçu:", err)
	} else {
		log.Println("📧 Reçu d'abonnement envoyé à", payment.Email)
	}
}

// GetMyPayments renvoie l'historique de paiements du membre connecté
func GetMyPayments(c *gin.Context) {
	email := c.GetString("email")

	session, err := database.GetBillingSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT payment_id, tier, total_price, start_date, duration, end_date, payment_intent_id, paid, payment_time
		FROM tier_payments WHERE email = ? ALLOW FILTERING`, email).Iter()

	var payments []models.TierPayment
	var p models.TierPayment

	for iter.Scan(&p.PaymentID, &p.Tier, &p.TotalPrice, &p.StartDate, &p.Duration, &p.EndDate, &p.PaymentIntentID, &p.Paid, &p.PaymentTime) {
		p.Email = email
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
