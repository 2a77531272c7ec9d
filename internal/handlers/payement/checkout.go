package pa

import (
	"fmt"
	"log"
	"net/http"

	"seven_gym_back_end/internal/cache"
	"seven_gym_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/promotioncode"
)

// durées d'abonnement proposées par le front
var allowedDurations = map[int]bool{1: true, 3: true, 6: true, 12: true}

// CreateTierCheckout crée le PaymentIntent Stripe pour un achat d'abonnement.
// La validation (tier choisi, durée choisie) bloque AVANT tout appel réseau.
func CreateTierCheckout(c *gin.Context) {
	var req struct {
		Tier           string `json:"tier" binding:"required"`
		DurationMonths int    `json:"duration_months"`
		PromoCode      string `json:"promo_code"` // Optionnel
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	userID := c.GetString("user_id")
	email := c.GetString("email")

	if userID == "" || email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	// ✅ 1. Valider la sélection avant tout appel réseau
	if !models.IsValidTier(req.Tier) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tier inconnu: " + req.Tier})
		return
	}
	if req.Tier == models.BaselineTier {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le tier Bronze est gratuit, rien à payer"})
		return
	}
	if !allowedDurations[req.DurationMonths] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Veuillez choisir une durée d'abonnement (1, 3, 6 ou 12 mois)"})
		return
	}

	// ✅ 2. Prix depuis le catalogue (cache Redis → ScyllaDB)
	monthlyPrice, ok := cache.TierMonthlyPrice(req.Tier)
	if !ok || monthlyPrice <= 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prix indisponible pour ce tier"})
		return
	}

	totalPrice := monthlyPrice * float64(req.DurationMonths)

	// ✅ 3. Appliquer le code promo (si fourni)
	var discountAmount float64
	if req.PromoCode != "" {
		validation := validatePromoCode(req.PromoCode, totalPrice)
		if !validation.Valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.ErrorMessage})
			return
		}
		discountAmount = validation.Discount
		log.Printf("✅ Code promo appliqué: %s (%.2f€ de réduction)", req.PromoCode, discountAmount)
	}

	finalPrice := totalPrice - discountAmount
	if finalPrice < 0 {
		finalPrice = 0
	}

	// ✅ 4. Créer le PaymentIntent Stripe
	duration := fmt.Sprintf("%d Months", req.DurationMonths)
	if req.DurationMonths == 1 {
		duration = "1 Month"
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(finalPrice * 100)),
		Currency: stripe.String("eur"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"user_id":  userID,
			"email":    email,
			"tier":     req.Tier,
			"duration": duration,
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Printf("❌ Erreur Stripe: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création paiement", "details": err.Error()})
		return
	}

	log.Printf("💳 Checkout tier créé: %s (%s %s, %.2f€ → %.2f€) pour %s",
		intent.ID, req.Tier, duration, totalPrice, finalPrice, email)

	c.JSON(http.StatusOK, gin.H{
		"client_secret":   intent.ClientSecret,
		"payment_id":      intent.ID,
		"tier":            req.Tier,
		"duration":        duration,
		"amount":          finalPrice,
		"original_amount": totalPrice,
		"discount":        discountAmount,
		"currency":        "eur",
	})
}

type promoValidation struct {
	Valid        bool
	ErrorMessage string
	Discount     float64
}

// validatePromoCode vérifie un code promo Stripe et calcule la réduction
func validatePromoCode(code string, totalPrice float64) promoValidation {
	params := &stripe.PromotionCodeListParams{}
	params.Filters.AddFilter("code", "", code)
	params.Filters.AddFilter("active", "", "true")

	iter := promotioncode.List(params)
	if !iter.Next() {
		return promoValidation{Valid: false, ErrorMessage: "Code promo invalide ou expiré"}
	}

	promo := iter.PromotionCode()
	if promo.Coupon == nil {
		return promoValidation{Valid: false, ErrorMessage: "Code promo invalide"}
	}

	var discount float64
	if promo.Coupon.PercentOff > 0 {
		discount = totalPrice * promo.Coupon.PercentOff / 100
	} else if promo.Coupon.AmountOff > 0 {
		discount = float64(promo.Coupon.AmountOff) / 100
	}

	return promoValidation{Valid: true, Discount: discount}
}

// ValidatePromo vérifie si un code promo est valide (appel direct du front)
func ValidatePromo(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code requis"})
		return
	}

	params := &stripe.PromotionCodeListParams{}
	params.Filters.AddFilter("code", "", code)
	params.Filters.AddFilter("active", "", "true")

	iter := promotioncode.List(params)
	if !iter.Next() {
		c.JSON(http.StatusNotFound, gin.H{
			"valid": false,
			"error": "Code invalide ou expiré",
		})
		return
	}

	promo := iter.PromotionCode()

	response := gin.H{
		"valid":  true,
		"code":   code,
		"active": promo.Active,
		"id":     promo.ID,
	}

	if promo.ExpiresAt > 0 {
		response["expires_at"] = promo.ExpiresAt
	}
	if promo.MaxRedemptions > 0 {
		response["max_redemptions"] = promo.MaxRedemptions
		response["times_redeemed"] = promo.TimesRedeemed
	}

	c.JSON(http.StatusOK, response)
}
