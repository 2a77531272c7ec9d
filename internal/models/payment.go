package models

import "time"

// TierPayment est l'enregistrement d'un achat d'abonnement.
// Immuable une fois créé : le moteur de remboursement ne le modifie jamais.
type TierPayment struct {
	PaymentID       string    `json:"paymentID"` // "TUP..." (voir billing.NewPaymentID)
	Email           string    `json:"email"`
	Tier            string    `json:"tier"`
	TotalPrice      float64   `json:"totalPrice"`
	StartDate       string    `json:"startDate"` // DD-MM-YYYY
	Duration        string    `json:"duration"`  // "6 Months"
	EndDate         string    `json:"endDate"`   // DD-MM-YYYY
	PaymentIntentID string    `json:"payment_intent_id,omitempty"`
	Paid            bool      `json:"paid"`
	PaymentTime     time.Time `json:"paymentTime"`
}
