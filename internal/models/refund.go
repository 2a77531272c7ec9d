package models

import "time"

// TierRefund est l'enregistrement d'audit d'un remboursement.
// Créé exactement une fois après confirmation, jamais modifié ensuite.
type TierRefund struct {
	RefundID            string    `json:"RefundID"` // "TUR..." (voir billing.NewRefundID)
	LinkedPaymentID     string    `json:"linkedPaymentReceptID"`
	Email               string    `json:"email"`
	TotalPrice          float64   `json:"totalPrice"`
	RefundAmount        float64   `json:"refundAmount"`
	RefundedReason      string    `json:"refundedReason"`
	Refunded            bool      `json:"refunded"`
	PaymentTime         time.Time `json:"paymentTime"`
	StripeRefundID      string    `json:"stripe_refund_id,omitempty"`
	TierDowngraded      bool      `json:"tier_downgraded"`
	PartialStateWarning string    `json:"partial_state_warning,omitempty"`
}
