package models

type Member struct {
	ID       string `json:"member_id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     string `json:"role,omitempty"` // "member", "trainer", "admin"
	Tier     string `json:"tier"`
	Provider string `json:"provider,omitempty"`

	// Abonnement en cours (mis à jour uniquement par les flux de paiement)
	TierStartDate string `json:"tierStartDate,omitempty"` // DD-MM-YYYY
	TierDuration  string `json:"tierDuration,omitempty"`  // "6 Months"
	TierEndDate   string `json:"tierEndDate,omitempty"`   // DD-MM-YYYY
}
