package models

// BaselineTier est le tier de base : tout le monde y revient après un remboursement
const BaselineTier = "Bronze"

type Tier struct {
	Name         string   `json:"name"`
	MonthlyPrice float64  `json:"monthly_price"`
	Perks        []string `json:"perks,omitempty"`
	Highlighted  bool     `json:"highlighted,omitempty"`
}

// TierNames dans l'ordre croissant des niveaux
var TierNames = []string{"Bronze", "Silver", "Gold", "Diamond", "Platinum"}

// DefaultTierCatalog sert de fallback si la table tiers est vide
var DefaultTierCatalog = []Tier{
	{Name: "Bronze", MonthlyPrice: 0},
	{Name: "Silver", MonthlyPrice: 10},
	{Name: "Gold", MonthlyPrice: 20},
	{Name: "Diamond", MonthlyPrice: 35, Highlighted: true},
	{Name: "Platinum", MonthlyPrice: 50},
}

// IsValidTier vérifie qu'un nom de tier existe
func IsValidTier(name string) bool {
	for _, t := range TierNames {
		if t == name {
			return true
		}
	}
	return false
}
