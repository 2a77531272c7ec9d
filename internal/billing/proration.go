package billing

import (
	"log"
	"math"

	"seven_gym_back_end/internal/models"
)

const (
	// GraceDays : remboursement intégral pendant les 3 premiers jours
	GraceDays = 3
	// PenaltyRate : pénalité de 10% sur le restant après la période de grâce
	PenaltyRate = 0.10
	// DaysPerMonth : approximation fixe de 30 jours par mois.
	// Pas exact calendairement, mais c'est la convention appliquée partout
	// (calcul, reçus, affichage) — ne pas "corriger" sans migrer le front.
	DaysPerMonth = 30
)

// RefundComputation est le résultat du calcul de proration.
// Éphémère : recalculé à la demande, jamais persisté tel quel.
type RefundComputation struct {
	DaysPassed      int     `json:"daysPassed"`
	PerDayCost      float64 `json:"perDayCost"`
	AmountUsed      float64 `json:"amountUsed"`
	RemainingAmount float64 `json:"remainingAmount"`
	HasPenalty      bool    `json:"hasPenalty"`
	RefundAmount    float64 `json:"refundAmount"`
}

// Round2 arrondit à 2 décimales (montants en euros)
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ComputeRefund calcule la proration d'un abonnement au moment refundMoment.
//
// Calcul pur, sans effet de bord. Les trois consommateurs (prévisualisation,
// soumission du remboursement, rendu du reçu) passent tous par ici pour que
// la formule reste unique.
//
// Entrées invalides → résultat "fail-soft" : daysPassed = 0, remboursement
// intégral, jamais d'erreur remontée (le front doit pouvoir afficher un reçu
// même dégénéré).
func ComputeRefund(p models.TierPayment, refundMoment string) RefundComputation {
	total := p.TotalPrice
	if math.IsNaN(total) || total < 0 {
		total = 0
	}

	months := ParseDurationMonths(p.Duration)
	totalDays := float64(months * DaysPerMonth)

	var perDay float64
	if totalDays > 0 {
		perDay = total / totalDays
	}

	comp := RefundComputation{
		PerDayCost:      perDay,
		RemainingAmount: total,
		RefundAmount:    Round2(total),
	}

	start, errStart := ParseDayMonthYear(p.StartDate)
	moment, errMoment := ParseRefundMoment(refundMoment)
	if errStart != nil || errMoment != nil {
		log.Printf("⚠️ Proration: dates illisibles (start=%q, moment=%q), résultat à zéro", p.StartDate, refundMoment)
		return comp
	}

	days := int(math.Floor(moment.Sub(start).Hours() / 24))
	if days < 0 {
		days = 0
	}
	comp.DaysPassed = days

	used := float64(days) * perDay
	if days <= 0 {
		used = 0
	}
	// Pour un paiement très ancien, days*perDay dépasserait le total et
	// produirait un restant négatif. On borne au total payé.
	if used > total {
		used = total
	}
	comp.AmountUsed = used
	comp.RemainingAmount = total - used
	comp.HasPenalty = days > GraceDays

	if comp.HasPenalty {
		comp.RefundAmount = Round2(comp.RemainingAmount * (1 - PenaltyRate))
	} else {
		comp.RefundAmount = Round2(total)
	}

	return comp
}
