package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"seven_gym_back_end/internal/models"
)

func payment(total float64, duration, start string) models.TierPayment {
	return models.TierPayment{
		PaymentID:  "TUP01012024test@mail.com12345",
		Email:      "test@mail.com",
		Tier:       "Gold",
		TotalPrice: total,
		StartDate:  start,
		Duration:   duration,
	}
}

func TestComputeRefund_FullRefundDuringGrace(t *testing.T) {
	// 1 jour écoulé → pas de pénalité, remboursement intégral
	comp := ComputeRefund(payment(120, "6 Months", "01-01-2024"), "02-01-2024 10:30:00")

	assert.Equal(t, 1, comp.DaysPassed)
	assert.False(t, comp.HasPenalty)
	assert.Equal(t, 120.0, comp.RefundAmount)
}

func TestComputeRefund_PenaltyAfterGrace(t *testing.T) {
	comp := ComputeRefund(payment(120, "6 Months", "01-01-2024"), "10-01-2024 00:00:00")

	assert.Equal(t, 9, comp.DaysPassed)
	assert.InDelta(t, 120.0/180.0, comp.PerDayCost, 1e-9)
	assert.InDelta(t, 6.0, comp.AmountUsed, 1e-9)
	assert.InDelta(t, 114.0, comp.RemainingAmount, 1e-9)
	assert.True(t, comp.HasPenalty)
	assert.Equal(t, 102.60, comp.RefundAmount)
}

func TestComputeRefund_GraceBoundary(t *testing.T) {
	tests := []struct {
		name       string
		moment     string
		hasPenalty bool
		refund     float64
	}{
		{"jour 3, dernier jour de grâce", "04-01-2024 00:00:00", false, 120},
		{"jour 4, première pénalité", "05-01-2024 00:00:00", true, Round2((120 - 4*(120.0/180.0)) * 0.9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp := ComputeRefund(payment(120, "6 Months", "01-01-2024"), tt.moment)
			assert.Equal(t, tt.hasPenalty, comp.HasPenalty)
			assert.Equal(t, tt.refund, comp.RefundAmount)
		})
	}
}

func TestComputeRefund_UsedPlusRemainingEqualsTotal(t *testing.T) {
	moments := []string{
		"01-01-2024 00:00:00",
		"03-01-2024 12:00:00",
		"15-02-2024 08:45:12",
		"29-06-2024 23:59:59",
	}

	for _, m := range moments {
		comp := ComputeRefund(payment(120, "6 Months", "01-01-2024"), m)
		assert.InDelta(t, 120.0, comp.AmountUsed+comp.RemainingAmount, 1e-9, "moment %s", m)
		assert.LessOrEqual(t, comp.RefundAmount, 120.0)
	}
}

func TestComputeRefund_VeryOldPaymentClampedToTotal(t *testing.T) {
	// 400 jours écoulés sur 180 jours payés : le montant utilisé est borné
	// au total, le restant ne devient jamais négatif
	comp := ComputeRefund(payment(120, "6 Months", "01-01-2023"), "05-02-2024 00:00:00")

	assert.Equal(t, 120.0, comp.AmountUsed)
	assert.Equal(t, 0.0, comp.RemainingAmount)
	assert.True(t, comp.HasPenalty)
	assert.Equal(t, 0.0, comp.RefundAmount)
}

func TestComputeRefund_ISOMoment(t *testing.T) {
	// Les deux formats d'horodatage doivent donner le même résultat
	a := ComputeRefund(payment(120, "6 Months", "01-01-2024"), "10-01-2024 00:00:00")
	b := ComputeRefund(payment(120, "6 Months", "01-01-2024"), "2024-01-10T00:00:00Z")

	assert.Equal(t, a, b)
}

func TestComputeRefund_InvalidStartDateFailSoft(t *testing.T) {
	// Date illisible → résultat dégénéré mais pas d'erreur : daysPassed = 0,
	// remboursement intégral, le front peut toujours afficher un reçu
	comp := ComputeRefund(payment(120, "6 Months", ""), "10-01-2024 00:00:00")

	assert.Equal(t, 0, comp.DaysPassed)
	assert.Equal(t, 0.0, comp.AmountUsed)
	assert.Equal(t, 120.0, comp.RemainingAmount)
	assert.False(t, comp.HasPenalty)
	assert.Equal(t, 120.0, comp.RefundAmount)
}

func TestComputeRefund_RefundBeforeStartClampsToZeroDays(t *testing.T) {
	comp := ComputeRefund(payment(120, "6 Months", "10-01-2024"), "05-01-2024 00:00:00")

	assert.Equal(t, 0, comp.DaysPassed)
	assert.Equal(t, 0.0, comp.AmountUsed)
	assert.Equal(t, 120.0, comp.RefundAmount)
}

func TestParseDurationMonths(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"6 Months", 6},
		{"1 Month", 1},
		{"12 Months", 12},
		{"", 1},
		{"Months", 1},
		{"abc def", 1},
		{"-3 Months", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDurationMonths(tt.in), "durée %q", tt.in)
	}
}

func TestParseRefundMoment(t *testing.T) {
	for _, s := range []string{"10-01-2024 15:04:05", "2024-01-10T15:04:05Z", "2024-01-10T15:04:05", "10-01-2024"} {
		_, err := ParseRefundMoment(s)
		assert.NoError(t, err, "format %q", s)
	}

	_, err := ParseRefundMoment("pas une date")
	assert.Error(t, err)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 102.60, Round2(102.60000000000001))
	assert.Equal(t, 0.67, Round2(2.0/3.0))
	assert.Equal(t, 120.0, Round2(120))
}
