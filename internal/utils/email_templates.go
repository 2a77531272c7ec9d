package utils

import (
	"fmt"

	"seven_gym_back_end/internal/billing"
	"seven_gym_back_end/internal/models"
)

// GeneratePaymentReceiptHTML génère le HTML du reçu d'abonnement
func GeneratePaymentReceiptHTML(payment models.TierPayment, qrBase64 string) string {
	qrHTML := ""
	if qrBase64 != "" {
		qrHTML = fmt.Sprintf(`<p style="text-align: center;"><img src="%s" alt="QR reçu" width="140" height="140"/></p>`, qrBase64)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Reçu d'abonnement</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Bienvenue dans le tier %s 💪</h2>
		<p>Bonjour,</p>
		<p>Votre abonnement Seven Gym a été activé avec succès.</p>

		<h3>Détails de l'abonnement</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<tbody>
				<tr>
					<td style="padding: 10px; border: 1px solid #ddd;">Référence</td>
					<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				</tr>
				<tr>
					<td style="padding: 10px; border: 1px solid #ddd;">Tier</td>
					<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				</tr>
				<tr>
					<td style="padding: 10px; border: 1px solid #ddd;">Durée</td>
					<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				</tr>
				<tr>
					<td style="padding: 10px; border: 1px solid #ddd;">Début</td>
					<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				</tr>
				<tr>
					<td style="padding: 10px; border: 1px solid #ddd;">Fin</td>
					<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				</tr>
				<tr style="background-color: #f0f0f0;">
					<td style="padding: 10px; border: 1px solid #ddd; font-weight: bold;">Total payé</td>
					<td style="padding: 10px; border: 1px solid #ddd; font-weight: bold;">%.2f€</td>
				</tr>
			</tbody>
		</table>
		%s
		<p style="margin-top: 30px; color: #555;">
			À très vite à la salle,<br>
			<strong>L'équipe Seven Gym</strong>
		</p>
	</div>
</body>
</html>`, payment.Tier, payment.PaymentID, payment.Tier, payment.Duration,
		payment.StartDate, payment.EndDate, payment.TotalPrice, qrHTML)
}

// GenerateRefundReceiptHTML génère le HTML du reçu de remboursement,
// avec le détail de la proration pour que le membre comprenne le montant
func GenerateRefundReceiptHTML(refund models.TierRefund, comp billing.RefundComputation) string {
	penaltyRow := ""
	if comp.HasPenalty {
		penaltyRow = fmt.Sprintf(`
				<tr>
					<td style="padding: 10px; border: 1px solid #ddd;">Pénalité (après %d jours de grâce)</td>
					<td style="padding: 10px; border: 1px solid #ddd;">-10%%</td>
				</tr>`, billing.GraceDays)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Reçu de remboursement</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Votre remboursement Seven Gym</h2>
		<p>Bonjour,</p>
		<p>Votre demande de remboursement a été traitée. Votre abonnement repasse au tier %s.</p>

		<h3>Détail du calcul</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<tbody>
				<tr>
					<td style="padding: 10px; border: 1px solid #ddd;">Référence</td>
					<td style="padding: 10px; border: 1px solid #ddd;">%s</td>
				</tr>
				<tr>
					<td style="padding: 10px; border: 1px solid #ddd;">Montant payé</td>
					<td style="padding: 10px; border: 1px solid #ddd;">%.2f€</td>
				</tr>
				<tr>
					<td style="padding: 10px; border: 1px solid #ddd;">Jours écoulés</td>
					<td style="padding: 10px; border: 1px solid #ddd;">%d</td>
				</tr>
				<tr>
					<td style="padding: 10px; border: 1px solid #ddd;">Montant consommé</td>
					<td style="padding: 10px; border: 1px solid #ddd;">%.2f€</td>
				</tr>
				<tr>
					<td style="padding: 10px; border: 1px solid #ddd;">Restant</td>
					<td style="padding: 10px; border: 1px solid #ddd;">%.2f€</td>
				</tr>%s
				<tr style="background-color: #f0f0f0;">
					<td style="padding: 10px; border: 1px solid #ddd; font-weight: bold;">Montant remboursé</td>
					<td style="padding: 10px; border: 1px solid #ddd; font-weight: bold;">%.2f€</td>
				</tr>
			</tbody>
		</table>

		<p style="color: #555;">Motif : %s</p>

		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Seven Gym</strong>
		</p>
	</div>
</body>
</html>`, models.BaselineTier, refund.RefundID, refund.TotalPrice, comp.DaysPassed,
		comp.AmountUsed, comp.RemainingAmount, penaltyRow, refund.RefundAmount, refund.RefundedReason)
}

// GenerateTierChangeHTML génère le HTML de notification de changement de tier
func GenerateTierChangeHTML(oldTier, newTier string) string {
	color := "#4caf50"
	message := fmt.Sprintf("Votre abonnement est passé de %s à %s. Profitez de vos nouveaux avantages !", oldTier, newTier)
	if newTier == models.BaselineTier && oldTier != models.BaselineTier {
		color = "#ff9800"
		message = fmt.Sprintf("Suite à votre remboursement, votre abonnement est repassé de %s à %s.", oldTier, newTier)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Changement de tier</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: %s;">Changement d'abonnement</h2>
		<p>%s</p>
		<p style="margin-top: 30px; color: #555;">
			À très vite à la salle,<br>
			<strong>L'équipe Seven Gym</strong>
		</p>
	</div>
</body>
</html>`, color, message)
}
