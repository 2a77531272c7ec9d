package billing

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// idDateLayout : DDMMYYYY sans séparateur, utilisé dans les identifiants
const idDateLayout = "02012006"

// sanitizeEmailID retire tout caractère non alphanumérique et passe en majuscules
func sanitizeEmailID(email string) string {
	var b strings.Builder
	for _, r := range email {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

func fiveRandomDigits() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// rand système indisponible : on retombe sur l'horloge
		return fmt.Sprintf("%05d", time.Now().UnixNano()%100000)
	}
	return fmt.Sprintf("%05d", binary.BigEndian.Uint64(buf[:])%100000)
}

// NewPaymentID génère un identifiant de paiement "TUP" + DDMMYYYY + email + 5 chiffres.
// L'email reste brut ici : le format historique des reçus de paiement,
// à reproduire à l'identique pour la compatibilité.
func NewPaymentID(email string, now time.Time) string {
	return "TUP" + now.Format(idDateLayout) + email + fiveRandomDigits()
}

// NewRefundID génère un identifiant de remboursement
// "TUR" + DDMMYYYY + email nettoyé (alphanumérique, majuscules) + 5 chiffres
func NewRefundID(email string, now time.Time) string {
	return "TUR" + now.Format(idDateLayout) + sanitizeEmailID(email) + fiveRandomDigits()
}
