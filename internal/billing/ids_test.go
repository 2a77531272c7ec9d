package billing

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2024, 3, 7, 14, 0, 0, 0, time.UTC)

func TestNewRefundID(t *testing.T) {
	id := NewRefundID("john.doe+gym@mail.com", fixedNow)

	// "TUR" + DDMMYYYY + email nettoyé en majuscules + 5 chiffres
	assert.Regexp(t, regexp.MustCompile(`^TUR07032024JOHNDOEGYMMAILCOM\d{5}$`), id)
}

func TestNewPaymentID(t *testing.T) {
	id := NewPaymentID("john.doe@mail.com", fixedNow)

	// l'email reste brut dans les identifiants de paiement (format historique)
	assert.Regexp(t, regexp.MustCompile(`^TUP07032024john\.doe@mail\.com\d{5}$`), id)
}

func TestSanitizeEmailID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"john.doe@mail.com", "JOHNDOEMAILCOM"},
		{"a_b-c@x.y", "ABCXY"},
		{"", ""},
		{"déjà@là.fr", "DÉJÀLÀFR"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeEmailID(tt.in))
	}
}

func TestIDsAreUnlikelyToCollide(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[NewRefundID("x@y.z", fixedNow)] = true
	}
	// 5 chiffres aléatoires : 50 tirages sans collision est attendu
	assert.Greater(t, len(seen), 45)
}
