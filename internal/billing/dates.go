package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayMonthYear est le format de date utilisé par le front et la persistence
const DayMonthYear = "02-01-2006"

// refundMomentLayouts : les différents appelants formatent le moment du
// remboursement différemment, il faut accepter les deux familles
var refundMomentLayouts = []string{
	"02-01-2006 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	DayMonthYear,
}

// ParseDayMonthYear parse une date DD-MM-YYYY
func ParseDayMonthYear(s string) (time.Time, error) {
	t, err := time.Parse(DayMonthYear, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("date invalide %q: %v", s, err)
	}
	return t, nil
}

// FormatDayMonthYear formate une date en DD-MM-YYYY
func FormatDayMonthYear(t time.Time) string {
	return t.Format(DayMonthYear)
}

// ParseRefundMoment parse un horodatage de remboursement,
// au format "DD-MM-YYYY HH:MM:SS" ou ISO 8601
func ParseRefundMoment(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range refundMomentLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("horodatage invalide: %q", s)
}

// ParseDurationMonths extrait le nombre de mois d'une durée type "6 Months".
// Token non numérique ou absent → 1 mois.
func ParseDurationMonths(s string) int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 1
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n <= 0 {
		return 1
	}
	return n
}
