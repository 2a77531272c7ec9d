package planning

import (
	"fmt"
	"sort"
	"time"

	"seven_gym_back_end/internal/models"
)

// WeekDays : noms canoniques, index 0 = Sunday (même convention que le front)
var WeekDays = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// dateLayout : DD-MM-YYYY, format de stockage et d'affichage des dates de planning
const dateLayout = "02-01-2006"

// États d'une journée de planning. Machine à sens unique :
// Future → Today → Past, puis la régénération repart sur Future.
const (
	DayFuture = "Future"
	DayToday  = "Today"
	DayPast   = "Past"
)

// HourKey formate une heure en clé de créneau "HH:00"
func HourKey(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// SlotID dérive l'identifiant déterministe d'un créneau :
// "Schedule-<jour>-<DD-MM-YYYY>-<HH>:00"
func SlotID(dayName, date, hourKey string) string {
	return "Schedule-" + dayName + "-" + date + "-" + hourKey
}

// WeekdayIndex retourne l'index 0-6 d'un nom de jour, ou une erreur
func WeekdayIndex(dayName string) (int, error) {
	for i, name := range WeekDays {
		if name == dayName {
			return i, nil
		}
	}
	return 0, fmt.Errorf("jour inconnu: %q", dayName)
}

// GenerateWeek construit le planning complet des 7 jours de la semaine courante.
//
// La date de chaque jour est ancrée sur la semaine de anchor :
// anchor − weekday(anchor) + index. Chaque jour reçoit un créneau vide par
// heure dans [startHour, endHour] inclus. startHour > endHour ne produit
// aucun créneau (la validation est l'affaire de l'appelant, pas la nôtre —
// mais on ne panique jamais).
func GenerateWeek(startHour, endHour int, anchor time.Time) models.WeeklySchedule {
	week := make(models.WeeklySchedule, len(WeekDays))
	weekStart := anchor.AddDate(0, 0, -int(anchor.Weekday()))

	for i, dayName := range WeekDays {
		date := weekStart.AddDate(0, 0, i).Format(dateLayout)
		week[dayName] = models.DaySchedule{
			ID:       dayName + "-" + date,
			DayName:  dayName,
			Date:     date,
			Schedule: emptySlots(dayName, date, hourKeysBetween(startHour, endHour)),
		}
	}
	return week
}

// RegenerateDay reconstruit une journée expirée pour sa prochaine occurrence.
//
// La prochaine occurrence est strictement dans le futur : si now tombe déjà
// sur ce jour de la semaine, on saute à la semaine suivante. Les clés d'heures
// existantes sont conservées telles quelles, tout le contenu est vidé et les
// identifiants re-dérivés pour la nouvelle date. Le résultat remplace
// intégralement l'ancienne journée, aucune fusion.
func RegenerateDay(dayName string, existingSlotHours []string, now time.Time) (models.DaySchedule, error) {
	target, err := WeekdayIndex(dayName)
	if err != nil {
		return models.DaySchedule{}, err
	}

	daysToAdd := (target - int(now.Weekday()) + 7) % 7
	if daysToAdd == 0 {
		daysToAdd = 7
	}

	date := now.AddDate(0, 0, daysToAdd).Format(dateLayout)
	hours := append([]string(nil), existingSlotHours...)
	sort.Strings(hours)

	return models.DaySchedule{
		ID:       dayName + "-" + date,
		DayName:  dayName,
		Date:     date,
		Schedule: emptySlots(dayName, date, hours),
	}, nil
}

// StateOfDay classe une journée : Future, Today ou Past.
// Date illisible → Past (la journée devient régénérable plutôt que bloquée).
func StateOfDay(date string, now time.Time) string {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return DayPast
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case d.After(today):
		return DayFuture
	case d.Equal(today):
		return DayToday
	default:
		return DayPast
	}
}

func hourKeysBetween(startHour, endHour int) []string {
	var keys []string
	for h := startHour; h <= endHour; h++ {
		keys = append(keys, HourKey(h))
	}
	return keys
}

func emptySlots(dayName, date string, hourKeys []string) map[string]models.TimeSlot {
	slots := make(map[string]models.TimeSlot, len(hourKeys))
	for _, key := range hourKeys {
		slots[key] = models.TimeSlot{ID: SlotID(dayName, date, key)}
	}
	return slots
}
