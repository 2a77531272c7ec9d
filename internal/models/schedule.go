package models

// TimeSlot est une cellule d'une heure dans le planning hebdomadaire.
// L'ID est dérivé de façon déterministe : "Schedule-<jour>-<DD-MM-YYYY>-<HH>:00".
type TimeSlot struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Notes    string `json:"notes"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

// DaySchedule est le planning d'une journée : map "HH:00" → TimeSlot.
// Une journée expirée est remplacée en bloc lors de la régénération.
type DaySchedule struct {
	ID       string              `json:"id"`
	DayName  string              `json:"dayName"`
	Date     string              `json:"date"` // DD-MM-YYYY
	Schedule map[string]TimeSlot `json:"schedule"`
}

// WeeklySchedule : nom du jour → planning du jour
type WeeklySchedule map[string]DaySchedule
