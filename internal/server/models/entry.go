package models

import "time"

// Mood is the fixed set of mood values accepted on a diary entry.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodNeutral Mood = "neutral"
	MoodAnxious Mood = "anxious"
	MoodExcited Mood = "excited"
	MoodTired   Mood = "tired"
)

// Moods lists every accepted mood value.
var Moods = []Mood{MoodHappy, MoodSad, MoodNeutral, MoodAnxious, MoodExcited, MoodTired}

// Valid reports whether m is one of the accepted mood values.
func (m Mood) Valid() bool {
	for _, v := range Moods {
		if m == v {
			return true
		}
	}
	return false
}

// DiaryEntry is a dated journal record owned by exactly one user. The JSON
// tags are the wire contract of the diary endpoints; optional fields are
// pointers so that "absent" and "zero" stay distinguishable.
type DiaryEntry struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user"`
	Date           time.Time  `json:"date"`
	CaloriesIntake int        `json:"caloriesIntake"`
	EnergyLevel    int        `json:"energyLevel"`
	VitaminsTaken  bool       `json:"vitaminsTaken"`
	Mood           Mood       `json:"mood"`
	ExerciseTime   int        `json:"exerciseTime"`
	SleepQuality   int        `json:"sleepQuality"`
	WaterIntake    *float64   `json:"waterIntake,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	WalkTime       int        `json:"walkTime"`
	StressLevel    *int       `json:"stressLevel,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
