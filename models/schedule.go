package models

import "gorm.io/gorm"

// ScheduleEntry is one slot of the shared weekly schedule. Time is a
// free-text range ("09:00 - 11:00"); no ordering is stored beyond the day.
type ScheduleEntry struct {
	gorm.Model
	Day     string `json:"day" gorm:"not null"`
	Time    string `json:"time"`
	Subject string `json:"subject" gorm:"not null"`
	Room    string `json:"room"`
}

// DayOrder is the fixed day sequence used when grouping entries for
// presentation.
var DayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
