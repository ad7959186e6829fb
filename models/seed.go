package models

// DefaultSchedule is inserted on first boot when the schedule table is
// empty, so a fresh classroom is not blank.
func DefaultSchedule() []ScheduleEntry {
	return []ScheduleEntry{
		{Day: "Monday", Time: "09:00 - 11:00", Subject: "Core Grammar", Room: "Building A, Room 101"},
		{Day: "Wednesday", Time: "14:00 - 16:00", Subject: "Oral Practice", Room: "Language Lab 3"},
	}
}

// DefaultAnnouncements is inserted on first boot when the announcement
// table is empty.
func DefaultAnnouncements() []Announcement {
	return []Announcement{
		{
			Title:    "Welcome to the semester",
			Content:  "Classes start next week. Have your textbooks ready.",
			Priority: PriorityNormal,
		},
	}
}
