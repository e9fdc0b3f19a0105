package task

import "time"

const day = 24 * time.Hour

// Seed returns the demo collection used when nothing is persisted yet.
// Offsets are relative to now.
func Seed(now time.Time) []Task {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return []Task{{
		ID:          "1",
		Title:       "Finalize Q3 marketing strategy",
		Description: "Review and approve the final draft of the Q3 marketing plan.",
		DueDate:     At(now.Add(3 * day)),
		Priority:    High,
		CreatedAt:   Timestamp{Time: now.Add(-2 * day)},
	}, {
		ID:          "2",
		Title:       "Develop new landing page design",
		Description: "Create mockups and prototypes for the new homepage.",
		DueDate:     At(now.Add(7 * day)),
		Priority:    Urgent,
		CreatedAt:   Timestamp{Time: now.Add(-1 * day)},
	}, {
		ID:             "3",
		Title:          "Onboard new marketing intern",
		Description:    "Prepare onboarding materials and schedule intro meetings.",
		DueDate:        At(now.Add(1 * day)),
		Priority:       Medium,
		Completed:      true,
		CompletionDate: At(now),
		CreatedAt:      Timestamp{Time: now.Add(-5 * day)},
	}, {
		ID:          "4",
		Title:       "Plan team offsite event",
		Description: "Coordinate logistics, activities, and budget for the upcoming team offsite.",
		DueDate:     At(now.Add(14 * day)),
		Priority:    Medium,
		CreatedAt:   Timestamp{Time: now.Add(-10 * day)},
		ParentID:    "1",
	}, {
		ID:          "5",
		Title:       "Fix login issue on mobile app",
		Description: "Investigate and resolve the reported login bug on iOS and Android.",
		DueDate:     At(now.Add(-1 * day)),
		Priority:    High,
		CreatedAt:   Timestamp{Time: now},
	}, {
		ID:             "6",
		Title:          "Update customer support documentation",
		Description:    "Add new section for the latest feature release.",
		Priority:       Low,
		Completed:      true,
		CompletionDate: At(now.Add(-3 * day)),
		CreatedAt:      Timestamp{Time: now.Add(-8 * day)},
	}, {
		ID:          "7",
		Title:       "Call with the legal team",
		Description: "Discuss the new privacy policy updates.",
		DueDate:     At(startOfToday.Add(15 * time.Hour)),
		Priority:    Urgent,
		CreatedAt:   Timestamp{Time: now.Add(-1 * day)},
	}}
}
