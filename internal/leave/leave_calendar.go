package leave

import "sort"

// CalendarEntry is one approved day off as shown on the dashboard calendar.
type CalendarEntry struct {
	Date         string `json:"date"`
	EmployeeName string `json:"employee"`
	Position     string `json:"position"`
}

type calendarKey struct {
	date, employee string
}

// CalendarFor derives the calendar from stored leaves: one entry per
// (date, employee name) among Approved leaves, sorted by date then name.
// When several approved leaves share a key the first one seen supplies the
// position label.
func CalendarFor(leaves []Leave) []CalendarEntry {
	seen := make(map[calendarKey]struct{}, len(leaves))
	entries := make([]CalendarEntry, 0, len(leaves))
	for _, l := range leaves {
		if l.Status != StatusApproved {
			continue
		}
		key := calendarKey{date: l.Date, employee: l.EmployeeName}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		entries = append(entries, CalendarEntry{
			Date:         l.Date,
			EmployeeName: l.EmployeeName,
			Position:     l.Position + " " + l.Department,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].EmployeeName < entries[j].EmployeeName
	})
	return entries
}
