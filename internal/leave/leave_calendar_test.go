package leave_test

import (
	"testing"

	"hris-dashboard/internal/leave"

	"github.com/stretchr/testify/assert"
)

func approved(name, date, position, department string) leave.Leave {
	return leave.Leave{EmployeeName: name, Date: date, Position: position, Department: department, Status: leave.StatusApproved}
}

func TestCalendarFor(t *testing.T) {
	t.Run("only approved leaves appear", func(t *testing.T) {
		leaves := []leave.Leave{
			approved("A", "10/09/24", "Dev", "Staff"),
			{EmployeeName: "B", Date: "10/09/24", Status: leave.StatusPending},
			{EmployeeName: "C", Date: "10/09/24", Status: leave.StatusRejected},
		}

		got := leave.CalendarFor(leaves)

		assert.Equal(t, []leave.CalendarEntry{
			{Date: "10/09/24", EmployeeName: "A", Position: "Dev Staff"},
		}, got)
	})

	t.Run("same date and name collapse to one entry", func(t *testing.T) {
		leaves := []leave.Leave{
			approved("A", "10/09/24", "Senior", "Developer"),
			approved("A", "10/09/24", "Full", "Time"),
		}

		got := leave.CalendarFor(leaves)

		assert.Len(t, got, 1)
		assert.Equal(t, "Senior Developer", got[0].Position)
	})

	t.Run("sorted by date then name", func(t *testing.T) {
		leaves := []leave.Leave{
			approved("Zed", "2024-06-02", "Dev", "Staff"),
			approved("Bo", "2024-06-02", "Dev", "Staff"),
			approved("Ann", "2024-06-01", "Dev", "Staff"),
		}

		got := leave.CalendarFor(leaves)

		names := make([]string, len(got))
		for i, e := range got {
			names[i] = e.EmployeeName
		}
		assert.Equal(t, []string{"Ann", "Bo", "Zed"}, names)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, leave.CalendarFor(nil))
	})
}

func TestParseStatus(t *testing.T) {
	for _, s := range leave.Statuses {
		got, ok := leave.ParseStatus(string(s))
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}

	_, ok := leave.ParseStatus("approved")
	assert.False(t, ok)
	_, ok = leave.ParseStatus("Cancelled")
	assert.False(t, ok)
}

func TestSplitDesignation(t *testing.T) {
	cases := []struct {
		in, position, department string
	}{
		{"Senior Developer", "Senior", "Developer"},
		{"Dev", "Dev", "Staff"},
		{"Team Lead Backend", "Team", "Lead Backend"},
		{"   ", "Full Time", "Staff"},
	}
	for _, tc := range cases {
		position, department := leave.SplitDesignation(tc.in)
		assert.Equal(t, tc.position, position, tc.in)
		assert.Equal(t, tc.department, department, tc.in)
	}
}
