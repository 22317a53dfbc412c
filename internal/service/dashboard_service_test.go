package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardDemoData(t *testing.T) {
	svc := NewDashboardService(nil)

	assert.Len(t, svc.GetTasks(), 5)
	assert.Len(t, svc.GetProjects(), 3)
	assert.Len(t, svc.GetUpdates(), 6)
	assert.Len(t, svc.GetPriorities(), 5)

	summary := svc.GetDailySummary()
	require.NotNil(t, summary)
	assert.Len(t, summary.Tasks, 3)
	assert.NotEmpty(t, summary.Insights)

	metrics := svc.GetTeamMetrics()
	require.NotNil(t, metrics)
	assert.Equal(t, "great", metrics.TeamMood)
}

func TestDashboardGetProject(t *testing.T) {
	svc := NewDashboardService(nil)

	detail, err := svc.GetProject("p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", detail.Project.Id)

	_, err = svc.GetProject("does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDashboardAddScheduleBlocks(t *testing.T) {
	svc := NewDashboardService(nil)
	base := len(svc.GetCalendar())

	svc.AddScheduleBlocks([]string{
		"Linear Algebra review",
		"Login bug fix session",
	})

	calendar := svc.GetCalendar()
	require.Len(t, calendar, base+2)

	added := calendar[base:]
	assert.Equal(t, "Linear Algebra review", added[0].Title)
	assert.True(t, strings.HasPrefix(added[0].Id, "approved-"))
	assert.Equal(t, "study", added[0].Category)

	// Second block starts when the first one ends
	assert.Equal(t, added[0].End, added[1].Start)

	today := svc.GetCalendarToday()
	assert.Equal(t, len(calendar), today.TotalBlocks)
}
