package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/studylegend/mastery-service/internal/models"
	"github.com/studylegend/mastery-service/internal/utils"
)

type stubAnalytics struct {
	stats *models.UserStatistics
	err   error
}

func (s *stubAnalytics) GetUserStatistics(ctx context.Context, email string, now time.Time) (*models.UserStatistics, error) {
	return s.stats, s.err
}

func (s *stubAnalytics) GetSubjectStatistics(ctx context.Context, subject, email string, now time.Time) (*models.SubjectStatistics, error) {
	return nil, nil
}

func (s *stubAnalytics) GetRecentActivity(ctx context.Context, email string, limit int) ([]models.ActivityItem, error) {
	return nil, nil
}

func TestReportService_ExportUserReport(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	avg := 3.2
	mathAvg := 3.6

	stats := &models.UserStatistics{
		TotalItems:     4,
		TotalAttempts:  11,
		AverageMastery: &avg,
		StreakDays:     3,
		SubjectBreakdown: map[string]*models.SubjectStatistics{
			"Mathematics": {
				Subject:        "Mathematics",
				TotalItems:     2,
				TotalAttempts:  6,
				AverageMastery: &mathAvg,
				WeakWeeks:      []int{2, 5},
			},
			"History": {
				Subject:    "History",
				TotalItems: 2,
				WeakWeeks:  []int{},
			},
		},
		GeneratedAt: now,
	}

	svc := NewReportService(&stubAnalytics{stats: stats}, utils.NewTestLogger())

	data, err := svc.ExportUserReport(context.Background(), testEmail, now)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "Overview")
	assert.Contains(t, f.GetSheetList(), "Subjects")

	user, err := f.GetCellValue("Overview", "B1")
	require.NoError(t, err)
	assert.Equal(t, testEmail, user)

	streak, err := f.GetCellValue("Overview", "B5")
	require.NoError(t, err)
	assert.Equal(t, "3", streak)

	// Subjects are sorted, so History lands on row 2, Mathematics on row 3.
	first, err := f.GetCellValue("Subjects", "A2")
	require.NoError(t, err)
	assert.Equal(t, "History", first)

	weakWeeks, err := f.GetCellValue("Subjects", "E3")
	require.NoError(t, err)
	assert.Equal(t, "2, 5", weakWeeks)

	// A subject with no practiced items reports n/a, never 0.
	noMastery, err := f.GetCellValue("Subjects", "D2")
	require.NoError(t, err)
	assert.Equal(t, "n/a", noMastery)
}

func TestReportService_PropagatesAnalyticsError(t *testing.T) {
	svc := NewReportService(&stubAnalytics{err: ErrUserNotFound}, utils.NewTestLogger())

	data, err := svc.ExportUserReport(context.Background(), testEmail, time.Now())
	assert.Nil(t, data)
	assert.True(t, IsNotFound(err))
}
