package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/studylegend/mastery-service/internal/models"
	"github.com/xuri/excelize/v2"
)

// ReportService exports a user's mastery statistics as an XLSX workbook with
// an overview sheet and a per-subject breakdown.
type ReportService interface {
	ExportUserReport(ctx context.Context, email string, now time.Time) ([]byte, error)
}

type reportService struct {
	analytics AnalyticsService
	logger    *slog.Logger
}

func NewReportService(analytics AnalyticsService, logger *slog.Logger) ReportService {
	return &reportService{
		analytics: analytics,
		logger:    logger,
	}
}

func (s *reportService) ExportUserReport(ctx context.Context, email string, now time.Time) ([]byte, error) {
	stats, err := s.analytics.GetUserStatistics(ctx, email, now)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	if err := s.writeOverviewSheet(f, email, stats); err != nil {
		return nil, err
	}
	if err := s.writeSubjectsSheet(f, stats); err != nil {
		return nil, err
	}

	// Drop the default sheet so the workbook opens on the overview.
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported user report", "email", email, "subjects", len(stats.SubjectBreakdown))

	return buf.Bytes(), nil
}

func (s *reportService) writeOverviewSheet(f *excelize.File, email string, stats *models.UserStatistics) error {
	sheetName := "Overview"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	rows := [][]interface{}{
		{"User", email},
		{"Total Items", stats.TotalItems},
		{"Total Attempts", stats.TotalAttempts},
		{"Average Mastery", masteryCell(stats.AverageMastery)},
		{"Streak Days", stats.StreakDays},
		{"Last Active", timeCell(stats.LastActive)},
		{"Excluded Items", stats.ExcludedItems},
		{"Generated At", stats.GeneratedAt.Format("2006-01-02 15:04:05")},
	}

	for rowIndex, row := range rows {
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+1)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	return nil
}

func (s *reportService) writeSubjectsSheet(f *excelize.File, stats *models.UserStatistics) error {
	sheetName := "Subjects"
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []string{"Subject", "Items", "Attempts", "Average Mastery", "Weak Weeks"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	subjects := make([]string, 0, len(stats.SubjectBreakdown))
	for subject := range stats.SubjectBreakdown {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	for rowIndex, subject := range subjects {
		subjectStats := stats.SubjectBreakdown[subject]
		row := []interface{}{
			subject,
			subjectStats.TotalItems,
			subjectStats.TotalAttempts,
			masteryCell(subjectStats.AverageMastery),
			weakWeeksCell(subjectStats.WeakWeeks),
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	return nil
}

func masteryCell(mastery *float64) interface{} {
	if mastery == nil {
		return "n/a"
	}
	return *mastery
}

func timeCell(t *time.Time) interface{} {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func weakWeeksCell(weeks []int) string {
	if len(weeks) == 0 {
		return ""
	}
	out := ""
	for i, w := range weeks {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d", w)
	}
	return out
}
