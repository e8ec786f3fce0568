// Package export renders the progress record as an xlsx workbook so a
// learner can take their stats out of the app.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/klausur-trainer/backend/internal/dataset"
	"github.com/klausur-trainer/backend/internal/domain/progress"
)

const (
	sheetOverview = "Overview"
	sheetTopics   = "Topics"
	sheetExams    = "Exams"
)

// Workbook builds a three-sheet workbook from the record: global
// counters, per-topic stats and the exam history. Topics resolves IDs
// to display names; topics answered but missing from the corpus keep
// their raw ID.
func Workbook(rec *progress.Record, topics []dataset.Topic) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetOverview)
	f.NewSheet(sheetTopics)
	f.NewSheet(sheetExams)

	if err := writeOverview(f, rec); err != nil {
		return nil, err
	}
	if err := writeTopics(f, rec, topics); err != nil {
		return nil, err
	}
	if err := writeExams(f, rec); err != nil {
		return nil, err
	}

	return f, nil
}

func writeOverview(f *excelize.File, rec *progress.Record) error {
	rows := [][]any{
		{"Total answered", rec.TotalAnswered},
		{"Correct answers", rec.CorrectAnswers},
		{"Success rate", fmt.Sprintf("%d%%", progress.Percentage(rec.CorrectAnswers, rec.TotalAnswered))},
		{"Current streak", rec.Streak},
		{"Best streak", rec.MaxStreak},
		{"Last session", formatTime(rec.LastSession)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetOverview, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeTopics(f *excelize.File, rec *progress.Record, topics []dataset.Topic) error {
	names := make(map[string]string, len(topics))
	for _, t := range topics {
		names[t.ID] = t.Name
	}

	header := []any{"Topic", "Answered", "Correct", "Percentage"}
	if err := f.SetSheetRow(sheetTopics, "A1", &header); err != nil {
		return err
	}

	row := 2
	for _, t := range topics {
		ts := rec.TopicStats(t.ID)
		if ts.Answered == 0 {
			continue
		}
		if err := writeTopicRow(f, row, t.Name, ts); err != nil {
			return err
		}
		row++
	}

	// Topics present in the record but unknown to the corpus.
	for id := range rec.TopicProgress {
		if _, known := names[id]; known {
			continue
		}
		ts := rec.TopicStats(id)
		if err := writeTopicRow(f, row, id, ts); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeTopicRow(f *excelize.File, row int, name string, ts progress.TopicStats) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := []any{name, ts.Answered, ts.Correct, ts.Percentage}
	return f.SetSheetRow(sheetTopics, cell, &values)
}

func writeExams(f *excelize.File, rec *progress.Record) error {
	header := []any{"Date", "MC correct", "MC total", "Open answered", "Percentage"}
	if err := f.SetSheetRow(sheetExams, "A1", &header); err != nil {
		return err
	}

	for i, res := range rec.ExamResults {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			res.Date.Format(time.RFC3339),
			res.MCCorrect,
			res.MCTotal,
			res.OpenAnswered,
			res.Percentage,
		}
		if err := f.SetSheetRow(sheetExams, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
