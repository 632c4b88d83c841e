package services

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// ExportInsightsCSV renders one row per exam; unrated exams leave the quality column empty.
func ExportInsightsCSV(rows []ExamInsight) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"exam_id", "subject", "teacher", "uploader", "views", "downloads", "ratings", "avg_quality", "difficulty"})
	for _, r := range rows {
		quality := ""
		if r.Rating.AverageQuality != nil {
			quality = strconv.FormatFloat(*r.Rating.AverageQuality, 'f', 1, 64)
		}
		rec := []string{
			r.ID,
			r.Subject,
			r.Teacher,
			r.Uploader,
			strconv.Itoa(r.Views),
			strconv.Itoa(r.Downloads),
			strconv.Itoa(r.Rating.Count),
			quality,
			r.Rating.DifficultyLabel,
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
