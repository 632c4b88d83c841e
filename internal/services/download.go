package services

import "github.com/soaringjerry/klausurarchiv/internal/models"

// DownloadInfo is what the client needs to start a file save.
type DownloadInfo struct {
	FileName    string `json:"file_name"`
	FileContent string `json:"file_content"`
}

// DownloadFileName uses the stored file name, else subject_date with an extension by file type.
func DownloadFileName(e models.Exam) string {
	if e.FileName != "" {
		return e.FileName
	}
	ext := ".jpg"
	if e.FileType == models.FileTypePDF {
		ext = ".pdf"
	}
	return e.Subject + "_" + e.Date + ext
}
