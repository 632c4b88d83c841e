package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// TextExtractor turns an uploaded file into searchable text.
type TextExtractor interface {
	Extract(ctx context.Context, fileName string) (string, error)
}

var keywordSplit = regexp.MustCompile(`[\s_.\-]`)

// SimulatedOCR returns templated text after a fixed delay.
type SimulatedOCR struct {
	Delay time.Duration
}

func (o SimulatedOCR) Extract(ctx context.Context, fileName string) (string, error) {
	if o.Delay > 0 {
		timer := time.NewTimer(o.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return ocrTranscript(fileName), nil
}

func ocrTranscript(fileName string) string {
	keywords := keywordSplit.Split(fileName, -1)
	return fmt.Sprintf("Automatisch generierter Text für %s. Enthält Schlüsselwörter: %s. Dies ist ein simulierter OCR-Scan, der es ermöglicht, den Inhalt der Klausur zu durchsuchen.",
		fileName, strings.Join(keywords, ", "))
}
