package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	TipsUnavailable = "KI-Dienst ist derzeit nicht verfügbar. Bitte prüfen Sie den API-Schlüssel."
	TipsEmpty       = "Keine Tipps verfügbar."
	TipsFailed      = "Fehler beim Laden der Lerntipps."
)

// TextGenerator is an external text-generation backend.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TipsService asks the text generator for study tips. It never returns an
// error: every failure degrades to one of the fixed fallback strings.
type TipsService struct {
	generator TextGenerator
	limiter   *rate.Limiter
	timeout   time.Duration
	logger    *zap.Logger
}

type TipsOption func(*TipsService)

func WithTipsRateLimit(perMinute int) TipsOption {
	return func(s *TipsService) {
		if perMinute > 0 {
			s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
		}
	}
}

func WithTipsTimeout(d time.Duration) TipsOption {
	return func(s *TipsService) { s.timeout = d }
}

// NewTipsService accepts a nil generator, meaning no credential is configured.
func NewTipsService(generator TextGenerator, logger *zap.Logger, opts ...TipsOption) *TipsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &TipsService{generator: generator, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TipsService) StudyTips(ctx context.Context, subject, teacher string) string {
	if s.generator == nil {
		return TipsUnavailable
	}
	if s.limiter != nil && !s.limiter.Allow() {
		s.logger.Warn("Study tips throttled", zap.String("subject", subject))
		return TipsFailed
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	text, err := s.generator.Generate(ctx, tipsPrompt(subject, teacher))
	if err != nil {
		s.logger.Warn("Study tips generation failed",
			zap.String("subject", subject),
			zap.String("teacher", teacher),
			zap.Error(err))
		return TipsFailed
	}
	if strings.TrimSpace(text) == "" {
		return TipsEmpty
	}
	return text
}

func tipsPrompt(subject, teacher string) string {
	return fmt.Sprintf("Erstelle 3 kurze, prägnante Lerntipps und eine mögliche Prüfungsfrage für das Schulfach %q (typischerweise unterrichtet im Stil von %q, falls bekannt, sonst allgemein). Formatiere es als Markdown.", subject, teacher)
}
