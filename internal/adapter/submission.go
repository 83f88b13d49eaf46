package adapter

import (
	"context"
	"html"
	"log/slog"
	"plant-pal/internal/core"
	"plant-pal/internal/core/model"

	"github.com/microcosm-cc/bluemonday"
)

var (
	_ core.SubmissionSink = (*LogSink)(nil)
	_ core.TextSanitizer  = (*HTMLStripper)(nil)
)

// LogSink records dashboard submissions in the log only.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{log: logger}
}

func (s *LogSink) Record(ctx context.Context, by model.User, p model.Plant) error {
	s.log.InfoContext(ctx, "new product submitted",
		slog.String("user_id", by.ID),
		slog.String("user_email", by.Email),
		slog.Int("id", p.ID),
		slog.String("name", p.Name),
		slog.Float64("price", p.Price),
		slog.String("category", string(p.Category)),
		slog.String("difficulty", string(p.Difficulty)),
		slog.String("size", string(p.Size)),
		slog.Int("care_instructions", len(p.CareInstructions)),
		slog.Int("benefits", len(p.Benefits)),
	)
	return nil
}

// HTMLStripper removes all markup from free text.
type HTMLStripper struct {
	policy *bluemonday.Policy
}

func NewHTMLStripper() *HTMLStripper {
	return &HTMLStripper{policy: bluemonday.StrictPolicy()}
}

// Sanitize strips tags. bluemonday escapes entities in what remains, which
// are decoded again since the output is plain text, not HTML.
func (h *HTMLStripper) Sanitize(s string) string {
	return html.UnescapeString(h.policy.Sanitize(s))
}
