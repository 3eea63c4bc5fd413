package notifier

import (
	"log/slog"
	"strings"

	"github.com/amishk599/jobagg/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes new postings to the given logger as structured messages.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each posting via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs each posting. Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(search string, jobs []model.MergedJob) error {
	for _, j := range jobs {
		n.logger.Info("new job",
			"search", search,
			"company", j.Company,
			"title", j.Title,
			"location", j.Location,
			"apply_url", j.ApplyURL,
			"sources", joinSources(j.SourceFrom),
		)
	}
	return nil
}

func joinSources(sources []model.Source) string {
	parts := make([]string, len(sources))
	for i, s := range sources {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}
