package notifier

import (
	"log/slog"

	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
)

// LogUnlockNotifier writes every grant to a structured logger.
// It needs no setup and is the default for tooling and local runs.
// For tests, use MockUnlockNotifier instead.
type LogUnlockNotifier struct {
	logger *slog.Logger
}

// NewLogUnlockNotifier creates a notifier that logs at Info.
func NewLogUnlockNotifier(logger *slog.Logger) *LogUnlockNotifier {
	return &LogUnlockNotifier{logger: logger}
}

// NotifyUnlock logs the grant.
func (n *LogUnlockNotifier) NotifyUnlock(objective domain.Objective, unlock domain.Unlock) {
	n.logger.Info("Unlock granted",
		"objective", objective.ID(),
		"objective_text", objective.String(),
		"unlock", unlock.ID(),
		"unlock_text", unlock.String(),
	)
}
