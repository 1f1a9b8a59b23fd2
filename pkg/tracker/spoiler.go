package tracker

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
)

// SpoilerEntry is one line of the spoiler log.
type SpoilerEntry struct {
	Objective domain.ObjectiveID `json:"objective"`
	Unlock    domain.UnlockID    `json:"unlock"`
	Completed bool               `json:"completed"`
}

// SpoilerLog returns the full bijection sorted by objective, with completion
// markers. It is empty while inactive.
func (t *Tracker) SpoilerLog() []SpoilerEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.active == nil {
		return nil
	}

	s := t.active.session
	pairs := s.bijection.Pairs()
	entries := make([]SpoilerEntry, 0, len(pairs))
	for _, p := range pairs {
		entries = append(entries, SpoilerEntry{
			Objective: p.Objective,
			Unlock:    p.Unlock,
			Completed: s.IsObjectiveCompleted(p.Objective),
		})
	}
	return entries
}

// LogSpoilerLog writes the spoiler log to the tracker's logger at Info.
func (t *Tracker) LogSpoilerLog() {
	entries := t.SpoilerLog()
	if entries == nil {
		t.logger.Info("Spoiler log unavailable: randomizer inactive")
		return
	}

	seed, _ := t.Seed()
	t.logger.Info("Spoiler log", "seed", seed.String(), "entries", len(entries))
	for _, e := range entries {
		t.logger.Info("Spoiler",
			"objective", e.Objective,
			"unlock", e.Unlock,
			"completed", e.Completed,
		)
	}
}

// WriteSpoilerLog renders entries as an aligned text table.
func WriteSpoilerLog(w io.Writer, entries []SpoilerEntry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "DONE\tOBJECTIVE\tUNLOCK"); err != nil {
		return err
	}
	for _, e := range entries {
		mark := " "
		if e.Completed {
			mark = "x"
		}
		if _, err := fmt.Fprintf(tw, "[%s]\t%s\t%s\n", mark, e.Objective, e.Unlock); err != nil {
			return err
		}
	}
	return tw.Flush()
}
