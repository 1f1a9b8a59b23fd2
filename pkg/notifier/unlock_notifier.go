package notifier

import (
	"github.com/unlock-randomizer/randomizer-common/pkg/domain"
)

// UnlockNotifier is told about every unlock granted during live play.
//
// NotifyUnlock is called once per successful grant, after the tracker state
// has been updated, and never for emulated grants. Implementations run on the
// caller's goroutine and must not call back into the tracker.
type UnlockNotifier interface {
	// NotifyUnlock reports that completing objective granted unlock.
	// unlock may differ from the unlock originally bound to objective when a
	// swap was needed.
	NotifyUnlock(objective domain.Objective, unlock domain.Unlock)
}

// NotifierFunc adapts a plain function to UnlockNotifier.
type NotifierFunc func(objective domain.Objective, unlock domain.Unlock)

// NotifyUnlock calls f.
func (f NotifierFunc) NotifyUnlock(objective domain.Objective, unlock domain.Unlock) {
	f(objective, unlock)
}

// Multi fans one notification out to several notifiers, in order.
type Multi []UnlockNotifier

// NotifyUnlock calls every notifier in turn.
func (m Multi) NotifyUnlock(objective domain.Objective, unlock domain.Unlock) {
	for _, n := range m {
		n.NotifyUnlock(objective, unlock)
	}
}

// Nop ignores every notification.
type Nop struct{}

// NotifyUnlock does nothing.
func (Nop) NotifyUnlock(domain.Objective, domain.Unlock) {}
