package commands

import "time"

// SetClock replaces the clock used to date rendered changelogs.
func (it *ReleaseCommand) SetClock(now func() time.Time) {
	it.now = now
}
