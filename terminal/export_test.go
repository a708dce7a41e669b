package terminal

import (
	"github.com/gdamore/tcell/v2"

	"sadt/store"
)

// ReloadEvent wraps a watcher result the way Run posts it.
func ReloadEvent(r store.Reload) tcell.Event {
	return tcell.NewEventInterrupt(reloadEvent{r})
}
