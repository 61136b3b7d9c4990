package toasts

import (
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/toast/internal/core/notify"
)

// snapshotMsg carries a store snapshot into the Bubble Tea update loop.
type snapshotMsg struct {
	snap notify.Snapshot
	box  *mailbox
}

// mailbox holds at most one undelivered snapshot. A newer snapshot replaces
// an older one, so the store's listener never blocks on the UI.
type mailbox struct {
	ch   chan notify.Snapshot
	done chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{
		ch:   make(chan notify.Snapshot, 1),
		done: make(chan struct{}),
	}
}

// put stores snap, replacing any older snapshot not yet taken.
func (m *mailbox) put(snap notify.Snapshot) {
	for {
		select {
		case m.ch <- snap:
			return
		default:
		}
		select {
		case old := <-m.ch:
			if old.Version > snap.Version {
				snap = old
			}
		default:
		}
	}
}

// wait returns a command that blocks until a snapshot arrives or the mailbox
// is closed.
func (m *mailbox) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.done:
			return nil
		default:
		}
		select {
		case snap := <-m.ch:
			return snapshotMsg{snap: snap, box: m}
		case <-m.done:
			return nil
		}
	}
}

func (m *mailbox) close() {
	close(m.done)
}
