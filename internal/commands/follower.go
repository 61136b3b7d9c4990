package commands

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/toast/internal/core/notify"
	"github.com/colonyops/toast/internal/core/styles"
	"github.com/colonyops/toast/pkg/iojson"
	"github.com/colonyops/toast/pkg/kv"
)

// followRecord is one line of `toast send --json` output.
type followRecord struct {
	Event   string `json:"event"`
	Version uint64 `json:"version"`
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message,omitempty"`
	Source  string `json:"source,omitempty"`
	TTL     string `json:"ttl,omitempty"`
}

// follower prints the difference between consecutive store snapshots, one
// line per notification added or removed. Once armed with the ids a send
// enqueued, Done closes when every one of them has been removed.
type follower struct {
	mu    sync.Mutex
	out   io.Writer
	lines *iojson.Lines
	color bool

	shown *kv.Store[notify.ID, notify.Notification]
	gone  map[notify.ID]struct{}

	waiting map[notify.ID]struct{} // nil until armed
	done    chan struct{}
	closed  bool
}

func newFollower(out io.Writer, asJSON, color bool) *follower {
	f := &follower{
		out:   out,
		color: color && !asJSON,
		shown: kv.New[notify.ID, notify.Notification](),
		gone:  make(map[notify.ID]struct{}),
		done:  make(chan struct{}),
	}
	if asJSON {
		f.lines = iojson.NewLines(out)
	}
	return f
}

// observe is registered as a store listener.
func (f *follower) observe(snap notify.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, n := range snap.Items {
		if f.shown.SetIfAbsent(n.ID, n) {
			f.emit("added", snap.Version, n)
		}
	}

	live := snap.IDs()
	removed := f.shown.DeleteFunc(func(id notify.ID, _ notify.Notification) bool {
		return !slices.Contains(live, id)
	})
	slices.SortFunc(removed, func(a, b notify.Notification) int {
		return cmp.Compare(a.Seq, b.Seq)
	})
	for _, n := range removed {
		f.emit("removed", snap.Version, n)
		f.gone[n.ID] = struct{}{}
		delete(f.waiting, n.ID)
	}

	f.closeIfDoneLocked()
}

// arm starts waiting for ids to be removed. Ids already removed count as
// done.
func (f *follower) arm(ids []notify.ID) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.waiting = make(map[notify.ID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := f.gone[id]; !ok {
			f.waiting[id] = struct{}{}
		}
	}
	f.closeIfDoneLocked()
}

// Done is closed once every armed id has been removed.
func (f *follower) Done() <-chan struct{} {
	return f.done
}

func (f *follower) closeIfDoneLocked() {
	if f.waiting == nil || len(f.waiting) > 0 || f.closed {
		return
	}
	f.closed = true
	close(f.done)
}

func (f *follower) emit(event string, version uint64, n notify.Notification) {
	if f.lines != nil {
		rec := followRecord{
			Event:   event,
			Version: version,
			ID:      string(n.ID),
			Kind:    string(n.Kind),
			Title:   n.Title,
			Message: n.Message,
			Source:  n.Source,
		}
		if event == "added" && !n.Persistent() {
			rec.TTL = n.AutoDismiss.String()
		}
		if err := f.lines.Write(rec); err != nil {
			log.Debug().Err(err).Str("id", string(n.ID)).Str("event", event).Msg("failed to write follow record")
		}
		return
	}

	if _, err := fmt.Fprintln(f.out, f.formatText(event, n)); err != nil {
		log.Debug().Err(err).Str("id", string(n.ID)).Str("event", event).Msg("failed to write follow line")
	}
}

func (f *follower) formatText(event string, n notify.Notification) string {
	var b strings.Builder

	if event == "added" {
		b.WriteString("+ ")
	} else {
		b.WriteString("- ")
	}
	b.WriteString(f.kindLabel(n.Kind))
	b.WriteString(" ")
	b.WriteString(n.Title)

	if event == "added" {
		if n.Message != "" {
			b.WriteString(": " + n.Message)
		}
		switch {
		case n.Persistent():
			b.WriteString(" (persistent)")
		default:
			b.WriteString(" (" + n.AutoDismiss.String() + ")")
		}
		if n.Source != "" {
			b.WriteString(" [" + n.Source + "]")
		}
	}

	return b.String()
}

func (f *follower) kindLabel(k notify.Kind) string {
	label := fmt.Sprintf("%-7s", k)
	if !f.color {
		return label
	}

	c := styles.ColorInfo
	switch k {
	case notify.KindSuccess:
		c = styles.ColorSuccess
	case notify.KindError:
		c = styles.ColorError
	case notify.KindWarning:
		c = styles.ColorWarning
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(label)
}
