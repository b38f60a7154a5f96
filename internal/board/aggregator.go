package board

import (
	"sort"

	"github.com/Unknowkubbrother/Project-SmartQ/internal/types"
)

// CardSize is the layout bucket for a visible service card. Pure
// presentation policy: the most recently called service always surfaces
// first, layout only decides how tall each card may be.
type CardSize string

const (
	CardSingle CardSize = "single" // one visible service, large card
	CardHalf   CardSize = "half"   // two visible services
	CardFill   CardSize = "fill"   // three or more, cards share the column
)

// Entry is one service on the display board.
type Entry struct {
	State types.ServiceState `json:"state"`
	Next  *types.QueueItem   `json:"next"`
}

// Visible returns the services that are actively calling, ordered most
// recently called first with ties broken by service name. Services without
// a current ticket are excluded; the client never predicts or re-orders
// beyond this.
func Visible(states []types.ServiceState) []Entry {
	visible := make([]Entry, 0, len(states))
	for _, st := range states {
		if st.Current == nil {
			continue
		}
		visible = append(visible, Entry{State: st, Next: st.Next()})
	}

	sort.Slice(visible, func(i, j int) bool {
		a, b := visible[i].State, visible[j].State
		if !a.LastCalledAt.Equal(b.LastCalledAt) {
			return a.LastCalledAt.After(b.LastCalledAt)
		}
		return a.Name < b.Name
	})

	return visible
}

// SizeFor maps the visible-count to a card size bucket.
func SizeFor(visibleCount int) CardSize {
	switch {
	case visibleCount <= 1:
		return CardSingle
	case visibleCount == 2:
		return CardHalf
	default:
		return CardFill
	}
}

// Snapshot is the board state served over the control API.
type Snapshot struct {
	Visible  []Entry  `json:"visible"`
	CardSize CardSize `json:"cardSize"`
}

// BuildSnapshot assembles the display board view from all service states.
func BuildSnapshot(states []types.ServiceState) Snapshot {
	visible := Visible(states)
	return Snapshot{
		Visible:  visible,
		CardSize: SizeFor(len(visible)),
	}
}
