package gesture

import (
	"sync/atomic"

	"github.com/gekko3d/morphcloud/cloud/core"
)

// Mailbox is a single-slot hand-off between the landmark producer and the
// render loop. Each Post replaces the whole value; readers never see a mix of two posts.
type Mailbox struct {
	slot atomic.Pointer[core.GestureState]
}

func (m *Mailbox) Post(s core.GestureState) {
	m.slot.Store(&s)
}

// Latest returns the most recently posted state, or prev if nothing was ever posted.
func (m *Mailbox) Latest(prev core.GestureState) core.GestureState {
	if p := m.slot.Load(); p != nil {
		return *p
	}
	return prev
}
