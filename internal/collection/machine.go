// ABOUTME: Status state machine evaluated on every UpdateStatus call
// ABOUTME: A transition table per entity type; states with no outgoing edges are terminal

package collection

// Machine describes the legal status transitions for an entity type.
// A status with no outgoing transitions is terminal: once reached, every
// further transition attempt fails.
type Machine struct {
	// Initial is the status stamped on records created without one.
	Initial string

	// Transitions maps each status to the statuses reachable from it.
	Transitions map[string][]string
}

// Can reports whether from → to is a legal transition.
func (m *Machine) Can(from, to string) bool {
	for _, next := range m.Transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether status has no outgoing transitions.
func (m *Machine) Terminal(status string) bool {
	return len(m.Transitions[status]) == 0
}

// Known reports whether status appears anywhere in the machine.
func (m *Machine) Known(status string) bool {
	if status == m.Initial {
		return true
	}
	if _, ok := m.Transitions[status]; ok {
		return true
	}
	for _, nexts := range m.Transitions {
		for _, next := range nexts {
			if next == status {
				return true
			}
		}
	}
	return false
}
