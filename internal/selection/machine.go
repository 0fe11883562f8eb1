package selection

import (
	"sync"

	"github.com/MrSnakeDoc/skipsel/internal/models"
)

// Callbacks are notification sinks for the hosting page. Nil fields are skipped.
type Callbacks struct {
	OnSkipSelected func(skip *models.Skip)
	OnBack         func()
	OnContinue     func(skip models.Skip)
}

// Machine tracks the single selected skip, if any. It keeps the pointer it was
// given so the selection is the instance currently displayed, not a copy.
type Machine struct {
	mu       sync.Mutex
	selected *models.Skip
	cb       Callbacks
}

func New(cb Callbacks) *Machine {
	return &Machine{cb: cb}
}

// Select selects skip, or clears the selection when skip has the same ID as
// the current one. Nil is ignored.
func (m *Machine) Select(skip *models.Skip) {
	if skip == nil {
		return
	}

	m.mu.Lock()
	if m.selected != nil && m.selected.ID == skip.ID {
		m.selected = nil
	} else {
		m.selected = skip
	}
	current := m.selected
	m.mu.Unlock()

	if m.cb.OnSkipSelected != nil {
		m.cb.OnSkipSelected(current)
	}
}

// Continue hands the selected skip to OnContinue. Without a selection it does
// nothing and reports false.
func (m *Machine) Continue() bool {
	m.mu.Lock()
	current := m.selected
	m.mu.Unlock()

	if current == nil {
		return false
	}
	if m.cb.OnContinue != nil {
		m.cb.OnContinue(*current)
	}
	return true
}

// Clear drops the selection, notifying OnSkipSelected with nil if there was one.
func (m *Machine) Clear() {
	m.mu.Lock()
	had := m.selected != nil
	m.selected = nil
	m.mu.Unlock()

	if had && m.cb.OnSkipSelected != nil {
		m.cb.OnSkipSelected(nil)
	}
}

func (m *Machine) Back() {
	if m.cb.OnBack != nil {
		m.cb.OnBack()
	}
}

func (m *Machine) Selected() (*models.Skip, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected, m.selected != nil
}

func (m *Machine) IsSelected(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected != nil && m.selected.ID == id
}

// Rebind points the selection at the instance with the same ID in skips, or
// drops it silently when that ID is no longer listed. Used after a refetch.
func (m *Machine) Rebind(skips []models.Skip) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.selected == nil {
		return
	}
	for i := range skips {
		if skips[i].ID == m.selected.ID {
			m.selected = &skips[i]
			return
		}
	}
	m.selected = nil
}
