package cell

import (
	"sync"

	"github.com/xuperchain/xssri/kernel/def"
)

// MemLoader keeps cells in memory, indexed by push order per source
type MemLoader struct {
	mutex sync.RWMutex
	cells map[Source][]*Cell
}

func NewMemLoader() *MemLoader {
	return &MemLoader{
		cells: make(map[Source][]*Cell),
	}
}

// Push appends c to source and returns its index
func (m *MemLoader) Push(source Source, c *Cell) uint32 {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.cells[source] = append(m.cells[source], c)
	return uint32(len(m.cells[source]) - 1)
}

func (m *MemLoader) LoadCell(index uint32, source Source) (*Cell, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	cells := m.cells[source]
	if uint64(index) >= uint64(len(cells)) {
		return nil, def.ErrIndexOutOfBound
	}
	return cells[index], nil
}

// Len returns the number of cells of source
func (m *MemLoader) Len(source Source) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.cells[source])
}
