package entry

import (
	"github.com/xuperchain/xssri/kernel/cell"
	"github.com/xuperchain/xssri/kernel/def"
)

// MemEnv keeps the call output in memory
type MemEnv struct {
	Version uint64
	Cells   cell.Loader
	// 0 means unlimited
	MaxContent int

	content []byte
	written bool
}

func NewMemEnv(cells cell.Loader) *MemEnv {
	return &MemEnv{
		Version: def.VmVersionAny,
		Cells:   cells,
	}
}

func (e *MemEnv) VMVersion() uint64 {
	return e.Version
}

func (e *MemEnv) SetContent(out []byte) error {
	if e.MaxContent > 0 && len(out) > e.MaxContent {
		return def.ErrLengthNotEnough.More("content of %d bytes over %d", len(out), e.MaxContent)
	}
	e.content = append([]byte{}, out...)
	e.written = true
	return nil
}

func (e *MemEnv) Loader() cell.Loader {
	return e.Cells
}

// Content returns the output and whether SetContent was called
func (e *MemEnv) Content() ([]byte, bool) {
	return e.content, e.written
}
