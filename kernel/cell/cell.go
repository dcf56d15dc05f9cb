// Package cell models the records a script can read from its transaction.
package cell

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuperchain/xssri/kernel/def"
)

// Source selects which record collection of the transaction is read
type Source uint64

const (
	SourceInput       Source = 1
	SourceOutput      Source = 2
	SourceCellDep     Source = 3
	SourceHeaderDep   Source = 4
	SourceGroupInput  Source = 0x0100000000000001
	SourceGroupOutput Source = 0x0100000000000002
)

var sourceNames = map[Source]string{
	SourceInput:       "input",
	SourceOutput:      "output",
	SourceCellDep:     "celldep",
	SourceHeaderDep:   "headerdep",
	SourceGroupInput:  "groupinput",
	SourceGroupOutput: "groupoutput",
}

func (s Source) String() string {
	if name, ok := sourceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("source(%#x)", uint64(s))
}

// ParseSource is the inverse of Source.String
func ParseSource(name string) (Source, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range sourceNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown cell source:%s", name)
}

// Cell is one record: an optional type hash and its data
type Cell struct {
	// nil when the cell has no type script
	TypeHash []byte
	Data     []byte
}

func (c *Cell) HasType() bool {
	return len(c.TypeHash) == def.Byte32Size
}

// Loader reads cells by index. LoadCell fails with def.ErrIndexOutOfBound
// once index reaches the number of cells of source.
type Loader interface {
	LoadCell(index uint32, source Source) (*Cell, error)
}

// FindByTypeHash scans source by increasing index for the first cell whose
// type hash equals typeHash. def.ErrRecordNotFound means the source was
// exhausted without a match. At most maxScan cells are scanned; when more
// cells remain past the cap the scan fails with def.ErrChainTooLong instead.
// A zero maxScan means the source length is the only bound.
func FindByTypeHash(l Loader, source Source, typeHash []byte, maxScan uint32) (uint32, *Cell, error) {
	for index := uint32(0); ; index++ {
		c, err := l.LoadCell(index, source)
		if errors.Is(err, def.ErrIndexOutOfBound) {
			break
		}
		if err != nil {
			return 0, nil, err
		}
		if maxScan != 0 && index >= maxScan {
			return 0, nil, def.ErrChainTooLong.More("cell dep scan over %d", maxScan)
		}
		if c.HasType() && bytes.Equal(c.TypeHash, typeHash) {
			return index, c, nil
		}
		if index == ^uint32(0) {
			break
		}
	}

	return 0, nil, def.ErrRecordNotFound.More("type hash %x in %s", typeHash, source)
}
