package udt

import (
	"github.com/xuperchain/xssri/kernel/def"
)

const (
	UDTContract = "UDT"

	GetCellDeps      = "SSRI.get_cell_deps"
	Name             = "UDTMetadata.name"
	Symbol           = "UDTMetadata.symbol"
	Decimals         = "UDTMetadata.decimals"
	Balance          = "UDT.balance"
	GetExtensionData = "UDTMetadata.get_extension_data"
	IsPaused         = "UDTPausable.is_paused"
	EnumeratePaused  = "UDTPausable.enumerate_paused"

	// 需要构造交易，此处只声明
	Mint    = "UDTExtended.mint"
	Pause   = "UDTPausable.pause"
	Unpause = "UDTPausable.unpause"
)

// Byte32 is a lock hash or a type hash
type Byte32 [def.Byte32Size]byte

// Metadata describes the token
type Metadata struct {
	Name     string
	Symbol   string
	Decimals uint8
	// registry key => extension data
	Extension map[string][]byte
}

// PausableData is one record of the pause list chain. NextTypeHash is nil at
// the end of the chain, else the type hash of the record holding the next part.
type PausableData struct {
	PauseList    []Byte32
	NextTypeHash *Byte32
}

// Contains reports whether any of hashes is in the pause list
func (p *PausableData) Contains(hashes []Byte32) bool {
	for _, h := range hashes {
		for _, paused := range p.PauseList {
			if h == paused {
				return true
			}
		}
	}
	return false
}
