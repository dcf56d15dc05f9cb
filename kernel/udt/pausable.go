package udt

import (
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/xuperchain/xssri/kernel/cell"
	"github.com/xuperchain/xssri/kernel/def"
	"github.com/xuperchain/xssri/lib/logs"
	"github.com/xuperchain/xssri/lib/metrics"
	"github.com/xuperchain/xssri/lib/utils"
)

const (
	opIsPaused        = "is_paused"
	opEnumeratePaused = "enumerate_paused"
)

// Traverser walks the pause list chain: the local record, then every record
// found in CellDep by the type hash its predecessor points to.
type Traverser struct {
	local    *PausableData
	self     *Byte32
	loader   cell.Loader
	maxDepth uint32
	maxScan  uint32
	log      logs.Logger
}

func NewTraverser(local *PausableData, self *Byte32, loader cell.Loader,
	maxDepth, maxScan uint32, xlog logs.Logger) *Traverser {
	if xlog == nil {
		xlog = logs.NewNopLogger()
	}
	return &Traverser{
		local:    local,
		self:     self,
		loader:   loader,
		maxDepth: maxDepth,
		maxScan:  maxScan,
		log:      xlog,
	}
}

// IsPaused reports whether any of lockHashes is paused by a record of the chain.
// A next pointer resolving to no record ends the chain; a CellDep scan
// stopped by its cap fails with def.ErrChainTooLong.
func (t *Traverser) IsPaused(lockHashes []Byte32) (bool, error) {
	if len(lockHashes) == 0 {
		return false, nil
	}

	paused := false
	err := t.walk(opIsPaused, func(data *PausableData) bool {
		paused = data.Contains(lockHashes)
		return paused
	})
	if err != nil {
		return false, err
	}
	return paused, nil
}

// EnumeratePaused aggregates the pause lists of the chain in visiting order,
// keeping the first occurrence of each lock hash.
func (t *Traverser) EnumeratePaused() ([]Byte32, error) {
	out := make([]Byte32, 0, len(t.local.PauseList))
	seen := make(map[Byte32]struct{})
	err := t.walk(opEnumeratePaused, func(data *PausableData) bool {
		for _, h := range data.PauseList {
			if _, ok := seen[h]; ok {
				continue
			}
			seen[h] = struct{}{}
			out = append(out, h)
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// walk visits the records of the chain until visit returns true or the chain ends
func (t *Traverser) walk(op string, visit func(data *PausableData) bool) error {
	visited := make(map[Byte32]struct{})
	if t.self != nil {
		visited[*t.self] = struct{}{}
	}

	depth := uint32(0)
	defer func() {
		metrics.ChainDepthHistogram.WithLabelValues(op).Observe(float64(depth + 1))
	}()

	cur := t.local
	for {
		if visit(cur) {
			return nil
		}
		if cur.NextTypeHash == nil {
			return nil
		}

		next := *cur.NextTypeHash
		if _, ok := visited[next]; ok {
			return def.ErrMalformedChain.More("type hash %s visited twice", utils.F(next[:]))
		}
		visited[next] = struct{}{}
		if t.loader == nil {
			return def.ErrItemMissing.More("no record loader")
		}

		index, c, err := cell.FindByTypeHash(t.loader, cell.SourceCellDep, next[:], t.maxScan)
		if errors.Is(err, def.ErrRecordNotFound) {
			t.log.Trace("pause list chain ends on unresolved record", "op", op,
				"type_hash", utils.F(next[:]), "depth", depth)
			return nil
		}
		if err != nil {
			return pkgerrors.WithMessage(err, "load pause list record")
		}
		// 只对实际存在的记录计深度
		if depth >= t.maxDepth {
			return def.ErrChainTooLong.More("more than %d records", t.maxDepth)
		}

		data, err := DecodePausableData(c.Data)
		if err != nil {
			return pkgerrors.WithMessagef(err, "decode pause list record %d", index)
		}
		depth++
		t.log.Trace("follow pause list record", "op", op, "type_hash", utils.F(next[:]),
			"index", index, "depth", depth, "size", len(data.PauseList))
		cur = data
	}
}
