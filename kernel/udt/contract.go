package udt

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/xuperchain/xssri/kernel/def"
	"github.com/xuperchain/xssri/kernel/ssri"
)

// Contract serves the UDT methods of a pausable token. It is read only and
// shared by all calls.
type Contract struct {
	Meta     *Metadata
	Pausable *PausableData

	self          *Byte32
	maxChainDepth uint32
	maxCellDeps   uint32
	contractCtx   *Context
}

func NewContract(ctx *Context) (*Contract, error) {
	cfg := ctx.Config
	meta, err := cfg.Metadata()
	if err != nil {
		return nil, err
	}
	pausable, err := cfg.PausableData()
	if err != nil {
		return nil, err
	}
	self, err := cfg.SelfTypeHash()
	if err != nil {
		return nil, err
	}
	if cfg.MaxCellDeps == 0 {
		return nil, fmt.Errorf("max cell deps must be positive")
	}

	return &Contract{
		Meta:          meta,
		Pausable:      pausable,
		self:          self,
		maxChainDepth: cfg.MaxChainDepth,
		maxCellDeps:   cfg.MaxCellDeps,
		contractCtx:   ctx,
	}, nil
}

// ---------- SSRI ----------

// GetCellDeps returns an empty Byte32Vec, the program needs no extra CellDep
func (c *Contract) GetCellDeps(ctx ssri.Context) ([]byte, error) {
	return EncodeByte32Vec(nil), nil
}

// ---------- UDTMetadata ----------

func (c *Contract) Name(ctx ssri.Context) ([]byte, error) {
	return []byte(c.Meta.Name), nil
}

func (c *Contract) Symbol(ctx ssri.Context) ([]byte, error) {
	return []byte(c.Meta.Symbol), nil
}

func (c *Contract) Decimals(ctx ssri.Context) ([]byte, error) {
	return []byte{c.Meta.Decimals}, nil
}

// GetExtensionData takes the registry key as a hex encoded UTF-8 string
func (c *Contract) GetExtensionData(ctx ssri.Context) ([]byte, error) {
	key, err := ctx.Arg(0)
	if err != nil {
		return nil, err
	}
	data, ok := c.Meta.Extension[string(key)]
	if !ok {
		return nil, def.ErrRecordNotFound.More("extension data %q", key)
	}
	return append([]byte{}, data...), nil
}

// ---------- UDT ----------

// Balance needs the cell being queried, which a code level call does not have
func (c *Contract) Balance(ctx ssri.Context) ([]byte, error) {
	return nil, def.ErrNotImplemented.More(Balance)
}

func (c *Contract) Mint(ctx ssri.Context) ([]byte, error) {
	return nil, def.ErrNotImplemented.More(Mint)
}

// ---------- UDTPausable ----------

func (c *Contract) Pause(ctx ssri.Context) ([]byte, error) {
	return nil, def.ErrNotImplemented.More(Pause)
}

func (c *Contract) Unpause(ctx ssri.Context) ([]byte, error) {
	return nil, def.ErrNotImplemented.More(Unpause)
}

// IsPaused takes a Byte32Vec of lock hashes and answers [1] if any is paused
func (c *Contract) IsPaused(ctx ssri.Context) ([]byte, error) {
	raw, err := ctx.Arg(0)
	if err != nil {
		return nil, err
	}
	lockHashes, err := DecodeByte32Vec(raw)
	if err != nil {
		return nil, def.ErrInvalidMethodArgs.More("lock hashes:%v", err)
	}

	paused, err := c.traverser(ctx).IsPaused(lockHashes)
	if err != nil {
		return nil, errors.WithMessage(err, IsPaused)
	}
	if paused {
		return []byte{1}, nil
	}
	return []byte{0}, nil
}

// EnumeratePaused returns the Byte32Vec of every paused lock hash
func (c *Contract) EnumeratePaused(ctx ssri.Context) ([]byte, error) {
	hashes, err := c.traverser(ctx).EnumeratePaused()
	if err != nil {
		return nil, errors.WithMessage(err, EnumeratePaused)
	}
	return EncodeByte32Vec(hashes), nil
}

func (c *Contract) traverser(ctx ssri.Context) *Traverser {
	return NewTraverser(c.Pausable, c.self, ctx.Loader(), c.maxChainDepth,
		c.maxCellDeps, ctx.GetLog())
}
