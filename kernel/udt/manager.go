package udt

import (
	"errors"

	"github.com/xuperchain/xssri/kernel/ssri"
)

type Manager struct {
	Ctx      *Context
	Contract *Contract
	Registry *ssri.Registry
}

// NewManager builds the contract and its method registry
func NewManager(ctx *Context) (*Manager, error) {
	if ctx == nil || ctx.Config == nil {
		return nil, errors.New("udt contract ctx set error")
	}

	x, err := NewContract(ctx)
	if err != nil {
		return nil, err
	}

	// 声明顺序即方法表顺序
	methods := []ssri.Method{
		{Name: GetCellDeps, Handler: x.GetCellDeps},

		// UDTMetadata
		{Name: Name, Handler: x.Name},
		{Name: Symbol, Handler: x.Symbol},
		{Name: Decimals, Handler: x.Decimals},

		{Name: Balance, Handler: x.Balance},
		{Name: GetExtensionData, Handler: x.GetExtensionData},

		// UDTPausable
		{Name: IsPaused, Handler: x.IsPaused},
		{Name: EnumeratePaused, Handler: x.EnumeratePaused},

		// 交易构造类
		{Name: Mint, Handler: x.Mint},
		{Name: Pause, Handler: x.Pause},
		{Name: Unpause, Handler: x.Unpause},
	}

	registry, err := ssri.NewRegistry(methods...)
	if err != nil {
		return nil, err
	}

	ctx.XLog.Debug("udt registry built", "methods", registry.Len(), "pause_list", len(x.Pausable.PauseList))
	return &Manager{
		Ctx:      ctx,
		Contract: x,
		Registry: registry,
	}, nil
}

// NewDispatcher returns a dispatcher over the udt registry
func (m *Manager) NewDispatcher() (*ssri.Dispatcher, error) {
	return ssri.NewDispatcher(m.Registry, m.Ctx.XLog)
}
