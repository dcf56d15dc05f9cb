package ssri

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/xuperchain/xssri/kernel/cell"
	"github.com/xuperchain/xssri/kernel/common/xcontext"
	"github.com/xuperchain/xssri/kernel/def"
	"github.com/xuperchain/xssri/lib/logs"
	"github.com/xuperchain/xssri/lib/metrics"
	"github.com/xuperchain/xssri/lib/timer"
)

const unknownMethodLabel = "unknown"

// Dispatcher routes calls through an immutable Registry. It keeps no state
// between calls and may be shared by concurrent callers.
type Dispatcher struct {
	registry *Registry
	log      logs.Logger
}

func NewDispatcher(registry *Registry, xlog logs.Logger) (*Dispatcher, error) {
	if registry == nil {
		return nil, fmt.Errorf("new dispatcher failed because registry is nil")
	}
	if xlog == nil {
		xlog = logs.NewNopLogger()
	}
	return &Dispatcher{registry: registry, log: xlog}, nil
}

func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch serves one call. argv[0] is the hex method path, argv[1:] are
// handed to the method. loader may be nil for methods not reading records.
func (d *Dispatcher) Dispatch(argv [][]byte, loader cell.Loader) ([]byte, error) {
	tmr := timer.NewXTimer()
	path, err := decodeMethodPath(argv)
	if err != nil {
		d.log.Warn("decode method path failed", "err", err)
		d.observe(unknownMethodLabel, err, tmr)
		return nil, err
	}
	tmr.Mark("decode")

	label := pathLabel(path)
	if !d.registry.Has(path) {
		label = unknownMethodLabel
	}
	out, err := d.route(path, argv[1:], loader, tmr)
	tmr.Mark("handle")
	d.observe(label, err, tmr)
	if err != nil {
		d.log.Warn("dispatch failed", "method_path", pathLabel(path), "err", err)
		return nil, err
	}

	d.log.Debug("dispatch succ", "method_path", label, "out_size", len(out), "timer", tmr.Print())
	return out, nil
}

func (d *Dispatcher) route(path uint64, args [][]byte, loader cell.Loader, tmr *timer.XTimer) ([]byte, error) {
	base, err := xcontext.NewBaseCtx(d.log, tmr)
	if err != nil {
		return nil, err
	}
	ctx := &callContext{
		BaseCtx: *base,
		args:    args,
		loader:  loader,
	}

	switch path {
	case versionPath:
		return d.registry.version(), nil
	case getMethodsPath:
		offset, err := u64Param(ctx, 0)
		if err != nil {
			return nil, err
		}
		// 缺省limit为0,读到表尾
		limit := uint64(0)
		if len(ctx.args) > 1 {
			limit, err = decodeU64Arg(ctx.args[1])
			if err != nil {
				return nil, err
			}
		}
		return d.registry.getMethods(offset, limit), nil
	case hasMethodsPath:
		query, err := ctx.Arg(0)
		if err != nil {
			return nil, err
		}
		return d.registry.hasMethods(query)
	}

	handler, ok := d.registry.lookup(path)
	if !ok {
		return nil, def.ErrInvalidMethodPath.More("method path %s not found", pathLabel(path))
	}
	return handler(ctx)
}

func (d *Dispatcher) observe(label string, err error, tmr *timer.XTimer) {
	code := strconv.Itoa(int(def.ExitCode(err)))
	metrics.DispatchCounter.WithLabelValues(label, code).Inc()
	metrics.DispatchHistogram.WithLabelValues(label).Observe(tmr.Elapsed().Seconds())
}

func decodeMethodPath(argv [][]byte) (uint64, error) {
	if len(argv) == 0 {
		return 0, def.ErrInvalidMethodPath.More("empty call")
	}
	raw, err := DecodeHexArg(argv[0])
	if err != nil {
		return 0, def.ErrInvalidMethodPath.More("hex:%v", err)
	}
	if len(raw) != def.MethodPathSize {
		return 0, def.ErrInvalidMethodPath.More("method path of %d bytes", len(raw))
	}
	return binary.LittleEndian.Uint64(raw), nil
}

func u64Param(ctx *callContext, i int) (uint64, error) {
	if i >= len(ctx.args) {
		return 0, def.ErrInvalidMethodArgs.More("missing argument %d", i)
	}
	return decodeU64Arg(ctx.args[i])
}

func pathLabel(path uint64) string {
	return fmt.Sprintf("%016x", path)
}
