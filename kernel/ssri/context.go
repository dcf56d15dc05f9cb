package ssri

import (
	"github.com/xuperchain/xssri/kernel/cell"
	"github.com/xuperchain/xssri/kernel/common/xcontext"
	"github.com/xuperchain/xssri/kernel/def"
)

// Context is what a Handler sees of the call being served
type Context interface {
	xcontext.XContext

	// Args returns the call parameters in wire form, method path excluded
	Args() [][]byte
	// Arg returns the hex decoded parameter i
	Arg(i int) ([]byte, error)
	// Loader reads the records of the transaction being served
	Loader() cell.Loader
}

type callContext struct {
	xcontext.BaseCtx

	args   [][]byte
	loader cell.Loader
}

func (c *callContext) Args() [][]byte {
	return c.args
}

func (c *callContext) Arg(i int) ([]byte, error) {
	if i < 0 || i >= len(c.args) {
		return nil, def.ErrInvalidMethodArgs.More("missing argument %d", i)
	}
	raw, err := DecodeHexArg(c.args[i])
	if err != nil {
		return nil, def.ErrInvalidMethodArgs.More("argument %d hex:%v", i, err)
	}
	return raw, nil
}

func (c *callContext) Loader() cell.Loader {
	return c.loader
}
