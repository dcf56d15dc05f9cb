package udt

import (
	"fmt"

	"github.com/xuperchain/xssri/kernel/common/xcontext"
	"github.com/xuperchain/xssri/lib/logs"
	"github.com/xuperchain/xssri/lib/timer"
)

type Context struct {
	// 基础上下文
	xcontext.BaseCtx

	Config *Config
}

func NewUDTCtx(cfg *Config) (*Context, error) {
	if cfg == nil {
		return nil, fmt.Errorf("new udt ctx failed because param error")
	}

	log, err := logs.NewLogger("", UDTContract)
	if err != nil {
		return nil, fmt.Errorf("new udt ctx failed because new logger error. err:%v", err)
	}

	base, err := xcontext.NewBaseCtx(log, timer.NewXTimer())
	if err != nil {
		return nil, fmt.Errorf("new udt ctx failed because new base ctx error. err:%v", err)
	}
	ctx := new(Context)
	ctx.BaseCtx = *base
	ctx.Config = cfg

	return ctx, nil
}
