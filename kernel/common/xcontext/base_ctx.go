// 定义公共上下文结构，明确定义上下文结构，方便代码阅读
package xcontext

import (
	"context"
	"fmt"
	"time"

	"github.com/xuperchain/xssri/lib/logs"
	"github.com/xuperchain/xssri/lib/timer"
)

type XContext interface {
	context.Context
	GetLog() logs.Logger
	GetTimer() *timer.XTimer
}

// 一次调用从头到尾同步执行，没有超时和取消，context.Context 方法均为空实现
// 同时定义扩展全局需要的公共成员，方便为各对象统一注入和管理
type BaseCtx struct {
	XLog  logs.Logger
	Timer *timer.XTimer
}

// NewBaseCtx checks both members are set
func NewBaseCtx(xlog logs.Logger, tmr *timer.XTimer) (*BaseCtx, error) {
	if xlog == nil || tmr == nil {
		return nil, fmt.Errorf("create base context failed because some param are missing")
	}
	return &BaseCtx{XLog: xlog, Timer: tmr}, nil
}

func (t *BaseCtx) GetLog() logs.Logger {
	return t.XLog
}

func (t *BaseCtx) GetTimer() *timer.XTimer {
	return t.Timer
}

func (t *BaseCtx) Deadline() (deadline time.Time, ok bool) {
	return
}

func (t *BaseCtx) Done() <-chan struct{} {
	return nil
}

func (t *BaseCtx) Err() error {
	return nil
}

func (t *BaseCtx) Value(key interface{}) interface{} {
	return nil
}
