package logs

import (
	"fmt"
	"os"
	"sync"

	"github.com/xuperchain/xssri/lib/utils"
)

// Reserve common key
const (
	CommFieldLogId  = "log_id"
	CommFieldPid    = "pid"
	CommFieldCall   = "call"
	CommFieldSubMod = "s_mod"
)

const (
	DefaultCallDepth = 3
)

// 底层日志库约束接口
type LogDriver interface {
	Error(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
}

// 在日志库之上做一层轻量级封装，方便日志字段组装和日志库替换
type Logger interface {
	GetLogId() string
	SetCommField(key string, value interface{})
	SetInfoField(key string, value interface{})
	Error(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
}

// LogFitter carries log_id and common fields of one call
type LogFitter struct {
	logger    LogDriver
	logId     string
	pid       int
	lck       sync.RWMutex
	comm      []interface{}
	info      []interface{}
	callDepth int
}

func NewLogFitter(logger LogDriver, logId string) (*LogFitter, error) {
	if logger == nil {
		return nil, fmt.Errorf("new logger param error")
	}
	if logId == "" {
		logId = utils.GenLogId()
	}

	return &LogFitter{
		logger:    logger,
		logId:     logId,
		pid:       os.Getpid(),
		comm:      make([]interface{}, 0),
		info:      make([]interface{}, 0),
		callDepth: DefaultCallDepth,
	}, nil
}

func (t *LogFitter) GetLogId() string {
	return t.logId
}

func (t *LogFitter) SetCommField(key string, value interface{}) {
	if key == "" || value == nil {
		return
	}

	t.lck.Lock()
	defer t.lck.Unlock()
	t.comm = append(t.comm, key, value)
}

// SetInfoField add a field carried by the next Info record only
func (t *LogFitter) SetInfoField(key string, value interface{}) {
	if key == "" || value == nil {
		return
	}

	t.lck.Lock()
	defer t.lck.Unlock()
	t.info = append(t.info, key, value)
}

func (t *LogFitter) Error(msg string, ctx ...interface{}) {
	t.logger.Error(msg, t.fmtLogger(false, ctx...)...)
}

func (t *LogFitter) Warn(msg string, ctx ...interface{}) {
	t.logger.Warn(msg, t.fmtLogger(false, ctx...)...)
}

func (t *LogFitter) Info(msg string, ctx ...interface{}) {
	t.logger.Info(msg, t.fmtLogger(true, ctx...)...)
}

func (t *LogFitter) Trace(msg string, ctx ...interface{}) {
	t.logger.Trace(msg, t.fmtLogger(false, ctx...)...)
}

func (t *LogFitter) Debug(msg string, ctx ...interface{}) {
	t.logger.Debug(msg, t.fmtLogger(false, ctx...)...)
}

func (t *LogFitter) fmtLogger(withInfo bool, ctx ...interface{}) []interface{} {
	if len(ctx)%2 != 0 {
		last := ctx[len(ctx)-1]
		ctx = ctx[:len(ctx)-1]
		ctx = append(ctx, "unknow", last)
	}

	fileLine, _ := utils.GetFuncCall(t.callDepth)
	// 保持log_id是第一个写入，方便替换
	out := []interface{}{CommFieldLogId, t.logId, CommFieldCall, fileLine, CommFieldPid, t.pid}
	if len(ctx) > 1 && fmt.Sprintf("%v", ctx[0]) == CommFieldLogId {
		out[1] = ctx[1]
		ctx = ctx[2:]
	}

	t.lck.Lock()
	out = append(out, t.comm...)
	if withInfo {
		out = append(out, t.info...)
		t.info = t.info[:0]
	}
	t.lck.Unlock()

	return append(out, ctx...)
}
