// Package entry runs one script invocation: checks the environment, dispatches
// the call and hands the output back to the host.
package entry

import (
	"fmt"

	"github.com/xuperchain/xssri/kernel/cell"
	"github.com/xuperchain/xssri/kernel/def"
	"github.com/xuperchain/xssri/kernel/ssri"
	"github.com/xuperchain/xssri/lib/logs"
)

// Env is the host side of an invocation
type Env interface {
	// VMVersion of the running vm
	VMVersion() uint64
	// SetContent hands the call output to the caller
	SetContent(out []byte) error
	// Loader reads the records of the transaction
	Loader() cell.Loader
}

type RunnerConf struct {
	// only calls from this vm version are served
	VmVersion uint64
	// called on empty argv, nil means nothing to do
	Fallback func(env Env) error
}

func DefaultRunnerConf() *RunnerConf {
	return &RunnerConf{VmVersion: def.VmVersionAny}
}

type Program struct {
	dispatcher *ssri.Dispatcher
	conf       *RunnerConf
	log        logs.Logger
}

func NewProgram(dispatcher *ssri.Dispatcher, conf *RunnerConf, xlog logs.Logger) (*Program, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("new program failed because dispatcher is nil")
	}
	if conf == nil {
		conf = DefaultRunnerConf()
	}
	if xlog == nil {
		xlog = logs.NewNopLogger()
	}
	return &Program{dispatcher: dispatcher, conf: conf, log: xlog}, nil
}

// Run serves argv and returns the exit code, 0 on success. Nothing is
// written to env on failure.
func (p *Program) Run(env Env, argv [][]byte) int8 {
	err := p.run(env, argv)
	if err != nil {
		p.log.Warn("program exit with error", "code", def.ExitCode(err), "err", err)
	}
	return def.ExitCode(err)
}

func (p *Program) run(env Env, argv [][]byte) error {
	if len(argv) == 0 {
		if p.conf.Fallback == nil {
			return nil
		}
		return p.conf.Fallback(env)
	}
	if v := env.VMVersion(); v != p.conf.VmVersion {
		return def.ErrEnvironmentMismatch.More("vm version %d", v)
	}

	out, err := p.dispatcher.Dispatch(argv, env.Loader())
	if err != nil {
		return err
	}
	if err := env.SetContent(out); err != nil {
		return def.CastErrorDefault(err, def.ErrItemMissing)
	}
	return nil
}
