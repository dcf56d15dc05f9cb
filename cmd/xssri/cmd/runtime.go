package cmd

import (
	"fmt"

	"github.com/xuperchain/xssri/kernel/cell"
	"github.com/xuperchain/xssri/kernel/common/xconfig"
	"github.com/xuperchain/xssri/kernel/entry"
	"github.com/xuperchain/xssri/kernel/udt"
	"github.com/xuperchain/xssri/lib/logs"
	"github.com/xuperchain/xssri/lib/metrics"
	"github.com/xuperchain/xssri/lib/storage/kvdb"
	"github.com/xuperchain/xssri/lib/utils"

	// import要使用的存储引擎驱动
	_ "github.com/xuperchain/xssri/lib/storage/kvdb/leveldb"
)

// runtime is everything a call needs, shared by concurrent calls
type runtime struct {
	envConf *xconfig.EnvConf
	manager *udt.Manager
	program *entry.Program
	db      kvdb.Database
	loader  *cell.KVLoader
}

func newRuntime(envCfgPath string) (*runtime, error) {
	envConf, err := xconfig.LoadEnvConf(envCfgPath)
	if err != nil {
		return nil, err
	}

	// 初始化日志
	err = logs.InitLog(envConf.GenConfFilePath(envConf.LogConf), envConf.GenDirAbsPath(envConf.LogDir))
	if err != nil {
		return nil, fmt.Errorf("init log failed.err:%v", err)
	}
	if envConf.MetricSwitch {
		metrics.RegisterMetrics()
	}

	manager, err := newManager(envConf)
	if err != nil {
		return nil, err
	}
	dispatcher, err := manager.NewDispatcher()
	if err != nil {
		return nil, err
	}
	program, err := entry.NewProgram(dispatcher, &entry.RunnerConf{VmVersion: envConf.VmVersion},
		manager.Ctx.XLog)
	if err != nil {
		return nil, err
	}

	db, loader, err := openStore(envConf)
	if err != nil {
		return nil, err
	}

	return &runtime{
		envConf: envConf,
		manager: manager,
		program: program,
		db:      db,
		loader:  loader,
	}, nil
}

func newManager(envConf *xconfig.EnvConf) (*udt.Manager, error) {
	// 配置文件不存在时使用默认配置
	udtCfg := udt.DefaultConfig()
	fname := envConf.GenConfFilePath(envConf.UdtConf)
	if utils.FileIsExist(fname) {
		cfg, err := udt.LoadConfig(fname)
		if err != nil {
			return nil, err
		}
		udtCfg = cfg
	}

	ctx, err := udt.NewUDTCtx(udtCfg)
	if err != nil {
		return nil, err
	}
	return udt.NewManager(ctx)
}

func openStore(envConf *xconfig.EnvConf) (kvdb.Database, *cell.KVLoader, error) {
	db, err := kvdb.CreateKVInstance(&kvdb.KVParameter{
		DBPath:       envConf.GenDataAbsPath(envConf.StoreDir),
		KVEngineType: kvdb.KVEngineTypeLDB,
		StorageType:  kvdb.StorageTypeSingle,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open cell store failed.err:%v", err)
	}

	loader, err := cell.NewKVLoader(db, envConf.CacheSize)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, loader, nil
}

// call runs one call, the output is nil on failure
func (r *runtime) call(argv [][]byte, vmVersion uint64) ([]byte, int8) {
	env := entry.NewMemEnv(r.loader)
	env.Version = vmVersion
	code := r.program.Run(env, argv)
	out, _ := env.Content()
	return out, code
}

func (r *runtime) Close() {
	r.db.Close()
}
