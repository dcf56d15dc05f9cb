package config

import (
	"path/filepath"
	"testing"

	"github.com/xuperchain/xssri/lib/utils"
)

func TestGetDefLogConf(t *testing.T) {
	cfg := GetDefLogConf()
	if cfg.Module != "xssri" || cfg.Fmt != "logfmt" || !cfg.Console {
		t.Fatalf("unexpected default log conf:%+v", cfg)
	}
}

func TestLoadLogConf(t *testing.T) {
	cfg, err := LoadLogConf(getConfFile())
	if err != nil {
		t.Fatalf("load log config failed.err:%v", err)
	}

	if cfg.Fmt != "json" || cfg.Level != "debug" || cfg.File {
		t.Fatalf("log conf not loaded from file:%+v", cfg)
	}
	if cfg.RotateInterval != 30 || cfg.BufSize != 4096 {
		t.Fatalf("log conf not loaded from file:%+v", cfg)
	}
}

func TestLoadLogConfNotExist(t *testing.T) {
	if _, err := LoadLogConf(filepath.Join(utils.GetCurFileDir(), "conf/none.yaml")); err == nil {
		t.Fatal("load not exist config should fail")
	}
}

func getConfFile() string {
	dir := utils.GetCurFileDir()
	return filepath.Join(dir, "conf/log.yaml")
}
