package logs

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuperchain/xssri/lib/logs/config"
)

func TestOpenLog(t *testing.T) {
	tmpdir, err := ioutil.TempDir("", "xssri-log")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpdir)

	conf := config.GetDefLogConf()
	conf.Console = false
	conf.RotateInterval = 0
	log, err := OpenLog(conf, tmpdir)
	if err != nil {
		t.Fatal(err)
	}
	log.Warn("open log test", "key", "value")

	if _, err := os.Stat(filepath.Join(tmpdir, "xssri.log.wf")); err != nil {
		t.Fatalf("wf log file not created.err:%v", err)
	}
}

func TestOpenLogBadLevel(t *testing.T) {
	conf := config.GetDefLogConf()
	conf.Level = "loud"
	if _, err := OpenLog(conf, ""); err == nil {
		t.Fatal("bad level should fail")
	}
}

func BenchmarkLogging(b *testing.B) {
	l := NewNopLogger()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			l.Info("test logging benchmark", "key1", "k1", "key2", "k2")
		}
	})
}
