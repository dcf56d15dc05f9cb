package xutils

import (
	"io/ioutil"
	"os"
	"testing"
)

func TestGetXRootPath(t *testing.T) {
	dir, err := ioutil.TempDir("", "xssri-root")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	os.Setenv(XEnvVarRootPath, dir)
	defer os.Unsetenv(XEnvVarRootPath)
	if GetXRootPath() != dir {
		t.Fatalf("root path not from env:%s", GetXRootPath())
	}

	os.Setenv(XEnvVarRootPath, dir+"/missing")
	if GetXRootPath() != "" {
		t.Fatal("missing root path should be ignored")
	}
	if GetCurRootDir() == "" {
		t.Fatal("empty current root dir")
	}
}
