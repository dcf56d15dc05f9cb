package xutils

import (
	"os"
	"path/filepath"

	"github.com/xuperchain/xssri/lib/utils"
)

const (
	// 运行根目录环境变量
	XEnvVarRootPath = "XSSRI_ROOT_PATH"
)

// Set environment variable:XSSRI_ROOT_PATH
func GetXRootPath() string {
	rtPath := os.Getenv(XEnvVarRootPath)
	if rtPath != "" && utils.FileIsExist(rtPath) {
		return rtPath
	}

	return ""
}

// 当前bin文件上级目录
func GetCurRootDir() string {
	return filepath.Dir(utils.GetCurExecDir())
}
