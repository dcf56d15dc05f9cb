package logs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuperchain/xssri/lib/logs/config"
	"github.com/xuperchain/xssri/lib/utils"

	log "github.com/xuperchain/log15"
)

var (
	logHandle LogDriver
	once      sync.Once
	onceErr   error
)

// InitLog open the process wide log driver, later calls are no-op
func InitLog(cfgFile, logDir string) error {
	once.Do(func() {
		lc, err := config.LoadLogConf(cfgFile)
		if err != nil {
			// 配置文件不存在时使用默认配置
			lc = config.GetDefLogConf()
		}

		lg, err := OpenLog(lc, logDir)
		if err != nil {
			onceErr = err
			return
		}
		logHandle = lg
	})

	return onceErr
}

// OpenLog create and open log stream using LogConf
func OpenLog(lc *config.LogConf, logDir string) (LogDriver, error) {
	if lc == nil {
		return nil, fmt.Errorf("log config is nil")
	}

	lfmt := log.LogfmtFormat()
	switch lc.Fmt {
	case "json":
		lfmt = log.JsonFormat()
	}

	xlog := log.New("module", lc.Module)
	lvLevel, err := log.LvlFromString(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("log level error.err:%v", err)
	}
	// set lowest level as level limit, this may improve performance
	xlog.SetLevelLimit(lvLevel)

	handlers := make([]log.Handler, 0, 3)
	if lc.Console {
		handlers = append(handlers, log.LvlFilterHandler(lvLevel, log.StreamHandler(os.Stderr, lfmt)))
	}
	if lc.File {
		nmfileh, wffileh, err := openFileHandlers(lc, logDir, lfmt, lvLevel)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, nmfileh, wffileh)
	}
	if len(handlers) == 0 {
		xlog.SetHandler(log.DiscardHandler())
		return xlog, nil
	}

	xlog.SetHandler(log.SyncHandler(log.MultiHandler(handlers...)))
	return xlog, nil
}

func openFileHandlers(lc *config.LogConf, logDir string, lfmt log.Format,
	lvLevel log.Lvl) (log.Handler, log.Handler, error) {
	if logDir == "" {
		return nil, nil, fmt.Errorf("log dir is empty")
	}
	if !utils.FileIsExist(logDir) {
		if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
			return nil, nil, fmt.Errorf("create log dir failed.err:%v", err)
		}
	}

	infoFile := filepath.Join(logDir, lc.Filename+".log")
	wfFile := filepath.Join(logDir, lc.Filename+".log.wf")

	// RotateFileHandler only valid if `RotateInterval` and `RotateBackups` greater than 0
	var (
		nmHandler log.Handler
		wfHandler log.Handler
	)
	if lc.RotateInterval > 0 && lc.RotateBackups > 0 {
		nmHandler = log.Must.RotateFileHandler(infoFile, lfmt, lc.RotateInterval, lc.RotateBackups)
		wfHandler = log.Must.RotateFileHandler(wfFile, lfmt, lc.RotateInterval, lc.RotateBackups)
	} else {
		nmHandler = log.Must.FileHandler(infoFile, lfmt)
		wfHandler = log.Must.FileHandler(wfFile, lfmt)
	}

	if lc.Async {
		nmHandler = log.BufferedHandler(lc.BufSize, nmHandler)
		wfHandler = log.BufferedHandler(lc.BufSize, wfHandler)
	}

	// prints log level between `lvLevel` to Info to common log
	nmfileh := log.BoundLvlFilterHandler(lvLevel, log.LvlError, nmHandler)
	// prints log level greater or equal to Warn to wf log
	wffileh := log.LvlFilterHandler(log.LvlWarn, wfHandler)
	return nmfileh, wffileh, nil
}

// NewNopDriver returns a driver dropping every record
func NewNopDriver() LogDriver {
	xlog := log.New()
	xlog.SetHandler(log.DiscardHandler())
	return xlog
}

// NewLogger returns a fitter over the process driver, or over a nop driver
// when InitLog has not been called.
func NewLogger(logId, subMod string) (*LogFitter, error) {
	driver := logHandle
	if driver == nil {
		driver = NewNopDriver()
	}

	lf, err := NewLogFitter(driver, logId)
	if err != nil {
		return nil, err
	}
	if subMod != "" {
		lf.SetCommField(CommFieldSubMod, subMod)
	}
	return lf, nil
}

// NewNopLogger is NewLogger over a nop driver, handy for tests
func NewNopLogger() Logger {
	lf, _ := NewLogFitter(NewNopDriver(), "")
	return lf
}
