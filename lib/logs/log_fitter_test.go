package logs

import (
	"fmt"
	"sync"
	"testing"
)

type recordDriver struct {
	mu      sync.Mutex
	records [][]interface{}
}

func (d *recordDriver) add(msg string, ctx ...interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = append(d.records, append([]interface{}{msg}, ctx...))
}

func (d *recordDriver) Error(msg string, ctx ...interface{}) { d.add(msg, ctx...) }
func (d *recordDriver) Warn(msg string, ctx ...interface{})  { d.add(msg, ctx...) }
func (d *recordDriver) Info(msg string, ctx ...interface{})  { d.add(msg, ctx...) }
func (d *recordDriver) Trace(msg string, ctx ...interface{}) { d.add(msg, ctx...) }
func (d *recordDriver) Debug(msg string, ctx ...interface{}) { d.add(msg, ctx...) }

func TestInfo(t *testing.T) {
	drv := &recordDriver{}
	log, err := NewLogFitter(drv, "")
	if err != nil {
		t.Fatalf("new logger fail.err:%v", err)
	}

	wg := &sync.WaitGroup{}
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(num int) {
			defer wg.Done()
			log.Info("info1", "a", 1, "num", num)
			log.Debug("test", "a", 1, "num", num)
			log.SetInfoField("key1", num)
			log.Trace("test", "a", 1, "num", num)
		}(i)
	}
	wg.Wait()

	if len(drv.records) != 9 {
		t.Fatalf("expect 9 records, got %d", len(drv.records))
	}
	if drv.records[0][1] != CommFieldLogId || drv.records[0][2] != log.GetLogId() {
		t.Fatalf("log_id should be the first field:%v", drv.records[0])
	}
}

func TestInfoFieldOnlyOnce(t *testing.T) {
	drv := &recordDriver{}
	log, _ := NewLogFitter(drv, "123456")
	log.SetCommField("method", "SSRI.version")
	log.SetInfoField("cost", 1)
	log.Info("first")
	log.Info("second")
	log.Warn("odd fields", 1)

	first := fmt.Sprint(drv.records[0])
	second := fmt.Sprint(drv.records[1])
	if drv.records[0][2] != "123456" {
		t.Fatalf("unexpected log id:%v", drv.records[0])
	}
	if !contains(drv.records[0], "cost") || contains(drv.records[1], "cost") {
		t.Fatalf("info field should be used once.first:%s second:%s", first, second)
	}
	if !contains(drv.records[1], "method") {
		t.Fatalf("comm field missing:%s", second)
	}
	if !contains(drv.records[2], "unknow") {
		t.Fatalf("odd fields should be padded:%v", drv.records[2])
	}
}

func TestNewLoggerWithoutInit(t *testing.T) {
	log, err := NewLogger("", "udt")
	if err != nil {
		t.Fatal(err)
	}
	log.Info("nop logger", "a", 1)
	if log.GetLogId() == "" {
		t.Fatal("log id should be generated")
	}
}

func contains(fields []interface{}, key string) bool {
	for _, f := range fields {
		if s, ok := f.(string); ok && s == key {
			return true
		}
	}
	return false
}
