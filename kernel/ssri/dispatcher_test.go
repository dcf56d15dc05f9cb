package ssri

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/xuperchain/xssri/kernel/cell"
	"github.com/xuperchain/xssri/kernel/def"
	"github.com/xuperchain/xssri/lib/logs"
	"github.com/xuperchain/xssri/lib/metrics"
)

func newTestDispatcher(t *testing.T, methods ...Method) *Dispatcher {
	r, err := NewRegistry(methods...)
	if err != nil {
		t.Fatal(err)
	}
	d, err := NewDispatcher(r, logs.NewNopLogger())
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestDispatchVersion(t *testing.T) {
	d := newTestDispatcher(t)
	out, err := d.Dispatch(NewCall(MethodVersion), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0] != Version {
		t.Fatalf("unexpected version output:%v", out)
	}

	// extra arguments are ignored
	out, err = d.Dispatch(NewCall(MethodVersion, []byte{1}), nil)
	if err != nil || len(out) != 1 {
		t.Fatalf("version with args failed.out:%v,err:%v", out, err)
	}
}

func TestDispatchGetMethods(t *testing.T) {
	d := newTestDispatcher(t, Method{Name: "UDT.name", Handler: nopHandler()})
	table := d.Registry().Table()

	out, err := d.Dispatch(NewCall(MethodGetMethods, U64Arg(0), U64Arg(4)), nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != string(table[4:]) {
		t.Fatalf("unexpected get_methods output:%x", out)
	}

	out, err = d.Dispatch(NewCall(MethodGetMethods, U64Arg(3), U64Arg(1)), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 8 || binary.LittleEndian.Uint64(out) != MethodPath("UDT.name") {
		t.Fatalf("unexpected entry:%x", out)
	}

	// no limit reads to the end
	out, err = d.Dispatch(NewCall(MethodGetMethods, U64Arg(0)), nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != string(table[4:]) {
		t.Fatalf("missing limit should read all entries:%x", out)
	}
	out, err = d.Dispatch(NewCall(MethodGetMethods, U64Arg(2)), nil)
	if err != nil || string(out) != string(table[4+2*8:]) {
		t.Fatalf("unexpected tail.out:%x,err:%v", out, err)
	}

	_, err = d.Dispatch(NewCall(MethodGetMethods), nil)
	if !errors.Is(err, def.ErrInvalidMethodArgs) {
		t.Fatalf("missing offset should fail.err:%v", err)
	}
	_, err = d.Dispatch(NewCall(MethodGetMethods, U64Arg(0), []byte("00")), nil)
	if !errors.Is(err, def.ErrInvalidMethodArgs) {
		t.Fatalf("short limit should fail.err:%v", err)
	}
	_, err = d.Dispatch(NewCall(MethodGetMethods, []byte{0}, U64Arg(1)), nil)
	if !errors.Is(err, def.ErrInvalidMethodArgs) {
		t.Fatalf("short offset should fail.err:%v", err)
	}
}

func TestDispatchHasMethods(t *testing.T) {
	d := newTestDispatcher(t)
	query := EncodeU64Vector([]uint64{
		MethodPath(MethodVersion),
		MethodPath(MethodGetMethods),
		MethodPath(MethodHasMethods),
		MethodPath("UDT.name"),
	})
	out, err := d.Dispatch(NewCall(MethodHasMethods, query), nil)
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(out) != fmt.Sprint([]byte{1, 1, 1, 0}) {
		t.Fatalf("unexpected has_methods output:%v", out)
	}

	_, err = d.Dispatch(NewCall(MethodHasMethods), nil)
	if !errors.Is(err, def.ErrInvalidMethodArgs) {
		t.Fatalf("missing query should fail.err:%v", err)
	}
}

func TestDispatchMethod(t *testing.T) {
	var gotArgs [][]byte
	var gotLoader cell.Loader
	d := newTestDispatcher(t,
		Method{Name: "UDT.name", Handler: nopHandler('U', 'D', 'T')},
		Method{Name: "UDT.echo", Handler: func(ctx Context) ([]byte, error) {
			if ctx.GetLog() == nil || ctx.GetTimer() == nil {
				return nil, fmt.Errorf("context without log or timer")
			}
			gotArgs = ctx.Args()
			gotLoader = ctx.Loader()
			return ctx.Arg(0)
		}},
		Method{Name: "UDT.fail", Handler: func(ctx Context) ([]byte, error) {
			return nil, def.ErrNotImplemented
		}},
		Method{Name: "UDT.plain", Handler: func(ctx Context) ([]byte, error) {
			return nil, fmt.Errorf("plain failure")
		}},
	)

	out, err := d.Dispatch(NewCall("UDT.name"), nil)
	if err != nil || string(out) != "UDT" {
		t.Fatalf("call name failed.out:%s,err:%v", out, err)
	}

	loader := cell.NewMemLoader()
	out, err = d.Dispatch(NewCall("UDT.echo", []byte{0xde, 0xad}), loader)
	if err != nil || fmt.Sprintf("%x", out) != "dead" {
		t.Fatalf("call echo failed.out:%x,err:%v", out, err)
	}
	if len(gotArgs) != 1 || string(gotArgs[0]) != "dead" || gotLoader != loader {
		t.Fatalf("unexpected handler context.args:%s", gotArgs)
	}

	_, err = d.Dispatch(NewCall("UDT.fail"), nil)
	if def.ExitCode(err) != def.ErrNotImplemented.Code {
		t.Fatalf("unexpected error:%v", err)
	}
	_, err = d.Dispatch(NewCall("UDT.plain"), nil)
	if def.ExitCode(err) != def.ErrHandler.Code {
		t.Fatalf("untyped error should map to handler error.err:%v", err)
	}
}

func TestDispatchInvalidPath(t *testing.T) {
	d := newTestDispatcher(t, Method{Name: "UDT.name", Handler: nopHandler()})

	cases := map[string][][]byte{
		"empty":     nil,
		"unknown":   NewCall("UDT.symbol"),
		"not hex":   {[]byte("zz00000000000000")},
		"short":     {[]byte("00112233")},
		"long":      {[]byte("001122334455667788")},
		"odd chars": {[]byte("0011223344556677f")},
	}
	for name, argv := range cases {
		_, err := d.Dispatch(argv, nil)
		if !errors.Is(err, def.ErrInvalidMethodPath) {
			t.Fatalf("%s: expected invalid method path, got %v", name, err)
		}
	}
}

func TestDispatchConcurrent(t *testing.T) {
	d := newTestDispatcher(t, Method{Name: "UDT.name", Handler: nopHandler('U')})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				out, err := d.Dispatch(NewCall("UDT.name"), nil)
				if err != nil || string(out) != "U" {
					t.Errorf("concurrent dispatch failed.err:%v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestNewDispatcherNilRegistry(t *testing.T) {
	if _, err := NewDispatcher(nil, nil); err == nil {
		t.Fatal("nil registry should fail")
	}
}

func TestDispatchMetrics(t *testing.T) {
	d := newTestDispatcher(t, Method{Name: "UDT.name", Handler: nopHandler('U')})
	label := pathLabel(MethodPath("UDT.name"))

	succ := metrics.DispatchCounter.WithLabelValues(label, "0")
	before := testutil.ToFloat64(succ)
	if _, err := d.Dispatch(NewCall("UDT.name"), nil); err != nil {
		t.Fatal(err)
	}
	if testutil.ToFloat64(succ) != before+1 {
		t.Fatal("success not counted")
	}

	// unknown paths share one label
	unknown := metrics.DispatchCounter.WithLabelValues(unknownMethodLabel, "6")
	before = testutil.ToFloat64(unknown)
	d.Dispatch(NewCall("UDT.symbol"), nil)
	d.Dispatch(nil, nil)
	if testutil.ToFloat64(unknown) != before+2 {
		t.Fatal("unknown path not counted")
	}
}
