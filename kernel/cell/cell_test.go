package cell

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuperchain/xssri/kernel/def"
)

func typeHash(b byte) []byte {
	return bytes.Repeat([]byte{b}, def.Byte32Size)
}

type countingLoader struct {
	*MemLoader
	reads int
}

func (c *countingLoader) LoadCell(index uint32, source Source) (*Cell, error) {
	c.reads++
	return c.MemLoader.LoadCell(index, source)
}

func TestParseSource(t *testing.T) {
	for s, name := range sourceNames {
		got, err := ParseSource(name)
		if err != nil || got != s {
			t.Fatalf("parse source %s failed.got:%v err:%v", name, got, err)
		}
		if s.String() != name {
			t.Fatalf("source string mismatch:%s", s.String())
		}
	}
	if _, err := ParseSource("mempool"); err == nil {
		t.Fatal("unknown source should fail")
	}
	if Source(9).String() != "source(0x9)" {
		t.Fatalf("unexpected unknown source string:%s", Source(9))
	}
}

func TestFindByTypeHash(t *testing.T) {
	l := NewMemLoader()
	l.Push(SourceCellDep, &Cell{Data: []byte("code")})
	l.Push(SourceCellDep, &Cell{TypeHash: typeHash(1), Data: []byte("a")})
	l.Push(SourceCellDep, &Cell{TypeHash: typeHash(2), Data: []byte("b")})
	l.Push(SourceCellDep, &Cell{TypeHash: typeHash(2), Data: []byte("c")})
	l.Push(SourceInput, &Cell{TypeHash: typeHash(3)})

	index, c, err := FindByTypeHash(l, SourceCellDep, typeHash(2), 0)
	if err != nil {
		t.Fatal(err)
	}
	if index != 2 || string(c.Data) != "b" {
		t.Fatalf("first match expected.index:%d data:%s", index, c.Data)
	}

	_, _, err = FindByTypeHash(l, SourceCellDep, typeHash(3), 0)
	if !errors.Is(err, def.ErrRecordNotFound) {
		t.Fatalf("type hash of another source should not be found:%v", err)
	}
}

func TestFindByTypeHashBounded(t *testing.T) {
	l := &countingLoader{MemLoader: NewMemLoader()}
	for i := 0; i < 10; i++ {
		l.Push(SourceCellDep, &Cell{TypeHash: typeHash(byte(i))})
	}

	// cells remain past the cap, the scan must not report a miss
	_, _, err := FindByTypeHash(l, SourceCellDep, typeHash(8), 4)
	if !errors.Is(err, def.ErrChainTooLong) {
		t.Fatalf("match beyond scan cap should fail the scan:%v", err)
	}
	if l.reads != 5 {
		t.Fatalf("scan should stop at cap, reads:%d", l.reads)
	}

	index, _, err := FindByTypeHash(l, SourceCellDep, typeHash(3), 4)
	if err != nil || index != 3 {
		t.Fatalf("match within cap expected.index:%d err:%v", index, err)
	}

	// source exhausted exactly at the cap is a plain miss
	_, _, err = FindByTypeHash(l, SourceCellDep, typeHash(0xee), 10)
	if !errors.Is(err, def.ErrRecordNotFound) {
		t.Fatalf("exhausted source should be not found:%v", err)
	}
}
