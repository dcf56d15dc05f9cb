package udt

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/xuperchain/xssri/lib/utils"
)

const (
	ConfigName = "udt.yaml"

	DefaultMaxChainDepth = 16
	DefaultMaxCellDeps   = 256
)

type ExtensionConf struct {
	Key string
	// hex
	Data string
}

// Config is the token served by the program
type Config struct {
	Name          string
	Symbol        string
	Decimals      uint8
	ExtensionData []ExtensionConf
	// hex lock hashes paused by the local record
	PauseList []string
	// hex type hash of the next pause list record, empty at the end of the chain
	NextTypeHash string
	// hex type hash of the program itself, a chain pointing back to it is malformed
	TypeHash string
	// 最多跟随的记录数，不含本地记录
	MaxChainDepth uint32
	// 每次查找最多扫描的 CellDep 数
	MaxCellDeps uint32
}

func DefaultConfig() *Config {
	return &Config{
		Name:     "UDT",
		Symbol:   "UDT",
		Decimals: 8,
		PauseList: []string{
			"0xd19228c64920eb8c3d79557d8ae59ee7a14b9d7de45ccf8bafacf82c91fc359e",
		},
		MaxChainDepth: DefaultMaxChainDepth,
		MaxCellDeps:   DefaultMaxCellDeps,
	}
}

// LoadConfig reads fname over DefaultConfig
func LoadConfig(fname string) (*Config, error) {
	if fname == "" || !utils.FileIsExist(fname) {
		return nil, fmt.Errorf("config file set error.path:%s", fname)
	}

	viperObj := viper.New()
	viperObj.SetConfigFile(fname)
	err := viperObj.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("read config failed.path:%s,err:%v", fname, err)
	}

	cfg := DefaultConfig()
	if err = viperObj.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmatshal config failed.path:%s,err:%v", fname, err)
	}
	return cfg, nil
}

// Metadata decodes the token metadata
func (c *Config) Metadata() (*Metadata, error) {
	meta := &Metadata{
		Name:      c.Name,
		Symbol:    c.Symbol,
		Decimals:  c.Decimals,
		Extension: make(map[string][]byte, len(c.ExtensionData)),
	}
	for _, ext := range c.ExtensionData {
		if _, ok := meta.Extension[ext.Key]; ok {
			return nil, fmt.Errorf("duplicate extension data key:%s", ext.Key)
		}
		data, err := utils.DecodeHex(ext.Data)
		if err != nil {
			return nil, fmt.Errorf("decode extension data failed.key:%s,err:%v", ext.Key, err)
		}
		meta.Extension[ext.Key] = data
	}
	return meta, nil
}

// PausableData decodes the local pause list record
func (c *Config) PausableData() (*PausableData, error) {
	data := &PausableData{PauseList: make([]Byte32, 0, len(c.PauseList))}
	for _, s := range c.PauseList {
		h, err := parseByte32(s)
		if err != nil {
			return nil, fmt.Errorf("decode pause list failed.err:%v", err)
		}
		data.PauseList = append(data.PauseList, h)
	}
	if c.NextTypeHash != "" {
		h, err := parseByte32(c.NextTypeHash)
		if err != nil {
			return nil, fmt.Errorf("decode next type hash failed.err:%v", err)
		}
		data.NextTypeHash = &h
	}
	return data, nil
}

// SelfTypeHash returns nil when TypeHash is not set
func (c *Config) SelfTypeHash() (*Byte32, error) {
	if c.TypeHash == "" {
		return nil, nil
	}
	h, err := parseByte32(c.TypeHash)
	if err != nil {
		return nil, fmt.Errorf("decode type hash failed.err:%v", err)
	}
	return &h, nil
}

func parseByte32(s string) (Byte32, error) {
	h := Byte32{}
	raw, err := utils.DecodeHex(s)
	if err != nil {
		return h, err
	}
	if len(raw) != len(h) {
		return h, fmt.Errorf("hash %s is not 32 bytes", s)
	}
	copy(h[:], raw)
	return h, nil
}
