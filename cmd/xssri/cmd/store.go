package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xuperchain/xssri/kernel/cell"
	"github.com/xuperchain/xssri/kernel/common/xconfig"
	"github.com/xuperchain/xssri/kernel/udt"
	"github.com/xuperchain/xssri/lib/utils"
)

type StoreCmd struct {
	BaseCmd
}

func GetStoreCmd() *StoreCmd {
	storeCmdIns := new(StoreCmd)

	storeCmdIns.cmd = &cobra.Command{
		Use:   "store",
		Short: "Manage the local cell store.",
	}
	storeCmdIns.cmd.AddCommand(getStorePutCmd())
	storeCmdIns.cmd.AddCommand(getStoreGetCmd())
	storeCmdIns.cmd.AddCommand(getStoreListCmd())

	return storeCmdIns
}

type cellFlags struct {
	envCfgPath string
	source     string
	index      int64
	typeHash   string
	data       string
	pauseList  []string
	next       string
}

func getStorePutCmd() *cobra.Command {
	var cf cellFlags
	putCmd := &cobra.Command{
		Use:   "put",
		Short: "Put one cell, data is raw hex or a pause list record built from --pause and --next.",
		Example: "xssri store put --conf /home/rd/xssri/conf/env.yaml --type 0x70... " +
			"--pause 0xd19228c6... --next 0x71...",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return putCell(&cf)
		},
	}

	putCmd.Flags().StringVarP(&cf.envCfgPath, "conf", "c", "", "environment config file path")
	putCmd.Flags().StringVarP(&cf.source, "source", "s", cell.SourceCellDep.String(), "cell source")
	putCmd.Flags().Int64VarP(&cf.index, "index", "i", -1, "cell index, appended when negative")
	putCmd.Flags().StringVarP(&cf.typeHash, "type", "t", "", "type hash in hex, empty when no type script")
	putCmd.Flags().StringVarP(&cf.data, "data", "d", "", "cell data in hex")
	putCmd.Flags().StringArrayVar(&cf.pauseList, "pause", nil, "paused lock hash in hex, repeatable")
	putCmd.Flags().StringVar(&cf.next, "next", "", "next pause list record type hash in hex")
	return putCmd
}

func getStoreGetCmd() *cobra.Command {
	var cf cellFlags
	getCmd := &cobra.Command{
		Use:           "get",
		Short:         "Print one cell.",
		Example:       "xssri store get --conf /home/rd/xssri/conf/env.yaml --index 0",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader, closer, err := openLoader(cf.envCfgPath)
			if err != nil {
				return err
			}
			defer closer()

			source, err := cell.ParseSource(cf.source)
			if err != nil {
				return err
			}
			c, err := loader.LoadCell(uint32(cf.index), source)
			if err != nil {
				return err
			}
			fmt.Printf("type: %s\ndata: %s\n", utils.F(c.TypeHash), utils.F(c.Data))
			return nil
		},
	}

	getCmd.Flags().StringVarP(&cf.envCfgPath, "conf", "c", "", "environment config file path")
	getCmd.Flags().StringVarP(&cf.source, "source", "s", cell.SourceCellDep.String(), "cell source")
	getCmd.Flags().Int64VarP(&cf.index, "index", "i", 0, "cell index")
	return getCmd
}

func getStoreListCmd() *cobra.Command {
	var cf cellFlags
	listCmd := &cobra.Command{
		Use:           "list",
		Short:         "Print the cells of a source.",
		Example:       "xssri store list --conf /home/rd/xssri/conf/env.yaml --source celldep",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader, closer, err := openLoader(cf.envCfgPath)
			if err != nil {
				return err
			}
			defer closer()

			source, err := cell.ParseSource(cf.source)
			if err != nil {
				return err
			}
			return loader.Range(source, func(index uint32, c *cell.Cell) bool {
				fmt.Printf("%d type:%s data:%s\n", index, utils.F(c.TypeHash), utils.F(c.Data))
				return true
			})
		},
	}

	listCmd.Flags().StringVarP(&cf.envCfgPath, "conf", "c", "", "environment config file path")
	listCmd.Flags().StringVarP(&cf.source, "source", "s", cell.SourceCellDep.String(), "cell source")
	return listCmd
}

func putCell(cf *cellFlags) error {
	c, err := cf.buildCell()
	if err != nil {
		return err
	}
	source, err := cell.ParseSource(cf.source)
	if err != nil {
		return err
	}

	loader, closer, err := openLoader(cf.envCfgPath)
	if err != nil {
		return err
	}
	defer closer()

	index := uint32(cf.index)
	if cf.index < 0 {
		index, err = loader.AppendCell(source, c)
	} else {
		err = loader.PutCell(index, source, c)
	}
	if err != nil {
		return err
	}
	fmt.Printf("put %s cell %d\n", source, index)
	return nil
}

func (cf *cellFlags) buildCell() (*cell.Cell, error) {
	c := &cell.Cell{}
	if cf.typeHash != "" {
		th, err := utils.DecodeHex(cf.typeHash)
		if err != nil {
			return nil, fmt.Errorf("decode type hash failed.err:%v", err)
		}
		c.TypeHash = th
	}

	if len(cf.pauseList) == 0 && cf.next == "" {
		data, err := utils.DecodeHex(cf.data)
		if err != nil {
			return nil, fmt.Errorf("decode data failed.err:%v", err)
		}
		c.Data = data
		return c, nil
	}

	if cf.data != "" {
		return nil, fmt.Errorf("data conflicts with pause list flags")
	}
	// 复用udt配置的解析逻辑构造暂停列表记录
	record, err := (&udt.Config{PauseList: cf.pauseList, NextTypeHash: cf.next}).PausableData()
	if err != nil {
		return nil, err
	}
	c.Data = record.Encode()
	return c, nil
}

func openLoader(envCfgPath string) (*cell.KVLoader, func(), error) {
	envConf, err := xconfig.LoadEnvConf(envCfgPath)
	if err != nil {
		return nil, nil, err
	}
	db, loader, err := openStore(envConf)
	if err != nil {
		return nil, nil, err
	}
	return loader, func() { db.Close() }, nil
}
