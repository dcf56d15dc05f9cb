package cmd

import (
	"encoding/binary"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xuperchain/xssri/kernel/def"
	"github.com/xuperchain/xssri/kernel/ssri"
	"github.com/xuperchain/xssri/lib/utils"
)

type CallCmd struct {
	BaseCmd
}

func GetCallCmd() *CallCmd {
	callCmdIns := new(CallCmd)

	// 定义命令行参数变量
	var (
		envCfgPath string
		method     string
		path       string
		args       []string
		vmVersion  uint64
	)

	callCmdIns.cmd = &cobra.Command{
		Use:           "call",
		Short:         "Call one udt method.",
		Example:       "xssri call --conf /home/rd/xssri/conf/env.yaml --method UDTPausable.is_paused --arg 0x01000000d19228c6...",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			argv, err := buildCall(method, path, args)
			if err != nil {
				return err
			}

			rt, err := newRuntime(envCfgPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			out, code := rt.call(argv, vmVersion)
			fmt.Printf("exit code: %d\noutput: %s\n", code, utils.F(out))
			if code != 0 {
				return fmt.Errorf("call failed with exit code %d", code)
			}
			return nil
		},
	}

	// 设置命令行参数并绑定变量
	callCmdIns.cmd.Flags().StringVarP(&envCfgPath, "conf", "c", "", "environment config file path")
	callCmdIns.cmd.Flags().StringVarP(&method, "method", "m", "", "method name")
	callCmdIns.cmd.Flags().StringVarP(&path, "path", "p", "", "method path in hex, used when method is empty")
	callCmdIns.cmd.Flags().StringArrayVarP(&args, "arg", "a", nil, "method argument in hex, repeatable")
	callCmdIns.cmd.Flags().Uint64Var(&vmVersion, "vm-version", def.VmVersionAny, "vm version reported to the program")

	return callCmdIns
}

// buildCall returns the wire form of a call given by method name or raw path
func buildCall(method, path string, args []string) ([][]byte, error) {
	raw := make([][]byte, 0, len(args))
	for i, arg := range args {
		b, err := utils.DecodeHex(arg)
		if err != nil {
			return nil, fmt.Errorf("decode argument %d failed.err:%v", i, err)
		}
		raw = append(raw, b)
	}

	if method != "" {
		return ssri.NewCall(method, raw...), nil
	}
	if path == "" {
		return nil, fmt.Errorf("method or path must be set")
	}
	p, err := utils.DecodeHex(path)
	if err != nil || len(p) != def.MethodPathSize {
		return nil, fmt.Errorf("method path must be %d bytes hex.path:%s", def.MethodPathSize, path)
	}
	return ssri.NewCallByPath(binary.LittleEndian.Uint64(p), raw...), nil
}
