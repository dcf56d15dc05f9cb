package cmd

import (
	"encoding/binary"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xuperchain/xssri/kernel/common/xconfig"
	"github.com/xuperchain/xssri/kernel/ssri"
	"github.com/xuperchain/xssri/kernel/udt"
	"github.com/xuperchain/xssri/lib/utils"
)

type MethodsCmd struct {
	BaseCmd
}

func GetMethodsCmd() *MethodsCmd {
	methodsCmdIns := new(MethodsCmd)

	var envCfgPath string

	methodsCmdIns.cmd = &cobra.Command{
		Use:           "methods [name]...",
		Short:         "Print method paths of names, or the udt method table when no name is given.",
		Example:       "xssri methods UDTMetadata.name UDTPausable.is_paused",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, names []string) error {
			if len(names) > 0 {
				for _, name := range names {
					fmt.Printf("%s %s\n", pathHex(ssri.MethodPath(name)), name)
				}
				return nil
			}
			return printTable(envCfgPath)
		},
	}

	methodsCmdIns.cmd.Flags().StringVarP(&envCfgPath, "conf", "c", "",
		"environment config file path, the default udt config is used when empty")

	return methodsCmdIns
}

func printTable(envCfgPath string) error {
	var (
		manager *udt.Manager
		err     error
	)
	if envCfgPath == "" {
		ctx, cerr := udt.NewUDTCtx(udt.DefaultConfig())
		if cerr != nil {
			return cerr
		}
		manager, err = udt.NewManager(ctx)
	} else {
		envConf, lerr := xconfig.LoadEnvConf(envCfgPath)
		if lerr != nil {
			return lerr
		}
		manager, err = newManager(envConf)
	}
	if err != nil {
		return err
	}

	for i, p := range manager.Registry.Paths() {
		fmt.Printf("%2d %s\n", i, pathHex(p))
	}
	fmt.Printf("table: %s\n", utils.F(manager.Registry.Table()))
	return nil
}

// pathHex is the wire form of a method path
func pathHex(path uint64) string {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, path)
	return utils.F(raw)
}
