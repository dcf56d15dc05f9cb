package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xuperchain/xssri/kernel/def"
	"github.com/xuperchain/xssri/lib/utils"
)

type BatchCmd struct {
	BaseCmd
}

type batchResult struct {
	line string
	out  []byte
	code int8
}

func GetBatchCmd() *BatchCmd {
	batchCmdIns := new(BatchCmd)

	// 定义命令行参数变量
	var (
		envCfgPath string
		callFile   string
		vmVersion  uint64
	)

	batchCmdIns.cmd = &cobra.Command{
		Use:           "batch",
		Short:         "Run the calls of a file concurrently, one call per line: <method> [hex arg]...",
		Example:       "xssri batch --conf /home/rd/xssri/conf/env.yaml --file calls.txt",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lines, err := readCallLines(callFile)
			if err != nil {
				return err
			}

			rt, err := newRuntime(envCfgPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			results, err := runBatch(rt, lines, vmVersion)
			if err != nil {
				return err
			}
			failed := 0
			for _, res := range results {
				if res.code != 0 {
					failed++
				}
				fmt.Printf("%s => code:%d output:%s\n", res.line, res.code, utils.F(res.out))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d calls failed", failed, len(results))
			}
			return nil
		},
	}

	// 设置命令行参数并绑定变量
	batchCmdIns.cmd.Flags().StringVarP(&envCfgPath, "conf", "c", "", "environment config file path")
	batchCmdIns.cmd.Flags().StringVarP(&callFile, "file", "f", "", "call file path")
	batchCmdIns.cmd.Flags().Uint64Var(&vmVersion, "vm-version", def.VmVersionAny, "vm version reported to the program")

	return batchCmdIns
}

// 所有调用共享同一个只读方法表，可并发执行
func runBatch(rt *runtime, lines []string, vmVersion uint64) ([]*batchResult, error) {
	results := make([]*batchResult, len(lines))
	var g errgroup.Group
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			fields := strings.Fields(line)
			argv, err := buildCall(fields[0], "", fields[1:])
			if err != nil {
				return fmt.Errorf("line %d: %v", i+1, err)
			}
			out, code := rt.call(argv, vmVersion)
			results[i] = &batchResult{line: line, out: out, code: code}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// readCallLines skips blank lines and # comments
func readCallLines(fname string) ([]string, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("open call file failed.err:%v", err)
	}
	defer f.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read call file failed.err:%v", err)
	}
	return lines, nil
}
