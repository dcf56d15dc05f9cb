package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/xuperchain/xssri/cmd/xssri/cmd"
)

func main() {
	rootCmd, err := NewServiceCommand()
	if err != nil {
		log.Fatalf("init command failed.err:%v", err)
	}

	if err = rootCmd.Execute(); err != nil {
		log.Fatalf("run command failed.err:%v", err)
	}
}

func NewServiceCommand() (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:           "xssri <command> [arguments]",
		Short:         "Xssri runs udt script calls against a local cell store.",
		Long:          "Xssri runs udt script calls against a local cell store.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example:       "xssri call --conf /home/rd/xssri/conf/env.yaml --method UDTMetadata.name",
	}

	// cmd version
	rootCmd.AddCommand(cmd.GetVersionCmd().GetCmd())
	// cmd call
	rootCmd.AddCommand(cmd.GetCallCmd().GetCmd())
	// cmd batch
	rootCmd.AddCommand(cmd.GetBatchCmd().GetCmd())
	// cmd methods
	rootCmd.AddCommand(cmd.GetMethodsCmd().GetCmd())
	// cmd store
	rootCmd.AddCommand(cmd.GetStoreCmd().GetCmd())
	return rootCmd, nil
}
