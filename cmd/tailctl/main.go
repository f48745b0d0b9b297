package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/nlines/taild/pkg/info"
	"github.com/nlines/taild/pkg/tailctl"
	"github.com/nlines/taild/pkg/tailctl/factory"
)

func main() {
	var printVersion bool
	rootCmd := &cobra.Command{
		Use:          "tailctl",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printVersion {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(info.VersionInfo)
			}
			return nil
		},
	}
	rootCmd.Flags().BoolVarP(&printVersion, "version", "V", false, "Print version information and quit")
	f := factory.New(rootCmd.PersistentFlags())
	tailctl.Register(rootCmd, f)
	_ = rootCmd.Execute()
}
