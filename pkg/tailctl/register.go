package tailctl

import (
	"github.com/spf13/cobra"

	"github.com/nlines/taild/pkg/tailctl/cmd"
	"github.com/nlines/taild/pkg/tailctl/factory"
)

func Register(root *cobra.Command, f factory.Factory) {
	root.AddCommand(
		cmd.NewCmdCompletion(),
		cmd.NewCmdLs(f),
		cmd.NewCmdReload(f),
		cmd.NewCmdRm(f),
		cmd.NewCmdTail(f),
	)
}
