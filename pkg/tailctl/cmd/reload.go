package cmd

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/nlines/taild/pkg/tailctl/factory"
	"github.com/nlines/taild/pkg/utils"
)

type reloadOptions struct {
	name string
}

func (o *reloadOptions) Complete(args []string) error {
	if len(args) > 0 {
		o.name = args[0]
	}
	return nil
}

func (o *reloadOptions) Run(f factory.Factory) error {
	var errMsg echo.HTTPError
	req := f.RESTClient().R().SetError(&errMsg)
	path := "api/v1/files"
	if len(o.name) > 0 {
		path += "/" + o.name
	}
	resp, err := req.Post(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("%s", errMsg.Message)
	}
	if len(o.name) > 0 {
		fmt.Printf("Successfully reloaded: <%s>\n", o.name)
	} else {
		fmt.Println("Successfully reloaded all file definitions")
	}
	return nil
}

func NewCmdReload(f factory.Factory) *cobra.Command {
	o := reloadOptions{}
	cmd := &cobra.Command{
		Use:   "reload [NAME]",
		Short: "Reload one or all file definitions",
		Run: func(cmd *cobra.Command, args []string) {
			utils.CheckError(o.Complete(args))
			utils.CheckError(o.Run(f))
		},
	}
	return cmd
}
