package cmd

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/nlines/taild/pkg/tailctl/factory"
)

type rmOptions struct {
	name string
}

func (o *rmOptions) Run(f factory.Factory) error {
	var errMsg echo.HTTPError
	resp, err := f.RESTClient().R().
		SetError(&errMsg).
		SetPathParam("name", o.name).
		Delete("api/v1/files/{name}")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("%s", errMsg.Message)
	}
	fmt.Printf("Successfully deregistered: <%s>\n", o.name)
	return nil
}

func NewCmdRm(f factory.Factory) *cobra.Command {
	o := rmOptions{}
	return &cobra.Command{
		Use:     "rm NAME",
		Short:   "Deregister a file",
		Example: "  tailctl rm NAME",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.name = args[0]
			return o.Run(f)
		},
	}
}
