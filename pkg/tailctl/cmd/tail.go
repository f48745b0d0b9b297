package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/nlines/taild/pkg/tailctl/factory"
)

type tailOptions struct {
	name  string
	lines int
}

func (o *tailOptions) Run(cmd *cobra.Command, f factory.Factory) error {
	req := f.RESTClient().R()
	if cmd.Flags().Changed("lines") {
		req.SetQueryParam("n", strconv.Itoa(o.lines))
	}

	resp, err := req.
		SetDoNotParseResponse(true).
		SetPathParam("name", o.name).
		Get("api/v1/files/{name}/tail")
	if err != nil {
		return err
	}
	body := resp.RawBody()
	defer body.Close()
	if resp.IsError() {
		var errMsg echo.HTTPError
		err = json.NewDecoder(body).Decode(&errMsg)
		if err != nil {
			return err
		}
		return fmt.Errorf("%s", errMsg.Message)
	}
	_, err = io.Copy(os.Stdout, body)
	return err
}

func NewCmdTail(f factory.Factory) *cobra.Command {
	o := tailOptions{}
	cmd := &cobra.Command{
		Use:   "tail NAME",
		Short: "Print the last N lines of the given file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.name = args[0]
			return o.Run(cmd, f)
		},
	}
	cmd.Flags().IntVarP(&o.lines, "lines", "n", 10, "Number of lines to print")
	return cmd
}
