package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/docker/go-units"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/nlines/taild/pkg/api"
	"github.com/nlines/taild/pkg/tabwriter"
	"github.com/nlines/taild/pkg/tailctl/factory"
)

type lsOptions struct {
	name string
}

func (o *lsOptions) Run(f factory.Factory) error {
	var errMsg echo.HTTPError
	req := f.RESTClient().R().SetError(&errMsg)
	encoder := f.JSONEncoder(os.Stdout)
	if len(o.name) > 0 {
		var result api.GetFileResponse
		resp, err := req.
			SetResult(&result).
			SetPathParam("name", o.name).
			Get("api/v1/files/{name}")
		if err != nil {
			return err
		}
		if resp.IsError() {
			return fmt.Errorf("%s", errMsg.Message)
		}
		return encoder.Encode(result)
	}

	var result api.ListFilesResponse
	resp, err := req.SetResult(&result).Get("api/v1/files")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("%s", errMsg.Message)
	}
	tw := tabwriter.New(os.Stdout)
	tw.SetHeader("name", "path", "size", "mtime", "tails")
	for _, r := range result {
		mtime := ""
		if r.Mtime > 0 {
			mtime = time.Unix(r.Mtime, 0).Format(time.RFC3339)
		}
		tw.Append(
			r.Name,
			r.Path,
			units.BytesSize(float64(r.Size)),
			mtime,
			r.TailCount,
		)
	}
	return tw.Render()
}

func NewCmdLs(f factory.Factory) *cobra.Command {
	o := lsOptions{}
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List one or all registered files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				o.name = args[0]
			}
			return o.Run(f)
		},
	}
	return cmd
}
