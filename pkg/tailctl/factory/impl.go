package factory

import (
	"encoding/json"
	"io"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/pflag"

	"github.com/nlines/taild/pkg/tailctl/globalflag"
)

type factoryImpl struct {
	flags *globalflag.FlagSet
}

func New(flags *pflag.FlagSet) Factory {
	gf := globalflag.New()
	gf.AddFlags(flags)
	return &factoryImpl{flags: gf}
}

func (f *factoryImpl) RESTClient() *resty.Client {
	return resty.New().SetBaseURL(f.flags.Remote())
}

func (f *factoryImpl) JSONEncoder(w io.Writer) *json.Encoder {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder
}
