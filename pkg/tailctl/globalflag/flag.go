package globalflag

import (
	"github.com/spf13/pflag"
)

type FlagSet struct {
	remote string
}

func New() *FlagSet {
	return &FlagSet{}
}

func (f *FlagSet) AddFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&f.remote, "remote", "r", "http://127.0.0.1:9998/", "Remote address of taild")
}

func (f *FlagSet) Remote() string {
	return f.remote
}
