package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/nlines/taild/pkg/server"
)

func main() {
	configPath := pflag.StringP("config", "c", "/etc/taild/taild.toml", "Path of the config file")
	pflag.Parse()

	s, err := server.New(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 2)
	signal.Notify(signals, os.Interrupt)
	go func() {
		<-signals
		cancel()
		<-signals
		os.Exit(1)
	}()
	s.Start(ctx)
}
