// Command visitsd serves the visit counters over http
package main

import (
	"context"
	"flag"
	"os"
	"syscall"

	"github.com/d0ngw/visits/app"
	c "github.com/d0ngw/visits/common"
)

var version string

var (
	optPort   int
	optConfig string
	optEnv    string
)

func init() {
	flag.IntVar(&optPort, "p", app.DefaultPort, "port to listen on")
	flag.IntVar(&optPort, "port", app.DefaultPort, "port to listen on")
	flag.StringVar(&optConfig, "c", "", "/path/to/visits.yaml")
	flag.StringVar(&optConfig, "config", "", "/path/to/visits.yaml")
	flag.StringVar(&optEnv, "env", ".env", "/path/to/.env")
}

func main() {
	flag.Parse()

	if err := c.LoadDotEnv(optEnv); err != nil {
		c.Fatalf("load env: %v", err)
	}

	conf, err := app.LoadConfig(optConfig)
	if err != nil {
		c.Fatalf("%v", err)
	}
	if err := conf.ApplyEnv(); err != nil {
		c.Fatalf("%v", err)
	}
	portSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "p" || f.Name == "port" {
			portSet = true
		}
	})
	if portSet || optConfig == "" {
		conf.SetPort(optPort)
	}

	visits, err := app.New(conf)
	if err != nil {
		c.Fatalf("build visits: %v", err)
	}
	c.Infof("visits %s starting", version)
	if err := visits.Start(); err != nil {
		c.Fatalf("start visits: %v", err)
	}

	var stopErr error
	hook := c.NewShutdownhook(syscall.SIGINT, syscall.SIGTERM)
	hook.AddHook(func() {
		stopErr = visits.Stop()
	})
	hook.WaitShutdown(context.Background())
	if stopErr != nil {
		c.Errorf("stop visits: %v", stopErr)
		os.Exit(1)
	}
	c.Infof("visits stopped")
}
