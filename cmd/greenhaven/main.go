package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/greenhaven-store/greenhaven/config"
	"github.com/greenhaven-store/greenhaven/internal/app"
	"github.com/greenhaven-store/greenhaven/internal/webapi"
	"github.com/greenhaven-store/greenhaven/internal/webserver"
	"go.uber.org/zap"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema, all data is lost")
)

var (
	BuildVersion = "dev"
	BuildTime    = ""
)

func printVersion() {
	fmt.Printf("greenhaven %s %s\n", BuildVersion, BuildTime)
}

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		return
	}
	if *showVer {
		printVersion()
		return
	}

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	webserver.Init(application)
	webapi.InitRouter()

	errc := make(chan error, 1)
	go func() {
		errc <- webserver.Listen()
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		zap.S().Errorf("webserver stopped: %v", err)
	case sig := <-sigc:
		zap.S().Infof("received signal %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webserver.Shutdown(ctx); err != nil {
			zap.S().Errorf("shutdown error: %v", err)
		}
	}
}
