package main

import (
	"flag"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/Ozodimgba/geyser/internal/config"
	"github.com/Ozodimgba/geyser/internal/logic/stream"
	"github.com/Ozodimgba/geyser/internal/svc"
	"github.com/Ozodimgba/geyser/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
)

var configFile = flag.String("f", "etc/watcher.yaml", "the config file")

func main() {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	// Credentials come from the environment; a local .env is a convenience.
	_ = godotenv.Load()

	var c config.Config
	conf.MustLoad(*configFile, &c)
	c.ApplyEnv()
	if err := c.Validate(); err != nil {
		logx.Errorf("invalid configuration: %v", err)
		os.Exit(1)
	}

	logger.Init(c.Logger.ToLogOption())
	defer logger.Sync()

	svcCtx := svc.NewServiceContext(c)

	manager, err := stream.NewManager(c.Grpc, svcCtx.Detector.HandleUpdate)
	if err != nil {
		logx.Errorf("failed to connect: %v", err)
		os.Exit(1)
	}
	if err := manager.Start(); err != nil {
		manager.Stop()
		logx.Errorf("failed to start stream: %v", err)
		os.Exit(1)
	}

	logx.Infof("watching pump.fun create instructions")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-manager.Done():
		manager.Stop()
		if err != nil {
			logx.Errorf("stream terminated: %v", err)
			os.Exit(1)
		}
		logx.Info("stream ended, exiting")
	case s := <-sig:
		logx.Infof("received %v, shutting down", s)
		manager.Stop()
	}
}
