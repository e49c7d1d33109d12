package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/AhmadEkramy/elitesupps/config"
	"github.com/AhmadEkramy/elitesupps/internal/adminapi"
	"github.com/AhmadEkramy/elitesupps/internal/app"
	"github.com/AhmadEkramy/elitesupps/internal/notify"
	"github.com/AhmadEkramy/elitesupps/internal/storefront"
	"github.com/AhmadEkramy/elitesupps/internal/webserver"
)

var (
	confFile = flag.String("c", "elitesupps.yml", "configuration file")
	initDb   = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
	showVer  = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("elitesupps %s\n", version)
		return
	}

	cfg := config.LoadConfig(*confFile)
	cfg.InitDirs()

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	mailer, err := notify.NewMailer(cfg.Mail)
	if err != nil {
		zap.S().Fatalf("mailer init error: %s", err)
	}
	defer mailer.Release()

	server := webserver.Init(application)
	adminapi.Init()
	storefront.Init(application, mailer)

	go func() {
		if err := server.Start(); err != nil {
			zap.S().Errorf("web server stopped: %s", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	zap.S().Info("shutting down")
}
