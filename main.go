package main

import (
	"flag"

	"github.com/prebid/prebid-content-server/config"
	"github.com/prebid/prebid-content-server/router"
	"github.com/prebid/prebid-content-server/server"

	"github.com/golang/glog"
	"github.com/spf13/viper"
)

// Rev holds binary revision string
// Set manually at build time using:
//
//	go build -ldflags "-X main.Rev=`git rev-parse --short HEAD`"
var Rev string

// Version holds the latest release tag, set the same way as Rev:
//
//	go build -ldflags "-X main.Version=`git describe --tags --abbrev=0`"
var Version string

func main() {
	flag.Parse() // required for glog flags and testing package flags

	cfg, err := loadConfig()
	if err != nil {
		glog.Exitf("Configuration could not be loaded or did not pass validation: %v", err)
	}

	err = serve(Rev, Version, cfg)
	if err != nil {
		glog.Exitf("prebid-content-server failed: %v", err)
	}
}

const configFileName = "pcs"

func loadConfig() (*config.Configuration, error) {
	v := viper.New()
	config.SetupViper(v, configFileName)
	return config.New(v)
}

func serve(revision, version string, cfg *config.Configuration) error {
	r, err := router.New(cfg)
	if err != nil {
		return err
	}

	corsRouter := router.SupportCORS(r)
	server.Listen(cfg, router.NoCache{Handler: corsRouter}, router.Admin(revision, version), r.MetricsEngine)
	return nil
}
