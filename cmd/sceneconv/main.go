package main

import (
	"errors"
	"flag"
	"os"

	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/ddvk/sceneio/internal/config"
	"github.com/ddvk/sceneio/sceneio"
)

var (
	configFile = flag.String("config", "", "TOML settings file")
	sequential = flag.Bool("sequential", false, "load and save resources on one goroutine")
	verbose    = flag.Bool("v", false, "debug logging")
)

func _main() error {
	flag.Parse()
	if flag.NArg() < 2 {
		return errors.New("usage: sceneconv [flags] in.json out.json")
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	if *sequential {
		cfg.IO.Sequential = true
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if *verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	opts := cfg.Options(nil)
	s, err := sceneio.LoadScene(flag.Arg(0), opts...)
	if err != nil {
		return err
	}
	return sceneio.SaveScene(flag.Arg(1), s, opts...)
}

func main() {
	prefixed := &prefixed.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
		ForceColors:     true,
	}
	log.SetFormatter(prefixed)
	log.SetOutput(os.Stdout)
	err := _main()
	if err != nil {
		log.Fatal(err)
	}
}
