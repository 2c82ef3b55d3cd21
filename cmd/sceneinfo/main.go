package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/ddvk/sceneio/internal/config"
	"github.com/ddvk/sceneio/scene"
	"github.com/ddvk/sceneio/sceneio"
)

var (
	configFile = flag.String("config", "", "TOML settings file")
	sequential = flag.Bool("sequential", false, "load resources on one goroutine")
	verbose    = flag.Bool("v", false, "debug logging")
)

func printScene(s *scene.Scene) {
	fmt.Printf("Number of Cameras: %d\n", len(s.Cameras))
	for i, camera := range s.Cameras {
		fmt.Printf("Camera: %s lens: %.3f film: %.3f aspect: %.3f\n", s.CameraName(i), camera.Lens, camera.Film, camera.Aspect)
	}
	fmt.Printf("Number of Textures: %d\n", len(s.Textures))
	for i, texture := range s.Textures {
		fmt.Printf("Texture: %s %dx%d linear: %t\n", s.TextureName(i), texture.Width, texture.Height, texture.Linear)
	}
	fmt.Printf("Number of Materials: %d\n", len(s.Materials))
	for i, material := range s.Materials {
		fmt.Printf("Material: %s type: %s\n", s.MaterialName(i), material.Type)
	}
	fmt.Printf("Number of Shapes: %d\n", len(s.Shapes))
	for i, shape := range s.Shapes {
		fmt.Printf("Shape: %s positions: %d\n", s.ShapeName(i), len(shape.Positions))
		fmt.Printf("\tpoints: %d lines: %d triangles: %d quads: %d\n",
			len(shape.Points), len(shape.Lines), len(shape.Triangles), len(shape.Quads))
	}
	fmt.Printf("Number of Instances: %d\n", len(s.Instances))
	for i, instance := range s.Instances {
		fmt.Printf("Instance: %s shape: %d material: %d\n", s.InstanceName(i), instance.Shape, instance.Material)
	}
	bbox := s.Bounds()
	if !bbox.IsEmpty() {
		fmt.Printf("Bounds: %v %v\n", bbox.Min, bbox.Max)
	}
}

func _main() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return errors.New("missing file")
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

	s, err := sceneio.LoadScene(flag.Arg(0), cfg.Options(nil)...)
	if err != nil {
		return err
	}
	printScene(s)
	return nil
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
