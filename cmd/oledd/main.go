package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/veletron/oled.go/pkg/bridge/mqtt"
	fx "github.com/veletron/oled.go/pkg/framework"
	"github.com/veletron/oled.go/pkg/oled/station"
)

var (
	mqttURL = "mqtt://localhost:1883/oled/"
	refHz   = station.DefaultRefHz
	speedHz = station.DefaultSpeedHz
)

func init() {
	if val := os.Getenv("OLED_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.IntVar(&refHz, "ref-hz", refHz, "Reference clock frequency.")
	flag.IntVar(&speedHz, "speed-hz", speedHz, "Bus clock frequency.")
}

func main() {
	flag.Parse()

	st, err := station.New(refHz, speedHz)
	if err != nil {
		glog.Exitf("station: %v", err)
	}
	bridge, err := mqtt.NewBridge(mqttURL, st)
	if err != nil {
		glog.Exitf("broker %q: %v", mqttURL, err)
	}

	loop := fx.NewLoop(st)
	loop.StepRate = refHz

	runner := fx.NewRunner().HandleSignals()
	runner.Go(fx.NamedRun("loop", loop), bridge)
	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
}
