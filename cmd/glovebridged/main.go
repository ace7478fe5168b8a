package main

//go-build: CGO_ENABLED=0

import (
	"errors"
	"flag"
	"io"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/robotalks/glove.go/pkg/bridge"
	"github.com/robotalks/glove.go/pkg/framework"
	"github.com/robotalks/glove.go/pkg/glove"
	"github.com/robotalks/glove.go/pkg/transport"
)

var (
	portPath    = flag.String("port", "", "serial device path")
	baudRate    = flag.Int("baud", transport.DefaultBaudRate, "serial baud rate")
	addr        = flag.String("addr", "", "TCP address of a remote glove")
	brokerURL   = flag.String("broker", "mqtt://127.0.0.1:1883", "MQTT broker URL")
	bridgeID    = flag.String("id", "", "bridge identity, defaults to machine id")
	analogPins  = flag.String("analog-pins", "", "analog pins to poll, comma separated")
	digitalPins = flag.String("digital-pins", "", "digital pins to poll, comma separated")
	interval    = flag.Duration("interval", bridge.DefaultInterval, "polling interval")
)

func main() {
	flag.Parse()

	conn, err := openConn()
	if err != nil {
		glog.Exit(err)
	}
	dev := glove.New(conn)

	queue, err := bridge.NewQueue(*brokerURL, "glovebridged-"+bridge.HostID())
	if err != nil {
		glog.Exit(err)
	}
	br := bridge.New(dev, queue, *bridgeID)
	br.Interval = *interval
	if br.AnalogPins, err = parsePins(*analogPins); err != nil {
		glog.Exit(err)
	}
	if br.DigitalPins, err = parsePins(*digitalPins); err != nil {
		glog.Exit(err)
	}

	err = framework.NewRunner().HandleSignals().
		Go(framework.NamedRun("device", dev)).
		Go(framework.NamedRun("bridge", br)).
		Wait()
	if err != nil {
		glog.Exit(err)
	}
}

func openConn() (io.ReadWriteCloser, error) {
	switch {
	case *portPath != "":
		return transport.OpenSerial(*portPath, *baudRate)
	case *addr != "":
		return transport.Dial(*addr)
	}
	return nil, errors.New("no device endpoint: use -port or -addr")
}

func parsePins(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var pins []int
	for _, item := range strings.Split(s, ",") {
		pin, err := strconv.Atoi(strings.TrimSpace(item))
		if err != nil {
			return nil, err
		}
		pins = append(pins, pin)
	}
	return pins, nil
}
