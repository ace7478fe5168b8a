// Package bridge publishes glove state over MQTT and accepts remote writes.
package bridge

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"

	"github.com/robotalks/glove.go/pkg/glove"
	"github.com/robotalks/glove.go/pkg/glove/wire"
)

// Topic layout under the queue prefix:
//
//	glove/<id>/meta              retained JSON metadata
//	glove/<id>/analog/<pin>      polled analog readings
//	glove/<id>/digital/<pin>     polled digital readings
//	glove/<id>/set/digital/<pin> remote digital write, payload 0|1
//	glove/<id>/set/analog/<pin>  remote analog write, payload 0-255
//	glove/<id>/motor             remote activation, payload p,p:v,v

// Meta is the retained identity record of a bridged glove.
type Meta struct {
	ID          string `json:"id"`
	AnalogPins  []int  `json:"analog_pins,omitempty"`
	DigitalPins []int  `json:"digital_pins,omitempty"`
}

// Bridge polls a glove and exposes it over MQTT.
type Bridge struct {
	Device      *glove.Device
	Queue       *Queue
	ID          string
	AnalogPins  []int
	DigitalPins []int
	Interval    time.Duration

	readTimeout time.Duration
}

// DefaultInterval is the default polling interval.
const DefaultInterval = time.Second

// HostID derives a stable bridge identity from the machine.
func HostID() string {
	id, err := machineid.ID()
	if err != nil {
		glog.Warningf("machine id unavailable: %v", err)
		return "unknown"
	}
	return id
}

// New creates a Bridge over an already running Device.
func New(dev *glove.Device, queue *Queue, id string) *Bridge {
	if id == "" {
		id = HostID()
	}
	return &Bridge{
		Device:      dev,
		Queue:       queue,
		ID:          id,
		Interval:    DefaultInterval,
		readTimeout: 5 * time.Second,
	}
}

// Run implements framework.Runnable.
func (b *Bridge) Run(ctx context.Context) error {
	if err := b.Queue.Connect(); err != nil {
		return err
	}
	defer b.Queue.Close()
	meta, _ := json.Marshal(Meta{ID: b.ID, AnalogPins: b.AnalogPins, DigitalPins: b.DigitalPins})
	if err := b.Queue.Pub(b.topic("meta"), meta, true); err != nil {
		return err
	}
	if err := b.Queue.Sub(b.topic("set/#"), b.handleSet); err != nil {
		return err
	}
	if err := b.Queue.Sub(b.topic("motor"), b.handleMotor); err != nil {
		return err
	}
	glog.Infof("glove %s bridged", b.ID)

	ticker := time.NewTicker(b.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			b.poll(ctx)
		}
	}
}

func (b *Bridge) poll(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, b.readTimeout)
	defer cancel()
	for _, pin := range b.AnalogPins {
		value, err := b.Device.AnalogReadValue(ctx, pin)
		if err != nil {
			glog.Warningf("analog read pin %d: %v", pin, err)
			return
		}
		b.publishValue("analog", pin, value)
	}
	for _, pin := range b.DigitalPins {
		high, err := b.Device.DigitalReadValue(ctx, pin)
		if err != nil {
			glog.Warningf("digital read pin %d: %v", pin, err)
			return
		}
		value := wire.Low
		if high {
			value = wire.High
		}
		b.publishValue("digital", pin, value)
	}
}

func (b *Bridge) publishValue(kind string, pin, value int) {
	topic := b.topic(kind + "/" + strconv.Itoa(pin))
	if err := b.Queue.Pub(topic, []byte(strconv.Itoa(value)), false); err != nil {
		glog.Warningf("publish %s: %v", topic, err)
	}
}

// handleSet serves set/digital/<pin> and set/analog/<pin>.
func (b *Bridge) handleSet(topic string, payload []byte) {
	rel := strings.TrimPrefix(topic, b.topic("set")+"/")
	parts := strings.Split(rel, "/")
	if len(parts) != 2 {
		glog.Warningf("bad set topic %q", topic)
		return
	}
	pin, err1 := strconv.Atoi(parts[1])
	value, err2 := strconv.Atoi(strings.TrimSpace(string(payload)))
	if err1 != nil || err2 != nil {
		glog.Warningf("bad set request %q=%q", topic, payload)
		return
	}
	var err error
	switch parts[0] {
	case "digital":
		err = b.Device.DigitalWrite([]int{pin}, []int{value})
	case "analog":
		err = b.Device.AnalogWrite([]int{pin}, []int{value})
	default:
		glog.Warningf("bad set kind %q", parts[0])
		return
	}
	if err != nil {
		glog.Warningf("set %s pin %d: %v", parts[0], pin, err)
	}
}

// handleMotor serves motor activation, payload "p1,p2:v1,v2".
func (b *Bridge) handleMotor(_ string, payload []byte) {
	parts := strings.SplitN(strings.TrimSpace(string(payload)), ":", 2)
	if len(parts) != 2 {
		glog.Warningf("bad motor request %q", payload)
		return
	}
	pins, err1 := parseIntList(parts[0])
	values, err2 := parseIntList(parts[1])
	if err1 != nil || err2 != nil {
		glog.Warningf("bad motor request %q", payload)
		return
	}
	if err := b.Device.ActivateMotor(pins, values); err != nil {
		glog.Warningf("activate motor: %v", err)
	}
}

func (b *Bridge) topic(sub string) string {
	return "glove/" + b.ID + "/" + sub
}

func parseIntList(s string) ([]int, error) {
	var out []int
	for _, item := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(item))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
