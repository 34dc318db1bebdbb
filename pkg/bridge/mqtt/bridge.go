package mqtt

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/golang/glog"

	fx "github.com/veletron/oled.go/pkg/framework"
	"github.com/veletron/oled.go/pkg/oled"
	"github.com/veletron/oled.go/pkg/oled/station"
)

// Bridge maps broker topics to display commands.  It subscribes
// cmd/+ under the queue's topic prefix and reports outcomes on
// result and the cursor position on cursor.
type Bridge struct {
	Queue   *Queue
	Station *station.Station
}

// NewBridge creates a Bridge for a station.
func NewBridge(brokerURL string, st *station.Station) (*Bridge, error) {
	q, err := NewQueueFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return &Bridge{Queue: q, Station: st}, nil
}

// Name implements Named.
func (b *Bridge) Name() string {
	return "mqtt-bridge"
}

// Run implements Runnable.
func (b *Bridge) Run(ctx context.Context) error {
	token := b.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return err
	}
	return fx.RunWithContextCloser(ctx, b.Queue, func() error {
		b.Queue.Sub("cmd/+", b.handle)
		b.publishCursor()
		<-ctx.Done()
		return ctx.Err()
	})
}

func (b *Bridge) handle(topic string, payload []byte) {
	cmd, err := buildCommand(strings.TrimPrefix(topic, "cmd/"), payload)
	if err != nil {
		glog.Errorf("bad command on %q: %v", topic, err)
		b.Queue.Pub("result", []byte(err.Error()))
		return
	}
	res, err := b.Station.Exec(cmd...)
	if err != nil {
		glog.Errorf("command on %q failed: %v", topic, err)
		b.Queue.Pub("result", []byte(err.Error()))
		return
	}
	b.Queue.Pub("result", []byte(resultText(res)))
	b.publishCursor()
}

func (b *Bridge) publishCursor() {
	row, col, visible := b.Station.Cursor()
	state := "off"
	if visible {
		state = "on"
	}
	b.Queue.PubWith("cursor", []byte(fmt.Sprintf("%d %d %s", row, col, state)), 0, true)
}

func resultText(res oled.Result) string {
	switch res {
	case oled.ResultSuccess:
		return "success"
	case oled.ResultBusy:
		return "busy"
	default:
		return "failure"
	}
}

func buildCommand(name string, payload []byte) ([]byte, error) {
	switch name {
	case "init":
		return []byte{byte(oled.CommandInit)}, nil
	case "on":
		return []byte{byte(oled.CommandDisplayOn)}, nil
	case "off":
		return []byte{byte(oled.CommandDisplayOff)}, nil
	case "cls":
		return []byte{byte(oled.CommandCls)}, nil
	case "id":
		return []byte{byte(oled.CommandID)}, nil
	case "cursor":
		switch strings.TrimSpace(string(payload)) {
		case "on":
			return []byte{byte(oled.CommandCursorOn)}, nil
		case "off":
			return []byte{byte(oled.CommandCursorOff)}, nil
		}
		return nil, fmt.Errorf("cursor wants on or off")
	case "locate":
		var row, col uint8
		if _, err := fmt.Sscanf(string(payload), "%d %d", &row, &col); err != nil {
			return nil, fmt.Errorf("locate wants \"row col\": %v", err)
		}
		if row > 16 || col > 16 {
			return nil, fmt.Errorf("position %d,%d out of range", row, col)
		}
		return []byte{byte(oled.CommandLocate), row, col}, nil
	case "print":
		return oled.PrintRequest(payload), nil
	case "printbyte":
		b, err := parseByte(payload)
		if err != nil {
			return nil, err
		}
		return []byte{byte(oled.CommandPrintByte), b}, nil
	case "raw":
		if len(payload) == 0 {
			return nil, fmt.Errorf("empty raw command")
		}
		return payload, nil
	}
	return nil, fmt.Errorf("unknown command %q", name)
}

func parseByte(payload []byte) (byte, error) {
	if len(payload) == 1 {
		return payload[0], nil
	}
	b, err := hex.DecodeString(strings.TrimSpace(string(payload)))
	if err != nil || len(b) != 1 {
		return 0, fmt.Errorf("want a single byte, got %d bytes", len(payload))
	}
	return b[0], nil
}
