package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ajanata/tinygo-drivers/mcp7940"
)

// AlarmEvent is published each time an alarm interrupt flag is found set.
type AlarmEvent struct {
	Alarm int    `json:"alarm"`
	Time  string `json:"time"`
}

type publisher interface {
	Publish(topic string, payload []byte) error
}

type mqttPublisher struct {
	cli mqtt.Client
}

func newMQTTPublisher(broker string) (*mqttPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("mcp7940ctl").
		SetAutoReconnect(true)
	cli := mqtt.NewClient(opts)
	tok := cli.Connect()
	if tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("could not connect to %q: %w", broker, tok.Error())
	}
	return &mqttPublisher{cli: cli}, nil
}

func (p *mqttPublisher) Publish(topic string, payload []byte) error {
	tok := p.cli.Publish(topic, 1, false, payload)
	tok.Wait()
	return tok.Error()
}

func (p *mqttPublisher) Close() {
	p.cli.Disconnect(250)
}

// watch polls both alarm flags every freq until ctx is done.
func (c *ctl) watch(ctx context.Context, broker, topic string, freq time.Duration) error {
	var pub publisher
	if broker != "" {
		p, err := newMQTTPublisher(broker)
		if err != nil {
			return err
		}
		defer p.Close()
		pub = p
	}

	tick := time.NewTicker(freq)
	defer tick.Stop()

	for {
		if err := c.poll(pub, topic); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}
	}
}

// poll reports and clears each fired alarm. The clock time is read once per poll.
func (c *ctl) poll(pub publisher, topic string) error {
	var now string
	for _, a := range []mcp7940.Alarm{mcp7940.Alarm0, mcp7940.Alarm1} {
		fired, err := c.dev.AlarmFired(a)
		if err != nil {
			return fmt.Errorf("could not read alarm %d: %w", a, err)
		}
		if !fired {
			continue
		}
		if now == "" {
			t, err := c.dev.Now()
			if err != nil {
				return fmt.Errorf("could not read time: %w", err)
			}
			now = t.Format(time.RFC3339)
		}
		if err := c.dev.ClearAlarm(a); err != nil {
			return fmt.Errorf("could not clear alarm %d: %w", a, err)
		}
		fmt.Fprintf(c.out, "alarm%d fired at %s\n", a, now)

		if pub == nil {
			continue
		}
		payload, err := json.Marshal(AlarmEvent{Alarm: int(a), Time: now})
		if err != nil {
			return fmt.Errorf("could not encode alarm event: %w", err)
		}
		if err := pub.Publish(topic, payload); err != nil {
			log.Printf("could not publish alarm %d: %+v", a, err)
		}
	}
	return nil
}
