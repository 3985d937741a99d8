//go:build linux

// Command mcp7940ctl reads and sets an MCP7940 real-time clock attached to a Linux
// I2C bus.
//
// Usage:
//
//	mcp7940ctl [options] now
//	mcp7940ctl [options] set 2024-06-15T13:45:30Z
//	mcp7940ctl [options] alarm 0 12-24 07:30:00 2
//	mcp7940ctl [options] shell
//	mcp7940ctl [options] -broker tcp://localhost:1883 watch
package main // import "github.com/ajanata/tinygo-drivers/cmd/mcp7940ctl"

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/go-daq/smbus"

	"github.com/ajanata/tinygo-drivers/mcp7940"
)

var _ mcp7940.Bus = (*smbus.Conn)(nil)

func main() {
	var (
		bus    = flag.Int("bus", 1, "I2C bus number (/dev/i2c-N)")
		addr   = flag.Uint("addr", mcp7940.Address, "I2C address of the chip")
		reset  = flag.Bool("reset", false, "clear the control register and enable battery backup first")
		broker = flag.String("broker", "", "MQTT broker URL for watch, e.g. tcp://localhost:1883")
		topic  = flag.String("topic", "mcp7940/alarm", "MQTT topic for watch")
		freq   = flag.Duration("interval", time.Second, "alarm polling interval for watch")
	)

	flag.Parse()

	log.SetPrefix("mcp7940ctl: ")
	log.SetFlags(0)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	conn, err := smbus.Open(*bus, uint8(*addr))
	if err != nil {
		log.Fatalf("could not open i2c bus %d: %+v", *bus, err)
	}

	err = run(conn, uint8(*addr), *reset, flag.Args(), *broker, *topic, *freq)
	conn.Close()
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(conn *smbus.Conn, addr uint8, reset bool, args []string, broker, topic string, freq time.Duration) error {
	dev := mcp7940.NewBus(conn)
	dev.Address = addr
	if reset {
		err := dev.Configure(mcp7940.Config{})
		if err != nil {
			return fmt.Errorf("could not configure device: %w", err)
		}
	}

	c := newCtl(dev, os.Stdout)
	switch args[0] {
	case "shell":
		return c.shell(os.Stdin)
	case "watch":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return c.watch(ctx, broker, topic, freq)
	}
	return c.run(args)
}
