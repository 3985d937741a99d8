package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ajanata/tinygo-drivers/mcp7940"
)

const usage = `commands:
  now                              print the chip time
  set <RFC3339|now>                set the chip time and start the oscillator
  start | stop                     start or stop the oscillator
  status                           print oscillator, battery and alarm state
  battery on|off                   enable or disable battery backup
  alarm <0|1>                      print an alarm
  alarm <0|1> <MM-DD> <hh:mm:ss> <weekday>
                                   arm an alarm matching all fields
  alarm-off <0|1>                  disable an alarm
  alarm-clear <0|1>                clear an alarm interrupt flag
  polarity high|low                set the alarm output polarity
  leap                             report whether the chip year is a leap year
`

type ctl struct {
	dev *mcp7940.Device
	out io.Writer
	now func() time.Time
}

func newCtl(dev *mcp7940.Device, out io.Writer) *ctl {
	return &ctl{dev: dev, out: out, now: time.Now}
}

var commands = []string{
	"now", "set", "start", "stop", "status", "battery",
	"alarm", "alarm-off", "alarm-clear", "polarity", "leap", "help",
}

func (c *ctl) run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command")
	}
	name, args := args[0], args[1:]
	switch name {
	case "now":
		t, err := c.dev.Now()
		if err != nil {
			return fmt.Errorf("could not read time: %w", err)
		}
		fmt.Fprintf(c.out, "%s %s\n", t.Format(time.RFC3339), t.Weekday())
		return nil

	case "set":
		if len(args) != 1 {
			return fmt.Errorf("set: want 1 argument, got %d", len(args))
		}
		t := c.now().UTC()
		if args[0] != "now" {
			var err error
			t, err = time.Parse(time.RFC3339, args[0])
			if err != nil {
				return fmt.Errorf("set: %w", err)
			}
			t = t.UTC()
		}
		if err := mcp7940.CalendarFromTime(t).Validate(); err != nil {
			return fmt.Errorf("set: %w", err)
		}
		if err := c.dev.Set(t); err != nil {
			return fmt.Errorf("could not set time: %w", err)
		}
		return nil

	case "start":
		return c.dev.Start()

	case "stop":
		return c.dev.Stop()

	case "status":
		return c.status()

	case "battery":
		if len(args) != 1 {
			return fmt.Errorf("battery: want on or off")
		}
		on, err := parseOnOff(args[0])
		if err != nil {
			return fmt.Errorf("battery: %w", err)
		}
		return c.dev.SetBatteryBackup(on)

	case "alarm":
		switch len(args) {
		case 1:
			a, err := parseAlarm(args[0])
			if err != nil {
				return err
			}
			return c.printAlarm(a)
		case 4:
			a, err := parseAlarm(args[0])
			if err != nil {
				return err
			}
			t, err := parseAlarmTime(args[1], args[2], args[3])
			if err != nil {
				return fmt.Errorf("alarm: %w", err)
			}
			if err := c.dev.ConfigureAlarm(a, t); err != nil {
				return fmt.Errorf("could not configure alarm %d: %w", a, err)
			}
			return nil
		}
		return fmt.Errorf("alarm: want 1 or 4 arguments, got %d", len(args))

	case "alarm-off", "alarm-clear":
		if len(args) != 1 {
			return fmt.Errorf("%s: want an alarm number", name)
		}
		a, err := parseAlarm(args[0])
		if err != nil {
			return err
		}
		if name == "alarm-off" {
			return c.dev.DisableAlarm(a)
		}
		return c.dev.ClearAlarm(a)

	case "polarity":
		if len(args) != 1 {
			return fmt.Errorf("polarity: want high or low")
		}
		switch args[0] {
		case "high":
			return c.dev.SetAlarmPolarity(mcp7940.ActiveHigh)
		case "low":
			return c.dev.SetAlarmPolarity(mcp7940.ActiveLow)
		}
		return fmt.Errorf("polarity: invalid value %q", args[0])

	case "leap":
		leap, err := c.dev.IsLeapYear()
		if err != nil {
			return fmt.Errorf("could not read time: %w", err)
		}
		fmt.Fprintf(c.out, "leap=%v\n", leap)
		return nil

	case "help":
		fmt.Fprint(c.out, usage)
		return nil
	}
	return fmt.Errorf("unknown command %q", name)
}

func (c *ctl) status() error {
	started, err := c.dev.IsStarted()
	if err != nil {
		return fmt.Errorf("could not read oscillator state: %w", err)
	}
	battery, err := c.dev.BatteryBackupEnabled()
	if err != nil {
		return fmt.Errorf("could not read battery state: %w", err)
	}
	pol, err := c.dev.AlarmPolarity()
	if err != nil {
		return fmt.Errorf("could not read alarm polarity: %w", err)
	}
	fmt.Fprintf(c.out, "started=%v battery=%v polarity=%s\n", started, battery, polarityName(pol))
	for _, a := range []mcp7940.Alarm{mcp7940.Alarm0, mcp7940.Alarm1} {
		if err := c.printAlarm(a); err != nil {
			return err
		}
	}
	return nil
}

func (c *ctl) printAlarm(a mcp7940.Alarm) error {
	t, err := c.dev.ReadAlarm(a)
	if err != nil {
		return fmt.Errorf("could not read alarm %d: %w", a, err)
	}
	enabled, err := c.dev.AlarmEnabled(a)
	if err != nil {
		return fmt.Errorf("could not read alarm %d: %w", a, err)
	}
	fired, err := c.dev.AlarmFired(a)
	if err != nil {
		return fmt.Errorf("could not read alarm %d: %w", a, err)
	}
	fmt.Fprintf(c.out, "alarm%d: %02d-%02d %02d:%02d:%02d weekday=%d enabled=%v fired=%v\n",
		a, t.Month, t.Day, t.Hour, t.Minute, t.Second, t.Weekday, enabled, fired,
	)
	return nil
}

func polarityName(p mcp7940.Polarity) string {
	if p == mcp7940.ActiveHigh {
		return "high"
	}
	return "low"
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid value %q", s)
}

func parseAlarm(s string) (mcp7940.Alarm, error) {
	switch s {
	case "0":
		return mcp7940.Alarm0, nil
	case "1":
		return mcp7940.Alarm1, nil
	}
	return 0, fmt.Errorf("invalid alarm %q: %w", s, mcp7940.ErrInvalidAlarm)
}

// parseAlarmTime parses "MM-DD", "hh:mm:ss" and a 0-based weekday.
func parseAlarmTime(date, clock, weekday string) (mcp7940.AlarmTime, error) {
	var t mcp7940.AlarmTime
	_, err := fmt.Sscanf(date, "%d-%d", &t.Month, &t.Day)
	if err != nil {
		return t, fmt.Errorf("invalid date %q: %w", date, err)
	}
	_, err = fmt.Sscanf(clock, "%d:%d:%d", &t.Hour, &t.Minute, &t.Second)
	if err != nil {
		return t, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	t.Weekday, err = strconv.Atoi(weekday)
	if err != nil {
		return t, fmt.Errorf("invalid weekday %q: %w", weekday, err)
	}
	return t, t.Validate()
}
