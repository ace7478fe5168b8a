package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/abiosoft/ishell"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive console against one open connection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()
		runShell(s)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(s *session) {
	sh := ishell.New()
	sh.SetPrompt("glove> ")
	sh.AddCmd(&ishell.Cmd{
		Name: "aread",
		Help: "aread <pin> - analog read",
		Func: shellRead(s, true),
	})
	sh.AddCmd(&ishell.Cmd{
		Name: "dread",
		Help: "dread <pin> - digital read",
		Func: shellRead(s, false),
	})
	sh.AddCmd(&ishell.Cmd{
		Name: "dwrite",
		Help: "dwrite <pins> <values> - digital write",
		Func: shellWrite(s, func(pins, values []int) error {
			return s.Device.DigitalWrite(pins, values)
		}),
	})
	sh.AddCmd(&ishell.Cmd{
		Name: "awrite",
		Help: "awrite <pins> <values> - analog write",
		Func: shellWrite(s, func(pins, values []int) error {
			return s.Device.AnalogWrite(pins, values)
		}),
	})
	sh.AddCmd(&ishell.Cmd{
		Name: "mode",
		Help: "mode <pins> <modes> - set pin modes",
		Func: shellWrite(s, func(pins, modes []int) error {
			return s.Device.PinMode(pins, modes)
		}),
	})
	sh.AddCmd(&ishell.Cmd{
		Name: "minit",
		Help: "minit <pins> - initialize motor pins",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("usage: minit <pins>"))
				return
			}
			pins, err := parsePins(c.Args[0])
			if err == nil {
				err = s.Device.InitializeMotor(pins)
			}
			if err != nil {
				c.Err(err)
			}
		},
	})
	sh.AddCmd(&ishell.Cmd{
		Name: "motor",
		Help: "motor <pins> <values> - activate motors",
		Func: shellWrite(s, func(pins, values []int) error {
			return s.Device.ActivateMotor(pins, values)
		}),
	})
	sh.AddCmd(&ishell.Cmd{
		Name: "pending",
		Help: "pending - number of reads awaiting responses",
		Func: func(c *ishell.Context) {
			c.Println(s.Device.Pending())
		},
	})
	sh.Run()
}

func shellRead(s *session, analog bool) func(*ishell.Context) {
	return func(c *ishell.Context) {
		if len(c.Args) != 1 {
			c.Err(fmt.Errorf("usage: read <pin>"))
			return
		}
		pins, err := parsePins(c.Args[0])
		if err != nil || len(pins) != 1 {
			c.Err(fmt.Errorf("bad pin %q", c.Args[0]))
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if analog {
			value, err := s.Device.AnalogReadValue(ctx, pins[0])
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(value)
			return
		}
		high, err := s.Device.DigitalReadValue(ctx, pins[0])
		if err != nil {
			c.Err(err)
			return
		}
		if high {
			c.Println("high")
		} else {
			c.Println("low")
		}
	}
}

func shellWrite(s *session, op func(pins, values []int) error) func(*ishell.Context) {
	return func(c *ishell.Context) {
		if len(c.Args) != 2 {
			c.Err(fmt.Errorf("usage: <pins> <values>"))
			return
		}
		pins, err := parsePins(c.Args[0])
		if err != nil {
			c.Err(err)
			return
		}
		values, err := parseValues(c.Args[1])
		if err != nil {
			c.Err(err)
			return
		}
		if err := op(pins, values); err != nil {
			c.Err(err)
		}
	}
}
