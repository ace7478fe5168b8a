// Package cli implements the glovectl command line.
package cli

import (
	goflag "flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/robotalks/glove.go/pkg/glove/wire"
	"github.com/robotalks/glove.go/pkg/transport"
)

var rootCmd = &cobra.Command{
	Use:   "glovectl",
	Short: "Control a glove device over serial, TCP or websocket",
	Long: `glovectl talks to a glove device: it drives motors, configures pins
and reads analog/digital values. The device endpoint is selected with
--port (serial), --addr (TCP), --ws (websocket) or --sim (built-in
simulator).`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("port", "", "serial device path, e.g. /dev/ttyUSB0")
	pf.Int("baud", transport.DefaultBaudRate, "serial baud rate")
	pf.String("addr", "", "TCP address of a remote glove")
	pf.String("ws", "", "websocket URL of a remote glove")
	pf.Bool("sim", false, "use the built-in simulated glove")
	pf.AddGoFlagSet(goflag.CommandLine)
	viper.BindPFlags(pf)
	viper.SetEnvPrefix("glove")
	viper.AutomaticEnv()
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// parsePins parses a comma separated pin list.
func parsePins(s string) ([]int, error) {
	var pins []int
	for _, item := range strings.Split(s, ",") {
		pin, err := strconv.Atoi(strings.TrimSpace(item))
		if err != nil {
			return nil, fmt.Errorf("bad pin %q", item)
		}
		pins = append(pins, pin)
	}
	return pins, nil
}

// parseValues parses a comma separated value list. Digital levels and
// modes also accept their symbolic names.
func parseValues(s string) ([]int, error) {
	var values []int
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		switch strings.ToLower(item) {
		case "low":
			values = append(values, wire.Low)
		case "high":
			values = append(values, wire.High)
		case "input":
			values = append(values, wire.Input)
		case "output":
			values = append(values, wire.Output)
		default:
			v, err := strconv.Atoi(item)
			if err != nil {
				return nil, fmt.Errorf("bad value %q", item)
			}
			values = append(values, v)
		}
	}
	return values, nil
}
