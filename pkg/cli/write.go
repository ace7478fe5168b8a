package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var writeCmd = &cobra.Command{
	Use:   "write analog|digital <pins> <values>",
	Short: "Write pin values",
	Long: `Write values to one or more pins. Pins and values are comma
separated and pair up positionally:

  glovectl write digital 13 high
  glovectl write digital 13,12 1,0
  glovectl write analog 9,10 128,255`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		pins, err := parsePins(args[1])
		if err != nil {
			return err
		}
		values, err := parseValues(args[2])
		if err != nil {
			return err
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()
		switch args[0] {
		case "digital":
			return s.Device.DigitalWrite(pins, values)
		case "analog":
			return s.Device.AnalogWrite(pins, values)
		}
		return fmt.Errorf("unknown write kind %q", args[0])
	},
}

var modeCmd = &cobra.Command{
	Use:   "mode <pins> <modes>",
	Short: "Configure pins as input or output",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pins, err := parsePins(args[0])
		if err != nil {
			return err
		}
		modes, err := parseValues(args[1])
		if err != nil {
			return err
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()
		return s.Device.PinMode(pins, modes)
	},
}

func init() {
	rootCmd.AddCommand(writeCmd, modeCmd)
}
