package cli

import (
	"github.com/spf13/cobra"
)

var motorCmd = &cobra.Command{
	Use:   "motor",
	Short: "Motor operations",
}

var motorInitCmd = &cobra.Command{
	Use:   "init <pins>",
	Short: "Declare the motor pins to the firmware",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pins, err := parsePins(args[0])
		if err != nil {
			return err
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()
		return s.Device.InitializeMotor(pins)
	},
}

var motorOnCmd = &cobra.Command{
	Use:   "on <pins> <values>",
	Short: "Activate motors with levels or strengths (0-255)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pins, err := parsePins(args[0])
		if err != nil {
			return err
		}
		values, err := parseValues(args[1])
		if err != nil {
			return err
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()
		return s.Device.ActivateMotor(pins, values)
	},
}

func init() {
	motorCmd.AddCommand(motorInitCmd, motorOnCmd)
	rootCmd.AddCommand(motorCmd)
}
