package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var readTimeout time.Duration

var readCmd = &cobra.Command{
	Use:   "read analog|digital <pin>",
	Short: "Read a pin value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pin, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad pin %q", args[1])
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()
		ctx, cancel := context.WithTimeout(cmd.Context(), readTimeout)
		defer cancel()
		switch args[0] {
		case "analog":
			value, err := s.Device.AnalogReadValue(ctx, pin)
			if err != nil {
				return err
			}
			fmt.Println(value)
		case "digital":
			high, err := s.Device.DigitalReadValue(ctx, pin)
			if err != nil {
				return err
			}
			if high {
				fmt.Println("high")
			} else {
				fmt.Println("low")
			}
		default:
			return fmt.Errorf("unknown read kind %q", args[0])
		}
		return nil
	},
}

func init() {
	readCmd.Flags().DurationVar(&readTimeout, "timeout", 5*time.Second, "read timeout")
	rootCmd.AddCommand(readCmd)
}
