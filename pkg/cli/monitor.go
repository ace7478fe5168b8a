package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

var monitorInterval time.Duration

var monitorCmd = &cobra.Command{
	Use:   "monitor analog|digital <pins>",
	Short: "Poll pins and print readings until interrupted",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := args[0]
		if kind != "analog" && kind != "digital" {
			return fmt.Errorf("unknown read kind %q", kind)
		}
		pins, err := parsePins(args[1])
		if err != nil {
			return err
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		ticker := time.NewTicker(monitorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
			for _, pin := range pins {
				readCtx, cancel := context.WithTimeout(ctx, monitorInterval)
				var line string
				if kind == "analog" {
					value, err := s.Device.AnalogReadValue(readCtx, pin)
					if err != nil {
						cancel()
						return err
					}
					line = fmt.Sprintf("pin %d: %d", pin, value)
				} else {
					high, err := s.Device.DigitalReadValue(readCtx, pin)
					if err != nil {
						cancel()
						return err
					}
					line = fmt.Sprintf("pin %d: low", pin)
					if high {
						line = fmt.Sprintf("pin %d: high", pin)
					}
				}
				cancel()
				fmt.Printf("%s %s\n", time.Now().Format("15:04:05.000"), line)
			}
		}
	},
}

func init() {
	monitorCmd.Flags().DurationVar(&monitorInterval, "interval", time.Second, "polling interval")
	rootCmd.AddCommand(monitorCmd)
}
