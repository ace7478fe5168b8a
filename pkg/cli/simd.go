package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	fx "github.com/robotalks/glove.go/pkg/framework"
	"github.com/robotalks/glove.go/pkg/glove/sim"
	"github.com/robotalks/glove.go/pkg/transport"
)

var (
	simdListen  string
	simdAnalog  []string
	simdDigital []string
)

var simdCmd = &cobra.Command{
	Use:   "simd",
	Short: "Serve a simulated glove over TCP",
	Long: `Serve the built-in simulated glove on a TCP address so other
glovectl invocations (or the bridge daemon) can connect with --addr.
Pin readings are seeded with --analog/--digital pin=value pairs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		device := sim.New()
		for _, spec := range simdAnalog {
			pin, value, err := parsePinValue(spec)
			if err != nil {
				return err
			}
			device.SetAnalog(pin, value)
		}
		for _, spec := range simdDigital {
			pin, value, err := parsePinValue(spec)
			if err != nil {
				return err
			}
			device.SetDigital(pin, value)
		}
		server := &transport.Server{Addr: simdListen, Device: device}
		return fx.NewRunner().HandleSignals().
			Go(fx.NamedRun("simd", server)).
			Wait()
	},
}

func parsePinValue(spec string) (pin, value int, err error) {
	parts := strings.SplitN(spec, "=", 2)
	if pin, err = strconv.Atoi(parts[0]); err != nil {
		return
	}
	if len(parts) == 2 {
		value, err = strconv.Atoi(parts[1])
	}
	return
}

func init() {
	simdCmd.Flags().StringVar(&simdListen, "listen", ":7707", "listen address")
	simdCmd.Flags().StringArrayVar(&simdAnalog, "analog", nil, "seed analog pin=value")
	simdCmd.Flags().StringArrayVar(&simdDigital, "digital", nil, "seed digital pin=level")
	rootCmd.AddCommand(simdCmd)
}
