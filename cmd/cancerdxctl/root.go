package main

import (
	"encoding/json"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/cancerdx/internal/version"
	cancerdx "github.com/kailas-cloud/cancerdx/pkg/sdk"
)

var (
	serverAddr string
	jsonOutput bool
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "cancerdxctl",
	Short:         "cancerdxctl - command-line client for the cancerdx service",
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr",
		envOr("CANCERDX_ADDR", "http://localhost:5000"),
		"Service base URL (env CANCERDX_ADDR)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Output in JSON format")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second,
		"Request timeout")

	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(recordsCmd)
}

// newClient builds a service client from the persistent flags.
func newClient() (*cancerdx.Client, error) {
	return cancerdx.New(serverAddr,
		cancerdx.WithTimeout(timeout),
		cancerdx.WithUserAgent("cancerdxctl/"+version.Version),
	)
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// display renders a passthrough personal value, "-" when empty.
func display(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		if x == "" {
			return "-"
		}
		return x
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return "?"
		}
		return string(b)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
