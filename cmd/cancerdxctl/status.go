package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Print the service welcome message",
	Args:  cobra.NoArgs,
	RunE:  runPing,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show service health",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func runPing(cmd *cobra.Command, _ []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}
	msg, err := c.Home(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]string{"message": msg})
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func runHealth(cmd *cobra.Command, _ []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}
	h, err := c.Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("health: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), h)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "status:  %s\nversion: %s\n", h.Status, h.Version)
	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "CHECK\tSTATUS")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%s\n", name, h.Checks[name])
	}
	return w.Flush()
}
