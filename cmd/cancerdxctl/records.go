package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Inspect stored diagnosis records",
}

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all records",
	Args:  cobra.NoArgs,
	RunE:  runRecordsList,
}

var recordsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one record with its features",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordsGet,
}

func init() {
	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsGetCmd)
}

func runRecordsList(cmd *cobra.Command, _ []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}
	patients, err := c.ListRecords(cmd.Context())
	if err != nil {
		return fmt.Errorf("list records: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"Patients": patients,
			"total":    len(patients),
		})
	}

	if len(patients) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No records found.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tNAME\tAGE\tGENDER\tPREDICTION")
	for _, p := range patients {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Id,
			display(p.Personal.Name),
			display(p.Personal.Age),
			display(p.Personal.Gender),
			p.Prediction,
		)
	}
	return w.Flush()
}

func runRecordsGet(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}
	rec, err := c.GetRecord(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get record %s: %w", args[0], err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{"Patient": rec})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:         %s\n", rec.Id)
	fmt.Fprintf(out, "Name:       %s\n", display(rec.Personal.Name))
	fmt.Fprintf(out, "Age:        %s\n", display(rec.Personal.Age))
	fmt.Fprintf(out, "Gender:     %s\n", display(rec.Personal.Gender))
	fmt.Fprintf(out, "Prediction: %s\n", rec.Prediction)
	fmt.Fprintf(out, "Timestamp:  %s\n", rec.Timestamp.Format("2006-01-02 15:04:05"))

	names := make([]string, 0, len(rec.Features))
	for name := range rec.Features {
		names = append(names, name)
	}
	sort.Strings(names)

	w := newTabWriter(out)
	fmt.Fprintln(w, "\nFEATURE\tVALUE")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%v\n", name, rec.Features[name])
	}
	return w.Flush()
}
