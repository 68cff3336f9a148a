package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	cancerdx "github.com/kailas-cloud/cancerdx/pkg/sdk"
)

var predictCmd = &cobra.Command{
	Use:   "predict [file...]",
	Short: "Classify one or more feature files",
	Long: "Send each JSON feature file to POST /predict and print the label.\n" +
		"With no files, or \"-\", the request body is read from stdin.",
	RunE: runPredict,
}

type predictResult struct {
	Source     string `json:"source"`
	Prediction string `json:"prediction,omitempty"`
	ID         string `json:"id,omitempty"`
	Error      string `json:"error,omitempty"`
}

func runPredict(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}

	results := make([]predictResult, 0, len(args))
	failed := 0
	for _, src := range args {
		res := predictResult{Source: src}
		features, err := readFeatures(cmd.InOrStdin(), src)
		if err == nil {
			var p cancerdx.Prediction
			p, err = c.Predict(cmd.Context(), features)
			res.Prediction, res.ID = p.Label, p.ID
		}
		if err != nil {
			res.Error = err.Error()
			failed++
		}
		results = append(results, res)
	}

	if jsonOutput {
		if err := printJSON(cmd.OutOrStdout(), map[string]any{"results": results}); err != nil {
			return err
		}
	} else {
		w := newTabWriter(cmd.OutOrStdout())
		fmt.Fprintln(w, "SOURCE\tPREDICTION\tID\tERROR")
		for _, r := range results {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Source, orDash(r.Prediction), orDash(r.ID), orDash(r.Error))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d predictions failed", failed, len(results))
	}
	return nil
}

// readFeatures reads a JSON object from a file path or "-" for stdin.
func readFeatures(stdin io.Reader, src string) (map[string]any, error) {
	var raw []byte
	var err error
	if src == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var features map[string]any
	if err := dec.Decode(&features); err != nil {
		return nil, fmt.Errorf("parse %s: %w", src, err)
	}
	if features == nil {
		return nil, errors.New("parse " + src + ": expected a JSON object")
	}
	return features, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
