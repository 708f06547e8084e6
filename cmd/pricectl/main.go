// pricectl submits a laptop specification to a running pricer instance and
// prints the predicted price. The spec is read from a JSON file matching
// the /api/predict request body.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

type predictResponse struct {
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	ModelVersion string  `json:"model_version"`
	LatencyMS    float64 `json:"latency_ms"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func main() {
	addr := flag.String("addr", "http://localhost:8080", "base URL of the pricer service")
	specPath := flag.String("spec", "", "path to a JSON laptop spec file (required)")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	showOptions := flag.Bool("options", false, "print the valid categorical options and exit")
	flag.Parse()

	client := resty.New().
		SetBaseURL(*addr).
		SetTimeout(*timeout).
		SetHeader("Content-Type", "application/json")

	if *showOptions {
		if err := printOptions(client); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *specPath == "" {
		fmt.Fprintln(os.Stderr, "error: -spec is required")
		flag.Usage()
		os.Exit(2)
	}

	spec, err := os.ReadFile(*specPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: read spec: %v\n", err)
		os.Exit(1)
	}

	var result predictResponse
	var apiErr errorResponse
	resp, err := client.R().
		SetBody(json.RawMessage(spec)).
		SetResult(&result).
		SetError(&apiErr).
		Post("/api/predict")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: request failed: %v\n", err)
		os.Exit(1)
	}

	if resp.IsError() {
		msg := apiErr.Error
		if msg == "" {
			msg = resp.Status()
		}
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
		os.Exit(1)
	}

	fmt.Printf("predicted price: %.2f %s (model %s, %.2fms)\n",
		result.Price, result.Currency, result.ModelVersion, result.LatencyMS)
}

func printOptions(client *resty.Client) error {
	var options map[string][]string
	resp, err := client.R().SetResult(&options).Get("/api/options")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("server returned %s", resp.Status())
	}

	out, err := json.MarshalIndent(options, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
