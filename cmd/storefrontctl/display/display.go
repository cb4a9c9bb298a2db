// Package display provides output formatting and display functions for storefrontctl.
//
// This package handles all user-facing output formatting including table
// and JSON output for queue contents, delivered batches, SKU resolution,
// and health probes. It provides consistent formatting across all
// storefrontctl commands with support for verbose mode and different
// output formats.
//
// All display functions respect global configuration for output format,
// verbosity, and other user preferences while maintaining clean
// separation from business logic.
package display

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/anycommerce/storefront/cmd/storefrontctl/config"
	"github.com/anycommerce/storefront/internal/catalog"
	"github.com/anycommerce/storefront/internal/currency"
	"github.com/anycommerce/storefront/internal/dispatch"
	"github.com/anycommerce/storefront/internal/logging"
	"github.com/dustin/go-humanize"
)

// DeliveredBatch records one delivered batch with the responses the
// server answered it with.
type DeliveredBatch struct {
	Tier      string             `json:"tier"`
	Requests  []dispatch.Request `json:"requests"`
	Responses []json.RawMessage  `json:"responses"`
}

// SKUResolution is the result of assembling a SKU from a product
// document and a set of variation selections.
type SKUResolution struct {
	PID        string                 `json:"pid"`
	SKU        string                 `json:"sku"`
	Price      float64                `json:"price"`
	Selections map[string]string      `json:"selections,omitempty"`
	Inventory  *catalog.InventoryItem `json:"inventory,omitempty"`
}

// DisplayQueueStatus displays per-tier queue depth in tabular or JSON format.
func DisplayQueueStatus(queue *dispatch.Queue) {
	if config.Global.Output == "json" {
		status := make(map[string]int, 3)
		for _, tier := range dispatch.Tiers() {
			status[tier.String()] = queue.Len(tier)
		}
		encodeJSON(status)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "TIER\tPENDING")
	for _, tier := range dispatch.Tiers() {
		fmt.Fprintf(w, "%s\t%s\n", tier, humanize.Comma(int64(queue.Len(tier))))
	}
}

// DisplayDeliveredBatches displays the outcome of a queue flush: each
// delivered batch with its commands and, in verbose mode, the raw
// response documents.
func DisplayDeliveredBatches(batches []DeliveredBatch) {
	if config.Global.Output == "json" {
		if batches == nil {
			batches = []DeliveredBatch{}
		}
		encodeJSON(batches)
		return
	}

	if len(batches) == 0 {
		fmt.Println("No batches delivered")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BATCH\tTIER\tREQUESTS\tCOMMANDS")
	for i, batch := range batches {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", i+1, batch.Tier, len(batch.Requests), commandList(batch.Requests))
	}
	w.Flush()

	if config.Global.Verbose {
		for i, batch := range batches {
			fmt.Printf("\nBatch %d responses:\n", i+1)
			for _, response := range batch.Responses {
				fmt.Printf("  %s\n", response)
			}
		}
	}
}

// DisplaySKUResolution displays an assembled SKU with its price and any
// known stock record.
func DisplaySKUResolution(result SKUResolution) {
	if config.Global.Output == "json" {
		encodeJSON(result)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Product:\t%s\n", result.PID)
	fmt.Fprintf(w, "SKU:\t%s\n", result.SKU)
	fmt.Fprintf(w, "Price:\t%s\n", currency.Format(result.Price, "USD"))
	if result.Inventory != nil {
		fmt.Fprintf(w, "Available:\t%s\n", result.Inventory.Available)
		fmt.Fprintf(w, "On shelf:\t%s\n", result.Inventory.OnShelf)
	}
}

// DisplayValidation displays one field validation outcome.
func DisplayValidation(value, rule string, ok bool) {
	if config.Global.Output == "json" {
		encodeJSON(map[string]any{"value": value, "rule": rule, "valid": ok})
		return
	}

	verdict := "valid"
	if !ok {
		verdict = "invalid"
	}
	fmt.Printf("%s: %q is %s\n", rule, value, verdict)
}

// DisplayHealth displays the API server probe outcome.
func DisplayHealth(apiAddr string, elapsed time.Duration, err error) {
	if config.Global.Output == "json" {
		status := map[string]any{
			"server":  apiAddr,
			"healthy": err == nil,
			"elapsed": elapsed.String(),
			"checked": humanize.Time(time.Now()),
		}
		if err != nil {
			status["error"] = err.Error()
		}
		encodeJSON(status)
		return
	}

	if err != nil {
		fmt.Printf("Server %s is unreachable: %v\n", apiAddr, err)
		return
	}
	fmt.Printf("Server %s is healthy (%v)\n", apiAddr, elapsed)
}

// commandList joins a batch's command names for the table view.
func commandList(requests []dispatch.Request) string {
	out := ""
	for i, req := range requests {
		if i > 0 {
			out += ","
		}
		out += req.Cmd
	}
	return out
}

// encodeJSON writes indented JSON to stdout.
func encodeJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		logging.Error("Failed to encode JSON: %v", err)
		fmt.Println("Error encoding JSON output")
	}
}
