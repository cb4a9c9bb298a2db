// Package handlers provides command handler functions for storefrontctl
// queue operations.
//
// This file contains the dispatch queue command handlers: reading request
// envelopes from JSON Lines input, pushing them into the tiered queue,
// and either delivering them to the API server (flush) or reporting what
// would be sent (check).
package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/anycommerce/storefront/cmd/storefrontctl/config"
	"github.com/anycommerce/storefront/cmd/storefrontctl/display"
	"github.com/anycommerce/storefront/cmd/storefrontctl/utils"
	"github.com/anycommerce/storefront/internal/dispatch"
	"github.com/anycommerce/storefront/internal/flush"
	"github.com/anycommerce/storefront/internal/logging"
	"github.com/spf13/cobra"
)

// envelope is one JSON Lines record: a tier name and the raw request to
// push into it.
type envelope struct {
	Tier    string          `json:"tier"`
	Request json.RawMessage `json:"request"`
}

// HandleQueueFlush handles the queue flush subcommand: load requests into
// the dispatch queue, then flush until the queue is empty, collecting the
// response documents each delivered batch produced.
func HandleQueueFlush(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	queue, loaded, err := loadQueue(config.Queue.File)
	if err != nil {
		return err
	}
	logging.Info("Loaded %d request(s) into the dispatch queue", loaded)

	client := flush.NewClient(config.Global.APIAddr, config.Global.Endpoint,
		time.Duration(config.Global.Timeout)*time.Second)

	var delivered []display.DeliveredBatch
	driver := flush.NewDriver(&flush.Config{
		Queue:  queue,
		Sender: client,
		OnResponse: func(tier dispatch.Tier, batch []dispatch.Request, responses []json.RawMessage) {
			delivered = append(delivered, display.DeliveredBatch{
				Tier:      tier.String(),
				Requests:  batch,
				Responses: responses,
			})
		},
	})

	// Flush until empty; a cycle with no progress means deliveries failed
	sent := 0
	for queue.HasPending() {
		n := driver.Flush()
		if n == 0 {
			break
		}
		sent += n
	}

	display.DisplayDeliveredBatches(delivered)
	if sent < loaded {
		return fmt.Errorf("delivered %d of %d request(s); the rest failed", sent, loaded)
	}
	logging.Success("Successfully delivered %d request(s) in %d batch(es)", sent, len(delivered))
	return nil
}

// HandleQueueCheck handles the queue check subcommand: validate every
// request by pushing it through the queue, then report per-tier depth
// without sending anything.
func HandleQueueCheck(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	queue, loaded, err := loadQueue(config.Queue.File)
	if err != nil {
		return err
	}

	display.DisplayQueueStatus(queue)
	logging.Success("Successfully validated %d request(s)", loaded)
	return nil
}

// loadQueue reads JSON Lines envelopes and pushes each request into a
// fresh dispatch queue. Any malformed line fails the whole load: partial
// batches are worse than no batch when the input is a prepared script.
func loadQueue(path string) (*dispatch.Queue, int, error) {
	reader, closer, err := openInput(path)
	if err != nil {
		return nil, 0, err
	}
	defer closer()

	queue := dispatch.New(config.Global.Endpoint)

	loaded := 0
	lineNo := 0
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var env envelope
		if err := json.Unmarshal(line, &env); err != nil {
			return nil, 0, fmt.Errorf("line %d: invalid envelope: %w", lineNo, err)
		}

		tier, err := dispatch.ParseTier(env.Tier)
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if err := queue.Push(tier, env.Request); err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", lineNo, err)
		}
		loaded++
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read requests: %w", err)
	}
	if loaded == 0 {
		return nil, 0, fmt.Errorf("no requests found in input")
	}

	return queue, loaded, nil
}

// openInput opens the requests file, treating "-" as stdin.
func openInput(path string) (*os.File, func(), error) {
	if path == "" {
		return nil, nil, fmt.Errorf("requests file is required (use --file, or --file - for stdin)")
	}
	if path == "-" {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open requests file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
