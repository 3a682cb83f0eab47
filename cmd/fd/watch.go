package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/lobbylab/frontdesk/internal/client"
	"github.com/lobbylab/frontdesk/internal/events"
	"github.com/lobbylab/frontdesk/internal/model"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Watch analysis runs as they change",
	GroupID: "runs",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")
		natsURL, _ := cmd.Flags().GetString("nats")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		seen := make(map[string]model.RunStatus)

		// Initial query; a missing latest run just means nothing to show yet.
		if err := queryAndPrint(ctx, seen); err != nil {
			return err
		}

		if natsURL == "" {
			natsURL = os.Getenv("FRONTDESK_NATS_URL")
		}
		if natsURL == "" {
			natsURL = activeRemoteNATSURL()
		}
		if natsURL != "" {
			return watchNATS(ctx, natsURL, seen)
		}
		return watchPoll(ctx, interval, seen)
	},
}

// watchNATS re-queries the latest run on bus events, with debounce.
func watchNATS(ctx context.Context, natsURL string, seen map[string]model.RunStatus) error {
	// reconnectCh receives a signal when the NATS client reconnects after
	// a disconnect, so we can immediately re-query for missed events.
	reconnectCh := make(chan struct{}, 1)

	sub, err := events.NewNATSSubscriber(natsURL,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("nats: disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Printf("nats: reconnected")
			select {
			case reconnectCh <- struct{}{}:
			default:
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("connecting to NATS: %w", err)
	}
	defer sub.Close()

	ch, cancel, err := sub.Subscribe("frontdesk.>")
	if err != nil {
		return fmt.Errorf("subscribing to events: %w", err)
	}
	defer cancel()

	debounce := time.NewTimer(0)
	debounce.Stop()
	// Drain the timer channel in case it fired between NewTimer and Stop.
	select {
	case <-debounce.C:
	default:
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			debounce.Reset(200 * time.Millisecond)
		case <-reconnectCh:
			debounce.Reset(0) // immediate re-query
		case <-debounce.C:
			if err := queryAndPrint(ctx, seen); err != nil {
				return err
			}
		}
	}
}

// watchPoll re-queries the latest run at the given interval.
func watchPoll(ctx context.Context, interval time.Duration, seen map[string]model.RunStatus) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
		if err := queryAndPrint(ctx, seen); err != nil {
			return err
		}
	}
}

// queryAndPrint fetches the latest run and prints it when it is new or its
// status changed since the last query.
func queryAndPrint(ctx context.Context, seen map[string]model.RunStatus) error {
	resp, err := fdClient.LatestRun(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil
		}
		return fmt.Errorf("getting latest run: %w", err)
	}

	prev, ok := seen[resp.Run.ID]
	if ok && prev == resp.Run.Status {
		return nil
	}
	seen[resp.Run.ID] = resp.Run.Status

	if jsonOutput {
		printJSON(resp)
	} else {
		printRunTable(resp)
		fmt.Println()
	}
	return nil
}

func init() {
	watchCmd.Flags().Duration("interval", 5*time.Second, "polling interval when NATS is unavailable")
	watchCmd.Flags().String("nats", "", "NATS URL for event-driven watching")
}
