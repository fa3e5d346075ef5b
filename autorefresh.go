package providerhub

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/agentstation/providerhub/pkg/constants"
	"github.com/agentstation/providerhub/pkg/errors"
	"github.com/agentstation/providerhub/pkg/logging"
)

// AutoRefreshOn reloads the models of every configured provider each
// interval until AutoRefreshOff or Close. A running refresh loop is
// replaced.
func (h *Hub) AutoRefreshOn(interval time.Duration) error {
	if interval <= 0 {
		return &errors.ValidationError{
			Field:   "autoRefreshInterval",
			Value:   interval,
			Message: "refresh interval must be positive",
		}
	}

	if err := h.AutoRefreshOff(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	h.refreshTicker = ticker
	h.refreshCancel = cancel
	h.refreshDone = done

	go func() {
		defer close(done)
		for {
			select {
			case <-ticker.C:
				refreshCtx, refreshCancel := context.WithTimeout(ctx, constants.CommandTimeout)
				err := h.registry.LoadModelsForConfiguredProviders(refreshCtx)
				refreshCancel()

				if err != nil {
					if stderrors.Is(err, context.Canceled) && ctx.Err() != nil {
						return
					}
					logging.Error().Err(err).Msg("auto refresh failed")
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	logging.Debug().Dur("interval", interval).Msg("auto refresh started")
	return nil
}

// AutoRefreshOff stops the refresh loop and waits for it to exit.
func (h *Hub) AutoRefreshOff() error {
	h.mu.Lock()
	ticker, cancel, done := h.refreshTicker, h.refreshCancel, h.refreshDone
	h.refreshTicker, h.refreshCancel, h.refreshDone = nil, nil, nil
	h.mu.Unlock()

	if ticker != nil {
		ticker.Stop()
	}
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	return nil
}

// AutoRefreshing reports whether the refresh loop is running.
func (h *Hub) AutoRefreshing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.refreshTicker != nil
}
