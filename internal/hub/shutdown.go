package hub

import (
	"context"
	"sync"
	"time"

	"chat-hub/internal/models"
)

// Shutdown drains the hub: new upgrades are refused, every client is told
// why, write pumps get a grace period to flush, then every connection is
// closed and the loop stops. It waits for pumps and store work until ctx
// expires.
func (h *Hub) Shutdown(ctx context.Context, message string) error {
	if !h.draining.CompareAndSwap(false, true) {
		return ErrDraining
	}
	if message == "" {
		message = h.cfg.ShutdownMessage
	}

	var count int
	h.exec(func() {
		count = h.registry.Len()
		h.fanout.Broadcast(models.EventServerShutdown, models.ShutdownNotice{Message: message}, nil)
	})
	h.log.Info("hub draining", "connections", count, "grace", h.cfg.ShutdownDrainGrace)

	if h.cfg.ShutdownDrainGrace > 0 {
		timer := time.NewTimer(h.cfg.ShutdownDrainGrace)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}

	h.exec(func() {
		for _, c := range h.registry.All() {
			h.disconnect(c)
		}
	})
	h.stopOnce.Do(func() { close(h.quit) })

	select {
	case <-h.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := waitGroups(ctx, &h.async, &h.pumps); err != nil {
		h.log.Warn("hub shutdown timed out", "error", err)
		return err
	}
	h.log.Info("hub stopped")
	return nil
}

func waitGroups(ctx context.Context, groups ...*sync.WaitGroup) error {
	finished := make(chan struct{})
	go func() {
		for _, wg := range groups {
			wg.Wait()
		}
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
