package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"recruitment-hub/internal/middleware"
	"recruitment-hub/internal/service/subscription"
)

const DefaultHeartbeat = 15 * time.Second

// SubscriptionHandler serves the live streams as server-sent events. Each
// frame is "event: <name>" followed by one JSON "data:" line.
type SubscriptionHandler struct {
	subService subscription.Service
	heartbeat  time.Duration
}

func NewSubscriptionHandler(subService subscription.Service, heartbeat time.Duration) *SubscriptionHandler {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return &SubscriptionHandler{
		subService: subService,
		heartbeat:  heartbeat,
	}
}

func (h *SubscriptionHandler) ApplicationCreated(c *fiber.Ctx) error {
	vacancyID, err := optionalQueryID(c, "vacancy_id", "vacancy")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := h.subService.ApplicationCreated(ctx, middleware.GetCurrentAccount(c), vacancyID)
	if err != nil {
		cancel()
		return err
	}
	return serve(c, ctx, cancel, "applicationCreated", stream, h.heartbeat)
}

func (h *SubscriptionHandler) ApplicationStatusUpdated(c *fiber.Ctx) error {
	candidateID, err := optionalQueryID(c, "candidate_id", "candidate")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := h.subService.ApplicationStatusUpdated(ctx, middleware.GetCurrentAccount(c), candidateID)
	if err != nil {
		cancel()
		return err
	}
	return serve(c, ctx, cancel, "applicationStatusUpdated", stream, h.heartbeat)
}

func (h *SubscriptionHandler) InterviewScheduled(c *fiber.Ctx) error {
	applicationID, err := optionalQueryID(c, "application_id", "application")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := h.subService.InterviewScheduled(ctx, middleware.GetCurrentAccount(c), applicationID)
	if err != nil {
		cancel()
		return err
	}
	return serve(c, ctx, cancel, "interviewScheduled", stream, h.heartbeat)
}

func (h *SubscriptionHandler) NotificationReceived(c *fiber.Ctx) error {
	recipientID, err := optionalQueryID(c, "recipient_id", "recipient")
	if err != nil {
		return err
	}
	if recipientID == nil {
		recipientID = &uuid.Nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := h.subService.NotificationReceived(ctx, middleware.GetCurrentAccount(c), *recipientID)
	if err != nil {
		cancel()
		return err
	}
	return serve(c, ctx, cancel, "notificationReceived", stream, h.heartbeat)
}

// serve owns cancel: the subscription is released when the client goes away,
// which shows up as a failed write or flush.
func serve[T any](c *fiber.Ctx, ctx context.Context, cancel context.CancelFunc, name string, stream <-chan T, heartbeat time.Duration) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()

		if _, err := w.WriteString(": connected\n\n"); err != nil || w.Flush() != nil {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case payload, ok := <-stream:
				if !ok {
					return
				}
				if err := writeEvent(w, name, payload); err != nil {
					log.Debug().Err(err).Str("stream", name).Msg("subscriber disconnected")
					return
				}
			}
		}
	}))

	return nil
}

func writeEvent(w *bufio.Writer, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return err
	}
	return w.Flush()
}
