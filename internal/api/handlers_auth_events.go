package api

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/skinsight/internal/metrics"
	"github.com/valyala/fasthttp"
)

const sessionStreamKeepAlive = 20 * time.Second

// SessionEvents streams the signed-in user's session events as server-sent
// events until the client goes away or the broker shuts down.
func (handler *Handler) SessionEvents(c *fiber.Ctx) error {
	session := currentSession(c)
	userID := session.UserID()

	stream, unsubscribe, err := handler.broker.Subscribe(c.UserContext(), userID)
	if err != nil {
		handler.logger.Error("subscribe session events", "user_id", userID, "error", err)
		return apiError(c, fiber.StatusServiceUnavailable, "Session events are unavailable")
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	logger := handler.logger
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(writer *bufio.Writer) {
		metrics.SessionStreamOpened()
		defer metrics.SessionStreamClosed()
		defer unsubscribe()

		ticker := time.NewTicker(sessionStreamKeepAlive)
		defer ticker.Stop()

		fmt.Fprint(writer, "retry: 5000\n\n")
		if err := writer.Flush(); err != nil {
			return
		}

		for {
			select {
			case event, ok := <-stream:
				if !ok {
					return
				}
				payload, err := json.Marshal(event)
				if err != nil {
					logger.Warn("encode session event", "user_id", userID, "error", err)
					continue
				}
				fmt.Fprintf(writer, "event: session\ndata: %s\n\n", payload)
			case <-ticker.C:
				fmt.Fprint(writer, ": keep-alive\n\n")
			}
			if err := writer.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}
