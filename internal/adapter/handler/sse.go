package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// sseWriter writes server-sent events to an Echo response
type sseWriter struct {
	c echo.Context
}

func startSSE(c echo.Context) *sseWriter {
	h := c.Response().Header()
	h.Set(echo.HeaderContentType, "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Flush()
	return &sseWriter{c: c}
}

// data writes v as a single unnamed event
func (w *sseWriter) data(v interface{}) error {
	return w.event("", v)
}

// event writes v as JSON under the given event name
func (w *sseWriter) event(name string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	out := w.c.Response()
	if name != "" {
		if _, err := fmt.Fprintf(out, "event: %s\n", name); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(out, "data: %s\n\n", payload); err != nil {
		return err
	}
	out.Flush()
	return nil
}

// comment writes a keep-alive line ignored by clients
func (w *sseWriter) comment(text string) error {
	if _, err := fmt.Fprintf(w.c.Response(), ": %s\n\n", text); err != nil {
		return err
	}
	w.c.Response().Flush()
	return nil
}
