package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ngochandev/taphoa-BE/internal/event"
)

// @Summary		Stream order events via Server-Sent Events
// @Description	Establishes an SSE connection that pushes order_created and order_paid events, so a second screen at the counter updates without polling.
// @Tags			orders
// @Produce		text/event-stream
// @Success		200	{string}	string	"Event stream. Data will be sent as SSE events with format: 'event: {eventType}\ndata: {jsonData}'"
// @Security		BearerAuth
// @Router			/v1/orders/stream [get]
func (server *Server) streamOrderEvents(c *gin.Context) {
	// Thiết lập header SSE
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Status(http.StatusOK)

	// Tạo channel cho client
	clientChan := make(chan event.Event, 8)
	server.eventSender.Register(event.TopicOrders, clientChan)
	defer server.eventSender.Unregister(event.TopicOrders, clientChan)

	// Gửi sự kiện tới client
	for {
		select {
		case ev := <-clientChan:
			data, _ := json.Marshal(ev.Data)
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", ev.Type, data)
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
