package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
)

func (c *HTTPClient) Notifications(ctx context.Context, userID int64) ([]models.Notification, error) {
	var ws []notificationWire
	err := c.doJSON(ctx, request{
		method: http.MethodGet,
		path:   idPath("/api/customer/notifications/getNotificationsByUser/%d", userID),
		auth:   true,
	}, &ws)
	if err != nil {
		return nil, err
	}
	out := make([]models.Notification, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.model())
	}
	return out, nil
}

func (c *HTTPClient) MarkNotificationRead(ctx context.Context, id int64) error {
	_, err := c.do(ctx, request{method: http.MethodPut, path: idPath("/api/customer/notifications/markAsRead/%d/read", id), auth: true})
	return err
}
