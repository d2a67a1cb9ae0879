package workflow

import (
	"context"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
)

// Notifications lists the messages addressed to the customer.
type Notifications struct {
	screen
	api     NotificationAPI
	session Session
	items   []models.Notification
}

func NewNotifications(api NotificationAPI, s Session) *Notifications {
	return &Notifications{api: api, session: s}
}

func (n *Notifications) Items() []models.Notification { return n.items }

// Unread counts the messages not yet marked as read.
func (n *Notifications) Unread() int {
	var c int
	for _, it := range n.items {
		if !it.Read {
			c++
		}
	}
	return c
}

func (n *Notifications) Load(ctx context.Context) error {
	user, err := currentUser(n.session)
	if err != nil {
		return n.failWith(err, msgNotAuthenticated)
	}

	n.loading = true
	items, err := n.api.Notifications(ctx, user.ID)
	n.loading = false
	if err != nil {
		return n.failWith(err, "Failed to load notifications.")
	}
	n.items = items
	return nil
}

func (n *Notifications) MarkRead(ctx context.Context, id int64) error {
	if err := n.api.MarkNotificationRead(ctx, id); err != nil {
		return n.failWith(err, "Failed to mark notification as read.")
	}
	for i := range n.items {
		if n.items[i].ID == id {
			n.items[i].Read = true
		}
	}
	return nil
}
