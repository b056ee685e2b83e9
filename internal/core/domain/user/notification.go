package user

import (
	"context"

	c "blog/internal/core/domain/common"
)

type Notification struct {
	Purpose   TokenPurpose
	To        c.Email
	Name      string
	ActionURL string
}

type NotificationSender interface {
	Send(ctx context.Context, n Notification) error
}

type ActionLinkBuilder interface {
	BuildActionURL(purpose TokenPurpose, userID ID, token ActionToken) string
}
