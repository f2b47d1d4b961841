package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListNotifications returns the caller's notifications, newest first.
// When unreadOnly is set, read notifications are excluded.
func (c *Client) ListNotifications(ctx context.Context, unreadOnly bool) ([]Notification, error) {
	path := apiPrefix + "/notifications"
	if unreadOnly {
		path += "?unread_only=true"
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var notifications []Notification
	if err := c.parseResponse(resp, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int) (*Notification, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("%s/notifications/%d/read", apiPrefix, id), nil)
	if err != nil {
		return nil, err
	}

	var notification Notification
	if err := c.parseResponse(resp, &notification); err != nil {
		return nil, err
	}
	return &notification, nil
}

// DeleteNotification removes a notification belonging to the caller.
func (c *Client) DeleteNotification(ctx context.Context, id int) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("%s/notifications/%d", apiPrefix, id), nil)
	if err != nil {
		return err
	}
	return c.parseResponse(resp, nil)
}
