package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/evcraddock/house-market/internal/chat"
)

const messagesPath = "/api/mensajes-chat"

// SendMessage posts a chat message.
func (c *Client) SendMessage(ctx context.Context, req chat.SendRequest) (*chat.Message, error) {
	var m chat.Message
	if err := c.post(ctx, messagesPath, req, &m); err != nil {
		return nil, wrap("client.SendMessage", "could not send the message", err)
	}
	return &m, nil
}

// GetMessage returns one message.
func (c *Client) GetMessage(ctx context.Context, id int64) (*chat.Message, error) {
	var m chat.Message
	if err := c.get(ctx, idPath(messagesPath, id), &m); err != nil {
		return nil, wrap("client.GetMessage", "could not load the message", err)
	}
	return &m, nil
}

// Conversation returns the messages exchanged between two users.
func (c *Client) Conversation(ctx context.Context, user1, user2 int64) ([]*chat.Message, error) {
	params := url.Values{}
	params.Set("usuario1", strconv.FormatInt(user1, 10))
	params.Set("usuario2", strconv.FormatInt(user2, 10))

	var msgs []*chat.Message
	if err := c.get(ctx, messagesPath+"/conversacion?"+params.Encode(), &msgs); err != nil {
		return nil, wrap("client.Conversation", "could not load the conversation", err)
	}
	return msgs, nil
}

// ListMessagesByProperty returns the messages about a property.
func (c *Client) ListMessagesByProperty(ctx context.Context, propertyID int64) ([]*chat.Message, error) {
	var msgs []*chat.Message
	if err := c.get(ctx, idPath(messagesPath+"/propiedad", propertyID), &msgs); err != nil {
		return nil, wrap("client.ListMessagesByProperty", "could not load messages", err)
	}
	return msgs, nil
}

// MarkMessageRead flags a message as read.
func (c *Client) MarkMessageRead(ctx context.Context, id int64) (*chat.Message, error) {
	var m chat.Message
	if err := c.patch(ctx, idPath(messagesPath, id)+"/leido", &m); err != nil {
		return nil, wrap("client.MarkMessageRead", "could not mark the message as read", err)
	}
	return &m, nil
}

// DeleteMessage removes a message.
func (c *Client) DeleteMessage(ctx context.Context, id int64) error {
	if err := c.doDelete(ctx, idPath(messagesPath, id)); err != nil {
		return wrap("client.DeleteMessage", "could not delete the message", err)
	}
	return nil
}
