package client

import (
	"context"

	"github.com/evcraddock/house-market/internal/transaction"
)

const transactionsPath = "/api/transacciones"

// CreateTransaction records a sale or rental.
func (c *Client) CreateTransaction(ctx context.Context, req transaction.Request) (*transaction.Transaction, error) {
	var t transaction.Transaction
	if err := c.post(ctx, transactionsPath, req, &t); err != nil {
		return nil, wrap("client.CreateTransaction", "could not save the transaction", err)
	}
	return &t, nil
}

// GetTransaction returns one transaction.
func (c *Client) GetTransaction(ctx context.Context, id int64) (*transaction.Transaction, error) {
	var t transaction.Transaction
	if err := c.get(ctx, idPath(transactionsPath, id), &t); err != nil {
		return nil, wrap("client.GetTransaction", "could not load the transaction", err)
	}
	return &t, nil
}

// UpdateTransaction replaces a transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id int64, req transaction.Request) (*transaction.Transaction, error) {
	var t transaction.Transaction
	if err := c.put(ctx, idPath(transactionsPath, id), req, &t); err != nil {
		return nil, wrap("client.UpdateTransaction", "could not update the transaction", err)
	}
	return &t, nil
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	if err := c.doDelete(ctx, idPath(transactionsPath, id)); err != nil {
		return wrap("client.DeleteTransaction", "could not delete the transaction", err)
	}
	return nil
}

// ListTransactionsByClient returns a client's transactions.
func (c *Client) ListTransactionsByClient(ctx context.Context, clientID int64) ([]*transaction.Transaction, error) {
	return c.listTransactions(ctx, "client.ListTransactionsByClient", idPath(transactionsPath+"/cliente", clientID))
}

// ListTransactionsByAgent returns an agent's transactions.
func (c *Client) ListTransactionsByAgent(ctx context.Context, agentID int64) ([]*transaction.Transaction, error) {
	return c.listTransactions(ctx, "client.ListTransactionsByAgent", idPath(transactionsPath+"/agente", agentID))
}

// ListTransactionsByProperty returns the transactions on a property.
func (c *Client) ListTransactionsByProperty(ctx context.Context, propertyID int64) ([]*transaction.Transaction, error) {
	return c.listTransactions(ctx, "client.ListTransactionsByProperty", idPath(transactionsPath+"/propiedad", propertyID))
}

func (c *Client) listTransactions(ctx context.Context, op, path string) ([]*transaction.Transaction, error) {
	var txs []*transaction.Transaction
	if err := c.get(ctx, path, &txs); err != nil {
		return nil, wrap(op, "could not load transactions", err)
	}
	return txs, nil
}
