// Package rpc is the transport collaborator: it performs the actual remote
// procedure call given an operation name and positional arguments.
//
// Deliberately thin. No retry, no backoff, no caching and no timeout layer
// live here or above here; callers that need deadlines set them on the HTTP
// transport they pass in.
package rpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kolo/xmlrpc"
)

// DefaultURL is the provider's XML-RPC endpoint.
const DefaultURL = "https://api.webfaction.com/"

// Caller dispatches one named operation with positional arguments and
// returns the decoded result value.
type Caller interface {
	Call(ctx context.Context, op string, args []any) (any, error)
}

// Client is the XML-RPC implementation of Caller.
type Client struct {
	url string
	rpc *xmlrpc.Client
}

// Dial creates a client for the given endpoint URL. A nil transport uses
// http.DefaultTransport.
func Dial(url string, transport http.RoundTripper) (*Client, error) {
	if url == "" {
		url = DefaultURL
	}
	c, err := xmlrpc.NewClient(url, transport)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", url, err)
	}
	return &Client{url: url, rpc: c}, nil
}

// URL returns the endpoint this client talks to.
func (c *Client) URL() string { return c.url }

// Call dispatches op with args. Provider-reported faults come back as
// *Fault; network and protocol failures come back wrapped.
func (c *Client) Call(ctx context.Context, op string, args []any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var result any
	err := c.rpc.Call(op, args, &result)
	if err == nil {
		return result, nil
	}

	var fe xmlrpc.FaultError
	if errors.As(err, &fe) {
		return nil, &Fault{Code: fe.Code, Message: fe.String}
	}
	return nil, fmt.Errorf("calling %s: %w", op, err)
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.rpc.Close()
}
