package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to a running session.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Status retrieves the session snapshot.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Session.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Scrub moves the timeline to a frame.
func (c *Client) Scrub(frame float64) (*ScrubResponse, error) {
	var resp ScrubResponse
	if err := c.client.Call("Session.Scrub", ScrubRequest{Frame: frame}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Play starts playback across a frame range.
func (c *Client) Play(from, to float64) (*PlayResponse, error) {
	var resp PlayResponse
	if err := c.client.Call("Session.Play", PlayRequest{From: from, To: to}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StopPlayback cancels an in-progress playback.
func (c *Client) StopPlayback() (*StopPlaybackResponse, error) {
	var resp StopPlaybackResponse
	if err := c.client.Call("Session.StopPlayback", StopPlaybackRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Shutdown stops the session process.
func (c *Client) Shutdown() (*ShutdownResponse, error) {
	var resp ShutdownResponse
	if err := c.client.Call("Session.Shutdown", ShutdownRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TransferList fetches journal entries.
func (c *Client) TransferList(limit int) (*TransferListResponse, error) {
	var resp TransferListResponse
	if err := c.client.Call("Session.TransferList", TransferListRequest{Limit: limit}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TransferClear removes all journal entries.
func (c *Client) TransferClear() (*TransferClearResponse, error) {
	var resp TransferClearResponse
	if err := c.client.Call("Session.TransferClear", TransferClearRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// JournalHealth retrieves journal database diagnostics.
func (c *Client) JournalHealth() (*JournalHealthResponse, error) {
	var resp JournalHealthResponse
	if err := c.client.Call("Session.JournalHealth", JournalHealthRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
