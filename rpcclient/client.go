package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/peer-observer/peer-observer/errors"
)

const defaultTimeout = 30 * time.Second

// Auth holds the node's RPC credentials. Exactly one mode must be set: a
// cookie file path, or a user/password pair.
type Auth struct {
	CookieFile string
	User       string
	Password   string
}

// Validate checks that exactly one authentication mode is configured.
func (a Auth) Validate() error {
	hasCookie := a.CookieFile != ""
	hasUserPass := a.User != "" || a.Password != ""

	switch {
	case hasCookie && hasUserPass:
		return errors.WrapInvalid(errors.ErrAmbiguousCredentials,
			"Auth", "Validate", "cookie file and user/password are mutually exclusive")
	case !hasCookie && !hasUserPass:
		return errors.WrapInvalid(errors.ErrMissingCredentials,
			"Auth", "Validate", "either cookie file or user/password required")
	case hasUserPass && (a.User == "" || a.Password == ""):
		return errors.WrapInvalid(errors.ErrMissingCredentials,
			"Auth", "Validate", "user and password must both be set")
	}
	return nil
}

// credentials resolves the basic-auth pair for one request. The cookie file
// holds a single "user:password" line rewritten on node restart, so it is
// read fresh every time.
func (a Auth) credentials() (string, string, error) {
	if a.CookieFile == "" {
		return a.User, a.Password, nil
	}

	raw, err := os.ReadFile(a.CookieFile)
	if err != nil {
		return "", "", errors.WrapTransient(err, "Auth", "credentials", "read cookie file")
	}
	cookie := strings.TrimSpace(string(raw))
	user, pass, found := strings.Cut(cookie, ":")
	if !found {
		return "", "", errors.WrapInvalid(
			fmt.Errorf("cookie file %s has no user:password separator", a.CookieFile),
			"Auth", "credentials", "parse cookie file")
	}
	return user, pass, nil
}

// Client talks JSON-RPC to one Bitcoin Core node.
type Client struct {
	url  string
	auth Auth
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a client for the node at host:port.
func New(host string, port uint16, auth Auth, opts ...Option) (*Client, error) {
	if err := auth.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		url:  fmt.Sprintf("http://%s:%d", host, port),
		auth: auth,
		http: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// call performs one JSON-RPC request and decodes the result into out.
func (c *Client) call(ctx context.Context, method string, out any) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "1.0",
		ID:      "peer-observer",
		Method:  method,
		Params:  []any{},
	})
	if err != nil {
		return errors.WrapInvalid(err, "Client", "call", "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return errors.WrapInvalid(err, "Client", "call", "build request")
	}
	user, pass, err := c.auth.credentials()
	if err != nil {
		return err
	}
	req.SetBasicAuth(user, pass)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapTransient(err, "Client", "call", method)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return errors.WrapFatal(
			fmt.Errorf("status %d", resp.StatusCode),
			"Client", "call", "authentication rejected")
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapTransient(err, "Client", "call", "read response")
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(raw, &rpcResp); err != nil {
		return errors.WrapInvalid(err, "Client", "call", "decode response")
	}
	if rpcResp.Error != nil {
		return errors.Wrap(rpcResp.Error, "Client", "call", method)
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return errors.WrapInvalid(err, "Client", "call", "decode "+method+" result")
	}
	return nil
}

// GetPeerInfo calls getpeerinfo.
func (c *Client) GetPeerInfo(ctx context.Context) ([]PeerInfo, error) {
	var infos []PeerInfo
	if err := c.call(ctx, "getpeerinfo", &infos); err != nil {
		return nil, err
	}
	return infos, nil
}

// GetMempoolInfo calls getmempoolinfo.
func (c *Client) GetMempoolInfo(ctx context.Context) (*MempoolInfo, error) {
	var info MempoolInfo
	if err := c.call(ctx, "getmempoolinfo", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Uptime calls uptime.
func (c *Client) Uptime(ctx context.Context) (uint64, error) {
	var seconds uint64
	if err := c.call(ctx, "uptime", &seconds); err != nil {
		return 0, err
	}
	return seconds, nil
}

// GetNetTotals calls getnettotals.
func (c *Client) GetNetTotals(ctx context.Context) (*NetTotals, error) {
	var totals NetTotals
	if err := c.call(ctx, "getnettotals", &totals); err != nil {
		return nil, err
	}
	return &totals, nil
}

// GetMemoryInfo calls getmemoryinfo. The node nests the statistics under a
// "locked" key; a response without it is an error, not an empty result.
func (c *Client) GetMemoryInfo(ctx context.Context) (*MemoryInfo, error) {
	var wrapper struct {
		Locked *MemoryInfo `json:"locked"`
	}
	if err := c.call(ctx, "getmemoryinfo", &wrapper); err != nil {
		return nil, err
	}
	if wrapper.Locked == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingRPCKey,
			"Client", "GetMemoryInfo", "no 'locked' key in response")
	}
	return wrapper.Locked, nil
}

// GetAddrmanInfo calls getaddrmaninfo.
func (c *Client) GetAddrmanInfo(ctx context.Context) (map[string]AddrmanNetwork, error) {
	networks := make(map[string]AddrmanNetwork)
	if err := c.call(ctx, "getaddrmaninfo", &networks); err != nil {
		return nil, err
	}
	return networks, nil
}

// GetChainTxStats calls getchaintxstats.
func (c *Client) GetChainTxStats(ctx context.Context) (*ChainTxStats, error) {
	var stats ChainTxStats
	if err := c.call(ctx, "getchaintxstats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
