package rpcclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peer-observer/peer-observer/errors"
)

func TestAuthValidate(t *testing.T) {
	tests := []struct {
		name    string
		auth    Auth
		wantErr error
	}{
		{"cookie only", Auth{CookieFile: "/tmp/.cookie"}, nil},
		{"user pass", Auth{User: "u", Password: "p"}, nil},
		{"nothing", Auth{}, errors.ErrMissingCredentials},
		{"both modes", Auth{CookieFile: "/tmp/.cookie", User: "u", Password: "p"}, errors.ErrAmbiguousCredentials},
		{"user without password", Auth{User: "u"}, errors.ErrMissingCredentials},
		{"password without user", Auth{Password: "p"}, errors.ErrMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.auth.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// testServer runs a JSON-RPC stub returning canned results per method and
// returns a client pointed at it.
func testServer(t *testing.T, auth Auth, results map[string]string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result, ok := results[req.Method]
		if !ok {
			fmt.Fprintf(w, `{"result":null,"error":{"code":-32601,"message":"Method not found"}}`)
			return
		}
		fmt.Fprintf(w, `{"result":%s,"error":null}`, result)
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.ParseUint(u.Port(), 10, 16)
	require.NoError(t, err)

	client, err := New(u.Hostname(), uint16(port), auth)
	require.NoError(t, err)
	return client
}

func TestUptime(t *testing.T) {
	client := testServer(t, Auth{User: "u", Password: "p"}, map[string]string{
		"uptime": "12345",
	})

	seconds, err := client.Uptime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), seconds)
}

func TestGetPeerInfo(t *testing.T) {
	client := testServer(t, Auth{User: "u", Password: "p"}, map[string]string{
		"getpeerinfo": `[{
			"id": 7,
			"addr": "203.0.113.5:8333",
			"network": "ipv4",
			"inbound": true,
			"bytesrecv": 1024,
			"bytessent": 2048,
			"bytesrecv_per_msg": {"ping": 32},
			"services": "000000000000040d",
			"subver": "/Satoshi:27.0.0/",
			"version": 70016
		}]`,
	})

	infos, err := client.GetPeerInfo(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, int64(7), infos[0].ID)
	assert.Equal(t, "203.0.113.5:8333", infos[0].Addr)
	assert.True(t, infos[0].Inbound)
	assert.Equal(t, uint64(32), infos[0].BytesRecvPerMsg["ping"])
	assert.Equal(t, uint32(70016), infos[0].Version)
	// Optional fields absent from the response decode to zero values.
	assert.Equal(t, "", infos[0].AddrLocal)
	assert.Equal(t, uint64(0), infos[0].AddrProcessed)
}

func TestGetMempoolInfo(t *testing.T) {
	client := testServer(t, Auth{User: "u", Password: "p"}, map[string]string{
		"getmempoolinfo": `{
			"loaded": true,
			"size": 100,
			"bytes": 54321,
			"usage": 99999,
			"total_fee": 0.005,
			"maxmempool": 300000000,
			"mempoolminfee": 0.00001,
			"minrelaytxfee": 0.00001,
			"incrementalrelayfee": 0.00001,
			"unbroadcastcount": 2,
			"fullrbf": true
		}`,
	})

	info, err := client.GetMempoolInfo(context.Background())
	require.NoError(t, err)
	assert.True(t, info.Loaded)
	assert.Equal(t, int64(100), info.Size)
	assert.Equal(t, int64(54321), info.Bytes)
	assert.InDelta(t, 0.005, info.TotalFee, 1e-9)
	assert.True(t, info.FullRbf)
}

func TestGetNetTotals(t *testing.T) {
	client := testServer(t, Auth{User: "u", Password: "p"}, map[string]string{
		"getnettotals": `{
			"totalbytesrecv": 123,
			"totalbytessent": 456,
			"timemillis": 1759372274000,
			"uploadtarget": {
				"timeframe": 86400,
				"target": 0,
				"target_reached": false,
				"serve_historical_blocks": true,
				"bytes_left_in_cycle": 0,
				"time_left_in_cycle": 0
			}
		}`,
	})

	totals, err := client.GetNetTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(123), totals.TotalBytesRecv)
	assert.Equal(t, uint64(456), totals.TotalBytesSent)
	assert.Equal(t, uint64(86400), totals.UploadTarget.Timeframe)
	assert.True(t, totals.UploadTarget.ServeHistoricalBlocks)
}

func TestGetMemoryInfo(t *testing.T) {
	client := testServer(t, Auth{User: "u", Password: "p"}, map[string]string{
		"getmemoryinfo": `{"locked": {"used": 64, "free": 192, "total": 256, "locked": 256, "chunks_used": 1, "chunks_free": 2}}`,
	})

	info, err := client.GetMemoryInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(64), info.Used)
	assert.Equal(t, uint64(256), info.Total)
}

func TestGetMemoryInfoMissingLockedKey(t *testing.T) {
	client := testServer(t, Auth{User: "u", Password: "p"}, map[string]string{
		"getmemoryinfo": `{}`,
	})

	_, err := client.GetMemoryInfo(context.Background())
	assert.ErrorIs(t, err, errors.ErrMissingRPCKey)
}

func TestGetAddrmanInfo(t *testing.T) {
	client := testServer(t, Auth{User: "u", Password: "p"}, map[string]string{
		"getaddrmaninfo": `{
			"ipv4": {"new": 100, "tried": 50, "total": 150},
			"onion": {"new": 10, "tried": 5, "total": 15}
		}`,
	})

	networks, err := client.GetAddrmanInfo(context.Background())
	require.NoError(t, err)
	require.Len(t, networks, 2)
	assert.Equal(t, uint64(150), networks["ipv4"].Total)
	assert.Equal(t, uint64(5), networks["onion"].Tried)
}

func TestGetChainTxStats(t *testing.T) {
	client := testServer(t, Auth{User: "u", Password: "p"}, map[string]string{
		"getchaintxstats": `{
			"time": 1759372274,
			"txcount": 1000000,
			"window_final_block_hash": "41109f31c8ca4d8683ab5571ba462292ddb8486dee6ecd2e62901accc7952f0b",
			"window_final_block_height": 437,
			"window_block_count": 144,
			"window_tx_count": 5000,
			"window_interval": 86000,
			"txrate": 0.058
		}`,
	})

	stats, err := client.GetChainTxStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1000000), stats.TxCount)
	assert.Equal(t, uint32(437), stats.WindowFinalBlockHeight)
	assert.InDelta(t, 0.058, stats.TxRate, 1e-9)
}

func TestRPCErrorSurfaces(t *testing.T) {
	client := testServer(t, Auth{User: "u", Password: "p"}, nil)

	_, err := client.Uptime(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Method not found")
}

func TestBasicAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "alice" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"result":1,"error":null}`)
	}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.ParseUint(u.Port(), 10, 16)
	require.NoError(t, err)

	good, err := New(u.Hostname(), uint16(port), Auth{User: "alice", Password: "secret"})
	require.NoError(t, err)
	_, err = good.Uptime(context.Background())
	assert.NoError(t, err)

	bad, err := New(u.Hostname(), uint16(port), Auth{User: "alice", Password: "wrong"})
	require.NoError(t, err)
	_, err = bad.Uptime(context.Background())
	assert.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestCookieFileAuth(t *testing.T) {
	cookieFile := filepath.Join(t.TempDir(), ".cookie")
	require.NoError(t, os.WriteFile(cookieFile, []byte("__cookie__:hunter2\n"), 0o600))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "__cookie__" || pass != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"result":1,"error":null}`)
	}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.ParseUint(u.Port(), 10, 16)
	require.NoError(t, err)

	client, err := New(u.Hostname(), uint16(port), Auth{CookieFile: cookieFile})
	require.NoError(t, err)

	_, err = client.Uptime(context.Background())
	assert.NoError(t, err)
}

func TestCookieFileMissing(t *testing.T) {
	client, err := New("127.0.0.1", 8332, Auth{CookieFile: filepath.Join(t.TempDir(), "nope")})
	require.NoError(t, err)

	_, err = client.Uptime(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsTransient(err))
}

func TestConnectionRefused(t *testing.T) {
	// Port 1 is essentially never listening.
	client, err := New("127.0.0.1", 1, Auth{User: "u", Password: "p"})
	require.NoError(t, err)

	_, err = client.Uptime(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsTransient(err))
}
