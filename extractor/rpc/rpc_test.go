package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peer-observer/peer-observer/events"
	"github.com/peer-observer/peer-observer/rpcclient"
)

func TestQueriesFixedOrder(t *testing.T) {
	client, err := rpcclient.New("127.0.0.1", 8332, rpcclient.Auth{User: "u", Password: "p"})
	require.NoError(t, err)

	queries := Queries(client, Disable{})
	names := make([]string, len(queries))
	for i, q := range queries {
		names[i] = q.Name
	}

	assert.Equal(t, []string{
		"getpeerinfo",
		"getmempoolinfo",
		"uptime",
		"getnettotals",
		"getmemoryinfo",
		"getaddrmaninfo",
		"getchaintxstats",
	}, names)
	for _, q := range queries {
		assert.False(t, q.Disabled)
	}
}

func TestQueriesDisableToggles(t *testing.T) {
	client, err := rpcclient.New("127.0.0.1", 8332, rpcclient.Auth{User: "u", Password: "p"})
	require.NoError(t, err)

	queries := Queries(client, Disable{PeerInfo: true, ChainTxStats: true})
	disabled := make(map[string]bool, len(queries))
	for _, q := range queries {
		disabled[q.Name] = q.Disabled
	}

	assert.True(t, disabled["getpeerinfo"])
	assert.True(t, disabled["getchaintxstats"])
	assert.False(t, disabled["getmempoolinfo"])
	assert.False(t, disabled["uptime"])
}

func TestConvertPeerInfo(t *testing.T) {
	raw := rpcclient.PeerInfo{
		ID:              7,
		Addr:            "203.0.113.5:8333",
		AddrBind:        "10.0.0.2:50000",
		BytesRecv:       1024,
		BytesRecvPerMsg: map[string]uint64{"ping": 32},
		BytesSent:       2048,
		ConnTime:        1759372274,
		Inbound:         true,
		Network:         "ipv4",
		MinPing:         0.002,
		RelayTxes:       true,
		Services:        "000000000000040d",
		SubVer:          "/Satoshi:27.0.0/",
		Version:         70016,
	}

	got := convertPeerInfo(raw)

	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "203.0.113.5:8333", got.Address)
	assert.Equal(t, "10.0.0.2:50000", got.AddressBind)
	assert.Equal(t, uint64(32), got.BytesReceivedPerMsg["ping"])
	assert.Equal(t, int64(1759372274), got.ConnectionTime)
	assert.InDelta(t, 0.002, got.MinimumPing, 1e-9)
	assert.True(t, got.RelayTransactions)
	assert.Equal(t, "/Satoshi:27.0.0/", got.Subversion)
	assert.Equal(t, uint32(70016), got.Version)
	// Absent optionals stay at zero values.
	assert.Equal(t, "", got.AddressLocal)
	assert.Equal(t, uint64(0), got.AddrProcessed)
}

func TestConvertNetTotals(t *testing.T) {
	raw := &rpcclient.NetTotals{
		TotalBytesRecv: 123,
		TotalBytesSent: 456,
		TimeMillis:     1759372274000,
		UploadTarget: rpcclient.UploadTarget{
			Timeframe:             86400,
			ServeHistoricalBlocks: true,
		},
	}

	got := convertNetTotals(raw)

	assert.Equal(t, uint64(123), got.TotalBytesReceived)
	assert.Equal(t, uint64(456), got.TotalBytesSent)
	assert.Equal(t, uint64(86400), got.UploadTarget.Timeframe)
	assert.True(t, got.UploadTarget.ServeHistoricalBlocks)
}

func TestConvertAddrmanInfo(t *testing.T) {
	raw := map[string]rpcclient.AddrmanNetwork{
		"ipv4":  {New: 100, Tried: 50, Total: 150},
		"onion": {New: 10, Tried: 5, Total: 15},
	}

	got := convertAddrmanInfo(raw)

	require.Len(t, got.Networks, 2)
	assert.Equal(t, events.AddrmanNetworkInfo{New: 100, Tried: 50, Total: 150}, got.Networks["ipv4"])
	assert.Equal(t, events.AddrmanNetworkInfo{New: 10, Tried: 5, Total: 15}, got.Networks["onion"])
}

func TestConvertMempoolInfo(t *testing.T) {
	raw := &rpcclient.MempoolInfo{
		Loaded:   true,
		Size:     100,
		Bytes:    54321,
		Usage:    99999,
		TotalFee: 0.005,
		FullRbf:  true,
	}

	got := convertMempoolInfo(raw)

	assert.True(t, got.Loaded)
	assert.Equal(t, int64(100), got.Size)
	assert.InDelta(t, 0.005, got.TotalFee, 1e-9)
	assert.True(t, got.FullRbf)
}
