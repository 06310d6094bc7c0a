package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStampsTimestamp(t *testing.T) {
	env, err := New(&Rpc{Uptime: &Uptime{Seconds: 42}})
	require.NoError(t, err)
	assert.NotZero(t, env.Timestamp)
	assert.NotNil(t, env.Rpc)
	assert.Nil(t, env.Log)
	assert.Nil(t, env.P2P)
	assert.Nil(t, env.Ebpf)
}

func TestEnvelopePayload(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
	}{
		{"rpc", &Rpc{Uptime: &Uptime{Seconds: 1}}},
		{"log", &Log{Unknown: &UnknownLogMessage{RawMessage: "hi"}}},
		{"p2p", &P2P{PingDuration: &PingDuration{PeerID: 3, DurationMicros: 150}}},
		{"ebpf", &Ebpf{Msg: &TracedMsg{PeerID: 7, Command: "ping"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := New(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.payload, env.Payload())
		})
	}
}

func TestCodecRoundTrip(t *testing.T) {
	env, err := New(&Log{
		Timestamp:  1759372281000000,
		Category:   CategoryNet,
		Threadname: "msghand",
		BlockConnected: &BlockConnectedLog{
			BlockHash:   "41109f31a81e0d5e4c66d0485ba4db7d133ccd1481395ad4a59bb0bf5a132f0b",
			BlockHeight: 437,
		},
	})
	require.NoError(t, err)

	data, err := Encode(env)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, env, got)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("not cbor at all"))
	assert.Error(t, err)
}

func TestEncodeDeterministic(t *testing.T) {
	env := &Envelope{
		Timestamp: 1759372274000,
		Rpc: &Rpc{MempoolInfo: &MempoolInfo{
			Loaded: true, Size: 100, Bytes: 54321, Usage: 99999,
		}},
	}

	first, err := Encode(env)
	require.NoError(t, err)
	second, err := Encode(env)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCategoryFromName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want DebugCategory
		ok   bool
	}{
		{"net", "NET", CategoryNet, true},
		{"validation", "VALIDATION", CategoryValidation, true},
		{"unknown token", "This-Is-N0t-a-valid-category", CategoryUnknown, false},
		{"lowercase rejected", "net", CategoryUnknown, false},
		{"empty", "", CategoryUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CategoryFromName(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "net", CategoryNet.String())
	assert.Equal(t, "unknown", CategoryUnknown.String())
	assert.Equal(t, "unknown", DebugCategory(9999).String())
}

func TestIsMutatedBlock(t *testing.T) {
	tests := []struct {
		state string
		want  bool
	}{
		{"bad-txnmrklroot", true},
		{"bad-txns-duplicate", true},
		{"bad-witness-nonce-size", true},
		{"bad-witness-merkle-match", true},
		{"unexpected-witness", true},
		{"Valid", false},
		{"", false},
		{"bad-blk-length", false},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			b := &BlockCheckedLog{State: tt.state}
			assert.Equal(t, tt.want, b.IsMutatedBlock())
		})
	}
}

func TestStringRenderings(t *testing.T) {
	tests := []struct {
		name string
		in   interface{ String() string }
		want string
	}{
		{
			"unknown log",
			&UnknownLogMessage{RawMessage: "Verification progress: 50%"},
			"UnknownLogMessage(Verification progress: 50%)",
		},
		{
			"block connected",
			&BlockConnectedLog{BlockHash: "6022a913", BlockHeight: 5},
			"BlockConnected(hash=6022a913, height=5)",
		},
		{
			"block checked",
			&BlockCheckedLog{BlockHash: "abc", State: "bad-txnmrklroot", DebugMessage: "hashMerkleRoot mismatch"},
			"BlockChecked(hash=abc, state=bad-txnmrklroot, debug_message=hashMerkleRoot mismatch)",
		},
		{
			"mempool info",
			&MempoolInfo{Size: 10, Bytes: 2000, Usage: 4096},
			"MempoolInfo(size=10txn, bytes=2000vB, usage=4096b)",
		},
		{
			"uptime",
			&Uptime{Seconds: 77},
			"Uptime(77s)",
		},
		{
			"net totals",
			&NetTotals{TotalBytesReceived: 123, TotalBytesSent: 456},
			"NetTotals(recv=123B, sent=456B)",
		},
		{
			"empty peer infos",
			&PeerInfos{},
			"PeerInfos([])",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.String())
		})
	}
}

func TestSubjects(t *testing.T) {
	assert.Equal(t, "peerobserver.rpc", (&Rpc{}).Subject().String())
	assert.Equal(t, "peerobserver.log", (&Log{}).Subject().String())
	assert.Equal(t, "peerobserver.p2p", (&P2P{}).Subject().String())
	assert.Equal(t, "peerobserver.ebpf", (&Ebpf{}).Subject().String())
}

func TestLogSetEvent(t *testing.T) {
	l := &Log{}
	l.SetEvent(&BlockConnectedLog{BlockHash: "aa", BlockHeight: 1})
	require.NotNil(t, l.BlockConnected)
	assert.Nil(t, l.Unknown)
	assert.Nil(t, l.BlockChecked)
	assert.Equal(t, l.BlockConnected, l.Event())
}
