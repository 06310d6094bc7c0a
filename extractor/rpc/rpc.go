// Package rpc assembles the query set of the RPC extractor: one query per
// polled Bitcoin Core RPC method, in a fixed order, with per-query disable
// toggles. Conversion from the node's JSON shapes to bus event types lives
// here too.
package rpc

import (
	"context"

	"github.com/peer-observer/peer-observer/events"
	"github.com/peer-observer/peer-observer/extractor"
	"github.com/peer-observer/peer-observer/rpcclient"
)

// Name labels the RPC extractor in logs and metrics.
const Name = "rpc"

// Disable toggles individual queries off. The zero value runs everything.
type Disable struct {
	PeerInfo     bool
	MempoolInfo  bool
	Uptime       bool
	NetTotals    bool
	MemoryInfo   bool
	AddrmanInfo  bool
	ChainTxStats bool
}

// Queries returns the extractor's query set. The order is fixed and is the
// order queries run within one pass.
func Queries(client *rpcclient.Client, disable Disable) []extractor.Query {
	return []extractor.Query{
		{
			Name:     "getpeerinfo",
			Disabled: disable.PeerInfo,
			Fetch: func(ctx context.Context) (events.Payload, error) {
				infos, err := client.GetPeerInfo(ctx)
				if err != nil {
					return nil, err
				}
				return &events.Rpc{PeerInfos: convertPeerInfos(infos)}, nil
			},
		},
		{
			Name:     "getmempoolinfo",
			Disabled: disable.MempoolInfo,
			Fetch: func(ctx context.Context) (events.Payload, error) {
				info, err := client.GetMempoolInfo(ctx)
				if err != nil {
					return nil, err
				}
				return &events.Rpc{MempoolInfo: convertMempoolInfo(info)}, nil
			},
		},
		{
			Name:     "uptime",
			Disabled: disable.Uptime,
			Fetch: func(ctx context.Context) (events.Payload, error) {
				seconds, err := client.Uptime(ctx)
				if err != nil {
					return nil, err
				}
				return &events.Rpc{Uptime: &events.Uptime{Seconds: seconds}}, nil
			},
		},
		{
			Name:     "getnettotals",
			Disabled: disable.NetTotals,
			Fetch: func(ctx context.Context) (events.Payload, error) {
				totals, err := client.GetNetTotals(ctx)
				if err != nil {
					return nil, err
				}
				return &events.Rpc{NetTotals: convertNetTotals(totals)}, nil
			},
		},
		{
			Name:     "getmemoryinfo",
			Disabled: disable.MemoryInfo,
			Fetch: func(ctx context.Context) (events.Payload, error) {
				info, err := client.GetMemoryInfo(ctx)
				if err != nil {
					return nil, err
				}
				return &events.Rpc{MemoryInfo: convertMemoryInfo(info)}, nil
			},
		},
		{
			Name:     "getaddrmaninfo",
			Disabled: disable.AddrmanInfo,
			Fetch: func(ctx context.Context) (events.Payload, error) {
				networks, err := client.GetAddrmanInfo(ctx)
				if err != nil {
					return nil, err
				}
				return &events.Rpc{AddrmanInfo: convertAddrmanInfo(networks)}, nil
			},
		},
		{
			Name:     "getchaintxstats",
			Disabled: disable.ChainTxStats,
			Fetch: func(ctx context.Context) (events.Payload, error) {
				stats, err := client.GetChainTxStats(ctx)
				if err != nil {
					return nil, err
				}
				return &events.Rpc{ChainTxStats: convertChainTxStats(stats)}, nil
			},
		},
	}
}
