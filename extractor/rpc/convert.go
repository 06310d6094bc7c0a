package rpc

import (
	"github.com/peer-observer/peer-observer/events"
	"github.com/peer-observer/peer-observer/rpcclient"
)

func convertPeerInfos(infos []rpcclient.PeerInfo) *events.PeerInfos {
	converted := make([]events.PeerInfo, len(infos))
	for i, info := range infos {
		converted[i] = convertPeerInfo(info)
	}
	return &events.PeerInfos{Infos: converted}
}

func convertPeerInfo(info rpcclient.PeerInfo) events.PeerInfo {
	return events.PeerInfo{
		ID:                    info.ID,
		Address:               info.Addr,
		AddressBind:           info.AddrBind,
		AddressLocal:          info.AddrLocal,
		AddrRateLimited:       info.AddrRateLimited,
		AddrRelayEnabled:      info.AddrRelayEnabled,
		AddrProcessed:         info.AddrProcessed,
		Bip152HbFrom:          info.Bip152HbFrom,
		Bip152HbTo:            info.Bip152HbTo,
		BytesReceived:         info.BytesRecv,
		BytesReceivedPerMsg:   info.BytesRecvPerMsg,
		BytesSent:             info.BytesSent,
		BytesSentPerMsg:       info.BytesSentPerMsg,
		ConnectionTime:        info.ConnTime,
		ConnectionType:        info.ConnectionType,
		Inbound:               info.Inbound,
		Inflight:              info.Inflight,
		LastBlock:             info.LastBlock,
		LastReceived:          info.LastRecv,
		LastSend:              info.LastSend,
		LastTransaction:       info.LastTransaction,
		MappedAs:              info.MappedAs,
		MinFeeFilter:          info.MinFeeFilter,
		MinimumPing:           info.MinPing,
		Network:               info.Network,
		PingTime:              info.PingTime,
		PingWait:              info.PingWait,
		Permissions:           info.Permissions,
		RelayTransactions:     info.RelayTxes,
		Services:              info.Services,
		StartingHeight:        info.StartingHeight,
		Subversion:            info.SubVer,
		SyncedBlocks:          info.SyncedBlocks,
		SyncedHeaders:         info.SyncedHeaders,
		TimeOffset:            info.TimeOffset,
		TransportProtocolType: info.TransportProtocolType,
		Version:               info.Version,
	}
}

func convertMempoolInfo(info *rpcclient.MempoolInfo) *events.MempoolInfo {
	return &events.MempoolInfo{
		Loaded:              info.Loaded,
		Size:                info.Size,
		Bytes:               info.Bytes,
		Usage:               info.Usage,
		TotalFee:            info.TotalFee,
		MaxMempool:          info.MaxMempool,
		MempoolMinFee:       info.MempoolMinFee,
		MinRelayTxFee:       info.MinRelayTxFee,
		IncrementalRelayFee: info.IncrementalRelayFee,
		UnbroadcastCount:    info.UnbroadcastCount,
		FullRbf:             info.FullRbf,
	}
}

func convertNetTotals(totals *rpcclient.NetTotals) *events.NetTotals {
	return &events.NetTotals{
		TotalBytesReceived: totals.TotalBytesRecv,
		TotalBytesSent:     totals.TotalBytesSent,
		TimeMillis:         totals.TimeMillis,
		UploadTarget: events.UploadTarget{
			Timeframe:             totals.UploadTarget.Timeframe,
			Target:                totals.UploadTarget.Target,
			TargetReached:         totals.UploadTarget.TargetReached,
			ServeHistoricalBlocks: totals.UploadTarget.ServeHistoricalBlocks,
			BytesLeftInCycle:      totals.UploadTarget.BytesLeftInCycle,
			TimeLeftInCycle:       totals.UploadTarget.TimeLeftInCycle,
		},
	}
}

func convertMemoryInfo(info *rpcclient.MemoryInfo) *events.MemoryInfo {
	return &events.MemoryInfo{
		Used:       info.Used,
		Free:       info.Free,
		Total:      info.Total,
		Locked:     info.Locked,
		ChunksUsed: info.ChunksUsed,
		ChunksFree: info.ChunksFree,
	}
}

func convertAddrmanInfo(networks map[string]rpcclient.AddrmanNetwork) *events.AddrmanInfo {
	converted := make(map[string]events.AddrmanNetworkInfo, len(networks))
	for name, network := range networks {
		converted[name] = events.AddrmanNetworkInfo{
			New:   network.New,
			Tried: network.Tried,
			Total: network.Total,
		}
	}
	return &events.AddrmanInfo{Networks: converted}
}

func convertChainTxStats(stats *rpcclient.ChainTxStats) *events.ChainTxStats {
	return &events.ChainTxStats{
		Time:                   stats.Time,
		TxCount:                stats.TxCount,
		WindowFinalBlockHash:   stats.WindowFinalBlockHash,
		WindowFinalBlockHeight: stats.WindowFinalBlockHeight,
		WindowBlockCount:       stats.WindowBlockCount,
		WindowTxCount:          stats.WindowTxCount,
		WindowInterval:         stats.WindowInterval,
		TxRate:                 stats.TxRate,
	}
}
