package rpcclient

// PeerInfo is one entry of a getpeerinfo response. Fields the node omits for
// some peers decode to their zero value.
type PeerInfo struct {
	ID                    int64              `json:"id"`
	Addr                  string             `json:"addr"`
	AddrBind              string             `json:"addrbind"`
	AddrLocal             string             `json:"addrlocal"`
	AddrRateLimited       uint64             `json:"addr_rate_limited"`
	AddrRelayEnabled      bool               `json:"addr_relay_enabled"`
	AddrProcessed         uint64             `json:"addr_processed"`
	Bip152HbFrom          bool               `json:"bip152_hb_from"`
	Bip152HbTo            bool               `json:"bip152_hb_to"`
	BytesRecv             uint64             `json:"bytesrecv"`
	BytesRecvPerMsg       map[string]uint64  `json:"bytesrecv_per_msg"`
	BytesSent             uint64             `json:"bytessent"`
	BytesSentPerMsg       map[string]uint64  `json:"bytessent_per_msg"`
	ConnTime              int64              `json:"conntime"`
	ConnectionType        string             `json:"connection_type"`
	Inbound               bool               `json:"inbound"`
	Inflight              []uint64           `json:"inflight"`
	LastBlock             int64              `json:"last_block"`
	LastRecv              int64              `json:"lastrecv"`
	LastSend              int64              `json:"lastsend"`
	LastTransaction       int64              `json:"last_transaction"`
	MappedAs              uint32             `json:"mapped_as"`
	MinFeeFilter          float64            `json:"minfeefilter"`
	MinPing               float64            `json:"minping"`
	Network               string             `json:"network"`
	PingTime              float64            `json:"pingtime"`
	PingWait              float64            `json:"pingwait"`
	Permissions           []string           `json:"permissions"`
	RelayTxes             bool               `json:"relaytxes"`
	Services              string             `json:"services"`
	StartingHeight        int64              `json:"startingheight"`
	SubVer                string             `json:"subver"`
	SyncedBlocks          int64              `json:"synced_blocks"`
	SyncedHeaders         int64              `json:"synced_headers"`
	TimeOffset            int64              `json:"timeoffset"`
	TransportProtocolType string             `json:"transport_protocol_type"`
	Version               uint32             `json:"version"`
}

// MempoolInfo is a getmempoolinfo response.
type MempoolInfo struct {
	Loaded              bool    `json:"loaded"`
	Size                int64   `json:"size"`
	Bytes               int64   `json:"bytes"`
	Usage               int64   `json:"usage"`
	TotalFee            float64 `json:"total_fee"`
	MaxMempool          int64   `json:"maxmempool"`
	MempoolMinFee       float64 `json:"mempoolminfee"`
	MinRelayTxFee       float64 `json:"minrelaytxfee"`
	IncrementalRelayFee float64 `json:"incrementalrelayfee"`
	UnbroadcastCount    int64   `json:"unbroadcastcount"`
	FullRbf             bool    `json:"fullrbf"`
}

// NetTotals is a getnettotals response.
type NetTotals struct {
	TotalBytesRecv uint64       `json:"totalbytesrecv"`
	TotalBytesSent uint64       `json:"totalbytessent"`
	TimeMillis     int64        `json:"timemillis"`
	UploadTarget   UploadTarget `json:"uploadtarget"`
}

// UploadTarget is the uploadtarget object of a getnettotals response.
type UploadTarget struct {
	Timeframe             uint64 `json:"timeframe"`
	Target                uint64 `json:"target"`
	TargetReached         bool   `json:"target_reached"`
	ServeHistoricalBlocks bool   `json:"serve_historical_blocks"`
	BytesLeftInCycle      uint64 `json:"bytes_left_in_cycle"`
	TimeLeftInCycle       uint64 `json:"time_left_in_cycle"`
}

// MemoryInfo is the "locked" object of a getmemoryinfo response.
type MemoryInfo struct {
	Used       uint64 `json:"used"`
	Free       uint64 `json:"free"`
	Total      uint64 `json:"total"`
	Locked     uint64 `json:"locked"`
	ChunksUsed uint64 `json:"chunks_used"`
	ChunksFree uint64 `json:"chunks_free"`
}

// AddrmanNetwork is one per-network entry of a getaddrmaninfo response.
type AddrmanNetwork struct {
	New   uint64 `json:"new"`
	Tried uint64 `json:"tried"`
	Total uint64 `json:"total"`
}

// ChainTxStats is a getchaintxstats response.
type ChainTxStats struct {
	Time                   int64   `json:"time"`
	TxCount                uint64  `json:"txcount"`
	WindowFinalBlockHash   string  `json:"window_final_block_hash"`
	WindowFinalBlockHeight uint32  `json:"window_final_block_height"`
	WindowBlockCount       uint64  `json:"window_block_count"`
	WindowTxCount          uint64  `json:"window_tx_count"`
	WindowInterval         uint64  `json:"window_interval"`
	TxRate                 float64 `json:"txrate"`
}
