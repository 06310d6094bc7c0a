package events

import (
	"fmt"
	"strings"
)

// DebugCategory is the node's debug-log category for a log line. The set is
// closed; lines with an absent or unrecognized category carry
// CategoryUnknown.
type DebugCategory int32

// Debug-log categories, matching the node's -debug flag names.
const (
	CategoryUnknown DebugCategory = iota
	CategoryAddrman
	CategoryBench
	CategoryBlockstorage
	CategoryCmpctblock
	CategoryCoindb
	CategoryEstimatefee
	CategoryHTTP
	CategoryI2P
	CategoryIPC
	CategoryLeveldb
	CategoryLibevent
	CategoryLock
	CategoryMempool
	CategoryMempoolrej
	CategoryNet
	CategoryProxy
	CategoryPrune
	CategoryQt
	CategoryRand
	CategoryReindex
	CategoryRPC
	CategoryScan
	CategorySelectcoins
	CategoryTor
	CategoryTxpackages
	CategoryTxreconciliation
	CategoryUtil
	CategoryValidation
	CategoryWalletdb
	CategoryZmq
)

var categoryNames = map[DebugCategory]string{
	CategoryUnknown:          "UNKNOWN",
	CategoryAddrman:          "ADDRMAN",
	CategoryBench:            "BENCH",
	CategoryBlockstorage:     "BLOCKSTORAGE",
	CategoryCmpctblock:       "CMPCTBLOCK",
	CategoryCoindb:           "COINDB",
	CategoryEstimatefee:      "ESTIMATEFEE",
	CategoryHTTP:             "HTTP",
	CategoryI2P:              "I2P",
	CategoryIPC:              "IPC",
	CategoryLeveldb:          "LEVELDB",
	CategoryLibevent:         "LIBEVENT",
	CategoryLock:             "LOCK",
	CategoryMempool:          "MEMPOOL",
	CategoryMempoolrej:       "MEMPOOLREJ",
	CategoryNet:              "NET",
	CategoryProxy:            "PROXY",
	CategoryPrune:            "PRUNE",
	CategoryQt:               "QT",
	CategoryRand:             "RAND",
	CategoryReindex:          "REINDEX",
	CategoryRPC:              "RPC",
	CategoryScan:             "SCAN",
	CategorySelectcoins:      "SELECTCOINS",
	CategoryTor:              "TOR",
	CategoryTxpackages:       "TXPACKAGES",
	CategoryTxreconciliation: "TXRECONCILIATION",
	CategoryUtil:             "UTIL",
	CategoryValidation:       "VALIDATION",
	CategoryWalletdb:         "WALLETDB",
	CategoryZmq:              "ZMQ",
}

var categoryByName = func() map[string]DebugCategory {
	m := make(map[string]DebugCategory, len(categoryNames))
	for cat, name := range categoryNames {
		m[name] = cat
	}
	return m
}()

// CategoryFromName looks up a category by its uppercase enum name. The
// lookup is an exact match; callers uppercase free-form input first.
func CategoryFromName(name string) (DebugCategory, bool) {
	cat, ok := categoryByName[name]
	return cat, ok
}

// String returns the lowercase category name as it appears in log lines.
func (c DebugCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return strings.ToLower(name)
	}
	return "unknown"
}

// Log is a classified node log line: best-effort common metadata plus
// exactly one typed event variant. The message is always present (possibly
// empty); category and thread name never cause a classification failure.
type Log struct {
	// Timestamp is Unix epoch microseconds parsed from the line, 0 if the
	// line carried no parseable calendar timestamp.
	Timestamp  uint64        `cbor:"1,keyasint" json:"timestamp"`
	Category   DebugCategory `cbor:"2,keyasint" json:"category"`
	Threadname string        `cbor:"3,keyasint,omitempty" json:"threadname,omitempty"`

	// Exactly one of the following is non-nil.
	Unknown        *UnknownLogMessage `cbor:"4,keyasint,omitempty" json:"unknown,omitempty"`
	BlockConnected *BlockConnectedLog `cbor:"5,keyasint,omitempty" json:"block_connected,omitempty"`
	BlockChecked   *BlockCheckedLog   `cbor:"6,keyasint,omitempty" json:"block_checked,omitempty"`
}

// LogEvent is one recognized log-message shape. The set is closed per
// release; new shapes are added by registering a new matcher in logparse and
// adding the variant here.
type LogEvent interface {
	fmt.Stringer
	isLogEvent()
}

// Subject returns the log extractor's bus subject.
func (l *Log) Subject() Subject { return SubjectLog }

func (l *Log) attach(e *Envelope) { e.Log = l }

// Event returns the single typed event variant of this log record.
func (l *Log) Event() LogEvent {
	switch {
	case l.BlockConnected != nil:
		return l.BlockConnected
	case l.BlockChecked != nil:
		return l.BlockChecked
	case l.Unknown != nil:
		return l.Unknown
	default:
		return nil
	}
}

// SetEvent stores ev as the record's single variant.
func (l *Log) SetEvent(ev LogEvent) {
	switch v := ev.(type) {
	case *UnknownLogMessage:
		l.Unknown = v
	case *BlockConnectedLog:
		l.BlockConnected = v
	case *BlockCheckedLog:
		l.BlockChecked = v
	}
}

func (l *Log) String() string {
	if ev := l.Event(); ev != nil {
		return fmt.Sprintf("Log(category=%s, %s)", l.Category, ev)
	}
	return fmt.Sprintf("Log(category=%s)", l.Category)
}

// UnknownLogMessage wraps a log message no specific matcher recognized.
type UnknownLogMessage struct {
	RawMessage string `cbor:"1,keyasint" json:"raw_message"`
}

func (u *UnknownLogMessage) isLogEvent() {}

func (u *UnknownLogMessage) String() string {
	return fmt.Sprintf("UnknownLogMessage(%s)", u.RawMessage)
}

// BlockConnectedLog is emitted when the node connects a block to its chain.
type BlockConnectedLog struct {
	BlockHash   string `cbor:"1,keyasint" json:"block_hash"`
	BlockHeight uint32 `cbor:"2,keyasint" json:"block_height"`
}

func (b *BlockConnectedLog) isLogEvent() {}

func (b *BlockConnectedLog) String() string {
	return fmt.Sprintf("BlockConnected(hash=%s, height=%d)", b.BlockHash, b.BlockHeight)
}

// BlockCheckedLog is emitted when the node finishes checking a received
// block, carrying the validation state and an optional debug message.
type BlockCheckedLog struct {
	BlockHash    string `cbor:"1,keyasint" json:"block_hash"`
	State        string `cbor:"2,keyasint" json:"state"`
	DebugMessage string `cbor:"3,keyasint,omitempty" json:"debug_message,omitempty"`
}

func (b *BlockCheckedLog) isLogEvent() {}

func (b *BlockCheckedLog) String() string {
	return fmt.Sprintf("BlockChecked(hash=%s, state=%s, debug_message=%s)",
		b.BlockHash, b.State, b.DebugMessage)
}

// IsMutatedBlock reports whether the validation state indicates a mutated
// block. The state set is fixed; anything else, including "Valid", is not a
// mutation.
func (b *BlockCheckedLog) IsMutatedBlock() bool {
	switch b.State {
	case "bad-txnmrklroot",
		"bad-txns-duplicate",
		"bad-witness-nonce-size",
		"bad-witness-merkle-match",
		"unexpected-witness":
		return true
	default:
		return false
	}
}
