package logparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/peer-observer/peer-observer/events"
	"github.com/peer-observer/peer-observer/pkg/timestamp"
)

// Pattern fragments shared by the structural and matcher regexes. The
// timestamp fragment checks shape only (digit counts, separators, trailing
// Z); calendar validity is checked by the time parser afterwards.
const (
	rfc3339ShapePattern = `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d{1,6})?Z`
	metadataPattern     = `\[([^\]]+)\]`
	blockHashPattern    = `[0-9a-f]{64}`

	// Matches ValidationState::ToString() output: reject reason up to the
	// first ", " or end of string, then an optional debug message.
	validationStatePattern = `(.*?)(?:,\s|$)(.+)?`
)

var (
	logLineRegex = regexp.MustCompile(
		`^(?P<timestamp>` + rfc3339ShapePattern + `)\s+` +
			`(?P<metadata>(?:` + metadataPattern + `\s+)*)` +
			`(?P<message>.+)$`)

	metadataRegex = regexp.MustCompile(metadataPattern)

	blockConnectedRegex = regexp.MustCompile(
		`BlockConnected: block hash=(` + blockHashPattern + `) block height=(\d+)`)

	blockCheckedRegex = regexp.MustCompile(
		`BlockChecked: block hash=(` + blockHashPattern + `) state=` + validationStatePattern)
)

// matcher recognizes one message shape. A nil return means no match and the
// chain continues with the next matcher.
type matcher func(message string) events.LogEvent

// The catch-all unknown matcher is applied after the chain, so ordering here
// only matters between specific shapes.
var matchers = []matcher{
	matchBlockConnected,
	matchBlockChecked,
}

// Classify parses a single debug-log line into a Log record. It never fails:
// a line with no recognizable structure yields a record with a zero
// timestamp, unknown category, and an empty unknown message.
func Classify(line string) *events.Log {
	ts, category, threadname, message := splitCommon(line)

	log := &events.Log{
		Timestamp:  ts,
		Category:   category,
		Threadname: threadname,
	}
	for _, match := range matchers {
		if ev := match(message); ev != nil {
			log.SetEvent(ev)
			return log
		}
	}
	log.Unknown = &events.UnknownLogMessage{RawMessage: message}
	return log
}

// splitCommon extracts the best-effort common fields of a log line. A line
// that does not match the structural pattern returns all zero values. A
// shape-valid timestamp with an impossible calendar value (month 99) keeps
// the rest of the line and zeroes only the timestamp.
func splitCommon(line string) (ts uint64, category events.DebugCategory, threadname, message string) {
	caps := logLineRegex.FindStringSubmatch(line)
	if caps == nil {
		return 0, events.CategoryUnknown, "", ""
	}

	tsStr := caps[logLineRegex.SubexpIndex("timestamp")]
	if t, err := time.Parse(time.RFC3339Nano, tsStr); err == nil {
		ts = uint64(timestamp.ToUnixMicro(t))
	}

	metadata := caps[logLineRegex.SubexpIndex("metadata")]
	var items []string
	for _, m := range metadataRegex.FindAllStringSubmatch(metadata, -1) {
		items = append(items, m[1])
	}

	// Category is usually the last metadata item, thread name the first.
	// Anything between them (source locations, function names) is dropped.
	category = events.CategoryUnknown
	if len(items) > 0 {
		if cat, ok := events.CategoryFromName(strings.ToUpper(items[len(items)-1])); ok {
			category = cat
			items = items[:len(items)-1]
		}
	}
	if len(items) > 0 {
		threadname = items[0]
	}

	message = caps[logLineRegex.SubexpIndex("message")]
	return ts, category, threadname, message
}

func matchBlockConnected(message string) events.LogEvent {
	caps := blockConnectedRegex.FindStringSubmatch(message)
	if caps == nil {
		return nil
	}
	height, err := strconv.ParseUint(caps[2], 10, 32)
	if err != nil {
		return nil
	}
	return &events.BlockConnectedLog{
		BlockHash:   caps[1],
		BlockHeight: uint32(height),
	}
}

func matchBlockChecked(message string) events.LogEvent {
	caps := blockCheckedRegex.FindStringSubmatch(message)
	if caps == nil {
		return nil
	}
	return &events.BlockCheckedLog{
		BlockHash:    caps[1],
		State:        caps[2],
		DebugMessage: caps[3],
	}
}
