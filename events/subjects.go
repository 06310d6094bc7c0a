package events

// Subject is the name of the bus channel all events from one extractor
// source are published to. One fixed subject per source type.
type Subject string

// Bus subjects, one per extractor source.
const (
	SubjectRpc  Subject = "peerobserver.rpc"
	SubjectLog  Subject = "peerobserver.log"
	SubjectP2P  Subject = "peerobserver.p2p"
	SubjectEbpf Subject = "peerobserver.ebpf"
)

// String returns the subject as a plain string for publish calls.
func (s Subject) String() string {
	return string(s)
}
