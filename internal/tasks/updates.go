package tasks

import "sync"

// Reporter receives progress and human readable messages from a running task.
//
// Progress carries (current, total); a total of 0 means progress is not applicable.
type Reporter interface {
	Progress(current, total int)
	Message(msg string)
}

// PhaseSetter is implemented by reporters that track the running phase.
type PhaseSetter interface {
	SetPhase(p Phase)
}

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message, empty for pure progress events
}

// IsMessage reports whether the update carries a message rather than a progress count.
func (u ProgressUpdate) IsMessage() bool {
	return u.Message != ""
}

// Operation phase enumeration
type Phase int

const (
	ParseList Phase = iota
	ScanLibrary
	Summarize
	ReadLists
	CompareLists
	WriteReports
	CollectFiles
	DeriveEntries
	WritePlaylist
	ReadMetadata
	GroupDuplicates
)

func (p Phase) String() string {
	switch p {
	case ParseList:
		return "parse_list"
	case ScanLibrary:
		return "scan_library"
	case Summarize:
		return "summarize"
	case ReadLists:
		return "read_lists"
	case CompareLists:
		return "compare_lists"
	case WriteReports:
		return "write_reports"
	case CollectFiles:
		return "collect_files"
	case DeriveEntries:
		return "derive_entries"
	case WritePlaylist:
		return "write_playlist"
	case ReadMetadata:
		return "read_metadata"
	case GroupDuplicates:
		return "group_duplicates"
	default:
		return ""
	}
}

// ChannelReporter forwards progress and messages as [ProgressUpdate] values on a channel.
//
// Sends block so the consumer sees every message in order. Once done is closed, sends are dropped
// instead of blocking.
type ChannelReporter struct {
	mu    sync.Mutex
	ch    chan<- ProgressUpdate
	done  <-chan struct{}
	phase Phase
}

// NewChannelReporter creates a [ChannelReporter]. done may be nil.
func NewChannelReporter(ch chan<- ProgressUpdate, done <-chan struct{}) *ChannelReporter {
	return &ChannelReporter{ch: ch, done: done}
}

func (r *ChannelReporter) SetPhase(p Phase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phase = p
}

func (r *ChannelReporter) Progress(current, total int) {
	r.send(ProgressUpdate{Step: current, Total: total})
}

func (r *ChannelReporter) Message(msg string) {
	r.send(ProgressUpdate{Message: msg})
}

func (r *ChannelReporter) send(u ProgressUpdate) {
	r.mu.Lock()
	u.Phase = r.phase
	r.mu.Unlock()

	select {
	case r.ch <- u:
	case <-r.done:
	}
}

// nopReporter discards everything.
type nopReporter struct{}

func (nopReporter) Progress(int, int) {}
func (nopReporter) Message(string)    {}

func orNop(rep Reporter) Reporter {
	if rep == nil {
		return nopReporter{}
	}
	return rep
}

func setPhase(rep Reporter, p Phase) {
	if ps, ok := rep.(PhaseSetter); ok {
		ps.SetPhase(p)
	}
}
