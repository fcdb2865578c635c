package driver

import "time"

// Status captures the progress state of one file.
type Status string

const (
	// StatusQueued: the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusScanning: both patterns are running over the file.
	StatusScanning Status = "scanning"
	StatusDone     Status = "done"
	StatusError    Status = "error"
)

// Event reports progress for a file.
type Event struct {
	File    string
	Status  Status
	Err     error
	Found   int // occurrences of both kinds
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use when scanning with more than one job.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
