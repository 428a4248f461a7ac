package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// sseSink writes server-sent-event frames to one client stream:
//
//	event: <type>
//	data: <json>
//
// with a blank line terminating each frame. Flushed per frame so events reach
// the client immediately.
type sseSink struct {
	w       http.ResponseWriter
	rc      *http.ResponseController
	timeout time.Duration
}

func newSSESink(w http.ResponseWriter, timeout time.Duration) *sseSink {
	return &sseSink{
		w:       w,
		rc:      http.NewResponseController(w),
		timeout: timeout,
	}
}

// WriteFrame implements realtime.EventSink. The write deadline bounds how
// long a stalled client can block a fan-out; exceeding it fails the write and
// the connection is torn down.
func (s *sseSink) WriteFrame(event string, data []byte) error {
	if err := s.rc.SetWriteDeadline(time.Now().Add(s.timeout)); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if err := s.rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	return nil
}
