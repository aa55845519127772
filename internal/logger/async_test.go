package logger

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// sink collects what every recordingHandler derived from it received.
type sink struct {
	mu      sync.Mutex
	entries []entry
	gate    chan struct{} // when non-nil, Handle blocks until it is closed
}

type entry struct {
	msg   string
	attrs map[string]string
	group string
}

func (s *sink) byMessage(msg string) []entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entry
	for _, e := range s.entries {
		if e.msg == msg {
			out = append(out, e)
		}
	}
	return out
}

func (s *sink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// recordingHandler records messages together with the attrs and group it
// was derived with, so tests can tell which derived handler a record used.
type recordingHandler struct {
	sink  *sink
	attrs map[string]string
	group string
}

func newRecordingHandler() (*recordingHandler, *sink) {
	s := &sink{}
	return &recordingHandler{sink: s, attrs: map[string]string{}}, s
}

func (h *recordingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (h *recordingHandler) Handle(_ context.Context, rec slog.Record) error { //nolint:gocritic // slog.Handler interface requires value receiver
	if h.sink.gate != nil {
		<-h.sink.gate
	}
	attrs := make(map[string]string, len(h.attrs))
	for k, v := range h.attrs {
		attrs[k] = v
	}
	rec.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.String()
		return true
	})
	h.sink.mu.Lock()
	h.sink.entries = append(h.sink.entries, entry{msg: rec.Message, attrs: attrs, group: h.group})
	h.sink.mu.Unlock()
	return nil
}

func (h *recordingHandler) WithAttrs(as []slog.Attr) slog.Handler {
	attrs := make(map[string]string, len(h.attrs)+len(as))
	for k, v := range h.attrs {
		attrs[k] = v
	}
	for _, a := range as {
		attrs[a.Key] = a.Value.String()
	}
	return &recordingHandler{sink: h.sink, attrs: attrs, group: h.group}
}

func (h *recordingHandler) WithGroup(name string) slog.Handler {
	return &recordingHandler{sink: h.sink, attrs: h.attrs, group: name}
}

func record(msg string, attrs ...slog.Attr) slog.Record {
	r := slog.NewRecord(time.Now(), slog.LevelInfo, msg, 0)
	r.AddAttrs(attrs...)
	return r
}

func TestAsyncHandler_DeliversRecordWithAttrs(t *testing.T) {
	inner, s := newRecordingHandler()
	ah := NewAsyncHandler(inner, 16, 1)

	if err := ah.Handle(context.Background(), record("plan generated", slog.String("model", "m1"))); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	ah.Close()

	got := s.byMessage("plan generated")
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].attrs["model"] != "m1" {
		t.Errorf("record attrs lost: %v", got[0].attrs)
	}
}

func TestAsyncHandler_EnabledDelegates(t *testing.T) {
	inner, _ := newRecordingHandler()
	ah := NewAsyncHandler(inner, 1, 1)
	defer ah.Close()

	if ah.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should follow the inner handler and be disabled")
	}
	if !ah.WithAttrs(nil).Enabled(context.Background(), slog.LevelWarn) {
		t.Error("derived handler should be enabled for warn")
	}
}

func TestAsyncHandler_DerivedHandlersRouteToTheirInner(t *testing.T) {
	inner, s := newRecordingHandler()
	ah := NewAsyncHandler(inner, 16, 2)

	svc := ah.WithAttrs([]slog.Attr{slog.String("service", "skillbridge-api")})
	grouped := svc.WithGroup("http")

	_ = ah.Handle(context.Background(), record("root"))
	_ = svc.Handle(context.Background(), record("service"))
	_ = grouped.Handle(context.Background(), record("grouped"))

	// Closing the root flushes records queued through derived handlers.
	ah.Close()

	if s.len() != 3 {
		t.Fatalf("expected 3 records through the shared queue, got %d", s.len())
	}
	if e := s.byMessage("root")[0]; e.attrs["service"] != "" || e.group != "" {
		t.Errorf("root record picked up derived state: %+v", e)
	}
	if e := s.byMessage("service")[0]; e.attrs["service"] != "skillbridge-api" || e.group != "" {
		t.Errorf("service record routed to wrong handler: %+v", e)
	}
	if e := s.byMessage("grouped")[0]; e.attrs["service"] != "skillbridge-api" || e.group != "http" {
		t.Errorf("grouped record routed to wrong handler: %+v", e)
	}
}

func TestAsyncHandler_ConcurrentWritesAcrossDerivedHandlers(t *testing.T) {
	const goroutines = 50
	const perGoroutine = 100

	inner, s := newRecordingHandler()
	ah := NewAsyncHandler(inner, goroutines*perGoroutine, 4)

	var wg sync.WaitGroup
	for g := range goroutines {
		h := slog.Handler(ah)
		if g%2 == 1 {
			h = ah.WithAttrs([]slog.Attr{slog.Bool("derived", true)})
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perGoroutine {
				_ = h.Handle(context.Background(), record("concurrent"))
			}
		}()
	}
	wg.Wait()
	ah.Close()

	got := s.byMessage("concurrent")
	if len(got) != goroutines*perGoroutine {
		t.Fatalf("expected %d records, got %d", goroutines*perGoroutine, len(got))
	}
	derived := 0
	for _, e := range got {
		if e.attrs["derived"] == "true" {
			derived++
		}
	}
	if want := goroutines / 2 * perGoroutine; derived != want {
		t.Errorf("expected %d records from derived handlers, got %d", want, derived)
	}
	if ah.DroppedCount() != 0 {
		t.Errorf("expected no drops, got %d", ah.DroppedCount())
	}
}

func TestAsyncHandler_FullQueueDropsAndCountIsShared(t *testing.T) {
	inner, s := newRecordingHandler()
	s.gate = make(chan struct{})
	ah := NewAsyncHandler(inner, 1, 1)
	derived := ah.WithAttrs([]slog.Attr{slog.String("k", "v")}).(*AsyncHandler)

	const total = 50
	for i := range total {
		h := ah
		if i%2 == 1 {
			h = derived
		}
		_ = h.Handle(context.Background(), record("flood"))
	}

	// At most one record is held by the blocked worker and one by the queue.
	dropped := ah.DroppedCount()
	if dropped < total-2 {
		t.Fatalf("expected at least %d drops, got %d", total-2, dropped)
	}
	if derived.DroppedCount() != dropped {
		t.Errorf("derived handler reports %d drops, root %d", derived.DroppedCount(), dropped)
	}

	close(s.gate)
	ah.Close()

	if delivered := int64(s.len()); delivered+dropped != total {
		t.Errorf("delivered %d + dropped %d != %d", delivered, dropped, total)
	}
}

func TestAsyncHandler_CloseFlushesAndIsIdempotent(t *testing.T) {
	inner, s := newRecordingHandler()
	ah := NewAsyncHandler(inner, 1000, 2)
	derived := ah.WithGroup("g").(*AsyncHandler)

	const total = 200
	for range total {
		_ = derived.Handle(context.Background(), record("flush"))
	}

	derived.Close()
	ah.Close()

	if got := len(s.byMessage("flush")); got != total {
		t.Fatalf("expected %d records after close, got %d", total, got)
	}
}
