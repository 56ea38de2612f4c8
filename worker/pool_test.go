package worker

import (
	"testing"
	"time"
)

func TestPendingQueueFIFO(t *testing.T) {
	ids := []string{"r1", "r2", "r3"}
	for _, id := range ids {
		AddPendingRequest(&ReportRequest{ID: id, Owner: "alice", CreatedAt: time.Now()})
	}
	for _, want := range ids {
		got := NextPendingID()
		if got != want {
			t.Errorf("NextPendingID() = %q, want %q", got, want)
		}
		if _, ok := PendingRequests().LoadAndDelete(got); !ok {
			t.Errorf("request %q missing from pending map", got)
		}
	}
	if got := NextPendingID(); got != "" {
		t.Errorf("empty queue returned %q", got)
	}
}
