package history

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/studiowebux/productdesk/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestManager_RecordAndRecent(t *testing.T) {
	m := newTestManager(t)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)

	records := []types.CallRecord{
		{RequestID: "r1", Timestamp: start, Operation: "list", Method: "GET", URL: "http://x/api/products", Status: 200, Duration: 12, ResponseSize: 40},
		{RequestID: "r2", Timestamp: start.Add(time.Second), Operation: "update", Method: "PUT", URL: "http://x/api/products/1", Status: 500, Duration: 30, RequestSize: 80, Error: "status 500"},
		{RequestID: "r3", Timestamp: start.Add(2 * time.Second), Operation: "get", Method: "GET", URL: "http://x/api/products/1", Duration: 5, Error: "connection refused"},
	}
	for _, rec := range records {
		if err := m.Record(rec); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := m.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].RequestID != "r3" || got[1].RequestID != "r2" {
		t.Errorf("order = %s, %s; want newest first", got[0].RequestID, got[1].RequestID)
	}
	if got[0].Status != 0 || got[0].Error != "connection refused" {
		t.Errorf("transport failure not preserved: %+v", got[0])
	}
	if !got[1].Timestamp.Equal(start.Add(time.Second)) {
		t.Errorf("timestamp = %v", got[1].Timestamp)
	}
	if got[1].RequestSize != 80 || got[1].Method != "PUT" {
		t.Errorf("fields not preserved: %+v", got[1])
	}

	all, err := m.Recent(0)
	if err != nil {
		t.Fatalf("Recent(0): %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Recent(0) len = %d, want 3", len(all))
	}
	if all[2].Error != "" {
		t.Errorf("success should have empty error, got %q", all[2].Error)
	}
}

func TestManager_Stats(t *testing.T) {
	m := newTestManager(t)

	for _, rec := range []types.CallRecord{
		{RequestID: "a", Operation: "list", Method: "GET", URL: "u", Status: 200, Duration: 10},
		{RequestID: "b", Operation: "list", Method: "GET", URL: "u", Status: 200, Duration: 30},
		{RequestID: "c", Operation: "delete", Method: "DELETE", URL: "u", Status: 404, Duration: 7, Error: "status 404"},
	} {
		if err := m.Record(rec); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := m.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("len = %d, want 2", len(stats))
	}

	if stats[0].Operation != "delete" || stats[0].Failed != 1 || stats[0].Total != 1 {
		t.Errorf("delete stats = %+v", stats[0])
	}
	if stats[1].Operation != "list" || stats[1].Total != 2 || stats[1].Failed != 0 {
		t.Errorf("list stats = %+v", stats[1])
	}
	if stats[1].AvgDurationMs != 20 || stats[1].MaxDurationMs != 30 {
		t.Errorf("list durations = %+v", stats[1])
	}
}

func TestManager_ClearAndCount(t *testing.T) {
	m := newTestManager(t)

	if err := m.Record(types.CallRecord{RequestID: "x", Operation: "list", Method: "GET", URL: "u"}); err != nil {
		t.Fatal(err)
	}
	if n, _ := m.GetCount(); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n, _ := m.GetCount(); n != 0 {
		t.Errorf("count after clear = %d", n)
	}
}

func TestManager_ConcurrentRecord(t *testing.T) {
	m := newTestManager(t)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- m.Record(types.CallRecord{RequestID: "c", Operation: "list", Method: "GET", URL: "u", Status: 200})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Record: %v", err)
		}
	}
	if n, _ := m.GetCount(); n != 20 {
		t.Errorf("count = %d, want 20", n)
	}
}
