package acceptance

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// The stream sends one availability snapshot on connect and one more
// per change signal.
func TestStationsStream_SnapshotPerChangeSignal(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	stationID := ts.CreateTestStation(t, "Centraal")
	ts.CreateTestBike(t, stationID, "available")

	srv := httptest.NewServer(ts.Router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/stations/stream", nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("failed to open stream: %v", err)
	}
	defer resp.Body.Close()

	events := 0
	sawCount := false
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event:") {
			events++
			if events == 1 {
				// First snapshot arrived; trigger one change signal.
				ts.Feed.Notify()
			}
		}
		if strings.Contains(line, `"availableBikes":1`) {
			sawCount = true
		}
		if events >= 2 && sawCount {
			break
		}
	}

	if events < 2 {
		t.Errorf("expected 2 availability events, got %d", events)
	}
	if !sawCount {
		t.Error("expected snapshot to contain the available count")
	}
}
