package acceptance

import (
	"context"
	"net/http"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/amsterdambike/rental-backend/bike"
)

type stationResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	Phone          string  `json:"phone"`
	Lat            float64 `json:"latitude"`
	Lng            float64 `json:"longitude"`
	AvailableBikes int     `json:"availableBikes"`
}

func TestGetStations_CountsAvailableBikesPerStation(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	station1 := ts.CreateTestStation(t, "Centraal")
	station2 := ts.CreateTestStation(t, "Vondelpark")

	ts.CreateTestBike(t, station1, "available")
	ts.CreateTestBike(t, station1, "available")
	ts.CreateTestBike(t, station1, "reserved")
	ts.CreateTestBike(t, station2, "in_use")
	ts.CreateTestBike(t, station2, "maintenance")

	w := ts.GET("/stations", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp []stationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if len(resp) != 2 {
		t.Fatalf("expected 2 stations, got %d: %s", len(resp), spew.Sdump(resp))
	}

	counts := map[string]int{}
	for _, s := range resp {
		counts[s.Name] = s.AvailableBikes
	}
	if counts["Centraal"] != 2 {
		t.Errorf("expected 2 available bikes at Centraal, got %d: %s", counts["Centraal"], spew.Sdump(resp))
	}
	if counts["Vondelpark"] != 0 {
		t.Errorf("expected 0 available bikes at Vondelpark, got %d: %s", counts["Vondelpark"], spew.Sdump(resp))
	}
}

func TestGetStations_RefetchSeesStatusTransition(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	stationID := ts.CreateTestStation(t, "Centraal")
	bikeID := ts.CreateTestBike(t, stationID, "available")

	w := ts.GET("/stations", nil)
	var before []stationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &before); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if before[0].AvailableBikes != 1 {
		t.Fatalf("expected 1 available bike, got %d", before[0].AvailableBikes)
	}

	// The conditional transition a change signal would be emitted for.
	err := ts.BikeRepo.SetStatus(context.Background(), uuid.MustParse(bikeID), bike.Available, bike.Maintenance)
	if err != nil {
		t.Fatalf("failed to set bike status: %v", err)
	}

	w = ts.GET("/stations", nil)
	var after []stationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &after); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if after[0].AvailableBikes != 0 {
		t.Errorf("expected 0 available bikes after transition, got %d", after[0].AvailableBikes)
	}
}

func TestSetStatus_ConditionalOnCurrentStatus(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	stationID := ts.CreateTestStation(t, "Centraal")
	bikeID := ts.CreateTestBike(t, stationID, "reserved")

	err := ts.BikeRepo.SetStatus(context.Background(), uuid.MustParse(bikeID), bike.Available, bike.Maintenance)
	if err == nil {
		t.Fatal("expected transition from wrong status to fail")
	}
	if got := ts.BikeStatus(t, bikeID); got != "reserved" {
		t.Errorf("expected bike to stay reserved, got %s", got)
	}
}

func TestGetStation_ByID(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	stationID := ts.CreateTestStation(t, "Centraal")
	ts.CreateTestBike(t, stationID, "available")

	w := ts.GET("/stations/"+stationID, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp stationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Name != "Centraal" {
		t.Errorf("expected station Centraal, got %s", resp.Name)
	}
	if resp.AvailableBikes != 1 {
		t.Errorf("expected 1 available bike, got %d", resp.AvailableBikes)
	}
}

func TestGetStation_NotFound(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	w := ts.GET("/stations/"+uuid.NewString(), nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d: %s", http.StatusNotFound, w.Code, w.Body.String())
	}
}

func TestGetStation_MalformedID(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	w := ts.GET("/stations/not-a-uuid", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d: %s", http.StatusNotFound, w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp["code"] != "STATION_NOT_FOUND" {
		t.Errorf("expected code STATION_NOT_FOUND, got %s", resp["code"])
	}
}
