package analytics

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestFilterFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set("start_date", "2024-03-01")
	q.Set("end_date", "2024-03-31")
	q.Set("platform", "instagram")
	q.Set("brand", "acme")
	q.Set("basis", "post")

	filter, err := FilterFromQuery(q)
	if err != nil {
		t.Fatalf("FilterFromQuery returned error: %v", err)
	}
	if !filter.HasDateRange() {
		t.Fatal("expected date range enabled")
	}
	if !filter.StartDate.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start date %v", filter.StartDate)
	}
	if filter.Platform != "instagram" || filter.Brand != "acme" || filter.Basis != "post" {
		t.Errorf("unexpected filter %+v", filter)
	}
}

func TestFilterFromQueryOneSidedRangeDisabled(t *testing.T) {
	q := url.Values{}
	q.Set("start_date", "2024-03-01")

	filter, err := FilterFromQuery(q)
	if err != nil {
		t.Fatalf("FilterFromQuery returned error: %v", err)
	}
	if filter.HasDateRange() {
		t.Error("expected range disabled when only one boundary is given")
	}
}

func TestFilterFromQueryBadDate(t *testing.T) {
	q := url.Values{}
	q.Set("start_date", "01/03/2024")
	q.Set("end_date", "2024-03-31")

	if _, err := FilterFromQuery(q); err == nil {
		t.Error("expected error for malformed start_date")
	}
}

func TestHandlerTrackingSummary(t *testing.T) {
	fx := newFixture()
	maya := fx.addInfluencer("Maya Patel", "instagram", "fitness", "female")
	fx.addTracking(maya, "2024-03-01", "spring", "acme", 2, "30.35")

	handler := NewHTTPHandler(newTestService(fx))
	req := httptest.NewRequest("GET", "/api/tracking/summary", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		TotalRevenue string `json:"total_revenue"`
		TotalOrders  int64  `json:"total_orders"`
		DateRange    string `json:"date_range"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.TotalRevenue != "30.35" {
		t.Errorf("expected revenue 30.35, got %q", body.TotalRevenue)
	}
	if body.TotalOrders != 2 || body.DateRange != "All time" {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestHandlerRejectsBadFilter(t *testing.T) {
	handler := NewHTTPHandler(newTestService(newFixture()))
	req := httptest.NewRequest("GET", "/api/payouts/summary?start_date=bad&end_date=2024-03-31", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != 400 {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerMethodNotAllowed(t *testing.T) {
	handler := NewHTTPHandler(newTestService(newFixture()))
	req := httptest.NewRequest("POST", "/api/tracking/summary", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != 405 {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
