package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospital-agent/config"

	"go.uber.org/zap"
)

func newTestClient(hospitalURL, testURL, feedbackURL, doctorURL string) *Client {
	return New(&config.Config{
		HospitalServiceURL:    hospitalURL,
		TestServiceURL:        testURL,
		FeedbackServiceURL:    feedbackURL,
		DoctorServiceURL:      doctorURL,
		BackendRequestTimeout: 5 * time.Second,
	}, zap.NewNop())
}

func TestAllHospitalsDecodesTypedRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hospital/v1/all" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"name":"Dhaka Medical","icus":12,"costRange":"LOW",
			 "locationResponse":{"id":1,"city":"Dhaka","zoneId":3}},
			{"id":2,"name":"No Extras"}
		]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, srv.URL, srv.URL, srv.URL)
	hospitals, err := client.AllHospitals(context.Background())
	if err != nil {
		t.Fatalf("AllHospitals returned error: %v", err)
	}
	if len(hospitals) != 2 {
		t.Fatalf("got %d hospitals, want 2", len(hospitals))
	}

	first := hospitals[0]
	if first.ICUs == nil || *first.ICUs != 12 {
		t.Errorf("icus = %v, want 12", first.ICUs)
	}
	if first.Location == nil || first.Location.City == nil || *first.Location.City != "Dhaka" {
		t.Errorf("location = %+v, want city Dhaka", first.Location)
	}
	if first.Location.ZoneID == nil || *first.Location.ZoneID != 3 {
		t.Errorf("zoneId = %v, want 3", first.Location.ZoneID)
	}

	// Absent optional fields stay nil rather than collapsing to zeros.
	second := hospitals[1]
	if second.ICUs != nil || second.Location != nil || second.Latitude != nil {
		t.Errorf("optional fields on bare record are not nil: %+v", second)
	}
}

func TestNonSuccessStatusBecomesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, srv.URL, srv.URL, srv.URL)
	_, err := client.TestByID(context.Background(), 42)
	if err == nil {
		t.Fatal("expected an error for a 404 response")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusNotFound {
		t.Errorf("code = %d, want 404", statusErr.Code)
	}
	if statusErr.Service != "test" {
		t.Errorf("service = %q, want test", statusErr.Service)
	}
}

func TestPathArgumentsAreEscaped(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, srv.URL, srv.URL, srv.URL)
	if _, err := client.TestsByType(context.Background(), "BLOOD/URINE"); err != nil {
		t.Fatalf("TestsByType returned error: %v", err)
	}
	if gotPath != "/test/v1/type/BLOOD%2FURINE" {
		t.Errorf("path = %q, want the slash escaped", gotPath)
	}
}

func TestMalformedBodyIsADecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, srv.URL, srv.URL, srv.URL)
	_, err := client.AllDoctors(context.Background())
	if err == nil {
		t.Fatal("expected a decode error for a malformed body")
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Errorf("decode failure must not be a StatusError: %v", err)
	}
}
