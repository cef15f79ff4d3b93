package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gofiber/fiber/v2"

	"trends-go/internal/config"
	"trends-go/pkg/trends"
)

type fakeVolumeService struct {
	req   trends.FetchRequest
	table *trends.Table
	err   error
	calls int
}

func (f *fakeVolumeService) FetchVolumes(_ context.Context, req trends.FetchRequest) (*trends.Table, error) {
	f.calls++
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.table, nil
}

func newTestApp(svc *fakeVolumeService) *fiber.App {
	app := fiber.New()
	NewController(svc, config.FetchConfig{
		Geo:       "US",
		GeoLevel:  "country",
		Frequency: "week",
	}).Register(app)
	return app
}

func TestVolumes_CSV(t *testing.T) {
	svc := &fakeVolumeService{
		table: &trends.Table{
			Header: []string{"date", "flu", "cough"},
			Rows:   [][]string{{"2015-01-01", "5", "0"}},
		},
	}
	app := newTestApp(svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/volumes?terms=flu,cough&start=2011-01-01&end=2015-01-01", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if got, want := string(body), "date,flu,cough\n2015-01-01,5,0\n"; got != want {
		t.Errorf("body = %q, want %q", got, want)
	}

	wantReq := trends.FetchRequest{
		Terms:     []string{"flu", "cough"},
		StartDate: "2011-01-01",
		EndDate:   "2015-01-01",
		Geo:       "US",
		GeoLevel:  trends.GeoCountry,
		Frequency: trends.FreqWeek,
	}
	if !reflect.DeepEqual(svc.req, wantReq) {
		t.Errorf("service request = %+v, want %+v", svc.req, wantReq)
	}
}

func TestVolumes_MissingTerms(t *testing.T) {
	svc := &fakeVolumeService{}
	app := newTestApp(svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/volumes", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if svc.calls != 0 {
		t.Errorf("expected no fetch call, got %d", svc.calls)
	}
}

func TestVolumes_InvalidGeoLevel(t *testing.T) {
	svc := &fakeVolumeService{err: trends.ErrInvalidGeoLevel}
	app := newTestApp(svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/volumes?terms=flu&geo_level=province", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(&fakeVolumeService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestSplitTerms(t *testing.T) {
	got := splitTerms(" flu, cough,,flu ")
	want := []string{"flu", "cough", "flu"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitTerms = %v, want %v", got, want)
	}

	if got := splitTerms(""); len(got) != 0 {
		t.Errorf("splitTerms(\"\") = %v, want empty", got)
	}
}
