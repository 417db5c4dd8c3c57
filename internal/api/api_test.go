package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/minsukim/tripdeck/internal/gallery"
	"github.com/minsukim/tripdeck/internal/interpreter"
	"github.com/minsukim/tripdeck/internal/models"
	"github.com/minsukim/tripdeck/internal/planner"
	"github.com/minsukim/tripdeck/internal/testutil"
	"github.com/minsukim/tripdeck/internal/weather"
)

// testEnv sets up temp file stores, a planner service, and the router.
// authToken="" means auth disabled. The interpreter has no API key, so
// interpreter routes answer 503 unless the test swaps in its own handler.
func testEnv(t *testing.T, authToken string) (*planner.Service, http.Handler) {
	t.Helper()
	return testEnvInterp(t, authToken, interpreter.Config{})
}

func testEnvInterp(t *testing.T, authToken string, icfg interpreter.Config) (*planner.Service, http.Handler) {
	t.Helper()

	svc, dataDir := testutil.NewPlanner(t)

	photos, err := gallery.NewStore(filepath.Join(dataDir, "photos"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	h := NewHandler(svc,
		interpreter.NewClient(nil, icfg),
		interpreter.NewCooldown(1200*time.Millisecond),
		weather.NewClient(33.5902, 130.4017),
		photos, nil)
	return svc, NewRouter(h, authToken != "", authToken, nil)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestScheduleSeededOnFirstGet(t *testing.T) {
	_, router := testEnv(t, "")

	w := doJSON(t, router, http.MethodGet, "/schedule", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp ScheduleResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(resp.Records))
	}
	if resp.Records[0].Content != models.SeedRecord.Content {
		t.Errorf("content = %q", resp.Records[0].Content)
	}
}

func TestSaveScheduleAndView(t *testing.T) {
	_, router := testEnv(t, "")

	records := []models.Record{
		{DateLabel: "3/5 (Thu)", TimeLabel: "10:00", Category: "Sight", Content: "캐널시티", Place: ""},
		{DateLabel: "3/4 (Wed)", TimeLabel: "09:20", Category: "Arrival", Content: "후쿠오카 공항 (이동)", Place: ""},
	}
	w := doJSON(t, router, http.MethodPut, "/schedule", SaveScheduleRequest{Records: records})
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d, body = %s", w.Code, w.Body.String())
	}

	// Sorted view: 3/4 before 3/5.
	w = doJSON(t, router, http.MethodGet, "/schedule/view", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("view status = %d", w.Code)
	}
	var view planner.View
	_ = json.Unmarshal(w.Body.Bytes(), &view)
	if len(view.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(view.Entries))
	}
	if view.Entries[0].DateLabel != "3/4 (Wed)" {
		t.Errorf("first entry date = %q, want 3/4 (Wed)", view.Entries[0].DateLabel)
	}
	if view.Entries[0].ResolvedQuery != "후쿠오카 공항" {
		t.Errorf("resolved query = %q, want 후쿠오카 공항", view.Entries[0].ResolvedQuery)
	}
	if len(view.DateLabels) != 2 {
		t.Errorf("date labels = %v", view.DateLabels)
	}

	// Date filter narrows entries but keeps the full label list.
	w = doJSON(t, router, http.MethodGet, "/schedule/view?dates=3/5+(Thu)", nil)
	_ = json.Unmarshal(w.Body.Bytes(), &view)
	if len(view.Entries) != 1 || view.Entries[0].Content != "캐널시티" {
		t.Errorf("filtered entries = %+v", view.Entries)
	}
	if len(view.DateLabels) != 2 {
		t.Errorf("filtered date labels = %v, want both days", view.DateLabels)
	}
}

func TestSaveScheduleInvalidBody(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodPut, "/schedule", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCandidateLifecycle(t *testing.T) {
	_, router := testEnv(t, "")

	w := doJSON(t, router, http.MethodPost, "/candidates", AddCandidateRequest{Place: "모츠나베 오오야마"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/candidates", nil)
	var resp CandidatesResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Candidates) != 1 || resp.Candidates[0].Place != "모츠나베 오오야마" {
		t.Fatalf("candidates = %+v", resp.Candidates)
	}

	// Out-of-range delete is a 404.
	w = doJSON(t, router, http.MethodDelete, "/candidates/5", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete out of range = %d, want 404", w.Code)
	}

	w = doJSON(t, router, http.MethodDelete, "/candidates/0", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Candidates) != 0 {
		t.Errorf("candidates after delete = %+v", resp.Candidates)
	}
}

func TestAddCandidateRequiresPlace(t *testing.T) {
	_, router := testEnv(t, "")

	w := doJSON(t, router, http.MethodPost, "/candidates", AddCandidateRequest{MapLink: "https://example.com"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestExpensesAndSummary(t *testing.T) {
	_, router := testEnv(t, "")

	expenses := []models.Expense{
		{Date: "3/4", Item: "라멘", Amount: "1200", Payer: "민수"},
		{Date: "3/4", Item: "지하철", Amount: "630", Payer: "아빠"},
		{Date: "3/5", Item: "기념품", Amount: "n/a", Payer: "엄마"},
	}
	w := doJSON(t, router, http.MethodPut, "/expenses", SaveExpensesRequest{Expenses: expenses})
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/expenses/summary", nil)
	var summary struct {
		Count int    `json:"count"`
		Total string `json:"total"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &summary)
	if summary.Count != 3 {
		t.Errorf("count = %d, want 3", summary.Count)
	}
	if summary.Total != "1830" {
		t.Errorf("total = %q, want 1830 (unparsable rows skipped)", summary.Total)
	}
}

func TestConvert(t *testing.T) {
	_, router := testEnv(t, "")

	w := doJSON(t, router, http.MethodGet, "/expenses/convert?jpy=100", nil)
	var resp ConvertResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.KRW != "900" {
		t.Errorf("krw = %q, want 900", resp.KRW)
	}

	w = doJSON(t, router, http.MethodGet, "/expenses/convert?krw=900", nil)
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.JPY != "100" {
		t.Errorf("jpy = %q, want 100", resp.JPY)
	}

	for _, path := range []string{"/expenses/convert", "/expenses/convert?jpy=1&krw=1", "/expenses/convert?jpy=abc"} {
		w = doJSON(t, router, http.MethodGet, path, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", path, w.Code)
		}
	}
}

func TestTranslateWithoutKey(t *testing.T) {
	_, router := testEnv(t, "")

	w := doJSON(t, router, http.MethodPost, "/translate",
		TranslateRequest{Text: "물 주세요", Source: "Korean", Target: "Japanese"})
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestTranslateWithStubUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "お水ください"}},
			},
		})
	}))
	defer upstream.Close()

	_, router := testEnvInterp(t, "", interpreter.Config{
		APIKey:         "test-key",
		BaseURL:        upstream.URL,
		TranslateModel: "gpt-4o-mini",
	})

	w := doJSON(t, router, http.MethodPost, "/translate",
		TranslateRequest{Text: "물 주세요", Source: "Korean", Target: "Japanese"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp TranslateResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Translation != "お水ください" {
		t.Errorf("translation = %q", resp.Translation)
	}

	// Repeated automatic request for the same text hits the cooldown.
	auto := TranslateRequest{Text: "같은 문장", Source: "Korean", Target: "Japanese", Auto: true}
	if w := doJSON(t, router, http.MethodPost, "/translate", auto); w.Code != http.StatusOK {
		t.Fatalf("first auto status = %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodPost, "/translate", auto); w.Code != http.StatusTooManyRequests {
		t.Errorf("second auto status = %d, want 429", w.Code)
	}
}

func TestPhotoUploadListAndReject(t *testing.T) {
	_, router := testEnv(t, "")

	upload := func(name string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("photo", name)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = part.Write([]byte("fake image bytes"))
		mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/photos", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	if w := upload("airport.jpg"); w.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body = %s", w.Code, w.Body.String())
	}
	if w := upload("notes.txt"); w.Code != http.StatusBadRequest {
		t.Errorf("non-image upload status = %d, want 400", w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/photos", nil)
	var resp PhotosResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Photos) != 1 || resp.Photos[0].Name != "airport.jpg" {
		t.Fatalf("photos = %+v", resp.Photos)
	}
	if resp.Photos[0].URL != "/photos/airport.jpg" {
		t.Errorf("url = %q", resp.Photos[0].URL)
	}
}

func TestAuthToken(t *testing.T) {
	_, router := testEnv(t, "secret")

	req := httptest.NewRequest(http.MethodGet, "/schedule", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/schedule", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("with token status = %d, want 200", w.Code)
	}
}
