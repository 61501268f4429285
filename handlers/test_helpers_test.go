package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"catalogquote/config"
	"catalogquote/services"
	"catalogquote/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

const testSessionID = "testsession0000000000001"

var testConfig = config.Config{CompanyName: "Test Glass Co", Currency: "₫"}

// windowFixture holds the record ids of seedWindowCatalog.
type windowFixture struct {
	categoryID  string
	structureID string
	profileID   string
	handleID    string
	xingfaID    string
	vietPhapID  string
	leverID     string
	noneID      string
}

// seedWindowCatalog creates one category with a Profile column (Viet Phap
// 80k, Xingfa 100k) and a Handle column (Lever 50k, None 0) under a default
// "Sliding Window" structure. The engine lists four combinations for it,
// from "Viet Phap - None" at 80000 to "Xingfa - Lever" at 150000.
func seedWindowCatalog(t *testing.T, app *pocketbase.PocketBase) windowFixture {
	t.Helper()
	cat := testhelpers.CreateTestCategory(t, app, "Aluminum")
	profile := testhelpers.CreateTestColumn(t, app, cat.Id, "Profile", 1)
	handle := testhelpers.CreateTestColumn(t, app, cat.Id, "Handle", 2)
	f := windowFixture{
		categoryID: cat.Id,
		profileID:  profile.Id,
		handleID:   handle.Id,
		xingfaID:   testhelpers.CreateTestOption(t, app, profile.Id, "Xingfa", 100000).Id,
		vietPhapID: testhelpers.CreateTestOption(t, app, profile.Id, "Viet Phap", 80000).Id,
		leverID:    testhelpers.CreateTestOption(t, app, handle.Id, "Lever", 50000).Id,
		noneID:     testhelpers.CreateTestOption(t, app, handle.Id, "None", 0).Id,
	}
	st := testhelpers.CreateTestStructure(t, app, cat.Id, "Sliding Window", []string{profile.Id, handle.Id}, " - ", true)
	f.structureID = st.Id
	return f
}

// engineRequest builds a request carrying the test engine session. A
// non-nil form is sent url-encoded.
func engineRequest(method, target string, form url.Values) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(context.WithValue(req.Context(), EngineSessionKey, testSessionID))
}

// decodeView reads the {"view": ...} body of a JSON engine response.
func decodeView(t *testing.T, rec *httptest.ResponseRecorder) (services.SessionView, map[string]string) {
	t.Helper()
	var body struct {
		View   services.SessionView `json:"view"`
		Errors map[string]string    `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode engine response: %v\nbody: %s", err, rec.Body.String())
	}
	return body.View, body.Errors
}

// rowByName finds a combination row by its display name.
func rowByName(t *testing.T, v services.SessionView, name string) services.CombinationRow {
	t.Helper()
	for _, r := range v.Rows {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("row %q not found in %d rows", name, len(v.Rows))
	return services.CombinationRow{}
}
