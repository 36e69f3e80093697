// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/result-gazette/internal/portal"
	"github.com/pdiddy/result-gazette/pkg/types"
)

const tokenPageHTML = `<html><body><form method="post">
<input type="hidden" id="__VIEWSTATE" name="__VIEWSTATE" value="vs-1" />
<input type="hidden" id="__EVENTVALIDATION" name="__EVENTVALIDATION" value="ev-1" />
</form></body></html>`

const serverMessage = "Record not found against this Roll No."

// newResultsServer mimics the portal: the token page on GET, and a
// per-roll scripted response on POST. Roll numbers ending in 2 report a
// server message; rolls ending in 3 stall past the client timeout.
func newResultsServer(t *testing.T, gets, posts *int32) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			atomic.AddInt32(gets, 1)
			w.Write([]byte(tokenPageHTML))
			return
		}
		atomic.AddInt32(posts, 1)
		assert.NoError(t, r.ParseForm())
		roll := r.PostFormValue("TxtSearchText")

		switch {
		case strings.HasSuffix(roll, "2"):
			fmt.Fprintf(w, `<html><body><span id="LblErr">%s</span></body></html>`, serverMessage)
		case strings.HasSuffix(roll, "3"):
			time.Sleep(300 * time.Millisecond)
			w.Write([]byte(`<html><body></body></html>`))
		default:
			fmt.Fprintf(w, `<html><body>
<span id="LblName">NAME-%s</span>
<span id="LblRollNo">%s</span>
<span id="lblGazres">%s marks</span>
</body></html>`, roll, roll, roll)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testCfg(baseURL string, start, end int) types.ScrapeConfig {
	return types.ScrapeConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   100 * time.Millisecond,
			UserAgent: "test/0.1",
		},
		BaseURL: baseURL,
		Start:   start,
		End:     end,
	}
}

func TestRunRange(t *testing.T) {
	var gets, posts int32
	ts := newResultsServer(t, &gets, &posts)

	cfg := testCfg(ts.URL, 1001, 1003)
	client := portal.New(&http.Client{Timeout: cfg.Timeout}, cfg)

	var out bytes.Buffer
	result, err := Run(context.Background(), client, cfg, &out)
	require.NoError(t, err)

	// Exactly one record per roll, in ascending order.
	require.Len(t, result.Records, 3)
	assert.Equal(t, types.Record{RollNo: "1001", Name: "NAME-1001", Result: "1001 marks"}, result.Records[0])

	// Server-reported message: empty name, message verbatim in Result.
	assert.Equal(t, types.Record{RollNo: "1002", Name: "", Result: serverMessage}, result.Records[1])

	// Timeout: empty name, Result begins with the error indicator.
	assert.Equal(t, "1003", result.Records[2].RollNo)
	assert.Empty(t, result.Records[2].Name)
	assert.True(t, strings.HasPrefix(result.Records[2].Result, "Error: "),
		"Result = %q, want Error: prefix", result.Records[2].Result)

	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.ServerErrors)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 3, result.Total())
	assert.True(t, result.HasFailures())

	assert.Contains(t, out.String(), "fetching result for roll no 1001")
	assert.Contains(t, out.String(), "{Roll No: 1001, Name: NAME-1001, Result: 1001 marks}")
	assert.Contains(t, out.String(), "Scrape summary: 1 succeeded, 1 server messages, 1 failed (total: 3)")
}

func TestRunSingleRollDoesOneCycle(t *testing.T) {
	var gets, posts int32
	ts := newResultsServer(t, &gets, &posts)

	cfg := testCfg(ts.URL, 1001, 1001)
	client := portal.New(&http.Client{Timeout: cfg.Timeout}, cfg)

	var out bytes.Buffer
	result, err := Run(context.Background(), client, cfg, &out)
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&gets))
	assert.Equal(t, int32(1), atomic.LoadInt32(&posts))
	assert.False(t, result.HasFailures())
}

func TestRunContinuesAfterFailure(t *testing.T) {
	var gets, posts int32
	ts := newResultsServer(t, &gets, &posts)

	// The middle roll (1003) times out; 1004 must still be looked up.
	cfg := testCfg(ts.URL, 1003, 1004)
	client := portal.New(&http.Client{Timeout: cfg.Timeout}, cfg)

	var out bytes.Buffer
	result, err := Run(context.Background(), client, cfg, &out)
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	assert.True(t, strings.HasPrefix(result.Records[0].Result, "Error: "))
	assert.Equal(t, types.Record{RollNo: "1004", Name: "NAME-1004", Result: "1004 marks"}, result.Records[1])
}

func TestRunCancelledContext(t *testing.T) {
	var gets, posts int32
	ts := newResultsServer(t, &gets, &posts)

	cfg := testCfg(ts.URL, 1001, 1010)
	client := portal.New(&http.Client{Timeout: cfg.Timeout}, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	result, err := Run(ctx, client, cfg, &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Records)
}

func TestContainRecord(t *testing.T) {
	serverErr := &portal.Error{Kind: portal.KindServerReported, Roll: 42, Msg: "No record found."}
	rec := containRecord(42, serverErr)
	assert.Equal(t, types.Record{RollNo: "42", Name: "", Result: "No record found."}, rec)

	timeoutErr := &portal.Error{Kind: portal.KindTimeout, Roll: 42, Msg: "submitting search form"}
	rec = containRecord(42, timeoutErr)
	assert.Equal(t, "42", rec.RollNo)
	assert.Empty(t, rec.Name)
	assert.True(t, strings.HasPrefix(rec.Result, "Error: "), "Result = %q", rec.Result)
}
