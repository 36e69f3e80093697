// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package portal talks to the results website: it fetches the hidden
// anti-forgery tokens, submits the search form for one roll number, and
// extracts the labelled result fields from the response.
package portal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/result-gazette/internal/httputil"
	"github.com/pdiddy/result-gazette/pkg/types"
)

// DefaultBaseURL is the results page address. Declared as a var so tests
// can substitute an httptest server via ScrapeConfig.BaseURL.
var DefaultBaseURL = "http://119.159.230.2/biseresultday2/resultday.aspx"

// Form field names and fixed values for the search submission.
const (
	fieldEventTarget   = "__EVENTTARGET"
	fieldEventArgument = "__EVENTARGUMENT"
	fieldSearchType    = "RbtSearchType"
	fieldSearchText    = "TxtSearchText"
	fieldShowResults   = "BtnShowResults"

	searchByRollNo  = "Search by Roll No."
	showResultValue = "Show Result"
)

// Tokens holds the session-scoped anti-forgery values the server issues
// on the results page and expects echoed back on the next submission.
type Tokens struct {
	ViewState       string
	EventValidation string
}

// Client performs lookups against one results portal. The underlying
// http.Client is the connection context for a run: it carries the cookie
// jar and connection reuse across all calls, and is not safe for
// concurrent use with a shared jar-dependent session.
type Client struct {
	http       *http.Client
	baseURL    string
	userAgent  string
	maxRetries int
}

// New builds a Client from a shared http.Client and the scrape settings.
func New(httpClient *http.Client, cfg types.ScrapeConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:       httpClient,
		baseURL:    baseURL,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
	}
}

// BaseURL returns the results page address this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Tokens retrieves the results page and extracts the two hidden
// anti-forgery fields. There is no fallback: a missing token is an error.
func (c *Client) Tokens(ctx context.Context) (Tokens, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return Tokens{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return Tokens{}, &Error{Kind: classifyNetErr(err), Msg: "fetching results page", Err: err}
	}
	defer resp.Body.Close()

	p, err := parsePage(resp.Body)
	if err != nil {
		return Tokens{}, &Error{Kind: KindParseFailure, Msg: "reading results page", Err: err}
	}

	viewState, ok := p.hiddenValue(idViewState)
	if !ok {
		return Tokens{}, &Error{Kind: KindMissingField, Msg: "security token " + idViewState + " not found"}
	}
	eventValidation, ok := p.hiddenValue(idEventValidation)
	if !ok {
		return Tokens{}, &Error{Kind: KindMissingField, Msg: "security token " + idEventValidation + " not found"}
	}

	return Tokens{ViewState: viewState, EventValidation: eventValidation}, nil
}

// Lookup fetches fresh tokens, submits the search form for roll, and
// extracts the result fields. On failure it returns a *Error whose Kind
// distinguishes timeouts, transport failures, parse failures, missing
// fields, and server-reported messages. A server-reported message (e.g.
// an unknown roll number) carries the portal's text in Msg.
func (c *Client) Lookup(ctx context.Context, roll int) (types.Record, error) {
	tokens, err := c.Tokens(ctx)
	if err != nil {
		var perr *Error
		if errors.As(err, &perr) {
			perr.Roll = roll
			return types.Record{}, perr
		}
		return types.Record{}, &Error{Kind: KindNetwork, Roll: roll, Msg: "fetching tokens", Err: err}
	}

	form := url.Values{
		idViewState:        {tokens.ViewState},
		idEventValidation:  {tokens.EventValidation},
		fieldEventTarget:   {""},
		fieldEventArgument: {""},
		fieldSearchType:    {searchByRollNo},
		fieldSearchText:    {strconv.Itoa(roll)},
		fieldShowResults:   {showResultValue},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return types.Record{}, &Error{Kind: KindNetwork, Roll: roll, Msg: "creating submission", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Referer", c.baseURL)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return types.Record{}, &Error{Kind: classifyNetErr(err), Roll: roll, Msg: "submitting search form", Err: err}
	}
	defer resp.Body.Close()

	p, err := parsePage(resp.Body)
	if err != nil {
		return types.Record{}, &Error{Kind: KindParseFailure, Roll: roll, Msg: "reading response page", Err: err}
	}

	// An explicit server message wins over anything else on the page.
	if msg := p.labelText(idError); msg != "" {
		return types.Record{}, &Error{Kind: KindServerReported, Roll: roll, Msg: msg}
	}

	// A page with none of the result fields is a parse failure, not an
	// empty success: it is indistinguishable from a site-structure change.
	if !p.hasAny(idName, idRollNo, idResult) {
		return types.Record{}, &Error{Kind: KindMissingField, Roll: roll, Msg: "no result fields present"}
	}

	rollOnPage := p.labelText(idRollNo)
	if rollOnPage == "" {
		rollOnPage = strconv.Itoa(roll)
	}

	return types.Record{
		RollNo: rollOnPage,
		Name:   p.labelText(idName),
		Result: p.labelText(idResult),
	}, nil
}

// classifyNetErr maps a transport error to Timeout or Network.
func classifyNetErr(err error) ErrorKind {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return KindTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindNetwork
}
