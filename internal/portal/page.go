// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package portal

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Element IDs on the results page. The page structure is a versioned
// external contract: when the site changes, this block and the accessors
// below are the only place to edit.
const (
	idViewState       = "__VIEWSTATE"
	idEventValidation = "__EVENTVALIDATION"
	idError           = "LblErr"
	idName            = "LblName"
	idRollNo          = "LblRollNo"
	idResult          = "lblGazres"
)

// page wraps a parsed results page and narrows all element-ID lookups
// to one type.
type page struct {
	doc *goquery.Document
}

// parsePage reads an HTML response body into a page.
func parsePage(r io.Reader) (*page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &page{doc: doc}, nil
}

// hiddenValue returns the value attribute of the hidden input with the
// given ID, and whether the element exists.
func (p *page) hiddenValue(id string) (string, bool) {
	sel := p.doc.Find("#" + id)
	if sel.Length() == 0 {
		return "", false
	}
	return sel.AttrOr("value", ""), true
}

// labelText returns the trimmed text content of the element with the
// given ID, or "" when the element is absent.
func (p *page) labelText(id string) string {
	return strings.TrimSpace(p.doc.Find("#" + id).Text())
}

// hasAny reports whether at least one of the given element IDs is
// present on the page.
func (p *page) hasAny(ids ...string) bool {
	for _, id := range ids {
		if p.doc.Find("#"+id).Length() > 0 {
			return true
		}
	}
	return false
}
