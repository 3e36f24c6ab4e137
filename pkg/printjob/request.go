// Package printjob turns card requests into an ordered print job.
//
// A request names a card and a count ("Ember_Drake=3"). Requests are
// resolved against a [Catalog] before any rendering starts, so a typo fails
// the whole job up front instead of after minutes of rasterization.
package printjob

import (
	"strconv"
	"strings"

	"github.com/matzehuels/cardpress/pkg/errors"
)

// Request asks for Count copies of the card identified by ID.
type Request struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// ParseRequest parses "Name=count". The name is trimmed; the count may be
// zero or negative, in which case [ParseRequests] drops the request.
func ParseRequest(s string) (Request, error) {
	name, cnt, ok := strings.Cut(s, "=")
	if !ok {
		return Request{}, errors.New(errors.ErrCodeInvalidInput, "expected 'Name=count', got: %s", s)
	}
	name = strings.TrimSpace(name)
	if err := errors.ValidateCardID(name); err != nil {
		return Request{}, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(cnt))
	if err != nil {
		return Request{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid count in %q", s)
	}
	return Request{ID: name, Count: n}, nil
}

// ParseRequests parses every item and drops requests with a count of zero
// or less. Order is kept.
func ParseRequests(items []string) ([]Request, error) {
	var out []Request
	for _, item := range items {
		r, err := ParseRequest(item)
		if err != nil {
			return nil, err
		}
		if r.Count <= 0 {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// String formats r the way ParseRequest reads it.
func (r Request) String() string { return r.ID + "=" + strconv.Itoa(r.Count) }
