package printjob

import (
	"github.com/google/uuid"

	"github.com/matzehuels/cardpress/pkg/errors"
)

// Job is a resolved print job. Items is the request list expanded by count,
// in request order, holding catalog keys. Item i goes to grid position i.
type Job struct {
	ID       uuid.UUID `json:"id"`
	Requests []Request `json:"requests"`
	Items    []string  `json:"items"`
}

// Resolve checks every request against catalog and expands the result.
// It fails with EMPTY_INPUT when nothing is requested and with
// CARD_NOT_FOUND on the first unknown card. No partial job is returned.
func Resolve(reqs []Request, catalog Catalog) (*Job, error) {
	if len(reqs) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "no cards requested; add at least one 'Name=count'")
	}

	job := &Job{ID: uuid.New(), Requests: reqs}
	for _, r := range reqs {
		key, ok := catalog.Lookup(r.ID)
		if !ok {
			return nil, errors.New(errors.ErrCodeCardNotFound, "card %q not found", r.ID)
		}
		for i := 0; i < r.Count; i++ {
			job.Items = append(job.Items, key)
		}
	}
	if len(job.Items) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "no cards requested; every count is zero")
	}
	return job, nil
}

// Distinct returns each key of the job once, in first-use order.
func (j *Job) Distinct() []string {
	seen := make(map[string]bool, len(j.Items))
	var out []string
	for _, k := range j.Items {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// Len is the number of cards to print.
func (j *Job) Len() int { return len(j.Items) }
