// Package catalog holds the studio's static site content: the project
// registry used by detail pages plus the copy rendered on the landing page.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrNotFound is the sentinel wrapped by NotFoundError.
var ErrNotFound = errors.New("content not found")

// NotFoundError reports a lookup that matched no record.
type NotFoundError struct {
	// Segment is the raw route segment when the lookup came from a URL.
	Segment string
	ID      int
}

func (e *NotFoundError) Error() string {
	if e.Segment != "" {
		return fmt.Sprintf("content %q not found", e.Segment)
	}
	return fmt.Sprintf("content %d not found", e.ID)
}

// Is lets errors.Is match ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Record is one showcased project.
type Record struct {
	ID          int      `yaml:"id" validate:"gt=0"`
	Title       string   `yaml:"title" validate:"required"`
	Description string   `yaml:"description"`
	Background  string   `yaml:"background" validate:"required"`
	Overlays    []string `yaml:"overlays" validate:"min=1,dive,required"`
}

func (r Record) clone() Record {
	r.Overlays = slices.Clone(r.Overlays)
	return r
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Registry is a read-only, id-keyed set of records. It is safe for
// concurrent readers.
type Registry struct {
	ordered []Record
	byID    map[int]int
}

// New validates records and builds a registry preserving their order.
func New(records []Record) (*Registry, error) {
	reg := &Registry{
		ordered: make([]Record, 0, len(records)),
		byID:    make(map[int]int, len(records)),
	}
	for idx, record := range records {
		record.Title = strings.TrimSpace(record.Title)
		if err := validate.Struct(record); err != nil {
			return nil, fmt.Errorf("record %d: %w", idx, err)
		}
		if _, exists := reg.byID[record.ID]; exists {
			return nil, fmt.Errorf("record %d: duplicate id %d", idx, record.ID)
		}
		reg.byID[record.ID] = len(reg.ordered)
		reg.ordered = append(reg.ordered, record.clone())
	}
	return reg, nil
}

// Lookup returns the record with id.
func (r *Registry) Lookup(id int) (Record, error) {
	if r != nil {
		if idx, ok := r.byID[id]; ok {
			return r.ordered[idx].clone(), nil
		}
	}
	return Record{}, &NotFoundError{ID: id}
}

// LookupSegment resolves a URL path segment. Only the canonical decimal
// form of a registered id matches, so "02", "+2" and " 2" are not found.
func (r *Registry) LookupSegment(segment string) (Record, error) {
	id, err := strconv.Atoi(segment)
	if err != nil || strconv.Itoa(id) != segment {
		return Record{}, &NotFoundError{Segment: segment}
	}
	record, err := r.Lookup(id)
	if err != nil {
		return Record{}, &NotFoundError{Segment: segment, ID: id}
	}
	return record, nil
}

// All returns every record in declaration order.
func (r *Registry) All() []Record {
	if r == nil {
		return nil
	}
	out := make([]Record, len(r.ordered))
	for i, record := range r.ordered {
		out[i] = record.clone()
	}
	return out
}

// Len returns the number of records.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.ordered)
}
