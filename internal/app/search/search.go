// Package search holds the mentor filter criteria and the matching rules used by mentor search.
package search

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/karthikdm21/Saathi-Voice/internal/app/models"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/apperrors"
)

// Sentinel values a client sends to mean "no filter"
const (
	AllFields     = "all"
	AnyLanguage   = "any"
	AnyExperience = "any"
)

// Query parameter names accepted by mentor search
const (
	ParamFieldOfExpertise = "fieldOfExpertise"
	ParamLanguages        = "languages"
	ParamExperience       = "experience"
)

// Criteria is a normalized mentor filter. Zero values mean the filter is inactive.
// Field and language values are compared exactly, whitespace included.
type Criteria struct {
	FieldOfExpertise string
	Languages        []string
	MinExperience    *int
}

// Normalize clears sentinel values so they behave exactly like omitted filters
func (c Criteria) Normalize() Criteria {
	out := Criteria{MinExperience: c.MinExperience}

	if c.FieldOfExpertise != AllFields {
		out.FieldOfExpertise = c.FieldOfExpertise
	}

	var languages []string
	for _, lang := range c.Languages {
		if lang == AnyLanguage {
			languages = nil
			break
		}
		if lang != "" {
			languages = append(languages, lang)
		}
	}
	out.Languages = languages
	return out
}

// IsEmpty reports whether no filter is active
func (c Criteria) IsEmpty() bool {
	n := c.Normalize()
	return n.FieldOfExpertise == "" && len(n.Languages) == 0 && n.MinExperience == nil
}

// Matches reports whether a mentor and its owning user satisfy every active filter
func (c Criteria) Matches(m models.Mentor, u models.User) bool {
	n := c.Normalize()
	if n.FieldOfExpertise != "" && m.FieldOfExpertise != n.FieldOfExpertise {
		return false
	}
	if n.MinExperience != nil && m.YearsOfExperience() < *n.MinExperience {
		return false
	}
	if len(n.Languages) > 0 && !u.SpeaksAny(n.Languages) {
		return false
	}
	return true
}

// Values encodes the criteria as query parameters ParseQuery accepts
func (c Criteria) Values() url.Values {
	n := c.Normalize()
	q := url.Values{}
	if n.FieldOfExpertise != "" {
		q.Set(ParamFieldOfExpertise, n.FieldOfExpertise)
	}
	for _, lang := range n.Languages {
		q.Add(ParamLanguages, lang)
	}
	if n.MinExperience != nil {
		q.Set(ParamExperience, strconv.Itoa(*n.MinExperience))
	}
	return q
}

// ParseQuery builds criteria from URL query values.
// languages may repeat and each value may be comma separated.
// experience must be an integer or "any".
func ParseQuery(q url.Values) (Criteria, error) {
	c := Criteria{FieldOfExpertise: q.Get(ParamFieldOfExpertise)}

	for _, raw := range q[ParamLanguages] {
		for _, lang := range strings.Split(raw, ",") {
			if lang != "" {
				c.Languages = append(c.Languages, lang)
			}
		}
	}

	if raw := strings.TrimSpace(q.Get(ParamExperience)); raw != "" && raw != AnyExperience {
		years, err := strconv.Atoi(raw)
		if err != nil {
			return Criteria{}, apperrors.NewValidationError(fmt.Sprintf("experience must be an integer or %q", AnyExperience))
		}
		c.MinExperience = &years
	}

	return c.Normalize(), nil
}
