package search

import (
	"errors"
	"net/url"
	"testing"

	"github.com/karthikdm21/Saathi-Voice/internal/app/models"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/apperrors"
)

func intPtr(v int) *int { return &v }

func mentor(field string, years *int) models.Mentor {
	return models.Mentor{ID: "m", UserID: "u", FieldOfExpertise: field, Experience: years, Rating: 50}
}

func user(languages ...string) models.User {
	return models.User{ID: "u", Role: models.RoleMentor, Name: "Mentor", Languages: languages}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		mentor   models.Mentor
		user     models.User
		want     bool
	}{
		{
			name:   "no filters match everything",
			mentor: mentor("", nil),
			user:   user(),
			want:   true,
		},
		{
			name:     "field exact match",
			criteria: Criteria{FieldOfExpertise: "technology"},
			mentor:   mentor("technology", intPtr(5)),
			user:     user("English"),
			want:     true,
		},
		{
			name:     "field is case sensitive",
			criteria: Criteria{FieldOfExpertise: "Technology"},
			mentor:   mentor("technology", intPtr(5)),
			user:     user("English"),
			want:     false,
		},
		{
			name:     "padded field is not trimmed",
			criteria: Criteria{FieldOfExpertise: " technology"},
			mentor:   mentor("technology", intPtr(5)),
			user:     user("English"),
			want:     false,
		},
		{
			name:     "padded language is not trimmed",
			criteria: Criteria{Languages: []string{" Tamil"}},
			mentor:   mentor("business", nil),
			user:     user("Tamil"),
			want:     false,
		},
		{
			name:     "field all is a wildcard",
			criteria: Criteria{FieldOfExpertise: "all"},
			mentor:   mentor("business", nil),
			user:     user(),
			want:     true,
		},
		{
			name:     "experience at minimum",
			criteria: Criteria{MinExperience: intPtr(5)},
			mentor:   mentor("technology", intPtr(5)),
			user:     user(),
			want:     true,
		},
		{
			name:     "experience below minimum",
			criteria: Criteria{MinExperience: intPtr(5)},
			mentor:   mentor("education", intPtr(3)),
			user:     user(),
			want:     false,
		},
		{
			name:     "missing experience counts as zero",
			criteria: Criteria{MinExperience: intPtr(1)},
			mentor:   mentor("education", nil),
			user:     user(),
			want:     false,
		},
		{
			name:     "zero minimum admits missing experience",
			criteria: Criteria{MinExperience: intPtr(0)},
			mentor:   mentor("education", nil),
			user:     user(),
			want:     true,
		},
		{
			name:     "language intersection",
			criteria: Criteria{Languages: []string{"Tamil", "Bengali"}},
			mentor:   mentor("business", nil),
			user:     user("English", "Hindi", "Tamil"),
			want:     true,
		},
		{
			name:     "no language overlap",
			criteria: Criteria{Languages: []string{"Marathi"}},
			mentor:   mentor("business", nil),
			user:     user("English", "Hindi", "Tamil"),
			want:     false,
		},
		{
			name:     "any language anywhere disables the filter",
			criteria: Criteria{Languages: []string{"Marathi", "any"}},
			mentor:   mentor("business", nil),
			user:     user("Tamil"),
			want:     true,
		},
		{
			name:     "all filters combine with and",
			criteria: Criteria{FieldOfExpertise: "technology", Languages: []string{"Hindi"}, MinExperience: intPtr(6)},
			mentor:   mentor("technology", intPtr(5)),
			user:     user("Hindi"),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.criteria.Matches(tt.mentor, tt.user); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSentinelsEquivalentToAbsent(t *testing.T) {
	m := mentor("education", nil)
	u := user("Bengali")
	sentinel := Criteria{FieldOfExpertise: "all", Languages: []string{"any"}}
	if sentinel.Matches(m, u) != (Criteria{}).Matches(m, u) {
		t.Error("Expected sentinel criteria to behave like empty criteria")
	}
	if !sentinel.IsEmpty() {
		t.Error("Expected sentinel criteria to be empty")
	}
}

func TestParseQuery(t *testing.T) {
	q := url.Values{}
	q.Set("fieldOfExpertise", "technology")
	q.Add("languages", "Hindi")
	q.Add("languages", "Tamil,Marathi")
	q.Set("experience", "3")

	c, err := ParseQuery(q)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if c.FieldOfExpertise != "technology" {
		t.Errorf("Expected field technology, got %s", c.FieldOfExpertise)
	}
	want := []string{"Hindi", "Tamil", "Marathi"}
	if len(c.Languages) != len(want) {
		t.Fatalf("Expected languages %v, got %v", want, c.Languages)
	}
	for i := range want {
		if c.Languages[i] != want[i] {
			t.Errorf("Expected language %s at %d, got %s", want[i], i, c.Languages[i])
		}
	}
	if c.MinExperience == nil || *c.MinExperience != 3 {
		t.Errorf("Expected min experience 3, got %v", c.MinExperience)
	}
}

func TestParseQueryKeepsWhitespace(t *testing.T) {
	q := url.Values{}
	q.Set("fieldOfExpertise", " technology ")
	q.Add("languages", " Tamil,Bengali")

	c, err := ParseQuery(q)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if c.FieldOfExpertise != " technology " {
		t.Errorf("Expected field to keep its padding, got %q", c.FieldOfExpertise)
	}
	if len(c.Languages) != 2 || c.Languages[0] != " Tamil" || c.Languages[1] != "Bengali" {
		t.Errorf("Expected languages [\" Tamil\" \"Bengali\"], got %q", c.Languages)
	}
	if c.Matches(mentor("technology", intPtr(5)), user("Tamil")) {
		t.Error("Expected padded query not to match an exact-field mentor")
	}
}

func TestParseQuerySentinels(t *testing.T) {
	q := url.Values{}
	q.Set("fieldOfExpertise", "all")
	q.Add("languages", "any")
	q.Set("experience", "any")

	c, err := ParseQuery(q)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !c.IsEmpty() {
		t.Errorf("Expected empty criteria, got %+v", c)
	}
}

func TestParseQueryRejectsBadExperience(t *testing.T) {
	q := url.Values{}
	q.Set("experience", "lots")

	_, err := ParseQuery(q)
	if err == nil {
		t.Fatal("Expected error for non-integer experience")
	}
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestValuesRoundTrip(t *testing.T) {
	years := 4
	in := Criteria{FieldOfExpertise: "business", Languages: []string{"Tamil", "Bengali"}, MinExperience: &years}

	out, err := ParseQuery(in.Values())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out.FieldOfExpertise != "business" || len(out.Languages) != 2 || out.MinExperience == nil || *out.MinExperience != 4 {
		t.Errorf("Expected criteria to survive encoding, got %+v", out)
	}

	if q := (Criteria{FieldOfExpertise: AllFields, Languages: []string{AnyLanguage}}).Values(); len(q) != 0 {
		t.Errorf("Expected sentinels to encode to nothing, got %v", q)
	}
}
