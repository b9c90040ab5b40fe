package form

import (
	"fmt"
	"strings"

	"github.com/conorfennell/flipmatch/internal/domain"
	"github.com/conorfennell/flipmatch/internal/rating"
)

// Summary is what a successful submit renders.
type Summary struct {
	Submission domain.Submission
	Fields     map[string]string
	Ratings    []rating.Rating
	Average    string
}

// Form holds the current input values of one contact form.
type Form struct {
	validator *Validator
	values    map[Field]string
	ratings   map[string]rating.Rating
}

// New returns an empty form with every rating at its default.
func New(v *Validator) *Form {
	f := &Form{validator: v}
	f.clear()
	return f
}

func (f *Form) clear() {
	f.values = make(map[Field]string, len(Fields))
	f.ratings = make(map[string]rating.Rating, len(rating.Names))
	for _, name := range rating.Names {
		f.ratings[name] = rating.Default
	}
}

// Input records an edit to field and returns its validation result. Phone
// input is reformatted as it is typed and the stored value is the
// formatted one.
func (f *Form) Input(field Field, value string) Result {
	if field == Phone {
		res := f.validator.checkPhone(value)
		f.values[Phone] = res.Value
		return res
	}
	f.values[field] = value
	return f.validator.Validate(field, value)
}

// Blur re-validates the stored value of field, as when it loses focus.
func (f *Form) Blur(field Field) Result {
	res := f.validator.Validate(field, f.values[field])
	if field == Phone && res.Value != "" {
		f.values[Phone] = res.Value
	}
	return res
}

// Value returns the stored content of field.
func (f *Form) Value(field Field) string {
	return f.values[field]
}

// SetRating updates a slider and returns the value its readout shows.
func (f *Form) SetRating(name, raw string) (rating.Rating, error) {
	if _, ok := f.ratings[name]; !ok {
		return 0, fmt.Errorf("unknown rating %q", name)
	}
	r, err := rating.Parse(raw)
	if err != nil {
		return 0, err
	}
	f.ratings[name] = r
	return r, nil
}

// Ratings returns the slider values in form order.
func (f *Form) Ratings() []rating.Rating {
	out := make([]rating.Rating, len(rating.Names))
	for i, name := range rating.Names {
		out[i] = f.ratings[name]
	}
	return out
}

// Valid reports whether every field passes; submit is enabled only then.
func (f *Form) Valid() bool {
	for _, field := range Fields {
		if !f.validator.Validate(field, f.values[field]).Valid {
			return false
		}
	}
	return true
}

// Errors returns the failing result of every field that does not pass.
func (f *Form) Errors() []Result {
	var failed []Result
	for _, field := range Fields {
		if res := f.validator.Validate(field, f.values[field]); !res.Valid {
			failed = append(failed, res)
		}
	}
	return failed
}

// Submit accepts the form when every field passes. On success the form is
// cleared, ratings return to their default and the summary is returned. On
// failure nothing is collected and the failing results are returned.
func (f *Form) Submit() (*Summary, []Result) {
	if failed := f.Errors(); len(failed) > 0 {
		return nil, failed
	}

	ratings := f.Ratings()
	sub := domain.Submission{
		Name:    strings.TrimSpace(f.values[Name]),
		Surname: strings.TrimSpace(f.values[Surname]),
		Email:   strings.TrimSpace(f.values[Email]),
		Phone:   strings.TrimSpace(f.values[Phone]),
		Address: strings.TrimSpace(f.values[Address]),
		Rating1: int(ratings[0]),
		Rating2: int(ratings[1]),
		Rating3: int(ratings[2]),
	}
	if failed := f.validator.Struct(sub); len(failed) > 0 {
		return nil, failed
	}

	fields := sub.Fields()
	for i, name := range rating.Names {
		fields[name] = ratings[i].String()
	}

	summary := &Summary{
		Submission: sub,
		Fields:     fields,
		Ratings:    ratings,
		Average:    rating.Average(ratings...),
	}
	f.clear()
	return summary, nil
}
