// Package form validates and formats the contact form fields and collects
// accepted submissions together with their average rating.
package form

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/conorfennell/flipmatch/internal/domain"
)

// Field identifies one of the required text inputs.
type Field string

const (
	Name    Field = "name"
	Surname Field = "surname"
	Email   Field = "email"
	Phone   Field = "phone"
	Address Field = "address"
)

// Fields lists the required inputs in form order.
var Fields = []Field{Name, Surname, Email, Phone, Address}

var (
	personNameRe = regexp.MustCompile(`^[A-Za-zĄČĘĖĮŠŲŪŽąčęėįšųūž\s\-]+$`)
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe      = regexp.MustCompile(`^\+370\s\d{3}\s\d{5}$`)
	nonDigitRe   = regexp.MustCompile(`\D`)
)

const phoneMessage = "Numeris turi atitikti šabloną: +370 6xx xxxxx"

type rule struct {
	label   string // placeholder text, used in the empty-field message
	tag     string
	message string
}

var rules = map[Field]rule{
	Name:    {label: "Vardas", tag: "personname", message: "Vardas gali būti sudarytas tik iš raidžių, tarpų ir brūkšnelių."},
	Surname: {label: "Pavardė", tag: "personname", message: "Pavardė gali būti sudaryta tik iš raidžių, tarpų ir brūkšnelių."},
	Email:   {label: "El. paštas", tag: "contactemail", message: "Neteisingas el. pašto formatas."},
	Phone:   {label: "Telefono numeris", tag: "ltphone", message: phoneMessage},
	Address: {label: "Adresas"},
}

// Result is the outcome of checking one field. Value holds the field
// content after any formatting (only the phone is rewritten).
type Result struct {
	Field   Field
	Valid   bool
	Message string
	Value   string
}

// Validator applies the per-field rules.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a Validator with the form's custom tags registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "personname", personNameRe)
	mustRegister(v, "contactemail", emailRe)
	mustRegister(v, "ltphone", phoneRe)
	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// Validate checks value against the rules for field. Surrounding
// whitespace is ignored for the emptiness and pattern checks.
func (fv *Validator) Validate(field Field, value string) Result {
	r, known := rules[field]
	if !known {
		r = rule{label: string(field)}
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Result{Field: field, Message: r.label + " negali būti tuščias.", Value: value}
	}

	if field == Phone {
		return fv.checkPhone(value)
	}

	if r.tag != "" && fv.v.Var(trimmed, r.tag) != nil {
		return Result{Field: field, Message: r.message, Value: value}
	}
	return Result{Field: field, Valid: true, Value: value}
}

// checkPhone formats raw and tests it against the national pattern. Unlike
// Validate it reports the pattern message for empty input, which is what
// a keystroke that clears the field should show.
func (fv *Validator) checkPhone(raw string) Result {
	formatted := FormatPhone(raw)
	if fv.v.Var(formatted, "ltphone") != nil {
		return Result{Field: Phone, Message: phoneMessage, Value: formatted}
	}
	return Result{Field: Phone, Valid: true, Value: formatted}
}

// Struct validates a complete submission and returns one failing result
// per rejected struct field, in declaration order.
func (fv *Validator) Struct(s domain.Submission) []Result {
	err := fv.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Result{{Message: err.Error()}}
	}

	failed := make([]Result, 0, len(verrs))
	for _, fe := range verrs {
		field := Field(strings.ToLower(fe.Field()))
		value := fmt.Sprint(fe.Value())
		msg := fmt.Sprintf("%s turi būti nuo 1 iki 5.", field)
		if r, ok := rules[field]; ok {
			msg = r.message
			if fe.Tag() == "required" {
				msg = r.label + " negali būti tuščias."
			}
		}
		failed = append(failed, Result{Field: field, Message: msg, Value: value})
	}
	return failed
}

// FormatPhone rewrites raw keyboard input into "+370 ddd ddddd". A leading
// trunk prefix 8 becomes the country code 370; input without the country
// code gets it prepended. At most 12 digits are kept.
func FormatPhone(raw string) string {
	digits := nonDigitRe.ReplaceAllString(raw, "")
	if digits == "" {
		return ""
	}

	if strings.HasPrefix(digits, "8") {
		digits = "370" + digits[1:]
	} else if !strings.HasPrefix(digits, "370") {
		digits = "370" + digits
	}
	if len(digits) > 12 {
		digits = digits[:12]
	}

	var b strings.Builder
	b.WriteString("+")
	b.WriteString(digits[:3])
	if len(digits) > 3 {
		b.WriteString(" ")
		b.WriteString(digits[3:min(len(digits), 6)])
	}
	if len(digits) > 6 {
		b.WriteString(" ")
		b.WriteString(digits[6:])
	}
	return b.String()
}
