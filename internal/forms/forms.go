package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// A Schema declares what a form expects: each field carries the
// validator rule string its value must satisfy. Controllers hand the
// submitted values to Validate and either get a clean value map back
// or a per-field list of messages to render next to the inputs.
type Schema struct {
	Fields []Field
}

type Field struct {
	Name     string
	Label    string
	Rules    string
	Password bool // never echoed back into a re-rendered form
}

type Values map[string]string

type Errors map[string][]string

var validate = validator.New()

// Validate runs every field's rules against the submitted values.
// values is keyed by field name; missing keys validate as empty
// strings. On success the returned Values hold the trimmed inputs.
func (s Schema) Validate(submitted map[string]string) (Values, Errors) {
	values := Values{}
	fieldErrors := Errors{}

	for _, f := range s.Fields {
		value := strings.TrimSpace(submitted[f.Name])
		values[f.Name] = value

		if err := validate.Var(value, f.Rules); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				fieldErrors[f.Name] = append(fieldErrors[f.Name], fmt.Sprintf("%s is invalid", f.Label))
				continue
			}
			for _, ve := range verrs {
				fieldErrors[f.Name] = append(fieldErrors[f.Name], message(f.Label, ve))
			}
		}
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}
	return values, nil
}

// Submitted collects the schema's fields from a request, using the
// accessor the HTTP layer provides (e.g. gin's PostForm).
func Submitted(s Schema, get func(name string) string) Values {
	values := Values{}
	for _, f := range s.Fields {
		values[f.Name] = get(f.Name)
	}
	return values
}

// Echo returns the values safe to put back into a re-rendered form:
// everything the user typed except password fields.
func (s Schema) Echo(values Values) Values {
	echoed := Values{}
	for _, f := range s.Fields {
		if f.Password {
			continue
		}
		echoed[f.Name] = values[f.Name]
	}
	return echoed
}

func message(label string, ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, ve.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, ve.Param())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// Registration mirrors the sign-up form: username 4-50 chars, a
// well-formed email, password at least 6 chars.
func Registration() Schema {
	return Schema{Fields: []Field{
		{Name: "username", Label: "Username", Rules: "required,min=4,max=50"},
		{Name: "email", Label: "Email", Rules: "required,email,max=255"},
		{Name: "password", Label: "Password", Rules: "required,min=6", Password: true},
	}}
}

func Login() Schema {
	return Schema{Fields: []Field{
		{Name: "email", Label: "Email", Rules: "required,email"},
		{Name: "password", Label: "Password", Rules: "required", Password: true},
	}}
}

func Post() Schema {
	return Schema{Fields: []Field{
		{Name: "title", Label: "Title", Rules: "required"},
		{Name: "content", Label: "Content", Rules: "required"},
	}}
}
