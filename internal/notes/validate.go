package notes

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// input is the trimmed form of a create or update request.
type input struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
	Tags    []string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// newInput trims the raw values and validates them. Title is checked
// before content so the user is told about the first empty field.
func newInput(title, content, tagsRaw string) (input, error) {
	in := input{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
		Tags:    ParseTags(tagsRaw),
	}
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return input{}, &ValidationError{Field: strings.ToLower(verrs[0].Field())}
		}
		return input{}, err
	}
	return in, nil
}
