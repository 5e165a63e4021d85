package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gmi-lojistik/tir-takip/internal/pkg/xerr"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report fields by their JSON name
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates s against its `validate` tags. Violations come back as a
// *xerr.ValidationError wrapping msg; any other failure is returned as is.
func Struct(s any, msg error) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate %T: %w", s, err)
	}
	issues := make([]xerr.Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, toIssue(fe))
	}
	return xerr.NewValidationError(msg, issues...)
}

func toIssue(fe validator.FieldError) xerr.Issue {
	path := strings.Split(fe.Namespace(), ".")
	if len(path) > 1 {
		path = path[1:] // drop the struct name
	}
	return xerr.Issue{
		Code:    fe.Tag(),
		Path:    path,
		Field:   fe.Field(),
		Message: message(fe),
	}
}

var fieldLabels = map[string]string{
	"phone":              "Telefon numarası",
	"tirId":              "TIR",
	"fileName":           "Dosya adı",
	"fileType":           "Belge tipi",
	"cloudinaryUrl":      "Dosya adresi",
	"cloudinaryPublicId": "Dosya kimliği",
	"fileSize":           "Dosya boyutu",
	"type":               "Paylaşım tipi",
	"token":              "Paylaşım anahtarı",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

func message(fe validator.FieldError) string {
	l := label(fe.Field())
	switch fe.Tag() {
	case "required", "required_if", "min":
		return l + " gereklidir"
	case "oneof":
		return fmt.Sprintf("%s şunlardan biri olmalıdır: %s", l, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "excluded_if":
		return l + " bu paylaşım tipinde kullanılamaz"
	case "len":
		return fmt.Sprintf("%s %s karakter olmalıdır", l, fe.Param())
	case "gte":
		return fmt.Sprintf("%s en az %s olmalıdır", l, fe.Param())
	default:
		return l + " geçersiz"
	}
}
