package chartfile

import (
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kritika1265/chartkit/pkg/chart"
	"github.com/kritika1265/chartkit/pkg/dataset"
	apperrors "github.com/kritika1265/chartkit/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance returns the shared validator with chartkit's custom
// tags registered: "palette" accepts anything PaletteByName resolves,
// and "finite" rejects NaN and infinities.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("palette", func(fl validator.FieldLevel) bool {
			_, err := chart.PaletteByName(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
			f := fl.Field().Float()
			return !math.IsNaN(f) && !math.IsInf(f, 0)
		})

		validateInst = v
	})
	return validateInst
}

// Validate checks the definition's fields and cross-field rules,
// aggregating every violation into a single error.
func (d *Definition) Validate() error {
	var fields []apperrors.FieldError

	if err := validatorInstance().Struct(d); err != nil {
		ves, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperrors.Wrap(apperrors.ErrCodeInvalidDefinition, err, "validate definition")
		}
		for _, ve := range ves {
			fields = append(fields, apperrors.FieldError{
				Field: tomlFieldName(ve),
				Rule:  ve.Tag(),
				Value: ve.Value(),
			})
		}
	}

	fields = append(fields, d.dataFieldErrors()...)

	if len(fields) > 0 {
		return &apperrors.ValidationError{Fields: fields}
	}
	return nil
}

// dataFieldErrors enforces the rules the struct tags can't express:
// exactly one data source, inline entries matching the chart kind, and
// a loadable file reference.
func (d *Definition) dataFieldErrors() []apperrors.FieldError {
	var fields []apperrors.FieldError

	hasFile := d.Data.File != ""
	hasInline := d.Data.Inline()

	switch {
	case !hasFile && !hasInline:
		fields = append(fields, apperrors.FieldError{Field: "data", Rule: "required", Value: nil})
	case hasFile && hasInline:
		fields = append(fields, apperrors.FieldError{Field: "data", Rule: "exclusive", Value: d.Data.File})
	}

	if len(d.Data.Points) > 0 && len(d.Data.Slices) > 0 {
		fields = append(fields, apperrors.FieldError{Field: "data.points", Rule: "exclusive", Value: nil})
	}

	isPie := d.Kind == string(chart.KindPie)
	if len(d.Data.Points) > 0 && isPie {
		fields = append(fields, apperrors.FieldError{Field: "data.points", Rule: "chart_kind", Value: d.Kind})
	}
	if len(d.Data.Slices) > 0 && d.Kind != "" && !isPie {
		fields = append(fields, apperrors.FieldError{Field: "data.slices", Rule: "chart_kind", Value: d.Kind})
	}

	if hasFile {
		if _, err := dataset.DetectFormat(d.Data.File); err != nil {
			fields = append(fields, apperrors.FieldError{Field: "data.file", Rule: "format", Value: d.Data.File})
		}
	}

	return fields
}

// tomlFieldName rewrites a validator namespace like
// "Definition.Style.StrokeWidth" into the definition's own spelling,
// "style.stroke_width".
func tomlFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:] // drop the root struct name
	}
	for i, p := range parts {
		parts[i] = snakeCase(p)
	}
	return strings.Join(parts, ".")
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
