package apperror

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func Init() {
	// Report field names from json tags so violations match the wire format
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterTagNameFunc(v)
	}
}

// RegisterTagNameFunc makes a validator instance resolve field names from
// json tags (e.g. `json:"firstName"` -> firstName).
func RegisterTagNameFunc(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
