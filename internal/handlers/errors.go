package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterJSONFieldNames makes validation errors report JSON field names
// ("rating") instead of Go field names ("Rating").
func RegisterJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
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
}

// FieldErrors maps a JSON field path to a human readable reason.
type FieldErrors map[string]string

// respondValidation answers 422 with field-level detail.
func respondValidation(c *gin.Context, fields FieldErrors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":  "Validation failed",
		"fields": fields,
	})
}

// respondBindError turns a ShouldBindJSON error into a 422.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := FieldErrors{}
		for _, fe := range verrs {
			fields[fieldPath(fe)] = fieldMessage(fe)
		}
		respondValidation(c, fields)
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		respondValidation(c, FieldErrors{typeErr.Field: "has the wrong type"})
		return
	}

	if errors.Is(err, io.EOF) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Request body is required"})
		return
	}

	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid input: " + err.Error()})
}

// fieldPath drops the root struct name: "CreatePurchaseInput.items[0].quantity" -> "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min", "gte":
		if unit := lengthUnit(fe.Kind()); unit != "" {
			return fmt.Sprintf("must have at least %s %s", fe.Param(), unit)
		}
		return "must be at least " + fe.Param()
	case "max", "lte":
		if unit := lengthUnit(fe.Kind()); unit != "" {
			return fmt.Sprintf("must have at most %s %s", fe.Param(), unit)
		}
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}

func lengthUnit(kind reflect.Kind) string {
	switch kind {
	case reflect.Slice, reflect.Array:
		return "item(s)"
	case reflect.String:
		return "character(s)"
	}
	return ""
}

func respondInternal(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
