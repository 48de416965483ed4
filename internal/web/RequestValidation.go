// This file contains the actual validator implementation for incoming http requests.
//
// You can implement custom validators for each field in this file and reference them in the request structs.

package web

import (
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/NeRF-or-Nothing/go-scene-server/internal/common"
)

var validate *validator.Validate

var supportedFormats = []string{common.FormatJSON, common.FormatYAML}

// Initialize the custom validator
func init() {
	validate = validator.New()
	validate.RegisterValidation("validFormat", validateFormat)
}

// ValidateRequest validates a request using a Fiber context and a request struct.
// It parses the request differently based on HTTP method.
func ValidateRequest(c *fiber.Ctx, req interface{}) error {
	switch c.Method() {
	case fiber.MethodGet, fiber.MethodHead:
		// For GET requests, we only need to parse query and path parameters
		if err := c.QueryParser(req); err != nil {
			return err
		}
		if err := c.ParamsParser(req); err != nil {
			return err
		}
	default:
		if err := c.BodyParser(req); err != nil {
			return err
		}
		if err := c.QueryParser(req); err != nil {
			return err
		}
	}

	return validate.Struct(req)
}

// validateFormat is a custom validator for the output format of document requests.
func validateFormat(fl validator.FieldLevel) bool {
	return slices.Contains(supportedFormats, fl.Field().String())
}
