package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"gudang/internal/apperr"
)

var errNotFound = apperr.New(apperr.KindNotFound, "not found")

// bindJSON decodes the request body into dst. An empty body leaves dst
// untouched so that missing fields are reported by validation.
func bindJSON(c *fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	err := c.BodyParser(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperr.Validation(map[string]string{typeErr.Field: typeMessage(typeErr.Type.Kind().String())})
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return apperr.New(apperr.KindValidation, fmt.Sprintf("JSON parse error - %s", syntaxErr.Error()))
	}
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code == fiber.StatusUnprocessableEntity {
		return fiber.NewError(fiber.StatusUnsupportedMediaType, "unsupported media type, expected application/json")
	}
	return apperr.New(apperr.KindValidation, "invalid request body").Wrap(err)
}

func typeMessage(kind string) string {
	switch kind {
	case "int", "int32", "int64", "uint", "uint32", "uint64":
		return "a valid integer is required"
	case "string":
		return "not a valid string"
	default:
		return "invalid value"
	}
}

// paramID reads the numeric :id route parameter. Anything else cannot name a
// record and is reported as not found.
func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errNotFound
	}
	return uint(id), nil
}

// queryID reads an optional numeric query filter.
func queryID(c *fiber.Ctx, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, apperr.Validation(map[string]string{key: "a valid integer is required"})
	}
	v := uint(id)
	return &v, nil
}
