package controllers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"newsline/app/services"
)

// respondError maps a typed service error to its HTTP status; anything
// else becomes a plain 500.
func respondError(c *fiber.Ctx, err error) error {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		return c.Status(svcErr.StatusCode).JSON(svcErr)
	}
	return c.Status(fiber.StatusInternalServerError).
		JSON(services.ErrInternal("Something went wrong!"))
}

// respondValidationError renders validator failures field by field.
func respondValidationError(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"statusCode": fiber.StatusBadRequest,
		"message":    "Validation failed",
		"errors":     errorMessages,
	})
}

func respondBadBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"statusCode": fiber.StatusBadRequest,
		"message":    "Invalid request body",
		"error":      err.Error(),
	})
}

// paramID parses a numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, services.ErrBadRequest(fmt.Sprintf("Invalid %s parameter!", name))
	}
	return uint(id), nil
}

// formUploads reads every multipart file under the given field into memory.
func formUploads(c *fiber.Ctx, field string) ([]services.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	files := form.File[field]
	uploads := make([]services.Upload, 0, len(files))
	for _, header := range files {
		upload, err := readUpload(header)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, *upload)
	}
	return uploads, nil
}

// formUpload reads a single optional multipart file.
func formUpload(c *fiber.Ctx, field string) (*services.Upload, error) {
	header, err := c.FormFile(field)
	if err != nil || header == nil {
		return nil, nil
	}
	return readUpload(header)
}

func readUpload(header *multipart.FileHeader) (*services.Upload, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return &services.Upload{Name: header.Filename, Data: data}, nil
}

// optionalFormValue maps a present form field to a pointer, absent to nil.
func optionalFormValue(c *fiber.Ctx, name string) *string {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if values, ok := form.Value[name]; ok && len(values) > 0 {
			return &values[0]
		}
		return nil
	}
	if value := c.FormValue(name); value != "" {
		return &value
	}
	return nil
}
