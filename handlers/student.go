package handlers

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"school-admin/models"
	"school-admin/store"
)

// storeTimeout bounds every store call made from a handler.
const storeTimeout = 3 * time.Second

// StudentHandler serves the authenticated student CRUD endpoints. Field
// validation happens here first; the store repeats it as a second line of
// defense before anything is persisted.
type StudentHandler struct {
	Store store.StudentStore
}

func NewStudentHandler(s store.StudentStore) *StudentHandler {
	return &StudentHandler{Store: s}
}

// List handles GET /api/students. Students come back ordered by roll
// number ascending, as an array (empty array when there are none).
func (h *StudentHandler) List(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	students, err := h.Store.List(ctx)
	if err != nil {
		return h.serverError(c, "list students", err)
	}

	return c.JSON(students)
}

// Get handles GET /api/students/:id
func (h *StudentHandler) Get(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	student, err := h.Store.Get(ctx, c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.MessageResponse{Message: "Student not found"})
		}
		return h.serverError(c, "get student", err)
	}

	return c.JSON(student)
}

// Create handles POST /api/students
func (h *StudentHandler) Create(c *fiber.Ctx) error {
	var req models.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.MessageResponse{Message: "Invalid request body"})
	}

	if strings.TrimSpace(req.RollNo) == "" ||
		strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Class) == "" ||
		strings.TrimSpace(req.ParentContact) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.MessageResponse{
			Message: "Missing required fields: rollNo, name, class, parentContact",
		})
	}

	// The client must send the contact already in 10-digit form; the
	// store normalizes it again before persisting.
	if !store.ValidContact(req.ParentContact) {
		return c.Status(fiber.StatusBadRequest).JSON(models.MessageResponse{
			Message: "Parent contact must be a 10-digit number",
		})
	}

	if req.Status == "" {
		req.Status = models.StatusActive
	}
	if !store.ValidStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(models.MessageResponse{
			Message: "Status must be Active or Inactive",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	student, err := h.Store.Create(ctx, req)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateRollNo) {
			return c.Status(fiber.StatusBadRequest).JSON(models.MessageResponse{Message: "Roll number already exists"})
		}
		var validationErr *store.ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(models.MessageResponse{Message: validationErr.Message})
		}
		return h.serverError(c, "create student", err)
	}

	return c.Status(fiber.StatusCreated).JSON(student)
}

// Update handles PUT /api/students/:id. Any subset of name, class,
// parentContact, and status may be supplied; the roll number is immutable
// and absent from the request shape.
func (h *StudentHandler) Update(c *fiber.Ctx) error {
	var req models.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.MessageResponse{Message: "Invalid request body"})
	}

	if req.ParentContact != "" && !store.ValidContact(req.ParentContact) {
		return c.Status(fiber.StatusBadRequest).JSON(models.MessageResponse{
			Message: "Parent contact must be a 10-digit number",
		})
	}

	if req.Status != "" && !store.ValidStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(models.MessageResponse{
			Message: "Status must be Active or Inactive",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	student, err := h.Store.Update(ctx, c.Params("id"), req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.MessageResponse{Message: "Student not found"})
		}
		var validationErr *store.ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(models.MessageResponse{Message: validationErr.Message})
		}
		return h.serverError(c, "update student", err)
	}

	return c.JSON(student)
}

// Delete handles DELETE /api/students/:id
func (h *StudentHandler) Delete(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := h.Store.Delete(ctx, c.Params("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.MessageResponse{Message: "Student not found"})
		}
		return h.serverError(c, "delete student", err)
	}

	return c.JSON(models.MessageResponse{Message: "Student deleted"})
}

// serverError logs the underlying failure and returns a generic 500. Engine
// details and stack traces never reach the client.
func (h *StudentHandler) serverError(c *fiber.Ctx, op string, err error) error {
	log.Printf("Failed to %s: %v", op, err)
	return c.Status(fiber.StatusInternalServerError).JSON(models.MessageResponse{Message: "Internal server error"})
}
