package handler

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// envelope is the canonical response shape for every endpoint: a success
// flag, an optional message, and either a data payload or a field error list.
type envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// listEnvelope is the collection variant: count and data are always present,
// so an empty result serializes as count 0 with an empty array.
type listEnvelope struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    any  `json:"data"`
}

func respond(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, envelope{Success: true, Message: message, Data: data})
}

func respondList(c echo.Context, code int, count int, data any) error {
	return c.JSON(code, listEnvelope{Success: true, Count: count, Data: data})
}

// --- Auth requests ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// normalize trims the bound values before validation runs, so whitespace-only
// or whitespace-padded input cannot satisfy required or length constraints.
// Passwords are never trimmed.
func (r *registerRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// --- Profile requests ---

type updateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=30"`
	Email    *string `json:"email"    validate:"omitempty,email"`
}

// normalize trims provided fields before validation. A field that trims to
// empty is rejected here because omitempty would otherwise skip its tags.
func (r *updateProfileRequest) normalize() error {
	if r.Username != nil {
		u := strings.TrimSpace(*r.Username)
		if u == "" {
			return NewValidationError("username", "username cannot be empty")
		}
		r.Username = &u
	}
	if r.Email != nil {
		e := strings.TrimSpace(*r.Email)
		if e == "" {
			return NewValidationError("email", "email cannot be empty")
		}
		r.Email = &e
	}
	return nil
}

// --- Task requests ---

type createTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=100"`
	Description string     `json:"description" validate:"max=500"`
	Status      bool       `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
}

func (r *createTaskRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

// nullableDate distinguishes an absent dueDate from an explicit null: null
// clears the stored date, absence leaves it untouched.
type nullableDate struct {
	Set   bool
	Value *time.Time
}

func (d *nullableDate) UnmarshalJSON(b []byte) error {
	d.Set = true
	if string(b) == "null" {
		d.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(b, &t); err != nil {
		return err
	}
	d.Value = &t
	return nil
}

type updateTaskRequest struct {
	Title       *string      `json:"title"       validate:"omitempty,max=100"`
	Description *string      `json:"description" validate:"omitempty,max=500"`
	Status      *bool        `json:"status"`
	DueDate     nullableDate `json:"dueDate"`
}

func (r *updateTaskRequest) empty() bool {
	return r.Title == nil && r.Description == nil && r.Status == nil && !r.DueDate.Set
}

// normalize trims provided fields before validation. A title present in the
// patch must stay non-empty after trimming; the description may be cleared.
func (r *updateTaskRequest) normalize() error {
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		if t == "" {
			return NewValidationError("title", "title cannot be empty")
		}
		r.Title = &t
	}
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		r.Description = &d
	}
	return nil
}

type listTasksQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=true false"`
	Sort   string `query:"sort"   validate:"omitempty,oneof=dueDate -dueDate createdAt -createdAt"`
}

// --- Responses ---

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type taskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      bool       `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
	UserID      string     `json:"user"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type ownerResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// taskWithOwnerResponse is the admin view: a task annotated with a minimal
// projection of its owner.
type taskWithOwnerResponse struct {
	taskResponse
	Owner ownerResponse `json:"owner"`
}
