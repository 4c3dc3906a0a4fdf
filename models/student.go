package models

import "time"

// Student status values. The store rejects anything else.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type Student struct {
	ID            string    `json:"id"`
	RollNo        string    `json:"rollNo"`
	Name          string    `json:"name"`
	Class         string    `json:"class"`
	ParentContact string    `json:"parentContact"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type CreateStudentRequest struct {
	RollNo        string `json:"rollNo"`
	Name          string `json:"name"`
	Class         string `json:"class"`
	ParentContact string `json:"parentContact"`
	Status        string `json:"status"`
}

// UpdateStudentRequest carries the mutable fields only. Roll numbers are
// immutable after creation, so the struct has no RollNo field and any
// rollNo key in the request body is dropped by the decoder.
type UpdateStudentRequest struct {
	Name          string `json:"name"`
	Class         string `json:"class"`
	ParentContact string `json:"parentContact"`
	Status        string `json:"status"`
}
