package model

import "time"

// StudentID uniquely identifies a student across the system
type StudentID string

// NfcID is the identifier burned into a student's physical NFC tag
type NfcID string

// Student represents an enrolled student and their assigned tag
type Student struct {
	ID        StudentID  `json:"id"`
	Name      string     `json:"name"`
	LastName  string     `json:"lastName"`
	NfcID     NfcID      `json:"nfcId"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// CreateStudentRequest carries the fields needed to enroll a student.
// NfcID uniqueness is enforced by the server.
type CreateStudentRequest struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	NfcID    NfcID  `json:"nfcId"`
}

// UpdateStudentRequest is a partial patch; nil fields are left unchanged
// server-side and omitted from the request body.
type UpdateStudentRequest struct {
	Name     *string `json:"name,omitempty"`
	LastName *string `json:"lastName,omitempty"`
	NfcID    *NfcID  `json:"nfcId,omitempty"`
}
