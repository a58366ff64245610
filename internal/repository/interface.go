package repository

import (
	"context"

	"github.com/nfctrack/attendctl/internal/model"
)

// The three capability ports of the client. Each has exactly one
// production implementation (httprepo) and one test double (memory).
//
// Single-entity lookups return (entity, found, err); absence is a valid
// outcome discriminated from failure, never folded into the error.

// StudentRepository defines the student record contract
type StudentRepository interface {
	GetStudents(ctx context.Context) ([]model.Student, error)
	GetStudentByID(ctx context.Context, id model.StudentID) (*model.Student, bool, error)
	FindByNfcID(ctx context.Context, nfcID model.NfcID) (*model.Student, bool, error)
	CreateStudent(ctx context.Context, req model.CreateStudentRequest) (*model.Student, error)
	UpdateStudent(ctx context.Context, id model.StudentID, req model.UpdateStudentRequest) (*model.Student, error)
	DeleteStudent(ctx context.Context, id model.StudentID) error
}

// AttendanceRepository defines the attendance event contract.
// Record always receives a resolved student id; NFC resolution happens
// above this port.
type AttendanceRepository interface {
	GetHistory(ctx context.Context, filters model.AttendanceFilters) ([]model.AttendanceRecord, error)
	Record(ctx context.Context, reg model.AttendanceRegistration) (*model.AttendanceRecord, error)
	GetRecordByID(ctx context.Context, id model.RecordID) (*model.AttendanceRecord, bool, error)
}

// AuthRepository defines the session contract. CurrentUser is
// speculative: it reports absence instead of failing, so callers can
// probe whether a persisted token still represents a live session.
type AuthRepository interface {
	Login(ctx context.Context, creds model.Credentials) (*model.AuthenticatedUser, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*model.AuthenticatedUser, bool)
}
