package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/nfctrack/attendctl/internal/model"
	"github.com/nfctrack/attendctl/internal/repository"
)

// AttendanceService encapsulates attendance business rules: identity
// resolution ahead of the port boundary, status defaulting, and the
// per-student single-in-flight guard.
type AttendanceService struct {
	attendance repository.AttendanceRepository
	students   repository.StudentRepository

	mu       sync.Mutex
	inFlight map[model.StudentID]struct{}
}

// NewAttendanceService creates an attendance service over the given ports
func NewAttendanceService(attendance repository.AttendanceRepository, students repository.StudentRepository) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		students:   students,
		inFlight:   make(map[model.StudentID]struct{}),
	}
}

// Record produces exactly one attendance record. The student id wins
// when present; otherwise the NFC id is resolved first. Input with
// neither reference fails before any network call.
func (s *AttendanceService) Record(ctx context.Context, input model.RecordAttendanceInput) (*model.AttendanceRecord, error) {
	studentID := input.StudentID

	if studentID == "" && input.NfcID != "" {
		student, found, err := s.students.FindByNfcID(ctx, input.NfcID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, model.ErrStudentNotFound
		}
		studentID = student.ID
	}

	if studentID == "" {
		return nil, fmt.Errorf("%w: studentId or nfcId required", model.ErrInvalidInput)
	}

	status := input.Status
	if status == "" {
		status = model.StatusPresente
	}

	return s.submit(ctx, model.AttendanceRegistration{
		StudentID: studentID,
		Status:    status,
	})
}

// RecordByNfcID always resolves through the tag and records with status
// Presente. The not-found error echoes the scanned id so an operator
// can tell which tag failed.
func (s *AttendanceService) RecordByNfcID(ctx context.Context, nfcID model.NfcID) (*model.AttendanceRecord, error) {
	student, found, err := s.students.FindByNfcID(ctx, nfcID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: no student with nfcId %q", model.ErrStudentNotFound, nfcID)
	}

	return s.submit(ctx, model.AttendanceRegistration{
		StudentID: student.ID,
		Status:    model.StatusPresente,
	})
}

// History passes filters through untouched; no defaulting, no mutation
func (s *AttendanceService) History(ctx context.Context, filters model.AttendanceFilters) ([]model.AttendanceRecord, error) {
	return s.attendance.GetHistory(ctx, filters)
}

// GetRecord looks up a single attendance record
func (s *AttendanceService) GetRecord(ctx context.Context, id model.RecordID) (*model.AttendanceRecord, bool, error) {
	return s.attendance.GetRecordByID(ctx, id)
}

// submit forwards a resolved registration, rejecting a second
// submission for the same student while one is pending
func (s *AttendanceService) submit(ctx context.Context, reg model.AttendanceRegistration) (*model.AttendanceRecord, error) {
	s.mu.Lock()
	if _, pending := s.inFlight[reg.StudentID]; pending {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", model.ErrSubmissionPending, reg.StudentID)
	}
	s.inFlight[reg.StudentID] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, reg.StudentID)
		s.mu.Unlock()
	}()

	record, err := s.attendance.Record(ctx, reg)
	if err != nil {
		return nil, err
	}

	// A record without its student snapshot is unusable to callers;
	// failing beats returning a partial record
	if record.Student.ID == "" {
		return nil, fmt.Errorf("%w: attendance record %s carries no student", model.ErrProtocolViolation, record.ID)
	}

	return record, nil
}
