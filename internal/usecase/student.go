package usecase

import (
	"context"

	"github.com/nfctrack/attendctl/internal/model"
	"github.com/nfctrack/attendctl/internal/repository"
)

// StudentService is the seam the UI depends on for student records.
// Every method is a pass-through to the port; the value is in keeping
// callers decoupled from the adapter's transport details.
type StudentService struct {
	students repository.StudentRepository
}

// NewStudentService creates a student service over the given port
func NewStudentService(students repository.StudentRepository) *StudentService {
	return &StudentService{students: students}
}

func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	return s.students.GetStudents(ctx)
}

func (s *StudentService) Get(ctx context.Context, id model.StudentID) (*model.Student, bool, error) {
	return s.students.GetStudentByID(ctx, id)
}

// FindByNfcID maps a scanned tag to a student; absence is a valid
// outcome, not an error
func (s *StudentService) FindByNfcID(ctx context.Context, nfcID model.NfcID) (*model.Student, bool, error) {
	return s.students.FindByNfcID(ctx, nfcID)
}

func (s *StudentService) Create(ctx context.Context, req model.CreateStudentRequest) (*model.Student, error) {
	return s.students.CreateStudent(ctx, req)
}

// Update sends a partial patch; fields left nil stay unchanged
// server-side and the client never reconstructs a full record first
func (s *StudentService) Update(ctx context.Context, id model.StudentID, req model.UpdateStudentRequest) (*model.Student, error) {
	return s.students.UpdateStudent(ctx, id, req)
}

func (s *StudentService) Delete(ctx context.Context, id model.StudentID) error {
	return s.students.DeleteStudent(ctx, id)
}
