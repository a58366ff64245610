package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nfctrack/attendctl/internal/model"
	"github.com/nfctrack/attendctl/internal/repository"
)

// StudentRepository is the in-memory test double for the student port.
// Err, when set, is returned by every operation; it simulates a
// transport failure without a network in the loop.
type StudentRepository struct {
	mu sync.RWMutex

	students map[model.StudentID]*model.Student
	nfcIndex map[model.NfcID]model.StudentID
	nextID   int

	Err error

	// FindByNfcIDCalls counts NFC lookups so tests can assert the
	// resolution path was (or was not) taken
	FindByNfcIDCalls int
}

// NewStudentRepository creates an empty student repository
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{
		students: make(map[model.StudentID]*model.Student),
		nfcIndex: make(map[model.NfcID]model.StudentID),
	}
}

var _ repository.StudentRepository = (*StudentRepository)(nil)

// Seed inserts a student directly, bypassing the port
func (r *StudentRepository) Seed(student model.Student) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := student
	r.students[s.ID] = &s
	r.nfcIndex[s.NfcID] = s.ID
}

func (r *StudentRepository) GetStudents(ctx context.Context) ([]model.Student, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Student, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, *s)
	}
	return out, nil
}

func (r *StudentRepository) GetStudentByID(ctx context.Context, id model.StudentID) (*model.Student, bool, error) {
	if r.Err != nil {
		return nil, false, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.students[id]
	if !ok {
		return nil, false, nil
	}
	copy := *s
	return &copy, true, nil
}

func (r *StudentRepository) FindByNfcID(ctx context.Context, nfcID model.NfcID) (*model.Student, bool, error) {
	r.mu.Lock()
	r.FindByNfcIDCalls++
	r.mu.Unlock()

	if r.Err != nil {
		return nil, false, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.nfcIndex[nfcID]
	if !ok {
		return nil, false, nil
	}
	copy := *r.students[id]
	return &copy, true, nil
}

func (r *StudentRepository) CreateStudent(ctx context.Context, req model.CreateStudentRequest) (*model.Student, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now()
	s := &model.Student{
		ID:        model.StudentID(fmt.Sprintf("s%d", r.nextID)),
		Name:      req.Name,
		LastName:  req.LastName,
		NfcID:     req.NfcID,
		CreatedAt: &now,
	}
	r.students[s.ID] = s
	r.nfcIndex[s.NfcID] = s.ID
	copy := *s
	return &copy, nil
}

func (r *StudentRepository) UpdateStudent(ctx context.Context, id model.StudentID, req model.UpdateStudentRequest) (*model.Student, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, model.ErrStudentNotFound
	}
	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.LastName != nil {
		s.LastName = *req.LastName
	}
	if req.NfcID != nil {
		delete(r.nfcIndex, s.NfcID)
		s.NfcID = *req.NfcID
		r.nfcIndex[s.NfcID] = s.ID
	}
	copy := *s
	return &copy, nil
}

func (r *StudentRepository) DeleteStudent(ctx context.Context, id model.StudentID) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.students[id]; ok {
		delete(r.nfcIndex, s.NfcID)
		delete(r.students, id)
	}
	return nil
}
