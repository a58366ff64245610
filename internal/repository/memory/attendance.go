package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nfctrack/attendctl/internal/model"
	"github.com/nfctrack/attendctl/internal/repository"
)

// AttendanceRepository is the in-memory test double for the attendance
// port. It mimics the server's presumed toggle: event type alternates
// entry/exit per student.
type AttendanceRepository struct {
	mu sync.RWMutex

	records  []model.AttendanceRecord
	lastType map[model.StudentID]model.EventType
	nextID   int

	// Students resolves the embedded student snapshot on Record; a
	// registration for an unknown student fails, matching the invariant
	// that every returned record carries a populated student
	Students *StudentRepository

	Err error

	// RecordCalls holds every registration seen, in order
	RecordCalls []model.AttendanceRegistration

	blockNext chan struct{}
}

// NewAttendanceRepository creates an attendance repository backed by the
// given student repository
func NewAttendanceRepository(students *StudentRepository) *AttendanceRepository {
	return &AttendanceRepository{
		lastType: make(map[model.StudentID]model.EventType),
		Students: students,
	}
}

var _ repository.AttendanceRepository = (*AttendanceRepository)(nil)

func (r *AttendanceRepository) GetHistory(ctx context.Context, filters model.AttendanceFilters) ([]model.AttendanceRecord, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.AttendanceRecord, 0, len(r.records))
	for _, rec := range r.records {
		if filters.StudentID != "" && rec.Student.ID != filters.StudentID {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// BlockNextRecord makes the next Record call wait on the returned
// channel until it is closed; used to hold a submission open while a
// test exercises the in-flight guard
func (r *AttendanceRepository) BlockNextRecord() chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blockNext = make(chan struct{})
	return r.blockNext
}

// RecordCallCount returns how many registrations have reached the port
func (r *AttendanceRepository) RecordCallCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.RecordCalls)
}

func (r *AttendanceRepository) Record(ctx context.Context, reg model.AttendanceRegistration) (*model.AttendanceRecord, error) {
	r.mu.Lock()
	r.RecordCalls = append(r.RecordCalls, reg)
	block := r.blockNext
	r.blockNext = nil
	r.mu.Unlock()

	if block != nil {
		<-block
	}
	if r.Err != nil {
		return nil, r.Err
	}

	student, ok, err := r.Students.GetStudentByID(ctx, reg.StudentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrStudentNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	eventType := model.EventEntry
	if r.lastType[reg.StudentID] == model.EventEntry {
		eventType = model.EventExit
	}
	r.lastType[reg.StudentID] = eventType

	r.nextID++
	rec := model.AttendanceRecord{
		ID:        model.RecordID(fmt.Sprintf("a%d", r.nextID)),
		Student:   *student,
		Type:      eventType,
		Timestamp: time.Now(),
	}
	r.records = append(r.records, rec)
	copy := rec
	return &copy, nil
}

func (r *AttendanceRepository) GetRecordByID(ctx context.Context, id model.RecordID) (*model.AttendanceRecord, bool, error) {
	if r.Err != nil {
		return nil, false, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.ID == id {
			copy := rec
			return &copy, true, nil
		}
	}
	return nil, false, nil
}
