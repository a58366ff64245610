package httprepo

import (
	"context"
	"net/url"

	"github.com/nfctrack/attendctl/internal/model"
	"github.com/nfctrack/attendctl/internal/repository"
)

// StudentRepository implements the student port over the remote API
type StudentRepository struct {
	client *Client
}

// NewStudentRepository creates the HTTP student adapter
func NewStudentRepository(client *Client) *StudentRepository {
	return &StudentRepository{client: client}
}

var _ repository.StudentRepository = (*StudentRepository)(nil)

func (r *StudentRepository) GetStudents(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	if err := r.client.get(ctx, "/students", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (r *StudentRepository) GetStudentByID(ctx context.Context, id model.StudentID) (*model.Student, bool, error) {
	var student model.Student
	err := r.client.get(ctx, "/students/"+url.PathEscape(string(id)), nil, &student)
	if IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &student, true, nil
}

func (r *StudentRepository) FindByNfcID(ctx context.Context, nfcID model.NfcID) (*model.Student, bool, error) {
	body := map[string]model.NfcID{"nfcId": nfcID}
	var student model.Student
	err := r.client.post(ctx, "/students/nfc", body, &student)
	if IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &student, true, nil
}

func (r *StudentRepository) CreateStudent(ctx context.Context, req model.CreateStudentRequest) (*model.Student, error) {
	var student model.Student
	if err := r.client.post(ctx, "/students", req, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) UpdateStudent(ctx context.Context, id model.StudentID, req model.UpdateStudentRequest) (*model.Student, error) {
	var student model.Student
	if err := r.client.put(ctx, "/students/"+url.PathEscape(string(id)), req, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) DeleteStudent(ctx context.Context, id model.StudentID) error {
	return r.client.delete(ctx, "/students/"+url.PathEscape(string(id)))
}
