package httprepo

import (
	"context"
	"net/url"

	"github.com/nfctrack/attendctl/internal/model"
	"github.com/nfctrack/attendctl/internal/repository"
)

// AttendanceRepository implements the attendance port over the remote API
type AttendanceRepository struct {
	client *Client
}

// NewAttendanceRepository creates the HTTP attendance adapter
func NewAttendanceRepository(client *Client) *AttendanceRepository {
	return &AttendanceRepository{client: client}
}

var _ repository.AttendanceRepository = (*AttendanceRepository)(nil)

func (r *AttendanceRepository) GetHistory(ctx context.Context, filters model.AttendanceFilters) ([]model.AttendanceRecord, error) {
	// Unset filters are omitted entirely, never sent as empty params
	query := url.Values{}
	if filters.StudentID != "" {
		query.Set("studentId", string(filters.StudentID))
	}
	if filters.StartDate != "" {
		query.Set("startDate", filters.StartDate)
	}
	if filters.EndDate != "" {
		query.Set("endDate", filters.EndDate)
	}
	if filters.Status != "" {
		query.Set("status", string(filters.Status))
	}

	var records []model.AttendanceRecord
	if err := r.client.get(ctx, "/attendance/history", query, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *AttendanceRepository) Record(ctx context.Context, reg model.AttendanceRegistration) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	if err := r.client.post(ctx, "/attendance", reg, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *AttendanceRepository) GetRecordByID(ctx context.Context, id model.RecordID) (*model.AttendanceRecord, bool, error) {
	var record model.AttendanceRecord
	err := r.client.get(ctx, "/attendance/"+url.PathEscape(string(id)), nil, &record)
	if IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &record, true, nil
}
