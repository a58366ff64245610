package model

import "time"

// RecordID uniquely identifies an attendance record
type RecordID string

// EventType is decided by the server, which alternates entry/exit per
// student. The client never sets it.
type EventType string

const (
	EventEntry EventType = "entry"
	EventExit  EventType = "exit"
)

// Status is an optional hint attached to a registration; its
// interpretation belongs to the server.
type Status string

const (
	StatusPresente    Status = "Presente"
	StatusAusente     Status = "Ausente"
	StatusTardanza    Status = "Tardanza"
	StatusJustificado Status = "Justificado"
)

// AttendanceRecord is an immutable attendance event with the student
// snapshot denormalized at write time
type AttendanceRecord struct {
	ID        RecordID  `json:"id"`
	Student   Student   `json:"student"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// AttendanceRegistration is the port-level write intent. StudentID is
// always resolved by the time it reaches a repository; NFC resolution
// happens in the use-case layer.
type AttendanceRegistration struct {
	StudentID StudentID `json:"studentId"`
	Status    Status    `json:"status,omitempty"`
}

// RecordAttendanceInput is the use-case-level write intent carrying
// exactly one identity reference: StudentID or NfcID.
type RecordAttendanceInput struct {
	StudentID StudentID
	NfcID     NfcID
	Status    Status
}

// AttendanceFilters narrows a history query. Zero values mean
// unconstrained; the client never injects defaults.
type AttendanceFilters struct {
	StudentID StudentID
	StartDate string
	EndDate   string
	Status    Status
}
