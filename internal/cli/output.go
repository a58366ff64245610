package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nfctrack/attendctl/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case model.Student:
		o.printStudent(v)
	case []model.Student:
		o.printStudents(v)
	case model.AttendanceRecord:
		o.printRecord(v)
	case []model.AttendanceRecord:
		o.printRecords(v)
	case model.AuthenticatedUser:
		o.printUser(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printStudent(s model.Student) {
	fmt.Printf("Student: %s %s (%s)\n", s.Name, s.LastName, s.ID)
	fmt.Printf("NFC Tag: %s\n", s.NfcID)
	if s.CreatedAt != nil {
		fmt.Printf("Enrolled: %s\n", s.CreatedAt.Format(time.RFC3339))
	}
}

func (o *Output) printStudents(students []model.Student) {
	fmt.Printf("Students (%d):\n", len(students))
	for _, s := range students {
		fmt.Printf("  - %s %s (%s) tag=%s\n", s.Name, s.LastName, s.ID, s.NfcID)
	}
}

func (o *Output) printRecord(r model.AttendanceRecord) {
	fmt.Printf("Record: %s\n", r.ID)
	fmt.Printf("Student: %s %s (%s)\n", r.Student.Name, r.Student.LastName, r.Student.ID)
	fmt.Printf("Type: %s\n", r.Type)
	fmt.Printf("Time: %s\n", r.Timestamp.Format(time.RFC3339))
}

func (o *Output) printRecords(records []model.AttendanceRecord) {
	fmt.Printf("Attendance records (%d):\n", len(records))
	for _, r := range records {
		fmt.Printf("  - %s %s %s %s\n",
			r.Timestamp.Format(time.RFC3339), r.Type, r.Student.Name, r.Student.LastName)
	}
}

func (o *Output) printUser(u model.AuthenticatedUser) {
	fmt.Printf("User: %s (%s)\n", u.Username, u.ID)
	if len(u.Roles) > 0 {
		fmt.Printf("Roles: %s\n", strings.Join(u.Roles, ", "))
	}
}
