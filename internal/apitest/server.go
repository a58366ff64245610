// Package apitest provides an in-process implementation of the remote
// attendance API, used to test the HTTP adapters and the CLI without a
// real deployment. It mirrors the behaviors the client assumes of the
// server: bearer-token auth, nfcId uniqueness, and the per-student
// entry/exit toggle.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/nfctrack/attendctl/internal/model"
)

// Server is the fake attendance API
type Server struct {
	mu sync.Mutex

	username     string
	passwordHash []byte

	tokens   map[string]model.AuthenticatedUser
	students map[model.StudentID]*model.Student
	records  []model.AttendanceRecord
	lastType map[model.StudentID]model.EventType

	// FailNext, when set, makes the next request answer 500 with this
	// body, then resets
	FailNext string

	// LastHistoryQuery records the raw query of the most recent history
	// request, so tests can assert which params the client sent
	LastHistoryQuery url.Values
}

// New creates a fake server with one operator account
func New(username, password string) *Server {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("apitest: hashing password: %v", err))
	}
	return &Server{
		username:     username,
		passwordHash: hash,
		tokens:       make(map[string]model.AuthenticatedUser),
		students:     make(map[model.StudentID]*model.Student),
		lastType:     make(map[model.StudentID]model.EventType),
	}
}

// Handler returns the HTTP handler for the fake API
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	r.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)

	protected := r.NewRoute().Subrouter()
	protected.Use(s.requireAuth)
	protected.HandleFunc("/students", s.handleListStudents).Methods(http.MethodGet)
	protected.HandleFunc("/students", s.handleCreateStudent).Methods(http.MethodPost)
	protected.HandleFunc("/students/nfc", s.handleFindByNfc).Methods(http.MethodPost)
	protected.HandleFunc("/students/{id}", s.handleGetStudent).Methods(http.MethodGet)
	protected.HandleFunc("/students/{id}", s.handleUpdateStudent).Methods(http.MethodPut)
	protected.HandleFunc("/students/{id}", s.handleDeleteStudent).Methods(http.MethodDelete)
	protected.HandleFunc("/attendance/history", s.handleHistory).Methods(http.MethodGet)
	protected.HandleFunc("/attendance", s.handleRecord).Methods(http.MethodPost)
	protected.HandleFunc("/attendance/{id}", s.handleGetRecord).Methods(http.MethodGet)

	r.Use(s.failureInjection)

	return r
}

// SeedStudent inserts a student directly and returns it
func (s *Server) SeedStudent(name, lastName string, nfcID model.NfcID) model.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	student := model.Student{
		ID:        model.StudentID(uuid.NewString()),
		Name:      name,
		LastName:  lastName,
		NfcID:     nfcID,
		CreatedAt: &now,
	}
	s.students[student.ID] = &student
	return student
}

// IssueToken creates a valid session token without going through login
func (s *Server) IssueToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok := uuid.NewString()
	s.tokens[tok] = model.AuthenticatedUser{
		ID:       "u1",
		Username: s.username,
		Token:    tok,
		Roles:    []string{"operator"},
	}
	return tok
}

func (s *Server) failureInjection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		fail := s.FailNext
		s.FailNext = ""
		s.mu.Unlock()
		if fail != "" {
			http.Error(w, fail, http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.sessionFor(r); !ok {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) sessionFor(r *http.Request) (model.AuthenticatedUser, bool) {
	header := r.Header.Get("Authorization")
	tok, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return model.AuthenticatedUser{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.tokens[tok]
	return user, ok
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if creds.Username != s.username ||
		bcrypt.CompareHashAndPassword(s.passwordHash, []byte(creds.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	tok := uuid.NewString()
	user := model.AuthenticatedUser{
		ID:       "u1",
		Username: s.username,
		Token:    tok,
		Roles:    []string{"operator"},
	}
	s.tokens[tok] = user
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if user, ok := s.sessionFor(r); ok {
		s.mu.Lock()
		delete(s.tokens, user.Token)
		s.mu.Unlock()
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := s.sessionFor(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Student, 0, len(s.students))
	for _, st := range s.students {
		out = append(out, *st)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.students {
		if st.NfcID == req.NfcID {
			http.Error(w, "nfcId already assigned", http.StatusConflict)
			return
		}
	}

	now := time.Now().UTC()
	student := model.Student{
		ID:        model.StudentID(uuid.NewString()),
		Name:      req.Name,
		LastName:  req.LastName,
		NfcID:     req.NfcID,
		CreatedAt: &now,
	}
	s.students[student.ID] = &student
	writeJSON(w, http.StatusCreated, student)
}

func (s *Server) handleFindByNfc(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NfcID model.NfcID `json:"nfcId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.students {
		if st.NfcID == req.NfcID {
			writeJSON(w, http.StatusOK, *st)
			return
		}
	}
	http.Error(w, "student not found", http.StatusNotFound)
}

func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	id := model.StudentID(mux.Vars(r)["id"])

	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[id]
	if !ok {
		http.Error(w, "student not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, *st)
}

func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	id := model.StudentID(mux.Vars(r)["id"])

	var req model.UpdateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[id]
	if !ok {
		http.Error(w, "student not found", http.StatusNotFound)
		return
	}
	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.LastName != nil {
		st.LastName = *req.LastName
	}
	if req.NfcID != nil {
		st.NfcID = *req.NfcID
	}
	writeJSON(w, http.StatusOK, *st)
}

func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	id := model.StudentID(mux.Vars(r)["id"])

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[id]; !ok {
		http.Error(w, "student not found", http.StatusNotFound)
		return
	}
	delete(s.students, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	// The fake only filters by studentId; date and status filtering are
	// server concerns the adapter tests don't depend on
	query := r.URL.Query()
	studentID := model.StudentID(query.Get("studentId"))

	s.mu.Lock()
	s.LastHistoryQuery = query
	defer s.mu.Unlock()
	out := make([]model.AttendanceRecord, 0, len(s.records))
	for _, rec := range s.records {
		if studentID != "" && rec.Student.ID != studentID {
			continue
		}
		out = append(out, rec)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	var reg model.AttendanceRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if reg.StudentID == "" {
		http.Error(w, "studentId required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.students[reg.StudentID]
	if !ok {
		http.Error(w, "student not found", http.StatusNotFound)
		return
	}

	// Toggle entry/exit per student
	eventType := model.EventEntry
	if s.lastType[reg.StudentID] == model.EventEntry {
		eventType = model.EventExit
	}
	s.lastType[reg.StudentID] = eventType

	rec := model.AttendanceRecord{
		ID:        model.RecordID(uuid.NewString()),
		Student:   *st,
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
	s.records = append(s.records, rec)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id := model.RecordID(mux.Vars(r)["id"])

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.ID == id {
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	http.Error(w, "record not found", http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
