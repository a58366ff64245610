package httprepo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nfctrack/attendctl/internal/apitest"
	"github.com/nfctrack/attendctl/internal/model"
	"github.com/nfctrack/attendctl/internal/token"
)

type AdapterSuite struct {
	suite.Suite
	fake   *apitest.Server
	server *httptest.Server
	tokens *token.Store

	students   *StudentRepository
	attendance *AttendanceRepository
	auth       *AuthRepository

	ctx context.Context
}

func TestAdapterSuite(t *testing.T) {
	suite.Run(t, new(AdapterSuite))
}

func (s *AdapterSuite) SetupTest() {
	s.fake = apitest.New("admin", "secret")
	s.server = httptest.NewServer(s.fake.Handler())
	s.tokens = token.NewStore(filepath.Join(s.T().TempDir(), "token"))

	client := NewClient(s.server.URL, s.tokens)
	s.students = NewStudentRepository(client)
	s.attendance = NewAttendanceRepository(client)
	s.auth = NewAuthRepository(client)

	s.ctx = context.Background()
}

func (s *AdapterSuite) TearDownTest() {
	s.server.Close()
}

// authenticate issues a token straight from the fake and stores it
func (s *AdapterSuite) authenticate() {
	s.Require().NoError(s.tokens.Set(s.fake.IssueToken()))
}

// Auth adapter tests

func (s *AdapterSuite) TestLoginReturnsUserWithToken() {
	user, err := s.auth.Login(s.ctx, model.Credentials{Username: "admin", Password: "secret"})
	s.Require().NoError(err)

	s.Equal("admin", user.Username)
	s.NotEmpty(user.Token)
}

func (s *AdapterSuite) TestLoginFailureCarriesStatusAndBody() {
	_, err := s.auth.Login(s.ctx, model.Credentials{Username: "admin", Password: "wrong"})
	s.Require().Error(err)

	var apiErr *APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(http.StatusUnauthorized, apiErr.StatusCode)
	s.Contains(apiErr.Body, "invalid credentials")
}

func (s *AdapterSuite) TestCurrentUserAbsentWithoutToken() {
	user, ok := s.auth.CurrentUser(s.ctx)
	s.False(ok)
	s.Nil(user)
}

func (s *AdapterSuite) TestCurrentUserWithStoredToken() {
	s.authenticate()

	user, ok := s.auth.CurrentUser(s.ctx)
	s.Require().True(ok)
	s.Equal("admin", user.Username)
}

func (s *AdapterSuite) TestLogoutInvalidatesRemoteSession() {
	s.authenticate()

	s.Require().NoError(s.auth.Logout(s.ctx))

	_, ok := s.auth.CurrentUser(s.ctx)
	s.False(ok)
}

// Student adapter tests

func (s *AdapterSuite) TestRequestsCarryBearerToken() {
	// Without a token the protected routes refuse the request
	_, err := s.students.GetStudents(s.ctx)
	var apiErr *APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(http.StatusUnauthorized, apiErr.StatusCode)

	s.authenticate()
	_, err = s.students.GetStudents(s.ctx)
	s.NoError(err)
}

func (s *AdapterSuite) TestCreateThenGetRoundTrips() {
	s.authenticate()

	created, err := s.students.CreateStudent(s.ctx, model.CreateStudentRequest{
		Name:     "Ana",
		LastName: "Pérez",
		NfcID:    "04aa",
	})
	s.Require().NoError(err)
	s.NotEmpty(created.ID)

	fetched, found, err := s.students.GetStudentByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Require().True(found)

	s.Equal(created.Name, fetched.Name)
	s.Equal(created.LastName, fetched.LastName)
	s.Equal(created.NfcID, fetched.NfcID)
}

func (s *AdapterSuite) TestGetStudent404IsAbsence() {
	s.authenticate()

	student, found, err := s.students.GetStudentByID(s.ctx, "missing")
	s.Require().NoError(err)
	s.False(found)
	s.Nil(student)
}

func (s *AdapterSuite) TestFindByNfcID404IsAbsence() {
	s.authenticate()

	student, found, err := s.students.FindByNfcID(s.ctx, "deadbeef")
	s.Require().NoError(err)
	s.False(found)
	s.Nil(student)
}

func (s *AdapterSuite) TestFindByNfcIDMatches() {
	s.authenticate()
	seeded := s.fake.SeedStudent("Ana", "Pérez", "04aa")

	student, found, err := s.students.FindByNfcID(s.ctx, "04aa")
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal(seeded.ID, student.ID)
}

func (s *AdapterSuite) TestUpdateSendsPartialBody() {
	s.authenticate()
	seeded := s.fake.SeedStudent("Ana", "Pérez", "04aa")

	newName := "Anita"
	updated, err := s.students.UpdateStudent(s.ctx, seeded.ID, model.UpdateStudentRequest{Name: &newName})
	s.Require().NoError(err)

	s.Equal("Anita", updated.Name)
	s.Equal("Pérez", updated.LastName)
	s.Equal(model.NfcID("04aa"), updated.NfcID)
}

func (s *AdapterSuite) TestDeleteStudent() {
	s.authenticate()
	seeded := s.fake.SeedStudent("Ana", "Pérez", "04aa")

	s.Require().NoError(s.students.DeleteStudent(s.ctx, seeded.ID))

	_, found, err := s.students.GetStudentByID(s.ctx, seeded.ID)
	s.Require().NoError(err)
	s.False(found)
}

func (s *AdapterSuite) TestServiceFailureIsNotHidden() {
	s.authenticate()
	s.fake.FailNext = "database exploded"

	_, err := s.students.GetStudents(s.ctx)
	s.Require().Error(err)

	var apiErr *APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(http.StatusInternalServerError, apiErr.StatusCode)
	s.Contains(apiErr.Body, "database exploded")
}

// Attendance adapter tests

func (s *AdapterSuite) TestRecordReturnsPopulatedStudent() {
	s.authenticate()
	seeded := s.fake.SeedStudent("Ana", "Pérez", "04aa")

	record, err := s.attendance.Record(s.ctx, model.AttendanceRegistration{
		StudentID: seeded.ID,
		Status:    model.StatusPresente,
	})
	s.Require().NoError(err)

	s.NotEmpty(record.ID)
	s.Equal(seeded.ID, record.Student.ID)
	s.Equal("Ana", record.Student.Name)
	s.Equal(model.EventEntry, record.Type)
}

func (s *AdapterSuite) TestRecordTogglesEntryExit() {
	s.authenticate()
	seeded := s.fake.SeedStudent("Ana", "Pérez", "04aa")

	reg := model.AttendanceRegistration{StudentID: seeded.ID, Status: model.StatusPresente}

	first, err := s.attendance.Record(s.ctx, reg)
	s.Require().NoError(err)
	second, err := s.attendance.Record(s.ctx, reg)
	s.Require().NoError(err)

	s.Equal(model.EventEntry, first.Type)
	s.Equal(model.EventExit, second.Type)
}

func (s *AdapterSuite) TestHistoryOmitsUnsetParams() {
	s.authenticate()

	_, err := s.attendance.GetHistory(s.ctx, model.AttendanceFilters{})
	s.Require().NoError(err)
	s.Empty(s.fake.LastHistoryQuery)

	_, err = s.attendance.GetHistory(s.ctx, model.AttendanceFilters{
		StudentID: "s1",
		StartDate: "2025-03-01",
	})
	s.Require().NoError(err)
	s.Equal("s1", s.fake.LastHistoryQuery.Get("studentId"))
	s.Equal("2025-03-01", s.fake.LastHistoryQuery.Get("startDate"))
	s.False(s.fake.LastHistoryQuery.Has("endDate"))
	s.False(s.fake.LastHistoryQuery.Has("status"))
}

func (s *AdapterSuite) TestHistoryFiltersByStudent() {
	s.authenticate()
	ana := s.fake.SeedStudent("Ana", "Pérez", "04aa")
	luis := s.fake.SeedStudent("Luis", "Gómez", "04bb")

	_, err := s.attendance.Record(s.ctx, model.AttendanceRegistration{StudentID: ana.ID})
	s.Require().NoError(err)
	_, err = s.attendance.Record(s.ctx, model.AttendanceRegistration{StudentID: luis.ID})
	s.Require().NoError(err)

	records, err := s.attendance.GetHistory(s.ctx, model.AttendanceFilters{StudentID: ana.ID})
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(ana.ID, records[0].Student.ID)
}

func (s *AdapterSuite) TestGetRecord404IsAbsence() {
	s.authenticate()

	record, found, err := s.attendance.GetRecordByID(s.ctx, "missing")
	s.Require().NoError(err)
	s.False(found)
	s.Nil(record)
}

func (s *AdapterSuite) TestGetRecordByID() {
	s.authenticate()
	seeded := s.fake.SeedStudent("Ana", "Pérez", "04aa")

	created, err := s.attendance.Record(s.ctx, model.AttendanceRegistration{StudentID: seeded.ID})
	s.Require().NoError(err)

	fetched, found, err := s.attendance.GetRecordByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal(created.ID, fetched.ID)
	s.Equal(seeded.ID, fetched.Student.ID)
}
