package cli

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nfctrack/attendctl/internal/apitest"
)

type CLISuite struct {
	suite.Suite
	fake      *apitest.Server
	server    *httptest.Server
	tokenFile string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.fake = apitest.New("admin", "secret")
	s.server = httptest.NewServer(s.fake.Handler())
	s.tokenFile = filepath.Join(s.T().TempDir(), "token")
}

func (s *CLISuite) TearDownTest() {
	s.server.Close()
}

// run executes the CLI in-process with the test server and token file
func (s *CLISuite) run(args ...string) error {
	fullArgs := append([]string{
		"--server", s.server.URL,
		"--token-file", s.tokenFile,
		"--output", "json",
	}, args...)

	cmd := NewRootCmd()
	cmd.SetArgs(fullArgs)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.Execute()
}

func (s *CLISuite) login() {
	s.Require().NoError(s.run("login", "--user", "admin", "--pass", "secret"))
}

func (s *CLISuite) TestLoginPersistsTokenFile() {
	s.login()

	data, err := os.ReadFile(s.tokenFile)
	s.Require().NoError(err)
	s.NotEmpty(data)
}

func (s *CLISuite) TestLoginWithBadPasswordFails() {
	err := s.run("login", "--user", "admin", "--pass", "nope")
	s.Error(err)

	_, statErr := os.Stat(s.tokenFile)
	s.True(os.IsNotExist(statErr))
}

func (s *CLISuite) TestLogoutRemovesTokenFile() {
	s.login()
	s.Require().NoError(s.run("logout"))

	_, err := os.Stat(s.tokenFile)
	s.True(os.IsNotExist(err))
}

func (s *CLISuite) TestWhoamiWithoutSessionSucceeds() {
	// Bootstrap must settle on unauthenticated, not fail
	s.NoError(s.run("whoami"))
}

func (s *CLISuite) TestStudentLifecycle() {
	s.login()

	s.Require().NoError(s.run("student", "create",
		"--name", "Ana", "--last-name", "Pérez", "--nfc-id", "04aa"))
	s.Require().NoError(s.run("student", "list"))
	s.Require().NoError(s.run("student", "find-nfc", "04aa"))

	s.Error(s.run("student", "find-nfc", "deadbeef"))
}

func (s *CLISuite) TestAttendanceViaNfc() {
	s.login()
	s.fake.SeedStudent("Ana", "Pérez", "04aa")

	s.Require().NoError(s.run("attendance", "record-nfc", "04aa"))
	s.Require().NoError(s.run("attendance", "history", "--status", "Presente"))

	err := s.run("attendance", "record-nfc", "deadbeef")
	s.Require().Error(err)
	s.Contains(err.Error(), "deadbeef")
}

func (s *CLISuite) TestAttendanceRecordRequiresIdentity() {
	s.login()
	s.Error(s.run("attendance", "record"))
}

func (s *CLISuite) TestStudentUpdateRequiresAField() {
	s.login()
	seeded := s.fake.SeedStudent("Ana", "Pérez", "04aa")

	s.Error(s.run("student", "update", string(seeded.ID)))
	s.NoError(s.run("student", "update", string(seeded.ID), "--name", "Anita"))
}

func (s *CLISuite) TestStudentDelete() {
	s.login()
	seeded := s.fake.SeedStudent("Ana", "Pérez", "04aa")

	s.NoError(s.run("student", "delete", string(seeded.ID)))
	s.Error(s.run("student", "get", string(seeded.ID)))
}
