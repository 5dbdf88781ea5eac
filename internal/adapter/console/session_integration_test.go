package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"user-crud-console/internal/adapter/db/gormrepo"
	usecase "user-crud-console/internal/usecase/user"
	"user-crud-console/pkg/logger"
)

// SessionIntegrationSuite drives the menu against a real SQLite database.
type SessionIntegrationSuite struct {
	suite.Suite
	db *gorm.DB
	uc *usecase.Usecase
}

func TestSessionIntegrationSuite(t *testing.T) {
	suite.Run(t, new(SessionIntegrationSuite))
}

func (s *SessionIntegrationSuite) SetupTest() {
	l := zaptest.NewLogger(s.T())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.NewGormLogger(l, 0.2, "info"),
	})
	s.Require().NoError(err)

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.T().Cleanup(func() { _ = sqlDB.Close() })

	s.Require().NoError(db.AutoMigrate(&gormrepo.UserSchema{}))

	s.db = db
	s.uc = usecase.New(gormrepo.NewUserRepo(db, l), l)
}

// run feeds input to a fresh session and returns everything it printed.
func (s *SessionIntegrationSuite) run(input string) string {
	var out bytes.Buffer
	session := NewSession(s.uc, New(strings.NewReader(input), &out), zaptest.NewLogger(s.T()))
	s.Require().NoError(session.Run(context.Background()))
	return out.String()
}

// listing returns the data rows printed by a single List operation.
func (s *SessionIntegrationSuite) listing() []string {
	out := s.run("2 5")
	start := strings.Index(out, listSeparator+"\n")
	s.Require().GreaterOrEqual(start, 0)
	body := out[start+len(listSeparator)+1:]
	end := strings.Index(body, "\nChoose an operation:")
	s.Require().GreaterOrEqual(end, 0)
	body = strings.TrimSuffix(body[:end], "\n")
	if body == "" {
		return nil
	}
	return strings.Split(body, "\n")
}

func (s *SessionIntegrationSuite) TestEmptyTablePrintsOnlyHeader() {
	out := s.run("2 5")

	s.Contains(out, listHeader+"\n"+listSeparator+"\n\nChoose an operation:")
	s.Empty(s.listing())
}

func (s *SessionIntegrationSuite) TestCreateUpdateDeleteScenario() {
	out := s.run("1 Ann ann@x.com US 5")
	s.Contains(out, "User added successfully!")
	s.Equal([]string{"1 | Ann | ann@x.com | US"}, s.listing())

	out = s.run("3 1 ann2@x.com 5")
	s.Contains(out, "User updated successfully!")
	s.Equal([]string{"1 | Ann | ann2@x.com | US"}, s.listing())

	out = s.run("4 1 5")
	s.Contains(out, "User deleted successfully!")
	s.Empty(s.listing())

	out = s.run("4 1 5")
	s.Contains(out, "User not found.")
}

func (s *SessionIntegrationSuite) TestCreateAssignsUnusedIDs() {
	s.run("1 Ann ann@x.com US 1 Bob bob@x.com DE 4 2 1 Cid cid@x.com FR 5")

	rows := s.listing()
	s.Require().Len(rows, 2)
	s.Equal("1 | Ann | ann@x.com | US", rows[0])
	s.Equal("3 | Cid | cid@x.com | FR", rows[1])
}

func (s *SessionIntegrationSuite) TestMissingIDLeavesRecordsUntouched() {
	s.run("1 Ann ann@x.com US 1 Bob bob@x.com DE 5")
	before := s.listing()

	out := s.run("3 42 ghost@x.com 4 42 5")

	s.Equal(2, strings.Count(out, "User not found."))
	s.Equal(before, s.listing())
}

func (s *SessionIntegrationSuite) TestUpdateOnlyChangesEmail() {
	s.run("1 Ann ann@x.com US 1 Bob bob@x.com DE 3 2 robert@x.com 5")

	s.Equal([]string{
		"1 | Ann | ann@x.com | US",
		"2 | Bob | robert@x.com | DE",
	}, s.listing())
}

func (s *SessionIntegrationSuite) TestDatabaseErrorDoesNotEndSession() {
	s.Require().NoError(s.db.Migrator().DropTable(&gormrepo.UserSchema{}))

	out := s.run("2 1 Ann ann@x.com US 5")

	s.Equal(2, strings.Count(out, "Error: failed to"))
	s.True(strings.HasSuffix(out, "Exiting program.\n"))
}
