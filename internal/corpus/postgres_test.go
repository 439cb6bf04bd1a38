package corpus

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"skill-match-workers/internal/common/errors"
	"skill-match-workers/internal/common/logger"
	"skill-match-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	userColumns    = []string{"id", "fullName", "email", "skills", "interests"}
	projectColumns = []string{"id", "title", "description", "skills", "createdAt", "views", "likes",
		"authorId", "authorName", "authorEmail", "members"}
	statColumns = []string{"skillTitle", "user_count", "total_users"}
)

func newMockProvider(t *testing.T, source ProjectSource) (*PostgresProvider, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	p := NewPostgresProvider(db, source, logger.NewTestLogger(t))
	p.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return p, mock
}

func expectUsers(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT u.id`).WillReturnRows(sqlmock.NewRows(userColumns).
		AddRow("u1", "Ada", "ada@example.com",
			[]byte(`[{"title":"Go","description":null,"portfolio":"https://ada.dev"}]`),
			[]byte(`[{"title":"Backend","level":"High"}]`)).
		AddRow("u2", "Bob", nil, []byte(`[]`), []byte(`[]`)))
}

func TestPostgresProvider_LoadSnapshot(t *testing.T) {
	p, mock := newMockProvider(t, nil)
	created := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

	expectUsers(mock)
	mock.ExpectQuery(`SELECT p.id`).WillReturnRows(sqlmock.NewRows(projectColumns).
		AddRow("p1", "API", "desc", `{go,"machine learning"}`, created, int64(10), int64(2),
			"u2", "Bob", "bob@example.com", []byte(`[{"userId":"u3","name":"Cy","role":"dev","status":"accepted"}]`)).
		AddRow("p2", "Site", nil, "react, css", nil, nil, nil,
			"u1", "Ada", "ada@example.com", []byte(`[]`)).
		AddRow("p3", "Idea", nil, nil, nil, nil, nil,
			"u1", "Ada", "ada@example.com", []byte(`[]`)))
	mock.ExpectQuery(`SELECT s."skillTitle"`).WillReturnRows(sqlmock.NewRows(statColumns).
		AddRow("Go", int64(1), int64(5)).
		AddRow("React", int64(0), int64(5)))

	snapshot, err := p.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, snapshot.Users, 2)
	assert.Equal(t, "https://ada.dev", snapshot.Users[0].Skills[0].Portfolio)
	assert.Equal(t, models.InterestHigh, snapshot.Users[0].Interests[0].Level)
	assert.Empty(t, snapshot.Users[1].Email)

	require.Len(t, snapshot.Projects, 3)
	p1 := snapshot.Projects[0]
	assert.Equal(t, models.SkillsFromList("go", "machine learning"), p1.Skills)
	require.NotNil(t, p1.CreatedAt)
	assert.True(t, created.Equal(*p1.CreatedAt))
	assert.Equal(t, &models.ProjectStats{Views: 10, Likes: 2}, p1.Stats)
	assert.True(t, p1.HasMember("u3"))

	p2 := snapshot.Projects[1]
	assert.Equal(t, models.SkillsFromText("react, css"), p2.Skills)
	assert.Nil(t, p2.CreatedAt)
	assert.Nil(t, p2.Stats)
	assert.Equal(t, models.SkillsAbsent, snapshot.Projects[2].Skills.Kind)

	assert.Equal(t, 5, snapshot.TotalUsers)
	assert.Len(t, snapshot.SkillCorpus, 2)
	assert.Nil(t, snapshot.IDF)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), snapshot.TakenAt)
}

func TestPostgresProvider_UsersQueryFails(t *testing.T) {
	p, mock := newMockProvider(t, nil)
	mock.ExpectQuery(`SELECT u.id`).WillReturnError(assert.AnError)

	snapshot, err := p.LoadSnapshot(context.Background())
	assert.Nil(t, snapshot)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCorpusUnavailable)

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.True(t, stdErr.Retryable)
}

func TestPostgresProvider_ProjectsQueryFails(t *testing.T) {
	p, mock := newMockProvider(t, nil)
	expectUsers(mock)
	mock.ExpectQuery(`SELECT p.id`).WillReturnError(assert.AnError)

	_, err := p.LoadSnapshot(context.Background())
	assert.ErrorIs(t, err, errors.ErrCorpusUnavailable)
}

func TestPostgresProvider_SkillStatsFailureDegrades(t *testing.T) {
	p, mock := newMockProvider(t, nil)
	expectUsers(mock)
	mock.ExpectQuery(`SELECT p.id`).WillReturnRows(sqlmock.NewRows(projectColumns))
	mock.ExpectQuery(`SELECT s."skillTitle"`).WillReturnError(assert.AnError)

	snapshot, err := p.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, snapshot.IDF)
	assert.Empty(t, snapshot.IDF)
	assert.Equal(t, 2, snapshot.TotalUsers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type staticProjects struct {
	projects []models.Project
	err      error
}

func (s staticProjects) LoadProjects(context.Context) ([]models.Project, error) {
	return s.projects, s.err
}

func TestPostgresProvider_ProjectSourceOverride(t *testing.T) {
	source := staticProjects{projects: []models.Project{{ID: "es-1", AuthorID: "u1"}}}
	p, mock := newMockProvider(t, source)
	expectUsers(mock)
	mock.ExpectQuery(`SELECT s."skillTitle"`).WillReturnRows(sqlmock.NewRows(statColumns))

	snapshot, err := p.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Projects, 1)
	assert.Equal(t, "es-1", snapshot.Projects[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProvider_ProjectSourceErrorKept(t *testing.T) {
	source := staticProjects{err: errors.NewCorpusUnavailableError("elasticsearch", assert.AnError)}
	p, mock := newMockProvider(t, source)
	expectUsers(mock)

	_, err := p.LoadSnapshot(context.Background())
	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, "elasticsearch", stdErr.Metadata["source"])
}

func TestSkillsColumn(t *testing.T) {
	assert.Equal(t, models.SkillsAbsent, skillsColumn(sql.NullString{}).Kind)
	assert.Equal(t, models.SkillsFromList("a", "b c"), skillsColumn(sql.NullString{String: `{a,"b c"}`, Valid: true}))
	assert.Equal(t, models.SkillsFromText(`["go"]`), skillsColumn(sql.NullString{String: `["go"]`, Valid: true}))

	empty := skillsColumn(sql.NullString{String: "{}", Valid: true})
	assert.Equal(t, models.SkillsList, empty.Kind)
	assert.Empty(t, empty.List)
}
