package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"skill-match-workers/internal/common/errors"
	"skill-match-workers/internal/common/logger"
	"skill-match-workers/internal/models"

	"github.com/lib/pq"
)

const usersQuery = `
SELECT u.id, u."fullName", u.email,
       COALESCE(
           json_agg(
               json_build_object(
                   'title', s."skillTitle",
                   'description', us.description,
                   'portfolio', us.portfolio
               )
           ) FILTER (WHERE s.id IS NOT NULL),
           '[]'::json
       ) AS skills,
       COALESCE(
           (SELECT json_agg(json_build_object('title', i."interestTitle", 'level', ui."interestLevel"))
              FROM "userInterest" ui
              INNER JOIN "interest" i ON i.id = ui."interestId"
             WHERE ui."userId" = u.id),
           '[]'::json
       ) AS interests
FROM "user" u
LEFT JOIN "userSkill" us ON u.id = us."userId"
LEFT JOIN "skill" s ON us."skillId" = s.id
GROUP BY u.id
ORDER BY u.id`

const projectsQuery = `
SELECT p.id, p.title, p.description, p.skills::text, p."createdAt", p.views, p.likes,
       p."authorId", u."fullName" AS "authorName", u.email AS "authorEmail",
       COALESCE(
           json_agg(
               json_build_object(
                   'userId', pm."userId",
                   'name', mu."fullName",
                   'role', pm.role,
                   'status', pm.status
               )
           ) FILTER (WHERE pm."userId" IS NOT NULL),
           '[]'::json
       ) AS members
FROM "post" p
INNER JOIN "user" u ON p."authorId" = u.id
LEFT JOIN "post_member" pm ON p.id = pm."projectId"
LEFT JOIN "user" mu ON pm."userId" = mu.id
GROUP BY p.id, u."fullName", u.email
ORDER BY p."createdAt" DESC`

const skillStatsQuery = `
SELECT s."skillTitle",
       COUNT(DISTINCT us."userId") AS user_count,
       (SELECT COUNT(DISTINCT id) FROM "user") AS total_users
FROM "skill" s
LEFT JOIN "userSkill" us ON s.id = us."skillId"
GROUP BY s.id, s."skillTitle"`

// PostgresProvider reads the whole corpus with three queries. Projects come
// from the optional ProjectSource instead when one is set.
type PostgresProvider struct {
	db       *sql.DB
	projects ProjectSource
	logger   logger.Logger
	now      func() time.Time
}

func NewPostgresProvider(db *sql.DB, projects ProjectSource, log logger.Logger) *PostgresProvider {
	return &PostgresProvider{
		db:       db,
		projects: projects,
		logger:   logger.Component(log, "corpus-postgres"),
		now:      time.Now,
	}
}

func (p *PostgresProvider) LoadSnapshot(ctx context.Context) (*models.CorpusSnapshot, error) {
	users, err := p.loadUsers(ctx)
	if err != nil {
		return nil, errors.NewCorpusUnavailableError("postgres", err)
	}

	var projects []models.Project
	if p.projects != nil {
		projects, err = p.projects.LoadProjects(ctx)
	} else {
		projects, err = p.loadProjects(ctx)
	}
	if err != nil {
		if _, ok := errors.AsStandardError(err); ok {
			return nil, err
		}
		return nil, errors.NewCorpusUnavailableError("postgres", err)
	}

	snapshot := &models.CorpusSnapshot{
		Users:      users,
		Projects:   projects,
		TotalUsers: len(users),
		TakenAt:    p.now().UTC(),
	}

	stats, totalUsers, err := p.loadSkillStats(ctx)
	if err != nil {
		p.logger.Warn("Skill statistics unavailable, using neutral IDF weights", map[string]interface{}{
			"error": err.Error(),
		})
		snapshot.IDF = models.IDFMap{}
		return snapshot, nil
	}
	snapshot.SkillCorpus = stats
	if totalUsers > 0 {
		snapshot.TotalUsers = totalUsers
	}
	return snapshot, nil
}

func (p *PostgresProvider) loadUsers(ctx context.Context) ([]models.User, error) {
	rows, err := p.db.QueryContext(ctx, usersQuery)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var (
			u                 models.User
			email             sql.NullString
			skills, interests []byte
		)
		if err := rows.Scan(&u.ID, &u.FullName, &email, &skills, &interests); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Email = email.String
		if err := decodeJSONColumn(skills, &u.Skills); err != nil {
			return nil, fmt.Errorf("decode skills of user %s: %w", u.ID, err)
		}
		if err := decodeJSONColumn(interests, &u.Interests); err != nil {
			return nil, fmt.Errorf("decode interests of user %s: %w", u.ID, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (p *PostgresProvider) loadProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := p.db.QueryContext(ctx, projectsQuery)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var (
			pr                      models.Project
			description, skills     sql.NullString
			authorName, authorEmail sql.NullString
			createdAt               sql.NullTime
			views, likes            sql.NullInt64
			members                 []byte
		)
		if err := rows.Scan(&pr.ID, &pr.Title, &description, &skills, &createdAt, &views, &likes,
			&pr.AuthorID, &authorName, &authorEmail, &members); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}

		pr.Description = description.String
		pr.AuthorName = authorName.String
		pr.AuthorEmail = authorEmail.String
		pr.Skills = skillsColumn(skills)
		if createdAt.Valid {
			t := createdAt.Time
			pr.CreatedAt = &t
		}
		if views.Valid || likes.Valid {
			pr.Stats = &models.ProjectStats{Views: int(views.Int64), Likes: int(likes.Int64)}
		}
		if err := decodeJSONColumn(members, &pr.Members); err != nil {
			return nil, fmt.Errorf("decode members of project %s: %w", pr.ID, err)
		}
		projects = append(projects, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

func (p *PostgresProvider) loadSkillStats(ctx context.Context) ([]models.SkillStat, int, error) {
	rows, err := p.db.QueryContext(ctx, skillStatsQuery)
	if err != nil {
		return nil, 0, fmt.Errorf("query skill stats: %w", err)
	}
	defer rows.Close()

	var (
		stats      []models.SkillStat
		totalUsers int
	)
	for rows.Next() {
		var s models.SkillStat
		if err := rows.Scan(&s.Title, &s.UserCount, &totalUsers); err != nil {
			return nil, 0, fmt.Errorf("scan skill stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate skill stats: %w", err)
	}
	return stats, totalUsers, nil
}

// skillsColumn keeps the stored representation: NULL is absent, a Postgres
// array literal becomes a list, anything else stays text.
func skillsColumn(raw sql.NullString) models.SkillsField {
	if !raw.Valid {
		return models.SkillsField{}
	}
	text := strings.TrimSpace(raw.String)
	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		var arr pq.StringArray
		if err := arr.Scan(text); err == nil {
			return models.SkillsFromList(arr...)
		}
	}
	return models.SkillsFromText(raw.String)
}

func decodeJSONColumn(raw []byte, dst interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
