package matching

import (
	"context"
	"fmt"
	"sort"
	"time"

	"skill-match-workers/internal/common/errors"
	"skill-match-workers/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// RankingOptions controls one forward ranking call. A zero Limit means the
// default; MinScore is a fraction in [0,1].
type RankingOptions struct {
	Limit       int
	MinScore    float64
	SearchQuery string
}

// candidate is a project that survived pre-filtering, with its search
// result computed once.
type candidate struct {
	project models.Project
	search  SearchResult
}

// userContext is the per-call state shared read-only by every candidate.
type userContext struct {
	vector    UserSkillVector
	interests InterestMap
	idf       models.IDFMap
	regime    Regime
	hasQuery  bool
	now       time.Time
}

// RankProjectsForUser scores every project not authored by userID and
// returns those at or above MinScore, best first.
func (e *Engine) RankProjectsForUser(ctx context.Context, userID string, snapshot *models.CorpusSnapshot, opts RankingOptions) (*models.RankingResponse, error) {
	if snapshot == nil {
		return nil, errors.NewCorpusUnavailableError("snapshot", fmt.Errorf("no snapshot for user %s", userID))
	}

	start := time.Now()
	hasQuery := HasQuery(opts.SearchQuery)
	regime := SelectRegime(hasQuery)
	limit := e.effectiveLimit(opts.Limit)

	ctx, span := e.tracer.Start(ctx, "matching.RankProjectsForUser", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("matching.regime", string(regime.Name)),
		attribute.Int("matching.limit", limit),
	))
	defer span.End()

	uc := e.userContext(userID, snapshot, regime, hasQuery)
	candidates := e.candidates(userID, snapshot.Projects, opts.SearchQuery, hasQuery)

	meta := models.RankingMeta{
		TotalProjects:     len(candidates),
		UserSkillCount:    len(uc.vector),
		UserInterestCount: len(uc.interests),
		Algorithm:         regime.Algorithm,
		Timestamp:         uc.now.UTC(),
		RequestID:         e.newID(),
	}
	if hasQuery {
		q := opts.SearchQuery
		meta.SearchQuery = &q
	}

	if len(candidates) == 0 {
		meta.Message = models.MessageNoProjects
		if hasQuery {
			meta.Message = models.MessageNoSearchResults
		}
		span.SetAttributes(attribute.Int("matching.candidates", 0))
		return &models.RankingResponse{Matches: []models.MatchResult{}, Meta: meta}, nil
	}

	scored, err := e.scoreAll(ctx, candidates, uc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scoring failed")
		e.logger.Error("Ranking failed", map[string]interface{}{
			"userId":     userID,
			"candidates": len(candidates),
			"error":      err.Error(),
		})
		return nil, errors.NewMatchComputationFailedError(err)
	}

	matches := selectTop(scored, opts.MinScore, limit)
	meta.MatchedProjects = len(matches)

	span.SetAttributes(
		attribute.Int("matching.candidates", len(candidates)),
		attribute.Int("matching.matched", len(matches)),
	)
	e.logger.Info("Ranking completed", map[string]interface{}{
		"userId":     userID,
		"candidates": len(candidates),
		"matched":    len(matches),
		"algorithm":  regime.Algorithm,
		"duration":   time.Since(start).String(),
	})

	return &models.RankingResponse{Matches: matches, Meta: meta}, nil
}

func (e *Engine) userContext(userID string, snapshot *models.CorpusSnapshot, regime Regime, hasQuery bool) *userContext {
	user, found := snapshot.FindUser(userID)
	if !found {
		e.logger.Warn("User not in corpus snapshot, ranking without profile", map[string]interface{}{
			"userId": userID,
		})
	}
	return &userContext{
		vector:    BuildUserVector(user.Skills),
		interests: BuildInterestMap(user.Interests),
		idf:       ComputeIDF(snapshot),
		regime:    regime,
		hasQuery:  hasQuery,
		now:       e.now(),
	}
}

// candidates drops the user's own projects and, with a query, every project
// the query does not touch.
func (e *Engine) candidates(userID string, projects []models.Project, query string, hasQuery bool) []candidate {
	out := make([]candidate, 0, len(projects))
	for _, p := range projects {
		if p.AuthorID == userID {
			continue
		}
		if _, malformed := ParseSkills(p.Skills); malformed {
			e.logger.Warn("Malformed project skills, treating as empty", map[string]interface{}{
				"projectId": p.ID,
			})
		}
		search := SearchRelevance(p, query)
		if hasQuery && search.Score <= 0 {
			continue
		}
		out = append(out, candidate{project: p, search: search})
	}
	return out
}

// scoreAll scores sequentially for small pools and with a bounded errgroup
// above the configured threshold. Results keep candidate order either way.
func (e *Engine) scoreAll(ctx context.Context, candidates []candidate, uc *userContext) ([]models.MatchResult, error) {
	results := make([]models.MatchResult, len(candidates))

	parallelism := e.config.Parallelism
	if parallelism <= 1 || len(candidates) < e.config.ParallelThreshold {
		for i := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = uc.score(candidates[i])
		}
		return results, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i := range candidates {
		i := i
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = uc.score(candidates[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (uc *userContext) score(c candidate) models.MatchResult {
	projectSkills := ExtractProjectSkills(c.project)

	signals := Signals{
		SkillSimilarity: CosineSimilarity(uc.vector, projectSkills, uc.idf),
		Recency:         RecencyScore(c.project.CreatedAt, uc.now),
		Engagement:      EngagementScore(c.project.Stats),
	}
	var interestMatches int
	signals.InterestBoost, interestMatches = InterestBoost(c.project, uc.interests)
	if uc.hasQuery {
		signals.SearchRelevance = c.search.Score
	}

	matching := make([]string, 0, len(projectSkills))
	for _, s := range projectSkills {
		if _, ok := uc.vector[s]; ok {
			matching = append(matching, s)
		}
	}

	details := models.MatchDetails{
		SkillSimilarity:     roundPercent(signals.SkillSimilarity),
		InterestBoost:       roundPercent(signals.InterestBoost),
		RecencyBonus:        roundPercent(signals.Recency),
		EngagementBonus:     roundPercent(signals.Engagement),
		MatchingSkills:      matching,
		MatchingSkillCount:  len(matching),
		TotalRequiredSkills: len(projectSkills),
		InterestMatches:     interestMatches,
	}
	if uc.hasQuery {
		relevance := roundPercent(signals.SearchRelevance)
		details.SearchRelevance = &relevance
		details.SearchMatches = c.search.Matches
		details.SearchKeywords = c.search.Keywords
	}

	return models.MatchResult{
		Project:      c.project,
		MatchScore:   roundPercent(uc.regime.Weights.Compose(signals)),
		MatchDetails: details,
	}
}

// selectTop keeps results with matchScore >= minScore*100, sorts them
// stably by descending matchScore and truncates to limit.
func selectTop(scored []models.MatchResult, minScore float64, limit int) []models.MatchResult {
	threshold := minScore * 100
	kept := make([]models.MatchResult, 0, len(scored))
	for _, r := range scored {
		if float64(r.MatchScore) >= threshold {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].MatchScore > kept[j].MatchScore
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}
