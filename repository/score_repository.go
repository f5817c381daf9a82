package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scorebot/database"
	"scorebot/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ScoreRepository implements the service.ScoreRepository interface
type ScoreRepository struct {
	q queryable
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(db *database.DB) *ScoreRepository {
	return &ScoreRepository{q: db.Pool}
}

// Insert records one point transfer and returns the stored row.
func (r *ScoreRepository) Insert(ctx context.Context, toUserID, fromUserID, channelID, description string, timestamp time.Time) (*models.Score, error) {
	score := &models.Score{
		ScoreID:     uuid.NewString(),
		Timestamp:   timestamp,
		ToUserID:    toUserID,
		FromUserID:  fromUserID,
		ChannelID:   channelID,
		Description: description,
	}

	query := `
		INSERT INTO scores (score_id, timestamp, to_user_id, from_user_id, channel_id, description)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
	`

	if _, err := r.q.Exec(ctx, query,
		score.ScoreID, score.Timestamp, score.ToUserID, score.FromUserID, score.ChannelID, score.Description,
	); err != nil {
		return nil, fmt.Errorf("failed to insert score for user %s: %w", toUserID, err)
	}

	return score, nil
}

// CountByRecipient returns the recipient's derived score in one channel:
// the count of score rows where they are the recipient.
func (r *ScoreRepository) CountByRecipient(ctx context.Context, toUserID, channelID string) (int, error) {
	query := `
		SELECT COUNT(score_id)
		FROM scores
		WHERE to_user_id = $1 AND channel_id = $2
	`

	var count int
	if err := r.q.QueryRow(ctx, query, toUserID, channelID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count scores for user %s: %w", toUserID, err)
	}

	return count, nil
}

// CountByVoterSince returns how many votes a voter has cast since the given
// time. Used by the daily rate limit check.
func (r *ScoreRepository) CountByVoterSince(ctx context.Context, fromUserID string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(score_id)
		FROM scores
		WHERE from_user_id = $1 AND timestamp >= $2
	`

	var count int
	if err := r.q.QueryRow(ctx, query, fromUserID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count daily votes for user %s: %w", fromUserID, err)
	}

	return count, nil
}

// CountForUser returns how many score rows match one user's activity in the
// given direction and channel filter.
func (r *ScoreRepository) CountForUser(ctx context.Context, userID string, direction models.Direction, channels []string) (int, error) {
	args := []any{userID}

	cond := "(to_user_id = $1 OR from_user_id = $1)"
	switch direction {
	case models.DirectionReceived:
		cond = "to_user_id = $1"
	case models.DirectionGiven:
		cond = "from_user_id = $1"
	}
	if channels != nil {
		args = append(args, channels)
		cond += fmt.Sprintf(" AND channel_id = ANY($%d)", len(args))
	}

	var count int
	query := "SELECT COUNT(score_id) FROM scores WHERE " + cond
	if err := r.q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count scores for user %s: %w", userID, err)
	}

	return count, nil
}

// TopScores groups scores by recipient within the window and channel filter,
// ordered by count descending. A nil channels slice means all channels.
func (r *ScoreRepository) TopScores(ctx context.Context, channels []string, start, end time.Time) ([]models.ScoreCount, error) {
	args := []any{start, end}
	query := `
		SELECT to_user_id AS item, COUNT(score_id) AS score
		FROM scores
		WHERE timestamp > $1 AND timestamp < $2
	`
	if channels != nil {
		args = append(args, channels)
		query += fmt.Sprintf(" AND channel_id = ANY($%d)", len(args))
	}
	query += " GROUP BY to_user_id ORDER BY score DESC, item"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get top scores: %w", err)
	}
	defer rows.Close()

	var scores []models.ScoreCount
	for rows.Next() {
		var sc models.ScoreCount
		if err := rows.Scan(&sc.Item, &sc.Score); err != nil {
			return nil, fmt.Errorf("failed to scan score count: %w", err)
		}
		scores = append(scores, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top scores: %w", err)
	}

	return scores, nil
}

// LastVoteWithin returns the most recent score from the voter to the
// recipient in the channel, created at or after the given time, or nil when
// none qualifies.
func (r *ScoreRepository) LastVoteWithin(ctx context.Context, fromUserID, toUserID, channelID string, since time.Time) (*models.Score, error) {
	query := `
		SELECT score_id, timestamp, to_user_id, from_user_id, channel_id, COALESCE(description, '')
		FROM scores
		WHERE from_user_id = $1 AND to_user_id = $2 AND channel_id = $3 AND timestamp >= $4
		ORDER BY timestamp DESC
		LIMIT 1
	`

	var score models.Score
	err := r.q.QueryRow(ctx, query, fromUserID, toUserID, channelID, since).Scan(
		&score.ScoreID,
		&score.Timestamp,
		&score.ToUserID,
		&score.FromUserID,
		&score.ChannelID,
		&score.Description,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last vote by user %s: %w", fromUserID, err)
	}

	return &score, nil
}

// Delete removes one score row. Reversal is modeled as deletion, never as a
// negative-value row.
func (r *ScoreRepository) Delete(ctx context.Context, scoreID string) error {
	query := `DELETE FROM scores WHERE score_id = $1`

	result, err := r.q.Exec(ctx, query, scoreID)
	if err != nil {
		return fmt.Errorf("failed to delete score %s: %w", scoreID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("score %s not found", scoreID)
	}

	return nil
}

const feedSelect = `
	SELECT s.timestamp, ut.user_name AS to_user, uf.user_name AS from_user, c.channel_name, COALESCE(s.description, '')
	FROM scores s
	INNER JOIN channels c ON s.channel_id = c.channel_id
	INNER JOIN users ut ON s.to_user_id = ut.user_id
	INNER JOIN users uf ON s.from_user_id = uf.user_id
`

const feedCount = `
	SELECT COUNT(*)
	FROM scores s
	INNER JOIN channels c ON s.channel_id = c.channel_id
	INNER JOIN users ut ON s.to_user_id = ut.user_id
	INNER JOIN users uf ON s.from_user_id = uf.user_id
`

// Feed returns one page of the activity feed, newest first, along with the
// total number of matching rows. Every filter value travels as a bound
// parameter.
func (r *ScoreRepository) Feed(ctx context.Context, q models.FeedQuery) (int, []models.FeedEntry, error) {
	args := []any{q.Start, q.End}
	conds := []string{"s.timestamp > $1", "s.timestamp < $2"}

	if q.Channels != nil {
		args = append(args, q.Channels)
		conds = append(conds, fmt.Sprintf("s.channel_id = ANY($%d)", len(args)))
	}
	if q.Search != "" {
		args = append(args, q.Search)
		conds = append(conds, fmt.Sprintf("uf.user_name ILIKE '%%' || $%d || '%%'", len(args)))
	}

	where := " WHERE " + strings.Join(conds, " AND ")

	var count int
	if err := r.q.QueryRow(ctx, feedCount+where, args...).Scan(&count); err != nil {
		return 0, nil, fmt.Errorf("failed to count feed rows: %w", err)
	}

	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)
	query := feedSelect + where + fmt.Sprintf(" ORDER BY s.timestamp DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	entries, err := r.queryFeed(ctx, query, args...)
	if err != nil {
		return 0, nil, err
	}

	return count, entries, nil
}

// UserFeed returns one user's given/received/combined activity, newest first,
// with the total matching count. PageSize 0 disables pagination.
func (r *ScoreRepository) UserFeed(ctx context.Context, q models.UserFeedQuery) (int, []models.FeedEntry, error) {
	args := []any{q.UserID}

	var conds []string
	switch q.Direction {
	case models.DirectionReceived:
		conds = append(conds, "s.to_user_id = $1")
	case models.DirectionGiven:
		conds = append(conds, "s.from_user_id = $1")
	default:
		conds = append(conds, "(s.to_user_id = $1 OR s.from_user_id = $1)")
	}

	if q.Channels != nil {
		args = append(args, q.Channels)
		conds = append(conds, fmt.Sprintf("s.channel_id = ANY($%d)", len(args)))
	}
	if q.Search != "" {
		args = append(args, q.Search)
		conds = append(conds, fmt.Sprintf("(uf.user_name ILIKE '%%' || $%d || '%%' OR ut.user_name ILIKE '%%' || $%d || '%%')", len(args), len(args)))
	}

	where := " WHERE " + strings.Join(conds, " AND ")

	var count int
	if err := r.q.QueryRow(ctx, feedCount+where, args...).Scan(&count); err != nil {
		return 0, nil, fmt.Errorf("failed to count user feed rows: %w", err)
	}

	query := feedSelect + where + " ORDER BY s.timestamp DESC"
	if q.PageSize > 0 {
		args = append(args, q.PageSize, (q.Page-1)*q.PageSize)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	entries, err := r.queryFeed(ctx, query, args...)
	if err != nil {
		return 0, nil, err
	}

	return count, entries, nil
}

func (r *ScoreRepository) queryFeed(ctx context.Context, query string, args ...any) ([]models.FeedEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query feed: %w", err)
	}
	defer rows.Close()

	var entries []models.FeedEntry
	for rows.Next() {
		var e models.FeedEntry
		if err := rows.Scan(&e.Timestamp, &e.ToUser, &e.FromUser, &e.ChannelName, &e.Description); err != nil {
			return nil, fmt.Errorf("failed to scan feed entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feed: %w", err)
	}

	return entries, nil
}

// ActivityByDay buckets one user's activity per UTC calendar day. Direction
// selects whether the user is counted as recipient or voter.
func (r *ScoreRepository) ActivityByDay(ctx context.Context, userID string, direction models.Direction, channels []string) ([]models.DayCount, error) {
	args := []any{userID}

	cond := "s.to_user_id = $1"
	if direction == models.DirectionGiven {
		cond = "s.from_user_id = $1"
	}
	if channels != nil {
		args = append(args, channels)
		cond += fmt.Sprintf(" AND s.channel_id = ANY($%d)", len(args))
	}

	query := `
		SELECT to_char(s.timestamp AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
		FROM scores s
		WHERE ` + cond + `
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily activity for user %s: %w", userID, err)
	}
	defer rows.Close()

	var days []models.DayCount
	for rows.Next() {
		var d models.DayCount
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, fmt.Errorf("failed to scan day count: %w", err)
		}
		days = append(days, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate day counts: %w", err)
	}

	return days, nil
}

// ReceivedBreakdown groups the points one user has received by voter display
// name, largest contributor first.
func (r *ScoreRepository) ReceivedBreakdown(ctx context.Context, userID string, channels []string) ([]models.VoterBreakdown, error) {
	args := []any{userID}

	cond := "s.to_user_id = $1"
	if channels != nil {
		args = append(args, channels)
		cond += fmt.Sprintf(" AND s.channel_id = ANY($%d)", len(args))
	}

	query := `
		SELECT uf.user_name AS name, COUNT(*) AS value
		FROM scores s
		INNER JOIN users uf ON s.from_user_id = uf.user_id
		WHERE ` + cond + `
		GROUP BY uf.user_name
		ORDER BY value DESC, name
	`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get voter breakdown for user %s: %w", userID, err)
	}
	defer rows.Close()

	var breakdown []models.VoterBreakdown
	for rows.Next() {
		var b models.VoterBreakdown
		if err := rows.Scan(&b.Name, &b.Value); err != nil {
			return nil, fmt.Errorf("failed to scan voter breakdown: %w", err)
		}
		breakdown = append(breakdown, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate voter breakdown: %w", err)
	}

	return breakdown, nil
}
