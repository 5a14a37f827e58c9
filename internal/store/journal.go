package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// eventRepo implements EventRepo with raw SQL.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO answer_events
		(sequence, session_id, activity_id, question_id, answer, verdict, correct_units, total_units, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.ActivityID, data.QuestionID, data.Answer,
		data.Verdict, data.CorrectUnits, data.TotalUnits, stamp(data.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendActivityEvent(ctx context.Context, data ActivityEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO activity_events
		(sequence, session_id, activity_id, action, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.ActivityID, string(data.Action), stamp(data.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("save %s event: %w", data.Action, err)
	}
	return nil
}

func (r *eventRepo) Answers(ctx context.Context, sessionID string, opts QueryOpts) ([]AnswerEvent, error) {
	var (
		where = []string{"session_id = ?"}
		args  = []any{sessionID}
	)
	if opts.ActivityID != "" {
		where = append(where, "activity_id = ?")
		args = append(args, opts.ActivityID)
	}
	if opts.After > 0 {
		where = append(where, "sequence > ?")
		args = append(args, opts.After)
	}

	q := `SELECT sequence, session_id, activity_id, question_id, answer, verdict,
		correct_units, total_units, timestamp
		FROM answer_events WHERE ` + strings.Join(where, " AND ") + ` ORDER BY sequence`
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerEvent
	for rows.Next() {
		var (
			e  AnswerEvent
			ts int64
		)
		if err := rows.Scan(&e.Sequence, &e.SessionID, &e.ActivityID, &e.QuestionID,
			&e.Answer, &e.Verdict, &e.CorrectUnits, &e.TotalUnits, &ts); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		e.Timestamp = time.Unix(0, ts).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) ActivityStats(ctx context.Context, sessionID string) ([]ActivityStat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT activity_id, MIN(first_seq) AS first_seq,
			SUM(attempts), SUM(correct), SUM(resets), SUM(completions)
		FROM (
			SELECT activity_id, MIN(sequence) AS first_seq,
				COUNT(*) AS attempts,
				SUM(CASE WHEN verdict = 'correct' THEN 1 ELSE 0 END) AS correct,
				0 AS resets, 0 AS completions
			FROM answer_events WHERE session_id = ? GROUP BY activity_id
			UNION ALL
			SELECT activity_id, MIN(sequence),
				0, 0,
				SUM(CASE WHEN action = 'reset' THEN 1 ELSE 0 END),
				SUM(CASE WHEN action = 'completed' THEN 1 ELSE 0 END)
			FROM activity_events WHERE session_id = ? GROUP BY activity_id
		)
		GROUP BY activity_id
		ORDER BY first_seq`, sessionID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query activity stats: %w", err)
	}
	defer rows.Close()

	var out []ActivityStat
	for rows.Next() {
		var (
			s        ActivityStat
			firstSeq int64
		)
		if err := rows.Scan(&s.ActivityID, &firstSeq, &s.Attempts, &s.Correct, &s.Resets, &s.Completions); err != nil {
			return nil, fmt.Errorf("scan activity stat: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func stamp(t time.Time) int64 {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UnixNano()
}
