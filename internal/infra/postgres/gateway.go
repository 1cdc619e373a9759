package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"survey-assessment-service/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Gateway is the thin client over the hosted relational store. It exposes the
// row-level operations the flows need: get-one-or-none, single-row insert and
// ordered select over the participants and survey_responses tables.
type Gateway struct {
	pool *pgxpool.Pool
}

func NewGateway(pool *pgxpool.Pool) *Gateway {
	return &Gateway{pool: pool}
}

func (g *Gateway) GetParticipantByUsername(ctx context.Context, username string) (*domain.Participant, error) {
	var p domain.Participant
	err := g.pool.QueryRow(ctx,
		`SELECT id, username, created_at FROM participants WHERE username=$1 LIMIT 1`,
		username,
	).Scan(&p.ID, &p.Username, &p.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select participant: %w", err)
	}
	return &p, nil
}

func (g *Gateway) InsertParticipant(ctx context.Context, p domain.Participant) error {
	_, err := g.pool.Exec(ctx,
		`INSERT INTO participants (id, username, created_at) VALUES ($1, $2, $3)`,
		p.ID, p.Username, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert participant: %w", err)
	}
	return nil
}

func (g *Gateway) GetResponseByParticipantID(ctx context.Context, participantID string) (*domain.SurveyResponse, error) {
	row := g.pool.QueryRow(ctx,
		selectResponseColumns+` FROM survey_responses WHERE participant_id=$1 LIMIT 1`,
		participantID,
	)
	response, err := scanResponse(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select response: %w", err)
	}
	return &response, nil
}

func (g *Gateway) InsertResponse(ctx context.Context, r domain.SurveyResponse) error {
	answers, err := json.Marshal(r.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	_, err = g.pool.Exec(ctx,
		`INSERT INTO survey_responses
			(id, participant_id, username, answers, total_score, max_possible_score, percentage_score, result_category, completed_at)
		VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7, $8, $9)`,
		r.ID, r.ParticipantID, r.Username, string(answers),
		r.TotalScore, r.MaxPossibleScore, r.PercentageScore, r.ResultCategory, r.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert response: %w", err)
	}
	return nil
}

// ListResponses returns every stored response, newest first.
func (g *Gateway) ListResponses(ctx context.Context) ([]domain.SurveyResponse, error) {
	rows, err := g.pool.Query(ctx,
		selectResponseColumns+` FROM survey_responses ORDER BY completed_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("select responses: %w", err)
	}
	defer rows.Close()

	responses := make([]domain.SurveyResponse, 0)
	for rows.Next() {
		response, err := scanResponse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		responses = append(responses, response)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select responses: %w", err)
	}
	return responses, nil
}

const selectResponseColumns = `SELECT id, participant_id, username, answers, total_score, max_possible_score, percentage_score, result_category, completed_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanResponse(row rowScanner) (domain.SurveyResponse, error) {
	var r domain.SurveyResponse
	var rawAnswers []byte
	err := row.Scan(
		&r.ID, &r.ParticipantID, &r.Username, &rawAnswers,
		&r.TotalScore, &r.MaxPossibleScore, &r.PercentageScore, &r.ResultCategory, &r.CompletedAt,
	)
	if err != nil {
		return domain.SurveyResponse{}, err
	}
	if err := json.Unmarshal(rawAnswers, &r.Answers); err != nil {
		return domain.SurveyResponse{}, fmt.Errorf("unmarshal answers: %w", err)
	}
	return r, nil
}
