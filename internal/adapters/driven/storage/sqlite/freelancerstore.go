package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/talenthive-labs/matchengine/internal/core/domain"
	"github.com/talenthive-labs/matchengine/internal/core/ports/driven"
)

// Ensure the store satisfies the repository port.
var _ driven.FreelancerRepository = (*FreelancerStore)(nil)

// FreelancerStore implements driven.FreelancerRepository on top of Store.
type FreelancerStore struct {
	store *Store
}

// FreelancerStore returns a FreelancerRepository backed by this store.
func (s *Store) FreelancerStore() *FreelancerStore {
	return &FreelancerStore{store: s}
}

const freelancerColumns = `id, profession, skills, job_performance, skills_experience,
	responsiveness, fairness_score, hourly_rate, years_of_experience, location`

// All returns every freelancer, ordered by id.
func (f *FreelancerStore) All(ctx context.Context) ([]domain.Freelancer, error) {
	rows, err := f.store.db.QueryContext(ctx,
		`SELECT `+freelancerColumns+` FROM freelancers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying freelancers: %w", err)
	}
	defer rows.Close()

	var out []domain.Freelancer
	for rows.Next() {
		fl, err := scanFreelancer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *fl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating freelancers: %w", err)
	}
	return out, nil
}

// Get returns a freelancer by id, or domain.ErrNotFound.
func (f *FreelancerStore) Get(ctx context.Context, id int64) (*domain.Freelancer, error) {
	row := f.store.db.QueryRowContext(ctx,
		`SELECT `+freelancerColumns+` FROM freelancers WHERE id = ?`, id)

	fl, err := scanFreelancer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fl, nil
}

// GetUser returns the display projection of a user, or domain.ErrNotFound.
func (f *FreelancerStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := f.store.db.QueryRowContext(ctx,
		`SELECT display_name, username FROM users WHERE id = ?`, id,
	).Scan(&u.DisplayName, &u.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user %d: %w", id, err)
	}
	return &u, nil
}

// Put inserts or replaces a freelancer record. Used by seeding tools; the
// engine itself never writes candidates.
func (f *FreelancerStore) Put(ctx context.Context, fl domain.Freelancer) error {
	_, err := f.store.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO freelancers (`+freelancerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fl.ID, fl.Profession, strings.Join(fl.Skills, ","),
		fl.JobPerformance, fl.SkillsExperience, fl.Responsiveness,
		fl.FairnessScore, fl.HourlyRate, fl.YearsOfExperience, fl.Location)
	if err != nil {
		return fmt.Errorf("storing freelancer %d: %w", fl.ID, err)
	}
	return nil
}

// PutUser inserts or replaces a user projection.
func (f *FreelancerStore) PutUser(ctx context.Context, id int64, u domain.User) error {
	_, err := f.store.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO users (id, display_name, username) VALUES (?, ?, ?)`,
		id, u.DisplayName, u.Username)
	if err != nil {
		return fmt.Errorf("storing user %d: %w", id, err)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanFreelancer.
type scanner interface {
	Scan(dest ...any) error
}

// scanFreelancer reads one freelancer row.
func scanFreelancer(row scanner) (*domain.Freelancer, error) {
	var fl domain.Freelancer
	var skills string

	err := row.Scan(&fl.ID, &fl.Profession, &skills, &fl.JobPerformance,
		&fl.SkillsExperience, &fl.Responsiveness, &fl.FairnessScore,
		&fl.HourlyRate, &fl.YearsOfExperience, &fl.Location)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning freelancer: %w", err)
	}

	if skills != "" {
		fl.Skills = strings.Split(skills, ",")
	}
	return &fl, nil
}
