package postgres

import (
	"context"
	"errors"
	"time"

	"devjobs-backend/internal/domain"
	"devjobs-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id, title, company, location, description, salary, experience, job_type, category, posted_date, expiry_date, remote, status, created_at, updated_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func jobFields(job *domain.Job) []any {
	return []any{
		&job.ID, &job.Title, &job.Company, &job.Location, &job.Description,
		&job.Salary, &job.Experience, &job.JobType, &job.Category,
		&job.PostedDate, &job.ExpiryDate, &job.Remote, &job.Status,
		&job.CreatedAt, &job.UpdatedAt,
	}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.Internal(err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO jobs (title, company, location, description, salary, experience, job_type, category, posted_date, expiry_date, remote, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	err = tx.QueryRow(ctx, query,
		job.Title, job.Company, job.Location, job.Description, job.Salary,
		job.Experience, job.JobType, job.Category, job.PostedDate, job.ExpiryDate,
		job.Remote, job.Status, job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
	if err != nil {
		return apperror.Internal(err)
	}

	if err := r.linkSkills(ctx, tx, job); err != nil {
		return err
	}
	if err := r.linkBenefits(ctx, tx, job); err != nil {
		return err
	}
	if err := r.linkRequirements(ctx, tx, job); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *jobRepo) Upsert(ctx context.Context, job *domain.Job) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.Internal(err)
	}
	defer tx.Rollback(ctx)

	// Advisory natural-key lookup: (title, company, location) has no
	// uniqueness constraint, so take the oldest match deterministically.
	var existing domain.Job
	err = tx.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE title = $1 AND company = $2 AND location = $3 ORDER BY id LIMIT 1`,
		job.Title, job.Company, job.Location,
	).Scan(jobFields(&existing)...)

	switch {
	case err == nil:
		// Reuse the stored row; scalar fields are not overwritten.
		existing.Skills = job.Skills
		existing.Benefits = job.Benefits
		existing.Requirements = job.Requirements
		*job = existing
	case errors.Is(err, pgx.ErrNoRows):
		query := `INSERT INTO jobs (title, company, location, description, salary, experience, job_type, category, posted_date, expiry_date, remote, status, created_at, updated_at)
                  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
		err = tx.QueryRow(ctx, query,
			job.Title, job.Company, job.Location, job.Description, job.Salary,
			job.Experience, job.JobType, job.Category, job.PostedDate, job.ExpiryDate,
			job.Remote, job.Status, job.CreatedAt, job.UpdatedAt,
		).Scan(&job.ID)
		if err != nil {
			return apperror.Internal(err)
		}
	default:
		return apperror.Internal(err)
	}

	if err := r.replaceSkills(ctx, tx, job); err != nil {
		return err
	}
	if err := r.replaceBenefits(ctx, tx, job); err != nil {
		return err
	}
	if err := r.replaceRequirements(ctx, tx, job); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *jobRepo) Fetch(ctx context.Context) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(jobFields(&job)...); err != nil {
			return nil, apperror.Internal(err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := r.attachTags(ctx, jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	var job domain.Job
	err := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id).Scan(jobFields(&job)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	jobs := []domain.Job{job}
	if err := r.attachTags(ctx, jobs); err != nil {
		return nil, err
	}
	return &jobs[0], nil
}

func (r *jobRepo) Update(ctx context.Context, id int64, patch *domain.JobPatch) (*domain.Job, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer tx.Rollback(ctx)

	var job domain.Job
	err = tx.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 FOR UPDATE`, id).Scan(jobFields(&job)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	applyPatch(&job, patch)
	job.UpdatedAt = time.Now()

	query := `UPDATE jobs SET
		title = $2,
		company = $3,
		location = $4,
		description = $5,
		salary = $6,
		experience = $7,
		job_type = $8,
		category = $9,
		posted_date = $10,
		expiry_date = $11,
		remote = $12,
		status = $13,
		updated_at = $14
	WHERE id = $1`
	_, err = tx.Exec(ctx, query,
		job.ID, job.Title, job.Company, job.Location, job.Description, job.Salary,
		job.Experience, job.JobType, job.Category, job.PostedDate, job.ExpiryDate,
		job.Remote, job.Status, job.UpdatedAt,
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if patch.Skills != nil {
		job.Skills = patch.Skills
		if err := r.replaceSkills(ctx, tx, &job); err != nil {
			return nil, err
		}
	}
	if patch.Benefits != nil {
		job.Benefits = patch.Benefits
		if err := r.replaceBenefits(ctx, tx, &job); err != nil {
			return nil, err
		}
	}
	if patch.Requirements != nil {
		job.Requirements = patch.Requirements
		if err := r.replaceRequirements(ctx, tx, &job); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.Internal(err)
	}

	jobs := []domain.Job{job}
	if err := r.attachTags(ctx, jobs); err != nil {
		return nil, err
	}
	return &jobs[0], nil
}

func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.Internal(err)
	}
	defer tx.Rollback(ctx)

	// Junction rows must go before the job row itself.
	if _, err := tx.Exec(ctx, `DELETE FROM job_skills WHERE job_id = $1`, id); err != nil {
		return apperror.Internal(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM job_benefits WHERE job_id = $1`, id); err != nil {
		return apperror.Internal(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM job_requirements WHERE job_id = $1`, id); err != nil {
		return apperror.Internal(err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("Job not found")
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func applyPatch(job *domain.Job, patch *domain.JobPatch) {
	if patch.Title != nil {
		job.Title = *patch.Title
	}
	if patch.Company != nil {
		job.Company = *patch.Company
	}
	if patch.Location != nil {
		job.Location = *patch.Location
	}
	if patch.Description != nil {
		job.Description = *patch.Description
	}
	if patch.Salary != nil {
		job.Salary = patch.Salary
	}
	if patch.Experience != nil {
		job.Experience = *patch.Experience
	}
	if patch.JobType != nil {
		job.JobType = *patch.JobType
	}
	if patch.Category != nil {
		job.Category = *patch.Category
	}
	if patch.PostedDate != nil {
		job.PostedDate = *patch.PostedDate
	}
	if patch.ExpiryDate != nil {
		job.ExpiryDate = patch.ExpiryDate
	}
	if patch.Remote != nil {
		job.Remote = *patch.Remote
	}
	if patch.Status != nil {
		job.Status = *patch.Status
	}
}

// linkSkills resolves each skill by name (find-or-create) and links it
// to the job. Skill rows are shared across jobs.
func (r *jobRepo) linkSkills(ctx context.Context, tx pgx.Tx, job *domain.Job) error {
	for i := range job.Skills {
		s := &job.Skills[i]
		err := tx.QueryRow(ctx,
			`INSERT INTO skills (name, category, created_at, updated_at) VALUES ($1, $2, now(), now())
             ON CONFLICT (name) DO UPDATE SET updated_at = now()
             RETURNING id, created_at, updated_at`,
			s.Name, s.Category,
		).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return apperror.Internal(err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO job_skills (job_id, skill_id, created_at) VALUES ($1, $2, now()) ON CONFLICT DO NOTHING`,
			job.ID, s.ID,
		)
		if err != nil {
			return apperror.Internal(err)
		}
	}
	return nil
}

func (r *jobRepo) linkBenefits(ctx context.Context, tx pgx.Tx, job *domain.Job) error {
	for i := range job.Benefits {
		b := &job.Benefits[i]
		err := tx.QueryRow(ctx,
			`INSERT INTO benefits (name, category, created_at, updated_at) VALUES ($1, $2, now(), now())
             ON CONFLICT (name) DO UPDATE SET updated_at = now()
             RETURNING id, created_at, updated_at`,
			b.Name, b.Category,
		).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return apperror.Internal(err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO job_benefits (job_id, benefit_id, created_at) VALUES ($1, $2, now()) ON CONFLICT DO NOTHING`,
			job.ID, b.ID,
		)
		if err != nil {
			return apperror.Internal(err)
		}
	}
	return nil
}

// linkRequirements always creates fresh requirement rows; requirements
// are job-specific free text and are never shared or deduplicated.
func (r *jobRepo) linkRequirements(ctx context.Context, tx pgx.Tx, job *domain.Job) error {
	for i := range job.Requirements {
		q := &job.Requirements[i]
		err := tx.QueryRow(ctx,
			`INSERT INTO requirements (description, type, priority, value, unit, created_at, updated_at)
             VALUES ($1, $2, $3, $4, $5, now(), now())
             RETURNING id, created_at, updated_at`,
			q.Description, q.Type, q.Priority, q.Value, q.Unit,
		).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
		if err != nil {
			return apperror.Internal(err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO job_requirements (job_id, requirement_id, created_at) VALUES ($1, $2, now())`,
			job.ID, q.ID,
		)
		if err != nil {
			return apperror.Internal(err)
		}
	}
	return nil
}

func (r *jobRepo) replaceSkills(ctx context.Context, tx pgx.Tx, job *domain.Job) error {
	if _, err := tx.Exec(ctx, `DELETE FROM job_skills WHERE job_id = $1`, job.ID); err != nil {
		return apperror.Internal(err)
	}
	return r.linkSkills(ctx, tx, job)
}

func (r *jobRepo) replaceBenefits(ctx context.Context, tx pgx.Tx, job *domain.Job) error {
	if _, err := tx.Exec(ctx, `DELETE FROM job_benefits WHERE job_id = $1`, job.ID); err != nil {
		return apperror.Internal(err)
	}
	return r.linkBenefits(ctx, tx, job)
}

func (r *jobRepo) replaceRequirements(ctx context.Context, tx pgx.Tx, job *domain.Job) error {
	if _, err := tx.Exec(ctx, `DELETE FROM job_requirements WHERE job_id = $1`, job.ID); err != nil {
		return apperror.Internal(err)
	}
	return r.linkRequirements(ctx, tx, job)
}

// attachTags eagerly loads the three tag sets for the given jobs in
// three batched queries, keyed by job id. Junction metadata stays out
// of the result.
func (r *jobRepo) attachTags(ctx context.Context, jobs []domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	ids := make([]int64, len(jobs))
	byID := make(map[int64]*domain.Job, len(jobs))
	for i := range jobs {
		ids[i] = jobs[i].ID
		byID[jobs[i].ID] = &jobs[i]
		jobs[i].Skills = []domain.Skill{}
		jobs[i].Benefits = []domain.Benefit{}
		jobs[i].Requirements = []domain.Requirement{}
	}

	rows, err := r.db.Query(ctx,
		`SELECT js.job_id, s.id, s.name, s.category, s.created_at, s.updated_at
         FROM job_skills js JOIN skills s ON s.id = js.skill_id
         WHERE js.job_id = ANY($1) ORDER BY s.name`, ids)
	if err != nil {
		return apperror.Internal(err)
	}
	defer rows.Close()
	for rows.Next() {
		var jobID int64
		var s domain.Skill
		if err := rows.Scan(&jobID, &s.ID, &s.Name, &s.Category, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return apperror.Internal(err)
		}
		byID[jobID].Skills = append(byID[jobID].Skills, s)
	}
	if err := rows.Err(); err != nil {
		return apperror.Internal(err)
	}

	rows, err = r.db.Query(ctx,
		`SELECT jb.job_id, b.id, b.name, b.category, b.created_at, b.updated_at
         FROM job_benefits jb JOIN benefits b ON b.id = jb.benefit_id
         WHERE jb.job_id = ANY($1) ORDER BY b.name`, ids)
	if err != nil {
		return apperror.Internal(err)
	}
	defer rows.Close()
	for rows.Next() {
		var jobID int64
		var b domain.Benefit
		if err := rows.Scan(&jobID, &b.ID, &b.Name, &b.Category, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return apperror.Internal(err)
		}
		byID[jobID].Benefits = append(byID[jobID].Benefits, b)
	}
	if err := rows.Err(); err != nil {
		return apperror.Internal(err)
	}

	rows, err = r.db.Query(ctx,
		`SELECT jr.job_id, q.id, q.description, q.type, q.priority, q.value, q.unit, q.created_at, q.updated_at
         FROM job_requirements jr JOIN requirements q ON q.id = jr.requirement_id
         WHERE jr.job_id = ANY($1) ORDER BY q.id`, ids)
	if err != nil {
		return apperror.Internal(err)
	}
	defer rows.Close()
	for rows.Next() {
		var jobID int64
		var q domain.Requirement
		if err := rows.Scan(&jobID, &q.ID, &q.Description, &q.Type, &q.Priority, &q.Value, &q.Unit, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return apperror.Internal(err)
		}
		byID[jobID].Requirements = append(byID[jobID].Requirements, q)
	}
	if err := rows.Err(); err != nil {
		return apperror.Internal(err)
	}

	return nil
}
