package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

const (
	JobStatusActive = "Active"
	JobStatusClosed = "Closed"
	JobStatusDraft  = "Draft"
)

type Job struct {
	ID           int64         `json:"id"`
	Title        string        `json:"title"`
	Company      string        `json:"company"`
	Location     string        `json:"location"`
	Description  string        `json:"description"`
	Salary       *string       `json:"salary"`
	Experience   string        `json:"experience"`
	JobType      string        `json:"jobType"`
	Category     string        `json:"category"`
	PostedDate   time.Time     `json:"postedDate"`
	ExpiryDate   *time.Time    `json:"expiryDate"`
	Remote       bool          `json:"remote"`
	Status       string        `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	Skills       []Skill       `json:"skills"`
	Benefits     []Benefit     `json:"benefits"`
	Requirements []Requirement `json:"requirements"`
}

// JobInput is the create/bulk payload. Skill and benefit entries are
// vocabulary names; categories are derived server-side.
type JobInput struct {
	Title        string             `json:"title" binding:"required"`
	Company      string             `json:"company" binding:"required"`
	Location     string             `json:"location" binding:"required"`
	Description  string             `json:"description" binding:"required"`
	Salary       *string            `json:"salary"`
	Experience   string             `json:"experience"`
	JobType      string             `json:"jobType" binding:"omitempty,oneof=Full-time Part-time Contract Internship Freelance"`
	Category     string             `json:"category" binding:"omitempty,oneof=Frontend Backend 'Full Stack' DevOps Mobile 'Data Science' AI/ML QA UI/UX Other"`
	PostedDate   *time.Time         `json:"postedDate"`
	ExpiryDate   *time.Time         `json:"expiryDate"`
	Remote       bool               `json:"remote"`
	Status       string             `json:"status" binding:"omitempty,oneof=Active Closed Draft"`
	Skills       []string           `json:"skills"`
	Benefits     []string           `json:"benefits"`
	Requirements []RequirementInput `json:"requirements" binding:"omitempty,dive"`
}

// JobUpdateInput is the partial update payload. Nil fields are left
// untouched; a non-nil tag slice fully replaces the current set.
type JobUpdateInput struct {
	Title        *string            `json:"title" binding:"omitempty,min=1"`
	Company      *string            `json:"company" binding:"omitempty,min=1"`
	Location     *string            `json:"location" binding:"omitempty,min=1"`
	Description  *string            `json:"description" binding:"omitempty,min=1"`
	Salary       *string            `json:"salary"`
	Experience   *string            `json:"experience"`
	JobType      *string            `json:"jobType" binding:"omitempty,oneof=Full-time Part-time Contract Internship Freelance"`
	Category     *string            `json:"category" binding:"omitempty,oneof=Frontend Backend 'Full Stack' DevOps Mobile 'Data Science' AI/ML QA UI/UX Other"`
	PostedDate   *time.Time         `json:"postedDate"`
	ExpiryDate   *time.Time         `json:"expiryDate"`
	Remote       *bool              `json:"remote"`
	Status       *string            `json:"status" binding:"omitempty,oneof=Active Closed Draft"`
	Skills       []string           `json:"skills"`
	Benefits     []string           `json:"benefits"`
	Requirements []RequirementInput `json:"requirements" binding:"omitempty,dive"`
}

// JobPatch is the repository-level shape of a partial update: resolved
// tag entities instead of raw vocabulary names.
type JobPatch struct {
	Title        *string
	Company      *string
	Location     *string
	Description  *string
	Salary       *string
	Experience   *string
	JobType      *string
	Category     *string
	PostedDate   *time.Time
	ExpiryDate   *time.Time
	Remote       *bool
	Status       *string
	Skills       []Skill
	Benefits     []Benefit
	Requirements []Requirement
}

type JobRepository interface {
	// Create persists the job row, its tag entities and junction links
	// in a single transaction and fills in generated ids.
	Create(ctx context.Context, job *Job) error
	// Upsert reuses an existing job matching (title, company, location)
	// without overwriting its scalar fields, or creates it, then fully
	// replaces the three tag sets. One transaction per call.
	Upsert(ctx context.Context, job *Job) error
	Fetch(ctx context.Context) ([]Job, error)
	GetByID(ctx context.Context, id int64) (*Job, error)
	Update(ctx context.Context, id int64, patch *JobPatch) (*Job, error)
	// Delete clears the three junction sets before removing the job row.
	Delete(ctx context.Context, id int64) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, input *JobInput) (*Job, error)
	BulkUpsertJobs(ctx context.Context, inputs []JobInput) ([]Job, error)
	GetAllJobs(ctx context.Context) ([]Job, error)
	GetJobByID(ctx context.Context, id int64) (*Job, error)
	UpdateJob(ctx context.Context, id int64, input *JobUpdateInput) (*Job, error)
	DeleteJob(ctx context.Context, id int64) error
}
