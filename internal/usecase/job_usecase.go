package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"devjobs-backend/internal/domain"
	"devjobs-backend/internal/vocabulary"
	"devjobs-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
)

const cacheKeyAllJobs = "jobs:all"

type jobUsecase struct {
	jobRepo  domain.JobRepository
	vocab    *vocabulary.Registry
	validate *validator.Validate
	cache    *redis.Client // nil disables caching
	cacheTTL time.Duration
}

func NewJobUsecase(jobRepo domain.JobRepository, vocab *vocabulary.Registry, validate *validator.Validate, cache *redis.Client, cacheTTL time.Duration) domain.JobUsecase {
	// Input structs carry gin-style `binding` tags; align the injected
	// validator with them so both layers enforce the same rules.
	validate.SetTagName("binding")
	return &jobUsecase{
		jobRepo:  jobRepo,
		vocab:    vocab,
		validate: validate,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, input *domain.JobInput) (*domain.Job, error) {
	job, err := u.buildJob(input)
	if err != nil {
		return nil, err
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	u.invalidateCache(ctx, job.ID)
	return job, nil
}

func (u *jobUsecase) BulkUpsertJobs(ctx context.Context, inputs []domain.JobInput) ([]domain.Job, error) {
	// Entries are processed sequentially, each in its own transaction.
	// A validation failure aborts the remainder of the batch; entries
	// already processed stay committed.
	processed := make([]domain.Job, 0, len(inputs))
	for i := range inputs {
		job, err := u.buildJob(&inputs[i])
		if err != nil {
			u.invalidateAll(ctx, processed)
			return nil, apperror.BadRequest(fmt.Sprintf("Job %d: %s", i+1, err.Error()))
		}
		if err := u.jobRepo.Upsert(ctx, job); err != nil {
			u.invalidateAll(ctx, processed)
			return nil, err
		}
		processed = append(processed, *job)
	}

	u.invalidateAll(ctx, processed)
	return processed, nil
}

func (u *jobUsecase) GetAllJobs(ctx context.Context) ([]domain.Job, error) {
	if jobs, ok := u.cachedJobs(ctx, cacheKeyAllJobs); ok {
		return jobs, nil
	}

	jobs, err := u.jobRepo.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	u.cacheSet(ctx, cacheKeyAllJobs, jobs)
	return jobs, nil
}

func (u *jobUsecase) GetJobByID(ctx context.Context, id int64) (*domain.Job, error) {
	key := jobCacheKey(id)
	if jobs, ok := u.cachedJobs(ctx, key); ok && len(jobs) == 1 {
		return &jobs[0], nil
	}

	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.cacheSet(ctx, key, []domain.Job{*job})
	return job, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, id int64, input *domain.JobUpdateInput) (*domain.Job, error) {
	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	patch := &domain.JobPatch{
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		Description: input.Description,
		Salary:      input.Salary,
		Experience:  input.Experience,
		JobType:     input.JobType,
		Category:    input.Category,
		PostedDate:  input.PostedDate,
		ExpiryDate:  input.ExpiryDate,
		Remote:      input.Remote,
		Status:      input.Status,
	}

	if input.Skills != nil {
		skills, err := u.resolveSkills(input.Skills)
		if err != nil {
			return nil, err
		}
		patch.Skills = skills
	}
	if input.Benefits != nil {
		benefits, err := u.resolveBenefits(input.Benefits)
		if err != nil {
			return nil, err
		}
		patch.Benefits = benefits
	}
	if input.Requirements != nil {
		patch.Requirements = normalizeRequirements(input.Requirements)
	}

	job, err := u.jobRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	u.invalidateCache(ctx, id)
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, id int64) error {
	if err := u.jobRepo.Delete(ctx, id); err != nil {
		return err
	}
	u.invalidateCache(ctx, id)
	return nil
}

// buildJob validates the payload against the enum sets and the
// vocabulary registry, then assembles the entity with derived tag
// categories and defaulted fields.
func (u *jobUsecase) buildJob(input *domain.JobInput) (*domain.Job, error) {
	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	skills, err := u.resolveSkills(input.Skills)
	if err != nil {
		return nil, err
	}
	benefits, err := u.resolveBenefits(input.Benefits)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	job := &domain.Job{
		Title:        input.Title,
		Company:      input.Company,
		Location:     input.Location,
		Description:  input.Description,
		Salary:       input.Salary,
		Experience:   input.Experience,
		JobType:      input.JobType,
		Category:     input.Category,
		PostedDate:   now,
		ExpiryDate:   input.ExpiryDate,
		Remote:       input.Remote,
		Status:       input.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
		Skills:       skills,
		Benefits:     benefits,
		Requirements: normalizeRequirements(input.Requirements),
	}
	if input.PostedDate != nil {
		job.PostedDate = *input.PostedDate
	}
	if job.Status == "" {
		job.Status = domain.JobStatusActive
	}
	return job, nil
}

// resolveSkills checks every name against the registry and derives the
// category. The caller never supplies categories.
func (u *jobUsecase) resolveSkills(names []string) ([]domain.Skill, error) {
	skills := make([]domain.Skill, 0, len(names))
	for _, name := range names {
		category, err := u.vocab.SkillCategory(name)
		if err != nil {
			return nil, apperror.BadRequest(fmt.Sprintf(
				"Invalid skill %q. Valid skills are: %s",
				name, strings.Join(u.vocab.SkillValues(), ", "),
			))
		}
		skills = append(skills, domain.Skill{Name: name, Category: category})
	}
	return skills, nil
}

func (u *jobUsecase) resolveBenefits(names []string) ([]domain.Benefit, error) {
	benefits := make([]domain.Benefit, 0, len(names))
	for _, name := range names {
		category, err := u.vocab.BenefitCategory(name)
		if err != nil {
			return nil, apperror.BadRequest(fmt.Sprintf(
				"Invalid benefit %q. Valid benefits are: %s",
				name, strings.Join(u.vocab.BenefitValues(), ", "),
			))
		}
		benefits = append(benefits, domain.Benefit{Name: name, Category: category})
	}
	return benefits, nil
}

// normalizeRequirements applies the type/priority defaults. Bare string
// entries were already converted to {description} during unmarshalling.
func normalizeRequirements(inputs []domain.RequirementInput) []domain.Requirement {
	reqs := make([]domain.Requirement, 0, len(inputs))
	for _, in := range inputs {
		req := domain.Requirement{
			Description: in.Description,
			Type:        in.Type,
			Priority:    in.Priority,
			Value:       in.Value,
			Unit:        in.Unit,
		}
		if req.Type == "" {
			req.Type = domain.RequirementTypeOther
		}
		if req.Priority == "" {
			req.Priority = domain.RequirementPriorityDefault
		}
		reqs = append(reqs, req)
	}
	return reqs
}

// Cache helpers. The cache is best-effort: a missing or failing Redis
// never blocks the request path.

func jobCacheKey(id int64) string {
	return fmt.Sprintf("jobs:%d", id)
}

func (u *jobUsecase) cachedJobs(ctx context.Context, key string) ([]domain.Job, bool) {
	if u.cache == nil {
		return nil, false
	}
	payload, err := u.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var jobs []domain.Job
	if err := json.Unmarshal(payload, &jobs); err != nil {
		return nil, false
	}
	return jobs, true
}

func (u *jobUsecase) cacheSet(ctx context.Context, key string, jobs []domain.Job) {
	if u.cache == nil {
		return
	}
	payload, err := json.Marshal(jobs)
	if err != nil {
		return
	}
	u.cache.Set(ctx, key, payload, u.cacheTTL)
}

func (u *jobUsecase) invalidateCache(ctx context.Context, ids ...int64) {
	if u.cache == nil {
		return
	}
	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, cacheKeyAllJobs)
	for _, id := range ids {
		keys = append(keys, jobCacheKey(id))
	}
	u.cache.Del(ctx, keys...)
}

func (u *jobUsecase) invalidateAll(ctx context.Context, jobs []domain.Job) {
	ids := make([]int64, len(jobs))
	for i := range jobs {
		ids[i] = jobs[i].ID
	}
	u.invalidateCache(ctx, ids...)
}
