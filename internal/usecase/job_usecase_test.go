package usecase_test

import (
	"context"
	"testing"

	"devjobs-backend/internal/domain"
	"devjobs-backend/internal/usecase"
	"devjobs-backend/internal/vocabulary"
	"devjobs-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) Upsert(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) Fetch(ctx context.Context) ([]domain.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Update(ctx context.Context, id int64, patch *domain.JobPatch) (*domain.Job, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func newJobUsecase(repo *MockJobRepo) domain.JobUsecase {
	return usecase.NewJobUsecase(repo, vocabulary.New(), validator.New(), nil, 0)
}

func validInput() *domain.JobInput {
	return &domain.JobInput{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Location:    "Remote",
		Description: "Build APIs",
	}
}

func TestCreateJobVocabulary(t *testing.T) {
	t.Run("Should derive tag categories from the registry", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := newJobUsecase(mockRepo)

		input := validInput()
		input.Skills = []string{"Node.js", "PostgreSQL"}
		input.Benefits = []string{"Health_Insurance"}

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Job")).Return(nil)

		job, err := uc.CreateJob(context.Background(), input)
		assert.NoError(t, err)
		assert.Len(t, job.Skills, 2)
		assert.Equal(t, "Backend", job.Skills[0].Category)
		assert.Equal(t, "Database", job.Skills[1].Category)
		assert.Len(t, job.Benefits, 1)
		assert.Equal(t, "Healthcare", job.Benefits[0].Category)
	})

	t.Run("Should reject an unknown skill and list the valid set", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := newJobUsecase(mockRepo)

		input := validInput()
		input.Skills = []string{"COBOL"}

		_, err := uc.CreateJob(context.Background(), input)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), `Invalid skill "COBOL"`)
		assert.Contains(t, err.Error(), "Node.js")
		assert.Contains(t, err.Error(), "TypeScript")
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Should reject an unknown benefit", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := newJobUsecase(mockRepo)

		input := validInput()
		input.Benefits = []string{"Free_Ponies"}

		_, err := uc.CreateJob(context.Background(), input)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), `Invalid benefit "Free_Ponies"`)
		assert.Contains(t, err.Error(), "Health_Insurance")
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestCreateJobValidation(t *testing.T) {
	t.Run("Should fail when a required field is missing", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := newJobUsecase(mockRepo)

		input := validInput()
		input.Description = ""

		_, err := uc.CreateJob(context.Background(), input)
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Should reject an unrecognized job type", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := newJobUsecase(mockRepo)

		input := validInput()
		input.JobType = "Gig"

		_, err := uc.CreateJob(context.Background(), input)
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Should default status to Active", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := newJobUsecase(mockRepo)

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Job")).Return(nil)

		job, err := uc.CreateJob(context.Background(), validInput())
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStatusActive, job.Status)
		assert.False(t, job.PostedDate.IsZero())
	})

	t.Run("Should normalize requirements with defaults", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := newJobUsecase(mockRepo)

		input := validInput()
		input.Requirements = []domain.RequirementInput{
			{Description: "3+ years of Go"},
			{Description: "BSc in CS", Type: "education", Priority: "preferred"},
		}

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Job")).Return(nil)

		job, err := uc.CreateJob(context.Background(), input)
		assert.NoError(t, err)
		assert.Len(t, job.Requirements, 2)
		assert.Equal(t, "other", job.Requirements[0].Type)
		assert.Equal(t, "required", job.Requirements[0].Priority)
		assert.Equal(t, "education", job.Requirements[1].Type)
		assert.Equal(t, "preferred", job.Requirements[1].Priority)
	})

	t.Run("Should reject a requirement with an unknown type", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := newJobUsecase(mockRepo)

		input := validInput()
		input.Requirements = []domain.RequirementInput{
			{Description: "something", Type: "mystery"},
		}

		_, err := uc.CreateJob(context.Background(), input)
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestBulkUpsertJobs(t *testing.T) {
	t.Run("Should process every valid entry", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := newJobUsecase(mockRepo)

		first := validInput()
		second := validInput()
		second.Title = "Frontend Engineer"

		mockRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Job")).Return(nil)

		jobs, err := uc.BulkUpsertJobs(context.Background(), []domain.JobInput{*first, *second})
		assert.NoError(t, err)
		assert.Len(t, jobs, 2)
		mockRepo.AssertNumberOfCalls(t, "Upsert", 2)
	})

	t.Run("Should abort the batch at the first invalid entry", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := newJobUsecase(mockRepo)

		first := validInput()
		bad := validInput()
		bad.Skills = []string{"COBOL"}
		third := validInput()

		mockRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Job")).Return(nil)

		_, err := uc.BulkUpsertJobs(context.Background(), []domain.JobInput{*first, *bad, *third})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Job 2:")
		// The first entry was already committed before the failure.
		mockRepo.AssertNumberOfCalls(t, "Upsert", 1)
	})
}

func TestUpdateJobPartial(t *testing.T) {
	t.Run("Should only patch the supplied fields", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := newJobUsecase(mockRepo)

		salary := "120k"
		input := &domain.JobUpdateInput{Salary: &salary}

		mockRepo.On("Update", mock.Anything, int64(7), mock.AnythingOfType("*domain.JobPatch")).
			Return(&domain.Job{ID: 7}, nil).
			Run(func(args mock.Arguments) {
				patch := args.Get(2).(*domain.JobPatch)
				assert.Equal(t, "120k", *patch.Salary)
				assert.Nil(t, patch.Title)
				assert.Nil(t, patch.Company)
				assert.Nil(t, patch.Location)
				assert.Nil(t, patch.Description)
				assert.Nil(t, patch.Skills)
				assert.Nil(t, patch.Benefits)
				assert.Nil(t, patch.Requirements)
			})

		_, err := uc.UpdateJob(context.Background(), 7, input)
		assert.NoError(t, err)
	})

	t.Run("Should validate replaced skills against the registry", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := newJobUsecase(mockRepo)

		input := &domain.JobUpdateInput{Skills: []string{"COBOL"}}

		_, err := uc.UpdateJob(context.Background(), 7, input)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), `Invalid skill "COBOL"`)
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("Should derive categories for replaced tag sets", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := newJobUsecase(mockRepo)

		input := &domain.JobUpdateInput{Skills: []string{"Flutter"}}

		mockRepo.On("Update", mock.Anything, int64(3), mock.AnythingOfType("*domain.JobPatch")).
			Return(&domain.Job{ID: 3}, nil).
			Run(func(args mock.Arguments) {
				patch := args.Get(2).(*domain.JobPatch)
				assert.Len(t, patch.Skills, 1)
				assert.Equal(t, "Mobile", patch.Skills[0].Category)
			})

		_, err := uc.UpdateJob(context.Background(), 3, input)
		assert.NoError(t, err)
	})
}

func TestDeleteJob(t *testing.T) {
	t.Run("Should propagate NotFound", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := newJobUsecase(mockRepo)

		mockRepo.On("Delete", mock.Anything, int64(42)).Return(apperror.NotFound("Job not found"))

		err := uc.DeleteJob(context.Background(), 42)
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Should succeed when the repository succeeds", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := newJobUsecase(mockRepo)

		mockRepo.On("Delete", mock.Anything, int64(42)).Return(nil)

		assert.NoError(t, uc.DeleteJob(context.Background(), 42))
	})
}

func TestGetJobs(t *testing.T) {
	t.Run("Should return the repository result", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := newJobUsecase(mockRepo)

		mockRepo.On("Fetch", mock.Anything).Return([]domain.Job{{ID: 1}, {ID: 2}}, nil)

		jobs, err := uc.GetAllJobs(context.Background())
		assert.NoError(t, err)
		assert.Len(t, jobs, 2)
	})

	t.Run("Should propagate NotFound for a missing id", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := newJobUsecase(mockRepo)

		mockRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, apperror.NotFound("Job not found"))

		_, err := uc.GetJobByID(context.Background(), 99)
		assert.Error(t, err)
	})
}
