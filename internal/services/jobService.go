package services

import (
	"context"
	"fmt"
	"time"

	"github.com/BangaloreConnect/bc/internal/db"
	"github.com/BangaloreConnect/bc/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const JobsCollection = "jobs"

// JobService is the only writer of the jobs collection. Callers must have
// checked RequireAdmin before invoking Create, SetStatus or Delete.
type JobService struct {
	jobs  *db.Collection[models.Job]
	l     *zap.Logger
	now   func() time.Time
	newID func() string
}

// NewJobService binds the jobs collection. seed is only written when the
// collection does not exist yet.
func NewJobService(store *db.Store, seed []models.Job, l *zap.Logger) *JobService {
	return &JobService{
		jobs:  db.NewCollection(store, JobsCollection, seed),
		l:     l,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// ListPublic returns active jobs in store (insertion) order.
func (s *JobService) ListPublic(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.jobs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}
	active := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.Status == models.JobStatusActive {
			active = append(active, j)
		}
	}
	return active, nil
}

func (s *JobService) ListAll(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.jobs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}
	return jobs, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*models.Job, error) {
	jobs, err := s.jobs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}
	if i := indexOf(jobs, id); i >= 0 {
		return &jobs[i], nil
	}
	return nil, ErrJobNotFound
}

func (s *JobService) Create(ctx context.Context, in JobInput, postedBy string) (*models.Job, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if postedBy == "" {
		postedBy = "admin"
	}

	job := models.Job{
		Title:        in.Title,
		Company:      in.Company,
		Location:     in.Location,
		Salary:       in.Salary,
		Type:         in.Type,
		Experience:   in.Experience,
		Description:  in.Description,
		Requirements: []string(in.Requirements),
		Benefits:     []string(in.Benefits),
		ApplyLink:    in.ApplyLink,
		PostedBy:     postedBy,
		Status:       models.JobStatusActive,
		Applicants:   0,
		CreatedAt:    s.now().UTC(),
	}

	_, err := s.jobs.Update(ctx, func(jobs []models.Job) ([]models.Job, error) {
		job.ID = s.newID()
		for indexOf(jobs, job.ID) >= 0 {
			job.ID = s.newID()
		}
		return append(jobs, job), nil
	})
	if err != nil {
		return nil, fmt.Errorf("save jobs: %w", err)
	}

	s.l.Info("job created", zap.String("id", job.ID), zap.String("title", job.Title), zap.String("postedBy", postedBy))
	return &job, nil
}

// SetStatus resolves the id before it looks at status, so an unknown id is
// reported as ErrJobNotFound whatever the status.
func (s *JobService) SetStatus(ctx context.Context, id string, status models.JobStatus) (*models.Job, error) {
	var updated models.Job
	_, err := s.jobs.Update(ctx, func(jobs []models.Job) ([]models.Job, error) {
		i := indexOf(jobs, id)
		if i < 0 {
			return nil, ErrJobNotFound
		}
		if !status.Valid() {
			return nil, &ValidationError{
				Fields: []string{"status"},
				Reason: fmt.Sprintf("status must be %q or %q", models.JobStatusActive, models.JobStatusInactive),
			}
		}
		jobs[i].Status = status
		updated = jobs[i]
		return jobs, nil
	})
	if err != nil {
		return nil, fmt.Errorf("set status of job %s: %w", id, err)
	}

	s.l.Info("job status updated", zap.String("id", id), zap.String("status", string(status)))
	return &updated, nil
}

func (s *JobService) Delete(ctx context.Context, id string) error {
	_, err := s.jobs.Update(ctx, func(jobs []models.Job) ([]models.Job, error) {
		i := indexOf(jobs, id)
		if i < 0 {
			return nil, ErrJobNotFound
		}
		return append(jobs[:i], jobs[i+1:]...), nil
	})
	if err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}

	s.l.Info("job deleted", zap.String("id", id))
	return nil
}

func (s *JobService) Stats(ctx context.Context) (models.JobStats, error) {
	jobs, err := s.jobs.Load(ctx)
	if err != nil {
		return models.JobStats{}, fmt.Errorf("load jobs: %w", err)
	}
	stats := models.JobStats{TotalJobs: len(jobs)}
	for _, j := range jobs {
		if j.Status == models.JobStatusActive {
			stats.ActiveJobs++
		}
	}
	return stats, nil
}

func indexOf(jobs []models.Job, id string) int {
	for i := range jobs {
		if jobs[i].ID == id {
			return i
		}
	}
	return -1
}
