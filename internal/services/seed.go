package services

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BangaloreConnect/bc/internal/models"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed seed_jobs.yaml
var defaultSeedJobs []byte

type seedFile struct {
	Jobs []models.Job `yaml:"jobs"`
}

// LoadSeedJobs reads first-run sample jobs from a YAML file, or from the
// built-in sample set when path is empty. Missing ids, statuses and timestamps
// are filled in.
func LoadSeedJobs(path string, now time.Time) ([]models.Job, error) {
	data := defaultSeedJobs
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read seed jobs: %w", err)
		}
	}

	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse seed jobs: %w", err)
	}

	seen := make(map[string]bool, len(sf.Jobs))
	for i := range sf.Jobs {
		j := &sf.Jobs[i]
		if j.ID == "" {
			j.ID = uuid.NewString()
		}
		if seen[j.ID] {
			return nil, fmt.Errorf("parse seed jobs: duplicate id %q", j.ID)
		}
		seen[j.ID] = true

		if j.Status == "" {
			j.Status = models.JobStatusActive
		} else if !j.Status.Valid() {
			return nil, fmt.Errorf("parse seed jobs: job %q has invalid status %q", j.ID, j.Status)
		}
		if j.PostedBy == "" {
			j.PostedBy = "admin"
		}
		if j.CreatedAt.IsZero() {
			j.CreatedAt = now.UTC()
		}
		if j.Requirements == nil {
			j.Requirements = []string{}
		}
		if j.Benefits == nil {
			j.Benefits = []string{}
		}
	}
	return sf.Jobs, nil
}
