package models

import "time"

type JobStatus string

const (
	JobStatusActive   JobStatus = "active"
	JobStatusInactive JobStatus = "inactive"
)

func (s JobStatus) Valid() bool {
	return s == JobStatusActive || s == JobStatusInactive
}

type Job struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	Company      string    `json:"company" yaml:"company"`
	Location     string    `json:"location" yaml:"location"`
	Salary       string    `json:"salary" yaml:"salary"` // free text, e.g. "₹18-25 LPA"
	Type         string    `json:"type" yaml:"type"`
	Experience   string    `json:"experience" yaml:"experience"`
	Description  string    `json:"description" yaml:"description"`
	Requirements []string  `json:"requirements" yaml:"requirements"`
	Benefits     []string  `json:"benefits" yaml:"benefits"`
	ApplyLink    string    `json:"applyLink" yaml:"applyLink"`
	PostedBy     string    `json:"postedBy" yaml:"postedBy"`
	Status       JobStatus `json:"status" yaml:"status"`
	Applicants   int       `json:"applicants" yaml:"applicants"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt"`
}

// JobStats is the admin dashboard summary.
type JobStats struct {
	TotalJobs  int `json:"totalJobs"`
	ActiveJobs int `json:"activeJobs"`
}
