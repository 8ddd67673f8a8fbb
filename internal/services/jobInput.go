package services

import (
	"errors"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
)

// Lines decodes either newline-delimited text (what the admin form posts) or
// a JSON list of strings. Lines are trimmed and blank ones dropped.
type Lines []string

func (l *Lines) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*l = SplitLines(text)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.New("expected newline-delimited text or a list of strings")
	}
	*l = cleanLines(items)
	return nil
}

func SplitLines(text string) []string {
	return cleanLines(strings.Split(text, "\n"))
}

func cleanLines(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// JobInput is the admin-supplied part of a job posting.
type JobInput struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Salary       string `json:"salary"`
	Type         string `json:"type"`
	Experience   string `json:"experience"`
	Description  string `json:"description"`
	Requirements Lines  `json:"requirements"`
	Benefits     Lines  `json:"benefits"`
	ApplyLink    string `json:"applyLink"`
}

func (in *JobInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	in.Location = strings.TrimSpace(in.Location)
	in.Salary = strings.TrimSpace(in.Salary)
	in.Type = strings.TrimSpace(in.Type)
	in.Experience = strings.TrimSpace(in.Experience)
	in.Description = strings.TrimSpace(in.Description)
	in.ApplyLink = strings.TrimSpace(in.ApplyLink)
	if in.Requirements == nil {
		in.Requirements = Lines{}
	}
	if in.Benefits == nil {
		in.Benefits = Lines{}
	}
}

// Validate reports every missing required field, in form order.
func (in *JobInput) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"title", in.Title},
		{"company", in.Company},
		{"location", in.Location},
		{"salary", in.Salary},
		{"type", in.Type},
		{"experience", in.Experience},
		{"description", in.Description},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	if in.ApplyLink != "" && !isHTTPURL(in.ApplyLink) {
		return &ValidationError{Fields: []string{"applyLink"}, Reason: "applyLink must be an http or https URL"}
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
