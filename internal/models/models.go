package models

import (
	"path"
	"strings"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Format string

const (
	FormatThread Format = "thread"
	FormatGif    Format = "gif"
	FormatPost   Format = "post"
	FormatVideo  Format = "video"
)

// BacklogItem is a captured content idea. The intent pipeline reads these as
// context; only the storage layer creates or mutates them.
type BacklogItem struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Priority   Priority  `json:"priority"`
	Format     Format    `json:"format"`
	ProjectRef string    `json:"projectRef,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// Project is a tracked local project, optionally linked to a GitHub remote.
type Project struct {
	Name      string `json:"name"`
	Path      string `json:"path,omitempty"`
	GithubURL string `json:"github,omitempty"`
}

// Aliases returns the lowercased names this project answers to: the project
// name, the last path segment, and the GitHub repo slug with ".git" stripped.
// Empty aliases are omitted.
func (p Project) Aliases() []string {
	aliases := make([]string, 0, 3)
	if name := strings.ToLower(strings.TrimSpace(p.Name)); name != "" {
		aliases = append(aliases, name)
	}
	if p.Path != "" {
		if seg := strings.ToLower(path.Base(strings.ReplaceAll(p.Path, "\\", "/"))); seg != "" && seg != "/" && seg != "." {
			aliases = append(aliases, seg)
		}
	}
	if p.GithubURL != "" {
		slug := path.Base(strings.TrimSuffix(p.GithubURL, "/"))
		slug = strings.TrimSuffix(slug, ".git")
		if slug = strings.ToLower(slug); slug != "" && slug != "." {
			aliases = append(aliases, slug)
		}
	}
	return aliases
}

// GitActivityStat describes how recently a project was touched.
type GitActivityStat struct {
	ProjectName       string `json:"projectName"`
	DaysSilent        int    `json:"daysSilent"`
	CommitsToday      int    `json:"commitsToday"`
	CommitsThisWeek   int    `json:"commitsThisWeek"`
	LastCommitMessage string `json:"lastCommitMessage,omitempty"`
}

// Context is the read-only snapshot the intent pipeline works against. It is
// assembled per request and never mutated by the core.
type Context struct {
	BacklogItems []BacklogItem     `json:"backlogItems"`
	Projects     []Project         `json:"projects"`
	GitActivity  []GitActivityStat `json:"gitActivity"`
}
