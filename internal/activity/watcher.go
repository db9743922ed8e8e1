// Package activity derives per-project git recency stats by shelling out to
// the local git binary, the same signal the contextual linker's temporal
// score is computed from.
package activity

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/solobuddy/hub/internal/models"
)

type commit struct {
	at      time.Time
	subject string
}

// Scanner scans project working copies for commit recency. The clock is
// injectable for tests.
type Scanner struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewScanner(logger *zap.Logger) *Scanner {
	return &Scanner{logger: logger, now: time.Now}
}

// Scan collects activity stats for up to maxProjects projects. Projects that
// are not git repositories or have no reachable history are skipped, never
// reported as errors.
func (s *Scanner) Scan(ctx context.Context, projects []models.Project, maxProjects int) []models.GitActivityStat {
	if maxProjects > 0 && len(projects) > maxProjects {
		projects = projects[:maxProjects]
	}

	stats := make([]models.GitActivityStat, 0, len(projects))
	for _, project := range projects {
		stat, err := s.scanProject(ctx, project)
		if err != nil {
			s.logger.Debug("skipping project in activity scan",
				zap.String("project", project.Name), zap.Error(err))
			continue
		}
		stats = append(stats, stat)
	}
	return stats
}

func (s *Scanner) scanProject(ctx context.Context, project models.Project) (models.GitActivityStat, error) {
	if project.Path == "" {
		return models.GitActivityStat{}, fmt.Errorf("project has no path")
	}
	if _, err := os.Stat(filepath.Join(project.Path, ".git")); err != nil {
		return models.GitActivityStat{}, fmt.Errorf("not a git repository: %w", err)
	}

	cmd := exec.CommandContext(ctx, "git", "-C", project.Path,
		"log", "--since=7 days ago", "--format=%at|%s", "--no-merges")
	out, err := cmd.Output()
	if err != nil {
		return models.GitActivityStat{}, fmt.Errorf("git log failed: %w", err)
	}

	commits := parseLog(out)
	if len(commits) == 0 {
		// Quiet for over a week; fetch just the last commit for recency.
		cmd = exec.CommandContext(ctx, "git", "-C", project.Path, "log", "-1", "--format=%at|%s")
		out, err = cmd.Output()
		if err != nil {
			return models.GitActivityStat{}, fmt.Errorf("git log failed: %w", err)
		}
		commits = parseLog(out)
		if len(commits) == 0 {
			return models.GitActivityStat{}, fmt.Errorf("no commits")
		}
	}

	return buildStat(project.Name, commits, s.now()), nil
}

// parseLog reads "unix_ts|subject" lines, newest first.
func parseLog(out []byte) []commit {
	var commits []commit
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		ts, subject, found := strings.Cut(line, "|")
		if !found {
			continue
		}
		unix, err := strconv.ParseInt(strings.TrimSpace(ts), 10, 64)
		if err != nil {
			continue
		}
		commits = append(commits, commit{at: time.Unix(unix, 0), subject: subject})
	}
	return commits
}

// buildStat derives the activity stat from a newest-first commit list.
func buildStat(projectName string, commits []commit, now time.Time) models.GitActivityStat {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)

	stat := models.GitActivityStat{
		ProjectName:       projectName,
		LastCommitMessage: commits[0].subject,
		DaysSilent:        int(now.Sub(commits[0].at).Hours() / 24),
	}
	for _, c := range commits {
		if !c.at.Before(todayStart) {
			stat.CommitsToday++
		}
		if !c.at.Before(weekAgo) {
			stat.CommitsThisWeek++
		}
	}
	return stat
}
