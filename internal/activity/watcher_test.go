package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLog(t *testing.T) {
	out := []byte("1756700000|fix orb flicker\n1756600000|wire settings page\nnot-a-line\n1756500000|initial commit\n")

	commits := parseLog(out)

	require.Len(t, commits, 3)
	assert.Equal(t, "fix orb flicker", commits[0].subject)
	assert.Equal(t, int64(1756700000), commits[0].at.Unix())
	assert.Equal(t, "initial commit", commits[2].subject)
}

func TestParseLogEmpty(t *testing.T) {
	assert.Empty(t, parseLog([]byte("")))
	assert.Empty(t, parseLog([]byte("\n\n")))
}

func TestBuildStat(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	commits := []commit{
		{at: now.Add(-2 * time.Hour), subject: "fix orb flicker"},
		{at: now.Add(-30 * time.Hour), subject: "wire settings page"},
		{at: now.AddDate(0, 0, -6), subject: "initial commit"},
	}

	stat := buildStat("sphere", commits, now)

	assert.Equal(t, "sphere", stat.ProjectName)
	assert.Equal(t, 0, stat.DaysSilent)
	assert.Equal(t, 1, stat.CommitsToday)
	assert.Equal(t, 3, stat.CommitsThisWeek)
	assert.Equal(t, "fix orb flicker", stat.LastCommitMessage)
}

func TestBuildStatSilentProject(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	commits := []commit{
		{at: now.AddDate(0, 0, -12), subject: "last touch"},
	}

	stat := buildStat("cold-storage", commits, now)

	assert.Equal(t, 12, stat.DaysSilent)
	assert.Equal(t, 0, stat.CommitsToday)
	assert.Equal(t, 0, stat.CommitsThisWeek)
}
