package urlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got, host, err := Normalize("HTTPS://WWW.Example.com/jobs/123/?utm_source=x&b=2&a=1#apply")
	require.NoError(t, err)
	assert.Equal(t, "example.com", host)
	assert.Equal(t, "https://example.com/jobs/123?a=1&b=2", got)
}

func TestHostMatches(t *testing.T) {
	assert.True(t, HostMatches("https://jobs.ashbyhq.com/acme/1", "ashbyhq.com"))
	assert.True(t, HostMatches("https://ashbyhq.com", "ashbyhq.com"))
	assert.False(t, HostMatches("https://notashbyhq.com/acme", "ashbyhq.com"))
	assert.False(t, HostMatches("https://example.com/?ref=ashbyhq.com", "ashbyhq.com"))
	assert.True(t, HostMatches("jobs.lever.co/acme/1", "lever.co"), "scheme-less address")
	assert.False(t, HostMatches("", "lever.co"))
}

func TestHostHasLabel(t *testing.T) {
	assert.True(t, HostHasLabel("https://de.indeed.com/viewjob?jk=1", "indeed"))
	assert.True(t, HostHasLabel("https://www.indeed.co.uk/viewjob", "indeed"))
	assert.False(t, HostHasLabel("https://notindeed.com/viewjob", "indeed"))
}

func TestPathContains(t *testing.T) {
	assert.True(t, PathContains("https://www.linkedin.com/jobs/view/123", "/jobs"))
	assert.False(t, PathContains("https://www.linkedin.com/in/someone", "/jobs"))
	assert.True(t, PathContains("https://acme.com/careers?gh_jid=42", "gh_jid="))
}

func TestFirstLabel(t *testing.T) {
	assert.Equal(t, "acme", FirstLabel("https://acme.wd5.myworkdayjobs.com/en-US/External/job/1"))
	assert.Equal(t, "localhost", FirstLabel("http://localhost:8080"))
}

func TestIsATSHost(t *testing.T) {
	assert.True(t, IsATSHost("boards.greenhouse.io"))
	assert.False(t, IsATSHost("example.com"))
}
