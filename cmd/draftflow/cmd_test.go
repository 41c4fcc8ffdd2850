package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/petrijr/draftflow/internal/clock"
)

type cli struct {
	t          *testing.T
	configPath string
	clock      *clock.Manual
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	cfg := "store:\n  backend: sqlite\n  sqlite_path: " + filepath.Join(dir, "draftflow.db") + "\nlog:\n  level: error\n"
	path := filepath.Join(dir, "draftflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return &cli{
		t:          t,
		configPath: path,
		clock:      clock.NewManual(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)),
	}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	a := &app{clock: c.clock}
	root := newRootCmd(a)
	defer a.close()

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", c.configPath}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err)
	return out
}

func TestCLI_StatePersistsBetweenInvocations(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("show")
	require.Contains(t, out, "step:     keyword (1/4)")
	require.Contains(t, out, "progress: 0%")

	c.mustRun("keyword", "seo")
	c.mustRun("title", "--candidate", "Top 10 Tips", "--candidate", "SEO 101", "Top 10 Tips")
	c.mustRun("content", "...")

	out = c.mustRun("show")
	require.Contains(t, out, "keyword:  seo")
	require.Contains(t, out, "title:    Top 10 Tips")
	require.Contains(t, out, "progress: 100%")

	out = c.mustRun("goto", "publish")
	require.Contains(t, out, "step:     publish (4/4)")
}

func TestCLI_GotoRespectsGuard(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("goto", "content")
	require.ErrorContains(t, err, "cannot go to content")

	out := c.mustRun("goto", "--force", "content")
	require.Contains(t, out, "step:     content")

	_, err = c.run("goto", "review")
	require.ErrorContains(t, err, "unknown step")
}

func TestCLI_NextPrevClamp(t *testing.T) {
	c := newCLI(t)

	require.Contains(t, c.mustRun("prev"), "step:     keyword")
	// A state without history is not restored, so record a keyword first.
	c.mustRun("keyword", "seo")
	c.mustRun("next")
	c.mustRun("next")
	c.mustRun("next")
	require.Contains(t, c.mustRun("next"), "step:     publish")
}

func TestCLI_SettingsPatchOnlyChangedFlags(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("settings", "--tone", "casual")
	require.Contains(t, out, "tone=casual length=medium language=english")
}

func TestCLI_DraftRoundTrip(t *testing.T) {
	c := newCLI(t)

	c.mustRun("keyword", "seo")
	require.Contains(t, c.mustRun("restore"), "keyword: seo", "mutations flush the draft on exit")

	c.mustRun("reset")
	c.mustRun("keyword", "go")
	c.mustRun("clear")
	require.Contains(t, c.mustRun("restore"), "no saved draft")

	c.mustRun("content", "body text")
	c.clock.Advance(25 * time.Hour)
	require.Contains(t, c.mustRun("restore"), "no saved draft", "old drafts are dropped")
}

func TestCLI_RestoreApplyAfterWorkflowExpired(t *testing.T) {
	c := newCLI(t)

	c.mustRun("keyword", "seo")
	c.clock.Advance(23 * time.Hour)
	// Settings changes add no history entry, so the workflow state ages
	// while the draft is saved again.
	c.mustRun("settings", "--tone", "casual")
	c.clock.Advance(2 * time.Hour)

	require.Contains(t, c.mustRun("show"), "keyword:  -")

	out := c.mustRun("restore", "--apply")
	require.Contains(t, out, "keyword: seo")
	require.Contains(t, out, "applied")

	out = c.mustRun("show")
	require.Contains(t, out, "keyword:  seo")
	require.Contains(t, out, "tone=casual")
}

func TestCLI_InspectWithPath(t *testing.T) {
	c := newCLI(t)

	c.mustRun("keyword", "seo")
	c.mustRun("settings", "--language", "finnish")

	require.Equal(t, "seo\n", c.mustRun("inspect", "selectedKeyword"))
	require.Equal(t, "finnish\n", c.mustRun("inspect", "settings.language"))
	require.Equal(t, `["keyword"]`+"\n", c.mustRun("inspect", "history.#.step"))
	require.Equal(t, "seo\n", c.mustRun("inspect", "--draft", "data.keyword"))

	_, err := c.run("inspect", "no.such.path")
	require.ErrorContains(t, err, "matches nothing")
}

func TestCLI_InspectEmptyStore(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("inspect")
	require.ErrorContains(t, err, "nothing stored")
}

func TestCLI_RejectsBadConfig(t *testing.T) {
	c := newCLI(t)
	require.NoError(t, os.WriteFile(c.configPath, []byte("store:\n  backend: etcd\n"), 0o644))

	_, err := c.run("show")
	require.ErrorContains(t, err, "unknown store backend")
}
