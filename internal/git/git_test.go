package git

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/semcommit/internal/semver"
	"github.com/ariel-frischer/semcommit/internal/testutil"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaries(t *testing.T, r *Repo, tag *Tag, to string) []string {
	t.Helper()

	raws, err := r.CommitsSince(tag, to)
	require.NoError(t, err)

	out := make([]string, len(raws))
	for i, raw := range raws {
		assert.Equal(t, i, raw.Index)
		out[i] = raw.Summary
	}
	return out
}

func TestCommitsSince_NoTags(t *testing.T) {
	t.Parallel()

	mem := testutil.NewMemRepo(t)
	first := mem.Commit("feat: first\n\nBody text.\n\nRefs: #1")
	mem.Commit("fix: second")
	mem.Commit("docs: third")

	r := FromRepository(mem.Repo)

	tag, err := r.LastTag("v")
	require.NoError(t, err)
	assert.Nil(t, tag)

	assert.Equal(t, []string{"docs: third", "fix: second", "feat: first"}, summaries(t, r, nil, ""))

	raws, err := r.CommitsSince(nil, "")
	require.NoError(t, err)
	oldest := raws[len(raws)-1]
	assert.Equal(t, first.String(), oldest.ID)
	assert.Equal(t, first.String()[:7], oldest.ShortID)
	assert.Equal(t, "Body text.\n\nRefs: #1", oldest.Body)
	assert.Equal(t, "Fixture Author", oldest.Author.Name)
	assert.Equal(t, "author@example.com", oldest.Author.Email)
}

func TestLastTag(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		setup    func(m *testutil.FixtureRepo)
		prefix   string
		wantName string
		wantVer  semver.Version
	}{
		"lightweight tag": {
			setup: func(m *testutil.FixtureRepo) {
				m.Tag("v0.1.0", m.Commit("feat: a"))
				m.Commit("fix: b")
			},
			prefix:   "v",
			wantName: "v0.1.0",
			wantVer:  semver.Version{Minor: 1},
		},
		"annotated tag newer than lightweight": {
			setup: func(m *testutil.FixtureRepo) {
				m.Tag("v0.1.0", m.Commit("feat: a"))
				m.AnnotatedTag("v0.2.0", m.Commit("feat: b"))
				m.Commit("fix: c")
			},
			prefix:   "v",
			wantName: "v0.2.0",
			wantVer:  semver.Version{Minor: 2},
		},
		"commit time beats version": {
			setup: func(m *testutil.FixtureRepo) {
				m.Tag("v2.0.0", m.Commit("feat: a"))
				m.Tag("v1.5.0", m.Commit("fix: b"))
			},
			prefix:   "v",
			wantName: "v1.5.0",
			wantVer:  semver.Version{Major: 1, Minor: 5},
		},
		"same commit picks higher version": {
			setup: func(m *testutil.FixtureRepo) {
				h := m.Commit("feat: a")
				m.Tag("v1.0.0", h)
				m.AnnotatedTag("v1.1.0", h)
			},
			prefix:   "v",
			wantName: "v1.1.0",
			wantVer:  semver.Version{Major: 1, Minor: 1},
		},
		"other prefixes and non versions ignored": {
			setup: func(m *testutil.FixtureRepo) {
				m.Tag("v1.0.0", m.Commit("feat: a"))
				h := m.Commit("feat: b")
				m.Tag("release-9.0.0", h)
				m.Tag("v-next", h)
				m.Tag("v3.0.0-rc.1", h)
			},
			prefix:   "v",
			wantName: "v1.0.0",
			wantVer:  semver.Version{Major: 1},
		},
		"custom prefix": {
			setup: func(m *testutil.FixtureRepo) {
				m.Tag("v1.0.0", m.Commit("feat: a"))
				m.Tag("release-0.3.0", m.Commit("feat: b"))
			},
			prefix:   "release-",
			wantName: "release-0.3.0",
			wantVer:  semver.Version{Minor: 3},
		},
		"empty prefix": {
			setup: func(m *testutil.FixtureRepo) {
				m.Tag("1.2.3", m.Commit("feat: a"))
			},
			prefix:   "",
			wantName: "1.2.3",
			wantVer:  semver.Version{Major: 1, Minor: 2, Patch: 3},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			mem := testutil.NewMemRepo(t)
			tt.setup(mem)

			tag, err := FromRepository(mem.Repo).LastTag(tt.prefix)
			require.NoError(t, err)
			require.NotNil(t, tag)
			assert.Equal(t, tt.wantName, tag.Name)
			assert.Equal(t, tt.wantVer, tag.Version)
		})
	}
}

func TestCommitsSince_Tag(t *testing.T) {
	t.Parallel()

	mem := testutil.NewMemRepo(t)
	mem.Commit("chore: init")
	mem.Tag("v0.1.0", mem.Commit("feat: one"))
	mem.Commit("fix: two")
	mem.AnnotatedTag("v0.2.0", mem.Commit("feat: three"))
	four := mem.Commit("fix: four")
	mem.Commit("feat: five")

	r := FromRepository(mem.Repo)

	last, err := r.LastTag("v")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "v0.2.0", last.Name)
	assert.Equal(t, []string{"feat: five", "fix: four"}, summaries(t, r, last, ""))

	older, err := r.FindTag("v0.1.0", "v")
	require.NoError(t, err)
	assert.Equal(t, []string{"feat: five", "fix: four", "feat: three", "fix: two"}, summaries(t, r, older, ""))

	assert.Equal(t, []string{"fix: four"}, summaries(t, r, last, four.String()))
	assert.Equal(t, []string{"fix: four"}, summaries(t, r, last, "HEAD~1"))
}

func TestCommitsSince_MergedBranch(t *testing.T) {
	t.Parallel()

	mem := testutil.NewMemRepo(t)
	root := mem.Commit("chore: init")
	side := mem.Commit("fix: side branch")
	mem.Reset(root)
	base := mem.Commit("feat: base")
	mem.Tag("v1.0.0", base)
	mem.Merge("Merge branch 'side'", base, side)
	mem.Commit("feat: after merge")

	r := FromRepository(mem.Repo)
	tag, err := r.LastTag("v")
	require.NoError(t, err)
	require.NotNil(t, tag)

	assert.Equal(t,
		[]string{"feat: after merge", "Merge branch 'side'", "fix: side branch"},
		summaries(t, r, tag, ""))
}

func TestCommitsSince_StopsAtTag(t *testing.T) {
	t.Parallel()

	mem := testutil.NewMemRepo(t)
	root := mem.Commit("chore: init")
	mem.Tag("v1.0.0", mem.Commit("feat: base"))
	mem.Commit("fix: a")
	mem.Commit("fix: b")

	r := FromRepository(mem.Repo)
	tag, err := r.FindTag("v1.0.0", "v")
	require.NoError(t, err)

	// History behind the tag is never read.
	st, ok := mem.Repo.Storer.(*memory.Storage)
	require.True(t, ok)
	delete(st.Objects, root)
	delete(st.Commits, root)

	assert.Equal(t, []string{"fix: b", "fix: a"}, summaries(t, r, tag, ""))
}

func TestLastTag_SkipsUnreachable(t *testing.T) {
	t.Parallel()

	mem := testutil.NewMemRepo(t)
	base := mem.Commit("feat: base")
	mem.Tag("v1.0.0", base)
	mem.Tag("v2.0.0", mem.Commit("feat: abandoned"))
	mem.Reset(base)
	mem.Commit("fix: on main")

	tag, err := FromRepository(mem.Repo).LastTag("v")
	require.NoError(t, err)
	require.NotNil(t, tag)
	assert.Equal(t, "v1.0.0", tag.Name)
}

func TestCommitsSince_TagAtHead(t *testing.T) {
	t.Parallel()

	mem := testutil.NewMemRepo(t)
	mem.Tag("v1.0.0", mem.Commit("feat: a"))

	r := FromRepository(mem.Repo)
	tag, err := r.LastTag("v")
	require.NoError(t, err)

	raws, err := r.CommitsSince(tag, "")
	require.NoError(t, err)
	assert.Empty(t, raws)
}

func TestFindTag_Errors(t *testing.T) {
	t.Parallel()

	mem := testutil.NewMemRepo(t)
	mem.Tag("latest", mem.Commit("feat: a"))
	r := FromRepository(mem.Repo)

	_, err := r.FindTag("v9.9.9", "v")
	assert.True(t, errors.Is(err, ErrTagNotFound))

	_, err = r.FindTag("latest", "v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a vX.Y.Z version tag")
}

func TestEmptyRepository(t *testing.T) {
	t.Parallel()

	r := FromRepository(testutil.NewMemRepo(t).Repo)

	_, err := r.LastTag("v")
	assert.True(t, errors.Is(err, ErrNoCommits))

	_, err = r.CommitsSince(nil, "")
	assert.True(t, errors.Is(err, ErrNoCommits))
}

func TestCommitsSince_BadRevision(t *testing.T) {
	t.Parallel()

	mem := testutil.NewMemRepo(t)
	mem.Commit("feat: a")

	_, err := FromRepository(mem.Repo).CommitsSince(nil, "does-not-exist")
	require.Error(t, err)
	assert.True(t, errors.Is(err, plumbing.ErrReferenceNotFound))
}

func TestOpen_NotARepository(t *testing.T) {
	t.Parallel()

	_, err := Open(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotRepository))
}

func TestRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	root, err := Root(sub)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = Root(t.TempDir())
	assert.True(t, errors.Is(err, ErrNotRepository))
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	mem := testutil.NewMemRepo(t)
	mem.Tag("v1.0.0", mem.Commit("feat: a"))
	mem.Tag("nightly", mem.Commit("feat: b"))

	_, err := FromRepository(mem.Repo).LastTag("v")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "found last tag")
}
