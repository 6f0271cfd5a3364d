package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

// FixtureRepo is a scripted git repository, in memory or on disk. Every
// commit touches a file so go-git never rejects it as empty, and commit
// times advance by one minute so history order is stable.
type FixtureRepo struct {
	t     testing.TB
	Repo  *git.Repository
	// Dir is the working tree of a repository from NewDiskRepo.
	Dir   string
	fs    billy.Filesystem
	wt    *git.Worktree
	clock time.Time
	count int
}

// NewMemRepo initialises an empty in-memory repository.
func NewMemRepo(t testing.TB) *FixtureRepo {
	t.Helper()

	fs := memfs.New()
	repo, err := git.Init(memory.NewStorage(), fs)
	if err != nil {
		t.Fatalf("initialising memory repository: %v", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("getting worktree: %v", err)
	}

	return &FixtureRepo{t: t, Repo: repo, fs: fs, wt: wt, clock: fixtureEpoch}
}

// NewDiskRepo initialises an empty repository in a temporary directory,
// for code that opens repositories by path.
func NewDiskRepo(t testing.TB) *FixtureRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("initialising repository in %s: %v", dir, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("getting worktree: %v", err)
	}

	return &FixtureRepo{t: t, Repo: repo, Dir: dir, fs: wt.Filesystem, wt: wt, clock: fixtureEpoch}
}

// Signature returns the author used for the next commit or tag.
func (r *FixtureRepo) Signature() *object.Signature {
	return &object.Signature{Name: "Fixture Author", Email: "author@example.com", When: r.clock}
}

// Commit records msg as a new commit on HEAD and returns its hash.
func (r *FixtureRepo) Commit(msg string) plumbing.Hash {
	r.t.Helper()

	r.count++
	r.clock = r.clock.Add(time.Minute)

	f, err := r.fs.Create("CHANGES")
	if err != nil {
		r.t.Fatalf("creating file: %v", err)
	}
	if _, err := fmt.Fprintf(f, "change %d\n", r.count); err != nil {
		r.t.Fatalf("writing file: %v", err)
	}
	if err := f.Close(); err != nil {
		r.t.Fatalf("closing file: %v", err)
	}
	if _, err := r.wt.Add("CHANGES"); err != nil {
		r.t.Fatalf("staging file: %v", err)
	}

	hash, err := r.wt.Commit(msg, &git.CommitOptions{Author: r.Signature()})
	if err != nil {
		r.t.Fatalf("committing %q: %v", msg, err)
	}
	return hash
}

// Tag creates a lightweight tag.
func (r *FixtureRepo) Tag(name string, hash plumbing.Hash) {
	r.t.Helper()

	if _, err := r.Repo.CreateTag(name, hash, nil); err != nil {
		r.t.Fatalf("creating tag %s: %v", name, err)
	}
}

// AnnotatedTag creates an annotated tag object pointing at hash.
func (r *FixtureRepo) AnnotatedTag(name string, hash plumbing.Hash) {
	r.t.Helper()

	_, err := r.Repo.CreateTag(name, hash, &git.CreateTagOptions{
		Tagger:  r.Signature(),
		Message: "release " + name,
	})
	if err != nil {
		r.t.Fatalf("creating annotated tag %s: %v", name, err)
	}
}

// Reset points the current branch at hash, leaving later commits
// unreachable from HEAD.
func (r *FixtureRepo) Reset(hash plumbing.Hash) {
	r.t.Helper()

	head, err := r.Repo.Head()
	if err != nil {
		r.t.Fatalf("reading HEAD: %v", err)
	}
	if err := r.Repo.Storer.SetReference(plumbing.NewHashReference(head.Name(), hash)); err != nil {
		r.t.Fatalf("moving %s to %s: %v", head.Name(), hash, err)
	}
}

// Merge records a merge commit of parents on the current branch. The tree
// is taken from the first parent.
func (r *FixtureRepo) Merge(msg string, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()

	r.clock = r.clock.Add(time.Minute)

	first, err := r.Repo.CommitObject(parents[0])
	if err != nil {
		r.t.Fatalf("reading parent %s: %v", parents[0], err)
	}

	c := &object.Commit{
		Author:       *r.Signature(),
		Committer:    *r.Signature(),
		Message:      msg,
		TreeHash:     first.TreeHash,
		ParentHashes: parents,
	}
	obj := r.Repo.Storer.NewEncodedObject()
	if err := c.Encode(obj); err != nil {
		r.t.Fatalf("encoding merge %q: %v", msg, err)
	}
	hash, err := r.Repo.Storer.SetEncodedObject(obj)
	if err != nil {
		r.t.Fatalf("storing merge %q: %v", msg, err)
	}

	r.Reset(hash)
	return hash
}
