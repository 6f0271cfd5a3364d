// Package git reads release history from a git repository using go-git.
// It finds the latest version tag and produces the RawCommits made since,
// newest first, with Index assigned in that order.
package git

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ariel-frischer/semcommit/internal/commit"
	"github.com/ariel-frischer/semcommit/internal/semver"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var (
	// ErrNotRepository is returned when no repository is found at or above a path.
	ErrNotRepository = errors.New("not a git repository")
	// ErrNoCommits is returned for a repository without any commits.
	ErrNoCommits = errors.New("repository has no commits")
	// ErrTagNotFound is returned by FindTag for a missing tag.
	ErrTagNotFound = errors.New("tag not found")
)

// logger receives debug events. Replace it with SetLogger.
var logger = slog.Default()

// SetLogger configures the logger for git operations. Nil restores the
// default logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	logger = l
}

// Repo wraps a go-git repository.
type Repo struct {
	repo *git.Repository
}

// Tag is a version tag resolved to the commit it points at.
type Tag struct {
	Name    string
	Version semver.Version
	Commit  plumbing.Hash
	When    time.Time
}

// Open opens the repository containing path. An empty path means the
// current working directory. Parent directories are searched for .git.
func Open(path string) (*Repo, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logger.Debug("opening repository", "path", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
		}
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return &Repo{repo: repo}, nil
}

// Root returns the top-level working tree directory of the repository
// containing path.
func Root(path string) (string, error) {
	r, err := Open(path)
	if err != nil {
		return "", err
	}
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("%w: bare repository", ErrNotRepository)
	}
	return wt.Filesystem.Root(), nil
}

// FromRepository wraps an already opened repository.
func FromRepository(repo *git.Repository) *Repo {
	return &Repo{repo: repo}
}

// LastTag returns the newest tag reachable from HEAD whose name is prefix
// followed by a MAJOR.MINOR.PATCH version. Newer commit time wins, then the
// higher version. It returns nil when no such tag exists.
func (r *Repo) LastTag(prefix string) (*Tag, error) {
	head, err := r.head()
	if err != nil {
		return nil, err
	}

	tags, err := r.versionTags(prefix)
	if err != nil {
		return nil, err
	}
	byCommit := make(map[plumbing.Hash][]*Tag, len(tags))
	for _, t := range tags {
		byCommit[t.Commit] = append(byCommit[t.Commit], t)
	}

	var best *Tag
	if len(byCommit) > 0 {
		best, err = r.newestReachable(head, byCommit)
		if err != nil {
			return nil, err
		}
	}

	if best != nil {
		logger.Debug("found last tag", "tag", best.Name, "commit", best.Commit.String()[:7])
	}
	return best, nil
}

// FindTag resolves a single tag by name. The name must carry prefix and a
// valid version.
func (r *Repo) FindTag(name, prefix string) (*Tag, error) {
	ref, err := r.repo.Tag(name)
	if err != nil {
		if errors.Is(err, git.ErrTagNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTagNotFound, name)
		}
		return nil, fmt.Errorf("looking up tag %s: %w", name, err)
	}

	t, err := r.resolveTag(ref, prefix)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("tag %s is not a %sX.Y.Z version tag", name, prefix)
	}
	return t, nil
}

// CommitsSince returns the commits reachable from to but not from tag,
// newest first, with Index 0..n-1. A nil tag means the whole history.
// An empty to means HEAD.
func (r *Repo) CommitsSince(tag *Tag, to string) ([]commit.RawCommit, error) {
	var from plumbing.Hash
	if to == "" {
		head, err := r.head()
		if err != nil {
			return nil, err
		}
		from = head
	} else {
		h, err := r.repo.ResolveRevision(plumbing.Revision(to))
		if err != nil {
			return nil, fmt.Errorf("resolving revision %s: %w", to, err)
		}
		from = *h
	}

	var hide []plumbing.Hash
	if tag != nil {
		hide = append(hide, tag.Commit)
	}

	w, err := newWalker(r.repo, from, hide...)
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}

	var visited []*object.Commit
	for {
		c, err := w.next()
		if err != nil {
			return nil, fmt.Errorf("walking history: %w", err)
		}
		if c == nil {
			break
		}
		visited = append(visited, c)
	}

	var raws []commit.RawCommit
	for _, c := range visited {
		if w.isHidden(c.Hash) {
			continue
		}
		raws = append(raws, toRaw(c, len(raws)))
	}

	logger.Debug("collected commits", "count", len(raws), "from", from.String()[:7])
	return raws, nil
}

func (r *Repo) head() (plumbing.Hash, error) {
	ref, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return plumbing.ZeroHash, ErrNoCommits
		}
		return plumbing.ZeroHash, fmt.Errorf("getting HEAD reference: %w", err)
	}
	return ref.Hash(), nil
}

// newestReachable walks back from head and returns the best tag on the
// newest tagged commit it meets. Tags on other commits with the same
// committer time compete by version.
func (r *Repo) newestReachable(head plumbing.Hash, byCommit map[plumbing.Hash][]*Tag) (*Tag, error) {
	w, err := newWalker(r.repo, head)
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}

	var best *Tag
	for {
		c, err := w.next()
		if err != nil {
			return nil, fmt.Errorf("walking history: %w", err)
		}
		if c == nil || (best != nil && c.Committer.When.Before(best.When)) {
			return best, nil
		}
		for _, t := range byCommit[c.Hash] {
			if best == nil || newer(t, best) {
				best = t
			}
		}
	}
}

// versionTags lists all tags that parse as prefix+version.
func (r *Repo) versionTags(prefix string) ([]*Tag, error) {
	refs, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer refs.Close()

	var tags []*Tag
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		t, err := r.resolveTag(ref, prefix)
		if err != nil {
			return err
		}
		if t != nil {
			tags = append(tags, t)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tags, nil
}

// resolveTag peels an annotated or lightweight tag to its commit. It
// returns nil, nil for tags that are not version tags or do not point at
// a commit.
func (r *Repo) resolveTag(ref *plumbing.Reference, prefix string) (*Tag, error) {
	name := ref.Name().Short()
	if !strings.HasPrefix(name, prefix) {
		return nil, nil
	}
	v, err := semver.Parse(strings.TrimPrefix(name, prefix))
	if err != nil {
		logger.Debug("ignoring non-version tag", "tag", name, "error", err)
		return nil, nil
	}

	var c *object.Commit
	obj, err := r.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		c, err = obj.Commit()
		if err != nil {
			logger.Debug("ignoring tag without commit target", "tag", name, "error", err)
			return nil, nil
		}
	case errors.Is(err, plumbing.ErrObjectNotFound):
		c, err = r.repo.CommitObject(ref.Hash())
		if err != nil {
			logger.Debug("ignoring tag without commit target", "tag", name, "error", err)
			return nil, nil
		}
	default:
		return nil, fmt.Errorf("reading tag %s: %w", name, err)
	}

	return &Tag{Name: name, Version: v, Commit: c.Hash, When: c.Committer.When}, nil
}

func newer(a, b *Tag) bool {
	if !a.When.Equal(b.When) {
		return a.When.After(b.When)
	}
	return a.Version.Compare(b.Version) > 0
}

func toRaw(c *object.Commit, index int) commit.RawCommit {
	summary, body := commit.SplitMessage(c.Message)
	id := c.Hash.String()
	return commit.RawCommit{
		ID:        id,
		ShortID:   id[:7],
		Summary:   summary,
		Body:      body,
		Author:    commit.Person{Name: c.Author.Name, Email: c.Author.Email},
		Timestamp: c.Author.When,
		Index:     index,
	}
}
