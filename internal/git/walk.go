package git

import (
	"container/heap"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// walker yields commits newest committer time first, like
// `git rev-list from ^hide`. Commits reachable from a hidden root are
// painted hidden and pass the paint on to their parents. The walk ends
// once every queued commit is hidden, so history behind a tag is never
// read in full.
type walker struct {
	repo    *git.Repository
	hidden  map[plumbing.Hash]bool
	emitted map[plumbing.Hash]bool
	queue   commitQueue
}

func newWalker(repo *git.Repository, from plumbing.Hash, hide ...plumbing.Hash) (*walker, error) {
	w := &walker{
		repo:    repo,
		hidden:  make(map[plumbing.Hash]bool),
		emitted: make(map[plumbing.Hash]bool),
	}
	for _, h := range hide {
		if err := w.push(h, true); err != nil {
			return nil, err
		}
	}
	if err := w.push(from, false); err != nil {
		return nil, err
	}
	return w, nil
}

// push queues h. A commit already queued visible is queued again when it
// turns hidden so the paint reaches its parents.
func (w *walker) push(h plumbing.Hash, hidden bool) error {
	if prev, seen := w.hidden[h]; seen && (prev || !hidden) {
		return nil
	}
	c, err := w.repo.CommitObject(h)
	if err != nil {
		return fmt.Errorf("reading commit %s: %w", h, err)
	}
	w.hidden[h] = hidden
	heap.Push(&w.queue, c)
	return nil
}

// next returns the next visible commit, or nil when none remain.
func (w *walker) next() (*object.Commit, error) {
	for w.queue.Len() > 0 && w.anyVisible() {
		c := heap.Pop(&w.queue).(*object.Commit)
		hidden := w.hidden[c.Hash]
		for _, p := range c.ParentHashes {
			if err := w.push(p, hidden); err != nil {
				return nil, err
			}
		}
		if !hidden && !w.emitted[c.Hash] {
			w.emitted[c.Hash] = true
			return c, nil
		}
	}
	return nil, nil
}

// isHidden reports whether h was painted hidden. A commit returned by next
// can be painted later when a hidden path reaches it out of time order.
func (w *walker) isHidden(h plumbing.Hash) bool {
	return w.hidden[h]
}

func (w *walker) anyVisible() bool {
	for _, c := range w.queue {
		if !w.hidden[c.Hash] {
			return true
		}
	}
	return false
}

// commitQueue is a max-heap on committer time. Ties order by hash so the
// walk is deterministic.
type commitQueue []*object.Commit

func (q commitQueue) Len() int { return len(q) }

func (q commitQueue) Less(i, j int) bool {
	a, b := q[i].Committer.When, q[j].Committer.When
	if !a.Equal(b) {
		return a.After(b)
	}
	return q[i].Hash.String() < q[j].Hash.String()
}

func (q commitQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *commitQueue) Push(x any) { *q = append(*q, x.(*object.Commit)) }

func (q *commitQueue) Pop() any {
	old := *q
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return c
}
