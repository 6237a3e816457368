package model

import (
	"sync"
	"time"

	"lens/internal/app/paths"
)

// Project groups the documents under one module manifest directory
type Project struct {
	Name string
	Dir  string
}

// Document is one source file inside a Representation. Documents are
// immutable once inserted; an update replaces the whole value, so a reader
// holding a Document always sees a consistent snapshot.
type Document struct {
	Path      string
	Project   *Project
	Content   string
	UpdatedAt time.Time
}

// Representation is the in-memory model of one workspace root: projects
// owning documents, keyed by normalized full path. Every mutation happens
// under the write lock and is observable all-at-once.
type Representation struct {
	mu        sync.RWMutex
	root      string
	projects  map[string]*Project
	documents map[string]*Document
	fallback  *Project
	builtAt   time.Time
}

// Stats summarizes a representation for status reporting
type Stats struct {
	Root      string
	Projects  int
	Documents int
	BuiltAt   time.Time
}

// NewRepresentation creates an empty representation for a normalized root
func NewRepresentation(root string) *Representation {
	return &Representation{
		root:      root,
		projects:  make(map[string]*Project),
		documents: make(map[string]*Document),
		builtAt:   time.Now(),
	}
}

// Root returns the normalized workspace root
func (r *Representation) Root() string {
	return r.root
}

// AddProject registers a project. The first project added becomes the
// fallback owner for documents no project directory matches.
func (r *Representation) AddProject(p *Project) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.Dir = paths.Normalize(p.Dir)
	r.projects[paths.Key(p.Dir)] = p

	if r.fallback == nil {
		r.fallback = p
	}
}

// RemoveProject removes a project by directory. Its documents stay owned by
// the removed project value until they are individually mutated.
func (r *Representation) RemoveProject(dir string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := paths.Key(dir)
	p, ok := r.projects[key]
	if !ok {
		return false
	}

	delete(r.projects, key)

	if r.fallback == p {
		r.fallback = nil
		for _, remaining := range r.projects {
			r.fallback = remaining
			break
		}
	}

	return true
}

// Projects returns a snapshot of all projects
func (r *Representation) Projects() []*Project {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := make([]*Project, 0, len(r.projects))
	for _, p := range r.projects {
		projects = append(projects, p)
	}

	return projects
}

// ProjectCount returns the number of projects
func (r *Representation) ProjectCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.projects)
}

// ProjectFor selects the owning project for a file path: the project whose
// directory is the longest prefix of the file's directory. Falls back to the
// default project when nothing matches; returns nil only when the
// representation has no projects at all. Ownership is decided at mutation
// time and never re-evaluated for existing documents.
func (r *Representation) ProjectFor(path string) *Project {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.projectForLocked(path)
}

func (r *Representation) projectForLocked(path string) *Project {
	var (
		best    *Project
		bestLen = -1
	)

	for _, p := range r.projects {
		if paths.HasPrefix(path, p.Dir) && len(p.Dir) > bestLen {
			best = p
			bestLen = len(p.Dir)
		}
	}

	if best == nil {
		return r.fallback
	}

	return best
}

// Document returns the document at a normalized path
func (r *Representation) Document(path string) (*Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.documents[paths.Key(path)]

	return doc, ok
}

// Documents returns a snapshot of all documents
func (r *Representation) Documents() []*Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	documents := make([]*Document, 0, len(r.documents))
	for _, doc := range r.documents {
		documents = append(documents, doc)
	}

	return documents
}

// DocumentCount returns the number of documents
func (r *Representation) DocumentCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.documents)
}

// InsertDocument adds a document for a path, selecting the owning project.
// Returns false when the representation has no projects to own it.
func (r *Representation) InsertDocument(path, content string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	path = paths.Normalize(path)

	project := r.projectForLocked(path)
	if project == nil {
		return false
	}

	r.documents[paths.Key(path)] = &Document{
		Path:      path,
		Project:   project,
		Content:   content,
		UpdatedAt: time.Now(),
	}

	return true
}

// ReplaceContent swaps a document's content by replacing the stored value.
// Returns false when no document exists at the path.
func (r *Representation) ReplaceContent(path, content string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := paths.Key(path)
	doc, ok := r.documents[key]
	if !ok {
		return false
	}

	r.documents[key] = &Document{
		Path:      doc.Path,
		Project:   doc.Project,
		Content:   content,
		UpdatedAt: time.Now(),
	}

	return true
}

// RemoveDocument removes a document by path. Removing an absent path is a
// no-op and reports false.
func (r *Representation) RemoveDocument(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := paths.Key(path)
	if _, ok := r.documents[key]; !ok {
		return false
	}

	delete(r.documents, key)

	return true
}

// RemoveDirectory removes every document whose path lies under dir and
// returns how many were removed. Used for directory deletions, where
// per-file notifications are not reliably delivered.
func (r *Representation) RemoveDirectory(dir string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0

	for key, doc := range r.documents {
		if paths.HasPrefix(doc.Path, dir) {
			delete(r.documents, key)
			removed++
		}
	}

	return removed
}

// Stats returns counters for status reporting
func (r *Representation) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Stats{
		Root:      r.root,
		Projects:  len(r.projects),
		Documents: len(r.documents),
		BuiltAt:   r.builtAt,
	}
}
