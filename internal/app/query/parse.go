package query

import (
	"go/ast"
	"go/parser"
	"go/token"
	"hash/fnv"
	"strings"
	"sync"

	"lens/internal/app/model"
	"lens/internal/app/paths"
)

// parsedFile caches one document's AST keyed by a hash of the content it
// was parsed from
type parsedFile struct {
	hash uint64
	fset *token.FileSet
	file *ast.File
}

// parseCache memoizes ASTs per root so repeated queries only re-parse
// documents whose content changed since the last query
type parseCache struct {
	mu    sync.Mutex
	roots map[string]map[string]*parsedFile
}

func newParseCache() *parseCache {
	return &parseCache{
		roots: make(map[string]map[string]*parsedFile),
	}
}

// get returns the AST for a document, reusing the memoized parse when the
// content hash still matches. Documents that do not parse return nil; a
// half-typed file in the editor is not an error.
func (p *parseCache) get(rootKey string, doc *model.Document) *parsedFile {
	key := paths.Key(doc.Path)
	hash := contentHash(doc.Content)

	p.mu.Lock()
	files, ok := p.roots[rootKey]
	if !ok {
		files = make(map[string]*parsedFile)
		p.roots[rootKey] = files
	}

	if pf, ok := files[key]; ok && pf.hash == hash {
		p.mu.Unlock()

		return pf
	}
	p.mu.Unlock()

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, doc.Path, doc.Content, parser.ParseComments)
	if err != nil {
		file = nil
	}

	pf := &parsedFile{hash: hash, fset: fset, file: file}

	p.mu.Lock()
	files[key] = pf
	p.mu.Unlock()

	return pf
}

// prune drops memo entries for documents that no longer exist under a root
func (p *parseCache) prune(rootKey string, live map[string]struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()

	files, ok := p.roots[rootKey]
	if !ok {
		return
	}

	for key := range files {
		if _, ok := live[key]; !ok {
			delete(files, key)
		}
	}
}

func contentHash(content string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(content))

	return h.Sum64()
}

// isGoSource reports whether a document holds parseable Go source
func isGoSource(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".go")
}

// lineExcerpt returns the trimmed source line at a 1-based line number
func lineExcerpt(content string, line int) string {
	lines := strings.Split(content, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}

	return strings.TrimSpace(lines[line-1])
}
