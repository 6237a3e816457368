package query

//go:generate mockgen -source=query.go -destination=query_mock.go -package=query

import (
	"fmt"
	"go/ast"
	"go/token"
	"sort"

	"lens/internal/app/cache"
	"lens/internal/app/errors"
	"lens/internal/app/model"
	"lens/internal/app/paths"
	"lens/internal/config/logger"
)

// Declaration is one named top-level declaration in a workspace
type Declaration struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Signature string `json:"signature"`
	Doc       string `json:"doc,omitempty"`
	File      string `json:"file"`
	Line      int    `json:"line"`
	Project   string `json:"project"`
}

// Reference is one use site of an identifier
type Reference struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Excerpt string `json:"excerpt"`
}

// Engine answers syntactic queries against cached representations. Every
// call re-fetches the current representation; handles are never held
// across calls.
type Engine interface {
	Symbol(root, name string) ([]Declaration, error)
	Doc(root, name string) ([]Declaration, error)
	References(root, name string) ([]Reference, error)
}

// engine implements the Engine interface
type engine struct {
	cache  cache.Cache
	parsed *parseCache
	log    logger.Logger
}

// NewEngine creates a query engine over the workspace cache
func NewEngine(c cache.Cache, log logger.Logger) Engine {
	return &engine{
		cache:  c,
		parsed: newParseCache(),
		log:    log.WithComponent("QUERY"),
	}
}

// Symbol returns every top-level declaration of name under root
func (e *engine) Symbol(root, name string) ([]Declaration, error) {
	decls, err := e.collectDeclarations(root, name)
	if err != nil {
		return nil, err
	}

	if len(decls) == 0 {
		return nil, fmt.Errorf("%w: %s", errors.ErrSymbolNotFound, name)
	}

	for i := range decls {
		decls[i].Doc = ""
	}

	return decls, nil
}

// Doc returns the declarations of name along with their doc comments
func (e *engine) Doc(root, name string) ([]Declaration, error) {
	decls, err := e.collectDeclarations(root, name)
	if err != nil {
		return nil, err
	}

	if len(decls) == 0 {
		return nil, fmt.Errorf("%w: %s", errors.ErrSymbolNotFound, name)
	}

	return decls, nil
}

// References returns every use site of name under root, excluding the
// declaration sites themselves
func (e *engine) References(root, name string) ([]Reference, error) {
	rep, err := e.cache.CurrentRepresentation(root)
	if err != nil {
		return nil, err
	}

	var refs []Reference

	e.eachParsedFile(rep, func(doc *model.Document, pf *parsedFile) {
		declPositions := declarationPositions(pf.file, name)

		ast.Inspect(pf.file, func(n ast.Node) bool {
			ident, ok := n.(*ast.Ident)
			if !ok || ident.Name != name {
				return true
			}

			if _, isDecl := declPositions[ident.Pos()]; isDecl {
				return true
			}

			pos := pf.fset.Position(ident.Pos())
			refs = append(refs, Reference{
				File:    doc.Path,
				Line:    pos.Line,
				Column:  pos.Column,
				Excerpt: lineExcerpt(doc.Content, pos.Line),
			})

			return true
		})
	})

	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: %s", errors.ErrSymbolNotFound, name)
	}

	sort.Slice(refs, func(i, j int) bool {
		if refs[i].File != refs[j].File {
			return refs[i].File < refs[j].File
		}

		return refs[i].Line < refs[j].Line
	})

	return refs, nil
}

// collectDeclarations walks every parsed document under root for top-level
// declarations of name
func (e *engine) collectDeclarations(root, name string) ([]Declaration, error) {
	rep, err := e.cache.CurrentRepresentation(root)
	if err != nil {
		return nil, err
	}

	var decls []Declaration

	e.eachParsedFile(rep, func(doc *model.Document, pf *parsedFile) {
		project := ""
		if doc.Project != nil {
			project = doc.Project.Name
		}

		for _, d := range fileDeclarations(pf.file, name) {
			pos := pf.fset.Position(d.pos)
			decls = append(decls, Declaration{
				Name:      name,
				Kind:      d.kind,
				Signature: lineExcerpt(doc.Content, pos.Line),
				Doc:       d.doc,
				File:      doc.Path,
				Line:      pos.Line,
				Project:   project,
			})
		}
	})

	sort.Slice(decls, func(i, j int) bool {
		if decls[i].File != decls[j].File {
			return decls[i].File < decls[j].File
		}

		return decls[i].Line < decls[j].Line
	})

	return decls, nil
}

// eachParsedFile runs fn over every Go document in the representation that
// parses, refreshing the memo and pruning stale entries as it goes
func (e *engine) eachParsedFile(rep *model.Representation, fn func(*model.Document, *parsedFile)) {
	rootKey := paths.Key(rep.Root())
	live := make(map[string]struct{})

	for _, doc := range rep.Documents() {
		if !isGoSource(doc.Path) {
			continue
		}

		live[paths.Key(doc.Path)] = struct{}{}

		pf := e.parsed.get(rootKey, doc)
		if pf.file == nil {
			e.log.Debug().Msgf("Skipping unparsable document %s", doc.Path)

			continue
		}

		fn(doc, pf)
	}

	e.parsed.prune(rootKey, live)
}

// declaration is an intermediate match inside one file
type declaration struct {
	kind string
	doc  string
	pos  token.Pos
}

// fileDeclarations finds top-level declarations of name in one file
func fileDeclarations(file *ast.File, name string) []declaration {
	var found []declaration

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Name.Name != name {
				continue
			}

			kind := "func"
			if d.Recv != nil {
				kind = "method"
			}

			found = append(found, declaration{kind: kind, doc: d.Doc.Text(), pos: d.Name.Pos()})
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					if s.Name.Name != name {
						continue
					}

					found = append(found, declaration{kind: "type", doc: specDoc(s.Doc, d.Doc), pos: s.Name.Pos()})
				case *ast.ValueSpec:
					for _, ident := range s.Names {
						if ident.Name != name {
							continue
						}

						kind := "var"
						if d.Tok == token.CONST {
							kind = "const"
						}

						found = append(found, declaration{kind: kind, doc: specDoc(s.Doc, d.Doc), pos: ident.Pos()})
					}
				}
			}
		}
	}

	return found
}

// declarationPositions collects the identifier positions where name is
// declared at the top level of a file
func declarationPositions(file *ast.File, name string) map[token.Pos]struct{} {
	positions := make(map[token.Pos]struct{})

	for _, d := range fileDeclarations(file, name) {
		positions[d.pos] = struct{}{}
	}

	return positions
}

// specDoc prefers the spec's own comment, falling back to the group's
func specDoc(spec, group *ast.CommentGroup) string {
	if spec != nil {
		return spec.Text()
	}

	return group.Text()
}
