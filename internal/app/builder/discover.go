package builder

import (
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"

	"lens/internal/app/model"
	"lens/internal/app/paths"
	"lens/internal/app/watcher"
)

// discoverProjects locates module manifests under root. A go.work file at
// the root enumerates the members; otherwise every go.mod in the tree
// outside skipped directories starts a project.
func (b *builder) discoverProjects(root string, filter watcher.Filter) []*model.Project {
	if projects, ok := b.workspaceProjects(root); ok {
		return projects
	}

	return b.walkProjects(root, filter)
}

// workspaceProjects reads the go.work member list when the file exists
func (b *builder) workspaceProjects(root string) ([]*model.Project, bool) {
	workPath := filepath.Join(root, "go.work")

	data, err := os.ReadFile(workPath)
	if err != nil {
		return nil, false
	}

	wf, err := modfile.ParseWork(workPath, data, nil)
	if err != nil {
		b.log.Warn().Err(err).Msgf("Unparsable go.work in %s", root)

		return nil, false
	}

	projects := make([]*model.Project, 0, len(wf.Use))

	for _, use := range wf.Use {
		dir := use.Path
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}

		project, ok := b.projectAt(dir)
		if !ok {
			b.log.Warn().Msgf("Workspace member %s has no manifest", use.Path)

			continue
		}

		projects = append(projects, project)
	}

	return projects, true
}

// walkProjects finds every go.mod under root
func (b *builder) walkProjects(root string, filter watcher.Filter) []*model.Project {
	var projects []*model.Project

	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		if info.IsDir() {
			if !filter.AllowDir(path) {
				return filepath.SkipDir
			}

			return nil
		}

		if filepath.Base(path) != "go.mod" {
			return nil
		}

		if project, ok := b.projectAt(filepath.Dir(path)); ok {
			projects = append(projects, project)
		}

		return nil
	})

	return projects
}

// projectAt builds a Project from the manifest in dir. The project name is
// the declared module path; an unparsable manifest still counts as a
// project under its directory name.
func (b *builder) projectAt(dir string) (*model.Project, bool) {
	dir = paths.Normalize(dir)
	modPath := filepath.Join(dir, "go.mod")

	data, err := os.ReadFile(modPath)
	if err != nil {
		return nil, false
	}

	name := filepath.Base(dir)

	mf, err := modfile.Parse(modPath, data, nil)
	if err != nil || mf.Module == nil {
		b.log.Warn().Msgf("Unparsable go.mod in %s", dir)
	} else {
		name = mf.Module.Mod.Path
	}

	return &model.Project{Name: name, Dir: dir}, true
}
