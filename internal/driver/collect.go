package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// SourceExt is the extension of files picked up from directories.
const SourceExt = ".swift"

// ErrNoSourceFiles is returned when the given paths hold no Swift files.
var ErrNoSourceFiles = errors.New("format: no source files found")

// Каталоги, которые не содержат исходников проекта.
var skipDirs = map[string]struct{}{
	"DerivedData":  {},
	"Pods":         {},
	"Carthage":     {},
	"node_modules": {},
}

// CollectFiles expands paths into a sorted, deduplicated list of Swift
// files. Directories are walked recursively; hidden directories, a root
// .gitignore and the exclude patterns prune the walk. Files named
// explicitly are kept if they have the Swift extension.
func CollectFiles(ctx context.Context, paths, exclude []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if filepath.Ext(p) == SourceExt {
				addFile(p)
			}
			continue
		}

		matchers := ignoreMatchers(p, exclude)
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if path == p {
				return nil
			}
			rel, relErr := filepath.Rel(p, path)
			if relErr != nil {
				return relErr
			}
			rel = filepath.ToSlash(rel)
			name := d.Name()

			if d.IsDir() {
				if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				if ignored(matchers, rel) || ignored(matchers, rel+"/") {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type()&fs.ModeSymlink != 0 || filepath.Ext(name) != SourceExt {
				return nil
			}
			if ignored(matchers, rel) {
				return nil
			}
			addFile(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// ignoreMatchers compiles the root .gitignore, if any, and the exclude list.
func ignoreMatchers(root string, exclude []string) []*ignore.GitIgnore {
	var out []*ignore.GitIgnore
	if gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		out = append(out, gi)
	}
	if len(exclude) > 0 {
		out = append(out, ignore.CompileIgnoreLines(exclude...))
	}
	return out
}

func ignored(matchers []*ignore.GitIgnore, rel string) bool {
	for _, m := range matchers {
		if m.MatchesPath(rel) {
			return true
		}
	}
	return false
}
