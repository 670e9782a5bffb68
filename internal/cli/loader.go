package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cwoodland/CuriousGremlin/internal/script"
)

// LoadMode controls how errors are handled during document loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// DocumentResult holds the programs compiled from one document.
type DocumentResult struct {
	Path     string
	Programs []script.Compiled
}

// LoadError represents an error that occurred while finding or reading
// documents, before any document was decoded.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Error code constants shared by all commands. Document errors use the
// E2xx codes of package script.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No documents found
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeStoreFailed = "E008" // Catalog open/read/write error
	ErrCodeInvalidFlag = "E009" // Flag value out of range
)

// LoadDocuments finds, decodes and compiles the documents named by paths,
// running up to jobs documents at once (jobs <= 0 means one per CPU).
//
// A directory contributes each YAML file below it, and each directory below
// it holding .cue files as one CUE package. Results are returned in path
// order whatever order the documents finish in.
func LoadDocuments(ctx context.Context, paths []string, jobs int, mode LoadMode) ([]DocumentResult, []error) {
	var errs []error

	var docs []string
	for _, p := range paths {
		found, err := expandPath(p)
		if err != nil {
			errs = append(errs, err)
			if mode == LoadModeFailFast {
				return nil, errs
			}
			continue
		}
		docs = append(docs, found...)
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	slog.Debug("loading documents", "documents", len(docs), "jobs", jobs)

	results := make([]DocumentResult, len(docs))
	docErrs := make([]error, len(docs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for i, path := range docs {
		i, path := i, path
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			programs, err := compileDocument(path)
			if err != nil {
				docErrs[i] = err
				if mode == LoadModeFailFast {
					return err
				}
				return nil
			}
			results[i] = DocumentResult{Path: path, Programs: programs}
			return nil
		})
	}
	waitErr := eg.Wait()

	for _, err := range docErrs {
		if err != nil {
			errs = append(errs, err)
			if mode == LoadModeFailFast {
				return nil, errs
			}
		}
	}
	if len(errs) == 0 && waitErr != nil {
		// Cancelled by the caller before any document failed.
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "loading cancelled", Err: waitErr})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return results, nil
}

func compileDocument(path string) ([]script.Compiled, error) {
	doc, err := script.Load(path)
	if err != nil {
		return nil, err
	}
	return script.Compile(doc)
}

// expandPath resolves one command-line path to the documents it names.
func expandPath(path string) ([]string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", path), Err: err}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing %s: %v", path, err), Err: err}
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	found, err := FindDocuments(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err), Err: err}
	}
	if len(found) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no documents found in %s", path)}
	}
	return found, nil
}

// FindDocuments walks dir and returns its YAML files, sorted, followed by
// each directory that directly holds .cue files, sorted. Such a directory
// is loaded as one CUE package.
func FindDocuments(dir string) ([]string, error) {
	var yamlFiles, cueDirs []string
	seen := make(map[string]bool)
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			yamlFiles = append(yamlFiles, path)
		case ".cue":
			if pkg := filepath.Dir(path); !seen[pkg] {
				seen[pkg] = true
				cueDirs = append(cueDirs, pkg)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(yamlFiles)
	sort.Strings(cueDirs)
	return append(yamlFiles, cueDirs...), nil
}

// errorCode returns the code carried by err, or ErrCodeGeneric.
func errorCode(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	if code := script.CodeOf(err); code != "" {
		return string(code)
	}
	return ErrCodeGeneric
}

// errorMessage returns err's message without its code.
func errorMessage(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Message
	}
	var docErr *script.Error
	if errors.As(err, &docErr) {
		loc := docErr.File
		if docErr.Pos != "" {
			loc += ":" + docErr.Pos
		}
		if docErr.Path != "" {
			loc += ": " + docErr.Path
		}
		return loc + ": " + docErr.Message
	}
	return err.Error()
}
