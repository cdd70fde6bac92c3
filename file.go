package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func IsDir(path string) bool {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return true
	}

	return false
}

func IsFile(path string) bool {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return true
	}

	return false
}

// ResolveFolder tries the path as given, then relative to the project root.
func ResolveFolder(path, projectRoot string) (string, error) {
	candidates := []string{path}

	if projectRoot != "" && !filepath.IsAbs(path) {
		candidates = append(candidates, filepath.Join(projectRoot, path))
	}

	for _, candidate := range candidates {
		if IsFile(candidate) {
			return "", fmt.Errorf("%w: \"%s\"", ErrPathIsAFile, candidate)
		}

		if !IsDir(candidate) {
			continue
		}

		absolutePath, err := filepath.Abs(candidate)

		if err != nil {
			return "", fmt.Errorf("%w: \"%s\": %v", ErrCouldNotResolvePath, candidate, err)
		}

		return absolutePath, nil
	}

	return "", fmt.Errorf("%w: could not find \"%s\" on the file system. Is the name typed correctly?", ErrCouldNotResolvePath, path)
}

func (ctx *Context) projectRoot() string {
	if ctx.Config.ProjectRoot != "" {
		return ctx.Config.ProjectRoot
	}

	// Executables live in <project>/bin
	executable, err := os.Executable()

	if err != nil {
		return ""
	}

	return filepath.Dir(filepath.Dir(executable))
}

func (ctx *Context) resolveFolder(path string) (string, error) {
	return ResolveFolder(path, ctx.projectRoot())
}
