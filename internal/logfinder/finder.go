// Package logfinder locates a Minecraft server directory, its current log
// file and its server jar.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// EnvServerDir is the environment variable naming the server directory.
const EnvServerDir = "MCVISOR_SERVER_DIR"

// Sentinel errors.
var (
	ErrServerDirNotFound = errors.New("server directory not found")
	ErrNoLogFiles        = errors.New("no log files found")
	ErrNoServerJar       = errors.New("no server jar found")
)

// LogFileCandidates returns the log file locations relative to a server
// directory, newest layout first: logs/latest.log (1.7 and later) and the
// legacy server.log.
func LogFileCandidates() []string {
	return []string{
		filepath.Join("logs", "latest.log"),
		"server.log",
	}
}

// jarPatterns are the file names vanilla and common server distributions use.
var jarPatterns = []string{
	"server.jar",
	"minecraft_server*.jar",
	"paper*.jar",
	"spigot*.jar",
	"craftbukkit*.jar",
	"forge*.jar",
}

// FindServerDir returns the server directory.
//
// Priority:
//  1. explicit (if non-empty)
//  2. MCVISOR_SERVER_DIR environment variable
//  3. the current working directory
//
// A directory qualifies when it exists. The returned path is absolute with
// symlinks resolved.
func FindServerDir(explicit string) (string, error) {
	if explicit != "" {
		if resolved := resolveDir(explicit); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: specified directory does not exist", ErrServerDirNotFound)
	}

	if envDir := os.Getenv(EnvServerDir); envDir != "" {
		if resolved := resolveDir(envDir); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s environment variable points to invalid directory", ErrServerDirNotFound, EnvServerDir)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServerDirNotFound, err)
	}
	if resolved := resolveDir(wd); resolved != "" {
		return resolved, nil
	}
	return "", ErrServerDirNotFound
}

// candidate holds a path and its modification time, stat-ed once so files
// deleted during the scan do not break sorting.
type candidate struct {
	path    string
	modTime int64
}

// FindLogFile returns the most recently modified log file of the server
// in dir, or ErrNoLogFiles.
func FindLogFile(dir string) (string, error) {
	var paths []string
	for _, rel := range LogFileCandidates() {
		paths = append(paths, filepath.Join(dir, rel))
	}
	return newest(paths, ErrNoLogFiles)
}

// FindServerJar returns the most recently modified server jar in dir, or
// ErrNoServerJar.
func FindServerJar(dir string) (string, error) {
	var paths []string
	for _, p := range jarPatterns {
		matches, err := filepath.Glob(filepath.Join(dir, p))
		if err != nil {
			return "", fmt.Errorf("globbing server jars: %w", err)
		}
		paths = append(paths, matches...)
	}
	return newest(paths, ErrNoServerJar)
}

func newest(paths []string, notFound error) (string, error) {
	candidates := make([]candidate, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true

		info, err := os.Lstat(p)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		candidates = append(candidates, candidate{path: p, modTime: info.ModTime().UnixNano()})
	}
	if len(candidates) == 0 {
		return "", notFound
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].modTime > candidates[j].modTime
	})
	return candidates[0].path, nil
}

// resolveDir returns dir as an absolute path with symlinks resolved, or ""
// when it is not a directory.
func resolveDir(dir string) string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return ""
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return ""
	}
	return abs
}
