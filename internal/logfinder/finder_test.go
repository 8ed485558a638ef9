package logfinder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func touch(t *testing.T, path string, mod time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatal(err)
	}
}

func TestFindLogFile_PrefersNewest(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	legacy := filepath.Join(dir, "server.log")
	latest := filepath.Join(dir, "logs", "latest.log")
	touch(t, legacy, now.Add(-time.Hour))
	touch(t, latest, now)

	got, err := FindLogFile(dir)
	if err != nil {
		t.Fatalf("FindLogFile() error = %v", err)
	}
	if got != latest {
		t.Errorf("FindLogFile() = %q, want %q", got, latest)
	}
}

func TestFindLogFile_Legacy(t *testing.T) {
	dir := t.TempDir()
	legacy := filepath.Join(dir, "server.log")
	touch(t, legacy, time.Now())

	got, err := FindLogFile(dir)
	if err != nil {
		t.Fatalf("FindLogFile() error = %v", err)
	}
	if got != legacy {
		t.Errorf("FindLogFile() = %q, want %q", got, legacy)
	}
}

func TestFindLogFile_NoFiles(t *testing.T) {
	_, err := FindLogFile(t.TempDir())
	if !errors.Is(err, ErrNoLogFiles) {
		t.Errorf("FindLogFile() error = %v, want ErrNoLogFiles", err)
	}
}

func TestFindLogFile_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "logs", "latest.log"), 0755); err != nil {
		t.Fatal(err)
	}

	_, err := FindLogFile(dir)
	if !errors.Is(err, ErrNoLogFiles) {
		t.Errorf("FindLogFile() error = %v, want ErrNoLogFiles", err)
	}
}

func TestFindServerJar(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	old := filepath.Join(dir, "minecraft_server.1.8.9.jar")
	cur := filepath.Join(dir, "paper-1.20.4-496.jar")
	touch(t, old, now.Add(-time.Hour))
	touch(t, cur, now)
	touch(t, filepath.Join(dir, "unrelated-plugin.jar"), now.Add(time.Hour))

	got, err := FindServerJar(dir)
	if err != nil {
		t.Fatalf("FindServerJar() error = %v", err)
	}
	if got != cur {
		t.Errorf("FindServerJar() = %q, want %q", got, cur)
	}
}

func TestFindServerJar_None(t *testing.T) {
	_, err := FindServerJar(t.TempDir())
	if !errors.Is(err, ErrNoServerJar) {
		t.Errorf("FindServerJar() error = %v, want ErrNoServerJar", err)
	}
}

func TestFindServerDir_Explicit(t *testing.T) {
	dir := t.TempDir()
	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}

	got, err := FindServerDir(dir)
	if err != nil {
		t.Fatalf("FindServerDir() error = %v", err)
	}
	if got != want {
		t.Errorf("FindServerDir() = %q, want %q", got, want)
	}
}

func TestFindServerDir_ExplicitMissing(t *testing.T) {
	_, err := FindServerDir(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrServerDirNotFound) {
		t.Errorf("FindServerDir() error = %v, want ErrServerDirNotFound", err)
	}
}

func TestFindServerDir_Env(t *testing.T) {
	dir := t.TempDir()
	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvServerDir, dir)

	got, err := FindServerDir("")
	if err != nil {
		t.Fatalf("FindServerDir() error = %v", err)
	}
	if got != want {
		t.Errorf("FindServerDir() = %q, want %q", got, want)
	}
}

func TestFindServerDir_EnvInvalid(t *testing.T) {
	t.Setenv(EnvServerDir, filepath.Join(t.TempDir(), "missing"))

	_, err := FindServerDir("")
	if !errors.Is(err, ErrServerDirNotFound) {
		t.Errorf("FindServerDir() error = %v, want ErrServerDirNotFound", err)
	}
}

func TestFindServerDir_WorkingDirectory(t *testing.T) {
	t.Setenv(EnvServerDir, "")

	got, err := FindServerDir("")
	if err != nil {
		t.Fatalf("FindServerDir() error = %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("FindServerDir() = %q, want absolute path", got)
	}
}
