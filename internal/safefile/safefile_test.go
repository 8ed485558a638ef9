package safefile

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenRegular_Success(t *testing.T) {
	path := writeFile(t, "server.properties", "motd=hello")

	f, info, err := OpenRegular(path)
	if err != nil {
		t.Fatalf("OpenRegular() error = %v, want nil", err)
	}
	defer f.Close()

	if !info.Mode().IsRegular() {
		t.Error("expected regular file")
	}
	if info.Size() != int64(len("motd=hello")) {
		t.Errorf("Size() = %d", info.Size())
	}
}

func TestOpenRegular_FileNotExist(t *testing.T) {
	_, _, err := OpenRegular("/nonexistent/path/file.txt")
	if !os.IsNotExist(err) {
		t.Errorf("OpenRegular() error = %v, want os.IsNotExist", err)
	}
}

func TestOpenRegular_RejectsSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink test requires Unix")
	}

	target := writeFile(t, "target.yaml", "version: 1")
	link := filepath.Join(filepath.Dir(target), "link.yaml")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	_, _, err := OpenRegular(link)
	if !errors.Is(err, ErrNotRegularFile) {
		t.Errorf("OpenRegular() error = %v, want ErrNotRegularFile", err)
	}
}

func TestOpenRegular_RejectsDirectory(t *testing.T) {
	_, _, err := OpenRegular(t.TempDir())
	if !errors.Is(err, ErrNotRegularFile) {
		t.Errorf("OpenRegular() error = %v, want ErrNotRegularFile", err)
	}
}

func TestReadRegular(t *testing.T) {
	path := writeFile(t, "config.yaml", "jar: server.jar\n")

	data, err := ReadRegular(path, 1024)
	if err != nil {
		t.Fatalf("ReadRegular() error = %v", err)
	}
	if string(data) != "jar: server.jar\n" {
		t.Errorf("ReadRegular() = %q", data)
	}
}

func TestReadRegular_TooLarge(t *testing.T) {
	path := writeFile(t, "big.yaml", strings.Repeat("x", 2048))

	_, err := ReadRegular(path, 1024)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("ReadRegular() error = %v, want ErrTooLarge", err)
	}
}

func TestSanitizePathError(t *testing.T) {
	_, err := os.Open("/secret/dir/missing.yaml")
	if err == nil {
		t.Fatal("expected error")
	}

	sanitized := SanitizePathError(err)
	if strings.Contains(sanitized.Error(), "/secret/dir") {
		t.Errorf("SanitizePathError() = %q, still contains path", sanitized)
	}
	if !errors.Is(sanitized, os.ErrNotExist) {
		t.Errorf("SanitizePathError() lost the cause: %v", sanitized)
	}

	plain := errors.New("plain")
	if SanitizePathError(plain) != plain {
		t.Error("SanitizePathError() changed a non-path error")
	}
}
