package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/portable-tools/ptinstall/internal/testutil"
)

// tarFixture describes one entry of a test tar.gz archive.
// A zero typ means a regular file.
type tarFixture struct {
	name string
	body string
	typ  byte
	link string
	mode int64
}

func createTestTarGz(t *testing.T, entries ...tarFixture) string {
	t.Helper()

	archivePath := filepath.Join(t.TempDir(), "test.tar.gz")
	writeTarGz(t, archivePath, entries)
	return archivePath
}

func writeTarGz(t *testing.T, path string, entries []tarFixture) {
	t.Helper()

	converted := make([]testutil.TarEntry, 0, len(entries))
	for _, e := range entries {
		converted = append(converted, testutil.TarEntry{Name: e.name, Body: e.body, Type: e.typ, Linkname: e.link, Mode: e.mode})
	}
	testutil.WriteTarGz(t, path, converted...)
}

func writeTestFile(t *testing.T, path string, data []byte) {
	t.Helper()
	testutil.WriteFile(t, path, data)
}

// szFixture describes one entry of a hand-built 7z image.
type szFixture struct {
	name   string
	dir    bool
	data   []byte
	method []byte
	props  []byte
	badCRC bool
	// no stream and no empty-stream record
	missingStream bool
}

var methodLZMA2 = testutil.MethodLZMA2

func build7z(t *testing.T, entries ...szFixture) []byte {
	t.Helper()

	converted := make([]testutil.SevenZipEntry, 0, len(entries))
	for _, e := range entries {
		converted = append(converted, testutil.SevenZipEntry{
			Name: e.name, Dir: e.dir, Data: e.data, Method: e.method, Props: e.props, BadCRC: e.badCRC,
			MissingStream: e.missingStream,
		})
	}
	image := testutil.SevenZip(t, converted...)
	if !bytes.HasPrefix(image, Signature[:]) {
		t.Fatal("7z image does not start with the signature")
	}
	return image
}

func sfxStub(image []byte) []byte {
	return testutil.SfxStub(image)
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func assertNotExist(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s not to exist, got err=%v", path, err)
	}
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read %s: %v", dir, err)
	}
	if len(entries) != 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected %s to be empty, found %v", dir, names)
	}
}

// recordingLogger keeps every message for assertions.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) record(level, msg string, kv []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf("%s %s %v", level, msg, kv))
}

func (l *recordingLogger) Debug(msg string, kv ...interface{}) { l.record("DEBUG", msg, kv) }
func (l *recordingLogger) Info(msg string, kv ...interface{})  { l.record("INFO", msg, kv) }
func (l *recordingLogger) Warn(msg string, kv ...interface{})  { l.record("WARN", msg, kv) }
func (l *recordingLogger) Error(msg string, kv ...interface{}) { l.record("ERROR", msg, kv) }

func (l *recordingLogger) count(prefix string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, line := range l.lines {
		if len(line) >= len(prefix) && line[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}
