package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dubstrip/internal/ffprobe"
	"dubstrip/internal/filter"
	"dubstrip/internal/plan"
)

func samplePlan(t *testing.T, input string) plan.Plan {
	t.Helper()
	f, err := filter.Parse("jpn")
	if err != nil {
		t.Fatalf("filter.Parse: %v", err)
	}
	result := ffprobe.Result{Streams: []ffprobe.Stream{
		{Index: 0, CodecType: "video"},
		{Index: 1, CodecType: "audio", Tags: map[string]string{"language": "jpn"}},
	}}
	return plan.Build(input, result, f, plan.Options{})
}

func TestRenderShape(t *testing.T) {
	s := New("run-1", []string{"jpn", "unknown"})
	s.Append(samplePlan(t, "/media/show.mkv"))

	text := s.Render()
	if !strings.HasPrefix(text, "#!/bin/bash\n") {
		t.Errorf("expected bash shebang, got %q", text[:20])
	}
	if !strings.Contains(text, "# Run ID: run-1") {
		t.Error("expected run id in header")
	}
	if !strings.Contains(text, "# Keeping languages: jpn, unknown") {
		t.Error("expected language list in header")
	}
	if !strings.Contains(text, `echo "Processing /media/show.mkv..."`) {
		t.Error("expected echo line per file")
	}
	if !strings.Contains(text, "-map 0:0 -map 0:1") {
		t.Error("expected re-mux command in body")
	}
}

func TestWriteFileIsNotExecutable(t *testing.T) {
	s := New("run-1", []string{"jpn"})
	s.Append(samplePlan(t, "/media/show.mkv"))

	path := filepath.Join(t.TempDir(), "process-media-files.sh")
	if err := s.WriteFile(path, true); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm()&0o111 != 0 {
		t.Errorf("script should not be executable, mode %v", info.Mode())
	}
}

func TestWriteFileReplacesExecutableScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.sh")
	if err := os.WriteFile(path, []byte("#!/bin/bash\n"), 0o755); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	s := New("run-2", []string{"jpn"})
	s.Append(samplePlan(t, "/media/show.mkv"))
	if err := s.WriteFile(path, true); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm()&0o111 != 0 {
		t.Errorf("replaced script regained executable bit: %v", info.Mode())
	}
}

func TestWriteFileRefusesExistingWithoutOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keep.sh")
	if err := os.WriteFile(path, []byte("#!/bin/bash\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	s := New("run-7", []string{"jpn"})
	if err := s.WriteFile(path, false); !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite for existing file, got %v", err)
	}

	fresh := filepath.Join(t.TempDir(), "new.sh")
	if err := s.WriteFile(fresh, false); err != nil {
		t.Fatalf("WriteFile on fresh path: %v", err)
	}
}

func TestWriteFileUnwritableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	defer os.Chmod(dir, 0o755)

	s := New("run-3", nil)
	err := s.WriteFile(filepath.Join(dir, "out.sh"), true)
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
}

func TestWriteFileEmptyPath(t *testing.T) {
	s := New("run-4", nil)
	if err := s.WriteFile("  ", true); !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite for empty path, got %v", err)
	}
}

func TestEmptyScriptStillRenders(t *testing.T) {
	s := New("run-5", []string{"jpn"})
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}
	if !strings.HasPrefix(s.Render(), "#!/bin/bash\n") {
		t.Error("empty script should still carry the header")
	}
}

func TestEchoQuotesEmbeddedQuotes(t *testing.T) {
	s := New("run-6", nil)
	s.Append(samplePlan(t, `/media/the "best" show.mkv`))
	if !strings.Contains(s.Render(), `echo "Processing /media/the \"best\" show.mkv..."`) {
		t.Errorf("expected escaped quotes in echo line:\n%s", s.Render())
	}
}
