package text

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"
)

const sample = "却说贾宝玉和林黛玉在园中说话，王熙凤笑道。"

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "novel.txt")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_UTF8(t *testing.T) {
	path := writeFile(t, []byte(sample))

	got, enc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if enc != UTF8 {
		t.Errorf("encoding = %s, want %s", enc, UTF8)
	}
	if got != sample {
		t.Errorf("Load() = %q, want %q", got, sample)
	}
}

func TestLoad_UTF8WithBOM(t *testing.T) {
	path := writeFile(t, append([]byte{0xEF, 0xBB, 0xBF}, sample...))

	got, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != sample {
		t.Errorf("BOM not stripped: %q", got)
	}
}

func TestLoad_GBKFallback(t *testing.T) {
	gbk, err := simplifiedchinese.GBK.NewEncoder().String(sample)
	if err != nil {
		t.Fatalf("encoding sample as GBK: %v", err)
	}
	path := writeFile(t, []byte(gbk))

	got, enc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if enc != GBK {
		t.Errorf("encoding = %s, want %s", enc, GBK)
	}
	if got != sample {
		t.Errorf("Load() = %q, want %q", got, sample)
	}
}

func TestLoad_Undecodable(t *testing.T) {
	path := writeFile(t, []byte{0xFF, 0xFF, 0xFE, 0xFF})

	_, _, err := Load(path)
	if !errors.Is(err, ErrUndecodable) {
		t.Errorf("Load() error = %v, want ErrUndecodable", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, want fs.ErrNotExist", err)
	}
}
