package jd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAndReadCache(t *testing.T) {
	tmpDir := t.TempDir()
	cachePath := filepath.Join(tmpDir, CacheFilename)

	err := WriteCache(cachePath, "cached job context")
	if err != nil {
		t.Fatalf("Failed to write cache: %v", err)
	}

	content, err := ReadCache(cachePath)
	if err != nil {
		t.Fatalf("Failed to read cache: %v", err)
	}

	if content != "cached job context" {
		t.Errorf("Expected 'cached job context', got '%s'", content)
	}
}

func TestWriteCacheOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	cachePath := filepath.Join(tmpDir, CacheFilename)

	err := WriteCache(cachePath, "old")
	if err != nil {
		t.Fatalf("Failed to write cache: %v", err)
	}

	err = WriteCache(cachePath, "new")
	if err != nil {
		t.Fatalf("Failed to overwrite cache: %v", err)
	}

	content, err := ReadCache(cachePath)
	if err != nil {
		t.Fatalf("Failed to read cache: %v", err)
	}

	if content != "new" {
		t.Errorf("Expected 'new', got '%s'", content)
	}
}

func TestReadCacheMissing(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := ReadCache(filepath.Join(tmpDir, CacheFilename))
	if err == nil {
		t.Fatal("Expected error reading missing cache, got nil")
	}

	if !errors.Is(err, ErrNoCache) {
		t.Errorf("Expected ErrNoCache, got %v", err)
	}
}

func TestReadCacheEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	cachePath := filepath.Join(tmpDir, CacheFilename)

	err := os.WriteFile(cachePath, []byte(""), 0600)
	if err != nil {
		t.Fatalf("Failed to create empty cache: %v", err)
	}

	_, err = ReadCache(cachePath)
	if err == nil {
		t.Error("Expected error reading empty cache, got nil")
	}
}
