package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StorageConfig содержит каталоги хранилищ заметок и рисунков.
type StorageConfig struct {
	NotesDir     string `yaml:"notes_dir" env:"URLNOTES_NOTES_DIR" env-default:"~/.urlnotes"`
	DrawingsDir  string `yaml:"drawings_dir" env:"URLNOTES_DRAWINGS_DIR" env-default:"~/.excalidraw"`
	AtomicWrites bool   `yaml:"atomic_writes" env:"URLNOTES_STORAGE_ATOMIC_WRITES" env-default:"false"`
}

// Resolve раскрывает "~" и приводит каталоги к абсолютным путям.
func (c *StorageConfig) Resolve() error {
	notesDir, err := ExpandPath(c.NotesDir)
	if err != nil {
		return fmt.Errorf("notes dir: %w", err)
	}
	drawingsDir, err := ExpandPath(c.DrawingsDir)
	if err != nil {
		return fmt.Errorf("drawings dir: %w", err)
	}
	c.NotesDir = notesDir
	c.DrawingsDir = drawingsDir
	return nil
}

// ExpandPath раскрывает ведущий "~" в домашний каталог пользователя
// и возвращает абсолютный путь.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	return abs, nil
}
