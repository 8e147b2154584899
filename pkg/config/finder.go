package config

import (
	"os"
	"path/filepath"
)

// PathFinder определяет стратегию поиска config.yaml.
type PathFinder interface {
	FindConfigPath() string
}

// DefaultPathFinder реализует стандартную стратегию поиска config.yaml.
//
// Порядок поиска:
// 1. Флаг -config (если указан)
// 2. Текущая директория (./config.yaml)
// 3. Директория бинарника
// 4. Родительская директория (для запуска из cmd/)
type DefaultPathFinder struct {
	// ConfigFlag - значение флага -config, если указан
	ConfigFlag string
}

// FindConfigPath находит путь к config.yaml.
func (f *DefaultPathFinder) FindConfigPath() string {
	// 1. Флаг имеет приоритет
	if f.ConfigFlag != "" {
		return resolveAbsPath(f.ConfigFlag)
	}

	// 2. Текущая директория
	cfgPath := "config.yaml"
	if _, err := os.Stat(cfgPath); err == nil {
		return resolveAbsPath(cfgPath)
	}

	// 3. Директория бинарника
	if execPath, err := os.Executable(); err == nil {
		cfgPath = filepath.Join(filepath.Dir(execPath), "config.yaml")
		if _, err := os.Stat(cfgPath); err == nil {
			return cfgPath
		}
	}

	// 4. Родительские директории
	for _, p := range []string{
		filepath.Join("..", "..", "config.yaml"),
		filepath.Join("..", "config.yaml"),
	} {
		if _, err := os.Stat(p); err == nil {
			return resolveAbsPath(p)
		}
	}

	// Возвращаем дефолтный путь (даже если не существует)
	return resolveAbsPath("config.yaml")
}

func resolveAbsPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
