// Package utils предоставляет простой файловый логгер и graceful shutdown
// для утилит из cmd/.
//
// Логгер создаёт .log файл в текущей директории с timestamp в имени.
// Пока логгер не инициализирован, все вызовы — no-op (удобно для тестов
// и библиотечного использования pkg/junglescout).
// Thread-safe через sync.Mutex.
package utils

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	logOut       io.Writer
	logFile      *os.File
	logMutex     sync.Mutex
	debugEnabled bool
)

// InitLogger создает/открывает .log файл в текущей директории.
//
// Имя файла: <prefix>-YYYY-MM-DD-HH-MM.log (например, junglescout-2026-10-14-15-30.log).
// Пустой prefix заменяется на "junglescout".
func InitLogger(prefix string) error {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logOut != nil {
		return nil
	}
	if prefix == "" {
		prefix = "junglescout"
	}

	timestamp := time.Now().Format("2006-01-02-15-04")
	filename := fmt.Sprintf("%s-%s.log", prefix, timestamp)

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f
	logOut = f

	// Пишем напрямую без Info чтобы избежать deadlock (мьютекс уже захвачен)
	writeLine(fmt.Sprintf("[%s] INFO: Logger initialized file=%s\n",
		time.Now().Format("2006-01-02 15:04:05"), filename))
	return nil
}

// InitWriterLogger направляет лог в произвольный writer (stderr, буфер в тестах).
func InitWriterLogger(w io.Writer) {
	logMutex.Lock()
	defer logMutex.Unlock()
	logOut = w
}

// SetDebug включает или выключает сообщения уровня DEBUG.
func SetDebug(enabled bool) {
	logMutex.Lock()
	defer logMutex.Unlock()
	debugEnabled = enabled
}

// Info - информационное сообщение.
func Info(msg string, keyvals ...any) {
	log("INFO", msg, keyvals...)
}

// Error - сообщение об ошибке.
func Error(msg string, keyvals ...any) {
	log("ERROR", msg, keyvals...)
}

// Debug - отладочное сообщение. Пишется только после SetDebug(true).
func Debug(msg string, keyvals ...any) {
	log("DEBUG", msg, keyvals...)
}

// Warn - предупреждение.
func Warn(msg string, keyvals ...any) {
	log("WARN", msg, keyvals...)
}

// log - внутренняя функция записи в лог.
//
// Формат: [YYYY-MM-DD HH:MM:SS] LEVEL: message key1=value1 key2=value2
func log(level, msg string, keyvals ...any) {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logOut == nil {
		return
	}
	if level == "DEBUG" && !debugEnabled {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("[%s] %s: %s", timestamp, level, msg)

	for i := 0; i < len(keyvals); i += 2 {
		if i+1 < len(keyvals) {
			line += fmt.Sprintf(" %v=%v", keyvals[i], keyvals[i+1])
		}
	}

	writeLine(line + "\n")
}

// writeLine пишет строку, при ошибке записи — fallback на stderr.
// Вызывается под logMutex.
func writeLine(line string) {
	if _, err := io.WriteString(logOut, line); err != nil {
		fmt.Fprintf(os.Stderr, "%s", line)
		fmt.Fprintf(os.Stderr, "[LOGGER ERROR: WriteString failed: %v]\n", err)
		return
	}

	if logFile != nil {
		if err := logFile.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "[LOGGER WARNING: Sync failed: %v]\n", err)
		}
	}
}

// Close закрывает лог-файл.
//
// Вызывается через defer в main().
func Close() {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile != nil {
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "[LOGGER WARNING: Close failed: %v]\n", err)
		}
		logFile = nil
	}
	logOut = nil
}
