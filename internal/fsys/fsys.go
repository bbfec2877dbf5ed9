// Package fsys defines the filesystem surface the memory engine depends
// on. The engine is agnostic to whether this is the raw OS filesystem or
// a sandboxed wrapper; it only requires these six operations.
package fsys

import "os"

// FS is the collaborator interface consumed by the engine.
type FS interface {
	// Access reports whether path exists; returns an error if absent.
	Access(path string) error
	// ReadDir lists the entry names directly under path.
	ReadDir(path string) ([]string, error)
	// ReadFile returns the full text content of path.
	ReadFile(path string) (string, error)
	// WriteFile replaces the content of path, creating it if needed.
	WriteFile(path string, content string) error
	// Mkdir creates path and any missing parents.
	Mkdir(path string) error
	// AppendFile appends content to path, creating it if needed.
	AppendFile(path string, content string) error
}

// OS is the default FS backed by the operating system.
type OS struct{}

func (OS) Access(path string) error {
	_, err := os.Stat(path)
	return err
}

func (OS) ReadDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

func (OS) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (OS) WriteFile(path string, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func (OS) Mkdir(path string) error {
	return os.MkdirAll(path, 0o755)
}

func (OS) AppendFile(path string, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
