package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryFile implements File interface for in-memory files
type memoryFile struct {
	absPath string
	relPath string
	content []byte
	info    *memoryFileInfo
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.info }

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

// Walk visits a snapshot of the entries under the directory in lexical order.
// Returning fs.SkipDir for a directory skips its contents, as filepath.Walk does.
func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.snapshotUnder(d.absPath)

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].absPath < entries[j].absPath
	})

	skipped := ""
	for _, entry := range entries {
		if skipped != "" && strings.HasPrefix(entry.absPath, skipped+"/") {
			continue
		}

		// Recover from panics in callback to prevent crashing the entire walk
		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", entry.absPath, r)
				}
			}()

			callbackErr = fn(entry, nil)
		}()

		if callbackErr == fs.SkipDir && entry.info.isDir {
			skipped = entry.absPath
			continue
		}
		if callbackErr != nil {
			return callbackErr
		}
	}

	return nil
}

// MemoryFileSystem implements FileSystemProvider in memory. It is safe for
// concurrent use, so tests can drive the worker pool against it.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string]*memoryFile // absolute path -> file or directory
	root  string
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  root,
	}
	mfs.files[root] = mfs.newDir(root)
	return mfs
}

// Root returns the directory relative paths are resolved against.
func (mfs *MemoryFileSystem) Root() string {
	return mfs.root
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(path string, content string) {
	mfs.AddFileWithTime(path, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time, creating
// parent directories as needed.
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(filePath)
	mfs.ensureDirectoriesExist(absPath)
	mfs.putFile(absPath, []byte(content), 0644, modTime)
}

// Content returns the current content of a file and whether it exists.
func (mfs *MemoryFileSystem) Content(filePath string) (string, bool) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[mfs.resolve(filePath)]
	if !exists || file.info.isDir {
		return "", false
	}
	return string(file.content), true
}

// Paths lists every file (not directory) in lexical order.
func (mfs *MemoryFileSystem) Paths() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	var out []string
	for p, file := range mfs.files {
		if !file.info.isDir {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// resolve maps a caller path to the absolute key used in the files map.
func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) relative(absPath string) string {
	if absPath == mfs.root {
		return "."
	}
	return strings.TrimPrefix(absPath, strings.TrimSuffix(mfs.root, "/")+"/")
}

func (mfs *MemoryFileSystem) newDir(absPath string) *memoryFile {
	return &memoryFile{
		absPath: absPath,
		relPath: mfs.relative(absPath),
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
	}
}

func (mfs *MemoryFileSystem) putFile(absPath string, content []byte, perm fs.FileMode, modTime time.Time) {
	data := make([]byte, len(content))
	copy(data, content)

	mfs.files[absPath] = &memoryFile{
		absPath: absPath,
		relPath: mfs.relative(absPath),
		content: data,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(data)),
			mode:    perm,
			modTime: modTime,
		},
	}
}

// ensureDirectoriesExist creates directory entries for all parent directories.
// Callers hold the write lock.
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == "." || dir == "/" || dir == filePath {
		return
	}
	if _, exists := mfs.files[dir]; exists {
		return
	}
	mfs.files[dir] = mfs.newDir(dir)
	mfs.ensureDirectoriesExist(dir)
}

func (mfs *MemoryFileSystem) isDir(absPath string) bool {
	if absPath == "/" {
		return true
	}
	file, exists := mfs.files[absPath]
	return exists && file.info.isDir
}

// snapshotUnder returns all files and directories at or below basePath.
func (mfs *MemoryFileSystem) snapshotUnder(basePath string) []*memoryFile {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	var entries []*memoryFile
	for p, file := range mfs.files {
		var matched bool
		if basePath == "/" {
			matched = strings.HasPrefix(p, "/")
		} else {
			matched = p == basePath || strings.HasPrefix(p, basePath+"/")
		}
		if matched {
			entries = append(entries, file)
		}
	}
	return entries
}

func notExist(op, p string) error {
	return &fs.PathError{Op: op, Path: p, Err: fs.ErrNotExist}
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	absPath := mfs.resolve(openPath)
	file, exists := mfs.files[absPath]
	if !exists {
		return nil, fmt.Errorf("directory not found: %w", notExist("open", openPath))
	}
	if !file.info.isDir {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	return &memoryDirectory{absPath: absPath, fs: mfs}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[mfs.resolve(filePath)]
	if !exists {
		return nil, notExist("read", filePath)
	}
	if file.info.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	data := make([]byte, len(file.content))
	copy(data, file.content)
	return data, nil
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	absPath := mfs.resolve(dirPath)
	if !mfs.isDir(absPath) {
		return nil, fmt.Errorf("failed to read directory: %w", notExist("readdir", dirPath))
	}

	var result []FileInfo
	for p, file := range mfs.files {
		if p != absPath && path.Dir(p) == absPath {
			result = append(result, file.info)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[mfs.resolve(statPath)]
	if !exists {
		return nil, notExist("stat", statPath)
	}
	return file.info, nil
}

// WriteFile implements FileSystemProvider.WriteFile
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(filePath)
	if !mfs.isDir(path.Dir(absPath)) {
		return notExist("write", filePath)
	}
	if mfs.isDir(absPath) {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	mfs.putFile(absPath, data, perm, time.Now())
	return nil
}

// Rename implements FileSystemProvider.Rename for files.
func (mfs *MemoryFileSystem) Rename(oldPath, newPath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	from, to := mfs.resolve(oldPath), mfs.resolve(newPath)
	file, exists := mfs.files[from]
	if !exists {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}
	if file.info.isDir {
		return fmt.Errorf("renaming directories is not supported: %s", oldPath)
	}
	if !mfs.isDir(path.Dir(to)) {
		return &fs.PathError{Op: "rename", Path: newPath, Err: fs.ErrNotExist}
	}
	if mfs.isDir(to) {
		return fmt.Errorf("rename target is a directory: %s", newPath)
	}

	delete(mfs.files, from)
	mfs.putFile(to, file.content, file.info.mode, file.info.modTime)
	return nil
}

// Remove implements FileSystemProvider.Remove
func (mfs *MemoryFileSystem) Remove(filePath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(filePath)
	file, exists := mfs.files[absPath]
	if !exists {
		return notExist("remove", filePath)
	}
	if file.info.isDir {
		for p := range mfs.files {
			if strings.HasPrefix(p, absPath+"/") {
				return fmt.Errorf("directory not empty: %s", filePath)
			}
		}
	}
	delete(mfs.files, absPath)
	return nil
}

// MkdirAll implements FileSystemProvider.MkdirAll
func (mfs *MemoryFileSystem) MkdirAll(dirPath string, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.resolve(dirPath)
	if file, exists := mfs.files[absPath]; exists {
		if !file.info.isDir {
			return fmt.Errorf("path exists and is not a directory: %s", dirPath)
		}
		return nil
	}
	mfs.ensureDirectoriesExist(absPath)
	dir := mfs.newDir(absPath)
	dir.info.mode = perm | fs.ModeDir
	mfs.files[absPath] = dir
	return nil
}

var _ FileSystemProvider = (*MemoryFileSystem)(nil)
