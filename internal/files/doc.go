// Package files groups the file-handling sub-packages:
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - discovery: Expansion of command-line paths into markup files using glob patterns
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/markuid/internal/files/discovery"
//	    "github.com/vvka-141/markuid/internal/files/filesystem"
//	)
//
//	finder, err := discovery.NewFinderWithFS(filesystem.NewOSFileSystem(), include, exclude)
//	files, err := finder.Find([]string{"./src"})
package files
