// Package checksum provides content hashing for the file transaction.
//
// Two digests are produced:
//
//   - Raw checksum: SHA-256 of the exact file content. The runner records it
//     when a file is read and the transaction compares it again right before
//     the swap, so a file edited mid-run is never overwritten.
//   - Path key: a short SHA-256 prefix of the file path, used to name
//     temporary and backup files in the shared intermediate directory.
//
// # Example Usage
//
//	calculator := checksum.New()
//	sum := calculator.CalculateRaw(content)
//	key := calculator.PathKey("/src/app/Views/Main.xaml")
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
