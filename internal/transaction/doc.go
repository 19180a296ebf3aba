// Package transaction swaps rewritten markup into place.
//
// A replacement writes the new content to a temporary file in an intermediate
// directory, moves the original aside as a backup, renames the temporary file
// over the original and finally deletes the backup:
//
//	<dir>/<name>.<key>.tmp   new content
//	<dir>/<name>.<key>.bak   original, only between the two renames
//
// key is a short digest of the original path, so files with the same name in
// different directories can share one intermediate directory. A failed temp
// write leaves the original untouched. A failed final rename moves the backup
// back. When the caller supplies the checksum of the content it scanned, the
// original is re-read right before the swap and the transaction aborts with
// ErrSourceChanged if it no longer matches.
//
// Every failure is an *Error naming the step that failed.
package transaction
