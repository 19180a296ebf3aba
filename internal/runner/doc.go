// Package runner applies one operation to many files.
//
// Each file is read, handed to the uid engine and, for update and remove,
// swapped into place through a transaction. Files are independent: a failure
// is recorded in that file's markuid.FileResult and the run continues. Files
// are processed by a bounded pool of workers; results come back in input
// order regardless of completion order.
//
// Canceling the context stops scheduling new files. Files already in progress
// finish, and unscheduled ones are reported with ErrorKindCanceled.
package runner
