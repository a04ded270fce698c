// Package fs abstracts the file operations the local blob store performs so
// tests can inject failures.
//
// Production code uses [Default], backed by the os package. [FaultyFS] wraps
// another FileSystem and fails writes, syncs, closes or renames of files whose
// names contain a configured pattern:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailOnSync: true})
//	store := blobstore.NewLocalStore(dir, blobstore.WithFileSystem(ffs))
//
// Operations take no context.Context; local file operations cannot be
// interrupted at the syscall level.
package fs
