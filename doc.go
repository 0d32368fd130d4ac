// Package treefs provides an immutable in-memory file tree and adapters
// that persist it to a backend.
//
// Trees are built and changed purely in memory. Every change returns a
// new Directory sharing the untouched children and records an Added or
// Removed event. Adding a tree to an adapter writes only what changed:
// files loaded from an adapter carry a Source, and adding them back to
// the same adapter at the same path is skipped.
//
// Basic usage:
//
//	store, _ := treefs.NewFilesystem("./data")
//
//	project, _ := treefs.NewDirectory(treefs.MustName("project"),
//	    treefs.NewFile(treefs.MustName("README.md"), treefs.Text("# hello")),
//	)
//	_ = store.Add(project)
//
//	// Load, change one file, write back: only README.md is rewritten
//	f, _ := store.Get(treefs.MustName("project"))
//	dir := f.(*treefs.Directory)
//	dir = dir.Add(treefs.NewFile(treefs.MustName("README.md"), treefs.Text("# hi")))
//	_ = store.Add(dir)
//
// Adapters compose:
//
//	sharded := treefs.NewHashed(store)               // <h[0:2]>/<h[2:4]>/<h[4:]><ext>
//	batched := treefs.NewLazy(sharded)               // buffer until Persist
//	logged := treefs.NewLogging(batched, logger)     // zerolog every call
//	_ = logged.Add(treefs.NewFile(treefs.MustName("a.txt"), treefs.Text("hi")))
//	_ = treefs.Persist(logged)
package treefs
