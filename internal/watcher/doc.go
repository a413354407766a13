// Package watcher turns filesystem events into index operations. A
// created file is indexed only after it settles: the watcher waits,
// samples the size twice, and abandons files that are still growing.
// Browsers download through temp names (.crdownload, .part) and rename
// at the end, so the rename's create event for the final name is the
// one that sticks.
package watcher
