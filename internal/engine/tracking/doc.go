// Package tracking keeps named checkpoints of immutable texts.
//
// Because a rope.Text is never modified, a snapshot simply holds the value:
// taking one is O(1) and it shares every node with the live text. Each
// snapshot is identified by a random UUID and may also carry a name; taking
// a new snapshot under an existing name replaces the old one.
//
//	snaps := tracking.NewSnapshotManager()
//	id := snaps.Create("before_edit", text)
//	text = text.Delete(0, 10)
//	snap, _ := snaps.Get(id)
//	restored := snap.Text() // content before the delete
//
// All SnapshotManager methods are safe for concurrent use.
package tracking
