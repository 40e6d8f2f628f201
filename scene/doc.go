// Package scene holds the compositor's mirrored layer tree.
//
// # Overview
//
// The content process owns the authoritative layer tree. This package keeps
// the compositor-side mirror of it: a Graph arena of Layer nodes keyed by
// LayerID, updated exclusively by replaying synchronization commands. Layers
// carry the attributes the content process ships across (geometry,
// transforms, opacity, flags), tile-backed pixel content (BackingStore), an
// optional directly composited image, and a small animation set.
//
// # Ownership
//
// The Graph is the single owner of every Layer. All cross-references between
// layers (children, mask, replica) travel as LayerIDs resolved through the
// arena, never as direct pointers between nodes. Referencing an unknown
// LayerID materializes a placeholder layer, so commands can arrive in any
// interleaving without dangling references.
//
// # Concurrency
//
// Graph and Layer are not safe for concurrent use. The compositor confines
// them to the goroutine that drains the command queue; everything else
// observes the tree through that goroutine.
package scene
