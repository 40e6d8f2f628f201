package scene

import "time"

// Graph is the arena holding every mirrored layer, keyed by LayerID.
//
// The graph owns a synthetic container layer that sits above the content
// process's root. Root reassignment swaps which layer hangs off the
// container; the previous root stays allocated until an explicit Delete.
// Directly composited images live in the graph's ImageStore so layers can
// resolve their image references during sync.
//
// A monotonically increasing generation counts committed frames: the
// compositor bumps it once per flush barrier, giving tests and hosts a way
// to observe that a full frame of commands has been applied.
type Graph struct {
	layers    map[LayerID]*Layer
	container *Layer
	rootID    LayerID
	images    *ImageStore

	generation uint64
}

// NewGraph creates an empty graph with its synthetic container layer.
func NewGraph() *Graph {
	container := newLayer(0)
	container.DrawsContent = false
	container.MasksToBounds = false
	container.Anchor = Point{}
	// A zero-sized container would be culled before its children paint.
	container.Size = Size{Width: 1, Height: 1}
	return &Graph{
		layers:    make(map[LayerID]*Layer),
		container: container,
		images:    NewImageStore(),
	}
}

// Images returns the graph's directly composited image store.
func (g *Graph) Images() *ImageStore {
	return g.images
}

// Len returns the number of layers in the arena, excluding the container.
func (g *Graph) Len() int {
	return len(g.layers)
}

// Has reports whether a layer with the given ID exists.
func (g *Graph) Has(id LayerID) bool {
	_, ok := g.layers[id]
	return ok
}

// Layer looks up a layer by ID.
func (g *Graph) Layer(id LayerID) (*Layer, bool) {
	l, ok := g.layers[id]
	return l, ok
}

// Ensure returns the layer with the given ID, materializing a placeholder
// if no command has created it yet. Commands may reference layers in any
// order across batches; the placeholder keeps its identity when the real
// sync arrives later. ID 0 is the container and is never materialized.
func (g *Graph) Ensure(id LayerID) *Layer {
	if id == 0 {
		return g.container
	}
	if l, ok := g.layers[id]; ok {
		return l
	}
	l := newLayer(id)
	g.layers[id] = l
	return l
}

// RootID returns the ID of the current root layer, 0 for none.
func (g *Graph) RootID() LayerID {
	return g.rootID
}

// RootLayer returns the layer attached under the container, or nil when no
// root is attached. The root may be unset even while RootID is nonzero if
// the named layer has not been materialized yet.
func (g *Graph) RootLayer() *Layer {
	if len(g.container.children) == 0 {
		return nil
	}
	l, ok := g.layers[g.container.children[0]]
	if !ok {
		return nil
	}
	return l
}

// SetRoot makes the named layer the root of the mirrored tree. All
// children are detached from the container first; if the ID resolves to an
// existing layer it becomes the container's sole child. An unresolved ID
// leaves the container empty until the layer materializes and re-asserts
// root status in a later sync. Passing 0 clears the root.
//
// The root invariant is enforced here as well as during sync: a layer
// becoming root has MasksToBounds cleared immediately.
func (g *Graph) SetRoot(id LayerID) {
	g.rootID = id

	// Layers under the container already carry parent 0, so clearing the
	// list is the whole detach.
	g.container.children = g.container.children[:0]

	if id == 0 {
		return
	}
	l, ok := g.layers[id]
	if !ok {
		return
	}
	l.parent = 0
	l.MasksToBounds = false
	g.container.children = append(g.container.children, id)
}

// Delete removes a layer from the arena. The layer is detached from its
// parent (container included) and its children are orphaned in place; they
// stay allocated until their own delete commands arrive. Unknown IDs are
// ignored. Returns the removed layer so the caller can release resources
// attached to it, or nil if nothing was removed.
func (g *Graph) Delete(id LayerID) *Layer {
	l, ok := g.layers[id]
	if !ok {
		return nil
	}

	g.detach(l)
	for _, cid := range l.children {
		if child, ok := g.layers[cid]; ok && child.parent == id {
			child.parent = 0
		}
	}
	l.children = nil
	delete(g.layers, id)
	return l
}

// detach removes a layer from its parent's child list. Layers whose parent
// is 0 may be attached to the container, so the container list is checked
// as well.
func (g *Graph) detach(l *Layer) {
	parent := g.container
	if l.parent != 0 {
		p, ok := g.layers[l.parent]
		if !ok {
			l.parent = 0
			return
		}
		parent = p
	}
	for i, cid := range parent.children {
		if cid == l.id {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			break
		}
	}
	l.parent = 0
}

// Sync applies one layer descriptor to the graph, materializing the target
// layer if needed. Every attribute is copied from the descriptor. A few
// exceptions keep the mirror consistent:
//
//   - A zero Transform or ChildrenTransform is read as identity, so
//     descriptors built with unset transform fields stay valid.
//   - MasksToBounds is forced false when the descriptor or the graph marks
//     the layer as root, so the root can never clip the scene away.
//   - The image assignment re-resolves only when the descriptor says the
//     image changed, or the contents rectangle moved while the descriptor
//     still names an image. Everything else would rebind the same texture
//     for no visible change.
//
// The child list is replaced wholesale, materializing placeholders for
// children that have not synced yet and reparenting children that moved
// from another layer. Animation operations apply in descriptor order; the
// pause offset is measured against now.
//
// A descriptor flagged as root re-asserts the container attachment even if
// the root ID is unchanged, which covers root commands that arrived before
// the layer existed.
func (g *Graph) Sync(info LayerInfo, now time.Time) *Layer {
	l := g.Ensure(info.ID)
	if l == g.container {
		return l
	}

	refreshImage := info.ImageUpdated ||
		(info.ContentsRect != l.ContentsRect && info.ImageID != 0)

	l.Name = info.Name
	l.Position = info.Position
	l.Size = info.Size
	l.Anchor = info.Anchor
	l.Transform = orIdentity(info.Transform)
	l.ChildrenTransform = orIdentity(info.ChildrenTransform)
	l.ContentsRect = info.ContentsRect
	l.Opacity = info.Opacity
	l.DrawsContent = info.DrawsContent
	l.BackfaceVisible = info.BackfaceVisible
	l.ContentsOpaque = info.ContentsOpaque
	l.Preserves3D = info.Preserves3D
	l.Mask = info.Mask
	l.Replica = info.Replica

	l.MasksToBounds = info.MasksToBounds
	if info.IsRoot || g.rootID == info.ID {
		l.MasksToBounds = false
	}

	if refreshImage {
		l.ImageID = info.ImageID
		l.Image = g.images.Get(info.ImageID)
	}

	g.syncChildren(l, info.Children)
	l.applyAnimationOps(info.Animations, now)

	if info.IsRoot {
		g.SetRoot(info.ID)
	}
	return l
}

// syncChildren replaces the layer's child list with the descriptor's,
// materializing unknown children and stealing children attached elsewhere.
func (g *Graph) syncChildren(l *Layer, children []LayerID) {
	for _, cid := range l.children {
		if child, ok := g.layers[cid]; ok && child.parent == l.id {
			child.parent = 0
		}
	}
	l.children = l.children[:0]

	for _, cid := range children {
		if cid == 0 || cid == l.id {
			continue
		}
		child := g.Ensure(cid)
		if child.parent == l.id {
			// Duplicate entry in the descriptor; keep the first.
			continue
		}
		if child.parent != 0 {
			g.detach(child)
		}
		child.parent = l.id
		l.children = append(l.children, cid)
	}
}

// Generation returns the number of committed frames.
func (g *Graph) Generation() uint64 {
	return g.generation
}

// Commit marks the end of one frame of commands and returns the new
// generation. Called once per flush barrier.
func (g *Graph) Commit() uint64 {
	g.generation++
	return g.generation
}

// HasRunningAnimations reports whether any layer still has an animation
// advancing at the given time. Painting uses this to keep scheduling
// frames while something is in flight.
func (g *Graph) HasRunningAnimations(now time.Time) bool {
	for _, l := range g.layers {
		if l.HasRunningAnimations(now) {
			return true
		}
	}
	return false
}

// EachLayer calls fn for every layer in the arena, in unspecified order.
// The container is not visited.
func (g *Graph) EachLayer(fn func(*Layer)) {
	for _, l := range g.layers {
		fn(l)
	}
}

// PurgeContents drops every layer's pixel content: backing stores, resolved
// image backings, and the image store itself. Layer attributes and tree
// structure survive so the content process can repopulate tiles without
// re-syncing geometry.
func (g *Graph) PurgeContents() {
	for _, l := range g.layers {
		l.Backing = nil
		l.Image = nil
	}
	g.images.Clear()
}

// Clear tears the whole mirror down: every layer, the root attachment, and
// all images. The generation counter keeps counting across Clear so stale
// observers cannot mistake a fresh tree for a newer one.
func (g *Graph) Clear() {
	g.layers = make(map[LayerID]*Layer)
	g.container.children = g.container.children[:0]
	g.rootID = 0
	g.images.Clear()
}
