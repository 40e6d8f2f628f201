package scene

import "time"

// LayerID identifies a layer across the process boundary.
// ID 0 is reserved for the compositor's root container layer.
type LayerID uint64

// LayerInfo is the full attribute snapshot of one layer as shipped by the
// content process. Applying it replaces the mirrored layer's attributes
// wholesale; there is no per-field dirty tracking on the wire.
type LayerInfo struct {
	// ID names the layer this snapshot belongs to.
	ID LayerID

	// Name is the content-process debug name of the layer.
	Name string

	// Position is the layer origin in its parent's coordinate space.
	Position Point

	// Size is the layer extent.
	Size Size

	// Anchor is the normalized anchor point transforms pivot around.
	Anchor Point

	// Transform applies to the layer itself.
	// The zero Matrix is read as identity.
	Transform Matrix

	// ChildrenTransform applies to the layer's children.
	// The zero Matrix is read as identity.
	ChildrenTransform Matrix

	// ContentsRect is where image content is stretched within the layer.
	ContentsRect Rect

	// Opacity is the layer opacity in [0, 1].
	Opacity float64

	// DrawsContent marks layers that paint their own pixels.
	DrawsContent bool

	// MasksToBounds clips descendants to the layer bounds.
	MasksToBounds bool

	// BackfaceVisible controls back-facing visibility under 3D transforms.
	BackfaceVisible bool

	// ContentsOpaque marks fully opaque content for blending shortcuts.
	ContentsOpaque bool

	// Preserves3D marks subtrees sharing a 3D rendering context.
	Preserves3D bool

	// Mask references a mask layer by ID, 0 for none.
	Mask LayerID

	// Replica references a replica layer by ID, 0 for none.
	Replica LayerID

	// ImageID references a directly composited image, 0 for none.
	ImageID ImageID

	// ImageUpdated is set when the referenced image changed and the layer
	// must re-resolve its image backing.
	ImageUpdated bool

	// IsRoot marks the layer as the root of the content process's tree.
	// Applying a snapshot with IsRoot set attaches the layer under the
	// graph's container and clears MasksToBounds.
	IsRoot bool

	// Children is the complete ordered child list. Sync replaces the
	// mirrored child list with exactly this one.
	Children []LayerID

	// Animations is the ordered list of animation operations to apply.
	Animations []AnimationOp
}

// Layer is one node of the mirrored tree. All layers live in a Graph arena
// and reference each other by LayerID only.
//
// Attribute fields mirror the most recent LayerInfo applied; mutate them
// through Graph.Sync rather than directly so structural bookkeeping stays
// consistent.
type Layer struct {
	id LayerID

	// Name is the content-process debug name of the layer.
	Name string

	// Position is the layer origin in its parent's coordinate space.
	Position Point

	// Size is the layer extent.
	Size Size

	// Anchor is the normalized anchor point transforms pivot around.
	Anchor Point

	// Transform applies to the layer itself.
	Transform Matrix

	// ChildrenTransform applies to the layer's children.
	ChildrenTransform Matrix

	// ContentsRect is where image content is stretched within the layer.
	ContentsRect Rect

	// Opacity is the layer opacity in [0, 1].
	Opacity float64

	// DrawsContent marks layers that paint their own pixels.
	DrawsContent bool

	// MasksToBounds clips descendants to the layer bounds.
	// Always false while the layer is the root of the mirrored tree.
	MasksToBounds bool

	// BackfaceVisible controls back-facing visibility under 3D transforms.
	BackfaceVisible bool

	// ContentsOpaque marks fully opaque content for blending shortcuts.
	ContentsOpaque bool

	// Preserves3D marks subtrees sharing a 3D rendering context.
	Preserves3D bool

	// Mask references a mask layer by ID, 0 for none.
	Mask LayerID

	// Replica references a replica layer by ID, 0 for none.
	Replica LayerID

	// ImageID references a directly composited image, 0 for none.
	ImageID ImageID

	// Image is the resolved backing for ImageID, nil when unresolved.
	Image *ImageBacking

	// Backing holds the layer's tile content, nil until the first tile
	// operation reaches the layer.
	Backing *BackingStore

	parent     LayerID
	children   []LayerID
	animations map[string]*Animation
}

// newLayer creates a layer with content-process defaults: fully opaque,
// identity transforms, centered anchor, nothing attached.
func newLayer(id LayerID) *Layer {
	return &Layer{
		id:                id,
		Anchor:            Point{X: 0.5, Y: 0.5},
		Transform:         Identity(),
		ChildrenTransform: Identity(),
		Opacity:           1,
		animations:        make(map[string]*Animation),
	}
}

// ID returns the layer's identifier.
func (l *Layer) ID() LayerID {
	return l.id
}

// Parent returns the ID of the layer's parent. It is 0 both for detached
// layers and for the current root, whose parent is the container layer.
func (l *Layer) Parent() LayerID {
	return l.parent
}

// Children returns a copy of the ordered child list.
func (l *Layer) Children() []LayerID {
	out := make([]LayerID, len(l.children))
	copy(out, l.children)
	return out
}

// ChildCount returns the number of children without copying.
func (l *Layer) ChildCount() int {
	return len(l.children)
}

// ChildAt returns the i-th child ID. Paired with ChildCount it lets the
// paint loop iterate without the copy Children makes.
func (l *Layer) ChildAt(i int) LayerID {
	return l.children[i]
}

// Animation returns the named animation's current state.
func (l *Layer) Animation(name string) (Animation, bool) {
	a, ok := l.animations[name]
	if !ok {
		return Animation{}, false
	}
	return *a, true
}

// AnimationCount returns the number of animations on the layer.
func (l *Layer) AnimationCount() int {
	return len(l.animations)
}

// HasRunningAnimations reports whether any animation on the layer is still
// advancing at the given time.
func (l *Layer) HasRunningAnimations(now time.Time) bool {
	for _, a := range l.animations {
		if a.Running(now) {
			return true
		}
	}
	return false
}

// applyAnimationOps applies an ordered operation list to the layer's
// animation set. Pause records the offset between the pause moment and the
// animation's start. Remove and Pause for unknown names are no-ops.
func (l *Layer) applyAnimationOps(ops []AnimationOp, now time.Time) {
	for _, op := range ops {
		switch op.Kind {
		case AnimationOpAdd:
			l.animations[op.Name] = &Animation{
				Name:      op.Name,
				StartTime: op.StartTime,
				Duration:  op.Duration,
			}
		case AnimationOpRemove:
			delete(l.animations, op.Name)
		case AnimationOpPause:
			if a, ok := l.animations[op.Name]; ok {
				a.Paused = true
				a.PauseOffset = now.Sub(a.StartTime)
			}
		}
	}
}
