package compositor

import (
	"github.com/gogpu/compositor/render"
	"github.com/gogpu/compositor/scene"
)

// CommandType identifies the type of a command.
// Each command type corresponds to one mutation of the mirrored scene.
type CommandType uint8

const (
	// Tile commands
	CmdCreateTile CommandType = iota // Register a tile in a layer's backing store
	CmdUpdateTile                    // Stage new pixel content for a tile
	CmdRemoveTile                    // Remove a tile and its content

	// Image commands
	CmdCreateImage  // Register a directly composited image
	CmdDestroyImage // Remove a directly composited image

	// Layer commands
	CmdSyncLayerParameters // Apply a full layer snapshot
	CmdDeleteLayer         // Delete a layer
	CmdSetRootLayer        // Reassign the root layer

	// Frame commands
	CmdFlushLayerChanges // Frame barrier: commit and swap
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdCreateTile:          "CreateTile",
	CmdUpdateTile:          "UpdateTile",
	CmdRemoveTile:          "RemoveTile",
	CmdCreateImage:         "CreateImage",
	CmdDestroyImage:        "DestroyImage",
	CmdSyncLayerParameters: "SyncLayerParameters",
	CmdDeleteLayer:         "DeleteLayer",
	CmdSetRootLayer:        "SetRootLayer",
	CmdFlushLayerChanges:   "FlushLayerChanges",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
// Commands represent individual scene mutations produced on the content
// side and replayed in order on the compositing side.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// --------------------------------------------------------------------------
// Tile Commands
// --------------------------------------------------------------------------

// CreateTileCommand registers a tile in a layer's backing store. The layer
// and its backing store are materialized if they do not exist yet.
type CreateTileCommand struct {
	Layer scene.LayerID
	Tile  scene.TileID
	Scale float64 // contents scale the tile is rasterized at
}

// Type implements Command.
func (CreateTileCommand) Type() CommandType { return CmdCreateTile }

// UpdateTileCommand stages new pixel content for a tile. The content stays
// in the tile's pending buffer until the next frame barrier swaps it in.
type UpdateTileCommand struct {
	Layer  scene.LayerID
	Tile   scene.TileID
	Update scene.TileUpdate
}

// Type implements Command.
func (UpdateTileCommand) Type() CommandType { return CmdUpdateTile }

// RemoveTileCommand removes a tile, discarding visible and pending content.
type RemoveTileCommand struct {
	Layer scene.LayerID
	Tile  scene.TileID
}

// Type implements Command.
func (RemoveTileCommand) Type() CommandType { return CmdRemoveTile }

// --------------------------------------------------------------------------
// Image Commands
// --------------------------------------------------------------------------

// CreateImageCommand registers pixel content for a directly composited
// image. Re-creating an existing ID replaces its content.
type CreateImageCommand struct {
	Image  scene.ImageID
	Bitmap *render.Bitmap
}

// Type implements Command.
func (CreateImageCommand) Type() CommandType { return CmdCreateImage }

// DestroyImageCommand removes a directly composited image. Layers that
// resolved the image keep their reference until their next sync.
type DestroyImageCommand struct {
	Image scene.ImageID
}

// Type implements Command.
func (DestroyImageCommand) Type() CommandType { return CmdDestroyImage }

// --------------------------------------------------------------------------
// Layer Commands
// --------------------------------------------------------------------------

// SyncLayerParametersCommand applies a full attribute snapshot to a layer,
// materializing it and any referenced children on first contact.
type SyncLayerParametersCommand struct {
	Info scene.LayerInfo
}

// Type implements Command.
func (SyncLayerParametersCommand) Type() CommandType { return CmdSyncLayerParameters }

// DeleteLayerCommand deletes a layer. Unknown IDs are ignored.
type DeleteLayerCommand struct {
	Layer scene.LayerID
}

// Type implements Command.
func (DeleteLayerCommand) Type() CommandType { return CmdDeleteLayer }

// SetRootLayerCommand makes a layer the root of the mirrored tree.
type SetRootLayerCommand struct {
	Layer scene.LayerID
}

// Type implements Command.
func (SetRootLayerCommand) Type() CommandType { return CmdSetRootLayer }

// --------------------------------------------------------------------------
// Frame Commands
// --------------------------------------------------------------------------

// FlushLayerChangesCommand is the frame barrier: everything enqueued before
// it forms one frame. Applying it commits the scene generation, swaps
// pending tile buffers to visible, and acknowledges the frame to the
// content side.
type FlushLayerChangesCommand struct{}

// Type implements Command.
func (FlushLayerChangesCommand) Type() CommandType { return CmdFlushLayerChanges }
