package terminal

// Dimension is a size measured in terminal cells.
type Dimension struct {
	Width  int
	Height int
}

// Empty reports whether either side is zero or negative.
func (d Dimension) Empty() bool {
	return d.Width <= 0 || d.Height <= 0
}

// Container is the surface instances are mounted into. It records which
// instances are attached and the geometry the host reported.
type Container struct {
	prepared   bool
	children   []string
	size       Dimension
	cellWidth  int
	cellHeight int
}

// NewContainer returns an unprepared, empty container.
func NewContainer() *Container {
	return &Container{}
}

// Prepare marks the container ready to receive instances.
func (c *Container) Prepare() {
	c.prepared = true
}

// Prepared reports whether Prepare has been called.
func (c *Container) Prepared() bool {
	return c.prepared
}

// Mount attaches an instance id. Mounting twice is a no-op.
func (c *Container) Mount(id string) {
	for _, child := range c.children {
		if child == id {
			return
		}
	}
	c.children = append(c.children, id)
}

// Unmount detaches an instance id and reports whether it was attached.
func (c *Container) Unmount(id string) bool {
	for i, child := range c.children {
		if child == id {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return true
		}
	}
	return false
}

// Children lists mounted instance ids in mount order.
func (c *Container) Children() []string {
	return append([]string(nil), c.children...)
}

func (c *Container) SetSize(d Dimension) {
	c.size = d
}

func (c *Container) Size() Dimension {
	return c.size
}

// SetCellSize records the pixel size of one cell, when the host knows it.
func (c *Container) SetCellSize(width, height int) {
	c.cellWidth = width
	c.cellHeight = height
}

// CellSize returns the pixel size of one cell; zeros mean unknown.
func (c *Container) CellSize() (int, int) {
	return c.cellWidth, c.cellHeight
}
