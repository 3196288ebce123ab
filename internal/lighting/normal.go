package lighting

// Discrete gradient kernels over the alpha channel, per SVG 1.1 §15.25.
// Nine cases cover the interior, the four edges, and the four corners;
// the edge and corner kernels have reduced support so no out-of-range
// pixels are ever read. Weights are row-major over the 3x3 neighborhood
// (y-1..y+1 by x-1..x+1) around the target pixel.
type gradientKernel struct {
	factor float32
	w      [9]float32
}

// position indexes the nine kernel cases.
type position uint8

const (
	interior position = iota
	topEdge
	bottomEdge
	leftEdge
	rightEdge
	topLeft
	topRight
	bottomLeft
	bottomRight
)

var kernelX = [9]gradientKernel{
	interior:    {1.0 / 4, [9]float32{-1, 0, 1, -2, 0, 2, -1, 0, 1}},
	topEdge:     {1.0 / 3, [9]float32{0, 0, 0, -2, 0, 2, -1, 0, 1}},
	bottomEdge:  {1.0 / 3, [9]float32{-1, 0, 1, -2, 0, 2, 0, 0, 0}},
	leftEdge:    {1.0 / 2, [9]float32{0, -1, 1, 0, -2, 2, 0, -1, 1}},
	rightEdge:   {1.0 / 2, [9]float32{-1, 1, 0, -2, 2, 0, -1, 1, 0}},
	topLeft:     {2.0 / 3, [9]float32{0, 0, 0, 0, -2, 2, 0, -1, 1}},
	topRight:    {2.0 / 3, [9]float32{0, 0, 0, -2, 2, 0, -1, 1, 0}},
	bottomLeft:  {2.0 / 3, [9]float32{0, -1, 1, 0, -2, 2, 0, 0, 0}},
	bottomRight: {2.0 / 3, [9]float32{-1, 1, 0, -2, 2, 0, 0, 0, 0}},
}

var kernelY = [9]gradientKernel{
	interior:    {1.0 / 4, [9]float32{-1, -2, -1, 0, 0, 0, 1, 2, 1}},
	topEdge:     {1.0 / 2, [9]float32{0, 0, 0, -1, -2, -1, 1, 2, 1}},
	bottomEdge:  {1.0 / 2, [9]float32{-1, -2, -1, 1, 2, 1, 0, 0, 0}},
	leftEdge:    {1.0 / 3, [9]float32{0, -2, -1, 0, 0, 0, 0, 2, 1}},
	rightEdge:   {1.0 / 3, [9]float32{-1, -2, 0, 0, 0, 0, 1, 2, 0}},
	topLeft:     {2.0 / 3, [9]float32{0, 0, 0, 0, -2, -1, 0, 2, 1}},
	topRight:    {2.0 / 3, [9]float32{0, 0, 0, -1, -2, 0, 1, 2, 0}},
	bottomLeft:  {2.0 / 3, [9]float32{0, -2, -1, 0, 2, 1, 0, 0, 0}},
	bottomRight: {2.0 / 3, [9]float32{-1, -2, 0, 1, 2, 0, 0, 0, 0}},
}

// positionOf classifies pixel (x, y) within a width x height buffer.
func positionOf(x, y, width, height int) position {
	left := x == 0
	right := x == width-1
	top := y == 0
	bottom := y == height-1

	switch {
	case top && left:
		return topLeft
	case top && right:
		return topRight
	case bottom && left:
		return bottomLeft
	case bottom && right:
		return bottomRight
	case top:
		return topEdge
	case bottom:
		return bottomEdge
	case left:
		return leftEdge
	case right:
		return rightEdge
	default:
		return interior
	}
}

// normalAt computes the unit surface normal at (x, y) from the alpha
// channel of premultiplied RGBA samples, weighted by surfaceScale.
// Buffers narrower or shorter than 2 pixels have no usable gradient and
// yield the +Z unit vector everywhere, as does any degenerate gradient.
func normalAt(data []uint8, width, height, x, y int, surfaceScale float32) (float32, float32, float32) {
	if width < 2 || height < 2 {
		return 0, 0, 1
	}

	pos := positionOf(x, y, width, height)
	kx := &kernelX[pos]
	ky := &kernelY[pos]

	var gx, gy float32
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			wi := (dy+1)*3 + (dx + 1)
			wx := kx.w[wi]
			wy := ky.w[wi]
			if wx == 0 && wy == 0 {
				continue
			}
			a := float32(data[((y+dy)*width+(x+dx))*4+3]) / 255
			gx += wx * a
			gy += wy * a
		}
	}

	nx := -surfaceScale * kx.factor * gx
	ny := -surfaceScale * ky.factor * gy
	return normalize3(nx, ny, 1)
}
