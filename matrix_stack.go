package softgl

// current returns the top of the stack for mode.
func (c *Context) current(mode MatrixMode) Matrix4 {
	s := c.stacks[mode]
	return s[len(s)-1]
}

// top returns a pointer to the top of the active stack.
func (c *Context) top() *Matrix4 {
	s := c.stacks[c.matrixMode]
	return &s[len(s)-1]
}

// setTop replaces the top of the active stack.
func (c *Context) setTop(m Matrix4) {
	*c.top() = m
	c.matricesDirty = true
}

// multTop post-multiplies the top of the active stack by m.
func (c *Context) multTop(m Matrix4) {
	c.setTop(c.top().Mul(m))
}

// insideBegin records InvalidOperation and reports true when called
// between Begin and End, where state commands are not allowed.
func (c *Context) insideBegin() bool {
	if c.asm.inBegin {
		c.setError(InvalidOperation)
		return true
	}
	return false
}

type matrixModeCmd struct{ mode MatrixMode }

func (matrixModeCmd) Opcode() Opcode { return OpMatrixMode }

func (cmd matrixModeCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	if cmd.mode < MatrixModelView || cmd.mode > MatrixTexture {
		c.setError(InvalidEnum)
		return
	}
	c.matrixMode = cmd.mode
}

// MatrixMode selects the stack that later matrix commands operate on.
func (c *Context) MatrixMode(mode MatrixMode) { c.exec(matrixModeCmd{mode}) }

type loadMatrixCmd struct{ m Matrix4 }

func (cmd loadMatrixCmd) Opcode() Opcode {
	if cmd.m.IsIdentity() {
		return OpLoadIdentity
	}
	return OpLoadMatrix
}

func (cmd loadMatrixCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	c.setTop(cmd.m)
}

// LoadIdentity replaces the current matrix with the identity.
func (c *Context) LoadIdentity() { c.exec(loadMatrixCmd{Identity()}) }

// LoadMatrix replaces the current matrix with m, given in GL column-major
// order.
func (c *Context) LoadMatrix(m [16]float64) { c.exec(loadMatrixCmd{FromColumnMajor(m)}) }

type multMatrixCmd struct {
	op Opcode
	m  Matrix4
}

func (cmd multMatrixCmd) Opcode() Opcode { return cmd.op }

func (cmd multMatrixCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	c.multTop(cmd.m)
}

// MultMatrix multiplies the current matrix by m, given in GL column-major
// order.
func (c *Context) MultMatrix(m [16]float64) {
	c.exec(multMatrixCmd{OpMultMatrix, FromColumnMajor(m)})
}

// Translate multiplies the current matrix by a translation.
func (c *Context) Translate(x, y, z float64) {
	c.exec(multMatrixCmd{OpTranslate, Translation(x, y, z)})
}

// Rotate multiplies the current matrix by a rotation of angle degrees
// about (x, y, z).
func (c *Context) Rotate(angle, x, y, z float64) {
	c.exec(multMatrixCmd{OpRotate, Rotation(angle, x, y, z)})
}

// Scale multiplies the current matrix by a scaling.
func (c *Context) Scale(x, y, z float64) {
	c.exec(multMatrixCmd{OpScale, Scaling(x, y, z)})
}

type projectionCmd struct {
	frustum bool

	left, right, bottom, top, near, far float64
}

func (cmd projectionCmd) Opcode() Opcode {
	if cmd.frustum {
		return OpFrustum
	}
	return OpOrtho
}

func (cmd projectionCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	if cmd.left == cmd.right || cmd.bottom == cmd.top || cmd.near == cmd.far {
		c.setError(InvalidValue)
		return
	}
	if cmd.frustum {
		if cmd.near <= 0 || cmd.far <= 0 {
			c.setError(InvalidValue)
			return
		}
		c.multTop(FrustumMatrix(cmd.left, cmd.right, cmd.bottom, cmd.top, cmd.near, cmd.far))
		return
	}
	c.multTop(OrthoMatrix(cmd.left, cmd.right, cmd.bottom, cmd.top, cmd.near, cmd.far))
}

// Frustum multiplies the current matrix by a perspective projection.
// near and far must be positive and the planes distinct, otherwise
// InvalidValue is recorded.
func (c *Context) Frustum(left, right, bottom, top, near, far float64) {
	c.exec(projectionCmd{true, left, right, bottom, top, near, far})
}

// Ortho multiplies the current matrix by an orthographic projection.
func (c *Context) Ortho(left, right, bottom, top, near, far float64) {
	c.exec(projectionCmd{false, left, right, bottom, top, near, far})
}

type pushMatrixCmd struct{}

func (pushMatrixCmd) Opcode() Opcode { return OpPushMatrix }

func (pushMatrixCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	s := c.stacks[c.matrixMode]
	if len(s) >= stackDepths[c.matrixMode] {
		c.setError(InvalidOperation)
		return
	}
	c.stacks[c.matrixMode] = append(s, s[len(s)-1])
}

// PushMatrix duplicates the top of the current stack. Pushing onto a full
// stack records InvalidOperation and leaves the stack unchanged.
func (c *Context) PushMatrix() { c.exec(pushMatrixCmd{}) }

type popMatrixCmd struct{}

func (popMatrixCmd) Opcode() Opcode { return OpPopMatrix }

func (popMatrixCmd) apply(c *Context) {
	if c.insideBegin() {
		return
	}
	s := c.stacks[c.matrixMode]
	if len(s) <= 1 {
		c.setError(InvalidOperation)
		return
	}
	c.stacks[c.matrixMode] = s[:len(s)-1]
	c.matricesDirty = true
}

// PopMatrix discards the top of the current stack. Popping the last
// matrix records InvalidOperation.
func (c *Context) PopMatrix() { c.exec(popMatrixCmd{}) }

// GetMatrix returns the top of the stack for mode in GL column-major order.
func (c *Context) GetMatrix(mode MatrixMode) [16]float64 {
	if mode < MatrixModelView || mode > MatrixTexture {
		c.setError(InvalidEnum)
		return [16]float64{}
	}
	return c.current(mode).ColumnMajor()
}

// StackDepth returns the number of matrices on the stack for mode.
func (c *Context) StackDepth(mode MatrixMode) int {
	if mode < MatrixModelView || mode > MatrixTexture {
		return 0
	}
	return len(c.stacks[mode])
}
