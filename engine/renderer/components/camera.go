package components

import (
	"github.com/spaghettifunk/viewgeom/engine/core"
	"github.com/spaghettifunk/viewgeom/engine/math"
)

/**
 * @brief A camera positioned in world space. Its view matrix is the
 * modelview a scene starts from. Rotation is stored as Euler angles in
 * degrees (pitch about X, yaw about Y, roll about Z).
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the view matrix is recalculated when needed.
	 */
	Position math.Vec3
	/**
	 * @brief The rotation of this camera using Euler angles (pitch, yaw, roll).
	 * NOTE: Do not set this directly, use SetEulerRotation() instead
	 * so the view matrix is recalculated when needed.
	 */
	EulerRotation math.Vec3
	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	IsDirty bool
	/** @brief Cached view matrix, valid while IsDirty is false. */
	viewMatrix math.Transform
}

// 89 degrees; looking straight up or down would lose a degree of freedom.
const pitchLimit = 89.0

func NewCamera() *Camera {
	camera := &Camera{}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.EulerRotation = math.NewVec3Zero()
	c.Position = math.NewVec3Zero()
	c.IsDirty = false
	c.viewMatrix = math.NewTransformIdentity()
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.Position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.Position = position
	c.IsDirty = true
}

func (c *Camera) GetEulerRotation() math.Vec3 {
	return c.EulerRotation
}

func (c *Camera) SetEulerRotation(rotation math.Vec3) {
	c.EulerRotation = rotation
	c.EulerRotation.X = math.Clamp(c.EulerRotation.X, -pitchLimit, pitchLimit)
	c.IsDirty = true
}

// world places the camera: T(position) · Rx · Ry · Rz.
func (c *Camera) world() math.Transform {
	w := math.NewTransformIdentity()
	w.Translate(c.Position)
	// The axes are constant and non-zero, so these cannot fail.
	_ = w.Rotate(math.NewVec3Right(), c.EulerRotation.X)
	_ = w.Rotate(math.NewVec3Up(), c.EulerRotation.Y)
	_ = w.Rotate(math.NewVec3Back(), c.EulerRotation.Z)
	return w
}

// View returns the inverse of the camera's placement, i.e. the modelview
// that maps world space into eye space.
func (c *Camera) View() (math.Transform, error) {
	if c.IsDirty {
		view, err := c.world().Inverse()
		if err != nil {
			core.LogError("camera view is not invertible: %s", err)
			return math.Transform{}, err
		}
		c.viewMatrix = view
		c.IsDirty = false
	}
	return c.viewMatrix, nil
}

func (c *Camera) axis(col int, sign float64) math.Vec3 {
	w := c.world()
	return math.NewVec3(w.At(0, col), w.At(1, col), w.At(2, col)).MulScalar(sign)
}

func (c *Camera) Forward() math.Vec3 {
	return c.axis(2, -1)
}

func (c *Camera) Backward() math.Vec3 {
	return c.axis(2, 1)
}

func (c *Camera) Left() math.Vec3 {
	return c.axis(0, -1)
}

func (c *Camera) Right() math.Vec3 {
	return c.axis(0, 1)
}

func (c *Camera) move(direction math.Vec3, amount float64) {
	c.Position = c.Position.Add(direction.MulScalar(amount))
	c.IsDirty = true
}

func (c *Camera) MoveForward(amount float64) {
	c.move(c.Forward(), amount)
}

func (c *Camera) MoveBackward(amount float64) {
	c.move(c.Backward(), amount)
}

func (c *Camera) MoveLeft(amount float64) {
	c.move(c.Left(), amount)
}

func (c *Camera) MoveRight(amount float64) {
	c.move(c.Right(), amount)
}

func (c *Camera) MoveUp(amount float64) {
	c.move(math.NewVec3Up(), amount)
}

func (c *Camera) MoveDown(amount float64) {
	c.move(math.NewVec3Down(), amount)
}

func (c *Camera) Yaw(amount float64) {
	c.EulerRotation.Y += amount
	c.IsDirty = true
}

func (c *Camera) Pitch(amount float64) {
	c.EulerRotation.X += amount

	// Clamp to avoid Gimbal lock.
	c.EulerRotation.X = math.Clamp(c.EulerRotation.X, -pitchLimit, pitchLimit)

	c.IsDirty = true
}
