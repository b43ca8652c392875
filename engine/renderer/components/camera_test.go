package components_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/spaghettifunk/viewgeom/engine/math"
	"github.com/spaghettifunk/viewgeom/engine/renderer/components"
)

func TestCamera(t *testing.T) {
	Convey("A fresh camera", t, func() {
		cam := components.NewCamera()

		Convey("has an identity view", func() {
			view, err := cam.View()
			So(err, ShouldBeNil)
			So(view.Compare(math.NewTransformIdentity(), 0), ShouldBeTrue)
		})

		Convey("looks down -Z", func() {
			So(cam.Forward().Compare(math.NewVec3Forward(), 1e-12), ShouldBeTrue)
			So(cam.Right().Compare(math.NewVec3Right(), 1e-12), ShouldBeTrue)
		})
	})

	Convey("A moved camera", t, func() {
		cam := components.NewCamera()
		cam.SetPosition(math.NewVec3(0, 0, 10))

		Convey("sees its own position at the eye-space origin", func() {
			view, err := cam.View()
			So(err, ShouldBeNil)
			eye, err := view.ApplyVec3(math.NewVec3(0, 0, 10))
			So(err, ShouldBeNil)
			So(eye.Compare(math.NewVec3Zero(), 1e-12), ShouldBeTrue)

			origin, err := view.ApplyVec3(math.NewVec3Zero())
			So(err, ShouldBeNil)
			So(origin.Compare(math.NewVec3(0, 0, -10), 1e-12), ShouldBeTrue)
		})

		Convey("turning left by 90 degrees faces -X", func() {
			cam.Yaw(90)
			So(cam.Forward().Compare(math.NewVec3Left(), 1e-12), ShouldBeTrue)

			cam.MoveForward(2)
			So(cam.GetPosition().Compare(math.NewVec3(-2, 0, 10), 1e-12), ShouldBeTrue)
		})

		Convey("pitch is clamped", func() {
			cam.Pitch(120)
			So(cam.GetEulerRotation().X, ShouldEqual, 89.0)
			cam.Pitch(-500)
			So(cam.GetEulerRotation().X, ShouldEqual, -89.0)
		})

		Convey("the view is rebuilt after a change", func() {
			first, err := cam.View()
			So(err, ShouldBeNil)
			cam.MoveUp(1)
			second, err := cam.View()
			So(err, ShouldBeNil)
			So(first.Compare(second, 1e-12), ShouldBeFalse)

			cam.Reset()
			third, err := cam.View()
			So(err, ShouldBeNil)
			So(third.Compare(math.NewTransformIdentity(), 0), ShouldBeTrue)
		})
	})
}
