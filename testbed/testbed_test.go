package testbed_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/spaghettifunk/viewgeom/engine/math"
	"github.com/spaghettifunk/viewgeom/engine/scene"
	"github.com/spaghettifunk/viewgeom/testbed"
)

func TestSampleScene(t *testing.T) {
	Convey("The sample scene", t, func() {
		sc, err := testbed.NewSampleScene()
		So(err, ShouldBeNil)
		So(sc.Name, ShouldEqual, "testbed")
		So(sc.Camera, ShouldNotBeNil)

		Convey("evaluates without failures", func() {
			report, err := scene.Evaluate(context.Background(), sc)
			So(err, ShouldBeNil)
			So(report.Failed, ShouldEqual, 0)
			So(report.Results, ShouldHaveLength, 4)

			Convey("placing the model right of and above the window center", func() {
				origin := report.Results[0].Output
				So(origin.X, ShouldBeGreaterThan, 640)
				So(origin.Y, ShouldBeGreaterThan, 360)
				So(origin.Z, ShouldBeBetween, 0, 1)
			})

			Convey("and the far plane lies far from the model", func() {
				far := report.Results[2].Output
				So(far.Length(), ShouldBeGreaterThan, 1000)
			})
		})

		Convey("round-trips points through the model transform", func() {
			s, err := sc.Build()
			So(err, ShouldBeNil)
			So(s.Depth(), ShouldEqual, 2)

			p := math.NewVec3(1, -2, 0.5)
			screen, err := s.ScreenFromWorld3(p)
			So(err, ShouldBeNil)
			back, err := s.WorldFromScreen3(screen)
			So(err, ShouldBeNil)
			So(back.Distance(p), ShouldBeLessThan, 1e-6)
		})
	})
}
