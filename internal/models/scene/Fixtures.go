// This file contains the built-in scenes: the showroom served on /scene, which shows every object type the viewer
// can draw, and the legacy event document served on /event.

package scene

// Ptr returns a pointer to v, for the optional fields of material parameters.
func Ptr[T any](v T) *T {
	return &v
}

// Showroom returns the canonical static scene: three detector boxes, a reconstructed track, colored line segments
// and two hit marker sets.
func Showroom() *Scene {
	return &Scene{
		Iterable: true,
		GeometryData: GeometryData{
			Materials: []Material{
				NewMaterial("defaultDetMaterial", &MeshBasic{
					Transparent: Ptr(true),
					Opacity:     Ptr(0.15),
					Color:       Ptr(Hex(0xffffaa)),
				}),
				NewMaterial("reconstructedTrackMaterial", &LineDashed{
					Color:     Ptr(Hex(0xff7777)),
					Linewidth: Ptr(1.0),
					Scale:     Ptr(1.0),
					// three.js ignores dashes on plain lines
					DashSize: Ptr(3.0),
					GapSize:  Ptr(1.0),
				}),
				NewMaterial("basicWhiteLineMaterial", &LineBasic{
					Color:        Ptr(Hex(0xffffff)),
					VertexColors: Ptr(true),
				}),
				NewMaterial("dashedLineMaterial", &ColoredLineShader{}),
				NewMaterial("markersMat1", &PointMarkersShader{
					Shape: "xCross",
					Flags: Ptr(0x0),
					Size:  Ptr(16.0),
				}),
				NewMaterial("markersMat2", &PointMarkersShader{
					Shape: "hollowXCross",
					Flags: Ptr(0x3),
					Size:  Ptr(32.0),
				}),
			},
			Geometry: []Primitive{
				NewPrimitive("det1", "defaultDetMaterial", &BoxGeometry{
					Position: Vec3{0, 0, -10},
					Sizes:    Vec3{7.5, 17.5, 1},
					Rotation: Vec3{0, 12, 6.5},
				}),
				NewPrimitive("det2", "defaultDetMaterial", &BoxGeometry{
					Position: Vec3{0, 0, 10},
					Sizes:    Vec3{15, 8.3, 0.5},
					Rotation: Vec3{-3.4, 0, -4.5},
				}),
				NewPrimitive("det3", "defaultDetMaterial", &BoxGeometry{
					Position: Vec3{0, 0, 0},
					Sizes:    Vec3{14, 14, 0.5},
					Rotation: Vec3{0, 0, 0},
				}),
				NewPrimitive("reconstructedTrack", "reconstructedTrackMaterial", &Line{
					Points: []Vec3{
						{-1.5, 5.6, -20},
						{2.3, -3, 20},
					},
				}),
				NewPrimitive("detXXX", "basicWhiteLineMaterial", &ColoredLineSegments{
					Points: []ColoredPoint{
						{Position: Vec3{-10, -10, -10}, Color: RGB(0, 0, 1)},
						{Position: Vec3{-10, 10, -10}, Color: RGB(0, 1, 0)},
						{Position: Vec3{-10, 10, 10}, Color: RGB(0, 1, 1)},
						{Position: Vec3{10, 10, 10}, Color: RGB(1, 1, 0)},
					},
				}),
				NewPrimitive("referenceTrack", "dashedLineMaterial", &ColoredLineSegments{
					Points: []ColoredPoint{
						{Position: Vec3{-0.65, 5.45, -19.8}, Color: RGB(0, 1, 1)},
						{Position: Vec3{3.38, -1.1, 17.2}, Color: RGB(0, 0, 1)},
						{Position: Vec3{4.38, 3.1, 23.2}, Color: RGB(0, 0, 1)},
					},
				}),
				NewPrimitive("hits1", "markersMat1", &PointMarkers{
					Items: []PointMarker{
						{Position: Vec3{-2, -3, -4}, Color: RGB(0.3, 0.4, 0.5), Size: 17},
						{Position: Vec3{2, 3, -4}, Color: RGB(0.9, 0.4, 0.2), Size: 32},
					},
				}),
				NewPrimitive("hits2", "markersMat2", &PointMarkers{
					Items: []PointMarker{
						{Position: Vec3{12, -9, -8}, Color: RGB(0.9, 0.4, 0.8), Size: 12},
						{Position: Vec3{32, 18, 19}, Color: RGB(0.9, 0.4, 0.2), Size: 18},
					},
				}),
			},
		},
	}
}

// LegacyEvent returns the single-event document of the /event route. Its detector boxes are the showroom's
// scaled down by ten.
func LegacyEvent() *Scene {
	return &Scene{
		GeometryData: GeometryData{
			Materials: []Material{
				NewMaterial("defaultDetMaterial", &MeshBasic{
					Wireframe:   Ptr(true),
					Transparent: Ptr(true),
					Opacity:     Ptr(0.15),
					Color:       Ptr(Hex(0xffffaa)),
				}),
				NewMaterial("referenceTrackMaterial", &LineDashed{
					Color:     Ptr(Hex(0xff7777)),
					Linewidth: Ptr(1.0),
					Scale:     Ptr(1.0),
					DashSize:  Ptr(3.0),
					GapSize:   Ptr(1.0),
				}),
			},
			Geometry: []Primitive{
				NewPrimitive("det1", "defaultDetMaterial", &BoxGeometry{
					Position: Vec3{0, 0, -1},
					Sizes:    Vec3{0.75, 1.75, 0.1},
					Rotation: Vec3{0, 12, 6.5},
				}),
				NewPrimitive("det2", "defaultDetMaterial", &BoxGeometry{
					Position: Vec3{0, 0, 1},
					Sizes:    Vec3{1.5, 0.83, 0.05},
					Rotation: Vec3{-3.4, 0, -4.5},
				}),
				NewPrimitive("det3", "defaultDetMaterial", &BoxGeometry{
					Position: Vec3{0, 0, 0},
					Sizes:    Vec3{1.4, 1.4, 0.05},
					Rotation: Vec3{0, 0, 0},
				}),
				NewPrimitive("referenceTrack", "referenceTrackMaterial", &Line{
					Points: []Vec3{
						{-0.15, 0.56, -2},
						{0.23, -0.3, 2},
					},
				}),
			},
		},
	}
}
