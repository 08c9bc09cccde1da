package core

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-5

func assertVecNear(t *testing.T, expected, actual Vec3) {
	t.Helper()
	assert.Truef(t, ApproxEqual(expected, actual, tolerance), "expected %v, got %v", expected, actual)
}

func TestRay_Construction(t *testing.T) {
	ray := DefaultRay()
	assert.Equal(t, NewVec3(0, 0, 0), ray.Origin)
	assert.Equal(t, NewVec3(0, 0, -1), ray.Direction)

	var other Ray
	other.Set(NewVec3(1, 2, 3), NewVec3(0, 1, 0)).Recast(2)
	assert.Equal(t, NewVec3(1, 4, 3), other.Origin)

	ray.Copy(other)
	assert.Equal(t, other, ray)

	clone := ray.Clone()
	clone.Origin[0] = 42
	assert.Equal(t, float32(1), ray.Origin[0], "clone must not alias the original")
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, -1))

	tests := []struct {
		name     string
		t        float32
		expected Vec3
	}{
		{"origin", 0, NewVec3(1, 1, 1)},
		{"forward", 3, NewVec3(1, 1, -2)},
		{"backward", -2, NewVec3(1, 1, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVecNear(t, tt.expected, ray.At(tt.t))
		})
	}
}

func TestRay_RecastMatchesAt(t *testing.T) {
	ray := NewRay(NewVec3(0.5, -2, 3), NewVec3(1, 2, -1).Normalize())
	expected := ray.At(2.5)

	ray.Recast(2.5)
	assertVecNear(t, expected, ray.At(0))
}

func TestRay_LookAt(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, 0))
	ray.LookAt(NewVec3(1, 5, 1))
	assertVecNear(t, NewVec3(0, 1, 0), ray.Direction)

	// Degenerate target: direction collapses to zero
	ray.LookAt(ray.Origin)
	assert.Equal(t, Vec3{}, ray.Direction)
}

func TestRay_ApplyMatrix4(t *testing.T) {
	original := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -1))

	t.Run("identity", func(t *testing.T) {
		ray := original
		ray.ApplyMatrix4(mgl32.Ident4())
		assert.True(t, ray.Equals(original))
	})

	t.Run("translation moves origin only", func(t *testing.T) {
		ray := original
		ray.ApplyMatrix4(mgl32.Translate3D(10, 0, -5))
		assertVecNear(t, NewVec3(11, 2, -2), ray.Origin)
		assertVecNear(t, NewVec3(0, 0, -1), ray.Direction)
	})

	t.Run("scale keeps direction unnormalized", func(t *testing.T) {
		ray := original
		ray.ApplyMatrix4(mgl32.Scale3D(2, 2, 2))
		assertVecNear(t, NewVec3(2, 4, 6), ray.Origin)
		assertVecNear(t, NewVec3(0, 0, -2), ray.Direction)
	})

	t.Run("rotation", func(t *testing.T) {
		ray := original
		ray.ApplyMatrix4(mgl32.HomogRotate3DY(mgl32.DegToRad(90)))
		assertVecNear(t, NewVec3(3, 2, -1), ray.Origin)
		assertVecNear(t, NewVec3(-1, 0, 0), ray.Direction)
	})
}

func TestRay_Equals(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 1, 0))
	assert.True(t, ray.Equals(ray))
	assert.True(t, ray.Equals(NewRay(NewVec3(1, 2, 3+1e-7), NewVec3(0, 1, 0))))
	assert.False(t, ray.Equals(NewRay(NewVec3(1, 2, 3.01), NewVec3(0, 1, 0))))
	assert.False(t, ray.Equals(NewRay(NewVec3(1, 2, 3), NewVec3(0, 1, 0.01))))
}

func TestRay_ClosestPointToPoint(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, -1))

	tests := []struct {
		name     string
		point    Vec3
		expected Vec3
	}{
		{"behind the ray clamps to origin", NewVec3(0, 0, 50), NewVec3(1, 1, 1)},
		{"in front projects onto the ray", NewVec3(0, 0, -50), NewVec3(1, 1, -50)},
		{"on the ray", NewVec3(1, 1, -3), NewVec3(1, 1, -3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closest := ray.ClosestPointToPoint(tt.point)
			assertVecNear(t, tt.expected, closest)
			assert.GreaterOrEqual(t, closest.Sub(ray.Origin).Dot(ray.Direction), float32(0))
		})
	}
}

func TestRay_DistanceToPoint(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, -1))

	tests := []struct {
		name     string
		point    Vec3
		expected float32
	}{
		{"behind the ray", NewVec3(0, 0, 50), math32.Sqrt(2 + 49*49)},
		{"in front", NewVec3(0, 0, -50), math32.Sqrt(2)},
		{"on the ray", NewVec3(1, 1, -5), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distance := ray.DistanceToPoint(tt.point)
			assert.InDelta(t, tt.expected, distance, 1e-3)
			squared := ray.DistanceSqToPoint(tt.point)
			assert.InDelta(t, distance*distance, squared, float64(1e-5*(1+squared)))
		})
	}
}

func TestRay_DistanceSqToSegment(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1))

	tests := []struct {
		name           string
		v0, v1         Vec3
		expected       float32
		pointOnRay     Vec3
		pointOnSegment Vec3
	}{
		{
			name:           "crossing segment in front of the ray",
			v0:             NewVec3(-1, 2, 5),
			v1:             NewVec3(1, 2, 5),
			expected:       4,
			pointOnRay:     NewVec3(0, 0, 5),
			pointOnSegment: NewVec3(0, 2, 5),
		},
		{
			name:           "segment past its end",
			v0:             NewVec3(2, 1, 4),
			v1:             NewVec3(5, 1, 4),
			expected:       5,
			pointOnRay:     NewVec3(0, 0, 4),
			pointOnSegment: NewVec3(2, 1, 4),
		},
		{
			name:           "segment behind the origin",
			v0:             NewVec3(-1, 1, -3),
			v1:             NewVec3(1, 1, -3),
			expected:       10,
			pointOnRay:     NewVec3(0, 0, 0),
			pointOnSegment: NewVec3(0, 1, -3),
		},
		{
			name:           "segment crossing the ray",
			v0:             NewVec3(-1, 0, 2),
			v1:             NewVec3(1, 0, 2),
			expected:       0,
			pointOnRay:     NewVec3(0, 0, 2),
			pointOnSegment: NewVec3(0, 0, 2),
		},
		{
			name:           "parallel segment",
			v0:             NewVec3(0, 3, 1),
			v1:             NewVec3(0, 3, 4),
			expected:       9,
			pointOnRay:     NewVec3(0, 0, 4),
			pointOnSegment: NewVec3(0, 3, 4),
		},
		{
			name:           "anti-parallel segment behind the origin",
			v0:             NewVec3(0, 2, -1),
			v1:             NewVec3(0, 2, -4),
			expected:       5,
			pointOnRay:     NewVec3(0, 0, 0),
			pointOnSegment: NewVec3(0, 2, -1),
		},
		{
			name:           "segment reaching back past the origin",
			v0:             NewVec3(1, 0, -2),
			v1:             NewVec3(1, 0, 3),
			expected:       1,
			pointOnRay:     NewVec3(0, 0, 3),
			pointOnSegment: NewVec3(1, 0, 3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var onRay, onSegment Vec3
			distance := ray.DistanceSqToSegment(tt.v0, tt.v1, &onRay, &onSegment)

			assert.InDelta(t, tt.expected, distance, 1e-4)
			assertVecNear(t, tt.pointOnRay, onRay)
			assertVecNear(t, tt.pointOnSegment, onSegment)
			assert.InDelta(t, distance, DistanceSqTo(onRay, onSegment), 1e-4)

			swapped := ray.DistanceSqToSegment(tt.v1, tt.v0, nil, nil)
			assert.InDelta(t, distance, swapped, 1e-4, "endpoint order must not matter")
		})
	}
}

func TestRay_DistanceSqToSegment_Degenerate(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, -1))

	for _, point := range []Vec3{
		NewVec3(0, 0, -50),
		NewVec3(0, 0, 50),
		NewVec3(1, 1, -3),
	} {
		var onSegment Vec3
		distance := ray.DistanceSqToSegment(point, point, nil, &onSegment)
		assert.InDelta(t, ray.DistanceSqToPoint(point), distance, 1e-2)
		assertVecNear(t, point, onSegment)
	}
}

func TestRay_SegmentDistanceSq(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1))
	seg := NewSegment(NewVec3(-1, 2, 5), NewVec3(1, 2, 5))

	assert.Equal(t, ray.DistanceSqToSegment(seg.Start, seg.End, nil, nil), ray.SegmentDistanceSq(seg, nil, nil))
}

func TestClassifySegmentRegion(t *testing.T) {
	tests := []struct {
		name             string
		det, s0, s1, ext float32
		expected         segmentRegion
	}{
		{"parallel", 0, 1, 0, 1, regionParallel},
		{"nan determinant", math32.NaN(), 1, 0, 1, regionParallel},
		{"interior", 1, 1, 0, 1, regionInterior},
		{"segment end", 1, 1, 2, 1, regionSegmentEnd},
		{"segment start", 1, 1, -2, 1, regionSegmentStart},
		{"origin", 1, -1, 0, 1, regionOrigin},
		{"origin and segment end", 1, -1, 2, 1, regionOriginSegmentEnd},
		{"origin and segment start", 1, -1, -2, 1, regionOriginSegmentStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifySegmentRegion(tt.det, tt.s0, tt.s1, tt.ext))
		})
	}
}

func TestRay_IntersectSphere(t *testing.T) {
	sphere := NewSphere(NewVec3(0, 0, 0), 1)

	tests := []struct {
		name     string
		ray      Ray
		hit      bool
		expected Vec3
	}{
		{"outside hits near side", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), true, NewVec3(0, 0, 1)},
		{"misses entirely", NewRay(NewVec3(5, 5, 5), NewVec3(1, 0, 0)), false, Vec3{}},
		{"sphere behind the ray", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), false, Vec3{}},
		{"inside returns exit point", NewRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0)), true, NewVec3(1, 0, 0)},
		{"tangent", NewRay(NewVec3(1, 0, 5), NewVec3(0, 0, -1)), true, NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, ok := tt.ray.IntersectSphere(sphere)
			require.Equal(t, tt.hit, ok)
			if tt.hit {
				assertVecNear(t, tt.expected, point)
			}
		})
	}
}

func TestRay_IntersectsSphere(t *testing.T) {
	sphere := NewSphere(NewVec3(0, 0, -5), 1)

	assert.True(t, NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, -1)).IntersectsSphere(sphere))
	assert.True(t, NewRay(NewVec3(1, 0, 0), NewVec3(0, 0, -1)).IntersectsSphere(sphere))
	assert.False(t, NewRay(NewVec3(2, 0, 0), NewVec3(0, 0, -1)).IntersectsSphere(sphere))
	assert.False(t, NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1)).IntersectsSphere(sphere))
}

func TestRay_DistanceToPlane(t *testing.T) {
	plane := NewPlane(NewVec3(0, 0, 1), 0)

	tests := []struct {
		name     string
		ray      Ray
		expected float32
	}{
		{"toward the plane", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), 5},
		{"away from the plane", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), NoIntersection},
		{"parallel above the plane", NewRay(NewVec3(0, 0, 5), NewVec3(1, 0, 0)), NoIntersection},
		{"coplanar", NewRay(NewVec3(3, 3, 0), NewVec3(1, 0, 0)), 0},
		{"from below", NewRay(NewVec3(0, 0, -2), NewVec3(0, 0, 1)), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.ray.DistanceToPlane(plane), 1e-6)
		})
	}
}

func TestRay_IntersectPlane(t *testing.T) {
	plane := NewPlane(NewVec3(0, 0, 1), 0)

	point, ok := NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)).IntersectPlane(plane)
	require.True(t, ok)
	assertVecNear(t, NewVec3(0, 0, 0), point)

	_, ok = NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)).IntersectPlane(plane)
	assert.False(t, ok)

	offset := NewPlaneFromNormalAndCoplanarPoint(NewVec3(0, 1, 0), NewVec3(0, 2, 0))
	point, ok = NewRay(NewVec3(1, 7, 1), NewVec3(0, -1, 0)).IntersectPlane(offset)
	require.True(t, ok)
	assertVecNear(t, NewVec3(1, 2, 1), point)
}

func TestRay_IntersectsPlane(t *testing.T) {
	plane := NewPlane(NewVec3(0, 0, 1), 0)

	tests := []struct {
		name     string
		ray      Ray
		expected bool
	}{
		{"origin on the plane", NewRay(NewVec3(1, 1, 0), NewVec3(0, 0, 1)), true},
		{"above heading down", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), true},
		{"below heading up", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), true},
		{"above heading away", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), false},
		{"below heading away", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)), false},
		{"parallel above", NewRay(NewVec3(0, 0, 5), NewVec3(1, 0, 0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.ray.IntersectsPlane(plane))
		})
	}
}

func TestRay_IntersectBox(t *testing.T) {
	box := NewBox3(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		hit      bool
		expected Vec3
	}{
		{"hits entry face", NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0)), true, NewVec3(-1, 0, 0)},
		{"negative direction", NewRay(NewVec3(0, 5, 0), NewVec3(0, -1, 0)), true, NewVec3(0, 1, 0)},
		{"inside returns exit point", NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1)), true, NewVec3(0, 0, 1)},
		{"box behind the ray", NewRay(NewVec3(-5, 0, 0), NewVec3(-1, 0, 0)), false, Vec3{}},
		{"misses above", NewRay(NewVec3(-5, 2, 0), NewVec3(1, 0, 0)), false, Vec3{}},
		{"diagonal", NewRay(NewVec3(-3, -3, 0), NewVec3(1, 1, 0).Normalize()), true, NewVec3(-1, -1, 0)},
		{"origin on slab plane", NewRay(NewVec3(-5, 1, 0), NewVec3(1, 0, 0)), true, NewVec3(-1, 1, 0)},
		{"grazing edge", NewRay(NewVec3(-5, 1, 1), NewVec3(1, 0, 0)), true, NewVec3(-1, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, ok := tt.ray.IntersectBox(box)
			require.Equal(t, tt.hit, ok)
			assert.Equal(t, tt.hit, tt.ray.IntersectsBox(box))
			if tt.hit {
				assertVecNear(t, tt.expected, point)
			}
		})
	}
}

func TestRay_IntersectTriangle(t *testing.T) {
	a := NewVec3(-1, -1, 0)
	b := NewVec3(1, -1, 0)
	c := NewVec3(0, 1, 0)

	tests := []struct {
		name     string
		ray      Ray
		cull     bool
		hit      bool
		expected Vec3
	}{
		{"front face", NewRay(NewVec3(0, 0, 1), NewVec3(0, 0, -1)), false, true, NewVec3(0, 0, 0)},
		{"front face with culling", NewRay(NewVec3(0, 0, 1), NewVec3(0, 0, -1)), true, true, NewVec3(0, 0, 0)},
		{"back face", NewRay(NewVec3(0, 0, -1), NewVec3(0, 0, 1)), false, true, NewVec3(0, 0, 0)},
		{"back face culled", NewRay(NewVec3(0, 0, -1), NewVec3(0, 0, 1)), true, false, Vec3{}},
		{"reversed direction culled", NewRay(NewVec3(0, 0, 1), NewVec3(0, 0, 1)), true, false, Vec3{}},
		{"parallel", NewRay(NewVec3(0, 0, 1), NewVec3(1, 0, 0)), false, false, Vec3{}},
		{"outside first edge", NewRay(NewVec3(0, -2, 1), NewVec3(0, 0, -1)), false, false, Vec3{}},
		{"outside hypotenuse", NewRay(NewVec3(0.9, 0.9, 1), NewVec3(0, 0, -1)), false, false, Vec3{}},
		{"triangle behind the ray", NewRay(NewVec3(0, 0, 1), NewVec3(0, 0, 1)), false, false, Vec3{}},
		{"off-center hit", NewRay(NewVec3(0.25, -0.5, 2), NewVec3(0, 0, -1)), false, true, NewVec3(0.25, -0.5, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, ok := tt.ray.IntersectTriangle(a, b, c, tt.cull)
			require.Equal(t, tt.hit, ok)
			if !tt.hit {
				return
			}
			assertVecNear(t, tt.expected, point)
			assert.InDelta(t, 0, point[2], 1e-6)
			assert.True(t, NewTriangle(a, b, c).ContainsPoint(point))
		})
	}
}

func TestRay_IntersectTriangleFace(t *testing.T) {
	tri := NewTriangle(NewVec3(-1, -1, 0), NewVec3(1, -1, 0), NewVec3(0, 1, 0))
	ray := NewRay(NewVec3(0, 0, -1), NewVec3(0, 0, 1))

	_, ok := ray.IntersectTriangleFace(tri, true)
	assert.False(t, ok)

	point, ok := ray.IntersectTriangleFace(tri, false)
	require.True(t, ok)
	assertVecNear(t, NewVec3(0, 0, 0), point)
}

func TestRay_String(t *testing.T) {
	assert.Equal(t, "Ray{origin: (0, 0, 0), direction: (0, 0, -1)}", DefaultRay().String())
}
