package area

//go:generate hwygen -input $GOFILE -output . -targets avx2,fallback

import (
	"github.com/ajroetker/go-highway/hwy"
)

// Batch shoelace kernels.
// Computing areas and bounding boxes of finished rings walks every vertex
// once; doing it over de-interleaved coordinate slices vectorizes cleanly.

// BaseSegmentDetSum computes the accumulated shoelace cross-term over a
// batch of directed segments stored in SoA layout:
// sum over i of (x0[i]*y1[i] - x1[i]*y0[i]).
// Twice the signed area of a closed ring whose edges are passed in order.
func BaseSegmentDetSum[T hwy.Floats](x0s, y0s, x1s, y1s []T) T {
	size := min(len(x0s), len(y0s), len(x1s), len(y1s))

	vSum := hwy.Zero[T]()

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			vX0 := hwy.Load(x0s[offset:])
			vY0 := hwy.Load(y0s[offset:])
			vX1 := hwy.Load(x1s[offset:])
			vY1 := hwy.Load(y1s[offset:])

			cross := hwy.Sub(hwy.Mul(vX0, vY1), hwy.Mul(vX1, vY0))
			vSum = hwy.Add(vSum, cross)
		},
		func(offset, count int) {
			// Zero-padded lanes contribute zero cross products, so the
			// masked tail needs no lane blending.
			mask := hwy.TailMask[T](count)
			vX0 := hwy.MaskLoad(mask, x0s[offset:])
			vY0 := hwy.MaskLoad(mask, y0s[offset:])
			vX1 := hwy.MaskLoad(mask, x1s[offset:])
			vY1 := hwy.MaskLoad(mask, y1s[offset:])

			cross := hwy.Sub(hwy.Mul(vX0, vY1), hwy.Mul(vX1, vY0))
			vSum = hwy.Add(vSum, cross)
		},
	)

	return hwy.ReduceSum(vSum)
}

// BaseCoordMinMax computes the minimum and maximum values in a coordinate
// slice. Used for the bounding boxes of assembled areas.
func BaseCoordMinMax[T hwy.Floats](data []T) (minVal, maxVal T) {
	if len(data) == 0 {
		return 0, 0
	}

	initial := data[0]
	vMin := hwy.Set(initial)
	vMax := hwy.Set(initial)

	hwy.ProcessWithTail[T](len(data),
		func(offset int) {
			v := hwy.Load(data[offset:])
			vMin = hwy.Min(vMin, v)
			vMax = hwy.Max(vMax, v)
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			v := hwy.MaskLoad(mask, data[offset:])

			// Keep the running min/max in the padded lanes so the
			// zero-fill from MaskLoad cannot leak into the result.
			vMinSafe := hwy.IfThenElse(mask, v, vMin)
			vMaxSafe := hwy.IfThenElse(mask, v, vMax)

			vMin = hwy.Min(vMin, vMinSafe)
			vMax = hwy.Max(vMax, vMaxSafe)
		},
	)

	return hwy.ReduceMin(vMin), hwy.ReduceMax(vMax)
}
