// Package detection extracts geometric structure from computed edge maps.
//
// Unlike a general-purpose detector, this package does not find edges itself:
// it consumes the binary edge map the filter pipeline already produced, so
// line extraction always agrees with whatever algorithm and parameters the
// user tuned.
package detection

import (
	"fmt"
	"math"
	"sort"

	"github.com/ironsheep/edge-explorer-mcp/internal/raster"
)

// maxLines caps the number of segments reported per call.
const maxLines = 50

// Point is a pixel coordinate, 0-based, top-left origin.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Line is a detected line segment on the edge map.
type Line struct {
	Start           Point   `json:"start"`
	End             Point   `json:"end"`
	Length          float64 `json:"length"`
	AngleDegrees    float64 `json:"angle_degrees"`
	ThicknessApprox int     `json:"thickness_approx"`
}

// LinesResult contains the segments found in one edge map.
type LinesResult struct {
	Lines []Line `json:"lines"`
	Count int    `json:"count"`
}

// DetectLines finds line segments in a binary edge map using a Hough
// transform. edges must be a single-channel buffer where samples above 127
// mark edge pixels, and minLength is the shortest segment to report.
func DetectLines(edges *raster.Buffer, minLength int) (*LinesResult, error) {
	if edges.Channels != 1 {
		return nil, fmt.Errorf("edge map must be single-channel, got %d channels", edges.Channels)
	}
	if minLength < 1 {
		minLength = 1
	}

	width, height := edges.Width, edges.Height
	on := func(x, y int) bool { return edges.Pix[y*width+x] > 127 }

	// Precompute the angle tables once; the voting loop is the hot path.
	const numAngles = 180
	cosTab := make([]float64, numAngles)
	sinTab := make([]float64, numAngles)
	for theta := 0; theta < numAngles; theta++ {
		angle := float64(theta) * math.Pi / 180
		cosTab[theta] = math.Cos(angle)
		sinTab[theta] = math.Sin(angle)
	}

	maxRho := int(math.Sqrt(float64(width*width + height*height)))
	accumulator := make([][]int, maxRho*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !on(x, y) {
				continue
			}
			for theta := 0; theta < numAngles; theta++ {
				rho := float64(x)*cosTab[theta] + float64(y)*sinTab[theta]
				rhoIdx := int(rho) + maxRho
				if rhoIdx >= 0 && rhoIdx < maxRho*2 {
					accumulator[rhoIdx][theta]++
				}
			}
		}
	}

	type peak struct {
		rhoIdx, theta, votes int
	}
	var peaks []peak
	voteThreshold := minLength / 2
	if voteThreshold < 2 {
		voteThreshold = 2
	}

	for rhoIdx := range accumulator {
		for theta := 0; theta < numAngles; theta++ {
			votes := accumulator[rhoIdx][theta]
			if votes < voteThreshold {
				continue
			}
			if !isLocalMax(accumulator, rhoIdx, theta, numAngles) {
				continue
			}
			peaks = append(peaks, peak{rhoIdx: rhoIdx, theta: theta, votes: votes})
		}
	}

	sort.Slice(peaks, func(i, j int) bool { return peaks[i].votes > peaks[j].votes })

	lines := make([]Line, 0, len(peaks))
	for _, pk := range peaks {
		if len(lines) >= maxLines {
			break
		}

		cosA := cosTab[pk.theta]
		sinA := sinTab[pk.theta]
		rho := float64(pk.rhoIdx - maxRho)

		// Walk the edge pixels near this Hough line and keep the extreme
		// projections as the segment endpoints.
		var start, end Point
		minProj, maxProj := math.MaxFloat64, -math.MaxFloat64
		supporting := 0
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !on(x, y) {
					continue
				}
				if math.Abs(float64(x)*cosA+float64(y)*sinA-rho) >= 2 {
					continue
				}
				supporting++
				proj := float64(x)*-sinA + float64(y)*cosA
				if proj < minProj {
					minProj = proj
					start = Point{X: x, Y: y}
				}
				if proj > maxProj {
					maxProj = proj
					end = Point{X: x, Y: y}
				}
			}
		}
		if supporting < minLength {
			continue
		}

		dx := float64(end.X - start.X)
		dy := float64(end.Y - start.Y)
		length := math.Sqrt(dx*dx + dy*dy)
		if length < float64(minLength) {
			continue
		}

		lines = append(lines, Line{
			Start:           start,
			End:             end,
			Length:          math.Round(length*10) / 10,
			AngleDegrees:    math.Round(math.Atan2(dy, dx)*180/math.Pi*10) / 10,
			ThicknessApprox: estimateThickness(on, start, end, width, height),
		})
	}

	return &LinesResult{Lines: lines, Count: len(lines)}, nil
}

// isLocalMax reports whether an accumulator cell dominates its 5x5
// neighborhood, with the angle axis wrapping.
func isLocalMax(accumulator [][]int, rhoIdx, theta, numAngles int) bool {
	votes := accumulator[rhoIdx][theta]
	for dr := -2; dr <= 2; dr++ {
		nr := rhoIdx + dr
		if nr < 0 || nr >= len(accumulator) {
			continue
		}
		for dt := -2; dt <= 2; dt++ {
			if dr == 0 && dt == 0 {
				continue
			}
			nt := (theta + dt + numAngles) % numAngles
			if accumulator[nr][nt] > votes {
				return false
			}
		}
	}
	return true
}

// estimateThickness counts edge pixels along the perpendicular through the
// segment midpoint, sampling 10 pixels to each side.
func estimateThickness(on func(x, y int) bool, start, end Point, width, height int) int {
	dx := float64(end.X - start.X)
	dy := float64(end.Y - start.Y)
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return 1
	}

	perpX := -dy / length
	perpY := dx / length
	midX := float64(start.X+end.X) / 2
	midY := float64(start.Y+end.Y) / 2

	thickness := 0
	for d := -10; d <= 10; d++ {
		px := int(midX + float64(d)*perpX)
		py := int(midY + float64(d)*perpY)
		if px >= 0 && px < width && py >= 0 && py < height && on(px, py) {
			thickness++
		}
	}
	if thickness < 1 {
		thickness = 1
	}
	return thickness
}
