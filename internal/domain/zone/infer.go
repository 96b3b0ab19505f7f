package zone

import "math"

// Court geometry in tenths of a foot with the hoop at the origin, matching
// the LOC_X/LOC_Y convention of the shot data.
const (
	restrictedRadius = 40.0
	paintHalfWidth   = 80.0
	paintDepth       = 142.5
	cornerThreeX     = 220.0
	cornerThreeMaxY  = 92.5
	threeArcRadius   = 237.5
	halfCourtY       = 422.5

	band8  = 80.0
	band16 = 160.0

	centerAngleDeg = 20.0
	sideAngleDeg   = 60.0
)

// InferTags derives zone tags from a court location. Negative x is the left
// side. Used when a record carries no usable tags.
func InferTags(x, y float64) Tags {
	if y > halfCourtY {
		return Tags{Range: RangeBackCourt, Area: AreaBackCourt, Basic: BasicBackcourt}
	}

	dist := math.Hypot(x, y)
	t := Tags{Area: inferArea(x, y, dist)}

	switch {
	case math.Abs(x) >= cornerThreeX && y <= cornerThreeMaxY:
		if x < 0 {
			t.Basic, t.Area = BasicLeftCorner3, AreaLeft
		} else {
			t.Basic, t.Area = BasicRightCorner3, AreaRight
		}
	case dist >= threeArcRadius:
		t.Basic = BasicAboveBreak3
		// Wing threes are tagged as side-center, never as a pure side.
		switch t.Area {
		case AreaLeft:
			t.Area = AreaLeftCenter
		case AreaRight:
			t.Area = AreaRightCenter
		}
	case dist <= restrictedRadius:
		t.Basic = BasicRestrictedArea
	case math.Abs(x) < paintHalfWidth && y < paintDepth:
		t.Basic = BasicPaint
	default:
		t.Basic = BasicMidRange
	}

	// Every three is tagged 24+ ft., corners included.
	switch {
	case t.Basic == BasicLeftCorner3 || t.Basic == BasicRightCorner3 || t.Basic == BasicAboveBreak3:
		t.Range = Range24Plus
	case dist < band8:
		t.Range = RangeLessThan8
	case dist < band16:
		t.Range = Range8To16
	default:
		t.Range = Range16To24
	}
	return t
}

func inferArea(x, y, dist float64) Area {
	if dist < band8 {
		return AreaCenter
	}
	// 0 degrees points straight up the court, negative angles are left.
	deg := math.Atan2(x, y) * 180 / math.Pi
	switch abs := math.Abs(deg); {
	case abs < centerAngleDeg:
		return AreaCenter
	case abs < sideAngleDeg:
		if deg < 0 {
			return AreaLeftCenter
		}
		return AreaRightCenter
	default:
		if deg < 0 {
			return AreaLeft
		}
		return AreaRight
	}
}
