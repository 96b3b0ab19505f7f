// Package zone maps raw shot-zone tags onto the canonical court zones.
package zone

import "strings"

// Range is the parsed shot distance band tag (SHOT_ZONE_RANGE).
type Range uint8

// Distance bands.
const (
	RangeUnknown Range = iota
	RangeLessThan8
	Range8To16
	Range16To24
	Range24Plus
	RangeBackCourt
)

// Area is the parsed court side tag (SHOT_ZONE_AREA).
type Area uint8

// Court sides.
const (
	AreaUnknown Area = iota
	AreaLeft
	AreaLeftCenter
	AreaCenter
	AreaRightCenter
	AreaRight
	AreaBackCourt
)

// Basic is the parsed coarse zone tag (SHOT_ZONE_BASIC).
type Basic uint8

// Coarse zones.
const (
	BasicUnknown Basic = iota
	BasicRestrictedArea
	BasicPaint
	BasicMidRange
	BasicLeftCorner3
	BasicRightCorner3
	BasicAboveBreak3
	BasicBackcourt
)

// Tags is the parsed form of a shot's three zone tags.
type Tags struct {
	Range Range
	Area  Area
	Basic Basic
}

// Unknown reports whether none of the three tags was recognized.
func (t Tags) Unknown() bool {
	return t.Range == RangeUnknown && t.Area == AreaUnknown && t.Basic == BasicUnknown
}

// ParseTags parses all three raw tags.
func ParseTags(rangeTag, areaTag, basicTag string) Tags {
	return Tags{
		Range: ParseRange(rangeTag),
		Area:  ParseArea(areaTag),
		Basic: ParseBasic(basicTag),
	}
}

var rangeNames = map[string]Range{
	"lessthan8ft":   RangeLessThan8,
	"<8ft":          RangeLessThan8,
	"0-8ft":         RangeLessThan8,
	"8-16ft":        Range8To16,
	"16-24ft":       Range16To24,
	"24+ft":         Range24Plus,
	"backcourtshot": RangeBackCourt,
	"backcourt":     RangeBackCourt,
}

var areaNames = map[string]Area{
	"l":               AreaLeft,
	"leftside":        AreaLeft,
	"lc":              AreaLeftCenter,
	"leftsidecenter":  AreaLeftCenter,
	"c":               AreaCenter,
	"center":          AreaCenter,
	"rc":              AreaRightCenter,
	"rightsidecenter": AreaRightCenter,
	"r":               AreaRight,
	"rightside":       AreaRight,
	"bc":              AreaBackCourt,
	"backcourt":       AreaBackCourt,
}

var basicNames = map[string]Basic{
	"restrictedarea":     BasicRestrictedArea,
	"inthepaint(non-ra)": BasicPaint,
	"inthepaint":         BasicPaint,
	"mid-range":          BasicMidRange,
	"midrange":           BasicMidRange,
	"leftcorner3":        BasicLeftCorner3,
	"rightcorner3":       BasicRightCorner3,
	"abovethebreak3":     BasicAboveBreak3,
	"backcourt":          BasicBackcourt,
}

// normalize lowercases s and strips whitespace, trailing dots and dash variants
// so that "Less Than 8 ft." and "less than 8 ft" compare equal.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "", "\t", "", "–", "-", "—", "-").Replace(s)
	return strings.TrimRight(s, ".")
}

// ParseRange parses a SHOT_ZONE_RANGE value. Unrecognized input yields RangeUnknown.
func ParseRange(s string) Range {
	return rangeNames[normalize(s)]
}

// ParseArea parses a SHOT_ZONE_AREA value such as "Left Side Center(LC)",
// "Left Side Center" or "LC". Unrecognized input yields AreaUnknown.
func ParseArea(s string) Area {
	n := normalize(s)
	if open := strings.IndexByte(n, '('); open >= 0 && strings.HasSuffix(n, ")") {
		if a, ok := areaNames[n[open+1:len(n)-1]]; ok {
			return a
		}
		n = n[:open]
	}
	return areaNames[n]
}

// ParseBasic parses a SHOT_ZONE_BASIC value. Unrecognized input yields BasicUnknown.
func ParseBasic(s string) Basic {
	return basicNames[normalize(s)]
}

// side collapses an area to its left/center/right indicator.
func (a Area) side() Area {
	switch a {
	case AreaLeft, AreaLeftCenter:
		return AreaLeft
	case AreaRight, AreaRightCenter:
		return AreaRight
	default:
		return AreaCenter
	}
}

func (r Range) String() string {
	switch r {
	case RangeLessThan8:
		return "Less Than 8 ft."
	case Range8To16:
		return "8-16 ft."
	case Range16To24:
		return "16-24 ft."
	case Range24Plus:
		return "24+ ft."
	case RangeBackCourt:
		return "Back Court Shot"
	default:
		return ""
	}
}

func (a Area) String() string {
	switch a {
	case AreaLeft:
		return "Left Side(L)"
	case AreaLeftCenter:
		return "Left Side Center(LC)"
	case AreaCenter:
		return "Center(C)"
	case AreaRightCenter:
		return "Right Side Center(RC)"
	case AreaRight:
		return "Right Side(R)"
	case AreaBackCourt:
		return "Back Court(BC)"
	default:
		return ""
	}
}

func (b Basic) String() string {
	switch b {
	case BasicRestrictedArea:
		return "Restricted Area"
	case BasicPaint:
		return "In The Paint (Non-RA)"
	case BasicMidRange:
		return "Mid-Range"
	case BasicLeftCorner3:
		return "Left Corner 3"
	case BasicRightCorner3:
		return "Right Corner 3"
	case BasicAboveBreak3:
		return "Above the Break 3"
	case BasicBackcourt:
		return "Backcourt"
	default:
		return ""
	}
}
