package zone

// Classify maps raw zone tags to a canonical zone. It never fails: tag
// combinations that match no rule land in Backcourt.
func Classify(rangeTag, areaTag, basicTag string) Label {
	return ClassifyTags(ParseTags(rangeTag, areaTag, basicTag))
}

// ClassifyTags applies the ordered zone rules to parsed tags. First match wins.
func ClassifyTags(t Tags) Label {
	switch {
	case t.Range == Range8To16:
		switch t.Area.side() {
		case AreaLeft:
			return Mid8Left
		case AreaRight:
			return Mid8Right
		default:
			return Mid8Center
		}
	case t.Range == Range16To24:
		switch t.Area {
		case AreaLeft:
			return Mid16Left
		case AreaLeftCenter:
			return Mid16LeftCenter
		case AreaRightCenter:
			return Mid16RightCenter
		case AreaRight:
			return Mid16Right
		default:
			return Mid16Center
		}
	case t.Basic == BasicLeftCorner3:
		return CornerThreeLeft
	case t.Basic == BasicRightCorner3:
		return CornerThreeRight
	case t.Basic == BasicAboveBreak3:
		switch t.Area {
		case AreaLeftCenter:
			return ThreeLeftCenter
		case AreaRightCenter:
			return ThreeRightCenter
		case AreaCenter:
			return ThreeCenter
		default:
			return Backcourt
		}
	case t.Range == RangeLessThan8:
		return CloseRange
	default:
		return Backcourt
	}
}
