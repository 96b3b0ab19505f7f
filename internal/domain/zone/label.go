package zone

import (
	"fmt"
	"strings"
)

// Label is a canonical court zone.
type Label uint8

// Canonical zones, in display order. Backcourt is the catch-all.
const (
	CloseRange Label = iota
	Mid8Left
	Mid8Center
	Mid8Right
	Mid16Left
	Mid16LeftCenter
	Mid16Center
	Mid16RightCenter
	Mid16Right
	CornerThreeLeft
	ThreeLeftCenter
	ThreeCenter
	ThreeRightCenter
	CornerThreeRight
	Backcourt

	labelCount
)

type labelInfo struct {
	name    string
	display string
}

var labelInfos = [labelCount]labelInfo{
	CloseRange:       {"close_range", "Less Than 8 ft."},
	Mid8Left:         {"mid_8_16_left", "8-16 ft. Left"},
	Mid8Center:       {"mid_8_16_center", "8-16 ft. Center"},
	Mid8Right:        {"mid_8_16_right", "8-16 ft. Right"},
	Mid16Left:        {"mid_16_24_left", "16-24 ft. Left"},
	Mid16LeftCenter:  {"mid_16_24_left_center", "16-24 ft. Left Center"},
	Mid16Center:      {"mid_16_24_center", "16-24 ft. Center"},
	Mid16RightCenter: {"mid_16_24_right_center", "16-24 ft. Right Center"},
	Mid16Right:       {"mid_16_24_right", "16-24 ft. Right"},
	CornerThreeLeft:  {"corner_three_left", "Left Corner 3"},
	ThreeLeftCenter:  {"three_left_center", "Above the Break 3 Left Center"},
	ThreeCenter:      {"three_center", "Above the Break 3 Center"},
	ThreeRightCenter: {"three_right_center", "Above the Break 3 Right Center"},
	CornerThreeRight: {"corner_three_right", "Right Corner 3"},
	Backcourt:        {"backcourt", "Backcourt"},
}

// Labels returns every zone in canonical order.
func Labels() []Label {
	out := make([]Label, labelCount)
	for i := range out {
		out[i] = Label(i)
	}
	return out
}

// Valid reports whether l is a member of the enumeration.
func (l Label) Valid() bool { return l < labelCount }

// String returns the stable machine name, e.g. "mid_16_24_left_center".
func (l Label) String() string {
	if !l.Valid() {
		return fmt.Sprintf("zone(%d)", uint8(l))
	}
	return labelInfos[l].name
}

// Display returns a human readable name for legends and tables.
func (l Label) Display() string {
	if !l.Valid() {
		return l.String()
	}
	return labelInfos[l].display
}

// ParseLabel resolves a machine name back to its Label.
func ParseLabel(name string) (Label, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, info := range labelInfos {
		if info.name == n {
			return Label(i), nil
		}
	}
	return Backcourt, fmt.Errorf("%w: %q", ErrUnknownLabel, name)
}

// MarshalText encodes the label as its machine name.
func (l Label) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLabel, uint8(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes a machine name.
func (l *Label) UnmarshalText(b []byte) error {
	parsed, err := ParseLabel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
