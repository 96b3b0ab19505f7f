package render

// Court is the half-court outline in shot coordinates: tenths of a foot,
// hoop at the origin, positive y towards half court.
type Court struct {
	HoopRadius        float64
	BackboardY        float64
	BackboardHalf     float64
	BaselineY         float64
	SidelineX         float64
	HalfCourtY        float64
	PaintOuterHalf    float64
	PaintInnerHalf    float64
	FreeThrowY        float64
	FreeThrowRadius   float64
	RestrictedRadius  float64
	CornerThreeX      float64
	CornerThreeTop    float64
	ThreeRadius       float64
	CenterOuterRadius float64
	CenterInnerRadius float64
}

// DefaultCourt returns NBA dimensions.
func DefaultCourt() Court {
	return Court{
		HoopRadius:        7.5,
		BackboardY:        -7.5,
		BackboardHalf:     30,
		BaselineY:         -47.5,
		SidelineX:         250,
		HalfCourtY:        422.5,
		PaintOuterHalf:    80,
		PaintInnerHalf:    60,
		FreeThrowY:        142.5,
		FreeThrowRadius:   60,
		RestrictedRadius:  40,
		CornerThreeX:      220,
		CornerThreeTop:    92.5,
		ThreeRadius:       237.5,
		CenterOuterRadius: 60,
		CenterInnerRadius: 20,
	}
}

// Width is the sideline to sideline span.
func (c *Court) Width() float64 { return 2 * c.SidelineX }

// Height is the baseline to half court span.
func (c *Court) Height() float64 { return c.HalfCourtY - c.BaselineY }
