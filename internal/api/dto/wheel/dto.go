package wheel

type CreateWheelRequest struct {
	Title           string   `json:"title"`
	Rewards         []string `json:"rewards"`               // Segment labels, clockwise from 12 o'clock
	Winner          *int     `json:"winner,omitempty"`      // Fixed winner, otherwise random per spin
	Colors          []string `json:"colors,omitempty"`      // Segment palette, cycled
	TextColors      []string `json:"text_colors,omitempty"` // Label palette, cycled
	Width           float64  `json:"width,omitempty"`       // Canvas width, px
	Height          float64  `json:"height,omitempty"`      // Canvas height, px
	InnerRadius     float64  `json:"inner_radius,omitempty"`
	OuterRadius     float64  `json:"outer_radius,omitempty"`
	PadAngle        float64  `json:"pad_angle,omitempty"` // Gap between segments, radians
	Duration        string   `json:"duration,omitempty"`  // Spin duration, e.g. "10s"
	Direction       string   `json:"direction,omitempty"` // clockwise | counterclockwise
	Easing          string   `json:"easing,omitempty"`    // ease-in-out | ease | linear
	Shuffle         bool     `json:"shuffle,omitempty"`   // Shuffle rewards once at creation
	KnobSize        float64  `json:"knob_size,omitempty"`
	KnobSource      string   `json:"knob_source,omitempty"` // Knob image URL
	BorderWidth     float64  `json:"border_width,omitempty"`
	BorderColor     string   `json:"border_color,omitempty"`
	BackgroundColor string   `json:"background_color,omitempty"`
	FontSize        float64  `json:"font_size,omitempty"`
	FontWeight      string   `json:"font_weight,omitempty"`      // normal | bold
	TextOrientation string   `json:"text_orientation,omitempty"` // horizontal | vertical
}

type SegmentResponse struct {
	Index      int     `json:"index"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
	Value      string  `json:"value"`
	Color      string  `json:"color"`
	TextColor  string  `json:"text_color"`
	CentroidX  float64 `json:"centroid_x"`
	CentroidY  float64 `json:"centroid_y"`
	Rotation   float64 `json:"label_rotation"`
	Path       string  `json:"path"` // SVG path data relative to the wheel centre
}

type WheelResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Rewards   []string          `json:"rewards"` // Effective order, after shuffle
	Shuffled  bool              `json:"shuffled"`
	Duration  string            `json:"duration"`
	Direction string            `json:"direction"`
	Segments  []SegmentResponse `json:"segments"`
	Phase     string            `json:"phase"`
	Angle     float64           `json:"angle"`
	Nearest   int               `json:"nearest"`
	KnobTilt  float64           `json:"knob_tilt"`
	Ready     bool              `json:"ready"` // Whether the spin button is enabled
	Last      *ResultResponse   `json:"last_result,omitempty"`
	CreatedAt string            `json:"created_at"`
}

type SpinResponse struct {
	WheelID   string  `json:"wheel_id"`
	Winner    int     `json:"winner"`
	Target    float64 `json:"target_angle"`
	Duration  string  `json:"duration"`
	Direction string  `json:"direction"`
	StartedAt string  `json:"started_at"`
}

type ResultResponse struct {
	WheelID   string  `json:"wheel_id"`
	Index     int     `json:"index"`
	Value     string  `json:"value"`
	Angle     float64 `json:"angle"`
	Requested int     `json:"requested"`
	SettledAt string  `json:"settled_at"`
}

type EventResponse struct {
	Angle    float64         `json:"angle"`
	Nearest  int             `json:"nearest"`
	KnobTilt float64         `json:"knob_tilt"`
	Result   *ResultResponse `json:"result,omitempty"`
}

type PresetResponse struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Rewards     []string `json:"rewards"`
}
