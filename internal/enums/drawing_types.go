package enums

// DrawingType discriminates the shape of a drawing element.
type DrawingType string

const (
	DrawingTypePen       DrawingType = "pen"
	DrawingTypeLine      DrawingType = "line"
	DrawingTypeRectangle DrawingType = "rectangle"
	DrawingTypeCircle    DrawingType = "circle"
	DrawingTypeText      DrawingType = "text"
	DrawingTypeSticky    DrawingType = "sticky"
)

func (dt DrawingType) Valid() bool {
	switch dt {
	case DrawingTypePen, DrawingTypeLine, DrawingTypeRectangle,
		DrawingTypeCircle, DrawingTypeText, DrawingTypeSticky:
		return true
	default:
		return false
	}
}
