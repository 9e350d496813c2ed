package rendering

// Paint describes how shapes are filled.
type Paint struct {
	Color Color
}
