package reg

type constError string

func (err constError) Error() string {
	return string(err)
}

const (
	// ErrOutOfBounds reports a value that does not fit in a field's bit width.
	ErrOutOfBounds constError = "reg: value exceeds field width"

	// ErrZeroWidth reports a field declared with width 0.
	ErrZeroWidth constError = "reg: field width must be at least 1"

	// ErrFieldRange reports a field whose offset+width overflows its register.
	ErrFieldRange constError = "reg: field exceeds register width"
)
