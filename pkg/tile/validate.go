package tile

import (
	"fmt"
	"math"
)

// Check names a single validity rule
type Check string

// Validity rules, in the order they are evaluated
const (
	CheckDivisibility Check = "divisibility"
	CheckUniqueness   Check = "uniqueness"
	CheckArea         Check = "area"
	CheckIntegrality  Check = "integrality"
	CheckLength       Check = "length"
	CheckBounds       Check = "bounds"
)

// CheckError reports which rule rejected an arrangement
type CheckError struct {
	Check     Check
	ImageSize Size
	TileSize  Size
	Message   string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("%s: %s", e.Check, e.Message)
}

// IsValid reports whether tileSize partitions imageSize exactly and
// ordering uses every tile of that partition exactly once.
func IsValid(imageSize, tileSize Size, ordering Ordering) bool {
	return Validate(imageSize, tileSize, ordering) == nil
}

// Validate is IsValid with the reason attached. It returns nil or a *CheckError.
func Validate(imageSize, tileSize Size, ordering Ordering) error {
	fail := func(c Check, format string, args ...interface{}) error {
		return &CheckError{
			Check:     c,
			ImageSize: imageSize,
			TileSize:  tileSize,
			Message:   fmt.Sprintf(format, args...),
		}
	}

	// Zero sized tiles fail here rather than dividing by zero below
	if tileSize.Width <= 0 || tileSize.Height <= 0 {
		return fail(CheckDivisibility, "tile size %s must be positive", tileSize)
	}
	if imageSize.Width <= 0 || imageSize.Height <= 0 {
		return fail(CheckDivisibility, "image size %s must be positive", imageSize)
	}
	if imageSize.Width%tileSize.Width != 0 || imageSize.Height%tileSize.Height != 0 {
		return fail(CheckDivisibility, "tile size %s does not divide image size %s", tileSize, imageSize)
	}

	seen := make(map[int]struct{}, len(ordering))
	for _, v := range ordering {
		if _, ok := seen[v]; ok {
			return fail(CheckUniqueness, "tile %d appears more than once", v)
		}
		seen[v] = struct{}{}
	}

	cols := imageSize.Width / tileSize.Width
	rows := imageSize.Height / tileSize.Height

	// rows >= 1 here, and every tile must be addressable by an int index
	if cols > math.MaxInt/rows {
		return fail(CheckArea, "%d columns by %d rows of tiles exceed %d tiles", cols, rows, math.MaxInt)
	}
	count := cols * rows

	// the tiles must leave no blank space. Each dimension is compared on its
	// own so that no product can exceed the image size.
	if cols*tileSize.Width != imageSize.Width || rows*tileSize.Height != imageSize.Height {
		return fail(CheckArea, "%d tiles of %s do not cover image size %s", count, tileSize, imageSize)
	}
	if imageSize.Width%tileSize.Width != 0 || imageSize.Height%tileSize.Height != 0 {
		return fail(CheckIntegrality, "image size %s is not a whole number of tiles of %s", imageSize, tileSize)
	}

	if len(ordering) != count {
		return fail(CheckLength, "ordering has %d entries, want %d", len(ordering), count)
	}

	for _, v := range ordering {
		if v < 0 || v >= count {
			return fail(CheckBounds, "tile %d is outside [0, %d)", v, count)
		}
	}

	return nil
}
