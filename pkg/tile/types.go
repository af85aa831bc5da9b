package tile

import (
	"fmt"
	"strconv"
	"strings"
)

// Format is an output image encoding
type Format int

// Output format constants
const (
	FormatPNG Format = iota
	FormatJPEG
	FormatGIF
	FormatBMP
	FormatTIFF
)

var formatNames = map[Format]string{
	FormatPNG:  "png",
	FormatJPEG: "jpeg",
	FormatGIF:  "gif",
	FormatBMP:  "bmp",
	FormatTIFF: "tiff",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatGIF:
		return "image/gif"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	default:
		return "image/png"
	}
}

// ParseFormat parses a format name such as "png" or "jpg"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "gif":
		return FormatGIF, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return FormatPNG, fmt.Errorf("unknown format: %s", s)
}

// Size is a width and height in pixels. It describes both images and tiles.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ParseSize parses "WxH". A single number "N" means NxN.
func ParseSize(s string) (Size, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return Size{}, fmt.Errorf("size must be in format 'WIDTHxHEIGHT': %q", s)
	}

	width, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Size{}, fmt.Errorf("invalid width in size %q: %w", s, err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Size{}, fmt.Errorf("invalid height in size %q: %w", s, err)
	}

	return Size{Width: width, Height: height}, nil
}

// Ordering maps each output slot to the source tile copied there:
// slot i receives source tile o[i].
type Ordering []int

func (o Ordering) String() string {
	parts := make([]string, len(o))
	for i, v := range o {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// ParseOrdering parses a comma or whitespace separated list of tile indices
func ParseOrdering(s string) (Ordering, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	o := make(Ordering, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid tile index %q: %w", f, err)
		}
		o = append(o, v)
	}
	return o, nil
}

// Identity returns the ordering that leaves every tile in place
func Identity(n int) Ordering {
	o := make(Ordering, n)
	for i := range o {
		o[i] = i
	}
	return o
}

// Inverse returns the ordering that undoes o. The receiver must be a
// permutation of [0, len(o)); values outside that range are skipped.
func (o Ordering) Inverse() Ordering {
	inv := make(Ordering, len(o))
	for slot, src := range o {
		if src >= 0 && src < len(o) {
			inv[src] = slot
		}
	}
	return inv
}
