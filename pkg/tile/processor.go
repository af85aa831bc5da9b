package tile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/spf13/afero"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultJPEGQuality is used when no quality is configured
const DefaultJPEGQuality = 95

// Processor loads, decodes and encodes images
type Processor struct {
	fs        afero.Fs
	client    *http.Client
	userAgent string
}

// NewProcessor creates a new processor reading and writing through fs
func NewProcessor(fs afero.Fs, userAgent string) *Processor {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Processor{
		fs:        fs,
		client:    &http.Client{},
		userAgent: userAgent,
	}
}

// IsURL reports whether source should be downloaded instead of read from disk
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load reads source from the filesystem, or downloads it when it is a URL, and decodes it
func (p *Processor) Load(ctx context.Context, source string) (image.Image, string, error) {
	var (
		data []byte
		err  error
	)
	if IsURL(source) {
		data, err = p.Download(ctx, source)
	} else {
		data, err = afero.ReadFile(p.fs, source)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", source, err)
	}

	img, format, err := p.DecodeImage(data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s: %w", source, err)
	}
	return img, format, nil
}

// Download fetches an image from url
func (p *Processor) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// DecodeImage decodes PNG, JPEG, GIF, BMP, TIFF or WebP data. The image keeps
// the color model the decoder produced.
func (p *Processor) DecodeImage(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, "", fmt.Errorf("unrecognized image format")
	}
	if err != nil {
		return nil, "", err
	}
	return img, format, nil
}

// Encode writes img to w in the given format
func (p *Processor) Encode(w io.Writer, img image.Image, format Format, quality int) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		if quality <= 0 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case FormatGIF:
		// Paletted images keep their palette, anything else is reduced with median cut
		return gif.Encode(w, img, &gif.Options{
			NumColors: 256,
			Quantizer: quantize.MedianCutQuantizer{},
		})
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

// EncodeBytes encodes img into memory
func (p *Processor) EncodeBytes(img image.Image, format Format, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Encode(&buf, img, format, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save encodes img to filename. An empty filename or "-" writes to stdout.
func (p *Processor) Save(filename string, img image.Image, format Format, quality int) error {
	if filename == "" || filename == "-" {
		return p.Encode(os.Stdout, img, format, quality)
	}

	file, err := p.fs.Create(filename)
	if err != nil {
		return err
	}

	if err := p.Encode(file, img, format, quality); err != nil {
		file.Close()
		p.fs.Remove(filename)
		return err
	}
	if err := file.Close(); err != nil {
		p.fs.Remove(filename)
		return err
	}
	return nil
}

// FormatFromPath guesses the output format from a file extension
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return FormatPNG, false
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return FormatPNG, false
	}
	return f, true
}
