package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ThumbSuffix is inserted between the basename and the extension of every
// output file.
const ThumbSuffix = "_thumb"

// OutputPath derives the thumbnail path for inputPath inside outputDir:
// "dir/photo.jpg" becomes "<outputDir>/photo_thumb.jpg". Inputs sharing a
// basename map to the same output path.
func OutputPath(inputPath, outputDir string) (string, error) {
	base := filepath.Base(inputPath)
	if inputPath == "" || base == "." || base == string(filepath.Separator) {
		return "", ErrEmptyFilename
	}

	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext) + ThumbSuffix + ext
	return filepath.Join(outputDir, name), nil
}

// OutputFormat returns the encoder format implied by the extension of path.
func OutputFormat(path string) (imaging.Format, error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return format, nil
}
