package converter

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"thumbcrop/models"
	"thumbcrop/validation"
)

type Converter struct {
	logger *zap.Logger
}

func NewConverter(logger *zap.Logger) *Converter {
	return &Converter{logger: logger}
}

// Convert crops and resizes one input file and writes the thumbnail into
// the task's output directory. Every failure, including a panic inside
// the codec, is returned as a failed Result.
func (c *Converter) Convert(ctx context.Context, task *models.Task) (result models.Result) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Conversion panicked",
				zap.String("trace_id", task.TraceID),
				zap.String("input", task.InputPath),
				zap.Any("panic", r),
			)
			result = models.Failure(task.InputPath, fmt.Errorf("conversion panicked: %v", r))
		}
	}()

	outputPath, err := c.convert(ctx, task)
	if err != nil {
		c.logger.Debug("Conversion failed",
			zap.String("trace_id", task.TraceID),
			zap.String("input", task.InputPath),
			zap.Error(err),
		)
		return models.Failure(task.InputPath, err)
	}
	return models.Success(task.InputPath, outputPath)
}

func (c *Converter) convert(ctx context.Context, task *models.Task) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	opts := task.Options
	outputPath, err := validation.OutputPath(task.InputPath, opts.OutputDir)
	if err != nil {
		return "", err
	}
	format, err := validation.OutputFormat(outputPath)
	if err != nil {
		return "", err
	}

	ratio, err := NewRatio(opts.TargetWidth, opts.TargetHeight)
	if err != nil {
		return "", err
	}

	c.logger.Debug("Starting conversion",
		zap.String("trace_id", task.TraceID),
		zap.String("input", task.InputPath),
		zap.String("output", outputPath),
		zap.String("format", format.String()),
	)

	src, err := imaging.Open(task.InputPath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}

	thumb, err := CropResize(src, image.Pt(opts.TargetWidth, opts.TargetHeight), ratio)
	if err != nil {
		return "", err
	}

	c.logger.Debug("Cropped image",
		zap.String("trace_id", task.TraceID),
		zap.Int("src_width", src.Bounds().Dx()),
		zap.Int("src_height", src.Bounds().Dy()),
		zap.Int("width", thumb.Bounds().Dx()),
		zap.Int("height", thumb.Bounds().Dy()),
	)

	quality := opts.JPEGQuality
	if quality == 0 {
		quality = models.DefaultJPEGQuality
	}
	if err := c.save(thumb, outputPath, format, quality); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	c.logger.Debug("Conversion completed",
		zap.String("trace_id", task.TraceID),
		zap.String("output", outputPath),
	)

	return outputPath, nil
}

// save encodes img into path. A file this call created is removed again if
// encoding fails; an existing file that cannot be opened is left alone.
func (c *Converter) save(img image.Image, path string, format imaging.Format, quality int) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if err == nil {
			return
		}
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			c.logger.Warn("Failed to remove partial output",
				zap.String("path", path),
				zap.Error(rmErr),
			)
		}
	}()

	return imaging.Encode(file, img, format, imaging.JPEGQuality(quality))
}

// CropResize center-crops src to ratio and scales the result down to fit
// within target when it covers the target on both axes. It never upscales.
func CropResize(src image.Image, target image.Point, ratio Ratio) (*image.NRGBA, error) {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", validation.ErrDegenerateImage, w, h)
	}

	box := CropBox(w, h, ratio).Add(bounds.Min)
	cropped := imaging.Crop(src, box)

	if NeedsResize(cropped.Bounds().Size(), target) {
		return imaging.Fit(cropped, target.X, target.Y, imaging.Lanczos), nil
	}
	return cropped, nil
}
