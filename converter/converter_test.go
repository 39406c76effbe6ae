package converter

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"thumbcrop/models"
	"thumbcrop/validation"
)

func createTestImage(t *testing.T, width, height int, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			b := uint8(128)
			img.Set(x, y, color.RGBA{r, g, b, 255})
		}
	}

	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	switch filepath.Ext(path) {
	case ".png":
		require.NoError(t, png.Encode(file, img))
	default:
		require.NoError(t, jpeg.Encode(file, img, &jpeg.Options{Quality: 90}))
	}
}

func decodeSize(t *testing.T, path string) image.Point {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	require.NoError(t, err)
	return image.Pt(cfg.Width, cfg.Height)
}

func newTask(input, outDir string) *models.Task {
	return &models.Task{
		TraceID:   "test",
		InputPath: input,
		Options: models.Options{
			OutputDir:    outDir,
			TargetWidth:  800,
			TargetHeight: 250,
		},
	}
}

func TestConverter_Convert_DownscalesLargeImage(t *testing.T) {
	converter := NewConverter(zaptest.NewLogger(t))

	tmpDir := t.TempDir()
	inputPath := filepath.Join(tmpDir, "landscape.jpg")
	createTestImage(t, 1600, 900, inputPath)

	result := converter.Convert(context.Background(), newTask(inputPath, tmpDir))
	require.False(t, result.Failed(), "unexpected error: %v", result.Err)

	assert.Equal(t, filepath.Join(tmpDir, "landscape_thumb.jpg"), result.OutputPath)
	assert.Equal(t, image.Pt(800, 250), decodeSize(t, result.OutputPath))
}

func TestConverter_Convert_NeverUpscales(t *testing.T) {
	converter := NewConverter(zaptest.NewLogger(t))

	tmpDir := t.TempDir()
	inputPath := filepath.Join(tmpDir, "square.png")
	createTestImage(t, 400, 400, inputPath)

	result := converter.Convert(context.Background(), newTask(inputPath, tmpDir))
	require.False(t, result.Failed(), "unexpected error: %v", result.Err)

	assert.Equal(t, filepath.Join(tmpDir, "square_thumb.png"), result.OutputPath)
	assert.Equal(t, image.Pt(400, 126), decodeSize(t, result.OutputPath))
}

func TestConverter_Convert_OverwritesPreviousOutput(t *testing.T) {
	converter := NewConverter(zaptest.NewLogger(t))

	tmpDir := t.TempDir()
	inputPath := filepath.Join(tmpDir, "photo.jpg")
	createTestImage(t, 1000, 1000, inputPath)

	first := converter.Convert(context.Background(), newTask(inputPath, tmpDir))
	require.False(t, first.Failed(), "unexpected error: %v", first.Err)
	second := converter.Convert(context.Background(), newTask(inputPath, tmpDir))
	require.False(t, second.Failed(), "unexpected error: %v", second.Err)

	assert.Equal(t, first.OutputPath, second.OutputPath)
}

func TestConverter_Convert_InvalidInputPath(t *testing.T) {
	converter := NewConverter(zaptest.NewLogger(t))

	tmpDir := t.TempDir()
	result := converter.Convert(context.Background(), newTask("/nonexistent/path.jpg", tmpDir))

	require.True(t, result.Failed())
	assert.Empty(t, result.OutputPath)
	assert.Equal(t, "/nonexistent/path.jpg", result.InputPath)
	_, err := os.Stat(filepath.Join(tmpDir, "path_thumb.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestConverter_Convert_CorruptInput(t *testing.T) {
	converter := NewConverter(zaptest.NewLogger(t))

	tmpDir := t.TempDir()
	inputPath := filepath.Join(tmpDir, "broken.jpg")
	require.NoError(t, os.WriteFile(inputPath, []byte("not an image"), 0o644))

	result := converter.Convert(context.Background(), newTask(inputPath, tmpDir))

	require.True(t, result.Failed())
	assert.Contains(t, result.Err.Error(), "failed to open image")
	_, err := os.Stat(filepath.Join(tmpDir, "broken_thumb.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestConverter_Convert_UnsupportedFormat(t *testing.T) {
	converter := NewConverter(zaptest.NewLogger(t))

	tmpDir := t.TempDir()
	inputPath := filepath.Join(tmpDir, "input.webp")
	require.NoError(t, os.WriteFile(inputPath, []byte("RIFF"), 0o644))

	result := converter.Convert(context.Background(), newTask(inputPath, tmpDir))

	require.True(t, result.Failed())
	assert.ErrorIs(t, result.Err, validation.ErrUnsupportedFormat)
}

func TestConverter_Convert_MissingOutputDir(t *testing.T) {
	converter := NewConverter(zaptest.NewLogger(t))

	tmpDir := t.TempDir()
	inputPath := filepath.Join(tmpDir, "photo.jpg")
	createTestImage(t, 100, 100, inputPath)

	result := converter.Convert(context.Background(), newTask(inputPath, filepath.Join(tmpDir, "missing")))

	require.True(t, result.Failed())
	assert.Contains(t, result.Err.Error(), "failed to save image")
}

func TestConverter_Convert_CanceledContext(t *testing.T) {
	converter := NewConverter(zaptest.NewLogger(t))

	tmpDir := t.TempDir()
	inputPath := filepath.Join(tmpDir, "photo.jpg")
	createTestImage(t, 100, 100, inputPath)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := converter.Convert(ctx, newTask(inputPath, tmpDir))
	require.True(t, result.Failed())
	assert.ErrorIs(t, result.Err, context.Canceled)
}

func TestCropResize(t *testing.T) {
	ratio, err := NewRatio(800, 250)
	require.NoError(t, err)
	target := image.Pt(800, 250)

	t.Run("offset bounds", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(10, 20, 410, 420))
		out, err := CropResize(src, target, ratio)
		require.NoError(t, err)
		assert.Equal(t, image.Pt(400, 126), out.Bounds().Size())
	})

	t.Run("fit within target keeps aspect", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(0, 0, 3200, 1000))
		out, err := CropResize(src, target, ratio)
		require.NoError(t, err)
		assert.Equal(t, image.Pt(800, 250), out.Bounds().Size())
	})

	t.Run("degenerate", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(0, 0, 0, 10))
		_, err := CropResize(src, target, ratio)
		assert.ErrorIs(t, err, validation.ErrDegenerateImage)
	})
}

func TestConverter_Convert_KeepsExistingOutputItCannotOpen(t *testing.T) {
	converter := NewConverter(zaptest.NewLogger(t))

	tmpDir := t.TempDir()
	inputPath := filepath.Join(tmpDir, "photo.jpg")
	createTestImage(t, 100, 100, inputPath)

	blocked := filepath.Join(tmpDir, "photo_thumb.jpg")
	require.NoError(t, os.Mkdir(blocked, 0o755))

	result := converter.Convert(context.Background(), newTask(inputPath, tmpDir))

	require.True(t, result.Failed())
	assert.Contains(t, result.Err.Error(), "failed to save image")
	info, err := os.Stat(blocked)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
