package products

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// resizeHeader rewrites the IHDR dimensions of a PNG without touching its pixels.
func resizeHeader(data []byte, w, h uint32) []byte {
	out := append([]byte(nil), data...)
	binary.BigEndian.PutUint32(out[16:20], w)
	binary.BigEndian.PutUint32(out[20:24], h)
	binary.BigEndian.PutUint32(out[29:33], crc32.ChecksumIEEE(out[12:29]))
	return out
}

func TestCropRect_Scale(t *testing.T) {
	bounds := image.Rect(0, 0, 800, 600)

	tests := []struct {
		name    string
		rect    CropRect
		want    image.Rectangle
		wantErr bool
	}{
		{
			name: "SourceCoordinates",
			rect: CropRect{X: 10, Y: 20, Width: 100, Height: 50},
			want: image.Rect(10, 20, 110, 70),
		},
		{
			name: "ScaledFromPreview",
			rect: CropRect{X: 10, Y: 10, Width: 100, Height: 100, DisplayWidth: 400, DisplayHeight: 300},
			want: image.Rect(20, 20, 220, 220),
		},
		{
			name: "ClampedToImage",
			rect: CropRect{X: 700, Y: 500, Width: 300, Height: 300},
			want: image.Rect(700, 500, 800, 600),
		},
		{
			name:    "TooSmall",
			rect:    CropRect{X: 0, Y: 0, Width: 9, Height: 50},
			wantErr: true,
		},
		{
			name:    "OutsideImage",
			rect:    CropRect{X: 900, Y: 900, Width: 50, Height: 50},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rect.Scale(bounds)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCrop)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProcessImage(t *testing.T) {
	t.Run("CropAndThumbnail", func(t *testing.T) {
		src := pngFixture(t, 800, 400)

		out, err := ProcessImage(bytes.NewReader(src), CropRect{
			X: 0, Y: 0, Width: 200, Height: 100, DisplayWidth: 400, DisplayHeight: 200,
		})
		require.NoError(t, err)
		assert.Equal(t, 400, out.Width)
		assert.Equal(t, 200, out.Height)

		full, err := imaging.Decode(bytes.NewReader(out.Image))
		require.NoError(t, err)
		assert.Equal(t, image.Pt(400, 200), full.Bounds().Size())

		thumb, err := imaging.Decode(bytes.NewReader(out.Thumbnail))
		require.NoError(t, err)
		assert.Equal(t, image.Pt(300, 150), thumb.Bounds().Size())
	})

	t.Run("NoCropKeepsSize", func(t *testing.T) {
		out, err := ProcessImage(bytes.NewReader(pngFixture(t, 120, 80)), CropRect{})
		require.NoError(t, err)
		assert.Equal(t, 120, out.Width)
		assert.Equal(t, 80, out.Height)
	})

	t.Run("NotAnImage", func(t *testing.T) {
		_, err := ProcessImage(strings.NewReader("hello"), CropRect{})
		assert.ErrorIs(t, err, ErrInvalidProduct)
	})

	t.Run("TooManyPixels", func(t *testing.T) {
		huge := resizeHeader(pngFixture(t, 8, 8), 50000, 50000)
		_, err := ProcessImage(bytes.NewReader(huge), CropRect{})
		assert.ErrorIs(t, err, ErrInvalidProduct)
		assert.ErrorContains(t, err, "pixel limit")
	})

	t.Run("CropTooSmall", func(t *testing.T) {
		_, err := ProcessImage(bytes.NewReader(pngFixture(t, 120, 80)), CropRect{Width: 5, Height: 5})
		assert.ErrorIs(t, err, ErrInvalidCrop)
	})
}
