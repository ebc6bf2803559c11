package media

import "testing"

func buildFrame(width, height int) Frame {
	f := Frame{Width: width, Height: height, Pixels: make([]byte, width*height*3)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := (y*width + x) * 3
			f.Pixels[idx] = byte(x)
			f.Pixels[idx+1] = byte(y)
			f.Pixels[idx+2] = 255
		}
	}
	return f
}

func TestFrameRGBAt(t *testing.T) {
	f := buildFrame(8, 4)
	r, g, b := f.RGBAt(3, 2)
	if r != 3 || g != 2 || b != 255 {
		t.Fatalf("unexpected pixel: %d %d %d", r, g, b)
	}
	r, g, b = f.RGBAt(-1, 0)
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("out-of-bounds read should return zeros, got %d %d %d", r, g, b)
	}
}

func TestFrameCrop(t *testing.T) {
	f := buildFrame(10, 10)
	cropped := f.Crop(0.5, 0.5, 1.0, 1.0)
	if cropped.Width != 5 || cropped.Height != 5 {
		t.Fatalf("unexpected crop size: %dx%d", cropped.Width, cropped.Height)
	}
	r, g, _ := cropped.RGBAt(0, 0)
	if r != 5 || g != 5 {
		t.Fatalf("crop origin should map to source (5,5), got (%d,%d)", r, g)
	}

	empty := f.Crop(0.9, 0.9, 0.9, 0.9)
	if empty.Width != 0 || empty.Height != 0 || len(empty.Pixels) != 0 {
		t.Fatalf("degenerate crop should be empty: %+v", empty)
	}
}
