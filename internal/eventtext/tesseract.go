package eventtext

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"clipforge/internal/media"
	"clipforge/internal/services"
)

// binarizeThreshold separates bright announcement text from the scene
// behind it.
const binarizeThreshold = 150

// TesseractRecognizer shells out to the tesseract CLI, feeding frames as
// binarized PGM images on stdin.
type TesseractRecognizer struct {
	binary string
}

// NewTesseract returns a recognizer backed by the given tesseract binary.
func NewTesseract(binary string) *TesseractRecognizer {
	return &TesseractRecognizer{binary: binary}
}

func (r *TesseractRecognizer) Recognize(ctx context.Context, frame media.Frame) (string, error) {
	if frame.Width == 0 || frame.Height == 0 {
		return "", nil
	}

	cmd := exec.CommandContext(ctx, r.binary, "stdin", "stdout", "--psm", "6", "-l", "eng")
	cmd.Stdin = bytes.NewReader(encodePGM(frame))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", services.Wrap(services.ErrExternalTool, "eventtext", "text recognition",
			fmt.Sprintf("tesseract failed: %s", detail), err)
	}
	return stdout.String(), nil
}

// encodePGM converts the frame to a binary (P5) grayscale image with a hard
// threshold applied.
func encodePGM(frame media.Frame) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "P5\n%d %d\n255\n", frame.Width, frame.Height)
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			r, g, b := frame.RGBAt(x, y)
			// ITU-R 601 luma weights.
			gray := (299*int(r) + 587*int(g) + 114*int(b)) / 1000
			if gray >= binarizeThreshold {
				buf.WriteByte(255)
			} else {
				buf.WriteByte(0)
			}
		}
	}
	return buf.Bytes()
}
