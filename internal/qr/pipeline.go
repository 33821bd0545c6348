package qr

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"

	qrcode "github.com/yeqown/go-qrcode/v2"
)

// DefaultMaxDataLen bounds the input length before encoding. It matches
// the byte capacity of a version 40 symbol at the lowest error
// correction level; anything longer cannot be encoded at all, and
// bounding early keeps image dimensions from growing on adversarial
// input.
const DefaultMaxDataLen = 2953

// ErrNoData is returned when the render input is empty.
var ErrNoData = errors.New("qr: no data to encode")

// ErrDataTooLong is returned when the render input exceeds the engine's
// length bound.
var ErrDataTooLong = errors.New("qr: data exceeds maximum length")

// EncodingError wraps a failure from the symbol encoder, typically when
// the data does not fit the requested version and error correction
// level.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string { return fmt.Sprintf("qr: encoding failed: %v", e.Err) }
func (e *EncodingError) Unwrap() error { return e.Err }

// Result is the outcome of one render. It is built once per Generate
// call and never mutated afterwards.
type Result struct {
	Image   *image.RGBA
	PNG     []byte
	Base64  string
	DataURL string
	Width   int
	Height  int
	Format  string
}

// Engine renders styled QR symbols. It holds no per-render state, so a
// single Engine value may serve concurrent Generate calls.
type Engine struct {
	// MaxDataLen overrides DefaultMaxDataLen when positive.
	MaxDataLen int
}

func (e Engine) maxDataLen() int {
	if e.MaxDataLen > 0 {
		return e.MaxDataLen
	}
	return DefaultMaxDataLen
}

// Generate encodes data and renders it with the given style. It is
// synchronous, does no I/O, and reports every failure as an error value;
// it does not panic on bad input.
func (e Engine) Generate(data string, st Style) (*Result, error) {
	if data == "" {
		return nil, ErrNoData
	}
	if len(data) > e.maxDataLen() {
		return nil, fmt.Errorf("%w (%d > %d bytes)", ErrDataTooLong, len(data), e.maxDataLen())
	}

	opts := []qrcode.EncodeOption{eccOption(st.ErrorCorrection)}
	if st.Version > 0 {
		opts = append(opts, qrcode.WithVersion(st.Version))
	}
	qrc, err := qrcode.NewWith(data, opts...)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}

	var capture matrixCapture
	if err := qrc.Save(&capture); err != nil {
		return nil, &EncodingError{Err: err}
	}
	n := len(capture.modules)

	img := RenderBase(capture.modules, st, MaskFor(st))
	if st.EyeDrawer != EyeSquare {
		regions := Locate(n)
		pixels := make([]PixelRegion, 0, len(regions))
		for _, r := range regions {
			pixels = append(pixels, r.Pixels(st.Border, st.BoxSize))
		}
		img = ApplyEyeStyle(img, pixels, st.EyeDrawer, st.FillColor, st.BackColor, st.BoxSize)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("qr: png encode: %w", err)
	}
	b64 := base64.StdEncoding.EncodeToString(buf.Bytes())

	side := img.Bounds().Dx()
	return &Result{
		Image:   img,
		PNG:     buf.Bytes(),
		Base64:  b64,
		DataURL: "data:image/png;base64," + b64,
		Width:   side,
		Height:  side,
		Format:  "PNG",
	}, nil
}

func eccOption(s string) qrcode.EncodeOption {
	switch s {
	case "L":
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow)
	case "Q":
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart)
	case "H":
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest)
	default:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium)
	}
}
