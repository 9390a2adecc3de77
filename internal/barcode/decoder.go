package barcode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/rs/zerolog/log"
)

// ErrNotFound báo hiệu ảnh không chứa mã vạch nào đọc được.
var ErrNotFound = errors.New("no barcode found in image")

// ScanResult is the outcome of decoding one photo.
type ScanResult struct {
	Code string `json:"barcode"`
	// Generated đánh dấu mã được sinh ra từ hash của ảnh thay vì đọc thật.
	// Client phải cho người dùng biết đây chỉ là mã tạm.
	Generated  bool    `json:"generated"`
	Confidence float64 `json:"confidence"`
}

// Scanner decodes retail barcodes from photos, falling back to a
// deterministic generated code when real decoding finds nothing.
type Scanner struct {
	codec  *Codec
	reader gozxing.Reader
}

func NewScanner(codec *Codec) *Scanner {
	return &Scanner{
		codec:  codec,
		reader: oned.NewMultiFormatUPCEANReader(nil),
	}
}

// Scan tries the real decoder first. When the image cannot be decoded at all
// (bad photo, unsupported format) the error is returned; when the image is
// fine but contains no readable barcode, a generated placeholder is returned
// instead so the import flow can keep going.
func (s *Scanner) Scan(imageData []byte) (ScanResult, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return ScanResult{}, fmt.Errorf("failed to decode image: %w", err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return ScanResult{}, fmt.Errorf("failed to binarize image: %w", err)
	}

	result, err := s.reader.Decode(bmp, nil)
	if err == nil && result.GetText() != "" {
		return ScanResult{
			Code:       result.GetText(),
			Confidence: 0.95,
		}, nil
	}

	log.Debug().Err(err).Msg("no barcode found in image, generating fallback code")

	return ScanResult{
		Code:       s.codec.Generate(string(imageData)),
		Generated:  true,
		Confidence: 0.5,
	}, nil
}

// Complete validates a scanned or hand-typed code. A 12-digit code gets its
// check digit appended; a 13-digit code is verified.
func Complete(code string) (string, error) {
	switch len(code) {
	case 12:
		check, err := CheckDigit(code)
		if err != nil {
			return "", err
		}
		return code + string(check), nil
	case 13:
		if !IsValid(code) {
			return "", fmt.Errorf("invalid EAN-13 check digit in %q", code)
		}
		return code, nil
	default:
		return "", fmt.Errorf("barcode must be 12 or 13 digits, got %d", len(code))
	}
}
