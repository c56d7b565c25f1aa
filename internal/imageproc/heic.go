package imageproc

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/adrium/goheif"
	"github.com/disintegration/imaging"
)

func init() {
	// Without safe encoding, libde265 frames for hvc1 tiles are freed while
	// the PNG encoder still reads them.
	goheif.SafeEncoding = true
}

// heicMu serializes HEIC decodes. goheif reports short reads through the
// standard library logger, so each decode swaps the process-wide log
// output for a buffer and restores it afterwards.
var heicMu sync.Mutex

// PreDecodeHEIC converts HEIC/HEIF bytes into an equivalent PNG raster that
// the main decoder can read. Diagnostics the HEIC library prints while
// decoding are kept off the terminal and appended to the returned error.
func PreDecodeHEIC(data []byte) ([]byte, error) {
	heicMu.Lock()
	var diag bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&diag)
	img, err := goheif.Decode(bytes.NewReader(data))
	log.SetOutput(prev)
	heicMu.Unlock()

	if err != nil {
		if d := strings.TrimSpace(diag.String()); d != "" {
			return nil, fmt.Errorf("heic decode: %w (%s)", err, strings.ReplaceAll(d, "\n", "; "))
		}
		return nil, fmt.Errorf("heic decode: %w", err)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("heic to png: %w", err)
	}
	return buf.Bytes(), nil
}

// PreDecode implements [PreDecoder] with PreDecodeHEIC.
func (Native) PreDecode(data []byte) ([]byte, error) {
	return PreDecodeHEIC(data)
}
