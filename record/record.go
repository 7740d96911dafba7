// Package record stores the frames of a simulation run as a compact stream:
// a small header, then one zstd frame containing every board image
// QOI-encoded. The format is append-friendly, so a run can stream frames as
// it produces them without knowing the tick count up front.
package record

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/xfmoulet/qoi"
)

const magic = "RSR1"

// ErrBadMagic reports a stream that is not a recording.
var ErrBadMagic = errors.New("record: bad magic")

// A Recorder writes frames to a recording stream. Close flushes the
// compressor and must be called for the stream to be readable.
type Recorder struct {
	zw            *zstd.Encoder
	width, height int
	frames        int
}

// NewRecorder starts a recording of width x height frames on w.
// Header: magic(4) + width(uint16) + height(uint16), big-endian.
func NewRecorder(w io.Writer, width, height int) (*Recorder, error) {
	if _, err := io.WriteString(w, magic); err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	if err := binary.Write(w, binary.BigEndian, uint16(width)); err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	if err := binary.Write(w, binary.BigEndian, uint16(height)); err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}

	return &Recorder{zw: zw, width: width, height: height}, nil
}

// WriteFrame appends one frame. The image must match the recording
// dimensions.
func (r *Recorder) WriteFrame(img image.Image) error {
	b := img.Bounds()
	if b.Dx() != r.width || b.Dy() != r.height {
		return fmt.Errorf("record: frame is %dx%d, recording is %dx%d",
			b.Dx(), b.Dy(), r.width, r.height)
	}

	var buf bytes.Buffer
	if err := qoi.Encode(&buf, img); err != nil {
		return fmt.Errorf("record: encode frame %d: %w", r.frames, err)
	}

	if err := binary.Write(r.zw, binary.BigEndian, uint32(buf.Len())); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	if _, err := r.zw.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("record: %w", err)
	}

	r.frames++
	return nil
}

// Frames returns how many frames have been written so far.
func (r *Recorder) Frames() int {
	return r.frames
}

// Close flushes and closes the compressed stream. It does not close the
// underlying writer.
func (r *Recorder) Close() error {
	return r.zw.Close()
}

// A Reader replays a recording stream.
type Reader struct {
	zr            *zstd.Decoder
	width, height int
}

// NewReader opens a recording on r and reads its header.
func NewReader(r io.Reader) (*Reader, error) {
	head := make([]byte, len(magic))
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	if string(head) != magic {
		return nil, ErrBadMagic
	}

	var width, height uint16
	if err := binary.Read(r, binary.BigEndian, &width); err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &height); err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}

	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}

	return &Reader{zr: zr, width: int(width), height: int(height)}, nil
}

// Size returns the recording's frame dimensions.
func (r *Reader) Size() (width, height int) {
	return r.width, r.height
}

// ReadFrame decodes the next frame, or returns io.EOF after the last one.
func (r *Reader) ReadFrame() (image.Image, error) {
	var n uint32
	if err := binary.Read(r.zr, binary.BigEndian, &n); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("record: %w", err)
	}

	// Read the whole payload before decoding so a short decoder read cannot
	// desynchronise the stream.
	payload := make([]byte, n)
	if _, err := io.ReadFull(r.zr, payload); err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}

	img, err := qoi.Decode(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("record: decode frame: %w", err)
	}
	return img, nil
}

// Close releases the decoder. It does not close the underlying reader.
func (r *Reader) Close() {
	r.zr.Close()
}
