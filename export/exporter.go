package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/cfgbin/compress"
	"github.com/arloliu/cfgbin/database"
	"github.com/arloliu/cfgbin/errs"
	"github.com/arloliu/cfgbin/format"
	"github.com/arloliu/cfgbin/internal/options"
	"github.com/arloliu/cfgbin/internal/pool"
)

// DefaultIndent is the indentation width of JSON and YAML documents.
const DefaultIndent = 2

const maxIndent = 8

// cborMode sorts map keys and uses the smallest encodings, so equal documents encode
// to equal bytes.
var cborMode = func() cbor.EncMode {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("export: invalid CBOR options: %v", err))
	}

	return mode
}()

// Exporter encodes documents in one format with one output codec.
// An Exporter is immutable after New and safe for concurrent use.
type Exporter struct {
	format      format.ExportFormat
	compression format.CompressionType
	indent      int
}

// Option configures an Exporter.
type Option = options.Option[*Exporter]

// WithFormat selects the document encoding.
func WithFormat(f format.ExportFormat) Option {
	return options.New(func(e *Exporter) error {
		switch f {
		case format.ExportJSON, format.ExportYAML, format.ExportCBOR:
			e.format = f
			return nil
		default:
			return fmt.Errorf("%w: %s", errs.ErrUnsupportedExportFormat, f)
		}
	})
}

// WithCompression selects the codec applied to encoded documents.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(e *Exporter) error {
		if _, err := compress.GetCodec(c); err != nil {
			return err
		}
		e.compression = c

		return nil
	})
}

// WithIndent sets the JSON and YAML indentation width. Zero produces compact JSON.
func WithIndent(n int) Option {
	return options.New(func(e *Exporter) error {
		if n < 0 || n > maxIndent {
			return fmt.Errorf("indent must be between 0 and %d, got %d", maxIndent, n)
		}
		e.indent = n

		return nil
	})
}

// New creates an Exporter. The default writes uncompressed JSON indented by DefaultIndent.
func New(opts ...Option) (*Exporter, error) {
	e := &Exporter{
		format:      format.ExportJSON,
		compression: format.CompressionNone,
		indent:      DefaultIndent,
	}

	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Format returns the document encoding.
func (e *Exporter) Format() format.ExportFormat {
	return e.format
}

// Compression returns the output codec.
func (e *Exporter) Compression() format.CompressionType {
	return e.compression
}

// Render encodes doc without compression.
func (e *Exporter) Render(doc *Document) ([]byte, error) {
	buf := pool.GetDocumentBuffer()
	defer pool.PutDocumentBuffer(buf)

	var err error
	switch e.format {
	case format.ExportYAML:
		err = e.renderYAML(buf, doc)
	case format.ExportCBOR:
		err = cborMode.NewEncoder(buf).Encode(doc)
	default:
		err = e.renderJSON(buf, doc)
	}

	if err != nil {
		return nil, fmt.Errorf("render %s document: %w", e.format, err)
	}

	return bytes.Clone(buf.Bytes()), nil
}

func (e *Exporter) renderJSON(buf *pool.ByteBuffer, doc *Document) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if e.indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", e.indent))
	}

	return enc.Encode(doc)
}

func (e *Exporter) renderYAML(buf *pool.ByteBuffer, doc *Document) error {
	enc := yaml.NewEncoder(buf)
	if e.indent > 0 {
		enc.SetIndent(e.indent)
	}

	if err := enc.Encode(doc); err != nil {
		return err
	}

	return enc.Close()
}

// Encode renders doc and compresses the result with the configured codec.
//
// Returns:
//   - []byte: The encoded, possibly compressed document
//   - compress.Stats: Sizes before and after compression
//   - error: Rendering or compression failure
func (e *Exporter) Encode(doc *Document) ([]byte, compress.Stats, error) {
	rendered, err := e.Render(doc)
	if err != nil {
		return nil, compress.Stats{}, err
	}

	return compress.Compress(e.compression, rendered)
}

// FileName returns the output name for input: the input name followed by the format
// extension and the codec extension, for example "item.cfg.bin.json.zst".
//
// When dir is non-empty the output is placed there instead of next to the input.
func (e *Exporter) FileName(input, dir string) string {
	name := input + e.format.Extension() + e.compression.Extension()
	if dir == "" {
		return name
	}

	return filepath.Join(dir, filepath.Base(name))
}

// WriteFile exports db, decoded from data read at input, and writes the result.
//
// Parameters:
//   - db: The decoded database
//   - input: Path of the source file, recorded in the document and used to name the output
//   - data: Source bytes, digested into the document
//   - dir: Output directory; empty writes next to the input
//
// Returns:
//   - string: Path of the written file
//   - compress.Stats: Sizes before and after compression
//   - error: Rendering, compression or write failure
func (e *Exporter) WriteFile(db *database.Database, input string, data []byte, dir string) (string, compress.Stats, error) {
	doc := NewDocument(db, filepath.Base(input), data)

	encoded, stats, err := e.Encode(doc)
	if err != nil {
		return "", stats, err
	}

	path := e.FileName(input, dir)
	if err := os.WriteFile(path, encoded, 0o644); err != nil { //nolint:gosec
		return "", stats, fmt.Errorf("write %s: %w", path, err)
	}

	return path, stats, nil
}
