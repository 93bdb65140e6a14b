// Package compress provides the codecs applied to exported cfg.bin documents.
//
// Every codec produces a self-contained stream in the algorithm's standard file format,
// so compressed exports open with the usual command line tools:
//   - None: the document as is
//   - Zstd: a Zstandard frame (.zst)
//   - S2: an S2 stream (.s2), readable by klauspost/compress s2 and Snappy framing readers
//   - LZ4: an LZ4 frame (.lz4)
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(document)
//
// All codecs are stateless values backed by pooled encoders and are safe for concurrent
// use, which the CLI relies on when exporting several files in parallel.
package compress
