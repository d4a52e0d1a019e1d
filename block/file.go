package block

import (
	"fmt"
	"os"

	"github.com/go-kit/log/level"
	"github.com/google/renameio/v2"

	"github.com/arloliu/datablock/section"
)

// FileMode is the permission of files written by SaveBinaryFile and SaveTextFile.
const FileMode os.FileMode = 0o644

// SaveBinaryFile encodes b and replaces path atomically with the result.
func SaveBinaryFile(b *DataBlock, path string, opts ...BinaryEncoderOption) error {
	enc, err := NewBinaryEncoder(opts...)
	if err != nil {
		return err
	}
	data, err := enc.Encode(b)
	if err != nil {
		return err
	}

	if err := renameio.WriteFile(path, data, FileMode); err != nil {
		level.Error(enc.cfg.logger).Log("msg", "failed to save binary datablock", "path", path, "err", err)
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	return nil
}

// SaveTextFile writes the text form of b and replaces path atomically with it.
func SaveTextFile(b *DataBlock, path string, opts ...TextEncoderOption) error {
	enc, err := NewTextEncoder(opts...)
	if err != nil {
		return err
	}
	data, err := enc.Encode(b)
	if err != nil {
		return err
	}

	if err := renameio.WriteFile(path, data, FileMode); err != nil {
		level.Error(enc.cfg.logger).Log("msg", "failed to save text datablock", "path", path, "err", err)
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	return nil
}

// LoadBinaryFile decodes the binary file at path into a new topmost block.
func LoadBinaryFile(path string, opts ...DecoderOption) (*DataBlock, error) {
	dec, err := NewBinaryDecoder(withFileSource(path, opts)...)
	if err != nil {
		return nil, err
	}
	data, err := readFile(path, dec.cfg)
	if err != nil {
		return nil, err
	}

	return dec.Decode(data)
}

// LoadTextFile parses the text file at path into a new topmost block.
func LoadTextFile(path string, opts ...DecoderOption) (*DataBlock, error) {
	dec, err := NewTextDecoder(withFileSource(path, opts)...)
	if err != nil {
		return nil, err
	}
	data, err := readFile(path, dec.cfg)
	if err != nil {
		return nil, err
	}

	return dec.Decode(data)
}

// LoadFile loads path as binary when it starts with the binary magic
// number and as text otherwise.
func LoadFile(path string, opts ...DecoderOption) (*DataBlock, error) {
	opts = withFileSource(path, opts)
	dec, err := NewTextDecoder(opts...)
	if err != nil {
		return nil, err
	}
	data, err := readFile(path, dec.cfg)
	if err != nil {
		return nil, err
	}

	return Load(data, opts...)
}

// Load decodes data as binary when it starts with the binary magic number
// and parses it as text otherwise.
func Load(data []byte, opts ...DecoderOption) (*DataBlock, error) {
	if section.IsBinary(data) {
		dec, err := NewBinaryDecoder(opts...)
		if err != nil {
			return nil, err
		}

		return dec.Decode(data)
	}

	dec, err := NewTextDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return dec.Decode(data)
}

// withFileSource names the input after path unless the caller set a source.
func withFileSource(path string, opts []DecoderOption) []DecoderOption {
	return append([]DecoderOption{WithSource(path)}, opts...)
}

func readFile(path string, cfg *DecoderConfig) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		level.Error(cfg.logger).Log("msg", "failed to read datablock file", "path", path, "err", err)
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return data, nil
}
