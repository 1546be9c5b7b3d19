package spool

import "fmt"

// Compressor compresses one spool artifact's bytes before it hits disk.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor for the merge step.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions; every built-in Algorithm has one.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[Algorithm]Codec{
	AlgorithmNone: NewNoOpCodec(),
	AlgorithmZstd: NewZstdCodec(),
	AlgorithmS2:   NewS2Codec(),
	AlgorithmLZ4:  NewLZ4Codec(),
}

// CodecFor retrieves the built-in Codec for alg.
func CodecFor(alg Algorithm) (Codec, error) {
	codec, ok := builtinCodecs[alg]
	if !ok {
		return nil, fmt.Errorf("spool: unsupported algorithm %s", alg)
	}

	return codec, nil
}
