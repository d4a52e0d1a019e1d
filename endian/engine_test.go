package endian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsLittleEndian(t *testing.T) {
	engine := Default()

	buf := engine.AppendUint32(nil, 0x14d38d64)
	require.Equal(t, []byte{0x64, 0x8d, 0xd3, 0x14}, buf)
	require.Equal(t, uint32(0x14d38d64), engine.Uint32(buf))

	buf = engine.AppendUint16(buf[:0], 0x0102)
	require.Equal(t, []byte{0x02, 0x01}, buf)

	patch := make([]byte, 8)
	engine.PutUint64(patch, 0x0807060504030201)
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, patch)
}
