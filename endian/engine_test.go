package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEngines(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())
}

func TestEngineRoundTrip(t *testing.T) {
	engines := []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()}
	for _, engine := range engines {
		buf := engine.AppendUint64(nil, 0xDEADBEEFCAFEF00D)
		require.Len(t, buf, 8)
		require.Equal(t, uint64(0xDEADBEEFCAFEF00D), engine.Uint64(buf))

		buf = engine.AppendUint32(nil, 0x12345678)
		require.Equal(t, uint32(0x12345678), engine.Uint32(buf))

		buf = engine.AppendUint16(nil, 0xBEEF)
		require.Equal(t, uint16(0xBEEF), engine.Uint16(buf))
	}
}
