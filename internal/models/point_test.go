package models

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ewkbPointHex builds the hex-encoded EWKB form PostGIS returns for a
// geometry(Point,4326) column: little-endian, SRID flag set.
func ewkbPointHex(lon, lat float64) string {
	b := make([]byte, 0, 25)
	b = append(b, 1) // little-endian
	b = binary.LittleEndian.AppendUint32(b, 1|0x20000000)
	b = binary.LittleEndian.AppendUint32(b, 4326)
	b = binary.LittleEndian.AppendUint64(b, math.Float64bits(lon))
	b = binary.LittleEndian.AppendUint64(b, math.Float64bits(lat))
	return hex.EncodeToString(b)
}

func TestPoint_ScanEWKB(t *testing.T) {
	var p Point
	require.NoError(t, p.Scan(ewkbPointHex(-73.0, 40.0)))
	assert.InDelta(t, -73.0, p.Lon, 1e-9)
	assert.InDelta(t, 40.0, p.Lat, 1e-9)
}

func TestPoint_ScanEWKBBytes(t *testing.T) {
	var p Point
	require.NoError(t, p.Scan([]byte(ewkbPointHex(2.3522, 48.8566))))
	assert.InDelta(t, 2.3522, p.Lon, 1e-9)
	assert.InDelta(t, 48.8566, p.Lat, 1e-9)
}

func TestPoint_ScanEWKT(t *testing.T) {
	var p Point
	require.NoError(t, p.Scan("SRID=4326;POINT(-73.5 40.25)"))
	assert.InDelta(t, -73.5, p.Lon, 1e-9)
	assert.InDelta(t, 40.25, p.Lat, 1e-9)
}

func TestPoint_ScanRejectsGarbage(t *testing.T) {
	var p Point
	assert.Error(t, p.Scan("zzzz"))
	assert.Error(t, p.Scan("0101"))
	assert.Error(t, p.Scan(42))
}

func TestPoint_ScanRejectsNonPointGeometry(t *testing.T) {
	b := make([]byte, 0, 9)
	b = append(b, 1)
	b = binary.LittleEndian.AppendUint32(b, 2) // linestring
	b = binary.LittleEndian.AppendUint32(b, 0)
	b = append(b, make([]byte, 16)...)
	var p Point
	assert.Error(t, p.Scan(hex.EncodeToString(b)))
}

func TestPoint_Value(t *testing.T) {
	v, err := Point{Lat: 40.0, Lon: -73.0}.Value()
	require.NoError(t, err)
	assert.Equal(t, "SRID=4326;POINT(-73 40)", v)
}
