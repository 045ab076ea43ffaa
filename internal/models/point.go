package models

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
)

const srid4326 = 4326

// Point is a WGS84 (SRID 4326) geometry point column. Values are written as
// EWKT, which PostGIS accepts as text input for geometry columns; reads come
// back as hex-encoded EWKB.
type Point struct {
	Lat float64
	Lon float64
}

func (p Point) Value() (driver.Value, error) {
	return fmt.Sprintf("SRID=%d;POINT(%v %v)", srid4326, p.Lon, p.Lat), nil
}

func (p *Point) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return p.decode(string(v))
	case string:
		return p.decode(v)
	default:
		return fmt.Errorf("point scan: unsupported type %T", value)
	}
}

func (p *Point) decode(s string) error {
	if strings.HasPrefix(s, "SRID=") || strings.HasPrefix(s, "POINT") {
		return p.decodeEWKT(s)
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("point scan: %w", err)
	}
	return p.decodeEWKB(raw)
}

func (p *Point) decodeEWKT(s string) error {
	if i := strings.Index(s, ";"); i >= 0 {
		s = s[i+1:]
	}
	var lon, lat float64
	if _, err := fmt.Sscanf(s, "POINT(%f %f)", &lon, &lat); err != nil {
		return fmt.Errorf("point scan: malformed EWKT %q", s)
	}
	p.Lon, p.Lat = lon, lat
	return nil
}

// decodeEWKB parses a PostGIS extended-WKB point: byte order flag, geometry
// type with an SRID-present bit, optional SRID, then X (lon) and Y (lat).
func (p *Point) decodeEWKB(b []byte) error {
	if len(b) < 21 {
		return fmt.Errorf("point scan: EWKB too short (%d bytes)", len(b))
	}
	var order binary.ByteOrder = binary.BigEndian
	if b[0] == 1 {
		order = binary.LittleEndian
	}
	geomType := order.Uint32(b[1:5])
	off := 5
	if geomType&0x20000000 != 0 { // SRID present
		off += 4
	}
	if geomType&0xFF != 1 { // 1 = point
		return fmt.Errorf("point scan: geometry type %d is not a point", geomType&0xFF)
	}
	if len(b) < off+16 {
		return fmt.Errorf("point scan: EWKB truncated")
	}
	p.Lon = math.Float64frombits(order.Uint64(b[off : off+8]))
	p.Lat = math.Float64frombits(order.Uint64(b[off+8 : off+16]))
	return nil
}

// GormDataType keeps AutoMigrate from guessing a column type for Point.
func (Point) GormDataType() string {
	return fmt.Sprintf("geometry(Point,%d)", srid4326)
}
