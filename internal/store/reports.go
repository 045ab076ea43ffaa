package store

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// StoredReport is a report row as returned by the repository, with the
// latitude/longitude pair derived from the geometry column.
type StoredReport struct {
	ID           int64          `json:"id"`
	PlaceName    string         `json:"place_name"`
	CrowdStatus  int            `json:"crowd_status"`
	DecibelLevel float64        `json:"decibel_level"`
	VibeTags     pq.StringArray `json:"vibe_tags"`
	UserID       int64          `json:"user_id"`
	Timestamp    time.Time      `json:"timestamp"`
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
}

// NearbyReport is a StoredReport annotated with the geodesic distance from
// the query point, in kilometers rounded to two decimal places.
type NearbyReport struct {
	ID           int64          `json:"id"`
	PlaceName    string         `json:"place_name"`
	CrowdStatus  int            `json:"crowd_status"`
	DecibelLevel float64        `json:"decibel_level"`
	VibeTags     pq.StringArray `json:"vibe_tags"`
	UserID       int64          `json:"user_id"`
	Timestamp    time.Time      `json:"timestamp"`
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	DistanceKm   float64        `json:"distance_km"`
}

// Reports is the PostGIS-backed report repository. All queries are
// parameterized; user input never reaches the SQL text.
type Reports struct {
	db *gorm.DB
}

func NewReports(db *gorm.DB) *Reports {
	return &Reports{db: db}
}

const insertReportSQL = `
INSERT INTO reports (place_name, crowd_status, decibel_level, vibe_tags, user_id, location)
VALUES (?, ?, ?, ?, ?, ST_SetSRID(ST_MakePoint(?, ?), 4326))
RETURNING id, place_name, crowd_status, decibel_level, vibe_tags, user_id, "timestamp",
          ST_Y(location::geometry) AS latitude,
          ST_X(location::geometry) AS longitude`

// Insert persists a new report. The id and timestamp are server-assigned;
// the returned row carries the canonical database representation.
func (r *Reports) Insert(ctx context.Context, ownerID int64, lat, lon float64, placeName string, crowdStatus int, decibelLevel float64, tags []string) (StoredReport, error) {
	var row StoredReport
	tx := r.db.WithContext(ctx).Raw(insertReportSQL,
		placeName, crowdStatus, decibelLevel, pq.StringArray(tags), ownerID, lon, lat).Scan(&row)
	if tx.Error != nil {
		return StoredReport{}, fmt.Errorf("insert report: %w", tx.Error)
	}
	return row, nil
}

const nearbySQL = `
SELECT * FROM (
    SELECT DISTINCT ON (place_name)
        id, place_name, crowd_status, decibel_level, vibe_tags, user_id, "timestamp",
        ST_Y(location::geometry) AS latitude,
        ST_X(location::geometry) AS longitude,
        ROUND((ST_Distance(
            location::geography,
            ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography
        ) / 1000)::numeric, 2) AS distance_km
    FROM reports
    WHERE ST_DWithin(
        location::geography,
        ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography,
        ?
    )
    ORDER BY place_name, "timestamp" DESC
) latest_per_place
ORDER BY distance_km`

// FindNearby returns the most recent report for each distinct place within
// radiusMeters geodesic distance of the query point, sorted nearest first.
// ST_DWithin on geography is inclusive at the boundary.
func (r *Reports) FindNearby(ctx context.Context, lat, lon, radiusMeters float64) ([]NearbyReport, error) {
	var rows []NearbyReport
	tx := r.db.WithContext(ctx).Raw(nearbySQL, lon, lat, lon, lat, radiusMeters).Scan(&rows)
	if tx.Error != nil {
		return nil, fmt.Errorf("find nearby reports: %w", tx.Error)
	}
	return rows, nil
}

// Delete removes a report after checking ownership. ErrNotFound when no such
// report exists, ErrForbidden when requesterID is not the owner.
func (r *Reports) Delete(ctx context.Context, reportID, requesterID int64) error {
	var ownerID int64
	tx := r.db.WithContext(ctx).Raw(`SELECT user_id FROM reports WHERE id = ?`, reportID).Scan(&ownerID)
	if tx.Error != nil {
		return fmt.Errorf("look up report owner: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	if ownerID != requesterID {
		return ErrForbidden
	}
	if err := r.db.WithContext(ctx).Exec(`DELETE FROM reports WHERE id = ?`, reportID).Error; err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return nil
}
