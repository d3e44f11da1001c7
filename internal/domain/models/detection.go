package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// sortKeyTimeLayout is a fixed-width UTC layout. Fixed width keeps
// lexicographic ordering of sort keys identical to chronological ordering,
// which RFC3339Nano (trailing-zero trimming) would break.
const sortKeyTimeLayout = "2006-01-02T15:04:05.000000000Z"

// Detection is an append-only, tenant-partitioned security event record.
// Ordering and uniqueness within a tenant come from SortKey.
type Detection struct {
	TenantID string `json:"tenant_id" gorm:"column:tenant_id;primaryKey;size:36"`

	// SortKey is "<timestamp>#<detection_id>". The timestamp prefix is fixed
	// width so identical timestamps still yield distinct, deterministically
	// ordered keys.
	SortKey string `json:"sort_key" gorm:"column:sort_key;primaryKey;size:128"`

	DetectionID string    `json:"id" gorm:"column:detection_id;size:36;not null"`
	ENIID       *string   `json:"eni_id,omitempty" gorm:"column:eni_id;size:64"`
	VNI         *int      `json:"vni,omitempty" gorm:"column:vni"`
	SourceIP    string    `json:"source_ip" gorm:"column:source_ip;size:64"`
	Label       string    `json:"label" gorm:"column:label;size:16"`
	Probability string    `json:"probability" gorm:"column:probability;size:16"`
	TS          time.Time `json:"ts" gorm:"column:ts"`
}

// TableName maps the model to the detections table.
func (Detection) TableName() string { return "vigia_detections" }

// NewDetection builds a detection record with a generated id and sort key.
func NewDetection(tenantID string, ts time.Time, eniID *string, vni *int, sourceIP, label, probability string) *Detection {
	id := uuid.NewString()
	return &Detection{
		TenantID:    tenantID,
		SortKey:     SortKey(ts, id),
		DetectionID: id,
		ENIID:       eniID,
		VNI:         vni,
		SourceIP:    sourceIP,
		Label:       label,
		Probability: probability,
		TS:          ts.UTC(),
	}
}

// SortKey builds the "<timestamp>#<detection_id>" ordering key.
func SortKey(ts time.Time, detectionID string) string {
	return fmt.Sprintf("%s#%s", ts.UTC().Format(sortKeyTimeLayout), detectionID)
}
