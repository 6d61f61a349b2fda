package model

import (
	"time"

	"github.com/riskledger/riskledger/pkg/domain/types"
)

// Control is a mitigating control attached to a risk. EvidenceObject is the
// blob-store object key of the uploaded evidence file, empty when no
// evidence has been attached.
type Control struct {
	ID             types.ControlID     `firestore:"id" json:"id"`
	RiskID         types.RiskID        `firestore:"risk_id" json:"risk_id"`
	Title          string              `firestore:"title" json:"title"`
	Description    string              `firestore:"description" json:"description"`
	Type           types.ControlType   `firestore:"type" json:"type"`
	Status         types.ControlStatus `firestore:"status" json:"status"`
	EvidenceObject string              `firestore:"evidence_object" json:"evidence_object,omitempty"`
	CreatedAt      time.Time           `firestore:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `firestore:"updated_at" json:"updated_at"`
}
