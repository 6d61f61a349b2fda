package model

import (
	"time"

	"github.com/riskledger/riskledger/pkg/domain/types"
)

// Department is an organizational unit that owns risks. The id→name mapping
// is not assumed bijective: names can collide across organizations, so
// authorization works from IDs wherever an ID is available.
type Department struct {
	ID        types.DepartmentID `firestore:"id" json:"id"`
	Name      string             `firestore:"name" json:"name"`
	CreatedAt time.Time          `firestore:"created_at" json:"created_at"`
	UpdatedAt time.Time          `firestore:"updated_at" json:"updated_at"`
}

// DepartmentAssignment links a user to a department
type DepartmentAssignment struct {
	UserID       types.UserID       `firestore:"user_id" json:"user_id"`
	DepartmentID types.DepartmentID `firestore:"department_id" json:"department_id"`
	CreatedAt    time.Time          `firestore:"created_at" json:"created_at"`
}
