package model

import (
	"time"

	"github.com/riskledger/riskledger/pkg/domain/types"
)

// Risk is a recorded organizational risk. DepartmentID may be empty when the
// risk has not been assigned to a department yet; such risks are visible only
// to admins and Risk-team users.
type Risk struct {
	ID           types.RiskID       `firestore:"id" json:"id"`
	Title        string             `firestore:"title" json:"title"`
	Description  string             `firestore:"description" json:"description"`
	DepartmentID types.DepartmentID `firestore:"department_id" json:"department_id"`
	Likelihood   types.Likelihood   `firestore:"likelihood" json:"likelihood"`
	Impact       types.Impact       `firestore:"impact" json:"impact"`
	Status       types.RiskStatus   `firestore:"status" json:"status"`
	OwnerID      types.UserID       `firestore:"owner_id" json:"owner_id"`
	Tags         []string           `firestore:"tags" json:"tags,omitempty"`
	CreatedAt    time.Time          `firestore:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `firestore:"updated_at" json:"updated_at"`
}

// Score is the inherent risk score on the likelihood × impact matrix
func (r *Risk) Score() int {
	return r.Likelihood.Int() * r.Impact.Int()
}

// Level is the priority band derived from the score
func (r *Risk) Level() types.RiskLevel {
	return types.RiskLevelForScore(r.Score())
}
