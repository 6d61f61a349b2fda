package model

import (
	"time"

	"github.com/riskledger/riskledger/pkg/domain/types"
)

// User is the profile row backing an authenticated identity. The identity
// may exist in the authentication provider before this row is provisioned;
// that transitional state is legitimate and grants minimum privilege.
type User struct {
	ID        types.UserID `firestore:"id" json:"id"`
	Email     string       `firestore:"email" json:"email"`
	Name      string       `firestore:"name" json:"name"`
	Role      types.Role   `firestore:"role" json:"role"`
	CreatedAt time.Time    `firestore:"created_at" json:"created_at"`
	UpdatedAt time.Time    `firestore:"updated_at" json:"updated_at"`
}

// UserDepartmentView is the consolidated row combining a user's role with
// their department assignments, pre-joined with department names. It is the
// fast path of permission loading.
type UserDepartmentView struct {
	UserID          types.UserID         `firestore:"user_id" json:"user_id"`
	Role            types.Role           `firestore:"role" json:"role"`
	DepartmentIDs   []types.DepartmentID `firestore:"department_ids" json:"department_ids"`
	DepartmentNames []string             `firestore:"department_names" json:"department_names"`
}
