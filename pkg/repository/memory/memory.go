package memory

import (
	"errors"

	"github.com/riskledger/riskledger/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	user       *userRepository
	department *departmentRepository
	risk       *riskRepository
	control    *controlRepository
	tokens     *tokenStore
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	deptRepo := newDepartmentRepository()
	userRepo := newUserRepository(deptRepo)

	return &Memory{
		user:       userRepo,
		department: deptRepo,
		risk:       newRiskRepository(),
		control:    newControlRepository(),
		tokens:     newTokenStore(),
	}
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Department() interfaces.DepartmentRepository {
	return m.department
}

func (m *Memory) Risk() interfaces.RiskRepository {
	return m.risk
}

func (m *Memory) Control() interfaces.ControlRepository {
	return m.control
}

func (m *Memory) Close() error {
	return nil
}
