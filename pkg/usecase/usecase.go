package usecase

import (
	"github.com/riskledger/riskledger/pkg/domain/interfaces"
	"github.com/riskledger/riskledger/pkg/domain/model/auth"
	"github.com/riskledger/riskledger/pkg/service/directory"
	"github.com/riskledger/riskledger/pkg/service/evidence"
)

type UseCases struct {
	repo          interfaces.Repository
	directory     *directory.Directory
	evidenceStore *evidence.Service
	riskTeamNames auth.RiskTeamNames

	Permission *PermissionUseCase
	Risk       *RiskUseCase
	Control    *ControlUseCase
	Department *DepartmentUseCase
	User       *UserUseCase
	Auth       AuthUseCaseInterface
}

type Option func(*UseCases)

// WithRiskTeamNames overrides the deployment's Risk-team department names
func WithRiskTeamNames(names auth.RiskTeamNames) Option {
	return func(uc *UseCases) {
		uc.riskTeamNames = names
	}
}

// WithEvidence sets the evidence blob store
func WithEvidence(svc *evidence.Service) Option {
	return func(uc *UseCases) {
		uc.evidenceStore = svc
	}
}

func WithAuth(auth AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

// WithDirectory replaces the department directory, for tests
func WithDirectory(dir *directory.Directory) Option {
	return func(uc *UseCases) {
		uc.directory = dir
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:          repo,
		riskTeamNames: auth.DefaultRiskTeamNames(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.directory == nil {
		uc.directory = directory.New(repo)
	}

	uc.Permission = NewPermissionUseCase(repo, uc.directory, uc.riskTeamNames)
	uc.Risk = NewRiskUseCase(repo)
	uc.Control = NewControlUseCase(repo, uc.evidenceStore)
	uc.Department = NewDepartmentUseCase(repo, uc.directory)
	uc.User = NewUserUseCase(repo)

	return uc
}
