package firestore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/domain/interfaces"
	"google.golang.org/api/option"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

const (
	usersCollection       = "users"
	departmentsCollection = "departments"
	assignmentsCollection = "department_assignments"
	viewCollection        = "user_department_view"
	risksCollection       = "risks"
	controlsCollection    = "controls"
	tokensCollection      = "tokens"
)

type Firestore struct {
	client           *firestore.Client
	collectionPrefix string
	clientOpts       []option.ClientOption
	user             *userRepository
	department       *departmentRepository
	risk             *riskRepository
	control          *controlRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, used for test isolation
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.collectionPrefix = prefix
	}
}

// WithClientOptions passes options through to the Firestore client, such as
// credentials for non-default environments
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(f *Firestore) {
		f.clientOpts = append(f.clientOpts, opts...)
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	f := &Firestore{}
	for _, opt := range opts {
		opt(f)
	}

	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID, f.clientOpts...)
	} else {
		client, err = firestore.NewClient(ctx, projectID, f.clientOpts...)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f.client = client
	deptRepo := newDepartmentRepository(client)
	deptRepo.collectionPrefix = f.collectionPrefix
	f.department = deptRepo

	f.user = newUserRepository(client, deptRepo)
	f.user.collectionPrefix = f.collectionPrefix
	f.risk = newRiskRepository(client)
	f.risk.collectionPrefix = f.collectionPrefix
	f.control = newControlRepository(client)
	f.control.collectionPrefix = f.collectionPrefix

	return f, nil
}

func (f *Firestore) User() interfaces.UserRepository {
	return f.user
}

func (f *Firestore) Department() interfaces.DepartmentRepository {
	return f.department
}

func (f *Firestore) Risk() interfaces.RiskRepository {
	return f.risk
}

func (f *Firestore) Control() interfaces.ControlRepository {
	return f.control
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
