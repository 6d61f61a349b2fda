package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/riskledger/riskledger/pkg/domain/model"
	"github.com/riskledger/riskledger/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type userRepository struct {
	client           *firestore.Client
	collectionPrefix string
	depts            *departmentRepository
}

func (r *userRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + usersCollection)
}

func (r *userRepository) viewCollectionRef() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + viewCollection)
}

func newUserRepository(client *firestore.Client, depts *departmentRepository) *userRepository {
	return &userRepository{client: client, depts: depts}
}

func (r *userRepository) Put(ctx context.Context, user *model.User) (*model.User, error) {
	if err := user.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user ID")
	}

	now := time.Now().UTC()
	stored := &model.User{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role.Normalize(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if existing, err := r.Get(ctx, user.ID); err == nil {
		stored.CreatedAt = existing.CreatedAt
	}

	docRef := r.collection().Doc(stored.ID.String())
	if _, err := docRef.Set(ctx, stored); err != nil {
		return nil, goerr.Wrap(err, "failed to put user", goerr.V("id", user.ID))
	}

	// Role changes must be reflected in the consolidated view row
	if err := r.depts.syncDepartmentView(ctx, stored.ID); err != nil {
		return nil, goerr.Wrap(err, "failed to sync department view", goerr.V("id", user.ID))
	}

	return stored, nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user ID")
	}

	doc, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get user from firestore")
	}

	var user model.User
	if err := doc.DataTo(&user); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user")
	}

	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	iter := r.collection().OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var users []*model.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate users")
		}

		var user model.User
		if err := doc.DataTo(&user); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal user")
		}
		users = append(users, &user)
	}

	return users, nil
}

func (r *userRepository) GetDepartmentView(ctx context.Context, id types.UserID) (*model.UserDepartmentView, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user ID")
	}

	doc, err := r.viewCollectionRef().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "no view row for user", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get department view from firestore")
	}

	var view model.UserDepartmentView
	if err := doc.DataTo(&view); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal department view")
	}

	return &view, nil
}

func (r *userRepository) Delete(ctx context.Context, id types.UserID) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	if _, err := r.collection().Doc(id.String()).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete user", goerr.V("id", id))
	}

	if _, err := r.viewCollectionRef().Doc(id.String()).Delete(ctx); err != nil {
		if status.Code(err) != codes.NotFound {
			return goerr.Wrap(err, "failed to delete department view", goerr.V("id", id))
		}
	}

	return nil
}
