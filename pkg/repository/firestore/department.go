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

type departmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func (r *departmentRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + departmentsCollection)
}

func (r *departmentRepository) assignmentCollection() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + assignmentsCollection)
}

func (r *departmentRepository) viewCollectionRef() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + viewCollection)
}

func (r *departmentRepository) userCollection() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + usersCollection)
}

func newDepartmentRepository(client *firestore.Client) *departmentRepository {
	return &departmentRepository{client: client}
}

func assignmentDocID(userID types.UserID, departmentID types.DepartmentID) string {
	return userID.String() + ":" + departmentID.String()
}

func (r *departmentRepository) Create(ctx context.Context, dept *model.Department) (*model.Department, error) {
	now := time.Now().UTC()
	created := &model.Department{
		ID:        types.NewDepartmentID(),
		Name:      dept.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	docRef := r.collection().Doc(created.ID.String())
	if _, err := docRef.Create(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create department", goerr.V("name", dept.Name))
	}

	return created, nil
}

func (r *departmentRepository) Get(ctx context.Context, id types.DepartmentID) (*model.Department, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid department ID")
	}

	doc, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "department not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get department from firestore")
	}

	var dept model.Department
	if err := doc.DataTo(&dept); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal department")
	}

	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]*model.Department, error) {
	iter := r.collection().OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var depts []*model.Department
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate departments")
		}

		var dept model.Department
		if err := doc.DataTo(&dept); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal department")
		}
		depts = append(depts, &dept)
	}

	return depts, nil
}

func (r *departmentRepository) Update(ctx context.Context, dept *model.Department) (*model.Department, error) {
	existing, err := r.Get(ctx, dept.ID)
	if err != nil {
		return nil, err
	}

	updated := &model.Department{
		ID:        existing.ID,
		Name:      dept.Name,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}

	docRef := r.collection().Doc(updated.ID.String())
	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update department", goerr.V("id", dept.ID))
	}

	return updated, nil
}

func (r *departmentRepository) Delete(ctx context.Context, id types.DepartmentID) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	if _, err := r.collection().Doc(id.String()).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete department", goerr.V("id", id))
	}

	// Remove dangling assignments and refresh the view rows of every
	// user that was assigned to the deleted department.
	iter := r.assignmentCollection().
		Where("department_id", "==", id.String()).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	affected := map[types.UserID]struct{}{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate assignments")
		}

		var assign model.DepartmentAssignment
		if err := doc.DataTo(&assign); err != nil {
			return goerr.Wrap(err, "failed to unmarshal assignment")
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return goerr.Wrap(err, "failed to delete assignment", goerr.V("doc", doc.Ref.ID))
		}
		affected[assign.UserID] = struct{}{}
	}

	for userID := range affected {
		if err := r.syncDepartmentView(ctx, userID); err != nil {
			return err
		}
	}

	return nil
}

func (r *departmentRepository) Assign(ctx context.Context, userID types.UserID, departmentID types.DepartmentID) error {
	if err := userID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user ID")
	}
	if _, err := r.Get(ctx, departmentID); err != nil {
		return err
	}

	assign := &model.DepartmentAssignment{
		UserID:       userID,
		DepartmentID: departmentID,
		CreatedAt:    time.Now().UTC(),
	}

	docRef := r.assignmentCollection().Doc(assignmentDocID(userID, departmentID))
	if _, err := docRef.Set(ctx, assign); err != nil {
		return goerr.Wrap(err, "failed to put assignment",
			goerr.V("user_id", userID), goerr.V("department_id", departmentID))
	}

	return r.syncDepartmentView(ctx, userID)
}

func (r *departmentRepository) Unassign(ctx context.Context, userID types.UserID, departmentID types.DepartmentID) error {
	docRef := r.assignmentCollection().Doc(assignmentDocID(userID, departmentID))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "assignment not found",
				goerr.V("user_id", userID), goerr.V("department_id", departmentID))
		}
		return goerr.Wrap(err, "failed to get assignment")
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete assignment")
	}

	return r.syncDepartmentView(ctx, userID)
}

func (r *departmentRepository) ListAssignments(ctx context.Context, userID types.UserID) ([]*model.DepartmentAssignment, error) {
	iter := r.assignmentCollection().
		Where("user_id", "==", userID.String()).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var assigns []*model.DepartmentAssignment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assignments")
		}

		var assign model.DepartmentAssignment
		if err := doc.DataTo(&assign); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assignment")
		}
		assigns = append(assigns, &assign)
	}

	return assigns, nil
}

// syncDepartmentView rewrites the denormalized user_department_view row for
// one user from the current assignments. The hosted store has no joins, so
// the consolidated fast-path row is maintained on write.
func (r *departmentRepository) syncDepartmentView(ctx context.Context, userID types.UserID) error {
	assigns, err := r.ListAssignments(ctx, userID)
	if err != nil {
		return err
	}

	view := &model.UserDepartmentView{
		UserID:          userID,
		DepartmentIDs:   make([]types.DepartmentID, 0, len(assigns)),
		DepartmentNames: make([]string, 0, len(assigns)),
	}

	userDoc, err := r.userCollection().Doc(userID.String()).Get(ctx)
	if err == nil {
		var user model.User
		if err := userDoc.DataTo(&user); err != nil {
			return goerr.Wrap(err, "failed to unmarshal user for view sync")
		}
		view.Role = user.Role
	} else if status.Code(err) != codes.NotFound {
		return goerr.Wrap(err, "failed to get user for view sync")
	}

	for _, assign := range assigns {
		dept, err := r.Get(ctx, assign.DepartmentID)
		if err != nil {
			// Assignment to a deleted department: excluded from the view
			continue
		}
		view.DepartmentIDs = append(view.DepartmentIDs, dept.ID)
		view.DepartmentNames = append(view.DepartmentNames, dept.Name)
	}

	docRef := r.viewCollectionRef().Doc(userID.String())
	if _, err := docRef.Set(ctx, view); err != nil {
		return goerr.Wrap(err, "failed to write department view", goerr.V("user_id", userID))
	}

	return nil
}
