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

type riskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func (r *riskRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + risksCollection)
}

func newRiskRepository(client *firestore.Client) *riskRepository {
	return &riskRepository{client: client}
}

func (r *riskRepository) Create(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	now := time.Now().UTC()
	created := *risk
	created.ID = types.NewRiskID()
	created.Status = risk.Status.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.collection().Doc(created.ID.String())
	if _, err := docRef.Create(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create risk", goerr.V("title", risk.Title))
	}

	return &created, nil
}

func (r *riskRepository) Get(ctx context.Context, id types.RiskID) (*model.Risk, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid risk ID")
	}

	doc, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get risk from firestore")
	}

	var risk model.Risk
	if err := doc.DataTo(&risk); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal risk")
	}

	return &risk, nil
}

func (r *riskRepository) List(ctx context.Context) ([]*model.Risk, error) {
	iter := r.collection().OrderBy("created_at", firestore.Asc).Documents(ctx)
	return collectRisks(iter)
}

func (r *riskRepository) ListByDepartment(ctx context.Context, departmentID types.DepartmentID) ([]*model.Risk, error) {
	iter := r.collection().
		Where("department_id", "==", departmentID.String()).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	return collectRisks(iter)
}

func collectRisks(iter *firestore.DocumentIterator) ([]*model.Risk, error) {
	defer iter.Stop()

	var risks []*model.Risk
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate risks")
		}

		var risk model.Risk
		if err := doc.DataTo(&risk); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal risk")
		}
		risks = append(risks, &risk)
	}

	return risks, nil
}

func (r *riskRepository) Update(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	existing, err := r.Get(ctx, risk.ID)
	if err != nil {
		return nil, err
	}

	updated := *risk
	updated.Status = risk.Status.Normalize()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	docRef := r.collection().Doc(updated.ID.String())
	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update risk", goerr.V("id", risk.ID))
	}

	return &updated, nil
}

func (r *riskRepository) Delete(ctx context.Context, id types.RiskID) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	if _, err := r.collection().Doc(id.String()).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete risk", goerr.V("id", id))
	}

	return nil
}
