package tooth

import "context"

// RepositoryInterface defines the contract for tooth master-data access
type RepositoryInterface interface {
	ListTeeth(ctx context.Context) ([]Tooth, error)
	GetToothByNumber(ctx context.Context, number int) (*Tooth, error)
	ListConditions(ctx context.Context) ([]ToothCondition, error)
	GetCondition(ctx context.Context, id string) (*ToothCondition, error)
}
