package counter

import "context"

type CounterRepository interface {
	GetByID(ctx context.Context, counterID uint) (*Counter, error)
	ListByLocation(ctx context.Context, locationID uint) ([]*Counter, error)
}

type LocationRepository interface {
	GetByID(ctx context.Context, locationID uint) (*Location, error)
}
