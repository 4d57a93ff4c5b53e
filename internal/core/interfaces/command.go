package interfaces

import (
	"context"
)

// Command handles one bot update of type T.
type Command[T any] interface {
	Execute(ctx context.Context, args T)
}
