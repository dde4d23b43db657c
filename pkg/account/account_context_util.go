package account

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const AccountKey contextKey = "account"

// HeaderName carries the account reference on incoming requests.
const HeaderName = "X-Account-Id"

var ErrNoAccount = errors.New("account not found")

// CurrentId retrieves the current account ID from the context. Returns ErrNoAccount if the ID is not present.
func CurrentId(ctx context.Context) (int, error) {
	id, ok := ctx.Value(AccountKey).(int)
	if !ok {
		log.Trace("account not found in context")
		return 0, ErrNoAccount
	}
	return id, nil
}

func WithId(ctx context.Context, accountId int) context.Context {
	return context.WithValue(ctx, AccountKey, accountId)
}
