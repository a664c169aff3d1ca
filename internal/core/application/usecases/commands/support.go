package commands

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/policy"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// DefaultIdentifierAttempts bounds regenerate-and-retry on identifier conflicts.
const DefaultIdentifierAttempts = 5

var ErrActorIDIsRequired = errs.NewValueIsRequiredError("actor id")

// authorize loads the acting staff member and applies p. An actor missing
// from storage is denied rather than reported as not found.
func authorize(
	ctx context.Context,
	staffRepo ports.StaffRepository,
	p policy.Policy,
	actorID kernel.UUID,
	operation string,
) error {
	actor, err := staffRepo.Get(ctx, actorID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return &errs.AccessIsDeniedError{ParamName: operation, Cause: err}
		}
		return err
	}
	return policy.Authorize(p, actor, operation)
}

// retryOnConflict runs attempt until it succeeds, fails with anything other
// than a conflict, or maxAttempts is reached.
func retryOnConflict(maxAttempts int, attempt func() error) error {
	if maxAttempts <= 0 {
		maxAttempts = DefaultIdentifierAttempts
	}

	var err error
	for range maxAttempts {
		if err = attempt(); err == nil || !errors.Is(err, errs.ErrObjectAlreadyExists) {
			return err
		}
	}
	return err
}

func requireLocation(ctx context.Context, repo ports.LocationRepository, id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	_, err := repo.Get(ctx, *id)
	return err
}

func requireCustomer(ctx context.Context, repo ports.CustomerRepository, id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	_, err := repo.Get(ctx, *id)
	return err
}

func validateActor(actorID kernel.UUID) error {
	if actorID.Validate() != nil {
		return ErrActorIDIsRequired
	}
	return nil
}

func now() time.Time {
	return time.Now().UTC()
}
