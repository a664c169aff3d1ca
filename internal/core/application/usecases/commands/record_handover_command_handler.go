package commands

import (
	"context"

	"logistics/internal/core/domain/model/handover"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/policy"
)

// RecordHandoverCommandHandler stores a handover record. The parcel's
// status is not changed; handovers document custody only.
type RecordHandoverCommandHandler struct {
	uowFactory ProtocolUoWFactory
	policy     policy.Policy
}

func NewRecordHandoverCommandHandler(uowFactory ProtocolUoWFactory) RecordHandoverCommandHandler {
	return RecordHandoverCommandHandler{
		uowFactory: uowFactory,
		policy:     policy.ActiveStaff,
	}
}

func (h *RecordHandoverCommandHandler) Handle(ctx context.Context, cmd RecordHandoverCommand) (*handover.Handover, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	staffRepo := uow.StaffRepository()
	if err := authorize(ctx, staffRepo, h.policy, cmd.ActorID(), "record handover"); err != nil {
		return nil, err
	}

	if _, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID()); err != nil {
		return nil, err
	}
	if cmd.FromStaffID().Validate() == nil {
		if _, err := staffRepo.Get(ctx, cmd.FromStaffID()); err != nil {
			return nil, err
		}
	}
	if cmd.ToStaffID() != nil {
		if _, err := staffRepo.Get(ctx, *cmd.ToStaffID()); err != nil {
			return nil, err
		}
	}
	if err := requireCustomer(ctx, uow.CustomerRepository(), cmd.ToCustomerID()); err != nil {
		return nil, err
	}
	if err := requireLocation(ctx, uow.LocationRepository(), cmd.LocationID()); err != nil {
		return nil, err
	}

	record, err := handover.NewHandover(
		kernel.NewUUID(),
		cmd.ParcelID(),
		cmd.Type(),
		cmd.FromStaffID(),
		cmd.ToStaffID(),
		cmd.ToCustomerID(),
		cmd.LocationID(),
		cmd.ActorID(),
		cmd.Note(),
		now(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.HandoverRepository().Add(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}

// AcknowledgeHandoverCommandHandler marks receipt by the receiving staff member.
type AcknowledgeHandoverCommandHandler struct {
	uowFactory ProtocolUoWFactory
	policy     policy.Policy
}

func NewAcknowledgeHandoverCommandHandler(uowFactory ProtocolUoWFactory) AcknowledgeHandoverCommandHandler {
	return AcknowledgeHandoverCommandHandler{
		uowFactory: uowFactory,
		policy:     policy.ActiveStaff,
	}
}

func (h *AcknowledgeHandoverCommandHandler) Handle(
	ctx context.Context,
	cmd AcknowledgeHandoverCommand,
) (*handover.Handover, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := authorize(ctx, uow.StaffRepository(), h.policy, cmd.ActorID(), "acknowledge handover"); err != nil {
		return nil, err
	}

	repo := uow.HandoverRepository()
	record, err := repo.Get(ctx, cmd.HandoverID())
	if err != nil {
		return nil, err
	}

	if err = record.Acknowledge(cmd.ActorID()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}
