package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/logger"
	"groupmanagement/internal/repository"
)

const sendTimeout = 30 * time.Second

type pendingBatch struct {
	orgID       uuid.UUID
	orgName     string
	requestIDs  []int
	adminEmails []string
}

// SendRequestNotifications tells organization admins about membership
// requests they have not been notified of yet.
func (jr *JobRunner) SendRequestNotifications() {
	jr.runWithRecovery("SendRequestNotifications", func() {
		sent, err := jr.NotifyPendingRequests(context.Background())
		if err != nil {
			logger.Error("Failed to send request notifications", "error", err)
			return
		}
		logger.Info("Request notifications sent", "requests", sent)
	})
}

// NotifyPendingRequests sends one summary per organization and marks the
// covered requests as sent. Requests of organizations without admins, or
// whose mail failed, stay unsent and are retried on the next run. It returns
// the number of requests marked sent.
func (jr *JobRunner) NotifyPendingRequests(ctx context.Context) (int, error) {
	var batches []*pendingBatch
	err := jr.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		unsent, err := repos.Requests.ListUnsent(ctx)
		if err != nil {
			return err
		}
		byOrg := map[uuid.UUID]*pendingBatch{}
		for _, r := range unsent {
			b, ok := byOrg[r.OrganizationID]
			if !ok {
				b = &pendingBatch{orgID: r.OrganizationID, orgName: r.OrganizationName[domain.LangFi]}
				byOrg[r.OrganizationID] = b
				batches = append(batches, b)
			}
			b.requestIDs = append(b.requestIDs, r.ID)
		}
		for _, b := range batches {
			emails, err := repos.Roles.ListEmailsInRole(ctx, domain.RoleAdmin, b.orgID)
			if err != nil {
				return err
			}
			b.adminEmails = emails
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	var notified []int
	for _, b := range batches {
		if len(b.adminEmails) == 0 {
			logger.Warn("Organization has pending requests but no admins", "organizationID", b.orgID, "requests", len(b.requestIDs))
			continue
		}
		sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
		err := jr.services.Email.SendPendingRequestsNotification(sendCtx, b.adminEmails, b.orgName, len(b.requestIDs))
		cancel()
		if err != nil {
			logger.Warn("Failed to notify organization admins", "organizationID", b.orgID, "error", err)
			continue
		}
		notified = append(notified, b.requestIDs...)
	}
	if len(notified) == 0 {
		return 0, nil
	}

	err = jr.uow.WithinTransaction(ctx, func(repos repository.Repositories) error {
		return repos.Requests.MarkSent(ctx, notified)
	})
	if err != nil {
		return 0, err
	}
	return len(notified), nil
}
