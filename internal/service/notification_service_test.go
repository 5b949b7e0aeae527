package service_test

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/spec-kit/airport-dashboard/internal/domain"
	"github.com/spec-kit/airport-dashboard/internal/events"
	"github.com/spec-kit/airport-dashboard/internal/service"
	apperrors "github.com/spec-kit/airport-dashboard/pkg/util"
)

func newNotificationFixture() (*service.NotificationService, *fakeUserRepo, *fakeNotificationRepo, *recordingDispatcher) {
	users := newFakeUserRepo()
	notifications := newFakeNotificationRepo()
	dispatcher := &recordingDispatcher{}
	svc := service.NewNotificationService(service.NotificationDependencies{
		NotificationRepo: notifications,
		UserRepo:         users,
		Dispatcher:       dispatcher,
	})
	return svc, users, notifications, dispatcher
}

func staffIdentity(id, airport string) domain.Identity {
	return domain.Identity{ID: id, Role: domain.RoleStaff, AirportCode: airport}
}

func TestSendNotification(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, users, _, dispatcher := newNotificationFixture()

	seedUser(c, users, domain.User{
		ID: "s1", Email: "s1@example.com", Role: domain.RoleStaff, AirportCode: strPtr("DEL"),
	})

	n, err := svc.Send(ctx, managerIdentity("mgr-1", "DEL"), service.SendInput{
		StaffID:  "s1",
		Message:  "Check belt 3 before the evening wave.",
		Priority: "URGENT",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(n.SenderID, qt.Equals, "mgr-1")
	c.Assert(n.RecipientID, qt.Equals, "s1")
	c.Assert(*n.AirportCode, qt.Equals, "DEL")
	c.Assert(n.Priority, qt.Equals, domain.PriorityUrgent)
	c.Assert(n.Status, qt.Equals, domain.NotificationPending)
	c.Assert(n.AcknowledgedAt, qt.IsNil)
	c.Assert(dispatcher.ofType(events.EventNotificationSent), qt.HasLen, 1)
}

func TestSendNotificationPriorityCoercion(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, users, _, _ := newNotificationFixture()

	seedUser(c, users, domain.User{
		ID: "s1", Email: "s1@example.com", Role: domain.RoleStaff, AirportCode: strPtr("DEL"),
	})

	n, err := svc.Send(ctx, managerIdentity("mgr-1", "DEL"), service.SendInput{
		StaffID:  "s1",
		Message:  "Routine check.",
		Priority: "critical",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(n.Priority, qt.Equals, domain.PriorityNormal)
}

func TestSendNotificationAirportDefaulting(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, users, _, _ := newNotificationFixture()

	// Recipient with an airport: the recipient's code wins.
	seedUser(c, users, domain.User{
		ID: "s-blr", Email: "s1@example.com", Role: domain.RoleStaff, AirportCode: strPtr("BLR"),
	})
	n, err := svc.Send(ctx, adminIdentity("adm-1"), service.SendInput{
		StaffID: "s-blr", Message: "Hello.",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(*n.AirportCode, qt.Equals, "BLR")

	// Recipient without an airport falls back to the sender's, which for an
	// admin is empty.
	seedUser(c, users, domain.User{
		ID: "s-none", Email: "s2@example.com", Role: domain.RoleStaff,
	})
	n, err = svc.Send(ctx, adminIdentity("adm-1"), service.SendInput{
		StaffID: "s-none", Message: "Hello.",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(n.AirportCode, qt.IsNil)
}

func TestSendNotificationValidation(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, users, notifications, _ := newNotificationFixture()

	seedUser(c, users, domain.User{
		ID: "s1", Email: "s1@example.com", Role: domain.RoleStaff, AirportCode: strPtr("DEL"),
	})

	_, err := svc.Send(ctx, managerIdentity("mgr-1", "DEL"), service.SendInput{StaffID: "s1"})
	c.Assert(apperrors.KindOf(err), qt.Equals, apperrors.KindValidation)

	_, err = svc.Send(ctx, managerIdentity("mgr-1", "DEL"), service.SendInput{Message: "Hi."})
	c.Assert(apperrors.KindOf(err), qt.Equals, apperrors.KindValidation)

	_, err = svc.Send(ctx, managerIdentity("mgr-1", "DEL"), service.SendInput{
		StaffID: "missing", Message: "Hi.",
	})
	c.Assert(apperrors.KindOf(err), qt.Equals, apperrors.KindNotFound)

	c.Assert(len(notifications.order), qt.Equals, 0)
}

func TestSendNotificationAuthority(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, users, _, _ := newNotificationFixture()

	seedUser(c, users, domain.User{
		ID: "s-blr", Email: "s1@example.com", Role: domain.RoleStaff, AirportCode: strPtr("BLR"),
	})
	seedUser(c, users, domain.User{
		ID: "p1", Email: "p1@example.com", Role: domain.RolePassenger,
	})

	_, err := svc.Send(ctx, managerIdentity("mgr-1", "DEL"), service.SendInput{
		StaffID: "s-blr", Message: "Hi.",
	})
	c.Assert(apperrors.KindOf(err), qt.Equals, apperrors.KindForbidden)

	_, err = svc.Send(ctx, staffIdentity("s-blr", "BLR"), service.SendInput{
		StaffID: "s-blr", Message: "Hi.",
	})
	c.Assert(apperrors.KindOf(err), qt.Equals, apperrors.KindForbidden)

	_, err = svc.Send(ctx, adminIdentity("adm-1"), service.SendInput{
		StaffID: "p1", Message: "Hi.",
	})
	c.Assert(apperrors.KindOf(err), qt.Equals, apperrors.KindNotFound)
}

func TestListFor(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, users, _, _ := newNotificationFixture()

	seedUser(c, users, domain.User{
		ID: "s1", Email: "s1@example.com", Role: domain.RoleStaff, AirportCode: strPtr("DEL"),
	})
	seedUser(c, users, domain.User{
		ID: "s2", Email: "s2@example.com", Role: domain.RoleStaff, AirportCode: strPtr("DEL"),
	})

	mgr := managerIdentity("mgr-1", "DEL")
	_, err := svc.Send(ctx, mgr, service.SendInput{StaffID: "s1", Message: "First."})
	c.Assert(err, qt.IsNil)
	second, err := svc.Send(ctx, mgr, service.SendInput{StaffID: "s1", Message: "Second."})
	c.Assert(err, qt.IsNil)
	_, err = svc.Send(ctx, mgr, service.SendInput{StaffID: "s2", Message: "Other recipient."})
	c.Assert(err, qt.IsNil)

	recipient := staffIdentity("s1", "DEL")
	inbox, err := svc.ListFor(ctx, recipient, false, false)
	c.Assert(err, qt.IsNil)
	c.Assert(inbox.Notifications, qt.HasLen, 2)
	c.Assert(inbox.Sent, qt.HasLen, 0)

	c.Assert(svc.Acknowledge(ctx, recipient, second.ID), qt.IsNil)
	pending, err := svc.ListFor(ctx, recipient, true, false)
	c.Assert(err, qt.IsNil)
	c.Assert(pending.Notifications, qt.HasLen, 1)
	c.Assert(pending.Notifications[0].Message, qt.Equals, "First.")

	sent, err := svc.ListFor(ctx, mgr, false, true)
	c.Assert(err, qt.IsNil)
	c.Assert(sent.Sent, qt.HasLen, 3)

	// Staff never get a sent list even when they ask for one.
	inbox, err = svc.ListFor(ctx, recipient, false, true)
	c.Assert(err, qt.IsNil)
	c.Assert(inbox.Sent, qt.HasLen, 0)

	_, err = svc.ListFor(ctx, domain.Identity{ID: "p1", Role: domain.RolePassenger}, false, false)
	c.Assert(apperrors.KindOf(err), qt.Equals, apperrors.KindForbidden)
}

func TestAcknowledgeFirstWriteWins(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, users, notifications, dispatcher := newNotificationFixture()

	seedUser(c, users, domain.User{
		ID: "s1", Email: "s1@example.com", Role: domain.RoleStaff, AirportCode: strPtr("DEL"),
	})

	sent, err := svc.Send(ctx, managerIdentity("mgr-1", "DEL"), service.SendInput{
		StaffID: "s1", Message: "Ack me.",
	})
	c.Assert(err, qt.IsNil)

	recipient := staffIdentity("s1", "DEL")
	c.Assert(svc.Acknowledge(ctx, recipient, sent.ID), qt.IsNil)

	stored, err := notifications.GetByID(ctx, sent.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(stored.Status, qt.Equals, domain.NotificationAcknowledged)
	c.Assert(stored.AcknowledgedAt, qt.IsNotNil)
	firstAck := *stored.AcknowledgedAt

	// Repeat acknowledgement succeeds but never moves the timestamp.
	c.Assert(svc.Acknowledge(ctx, recipient, sent.ID), qt.IsNil)
	stored, err = notifications.GetByID(ctx, sent.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(stored.AcknowledgedAt.Equal(firstAck), qt.IsTrue)

	c.Assert(dispatcher.ofType(events.EventNotificationAcknowledged), qt.HasLen, 1)
}

func TestAcknowledgeGuards(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	svc, users, _, _ := newNotificationFixture()

	seedUser(c, users, domain.User{
		ID: "s1", Email: "s1@example.com", Role: domain.RoleStaff, AirportCode: strPtr("DEL"),
	})

	sent, err := svc.Send(ctx, managerIdentity("mgr-1", "DEL"), service.SendInput{
		StaffID: "s1", Message: "Ack me.",
	})
	c.Assert(err, qt.IsNil)

	err = svc.Acknowledge(ctx, staffIdentity("s2", "DEL"), sent.ID)
	c.Assert(apperrors.KindOf(err), qt.Equals, apperrors.KindForbidden)

	err = svc.Acknowledge(ctx, managerIdentity("mgr-1", "DEL"), sent.ID)
	c.Assert(apperrors.KindOf(err), qt.Equals, apperrors.KindForbidden)

	err = svc.Acknowledge(ctx, staffIdentity("s1", "DEL"), "missing")
	c.Assert(apperrors.KindOf(err), qt.Equals, apperrors.KindNotFound)
}
