package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/models"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/session"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/validation"
)

// WhoAmI prints the signed-in user record.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}

	printlnFn(fmt.Sprintf("%-12s %s", "Email:", u.Email))
	printlnFn(fmt.Sprintf("%-12s %s", "Name:", u.FullName))
	printlnFn(fmt.Sprintf("%-12s %s", "Role:", u.Role))
	if u.Department != "" {
		printlnFn(fmt.Sprintf("%-12s %s", "Department:", u.Department))
	}
	if u.Position != "" {
		printlnFn(fmt.Sprintf("%-12s %s", "Position:", u.Position))
	}
	if u.Phone != "" {
		printlnFn(fmt.Sprintf("%-12s %s", "Phone:", u.Phone))
	}
	return nil
}

// Profile prompts for the mutable profile fields and submits the update.
// An empty answer keeps the current value.
func (a *App) Profile(ctx context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}

	fullName, err := getSimpleText(a.reader, fmt.Sprintf("Full name [%s]", u.FullName), os.Stdout)
	if err != nil {
		return err
	}
	if fullName == "" {
		fullName = u.FullName
	}

	department, err := getSimpleText(a.reader, fmt.Sprintf("Department [%s]", u.Department), os.Stdout)
	if err != nil {
		return err
	}
	if department == "" {
		department = u.Department
	}

	phone, err := getSimpleText(a.reader, fmt.Sprintf("Phone [%s]", u.Phone), os.Stdout)
	if err != nil {
		return err
	}
	if phone == "" {
		phone = u.Phone
	}

	position, err := getSimpleText(a.reader, fmt.Sprintf("Position [%s]", u.Position), os.Stdout)
	if err != nil {
		return err
	}
	if position == "" {
		position = u.Position
	}

	if errs := validation.UpdateProfileForm(fullName, department, phone, position); !errs.Valid() {
		printlnFn(errs.First())
		return nil
	}

	a.session.OpenModal(session.ModalUpdateProfile, nil)
	if err := a.session.UpdateProfile(ctx, models.Profile{
		FullName:   fullName,
		Department: department,
		Phone:      phone,
		Position:   position,
	}); err != nil {
		a.reportErr(err)
		return err
	}

	printlnFn("Profile updated")
	return nil
}

// Refresh mints a fresh access token. A failed refresh ends the session, so
// the user is told to log in again.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.session.RefreshToken(ctx); err != nil {
		printlnFn("Session expired, please log in again")
		return err
	}
	printlnFn("Token refreshed")
	return nil
}

// Explain fetches and prints the authorization audit trail for a trace id.
func (a *App) Explain(ctx context.Context, traceID string) error {
	events, err := a.gw.Explain(ctx, traceID)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if len(events) == 0 {
		printlnFn("No audit events for trace", traceID)
		return nil
	}

	for _, e := range events {
		line := fmt.Sprintf("%s  %-7s  %s by %s (%s) on %s",
			e.CreatedAt.Format(time.RFC3339), e.Outcome, e.Action, e.ActorID, e.ActorRole, e.Resource)
		if e.Reason != "" {
			line += "  reason: " + e.Reason
		}
		if e.PolicyVersion != "" {
			line += "  policy: " + e.PolicyVersion
		}
		printlnFn(line)
	}
	return nil
}
